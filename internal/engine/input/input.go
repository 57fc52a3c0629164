// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseDown
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	X, Y   int // Mouse position in window coordinates
}

// Action is something the user asked the viewer to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionWireframe
	ActionFill
	ActionTogglePause
	ActionScreenshot
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionWireframe:
		return "wireframe"
	case ActionFill:
		return "fill"
	case ActionTogglePause:
		return "toggle_pause"
	case ActionScreenshot:
		return "screenshot"
	default:
		return "none"
	}
}

// Bindings maps keys to actions.
type Bindings map[sdl.Scancode]Action

// DefaultBindings returns W wireframe, F fill, Space pause, F12 screenshot
// and Esc/Q quit.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_W:      ActionWireframe,
		sdl.SCANCODE_F:      ActionFill,
		sdl.SCANCODE_SPACE:  ActionTogglePause,
		sdl.SCANCODE_F12:    ActionScreenshot,
		sdl.SCANCODE_ESCAPE: ActionQuit,
		sdl.SCANCODE_Q:      ActionQuit,
	}
}

// Input handles all input processing.
type Input struct {
	bindings Bindings
	events   []Event
}

// New creates a new input handler.
func New(bindings Bindings) *Input {
	return &Input{
		bindings: bindings,
		events:   make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
func (i *Input) Update() {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			// Held keys fire once
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
				i.events = append(i.events, Event{
					Type: EventMouseDown,
					X:    int(e.X),
					Y:    int(e.Y),
				})
			}
		}
	}
}

// Push appends an event as if it had been polled.
func (i *Input) Push(e Event) {
	i.events = append(i.events, e)
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Actions returns the actions triggered since the last Update, in order.
// Closing the window maps to ActionQuit.
func (i *Input) Actions() []Action {
	var actions []Action
	for _, e := range i.events {
		switch e.Type {
		case EventQuit:
			actions = append(actions, ActionQuit)
		case EventKeyDown:
			if a, ok := i.bindings[e.Key]; ok && a != ActionNone {
				actions = append(actions, a)
			}
		}
	}
	return actions
}

// Resized returns the last window size reported since the last Update.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}

// Clicked returns the position of the last left click since the last Update.
func (i *Input) Clicked() (x, y int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventMouseDown {
			x, y, ok = e.X, e.Y, true
		}
	}
	return x, y, ok
}
