// Package gpu defines the graphics device abstraction the scene renders
// through, and its OpenGL implementation.
package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/Faultbox/orrery/internal/engine/mesh"
)

var (
	// ErrDeviceNotReady is returned when GPU work is requested before the
	// rendering context has been initialised.
	ErrDeviceNotReady = errors.New("graphics device not ready")
	// ErrInvalidHandle is returned for zero, released, or mismatched handles.
	ErrInvalidHandle = errors.New("invalid resource handle")
)

// Kind identifies the type of resource a Handle refers to.
type Kind uint8

const (
	KindNone Kind = iota
	KindMesh
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindTexture:
		return "texture"
	default:
		return "none"
	}
}

// Handle is an opaque reference to a resource owned by a Device.
// The zero Handle refers to nothing.
type Handle struct {
	kind Kind
	id   uint32
}

// NewHandle creates a handle. Device implementations use it to mint handles
// for the resources they own.
func NewHandle(kind Kind, id uint32) Handle {
	return Handle{kind: kind, id: id}
}

// Kind returns the resource kind.
func (h Handle) Kind() Kind { return h.kind }

// ID returns the device-specific identifier.
func (h Handle) ID() uint32 { return h.id }

// Valid reports whether h refers to a resource.
func (h Handle) Valid() bool { return h.kind != KindNone && h.id != 0 }

func (h Handle) String() string {
	return fmt.Sprintf("%s#%d", h.kind, h.id)
}

// Device creates GPU resources and issues draws. All methods must be called
// from the thread that owns the rendering context.
type Device interface {
	// UploadMesh copies geometry to the GPU. Uploading the same *mesh.Mesh
	// again returns the existing handle.
	UploadMesh(m *mesh.Mesh) (Handle, error)
	// DrawMesh issues one indexed triangle draw covering every index of the
	// mesh, using whatever program and material state is currently bound.
	DrawMesh(h Handle) error
	// UploadTexture creates a 2D texture from an RGBA image.
	UploadTexture(img *image.RGBA) (Handle, error)
	// BindTexture binds a texture to the given texture unit.
	BindTexture(unit int, h Handle) error
	// Release destroys the resource behind h. Releasing an unknown handle is a no-op.
	Release(h Handle)
	// Close releases every resource the device still owns.
	Close()
}
