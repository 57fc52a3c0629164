package solar

import (
	"errors"
	stdmath "math"
	"strings"
	"testing"

	"github.com/Faultbox/orrery/internal/config"
)

func TestBuildBodiesDefaults(t *testing.T) {
	cfgs := config.DefaultBodies()
	bodies, err := BuildBodies(cfgs)
	if err != nil {
		t.Fatalf("BuildBodies: %v", err)
	}
	if len(bodies) != len(cfgs) {
		t.Fatalf("got %d bodies, want %d", len(bodies), len(cfgs))
	}

	for i, b := range bodies {
		if b.Name != cfgs[i].Name {
			t.Errorf("body %d: name %q, want %q (table order)", i, b.Name, cfgs[i].Name)
		}
		if b.Texture.Valid() {
			t.Errorf("body %q: texture should be unset", b.Name)
		}
	}

	var moon, earth *Body
	for i := range bodies {
		switch bodies[i].Name {
		case "moon":
			moon = &bodies[i]
		case "earth":
			earth = &bodies[i]
		}
	}
	if moon == nil || earth == nil {
		t.Fatal("default table should contain earth and moon")
	}
	if moon.Params.Parent == nil {
		t.Fatal("moon should have a parent orbit")
	}
	if *moon.Params.Parent != earth.Params.Orbit() {
		t.Errorf("moon parent orbit = %+v, want earth's %+v", *moon.Params.Parent, earth.Params.Orbit())
	}
	if earth.Params.Parent != nil {
		t.Error("earth should orbit the origin")
	}
}

func TestBuildBodiesErrors(t *testing.T) {
	tests := []struct {
		name string
		cfgs []config.BodyConfig
		want error
	}{
		{
			name: "unknown parent",
			cfgs: []config.BodyConfig{{Name: "moon", Size: 1, Parent: "earth"}},
			want: ErrUnknownParent,
		},
		{
			name: "self parent",
			cfgs: []config.BodyConfig{{Name: "moon", Size: 1, Parent: "moon"}},
			want: ErrUnknownParent,
		},
		{
			name: "satellite of a satellite",
			cfgs: []config.BodyConfig{
				{Name: "earth", Size: 1, OrbitRadius: 8},
				{Name: "moon", Size: 1, OrbitRadius: 2, Parent: "earth"},
				{Name: "probe", Size: 1, OrbitRadius: 1, Parent: "moon"},
			},
			want: ErrNestedSatellite,
		},
		{
			name: "duplicate name",
			cfgs: []config.BodyConfig{{Name: "sun", Size: 1}, {Name: "sun", Size: 2}},
			want: ErrDuplicateBody,
		},
		{
			name: "non-finite rate",
			cfgs: []config.BodyConfig{{Name: "sun", Size: 1, OrbitalRate: float32(stdmath.Inf(-1))}},
			want: ErrNonFiniteInput,
		},
		{
			name: "zero size",
			cfgs: []config.BodyConfig{{Name: "dust"}},
			want: ErrInvalidBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildBodies(tt.cfgs)
			if !errors.Is(err, tt.want) {
				t.Errorf("BuildBodies() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildBodiesNestedSatelliteNamesParent(t *testing.T) {
	_, err := BuildBodies([]config.BodyConfig{
		{Name: "earth", Size: 1, OrbitRadius: 8},
		{Name: "moon", Size: 1, OrbitRadius: 2, Parent: "earth"},
		{Name: "probe", Size: 1, OrbitRadius: 1, Parent: "moon"},
	})
	if errors.Is(err, ErrUnknownParent) {
		t.Errorf("existing parent reported as unknown: %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), `"probe" orbits "moon"`) {
		t.Errorf("error %v should name the satellite and its parent", err)
	}
}
