package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const epsilon = 0.001

func newTestScene(t *testing.T, light core.Vec3) *Scene {
	t.Helper()
	s, err := New(light, epsilon)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func addSphere(t *testing.T, s *Scene, center core.Vec3, radius float64, color core.Vec3) {
	t.Helper()
	if err := s.AddObject(geometry.NewSphere(center, radius), material.New(color, 0.5, 0)); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}
}

func TestNewValidatesEpsilon(t *testing.T) {
	tests := []struct {
		name    string
		epsilon float64
		wantErr bool
	}{
		{"default", 0.001, false},
		{"zero", 0, true},
		{"negative", -0.1, true},
		{"half", 0.5, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(core.NewVec3(0, 0, 0), tt.epsilon)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(eps=%g) error = %v, wantErr %v", tt.epsilon, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if _, err := New(core.NewVec3(math.Inf(1), 0, 0), epsilon); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for infinite light, got %v", err)
	}
}

func TestAddObjectValidation(t *testing.T) {
	light := core.NewVec3(0, 5, 0)
	tests := []struct {
		name    string
		sphere  geometry.Sphere
		mat     material.Material
		wantErr error
	}{
		{"valid", geometry.NewSphere(core.NewVec3(0, 0, -10), 1), material.New(core.NewVec3(1, 0, 0), 0.5, 0.2), nil},
		{"zero radius", geometry.NewSphere(core.NewVec3(0, 0, -10), 0), material.New(core.NewVec3(1, 0, 0), 0.5, 0), core.ErrInvalidConfig},
		{"reflectivity above one", geometry.NewSphere(core.NewVec3(0, 0, -10), 1), material.New(core.NewVec3(1, 0, 0), 0.5, 1.5), core.ErrInvalidConfig},
		{"light on surface", geometry.NewSphere(core.NewVec3(0, 0, 0), 5), material.New(core.NewVec3(1, 0, 0), 0.5, 0), core.ErrDegenerateGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t, light)
			err := s.AddObject(tt.sphere, tt.mat)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if s.GetPrimitiveCount() != 1 {
					t.Errorf("Expected 1 object, got %d", s.GetPrimitiveCount())
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if s.GetPrimitiveCount() != 0 {
				t.Errorf("Rejected object was added")
			}
		})
	}
}

func TestClosestObject(t *testing.T) {
	s := newTestScene(t, core.NewVec3(0, 10, 0))
	addSphere(t, s, core.NewVec3(0, 0, -20), 1, core.NewVec3(0, 0, 1)) // far
	addSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 0, 0)) // near

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := s.ClosestObject(ray)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Object != &s.Objects[1] {
		t.Errorf("Expected nearest sphere (index 1), got %+v", hit.Object)
	}
	if math.Abs(hit.T-9) > 1e-9 {
		t.Errorf("Expected t=9, got %g", hit.T)
	}

	miss := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if _, ok := s.ClosestObject(miss); ok {
		t.Error("Expected ray pointing away to miss")
	}
}

func TestClosestObjectKeepsFirstOfCoincidentSurfaces(t *testing.T) {
	s := newTestScene(t, core.NewVec3(0, 10, 0))
	// Second sphere's front surface is nearer by less than epsilon
	addSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 0, 0))
	addSphere(t, s, core.NewVec3(0, 0, -10+epsilon/2), 1, core.NewVec3(0, 1, 0))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := s.ClosestObject(ray)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Object != &s.Objects[0] {
		t.Error("Expected the first listed sphere to win a near tie")
	}
}

func TestClosestObjectIgnoresEmptyScene(t *testing.T) {
	s := newTestScene(t, core.NewVec3(0, 10, 0))
	if _, ok := s.ClosestObject(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))); ok {
		t.Error("Expected no hit in an empty scene")
	}
}

func TestIsLit(t *testing.T) {
	tests := []struct {
		name     string
		blocker  *core.Vec3
		point    core.Vec3
		expected bool
	}{
		{"nothing in the way", nil, core.NewVec3(0, 0, 0), true},
		{"blocker between point and light", vecPtr(core.NewVec3(0, 5, 0)), core.NewVec3(0, 0, 0), false},
		{"blocker beyond the light", vecPtr(core.NewVec3(0, 15, 0)), core.NewVec3(0, 0, 0), true},
		{"blocker behind the point", vecPtr(core.NewVec3(0, -5, 0)), core.NewVec3(0, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t, core.NewVec3(0, 10, 0))
			if tt.blocker != nil {
				addSphere(t, s, *tt.blocker, 1, core.NewVec3(1, 1, 1))
			}
			if got := s.IsLit(tt.point); got != tt.expected {
				t.Errorf("IsLit(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestIsLitIgnoresOwnSurface(t *testing.T) {
	s := newTestScene(t, core.NewVec3(0, 10, 0))
	addSphere(t, s, core.NewVec3(0, 0, 0), 1, core.NewVec3(1, 1, 1))

	// Top of the sphere faces the light directly
	if !s.IsLit(core.NewVec3(0, 1, 0)) {
		t.Error("Expected point facing the light to be lit")
	}
	// Bottom of the sphere is shadowed by the sphere itself
	if s.IsLit(core.NewVec3(0, -1, 0)) {
		t.Error("Expected point facing away from the light to be shadowed")
	}
}

func TestBackground(t *testing.T) {
	s := newTestScene(t, core.NewVec3(0, 10, 0))
	s.LightingConfig.AmbientBrightness = 0.5
	if bg := s.Background(); bg != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected gray background, got %v", bg)
	}
}

func TestFromConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, core.ErrInvalidConfig},
		{"ambient brightness above one", func(c *Config) { c.AmbientBrightness = 1.5 }, core.ErrInvalidConfig},
		{"negative ambient", func(c *Config) { c.Ambient = -0.1 }, core.ErrInvalidConfig},
		{"zero width", func(c *Config) { c.Resolution.Width = 0 }, core.ErrInvalidConfig},
		{"zero plane distance", func(c *Config) { c.PlaneDistance = 0 }, core.ErrInvalidConfig},
		{"zero view direction", func(c *Config) { c.ViewDirection = core.Vec3{} }, core.ErrInvalidConfig},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }, core.ErrInvalidConfig},
		{"negative radius", func(c *Config) { c.Objects[0].SphereRadius = -2 }, core.ErrInvalidConfig},
		{"nan sphere center", func(c *Config) { c.Objects[0].SphereCenter = core.NewVec3(math.NaN(), 0, -10) }, core.ErrInvalidConfig},
		{"infinite eye", func(c *Config) { c.Eye = core.NewVec3(math.Inf(1), 0, 0) }, core.ErrInvalidConfig},
		{"light on surface", func(c *Config) { c.Light = core.NewVec3(0, 2, -10) }, core.ErrDegenerateGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SingleSphereConfig()
			tt.modify(&cfg)
			s, err := FromConfig(cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if s != nil {
				t.Error("Expected nil scene on error")
			}
		})
	}
}

func TestFromConfigAllowsZeroDepth(t *testing.T) {
	cfg := SingleSphereConfig()
	cfg.MaxDepth = 0
	s, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.SamplingConfig.MaxDepth != 0 {
		t.Errorf("Expected depth 0 to be kept, got %d", s.SamplingConfig.MaxDepth)
	}
}

func vecPtr(v core.Vec3) *core.Vec3 {
	return &v
}
