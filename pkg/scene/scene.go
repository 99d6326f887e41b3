package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Object pairs a sphere with the material of its surface
type Object struct {
	Sphere   geometry.Sphere
	Material material.Material
}

// Intersection is the result of a nearest-object query: the hit plus the object it belongs to
type Intersection struct {
	geometry.HitRecord
	Object *Object
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width    int // Image width
	Height   int // Image height
	MaxDepth int // Maximum reflection recursion depth
}

// LightingConfig contains the global shading constants
type LightingConfig struct {
	AmbientBrightness float64 // Background gray level and shadow attenuation factor
	Ambient           float64 // Ambient term added to the Lambertian factor during tracing
}

// Scene contains all the elements needed for rendering.
// A scene must not be mutated while a render is in progress.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Objects        []Object  // Objects in the scene, scanned in order
	Light          core.Vec3 // Position of the single point light
	Epsilon        float64   // Minimum parametric distance accepted as a hit
	SamplingConfig SamplingConfig
	LightingConfig LightingConfig
}

// New creates an empty scene lit by a point light
func New(light core.Vec3, epsilon float64) (*Scene, error) {
	if !(epsilon > 0) || epsilon >= 0.5 {
		return nil, core.Wrapf(core.ErrInvalidConfig, "epsilon must be in (0, 0.5), got %g", epsilon)
	}
	if !light.IsFinite() {
		return nil, core.Wrapf(core.ErrInvalidConfig, "light position %v is not finite", light)
	}
	return &Scene{
		Objects: make([]Object, 0),
		Light:   light,
		Epsilon: epsilon,
	}, nil
}

// AddObject validates and appends a sphere with its material
func (s *Scene) AddObject(sphere geometry.Sphere, mat material.Material) error {
	if err := sphere.Validate(); err != nil {
		return err
	}
	if err := mat.Validate(); err != nil {
		return err
	}
	// A light sitting on a surface leaves the shading direction undefined there
	if math.Abs(s.Light.Subtract(sphere.Center).Length()-sphere.Radius) <= s.Epsilon {
		return core.Wrapf(core.ErrDegenerateGeometry, "light %v lies on the surface of sphere at %v", s.Light, sphere.Center)
	}
	s.Objects = append(s.Objects, Object{Sphere: sphere, Material: mat})
	return nil
}

// Background returns the color seen where rays hit nothing
func (s *Scene) Background() core.Vec3 {
	g := s.LightingConfig.AmbientBrightness
	return core.NewVec3(g, g, g)
}

// ClosestObject finds the object whose surface the ray meets first.
// A later candidate only wins if it is nearer by more than epsilon, so the
// first of several near-coincident surfaces is kept.
func (s *Scene) ClosestObject(ray core.Ray) (Intersection, bool) {
	var closest Intersection
	minimalT := math.Inf(1)
	found := false

	for i := range s.Objects {
		hit, isHit := s.Objects[i].Sphere.Hit(ray, s.Epsilon, math.Inf(1))
		if isHit && hit.T > s.Epsilon && hit.T < minimalT-s.Epsilon {
			closest = Intersection{HitRecord: hit, Object: &s.Objects[i]}
			minimalT = hit.T
			found = true
		}
	}

	return closest, found
}

// IsLit reports whether the light is visible from point.
// The shadow ray is not normalized, so t=1 is the light itself and
// only objects strictly between the point and the light occlude it.
func (s *Scene) IsLit(point core.Vec3) bool {
	shadowRay := core.NewRay(point, s.Light.Subtract(point))
	blocker, isHit := s.ClosestObject(shadowRay)
	return !(isHit && blocker.T > s.Epsilon && blocker.T < 1-s.Epsilon)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
