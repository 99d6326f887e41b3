package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes the appearance of a surface: its base color, how strongly it
// responds to the point light and how much of its final color comes from a mirror bounce.
type Material struct {
	Color        core.Vec3 // Base color, components conventionally in [0,1]
	Diffuse      float64   // Lambertian diffuse coefficient
	Reflectivity float64   // Weight of the recursively traced reflection, in [0,1]

	// RefractionIndex is carried for scene-file compatibility only. No shading
	// code reads it; refraction is not implemented.
	RefractionIndex float64
}

// New creates a material without a refraction index
func New(color core.Vec3, diffuse, reflectivity float64) Material {
	return Material{Color: color, Diffuse: diffuse, Reflectivity: reflectivity}
}

// IsReflective reports whether hits on this material spawn a reflection ray
func (m Material) IsReflective() bool {
	return m.Reflectivity > 0
}

// Validate rejects materials outside the ranges the shader assumes
func (m Material) Validate() error {
	if !(m.Reflectivity >= 0 && m.Reflectivity <= 1) {
		return core.Wrapf(core.ErrInvalidConfig, "reflectivity must be in [0,1], got %g", m.Reflectivity)
	}
	if !(m.Diffuse >= 0) || math.IsInf(m.Diffuse, 0) {
		return core.Wrapf(core.ErrInvalidConfig, "diffuse coefficient must be non-negative, got %g", m.Diffuse)
	}
	if !m.Color.IsFinite() {
		return core.Wrapf(core.ErrInvalidConfig, "color %v is not finite", m.Color)
	}
	if math.IsNaN(m.RefractionIndex) || m.RefractionIndex < 0 {
		return core.Wrapf(core.ErrInvalidConfig, "refraction index must be non-negative, got %g", m.RefractionIndex)
	}
	return nil
}
