package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Lambert returns the brightness factor ambient + diffuse·max(0, l̂·n̂).
// toLight and normal need not be unit length but must be non-zero.
func Lambert(toLight, normal core.Vec3, diffuse, ambient float64) float64 {
	l := toLight.Normalize()
	n := normal.Normalize()

	// Back-facing surfaces receive no direct light
	cosine := max(0, n.Dot(l))
	return ambient + diffuse*cosine
}
