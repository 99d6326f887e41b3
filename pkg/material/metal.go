package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ReflectRay returns the mirror ray leaving point for an incoming ray hitting a surface
// with the given unit normal. The returned direction is normalized.
func ReflectRay(rayIn core.Ray, point, normal core.Vec3) core.Ray {
	reflected := core.Reflect(rayIn.Direction, normal).Normalize()
	return core.NewRay(point, reflected)
}
