package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
	}
}

// Validate rejects spheres that cannot produce a meaningful surface normal
func (s Sphere) Validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return core.Wrapf(core.ErrInvalidConfig, "sphere radius must be positive and finite, got %g", s.Radius)
	}
	if !s.Center.IsFinite() {
		return core.Wrapf(core.ErrInvalidConfig, "sphere center %v is not finite", s.Center)
	}
	return nil
}

// Hit tests if a ray intersects with the sphere within the open interval (tMin, tMax).
// The ray direction does not need to be unit length.
func (s Sphere) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2ht + c = 0
	a := ray.Direction.LengthSquared()
	if a == 0 {
		return HitRecord{}, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		// A ray starting inside the sphere only reaches the far wall
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return HitRecord{}, false
		}
	}

	point := ray.At(root)
	return HitRecord{
		T:      root,
		Point:  point,
		Normal: point.Subtract(s.Center).Multiply(1.0 / s.Radius),
	}, true
}
