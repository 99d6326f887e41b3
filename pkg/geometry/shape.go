package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// HitRecord contains information about a ray-object intersection.
// It is returned by value and only describes the query that produced it.
type HitRecord struct {
	T      float64   // Parameter t along the ray
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Unit outward surface normal at the intersection
}
