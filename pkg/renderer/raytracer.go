package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// PixelClass records how a pixel's final color was produced
type PixelClass int

const (
	PixelBackground PixelClass = iota // Primary ray missed, or depth was exhausted
	PixelLit                          // Primary hit with the light visible
	PixelShadowed                     // Primary hit occluded from the light
)

// Raytracer shades pixels of a scene. It holds no mutable state, so one
// instance can be shared by any number of goroutines.
type Raytracer struct {
	scene  *scene.Scene
	width  int
	height int
}

// NewRaytracer creates a new raytracer for the scene's camera raster
func NewRaytracer(s *scene.Scene) *Raytracer {
	return &Raytracer{
		scene:  s,
		width:  s.SamplingConfig.Width,
		height: s.SamplingConfig.Height,
	}
}

// Trace returns the color seen along ray, following mirror reflections
// until depth runs out. The result is clamped to [0,1].
func (rt *Raytracer) Trace(ray core.Ray, depth int) core.Vec3 {
	if depth <= 0 {
		return rt.scene.Background()
	}

	hit, isHit := rt.scene.ClosestObject(ray)
	if !isHit {
		return rt.scene.Background()
	}

	mat := hit.Object.Material
	colorVec := mat.Color
	if mat.IsReflective() {
		reflected := material.ReflectRay(ray, hit.Point, hit.Normal)
		// Additive blend, clamped below
		colorVec = colorVec.Add(rt.Trace(reflected, depth-1).Multiply(mat.Reflectivity))
	}

	shade := material.Lambert(rt.scene.Light.Subtract(hit.Point), hit.Normal, mat.Diffuse, rt.scene.LightingConfig.Ambient)
	return colorVec.Multiply(shade).Clamp(0.0, 1.0)
}

// PixelColor computes the final color of camera pixel (i, j), where j=0 is the
// bottom row. Shadows are only tested at the primary hit.
func (rt *Raytracer) PixelColor(i, j int) (core.Vec3, PixelClass) {
	depth := rt.scene.SamplingConfig.MaxDepth
	ray := rt.scene.Camera.GetRay(i, j)
	colorVec := rt.Trace(ray, depth)
	if depth <= 0 {
		return colorVec, PixelBackground
	}

	hit, isHit := rt.scene.ClosestObject(ray)
	if !isHit {
		return colorVec, PixelBackground
	}

	g := rt.scene.LightingConfig.AmbientBrightness
	if !rt.scene.IsLit(hit.Point) {
		return colorVec.Multiply(g).Clamp(0.0, 1.0), PixelShadowed
	}

	mat := hit.Object.Material
	shade := (1-g)*material.Lambert(rt.scene.Light.Subtract(hit.Point), hit.Normal, mat.Diffuse, g) + g
	return colorVec.Multiply(shade).Clamp(0.0, 1.0), PixelLit
}

// RenderBounds renders the pixels of fb inside bounds. Bounds are in image
// coordinates with y growing downwards; the camera row is flipped here.
// Callers may render disjoint bounds concurrently into the same frame buffer.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, fb *FrameBuffer) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := rt.height - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			colorVec, class := rt.PixelColor(x, j)
			fb.Set(x, y, colorVec)
			stats.addPixel(class)
		}
	}

	return stats
}
