package renderer

import (
	"image"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	HitPixels        int           // Pixels whose primary ray hit a lit surface
	ShadowedPixels   int           // Pixels whose primary hit was occluded from the light
	BackgroundPixels int           // Pixels showing the background
	MeanLuminance    float64       // Mean Rec. 709 luminance of the final colors
	LuminanceStdDev  float64       // Standard deviation of the luminance
	Tiles            int           // Number of tiles rendered
	Duration         time.Duration // Wall-clock render time
}

// addPixel counts one rendered pixel by class
func (s *RenderStats) addPixel(class PixelClass) {
	switch class {
	case PixelLit:
		s.HitPixels++
	case PixelShadowed:
		s.ShadowedPixels++
	default:
		s.BackgroundPixels++
	}
}

// merge accumulates the pixel counts of a finished tile
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.ShadowedPixels += other.ShadowedPixels
	s.BackgroundPixels += other.BackgroundPixels
	s.Tiles++
}

// LuminanceStats computes mean and standard deviation of pixel luminance
func LuminanceStats(pixels []core.Vec3) (mean, stdDev float64) {
	if len(pixels) == 0 {
		return 0, 0
	}
	lum := make([]float64, len(pixels))
	for i, p := range pixels {
		lum[i] = p.Luminance()
	}
	if len(lum) == 1 {
		return lum[0], 0
	}
	return stat.MeanStdDev(lum, nil)
}

// CalculateAverageLuminance returns the mean luminance of an 8-bit image
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	lum := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			colorVec := core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
			lum = append(lum, colorVec.Luminance())
		}
	}
	if len(lum) == 0 {
		return 0
	}
	return stat.Mean(lum, nil)
}
