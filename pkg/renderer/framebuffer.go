package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// FrameBuffer holds linear [0,1] colors in image order: row 0 is the top of the picture
type FrameBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrameBuffer allocates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Set stores the color of pixel (x, y)
func (fb *FrameBuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// At returns the color of pixel (x, y)
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// vec3ToColor converts a Vec3 color to RGBA. Channels are truncated, not rounded.
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// ToRGBA converts the frame buffer to an 8-bit image
func (fb *FrameBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(fb.At(x, y)))
		}
	}
	return img
}

// SubImage extracts the pixels inside bounds as a standalone image
func (fb *FrameBuffer) SubImage(bounds image.Rectangle) *image.RGBA {
	tileImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			tileImage.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, vec3ToColor(fb.At(x, y)))
		}
	}
	return tileImage
}
