package loaders

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first
}

// LoadImage loads a plain PPM (P3), PNG or JPEG image and converts it to a Vec3 color array
func LoadImage(fs afero.Fs, filename string) (*ImageData, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}

	if bytes.HasPrefix(data, []byte("P3")) {
		imageData, err := decodePPM(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode PPM %s: %w", filename, err)
		}
		return imageData, nil
	}

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// ToRGBA quantizes the pixels back to an 8-bit image
func (d *ImageData) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			c := d.Pixels[y*d.Width+x].Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(math.Round(255 * c.X)),
				G: uint8(math.Round(255 * c.Y)),
				B: uint8(math.Round(255 * c.Z)),
				A: 255,
			})
		}
	}
	return img
}

// decodePPM parses a plain-text PPM. Comments run from '#' to the end of the line.
func decodePPM(r io.Reader) (*ImageData, error) {
	var fields []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields = append(fields, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(fields) < 4 || fields[0] != "P3" {
		return nil, fmt.Errorf("missing P3 header")
	}
	header := make([]int, 3)
	for i := range header {
		v, err := strconv.Atoi(fields[i+1])
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid header field %q", fields[i+1])
		}
		header[i] = v
	}
	width, height, maxVal := header[0], header[1], header[2]

	samples := fields[4:]
	if len(samples) != width*height*3 {
		return nil, fmt.Errorf("expected %d samples, got %d", width*height*3, len(samples))
	}

	pixels := make([]core.Vec3, width*height)
	var rgb [3]float64
	for i := range pixels {
		for c := 0; c < 3; c++ {
			v, err := strconv.Atoi(samples[i*3+c])
			if err != nil || v < 0 || v > maxVal {
				return nil, fmt.Errorf("invalid sample %q at pixel %d", samples[i*3+c], i)
			}
			rgb[c] = float64(v) / float64(maxVal)
		}
		pixels[i] = core.NewVec3(rgb[0], rgb[1], rgb[2])
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}
