package output

import (
	"bufio"
	"fmt"
	"image"
	"io"
)

// EncodePPM writes img as a plain-text PPM (P3) with a maximum value of 255.
// Rows are written top to bottom, one row per line.
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sep := " "
			if x == bounds.Max.X-1 {
				sep = "\n"
			}
			// RGBA returns 16-bit channels; the high byte is the 8-bit value
			if _, err := fmt.Fprintf(bw, "%d %d %d%s", r>>8, g>>8, b>>8, sep); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
