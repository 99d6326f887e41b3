package output

import (
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Format is an output image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// Extension returns the file extension for the format, including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ParseFormat parses a format name such as "ppm" or "PNG"
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(name, "."))) {
	case FormatPPM:
		return FormatPPM, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", core.Wrapf(core.ErrImageWrite, "unknown image format %q", name)
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", core.Wrapf(core.ErrImageWrite, "cannot determine image format of %q", path)
	}
	return ParseFormat(ext)
}

func encoderFor(format Format) (func(io.Writer, image.Image) error, error) {
	switch format {
	case FormatPPM:
		return EncodePPM, nil
	case FormatPNG:
		return EncodePNG, nil
	}
	return nil, core.Wrapf(core.ErrImageWrite, "unknown image format %q", string(format))
}

// Writer saves rendered images to a filesystem
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a writer backed by fs
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// Save encodes img to path. The image is written to a temporary file in the
// same directory and renamed into place, so path either holds the complete
// image or is left untouched.
func (w *Writer) Save(path string, img image.Image, format Format) error {
	encode, err := encoderFor(format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return core.Wrapf(core.ErrImageWrite, "creating directory %s: %v", dir, err)
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return core.Wrapf(core.ErrImageWrite, "creating temporary file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()

	if err := encode(tmp, img); err != nil {
		tmp.Close()
		w.fs.Remove(tmpName)
		return core.Wrapf(core.ErrImageWrite, "encoding %s: %v", format, err)
	}
	if err := tmp.Close(); err != nil {
		w.fs.Remove(tmpName)
		return core.Wrapf(core.ErrImageWrite, "closing %s: %v", tmpName, err)
	}
	if err := w.fs.Chmod(tmpName, 0644); err != nil {
		w.fs.Remove(tmpName)
		return core.Wrapf(core.ErrImageWrite, "setting permissions on %s: %v", tmpName, err)
	}
	if err := w.fs.Rename(tmpName, path); err != nil {
		w.fs.Remove(tmpName)
		return core.Wrapf(core.ErrImageWrite, "renaming to %s: %v", path, err)
	}

	return nil
}
