package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// useMemFs swaps the CLI filesystem for an in-memory one for the duration of a test
func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	previous := appFs
	fs := afero.NewMemMapFs()
	appFs = fs
	t.Cleanup(func() { appFs = previous })
	return fs
}

// runCLI executes the root command with args and returns its stdout
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateScene(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, loaders.SaveSceneConfig(fs, "scenes/red.yaml", scene.SingleSphereConfig()))

	tests := []struct {
		name        string
		sceneType   string
		expectError error
	}{
		// Built-in scenes
		{"cornell scene", "cornell", nil},
		{"single sphere scene", "single-sphere", nil},
		{"mirror scene", "mirror", nil},

		// Scene files
		{"scene file path", "scenes/red.yaml", nil},

		// Invalid scenes
		{"unknown scene", "nonexistent", core.ErrUnknownScene},
		{"missing scene file", "scenes/nonexistent.yaml", core.ErrUnknownScene},
		{"empty scene name", "", core.ErrUnknownScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(fs, tt.sceneType)

			if tt.expectError != nil {
				assert.True(t, errors.Is(err, tt.expectError), "expected %v, got %v", tt.expectError, err)
				assert.Nil(t, s)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, s)
			assert.Positive(t, s.CameraConfig.Width)
			assert.Positive(t, s.SamplingConfig.Height)
			assert.Positive(t, s.SamplingConfig.Width)
		})
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name         string
		sceneType    string
		expectedBase string
	}{
		{"built-in scene", "cornell", "cornell"},
		{"hyphenated scene", "single-sphere", "single-sphere"},
		{"scene file path", "scenes/box.yaml", "box"},
		{"nested scene file", "scenes/subdir/my-scene.json", "my-scene"},
		{"empty name", "", "scene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputDir := createOutputDir(tt.sceneType)
			assert.Equal(t, filepath.Join("output", tt.expectedBase), outputDir)
		})
	}
}

func TestResolveFormat(t *testing.T) {
	format, err := resolveFormat("", "")
	require.NoError(t, err)
	assert.Equal(t, "ppm", string(format))

	format, err = resolveFormat("", "out/image.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(format))

	format, err = resolveFormat("ppm", "out/image.png")
	require.NoError(t, err)
	assert.Equal(t, "ppm", string(format))

	_, err = resolveFormat("gif", "")
	assert.True(t, errors.Is(err, core.ErrImageWrite))
}

func TestRenderCommand(t *testing.T) {
	fs := useMemFs(t)

	_, err := runCLI(t, "render", "--scene", "single-sphere", "--width", "20", "--height", "20",
		"--workers", "2", "--tile-size", "8", "--out", "out/sphere.ppm")
	require.NoError(t, err)

	img, err := loaders.LoadImage(fs, "out/sphere.ppm")
	require.NoError(t, err)
	assert.Equal(t, 20, img.Width)
	assert.Equal(t, 20, img.Height)

	// Corner misses the sphere and shows the 0.5 gray background (127/255)
	assert.InDelta(t, 127.0/255.0, img.Pixels[0].X, 1e-9)
	assert.Equal(t, img.Pixels[0].X, img.Pixels[0].Y)

	// Center sees the red sphere
	center := img.Pixels[10*20+10]
	assert.Greater(t, center.X, center.Y)
	assert.Greater(t, center.X, center.Z)
}

func TestRenderCommandDefaultOutput(t *testing.T) {
	fs := useMemFs(t)

	_, err := runCLI(t, "render", "--scene", "mirror", "--width", "8", "--height", "8", "--format", "png")
	require.NoError(t, err)

	matches, err := afero.Glob(fs, filepath.Join("output", "mirror", "render_*.png"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRenderCommandErrors(t *testing.T) {
	useMemFs(t)

	_, err := runCLI(t, "render", "--scene", "nonexistent")
	assert.True(t, errors.Is(err, core.ErrUnknownScene), "got %v", err)

	_, err = runCLI(t, "render", "--scene", "single-sphere", "--max-depth", "-1", "--out", "x.ppm")
	assert.True(t, errors.Is(err, core.ErrInvalidConfig), "got %v", err)

	_, err = runCLI(t, "render", "--scene", "single-sphere", "--width", "4", "--height", "4", "--out", "x.bmp")
	assert.True(t, errors.Is(err, core.ErrImageWrite), "got %v", err)
}

func TestConfigFile(t *testing.T) {
	fs := useMemFs(t)

	_, err := runCLI(t, "--config", "missing.yaml", "scenes", "list")
	assert.True(t, errors.Is(err, core.ErrInvalidConfig), "got %v", err)

	require.NoError(t, afero.WriteFile(fs, "settings.yaml", []byte("format: png\n"), 0644))
	_, err = runCLI(t, "--config", "settings.yaml", "render", "--scene", "single-sphere",
		"--width", "4", "--height", "4")
	require.NoError(t, err)

	matches, err := afero.Glob(fs, filepath.Join("output", "single-sphere", "render_*.png"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestConfigFileDefaultMissing(t *testing.T) {
	useMemFs(t)

	_, err := runCLI(t, "scenes", "list")
	assert.NoError(t, err)
}

func TestScenesListCommand(t *testing.T) {
	out, err := runCLI(t, "scenes", "list")
	require.NoError(t, err)

	for _, info := range scene.ListBuiltinScenes() {
		assert.Contains(t, out, info.Name)
	}
	assert.True(t, strings.Index(out, "cornell") < strings.Index(out, "mirror"), "scenes should be sorted")
}

func TestScenesExportCommand(t *testing.T) {
	fs := useMemFs(t)

	_, err := runCLI(t, "scenes", "export", "cornell", "scenes/cornell.yaml")
	require.NoError(t, err)

	cfg, err := loaders.LoadSceneConfig(fs, "scenes/cornell.yaml")
	require.NoError(t, err)
	assert.Equal(t, scene.CornellConfig(), cfg)

	// The exported file renders like the built-in
	_, err = runCLI(t, "render", "--scene", "scenes/cornell.yaml", "--width", "10", "--height", "10", "--out", "out/c.ppm")
	require.NoError(t, err)

	_, err = runCLI(t, "scenes", "export", "nonexistent", "x.yaml")
	assert.True(t, errors.Is(err, core.ErrUnknownScene))
}

func TestScenesExportCommandReadOnly(t *testing.T) {
	previous := appFs
	appFs = afero.NewReadOnlyFs(afero.NewMemMapFs())
	t.Cleanup(func() { appFs = previous })

	_, err := runCLI(t, "scenes", "export", "mirror", "scenes/mirror.yaml")
	assert.True(t, errors.Is(err, core.ErrSceneWrite), "got %v", err)
}

func TestInspectCommand(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "img.ppm", []byte("P3\n2 1\n255\n255 255 255 0 0 0\n"), 0644))

	out, err := runCLI(t, "inspect", "img.ppm")
	require.NoError(t, err)
	assert.Contains(t, out, "2x1")
	assert.Contains(t, out, "mean luminance 0.5000")
	assert.Contains(t, out, "8-bit mean 0.5000")
}

func TestInspectCommandPNG(t *testing.T) {
	fs := useMemFs(t)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, afero.WriteFile(fs, "rgb.png", buf.Bytes(), 0644))

	out, err := runCLI(t, "inspect", "rgb.png")
	require.NoError(t, err)
	assert.Contains(t, out, "2x2")
	// Red, green and blue luminance weights sum to one
	assert.Contains(t, out, "8-bit mean 0.2500")
}
