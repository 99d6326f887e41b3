package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Default values applied to scene files that leave a field out
const (
	DefaultMaxDepth          = 3
	DefaultAmbientBrightness = 0.5
	DefaultAmbient           = 0.65
	DefaultEpsilon           = 0.001
)

// Resolution is the raster size in pixels
type Resolution struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// ObjectConfig describes one sphere and its material
type ObjectConfig struct {
	SphereCenter       core.Vec3 `yaml:"sphere_center" mapstructure:"sphere_center"`
	SphereRadius       float64   `yaml:"sphere_radius" mapstructure:"sphere_radius"`
	Color              core.Vec3 `yaml:"color" mapstructure:"color"`
	DiffuseCoefficient float64   `yaml:"diffuse_coefficient" mapstructure:"diffuse_coefficient"`
	Reflectivity       float64   `yaml:"reflectivity" mapstructure:"reflectivity"`
	RefractionIndex    float64   `yaml:"refraction_index,omitempty" mapstructure:"refraction_index"`
}

// Config is the serializable description of a complete scene: camera, light, objects
// and the constants used while shading.
type Config struct {
	Name              string         `yaml:"name,omitempty" mapstructure:"name"`
	Resolution        Resolution     `yaml:"resolution" mapstructure:"resolution"`
	Eye               core.Vec3      `yaml:"eye" mapstructure:"eye"`
	ViewDirection     core.Vec3      `yaml:"view_direction" mapstructure:"view_direction"`
	Up                core.Vec3      `yaml:"up" mapstructure:"up"`
	PlaneWidth        float64        `yaml:"plane_width" mapstructure:"plane_width"`
	PlaneHeight       float64        `yaml:"plane_height" mapstructure:"plane_height"`
	PlaneDistance     float64        `yaml:"plane_distance" mapstructure:"plane_distance"`
	MaxDepth          int            `yaml:"max_depth" mapstructure:"max_depth"`
	AmbientBrightness float64        `yaml:"ambient_brightness" mapstructure:"ambient_brightness"`
	Ambient           float64        `yaml:"ambient" mapstructure:"ambient"`
	Epsilon           float64        `yaml:"epsilon" mapstructure:"epsilon"`
	Light             core.Vec3      `yaml:"light" mapstructure:"light"`
	Objects           []ObjectConfig `yaml:"objects" mapstructure:"objects"`
}

// CameraConfig extracts the camera parameters from the scene description
func (c Config) CameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Eye:           c.Eye,
		ViewDirection: c.ViewDirection,
		Up:            c.Up,
		PlaneWidth:    c.PlaneWidth,
		PlaneHeight:   c.PlaneHeight,
		PlaneDistance: c.PlaneDistance,
		Width:         c.Resolution.Width,
		Height:        c.Resolution.Height,
	}
}

// FromConfig validates a scene description and builds the scene and its camera.
// Every configuration error is reported here, before any rendering starts.
func FromConfig(cfg Config) (*Scene, error) {
	if cfg.MaxDepth < 0 {
		return nil, core.Wrapf(core.ErrInvalidConfig, "max depth must not be negative, got %d", cfg.MaxDepth)
	}
	if !(cfg.AmbientBrightness >= 0 && cfg.AmbientBrightness <= 1) {
		return nil, core.Wrapf(core.ErrInvalidConfig, "ambient brightness must be in [0,1], got %g", cfg.AmbientBrightness)
	}
	if !(cfg.Ambient >= 0) {
		return nil, core.Wrapf(core.ErrInvalidConfig, "ambient term must be non-negative, got %g", cfg.Ambient)
	}

	cameraConfig := cfg.CameraConfig()
	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}

	s, err := New(cfg.Light, cfg.Epsilon)
	if err != nil {
		return nil, err
	}
	s.Camera = camera
	s.CameraConfig = cameraConfig
	s.SamplingConfig = SamplingConfig{
		Width:    cfg.Resolution.Width,
		Height:   cfg.Resolution.Height,
		MaxDepth: cfg.MaxDepth,
	}
	s.LightingConfig = LightingConfig{
		AmbientBrightness: cfg.AmbientBrightness,
		Ambient:           cfg.Ambient,
	}

	for i, obj := range cfg.Objects {
		sphere := geometry.NewSphere(obj.SphereCenter, obj.SphereRadius)
		mat := material.Material{
			Color:           obj.Color,
			Diffuse:         obj.DiffuseCoefficient,
			Reflectivity:    obj.Reflectivity,
			RefractionIndex: obj.RefractionIndex,
		}
		if err := s.AddObject(sphere, mat); err != nil {
			return nil, core.Wrapf(err, "object %d", i)
		}
	}

	return s, nil
}
