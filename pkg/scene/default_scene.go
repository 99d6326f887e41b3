package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// frontCamera returns a config looking down -z from the origin through a
// 10x10 image plane at distance 10
func frontCamera(name string, width, height int) Config {
	return Config{
		Name:              name,
		Resolution:        Resolution{Width: width, Height: height},
		Eye:               core.NewVec3(0, 0, 0),
		ViewDirection:     core.NewVec3(0, 0, -1),
		Up:                core.NewVec3(0, 1, 0),
		PlaneWidth:        10,
		PlaneHeight:       10,
		PlaneDistance:     10,
		MaxDepth:          DefaultMaxDepth,
		AmbientBrightness: DefaultAmbientBrightness,
		Ambient:           DefaultAmbient,
		Epsilon:           DefaultEpsilon,
	}
}

// SingleSphereConfig describes one diffuse red sphere lit from above
func SingleSphereConfig() Config {
	cfg := frontCamera("single-sphere", 100, 100)
	cfg.Light = core.NewVec3(0, 5, -10)
	cfg.Objects = []ObjectConfig{
		{
			SphereCenter:       core.NewVec3(0, 0, -10),
			SphereRadius:       2,
			Color:              core.NewVec3(1, 0, 0),
			DiffuseCoefficient: 0.8,
		},
	}
	return cfg
}

// MirrorConfig describes a black perfect mirror in front of the camera and a
// green sphere behind the camera that is only visible through the mirror
func MirrorConfig() Config {
	cfg := frontCamera("mirror", 100, 100)
	cfg.Light = core.NewVec3(0, 0, 0)
	cfg.Objects = []ObjectConfig{
		{
			SphereCenter:       core.NewVec3(0, 0, -10),
			SphereRadius:       2,
			Color:              core.NewVec3(0, 0, 0),
			DiffuseCoefficient: 0.4,
			Reflectivity:       1,
		},
		{
			SphereCenter:       core.NewVec3(0, 0, 10),
			SphereRadius:       2,
			Color:              core.NewVec3(0.2, 0.8, 0.2),
			DiffuseCoefficient: 0.8,
		},
	}
	return cfg
}

