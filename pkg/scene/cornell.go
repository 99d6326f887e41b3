package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cornell box dimensions: the walls are huge spheres whose visible caps
// approximate planes around a 20 unit cube centered at depth 20.
const (
	cornellEdge       = 20.0
	cornellDepth      = 20.0
	cornellWallRadius = 1000.0
)

// CornellConfig describes a Cornell box built from five wall spheres and three
// spheres inside, lit by a point light just below the ceiling
func CornellConfig() Config {
	wallOffset := cornellWallRadius + cornellEdge/4
	wall := func(center, color core.Vec3, diffuse, reflectivity float64) ObjectConfig {
		return ObjectConfig{
			SphereCenter:       center,
			SphereRadius:       cornellWallRadius,
			Color:              color,
			DiffuseCoefficient: diffuse,
			Reflectivity:       reflectivity,
		}
	}
	ball := func(center core.Vec3, radius float64, color core.Vec3, diffuse, reflectivity float64) ObjectConfig {
		return ObjectConfig{
			SphereCenter:       center,
			SphereRadius:       radius,
			Color:              color,
			DiffuseCoefficient: diffuse,
			Reflectivity:       reflectivity,
		}
	}

	return Config{
		Name:              "cornell",
		Resolution:        Resolution{Width: 1000, Height: 1000},
		Eye:               core.NewVec3(0, 0, 0),
		ViewDirection:     core.NewVec3(0, 0, -1),
		Up:                core.NewVec3(0, 1, 0),
		PlaneWidth:        10,
		PlaneHeight:       10,
		PlaneDistance:     15,
		MaxDepth:          DefaultMaxDepth,
		AmbientBrightness: DefaultAmbientBrightness,
		Ambient:           DefaultAmbient,
		Epsilon:           DefaultEpsilon,
		Light:             core.NewVec3(0, cornellEdge/2-0.5, -cornellDepth),
		Objects: []ObjectConfig{
			// Walls: left, right, ceiling, floor, back
			wall(core.NewVec3(-wallOffset, 0, -cornellDepth), core.NewVec3(1, 0, 0), 0.4, 0.9),
			wall(core.NewVec3(wallOffset, 0, -cornellDepth), core.NewVec3(0, 1, 0), 0.4, 0.3),
			wall(core.NewVec3(0, wallOffset, -cornellDepth), core.NewVec3(0.2, 0.2, 0.2), 0.4, 0.3),
			wall(core.NewVec3(0, -wallOffset, -cornellDepth), core.NewVec3(1, 1, 1), 0.8, 0.3),
			wall(core.NewVec3(0, 0, -cornellDepth-wallOffset), core.NewVec3(1, 1, 1), 0.4, 0.3),

			ball(core.NewVec3(-2, 3.5, -18), 1.5, core.NewVec3(0, 0, 1), 0.6, 0.9),
			ball(core.NewVec3(2, 3.5, -22), 1.8, core.NewVec3(1, 0, 0), 0.4, 0.3),
			ball(core.NewVec3(-1, 2.5, -23), 1.0, core.NewVec3(1, 1, 0), 0.7, 0.94),
		},
	}
}

