package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Eye           core.Vec3 // Camera position
	ViewDirection core.Vec3 // Direction the camera looks in
	Up            core.Vec3 // Requested up direction, need not be orthogonal to ViewDirection
	PlaneWidth    float64   // Width of the image plane in world units
	PlaneHeight   float64   // Height of the image plane in world units
	PlaneDistance float64   // Distance from the eye to the image plane
	Width         int       // Raster width in pixels
	Height        int       // Raster height in pixels
}

// Camera maps pixel coordinates to primary rays through a rectangular image plane
type Camera struct {
	config  CameraConfig
	eye     core.Vec3
	u, v, w core.Vec3 // Orthonormal basis: right, up, backward
	left    float64
	right   float64
	bottom  float64
	top     float64
}

// NewCamera creates a camera, deriving an orthonormal basis from the view direction and up vector
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, core.Wrapf(core.ErrInvalidConfig, "resolution must be positive, got %dx%d", config.Width, config.Height)
	}
	if !config.Eye.IsFinite() {
		return nil, core.Wrapf(core.ErrInvalidConfig, "eye position %v is not finite", config.Eye)
	}
	if !positiveFinite(config.PlaneWidth) || !positiveFinite(config.PlaneHeight) {
		return nil, core.Wrapf(core.ErrInvalidConfig, "image plane must have positive size, got %gx%g", config.PlaneWidth, config.PlaneHeight)
	}
	if !positiveFinite(config.PlaneDistance) {
		return nil, core.Wrapf(core.ErrInvalidConfig, "image plane distance must be positive, got %g", config.PlaneDistance)
	}

	forward, err := config.ViewDirection.Unit()
	if err != nil {
		return nil, core.Wrap(core.ErrInvalidConfig, "view direction: "+err.Error())
	}
	if _, err := config.Up.Unit(); err != nil {
		return nil, core.Wrap(core.ErrInvalidConfig, "up vector: "+err.Error())
	}

	w := forward.Negate()
	u, err := config.Up.Cross(w).Unit()
	if err != nil {
		return nil, core.Wrap(core.ErrInvalidConfig, "up vector is parallel to the view direction: "+err.Error())
	}
	v := w.Cross(u)

	return &Camera{
		config: config,
		eye:    config.Eye,
		u:      u,
		v:      v,
		w:      w,
		left:   -config.PlaneWidth / 2,
		right:  config.PlaneWidth / 2,
		bottom: -config.PlaneHeight / 2,
		top:    config.PlaneHeight / 2,
	}, nil
}

func positiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

// GetRay generates the primary ray through the center of pixel (i, j).
// i counts columns from the left edge, j counts rows from the bottom edge.
func (c *Camera) GetRay(i, j int) core.Ray {
	pu := c.left + (c.right-c.left)*(float64(i)+0.5)/float64(c.config.Width)
	pv := c.bottom + (c.top-c.bottom)*(float64(j)+0.5)/float64(c.config.Height)

	direction := c.w.Multiply(-c.config.PlaneDistance).
		Add(c.u.Multiply(pu)).
		Add(c.v.Multiply(pv))

	return core.NewRay(c.eye, direction.Normalize())
}

// Basis returns the camera's right, up and backward unit vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// GetCameraForward returns the unit direction the camera looks in
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

