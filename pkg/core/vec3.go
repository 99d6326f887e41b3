package core

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Vec3 represents a 3D vector, point or linear RGB color.
// It shares its layout with gonum's r3.Vec so arithmetic is delegated there.
type Vec3 r3.Vec

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) vec() r3.Vec { return r3.Vec(v) }

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(r3.Add(v.vec(), other.vec()))
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3(r3.Sub(v.vec(), other.vec()))
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3(r3.Scale(scalar, v.vec()))
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return r3.Norm(v.vec())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return r3.Norm2(v.vec())
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.vec(), other.vec())
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(r3.Cross(v.vec(), other.vec()))
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged; use Unit where that case is an error.
func (v Vec3) Normalize() Vec3 {
	if v.Length() == 0 {
		return Vec3{}
	}
	return Vec3(r3.Unit(v.vec()))
}

// Unit returns a unit vector in the same direction, failing on zero-length
// or non-finite input instead of producing NaN components.
func (v Vec3) Unit() (Vec3, error) {
	length := v.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Vec3{}, Wrapf(ErrDegenerateGeometry, "cannot normalize vector %v", v)
	}
	return v.Multiply(1 / length), nil
}

// Index returns the i-th component (0=X, 1=Y, 2=Z)
func (v Vec3) Index(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("core: Vec3 index out of range")
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Luminance returns the Rec. 709 luminance of an RGB color
func (v Vec3) Luminance() float64 {
	return 0.2126*v.X + 0.7152*v.Y + 0.0722*v.Z
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return v.Multiply(-1)
}

// IsZero reports whether all components are zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsFinite reports whether no component is NaN or infinite
func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Reflect mirrors direction d about the unit normal n: d - 2(d·n)n
func Reflect(d, n Vec3) Vec3 {
	return d.Subtract(n.Multiply(2 * d.Dot(n)))
}

// MarshalYAML writes the vector as a flow sequence, e.g. [0, 9.5, -20]
func (v Vec3) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range []float64{v.X, v.Y, v.Z} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(c, 'g', -1, 64),
		})
	}
	return node, nil
}
