package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidShape is returned when a shape dimension is zero, negative, or not finite.
var ErrInvalidShape = errors.New("invalid shape")

// Shape is a primitive geometric shape expressed in its own frame G.
// Box and Cylinder are centered on the origin of G; the cylinder's axis is +z.
type Shape interface {
	// Kind returns the primitive type name: "box", "sphere", or "cylinder".
	Kind() string
	Volume() float64
}

// Box is an axis-aligned box with full side lengths along x, y, z.
type Box struct {
	Width  float64
	Depth  float64
	Height float64
}

// Sphere is a sphere centered on the origin of its frame.
type Sphere struct {
	Radius float64
}

// Cylinder has its axis along +z, centered on the origin of its frame.
type Cylinder struct {
	Radius float64
	Length float64
}

// NewBox returns a box with the given side lengths.
func NewBox(width, depth, height float64) (Box, error) {
	for _, d := range []float64{width, depth, height} {
		if err := checkDimension("box", d); err != nil {
			return Box{}, err
		}
	}
	return Box{Width: width, Depth: depth, Height: height}, nil
}

// NewCube returns a box whose three sides all equal size.
func NewCube(size float64) (Box, error) {
	return NewBox(size, size, size)
}

// NewSphere returns a sphere with the given radius.
func NewSphere(radius float64) (Sphere, error) {
	if err := checkDimension("sphere", radius); err != nil {
		return Sphere{}, err
	}
	return Sphere{Radius: radius}, nil
}

// NewCylinder returns a cylinder with the given radius and length.
func NewCylinder(radius, length float64) (Cylinder, error) {
	if err := checkDimension("cylinder", radius); err != nil {
		return Cylinder{}, err
	}
	if err := checkDimension("cylinder", length); err != nil {
		return Cylinder{}, err
	}
	return Cylinder{Radius: radius, Length: length}, nil
}

func checkDimension(kind string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%s dimension %v: %w", kind, v, ErrInvalidShape)
	}
	return nil
}

func (Box) Kind() string      { return "box" }
func (Sphere) Kind() string   { return "sphere" }
func (Cylinder) Kind() string { return "cylinder" }

func (b Box) Volume() float64 { return b.Width * b.Depth * b.Height }

func (s Sphere) Volume() float64 { return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius }

func (c Cylinder) Volume() float64 { return math.Pi * c.Radius * c.Radius * c.Length }

// Dimensions returns the shape's defining sizes in a fixed order:
// box (width, depth, height), sphere (radius), cylinder (radius, length).
func Dimensions(s Shape) []float64 {
	switch v := s.(type) {
	case Box:
		return []float64{v.Width, v.Depth, v.Height}
	case Sphere:
		return []float64{v.Radius}
	case Cylinder:
		return []float64{v.Radius, v.Length}
	default:
		return nil
	}
}
