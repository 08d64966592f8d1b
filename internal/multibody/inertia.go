package multibody

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidInertia is returned when a spatial inertia is not physically valid.
var ErrInvalidInertia = errors.New("spatial inertia is not physically valid")

// RotationalInertia is a symmetric 3x3 inertia matrix about some point, in kg·m².
type RotationalInertia struct {
	Ixx, Iyy, Izz float64
	Ixy, Ixz, Iyz float64
}

// Moments returns the diagonal (Ixx, Iyy, Izz).
func (I RotationalInertia) Moments() mgl64.Vec3 {
	return mgl64.Vec3{I.Ixx, I.Iyy, I.Izz}
}

// Products returns the off-diagonal (Ixy, Ixz, Iyz).
func (I RotationalInertia) Products() mgl64.Vec3 {
	return mgl64.Vec3{I.Ixy, I.Ixz, I.Iyz}
}

func (I RotationalInertia) scale(s float64) RotationalInertia {
	return RotationalInertia{
		Ixx: I.Ixx * s, Iyy: I.Iyy * s, Izz: I.Izz * s,
		Ixy: I.Ixy * s, Ixz: I.Ixz * s, Iyz: I.Iyz * s,
	}
}

// UnitInertia is a rotational inertia per unit mass, in m².
type UnitInertia struct {
	RotationalInertia
}

// SolidSphere returns the unit inertia of a solid sphere of radius r about its center.
func SolidSphere(r float64) UnitInertia {
	i := 2.0 / 5.0 * r * r
	return UnitInertia{RotationalInertia{Ixx: i, Iyy: i, Izz: i}}
}

// SolidBox returns the unit inertia of a solid box about its center.
func SolidBox(lx, ly, lz float64) UnitInertia {
	return UnitInertia{RotationalInertia{
		Ixx: (ly*ly + lz*lz) / 12,
		Iyy: (lx*lx + lz*lz) / 12,
		Izz: (lx*lx + ly*ly) / 12,
	}}
}

// SolidCylinder returns the unit inertia of a solid cylinder with axis z about its center.
func SolidCylinder(r, length float64) UnitInertia {
	perp := (3*r*r + length*length) / 12
	return UnitInertia{RotationalInertia{Ixx: perp, Iyy: perp, Izz: r * r / 2}}
}

// Scale returns the rotational inertia of mass distributed like u.
func (u UnitInertia) Scale(mass float64) RotationalInertia {
	return u.RotationalInertia.scale(mass)
}

// SpatialInertia is the mass, center of mass, and unit inertia of a body,
// all about and expressed in the body frame origin.
type SpatialInertia struct {
	Mass float64
	// COM is the position of the center of mass from the body origin.
	COM mgl64.Vec3
	// G is the unit inertia about the body origin.
	G UnitInertia
}

// NewSpatialInertia returns the spatial inertia of mass m with center of mass com
// and unit inertia g about the body origin.
func NewSpatialInertia(m float64, com mgl64.Vec3, g UnitInertia) SpatialInertia {
	return SpatialInertia{Mass: m, COM: com, G: g}
}

// RotationalInertia returns mass times G, about the body origin.
func (M SpatialInertia) RotationalInertia() RotationalInertia {
	return M.G.Scale(M.Mass)
}

// RotationalInertiaAboutCOM shifts the rotational inertia to the center of mass.
func (M SpatialInertia) RotationalInertiaAboutCOM() RotationalInertia {
	I := M.RotationalInertia()
	c := M.COM
	m := M.Mass
	return RotationalInertia{
		Ixx: I.Ixx - m*(c.Y()*c.Y()+c.Z()*c.Z()),
		Iyy: I.Iyy - m*(c.X()*c.X()+c.Z()*c.Z()),
		Izz: I.Izz - m*(c.X()*c.X()+c.Y()*c.Y()),
		Ixy: I.Ixy + m*c.X()*c.Y(),
		Ixz: I.Ixz + m*c.X()*c.Z(),
		Iyz: I.Iyz + m*c.Y()*c.Z(),
	}
}

// IsPhysicallyValid reports whether the mass is finite and non-negative and the
// moments about the center of mass are non-negative and satisfy the triangle inequality.
func (M SpatialInertia) IsPhysicallyValid() bool {
	return M.validate() == nil
}

func (M SpatialInertia) validate() error {
	if math.IsNaN(M.Mass) || math.IsInf(M.Mass, 0) || M.Mass < 0 {
		return fmt.Errorf("mass %v: %w", M.Mass, ErrInvalidInertia)
	}
	for _, v := range M.COM {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("center of mass %v: %w", M.COM, ErrInvalidInertia)
		}
	}
	I := M.RotationalInertiaAboutCOM()
	d := I.Moments()
	const tol = 1e-14
	for _, v := range append(d[:], I.Ixy, I.Ixz, I.Iyz) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("rotational inertia %v: %w", I, ErrInvalidInertia)
		}
	}
	scale := math.Max(1, d.X()+d.Y()+d.Z())
	if d.X() < -tol*scale || d.Y() < -tol*scale || d.Z() < -tol*scale {
		return fmt.Errorf("negative moment %v: %w", d, ErrInvalidInertia)
	}
	if d.X()+d.Y() < d.Z()-tol*scale || d.X()+d.Z() < d.Y()-tol*scale || d.Y()+d.Z() < d.X()-tol*scale {
		return fmt.Errorf("moments %v violate the triangle inequality: %w", d, ErrInvalidInertia)
	}
	return nil
}
