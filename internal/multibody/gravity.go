package multibody

import "github.com/go-gl/mathgl/mgl64"

// StandardGravity is the magnitude of the default gravity field, in m/s².
const StandardGravity = 9.81

// UniformGravityField applies the same acceleration to every body. The world is z-up.
type UniformGravityField struct {
	g mgl64.Vec3
}

func newUniformGravityField() *UniformGravityField {
	return &UniformGravityField{g: mgl64.Vec3{0, 0, -StandardGravity}}
}

func (f *UniformGravityField) GravityVector() mgl64.Vec3 {
	return f.g
}

// SetGravityVector replaces the field's acceleration.
func (f *UniformGravityField) SetGravityVector(g mgl64.Vec3) {
	f.g = g
}
