package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
)

// RigidTransform is the pose X_AB of a frame B in a frame A: a unit quaternion rotation
// followed by a translation. The zero value is not valid; use Identity.
type RigidTransform struct {
	Rotation    mgl64.Quat
	Translation mgl64.Vec3
}

// Identity returns the transform with no rotation and no translation.
func Identity() RigidTransform {
	return RigidTransform{Rotation: mgl64.QuatIdent()}
}

// Translation returns a pure translation by p.
func Translation(p mgl64.Vec3) RigidTransform {
	return RigidTransform{Rotation: mgl64.QuatIdent(), Translation: p}
}

// NewRigidTransform returns the transform with rotation q (normalized) and translation p.
func NewRigidTransform(q mgl64.Quat, p mgl64.Vec3) RigidTransform {
	return RigidTransform{Rotation: q.Normalize(), Translation: p}
}

// RotateVector applies only the rotation part to v.
func (X RigidTransform) RotateVector(v mgl64.Vec3) mgl64.Vec3 {
	return X.Rotation.Rotate(v)
}

// TransformPoint maps a point p_B expressed in B to A.
func (X RigidTransform) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return X.Rotation.Rotate(p).Add(X.Translation)
}

// Compose returns X_AC = X_AB * X_BC.
func (X RigidTransform) Compose(other RigidTransform) RigidTransform {
	return RigidTransform{
		Rotation:    X.Rotation.Mul(other.Rotation).Normalize(),
		Translation: X.TransformPoint(other.Translation),
	}
}
