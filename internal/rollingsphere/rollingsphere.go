// Package rollingsphere builds the bouncing/rolling ball model: a soft hydroelastic sphere
// over a rigid ground box, with colored spots that make the ball's rotation visible.
package rollingsphere

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"rolling-sphere/internal/geometry"
	"rolling-sphere/internal/multibody"
)

// BallName is the name of the body MakeBouncingBallPlant adds.
const BallName = "Ball"

// Geometry names registered by MakeBouncingBallPlant.
const (
	CollisionName = "collision"
	VisualName    = "visual"
)

const (
	// spotRadiusRatio sizes each spot (radius and length) relative to the ball radius.
	spotRadiusRatio = 0.2
	// spotInset pulls spot centers inside the sphere by this fraction of the spot radius,
	// so the caps do not sit exactly on the sphere surface.
	spotInset = 0.45
)

// Params describes the ball, its material, the ground, and gravity.
type Params struct {
	Radius         float64
	Mass           float64
	ElasticModulus float64
	Dissipation    float64
	Friction       multibody.CoulombFriction
	Gravity        mgl64.Vec3
	// GroundSize is the side length of the cube standing in for the ground half space.
	// Its top face is at z = 0.
	GroundSize float64
}

// DefaultParams returns a 5 cm, 100 g ball on a 5 m ground cube under standard gravity.
func DefaultParams() Params {
	return Params{
		Radius:         0.05,
		Mass:           0.1,
		ElasticModulus: 5e4,
		Dissipation:    5,
		Friction:       multibody.CoulombFriction{Static: 0.3, Dynamic: 0.3},
		Gravity:        mgl64.Vec3{0, 0, -multibody.StandardGravity},
		GroundSize:     5,
	}
}

// Spot is one of the rotation markers placed on the ball.
type Spot struct {
	Name   string
	Offset mgl64.Vec3
	Color  geometry.Rgba
}

// SpotRadius returns the radius (and length) of each spot cylinder for a ball of the given radius.
func SpotRadius(radius float64) float64 {
	return spotRadiusRatio * radius
}

// SpotOffsets returns the six spots on the ±x, ±y, ±z axes, red, green, and blue per axis.
func SpotOffsets(radius float64) []Spot {
	d := radius - spotInset*SpotRadius(radius)
	return []Spot{
		{Name: "sphere_x+", Offset: mgl64.Vec3{d, 0, 0}, Color: geometry.Red},
		{Name: "sphere_x-", Offset: mgl64.Vec3{-d, 0, 0}, Color: geometry.Red},
		{Name: "sphere_y+", Offset: mgl64.Vec3{0, d, 0}, Color: geometry.Green},
		{Name: "sphere_y-", Offset: mgl64.Vec3{0, -d, 0}, Color: geometry.Green},
		{Name: "sphere_z+", Offset: mgl64.Vec3{0, 0, d}, Color: geometry.Blue},
		{Name: "sphere_z-", Offset: mgl64.Vec3{0, 0, -d}, Color: geometry.Blue},
	}
}

// SpotPose places a cylinder at offset with its axis (+z) pointing along offset,
// using the smallest rotation that takes +z to that direction.
func SpotPose(offset mgl64.Vec3) geometry.RigidTransform {
	axis := offset.Normalize()
	q := mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, axis)
	return geometry.NewRigidTransform(q, offset)
}

// MakeBouncingBallPlant returns a plant with a single ball body. When sg is non-nil the
// plant is registered with it and the ground, ball, and spot geometries are added.
// The plant is not finalized; the caller owns it.
func MakeBouncingBallPlant(params Params, sg *geometry.SceneGraph) (*multibody.Plant, error) {
	plant := multibody.NewPlant()

	G := multibody.SolidSphere(params.Radius)
	M := multibody.NewSpatialInertia(params.Mass, mgl64.Vec3{}, G)
	ball, err := plant.AddRigidBody(BallName, M)
	if err != nil {
		return nil, err
	}

	if sg != nil {
		if _, err := plant.RegisterAsSourceForSceneGraph(sg); err != nil {
			return nil, err
		}
		if err := registerGround(plant, params); err != nil {
			return nil, fmt.Errorf("ground: %w", err)
		}
		if err := registerBall(plant, ball, params); err != nil {
			return nil, fmt.Errorf("ball: %w", err)
		}
	}

	plant.MutableGravityField().SetGravityVector(params.Gravity)
	return plant, nil
}

func registerGround(plant *multibody.Plant, params Params) error {
	size := params.GroundSize
	box, err := geometry.NewCube(size)
	if err != nil {
		return err
	}
	pose := geometry.Translation(mgl64.Vec3{0, 0, -size / 2})

	var props geometry.ProximityProperties
	if err := geometry.AddRigidHydroelasticProperties(size, &props); err != nil {
		return err
	}
	if err := props.AddProperty(geometry.MaterialGroup, geometry.CoulombFrictionName, params.Friction); err != nil {
		return err
	}
	if _, err := plant.RegisterCollisionGeometry(plant.WorldBody(), pose, box, CollisionName, props); err != nil {
		return err
	}
	_, err = plant.RegisterVisualGeometry(plant.WorldBody(), pose, box, VisualName, geometry.IllustrationProperties{})
	return err
}

func registerBall(plant *multibody.Plant, ball *multibody.RigidBody, params Params) error {
	sphere, err := geometry.NewSphere(params.Radius)
	if err != nil {
		return err
	}
	pose := geometry.Identity()

	var props geometry.ProximityProperties
	if err := multibody.AddContactMaterial(params.ElasticModulus, params.Dissipation, params.Friction, &props); err != nil {
		return err
	}
	if err := geometry.AddSoftHydroelasticProperties(params.Radius, &props); err != nil {
		return err
	}
	if _, err := plant.RegisterCollisionGeometry(ball, pose, sphere, CollisionName, props); err != nil {
		return err
	}
	if _, err := plant.RegisterVisualGeometryWithColor(ball, pose, sphere, VisualName, geometry.Orange); err != nil {
		return err
	}

	r := SpotRadius(params.Radius)
	spot, err := geometry.NewCylinder(r, r)
	if err != nil {
		return err
	}
	for _, s := range SpotOffsets(params.Radius) {
		if _, err := plant.RegisterVisualGeometryWithColor(ball, SpotPose(s.Offset), spot, s.Name, s.Color); err != nil {
			return err
		}
	}
	return nil
}
