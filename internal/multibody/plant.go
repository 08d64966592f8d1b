package multibody

import (
	"errors"
	"fmt"

	"rolling-sphere/internal/geometry"
)

var (
	ErrFinalized         = errors.New("plant is finalized")
	ErrNoSceneGraph      = errors.New("plant is not registered with a scene graph")
	ErrAlreadyRegistered = errors.New("plant is already registered with a scene graph")
	ErrMissingFriction   = errors.New("proximity properties have no coulomb friction")
	ErrUnknownBody       = errors.New("body does not belong to this plant")
	ErrDuplicateBodyName = errors.New("duplicate body name")
	ErrNilSceneGraph     = errors.New("nil scene graph")
)

// WorldBodyName is the name of the body every plant starts with.
const WorldBodyName = "WorldBody"

// SceneGraphSourceName is the name a plant registers itself under.
const SceneGraphSourceName = "MultibodyPlant"

// BodyIndex identifies a body within its plant. The world body is index 0.
type BodyIndex int

const WorldBodyIndex BodyIndex = 0

// RigidBody is a body added to a Plant. Its fields are read-only outside this package.
type RigidBody struct {
	plant   *Plant
	index   BodyIndex
	name    string
	inertia SpatialInertia

	frame     geometry.FrameID
	collision []geometry.GeometryID
	visual    []geometry.GeometryID
}

func (b *RigidBody) Index() BodyIndex { return b.index }

func (b *RigidBody) Name() string { return b.name }

func (b *RigidBody) SpatialInertia() SpatialInertia { return b.inertia }

func (b *RigidBody) Mass() float64 { return b.inertia.Mass }

// FrameID is the scene graph frame of the body; zero until the plant is registered.
func (b *RigidBody) FrameID() geometry.FrameID { return b.frame }

// Plant is a multibody model: rigid bodies, the geometry registered for them, and gravity.
// It holds no state and performs no dynamics; it is the description a simulator consumes.
type Plant struct {
	bodies  []*RigidBody
	byName  map[string]*RigidBody
	gravity *UniformGravityField

	sceneGraph *geometry.SceneGraph
	source     geometry.SourceID

	finalized bool
}

// NewPlant returns a plant containing only the world body, with standard gravity in -z.
func NewPlant() *Plant {
	p := &Plant{
		byName:  make(map[string]*RigidBody),
		gravity: newUniformGravityField(),
	}
	world := &RigidBody{plant: p, index: WorldBodyIndex, name: WorldBodyName, frame: geometry.WorldFrame}
	p.bodies = append(p.bodies, world)
	p.byName[world.name] = world
	return p
}

// WorldBody returns the body fixed to the world frame.
func (p *Plant) WorldBody() *RigidBody { return p.bodies[WorldBodyIndex] }

// NumBodies counts all bodies, including the world body.
func (p *Plant) NumBodies() int { return len(p.bodies) }

// Bodies returns the bodies in index order, world first.
func (p *Plant) Bodies() []*RigidBody {
	out := make([]*RigidBody, len(p.bodies))
	copy(out, p.bodies)
	return out
}

// Body looks up a body by name.
func (p *Plant) Body(name string) (*RigidBody, bool) {
	b, ok := p.byName[name]
	return b, ok
}

// AddRigidBody adds a body with the given inertia. Names must be unique.
func (p *Plant) AddRigidBody(name string, inertia SpatialInertia) (*RigidBody, error) {
	if p.finalized {
		return nil, fmt.Errorf("add rigid body %q: %w", name, ErrFinalized)
	}
	if _, dup := p.byName[name]; dup {
		return nil, fmt.Errorf("add rigid body %q: %w", name, ErrDuplicateBodyName)
	}
	if err := inertia.validate(); err != nil {
		return nil, fmt.Errorf("add rigid body %q: %w", name, err)
	}
	b := &RigidBody{plant: p, index: BodyIndex(len(p.bodies)), name: name, inertia: inertia}
	if p.sceneGraph != nil {
		if err := p.registerFrame(b); err != nil {
			return nil, fmt.Errorf("add rigid body %q: %w", name, err)
		}
	}
	p.bodies = append(p.bodies, b)
	p.byName[name] = b
	return b, nil
}

// RegisterAsSourceForSceneGraph registers the plant and a frame for each body with sg.
// A plant can be registered once.
func (p *Plant) RegisterAsSourceForSceneGraph(sg *geometry.SceneGraph) (geometry.SourceID, error) {
	if p.finalized {
		return geometry.SourceID{}, fmt.Errorf("register with scene graph: %w", ErrFinalized)
	}
	if sg == nil {
		return geometry.SourceID{}, fmt.Errorf("register with scene graph: %w", ErrNilSceneGraph)
	}
	if p.sceneGraph != nil {
		return geometry.SourceID{}, fmt.Errorf("register with scene graph: %w", ErrAlreadyRegistered)
	}
	p.sceneGraph = sg
	p.source = sg.RegisterSource(SceneGraphSourceName)
	for _, b := range p.bodies[1:] {
		if err := p.registerFrame(b); err != nil {
			return geometry.SourceID{}, fmt.Errorf("register with scene graph: %w", err)
		}
	}
	return p.source, nil
}

func (p *Plant) registerFrame(b *RigidBody) error {
	f, err := p.sceneGraph.RegisterFrame(p.source, b.name)
	if err != nil {
		return err
	}
	b.frame = f
	return nil
}

// SceneGraph returns the scene graph the plant is registered with, or nil.
func (p *Plant) SceneGraph() *geometry.SceneGraph { return p.sceneGraph }

// SourceID returns the plant's source id and whether it has been registered.
func (p *Plant) SourceID() (geometry.SourceID, bool) {
	return p.source, p.sceneGraph != nil
}

func (p *Plant) checkGeometryRegistration(body *RigidBody) error {
	if p.finalized {
		return ErrFinalized
	}
	if p.sceneGraph == nil {
		return ErrNoSceneGraph
	}
	if body == nil || body.plant != p {
		return ErrUnknownBody
	}
	return nil
}

func (p *Plant) registerInstance(body *RigidBody, g geometry.GeometryInstance) (geometry.GeometryID, error) {
	if body.index == WorldBodyIndex {
		return p.sceneGraph.RegisterAnchoredGeometry(p.source, g)
	}
	return p.sceneGraph.RegisterGeometry(p.source, body.frame, g)
}

// RegisterCollisionGeometry registers shape at pose (in the body frame) for contact.
// props must carry material/coulomb_friction.
func (p *Plant) RegisterCollisionGeometry(body *RigidBody, pose geometry.RigidTransform, shape geometry.Shape,
	name string, props geometry.ProximityProperties) (geometry.GeometryID, error) {
	if err := p.checkGeometryRegistration(body); err != nil {
		return 0, fmt.Errorf("register collision geometry %q: %w", name, err)
	}
	if _, err := geometry.GetAs[CoulombFriction](&props.Properties, geometry.MaterialGroup, geometry.CoulombFrictionName); err != nil {
		return 0, fmt.Errorf("register collision geometry %q: %w: %v", name, ErrMissingFriction, err)
	}
	id, err := p.registerInstance(body, geometry.NewProximityInstance(pose, shape, name, props))
	if err != nil {
		return 0, fmt.Errorf("register collision geometry %q: %w", name, err)
	}
	body.collision = append(body.collision, id)
	return id, nil
}

// RegisterCollisionGeometryWithFriction registers a collision shape whose only property is friction.
func (p *Plant) RegisterCollisionGeometryWithFriction(body *RigidBody, pose geometry.RigidTransform, shape geometry.Shape,
	name string, friction CoulombFriction) (geometry.GeometryID, error) {
	var props geometry.ProximityProperties
	props.UpdateProperty(geometry.MaterialGroup, geometry.CoulombFrictionName, friction)
	return p.RegisterCollisionGeometry(body, pose, shape, name, props)
}

// RegisterVisualGeometry registers shape at pose (in the body frame) for illustration.
// A missing phong/diffuse is filled with geometry.DefaultDiffuse.
func (p *Plant) RegisterVisualGeometry(body *RigidBody, pose geometry.RigidTransform, shape geometry.Shape,
	name string, props geometry.IllustrationProperties) (geometry.GeometryID, error) {
	if err := p.checkGeometryRegistration(body); err != nil {
		return 0, fmt.Errorf("register visual geometry %q: %w", name, err)
	}
	props = geometry.IllustrationProperties{Properties: props.Clone()}
	if !props.HasProperty(geometry.PhongGroup, geometry.Diffuse) {
		props.UpdateProperty(geometry.PhongGroup, geometry.Diffuse, geometry.DefaultDiffuse)
	}
	id, err := p.registerInstance(body, geometry.NewIllustrationInstance(pose, shape, name, props))
	if err != nil {
		return 0, fmt.Errorf("register visual geometry %q: %w", name, err)
	}
	body.visual = append(body.visual, id)
	return id, nil
}

// RegisterVisualGeometryWithColor registers a visual shape with the given diffuse color.
func (p *Plant) RegisterVisualGeometryWithColor(body *RigidBody, pose geometry.RigidTransform, shape geometry.Shape,
	name string, diffuse geometry.Rgba) (geometry.GeometryID, error) {
	return p.RegisterVisualGeometry(body, pose, shape, name, geometry.NewIllustrationProperties(diffuse))
}

// NumCollisionGeometries counts collision geometries over all bodies.
func (p *Plant) NumCollisionGeometries() int {
	n := 0
	for _, b := range p.bodies {
		n += len(b.collision)
	}
	return n
}

// NumVisualGeometries counts visual geometries over all bodies.
func (p *Plant) NumVisualGeometries() int {
	n := 0
	for _, b := range p.bodies {
		n += len(b.visual)
	}
	return n
}

// CollisionGeometries returns the ids registered for contact on body, in order.
func (p *Plant) CollisionGeometries(body *RigidBody) []geometry.GeometryID {
	return append([]geometry.GeometryID(nil), body.collision...)
}

// VisualGeometries returns the ids registered for illustration on body, in order.
func (p *Plant) VisualGeometries(body *RigidBody) []geometry.GeometryID {
	return append([]geometry.GeometryID(nil), body.visual...)
}

// GravityField returns the plant's gravity field.
func (p *Plant) GravityField() *UniformGravityField { return p.gravity }

// MutableGravityField returns the gravity field for modification.
func (p *Plant) MutableGravityField() *UniformGravityField { return p.gravity }

// Finalize ends model construction. Later mutations fail with ErrFinalized.
func (p *Plant) Finalize() error {
	if p.finalized {
		return ErrFinalized
	}
	p.finalized = true
	return nil
}

func (p *Plant) IsFinalized() bool { return p.finalized }
