package geometry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnknownSource   = errors.New("unknown geometry source")
	ErrUnknownFrame    = errors.New("unknown frame")
	ErrFrameNotOwned   = errors.New("frame belongs to another source")
	ErrDuplicateName   = errors.New("duplicate geometry name")
	ErrUnknownGeometry = errors.New("unknown geometry")
	ErrMissingRole     = errors.New("geometry instance has no role properties")
)

// SourceID identifies a client that registers frames and geometry.
type SourceID = uuid.UUID

// FrameID identifies a registered frame. WorldFrame is always present.
type FrameID int

// GeometryID identifies a registered geometry. IDs start at 1 and are never reused.
type GeometryID int

// WorldFrame is the id of the frame every anchored geometry is attached to.
const WorldFrame FrameID = 0

// WorldFrameName is the name of WorldFrame used in scoped geometry names.
const WorldFrameName = "world"

// Role is what a geometry is registered for.
type Role int

const (
	RoleProximity Role = iota + 1
	RoleIllustration
)

func (r Role) String() string {
	switch r {
	case RoleProximity:
		return "proximity"
	case RoleIllustration:
		return "illustration"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// GeometryInstance is a shape posed in its parent frame with exactly one set of role properties.
type GeometryInstance struct {
	ID    GeometryID
	Frame FrameID
	Name  string
	Pose  RigidTransform
	Shape Shape
	Role  Role

	Proximity    *ProximityProperties
	Illustration *IllustrationProperties
}

// NewProximityInstance returns an unregistered collision geometry.
func NewProximityInstance(pose RigidTransform, shape Shape, name string, props ProximityProperties) GeometryInstance {
	p := props.Clone()
	return GeometryInstance{
		Name:      name,
		Pose:      pose,
		Shape:     shape,
		Role:      RoleProximity,
		Proximity: &ProximityProperties{Properties: p},
	}
}

// NewIllustrationInstance returns an unregistered visual geometry.
func NewIllustrationInstance(pose RigidTransform, shape Shape, name string, props IllustrationProperties) GeometryInstance {
	p := props.Clone()
	return GeometryInstance{
		Name:         name,
		Pose:         pose,
		Shape:        shape,
		Role:         RoleIllustration,
		Illustration: &IllustrationProperties{Properties: p},
	}
}

// clone copies the instance so property maps are not shared with the caller.
func (g GeometryInstance) clone() GeometryInstance {
	out := g
	if g.Proximity != nil {
		out.Proximity = &ProximityProperties{Properties: g.Proximity.Clone()}
	}
	if g.Illustration != nil {
		out.Illustration = &IllustrationProperties{Properties: g.Illustration.Clone()}
	}
	return out
}

type source struct {
	name   string
	frames map[FrameID]bool
}

type frame struct {
	source SourceID
	name   string
}

type nameKey struct {
	frame FrameID
	role  Role
	name  string
}

// SceneGraph is the registry of geometry sources, frames, and geometries.
// It is not safe for concurrent use; it is populated once while a model is built.
type SceneGraph struct {
	sources    map[SourceID]*source
	frames     map[FrameID]frame
	geometries []GeometryInstance
	byID       map[GeometryID]int
	names      map[nameKey]GeometryID
	nextFrame  FrameID
	nextGeom   GeometryID
}

// NewSceneGraph returns an empty scene graph containing only the world frame.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		sources:   make(map[SourceID]*source),
		frames:    map[FrameID]frame{WorldFrame: {name: WorldFrameName}},
		byID:      make(map[GeometryID]int),
		names:     make(map[nameKey]GeometryID),
		nextFrame: WorldFrame + 1,
		nextGeom:  1,
	}
}

// WorldFrameID returns the id of the world frame.
func (sg *SceneGraph) WorldFrameID() FrameID { return WorldFrame }

// RegisterSource adds a new source with the given name and returns its id.
func (sg *SceneGraph) RegisterSource(name string) SourceID {
	id := uuid.New()
	sg.sources[id] = &source{name: name, frames: make(map[FrameID]bool)}
	return id
}

// SourceName returns the name a source was registered with.
func (sg *SceneGraph) SourceName(id SourceID) (string, error) {
	s, ok := sg.sources[id]
	if !ok {
		return "", fmt.Errorf("%s: %w", id, ErrUnknownSource)
	}
	return s.name, nil
}

// RegisterFrame adds a frame owned by the source. Frame names need not be unique.
func (sg *SceneGraph) RegisterFrame(src SourceID, name string) (FrameID, error) {
	s, ok := sg.sources[src]
	if !ok {
		return 0, fmt.Errorf("register frame %q: %s: %w", name, src, ErrUnknownSource)
	}
	id := sg.nextFrame
	sg.nextFrame++
	sg.frames[id] = frame{source: src, name: name}
	s.frames[id] = true
	return id, nil
}

// FrameName returns the name of a registered frame.
func (sg *SceneGraph) FrameName(id FrameID) (string, error) {
	f, ok := sg.frames[id]
	if !ok {
		return "", fmt.Errorf("frame %d: %w", id, ErrUnknownFrame)
	}
	return f.name, nil
}

// RegisterGeometry attaches g to frame, which must belong to src.
// Names must be unique among geometries with the same role on the same frame.
func (sg *SceneGraph) RegisterGeometry(src SourceID, frameID FrameID, g GeometryInstance) (GeometryID, error) {
	s, ok := sg.sources[src]
	if !ok {
		return 0, fmt.Errorf("register geometry %q: %s: %w", g.Name, src, ErrUnknownSource)
	}
	if _, ok := sg.frames[frameID]; !ok {
		return 0, fmt.Errorf("register geometry %q: frame %d: %w", g.Name, frameID, ErrUnknownFrame)
	}
	if frameID != WorldFrame && !s.frames[frameID] {
		return 0, fmt.Errorf("register geometry %q: frame %d: %w", g.Name, frameID, ErrFrameNotOwned)
	}
	if g.Shape == nil {
		return 0, fmt.Errorf("register geometry %q: nil shape: %w", g.Name, ErrInvalidShape)
	}
	switch {
	case g.Role == RoleProximity && g.Proximity != nil:
	case g.Role == RoleIllustration && g.Illustration != nil:
	default:
		return 0, fmt.Errorf("register geometry %q: %w", g.Name, ErrMissingRole)
	}
	key := nameKey{frame: frameID, role: g.Role, name: g.Name}
	if _, dup := sg.names[key]; dup {
		return 0, fmt.Errorf("register geometry %q on frame %d (%s): %w", g.Name, frameID, g.Role, ErrDuplicateName)
	}

	g = g.clone()
	g.ID = sg.nextGeom
	g.Frame = frameID
	sg.nextGeom++
	sg.byID[g.ID] = len(sg.geometries)
	sg.geometries = append(sg.geometries, g)
	sg.names[key] = g.ID
	return g.ID, nil
}

// RegisterAnchoredGeometry attaches g to the world frame.
func (sg *SceneGraph) RegisterAnchoredGeometry(src SourceID, g GeometryInstance) (GeometryID, error) {
	return sg.RegisterGeometry(src, WorldFrame, g)
}

// NumGeometries returns the number of registered geometries across all roles.
func (sg *SceneGraph) NumGeometries() int { return len(sg.geometries) }

// NumGeometriesWithRole counts geometries registered for role.
func (sg *SceneGraph) NumGeometriesWithRole(role Role) int {
	n := 0
	for _, g := range sg.geometries {
		if g.Role == role {
			n++
		}
	}
	return n
}

// Geometry returns a copy of the registered geometry.
func (sg *SceneGraph) Geometry(id GeometryID) (GeometryInstance, error) {
	i, ok := sg.byID[id]
	if !ok {
		return GeometryInstance{}, fmt.Errorf("geometry %d: %w", id, ErrUnknownGeometry)
	}
	return sg.geometries[i].clone(), nil
}

// Geometries returns copies of all geometries in registration order.
func (sg *SceneGraph) Geometries() []GeometryInstance {
	out := make([]GeometryInstance, len(sg.geometries))
	for i, g := range sg.geometries {
		out[i] = g.clone()
	}
	return out
}

// ScopedName returns "<frame name>::<geometry name>".
func (sg *SceneGraph) ScopedName(id GeometryID) (string, error) {
	i, ok := sg.byID[id]
	if !ok {
		return "", fmt.Errorf("geometry %d: %w", id, ErrUnknownGeometry)
	}
	g := sg.geometries[i]
	return sg.frames[g.Frame].name + "::" + g.Name, nil
}
