// Package inventory records what a plant contains: its bodies, its registered geometry,
// and gravity. Records can be written to SQLite for inspection or to a compressed snapshot
// file that the viewer reads back.
package inventory

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"

	"rolling-sphere/internal/geometry"
	"rolling-sphere/internal/multibody"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

type Snapshot struct {
	Version    int        `json:"version"`
	Gravity    [3]float64 `json:"gravity"`
	Bodies     []Body     `json:"bodies"`
	Geometries []Geometry `json:"geometries"`
}

type Body struct {
	Index int        `json:"index"`
	Name  string     `json:"name"`
	Mass  float64    `json:"mass"`
	COM   [3]float64 `json:"com"`
	// Inertia holds the diagonal (Ixx, Iyy, Izz) of the rotational inertia about the body origin.
	Inertia [3]float64 `json:"inertia"`
}

type Geometry struct {
	ID         int       `json:"id"`
	Body       string    `json:"body"`
	Name       string    `json:"name"`
	ScopedName string    `json:"scoped_name"`
	Role       string    `json:"role"`
	Shape      string    `json:"shape"`
	Dimensions []float64 `json:"dimensions"`
	// Translation and Rotation (w, x, y, z) give the pose in the body frame.
	Translation [3]float64     `json:"translation"`
	Rotation    [4]float64     `json:"rotation"`
	Color       *geometry.Rgba `json:"color,omitempty"`
	// Properties maps "group/name" to the formatted value.
	Properties map[string]string `json:"properties,omitempty"`
}

// Capture records plant. Geometry is listed per body, collision before visual, in
// registration order. A plant without a scene graph has no geometries.
func Capture(plant *multibody.Plant) (Snapshot, error) {
	snap := Snapshot{
		Version: SnapshotVersion,
		Gravity: [3]float64(plant.GravityField().GravityVector()),
	}
	sg := plant.SceneGraph()
	for _, b := range plant.Bodies() {
		M := b.SpatialInertia()
		snap.Bodies = append(snap.Bodies, Body{
			Index:   int(b.Index()),
			Name:    b.Name(),
			Mass:    M.Mass,
			COM:     [3]float64(M.COM),
			Inertia: [3]float64(M.RotationalInertia().Moments()),
		})
		if sg == nil {
			continue
		}
		ids := append(plant.CollisionGeometries(b), plant.VisualGeometries(b)...)
		for _, id := range ids {
			g, err := captureGeometry(sg, b.Name(), id)
			if err != nil {
				return Snapshot{}, err
			}
			snap.Geometries = append(snap.Geometries, g)
		}
	}
	return snap, nil
}

func captureGeometry(sg *geometry.SceneGraph, body string, id geometry.GeometryID) (Geometry, error) {
	inst, err := sg.Geometry(id)
	if err != nil {
		return Geometry{}, err
	}
	scoped, err := sg.ScopedName(id)
	if err != nil {
		return Geometry{}, err
	}
	q := inst.Pose.Rotation
	out := Geometry{
		ID:          int(id),
		Body:        body,
		Name:        inst.Name,
		ScopedName:  scoped,
		Role:        inst.Role.String(),
		Shape:       inst.Shape.Kind(),
		Dimensions:  geometry.Dimensions(inst.Shape),
		Translation: [3]float64(inst.Pose.Translation),
		Rotation:    [4]float64{q.W, q.V.X(), q.V.Y(), q.V.Z()},
	}
	var props *geometry.Properties
	switch {
	case inst.Proximity != nil:
		props = &inst.Proximity.Properties
	case inst.Illustration != nil:
		props = &inst.Illustration.Properties
		if c, err := geometry.GetAs[geometry.Rgba](props, geometry.PhongGroup, geometry.Diffuse); err == nil {
			out.Color = &c
		}
	}
	if props != nil {
		out.Properties = flatten(props)
	}
	return out, nil
}

func flatten(p *geometry.Properties) map[string]string {
	out := make(map[string]string)
	for _, g := range p.GroupNames() {
		for _, n := range p.PropertyNames(g) {
			v, _ := p.Get(g, n)
			out[g+"/"+n] = fmt.Sprintf("%v", v)
		}
	}
	return out
}

// VisualGeometries returns the illustration geometries of the named body.
func (s Snapshot) VisualGeometries(body string) []Geometry {
	var out []Geometry
	for _, g := range s.Geometries {
		if g.Body == body && g.Role == geometry.RoleIllustration.String() {
			out = append(out, g)
		}
	}
	return out
}

// BodyNames returns the body names, sorted.
func (s Snapshot) BodyNames() []string {
	out := make([]string, 0, len(s.Bodies))
	for _, b := range s.Bodies {
		out = append(out, b.Name)
	}
	sort.Strings(out)
	return out
}

// WriteSnapshot writes snap to path as zstd-compressed JSON.
func WriteSnapshot(path string, snap Snapshot) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)
	if err := json.NewEncoder(bw).Encode(&snap); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	if err := json.NewDecoder(dec).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return snap, fmt.Errorf("snapshot version %d, want %d", snap.Version, SnapshotVersion)
	}
	return snap, nil
}
