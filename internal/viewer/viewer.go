// Package viewer draws the visual geometry of a captured plant in a raylib window.
// Bodies are drawn at fixed poses; there is no simulation.
package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"rolling-sphere/internal/engineconfig"
	"rolling-sphere/internal/geometry"
	"rolling-sphere/internal/inventory"
	"rolling-sphere/internal/logger"
)

const windowTitle = "rolling sphere"

// Viewer owns the camera, overlays, and mesh cache for one snapshot.
type Viewer struct {
	snap   inventory.Snapshot
	poses  map[string]geometry.RigidTransform
	prefs  engineconfig.ViewerPrefs
	log    *logger.Logger
	camera rl.Camera3D

	shapes  *shapeCache
	overlay *overlay

	gridExtent float32
	gridStep   float32
}

// New returns a viewer for snap. poses gives each body's pose in the world by name;
// bodies not listed (including the world body) are drawn at the identity.
// focus is the point the camera orbits and scale sets its distance.
func New(snap inventory.Snapshot, poses map[string]geometry.RigidTransform, focus mgl64.Vec3, scale float64,
	prefs engineconfig.ViewerPrefs, log *logger.Logger) *Viewer {
	v := &Viewer{
		snap:       snap,
		poses:      poses,
		prefs:      prefs,
		log:        log,
		shapes:     newShapeCache(),
		gridExtent: float32(10 * scale),
		gridStep:   float32(scale / 5),
	}
	d := float32(6 * scale)
	v.camera.Target = rl.NewVector3(float32(focus.X()), float32(focus.Y()), float32(focus.Z()))
	v.camera.Position = rl.NewVector3(v.camera.Target.X+d, v.camera.Target.Y-d, v.camera.Target.Z+0.6*d)
	v.camera.Up = rl.NewVector3(0, 0, 1)
	v.camera.Fovy = 45
	v.camera.Projection = rl.CameraPerspective

	v.overlay = &overlay{
		showFPS:      prefs.ShowFPS,
		showMemAlloc: prefs.ShowMemAlloc,
		info: []string{
			fmt.Sprintf("bodies: %d  geometries: %d", len(snap.Bodies), len(snap.Geometries)),
			fmt.Sprintf("gravity: (%.3g, %.3g, %.3g)", snap.Gravity[0], snap.Gravity[1], snap.Gravity[2]),
			"G grid  F fps  M memory  ESC quit",
		},
	}
	return v
}

// Prefs returns the preferences as toggled during the session.
func (v *Viewer) Prefs() engineconfig.ViewerPrefs {
	return v.prefs
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() {
	v.log.Logf("viewer: %d visual geometries", v.countVisuals())
	runWindow(windowTitle, v.prefs.WindowWidth, v.prefs.WindowHeight, v.update, v.draw)
	v.log.Log("viewer: closed")
}

func (v *Viewer) countVisuals() int {
	n := 0
	for _, b := range v.snap.Bodies {
		n += len(v.snap.VisualGeometries(b.Name))
	}
	return n
}

func (v *Viewer) update() {
	if rl.IsKeyPressed(rl.KeyG) {
		v.prefs.GridVisible = !v.prefs.GridVisible
	}
	if rl.IsKeyPressed(rl.KeyF) {
		v.prefs.ShowFPS = !v.prefs.ShowFPS
		v.overlay.showFPS = v.prefs.ShowFPS
	}
	if rl.IsKeyPressed(rl.KeyM) {
		v.prefs.ShowMemAlloc = !v.prefs.ShowMemAlloc
		v.overlay.showMemAlloc = v.prefs.ShowMemAlloc
	}
	rl.UpdateCamera(&v.camera, rl.CameraOrbital)
}

func (v *Viewer) draw() {
	p := v.camera.Position
	v.shapes.setView([3]float32{p.X, p.Y, p.Z})

	rl.BeginMode3D(v.camera)
	for _, b := range v.snap.Bodies {
		bodyPose, ok := v.poses[b.Name]
		if !ok {
			bodyPose = geometry.Identity()
		}
		for _, g := range v.snap.VisualGeometries(b.Name) {
			geomPose := geometry.NewRigidTransform(
				mgl64.Quat{W: g.Rotation[0], V: mgl64.Vec3{g.Rotation[1], g.Rotation[2], g.Rotation[3]}},
				mgl64.Vec3(g.Translation))
			color := geometry.DefaultDiffuse
			if g.Color != nil {
				color = *g.Color
			}
			v.shapes.draw(bodyPose.Compose(geomPose), g.Shape, g.Dimensions, color)
		}
	}
	if v.prefs.GridVisible {
		drawGrid(v.gridExtent, v.gridStep)
	}
	rl.EndMode3D()

	v.overlay.draw()
}
