package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"

	"github.com/go-gl/mathgl/mgl64"

	"rolling-sphere/internal/commands"
	"rolling-sphere/internal/config"
	"rolling-sphere/internal/engineconfig"
	"rolling-sphere/internal/env"
	"rolling-sphere/internal/geometry"
	"rolling-sphere/internal/inventory"
	"rolling-sphere/internal/logger"
	"rolling-sphere/internal/multibody"
	"rolling-sphere/internal/rollingsphere"
	"rolling-sphere/internal/viewer"
)

const (
	defaultDBPath       = "out/inventory.db"
	defaultSnapshotPath = "out/scene.json.zst"
)

func newRegistry(out io.Writer, log *logger.Logger) *commands.Registry {
	reg := commands.NewRegistry()

	buildFS := flag.NewFlagSet("build", flag.ContinueOnError)
	buildCfg := buildFS.String("config", "", "scene file (default $"+config.EnvScenePath+" or "+config.DefaultScenePath+")")
	reg.Register("build", "build the plant and print a summary", buildFS, func() error {
		_, plant, err := buildPlant(*buildCfg, log)
		if err != nil {
			return err
		}
		snap, err := inventory.Capture(plant)
		if err != nil {
			return err
		}
		printSummary(out, snap)
		return nil
	})

	exportFS := flag.NewFlagSet("export", flag.ContinueOnError)
	exportCfg := exportFS.String("config", "", "scene file")
	dbPath := exportFS.String("db", defaultDBPath, "SQLite inventory path (empty to skip)")
	snapPath := exportFS.String("snapshot", defaultSnapshotPath, "compressed snapshot path (empty to skip)")
	reg.Register("export", "write the plant inventory to SQLite and a snapshot file", exportFS, func() error {
		_, plant, err := buildPlant(*exportCfg, log)
		if err != nil {
			return err
		}
		snap, err := inventory.Capture(plant)
		if err != nil {
			return err
		}
		return export(context.Background(), out, log, snap, *dbPath, *snapPath)
	})

	viewFS := flag.NewFlagSet("view", flag.ContinueOnError)
	viewCfg := viewFS.String("config", "", "scene file")
	viewSnap := viewFS.String("snapshot", "", "view a snapshot file instead of building the scene")
	prefsPath := viewFS.String("prefs", engineconfig.DefaultPath, "viewer preferences file")
	reg.Register("view", "open a window showing the plant's visual geometry", viewFS, func() error {
		return view(log, *viewCfg, *viewSnap, *prefsPath)
	})

	return reg
}

// resolveScene loads the scene named by flagPath, then $ROLLING_SPHERE_CONFIG, then the
// default path. Only a missing default file falls back to config.Default.
func resolveScene(flagPath string, log *logger.Logger) (config.Scene, error) {
	path := flagPath
	if path == "" {
		path = env.Lookup(config.EnvScenePath, config.DefaultScenePath)
	}
	scene, err := config.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && flagPath == "" && path == config.DefaultScenePath {
			log.Logf("scene: %s not found, using defaults", path)
			return config.Default(), nil
		}
		return config.Scene{}, err
	}
	log.Logf("scene: loaded %s", path)
	return scene, nil
}

func buildPlant(flagPath string, log *logger.Logger) (config.Scene, *multibody.Plant, error) {
	scene, err := resolveScene(flagPath, log)
	if err != nil {
		return scene, nil, err
	}
	params, err := scene.Params()
	if err != nil {
		return scene, nil, err
	}
	var sg *geometry.SceneGraph
	if scene.SceneGraph {
		sg = geometry.NewSceneGraph()
	}
	plant, err := rollingsphere.MakeBouncingBallPlant(params, sg)
	if err != nil {
		return scene, nil, fmt.Errorf("build plant: %w", err)
	}
	if err := plant.Finalize(); err != nil {
		return scene, nil, err
	}
	log.Logf("plant: %d bodies, %d collision and %d visual geometries",
		plant.NumBodies(), plant.NumCollisionGeometries(), plant.NumVisualGeometries())
	return scene, plant, nil
}

func printSummary(out io.Writer, snap inventory.Snapshot) {
	fmt.Fprintf(out, "gravity %v\n", snap.Gravity)
	for _, b := range snap.Bodies {
		fmt.Fprintf(out, "body %d %s mass=%g inertia=%v\n", b.Index, b.Name, b.Mass, b.Inertia)
	}
	for _, g := range snap.Geometries {
		fmt.Fprintf(out, "  %-24s %-12s %-8s %v\n", g.ScopedName, g.Role, g.Shape, g.Dimensions)
	}
}

func export(ctx context.Context, out io.Writer, log *logger.Logger, snap inventory.Snapshot, dbPath, snapPath string) error {
	if dbPath != "" {
		if err := inventory.WriteSQLite(ctx, dbPath, snap); err != nil {
			return fmt.Errorf("export sqlite: %w", err)
		}
		log.Logf("export: wrote %s", dbPath)
		fmt.Fprintln(out, "wrote", dbPath)
	}
	if snapPath != "" {
		if err := inventory.WriteSnapshot(snapPath, snap); err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}
		log.Logf("export: wrote %s", snapPath)
		fmt.Fprintln(out, "wrote", snapPath)
	}
	return nil
}

func view(log *logger.Logger, cfgPath, snapPath, prefsPath string) error {
	prefs, err := engineconfig.Load(prefsPath)
	if err != nil {
		log.Logf("viewer prefs: %v, using defaults", err)
	}
	scene, snap, err := loadView(log, cfgPath, snapPath)
	if err != nil {
		return err
	}

	v := viewer.New(snap, ballPoses(scene), ballCenter(scene), scene.Ball.Radius, prefs, log)
	v.Run()

	if err := engineconfig.Save(prefsPath, v.Prefs()); err != nil {
		log.Logf("viewer prefs: %v", err)
	}
	return nil
}

// loadView returns the scene and the snapshot to draw. With snapPath set the snapshot
// is read from disk; the scene still supplies the ball placement.
func loadView(log *logger.Logger, cfgPath, snapPath string) (config.Scene, inventory.Snapshot, error) {
	if snapPath != "" {
		scene, err := resolveScene(cfgPath, log)
		if err != nil {
			return scene, inventory.Snapshot{}, err
		}
		snap, err := inventory.ReadSnapshot(snapPath)
		return scene, snap, err
	}
	scene, plant, err := buildPlant(cfgPath, log)
	if err != nil {
		return scene, inventory.Snapshot{}, err
	}
	snap, err := inventory.Capture(plant)
	return scene, snap, err
}

func ballCenter(scene config.Scene) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, scene.Ball.InitialHeight}
}

func ballPoses(scene config.Scene) map[string]geometry.RigidTransform {
	return map[string]geometry.RigidTransform{
		rollingsphere.BallName: geometry.Translation(ballCenter(scene)),
	}
}
