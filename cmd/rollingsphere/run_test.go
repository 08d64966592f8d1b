package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rolling-sphere/internal/commands"
	"rolling-sphere/internal/config"
	"rolling-sphere/internal/inventory"
	"rolling-sphere/internal/logger"
	"rolling-sphere/internal/rollingsphere"
)

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildCommand(t *testing.T) {
	path := writeScene(t, "ball:\n  radius: 0.1\n")
	var out bytes.Buffer
	reg := newRegistry(&out, logger.New(""))
	if err := reg.Execute([]string{"build", "-config", path}); err != nil {
		t.Fatalf("build: %v", err)
	}
	s := out.String()
	for _, want := range []string{"body 1 Ball", "world::collision", "Ball::sphere_z-", "illustration"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestBuildCommand_NoSceneGraph(t *testing.T) {
	path := writeScene(t, "scene_graph: false\n")
	var out bytes.Buffer
	reg := newRegistry(&out, logger.New(""))
	if err := reg.Execute([]string{"build", "-config", path}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(out.String(), "::") {
		t.Fatalf("expected no geometry:\n%s", out.String())
	}
}

func TestBuildCommand_BadFriction(t *testing.T) {
	path := writeScene(t, "ball:\n  friction:\n    static: 0.1\n    dynamic: 0.5\n")
	reg := newRegistry(&bytes.Buffer{}, logger.New(""))
	if err := reg.Execute([]string{"build", "-config", path}); err == nil {
		t.Fatal("expected friction error")
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, "ground:\n  size: 2\n")
	db := filepath.Join(dir, "inv.db")
	snapPath := filepath.Join(dir, "scene.json.zst")

	reg := newRegistry(&bytes.Buffer{}, logger.New(""))
	if err := reg.Execute([]string{"export", "-config", path, "-db", db, "-snapshot", snapPath}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(db); err != nil {
		t.Fatalf("db: %v", err)
	}
	snap, err := inventory.ReadSnapshot(snapPath)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(snap.Geometries) != 10 || snap.Geometries[0].Dimensions[0] != 2 {
		t.Fatalf("snapshot geometries=%d ground=%v", len(snap.Geometries), snap.Geometries[0].Dimensions)
	}
}

func TestResolveScene(t *testing.T) {
	log := logger.New("")

	t.Run("env", func(t *testing.T) {
		path := writeScene(t, "ball:\n  mass: 2\n")
		t.Setenv(config.EnvScenePath, path)
		s, err := resolveScene("", log)
		if err != nil || s.Ball.Mass != 2 {
			t.Fatalf("scene=%+v err=%v", s.Ball, err)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := resolveScene(filepath.Join(t.TempDir(), "nope.yaml"), log)
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("err=%v", err)
		}
	})

	t.Run("missing default falls back", func(t *testing.T) {
		t.Setenv(config.EnvScenePath, "")
		t.Chdir(t.TempDir())
		s, err := resolveScene("", log)
		if err != nil || s != config.Default() {
			t.Fatalf("scene=%+v err=%v", s, err)
		}
	})
}

func TestUnknownCommand(t *testing.T) {
	reg := newRegistry(&bytes.Buffer{}, logger.New(""))
	if err := reg.Execute([]string{"simulate"}); !errors.Is(err, commands.ErrUsage) {
		t.Fatalf("err=%v", err)
	}
}

func TestLoadView_SnapshotUsesScene(t *testing.T) {
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "scene.json.zst")
	path := writeScene(t, "ball:\n  radius: 0.2\n  initial_height: 0.3\n")
	reg := newRegistry(&bytes.Buffer{}, logger.New(""))
	if err := reg.Execute([]string{"export", "-config", path, "-db", "", "-snapshot", snapPath}); err != nil {
		t.Fatalf("export: %v", err)
	}

	scene, snap, err := loadView(logger.New(""), path, snapPath)
	if err != nil {
		t.Fatalf("loadView: %v", err)
	}
	if scene.Ball.Radius != 0.2 || len(snap.Geometries) != 10 {
		t.Fatalf("radius=%v geometries=%d", scene.Ball.Radius, len(snap.Geometries))
	}
	pose := ballPoses(scene)[rollingsphere.BallName]
	if pose.Translation.Z() != 0.3 {
		t.Fatalf("ball pose=%v", pose.Translation)
	}
}
