package engineconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingOrInvalidIsDefault(t *testing.T) {
	dir := t.TempDir()
	p, err := Load(filepath.Join(dir, "missing.json"))
	if err != nil || p != Default() {
		t.Fatalf("missing: %+v err=%v", p, err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if p, err := Load(bad); err != nil || p != Default() {
		t.Fatalf("invalid: %+v err=%v", p, err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "viewer.json")
	want := ViewerPrefs{ShowFPS: true, GridVisible: false, WindowWidth: 800, WindowHeight: 600}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil || got != want {
		t.Fatalf("Load=%+v err=%v", got, err)
	}
}

func TestLoad_FillsWindowSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.json")
	if err := os.WriteFile(path, []byte(`{"show_fps": true, "window_width": 0}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p, _ := Load(path)
	if !p.ShowFPS || p.WindowWidth != 1280 || p.WindowHeight != 720 || !p.GridVisible {
		t.Fatalf("prefs=%+v", p)
	}
}
