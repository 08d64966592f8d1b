package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultPath is the viewer preferences file, relative to the process working directory.
const DefaultPath = "config/viewer.json"

// ViewerPrefs holds viewer-only preferences (overlays, grid, window size). Persisted across runs.
// The scene itself is configured separately in config/scene.yaml.
type ViewerPrefs struct {
	ShowFPS      bool  `json:"show_fps"`
	ShowMemAlloc bool  `json:"show_memalloc"`
	GridVisible  bool  `json:"grid_visible"`
	WindowWidth  int32 `json:"window_width"`
	WindowHeight int32 `json:"window_height"`
}

// Default returns default viewer preferences (overlays off, grid on, 1280x720).
func Default() ViewerPrefs {
	return ViewerPrefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		GridVisible:  true,
		WindowWidth:  1280,
		WindowHeight: 720,
	}
}

// Load reads viewer preferences from path. If the file is missing or invalid,
// returns Default() and does not create a file. Missing or non-positive window sizes fall back to the default.
func Load(path string) (ViewerPrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	def := Default()
	if p.WindowWidth <= 0 {
		p.WindowWidth = def.WindowWidth
	}
	if p.WindowHeight <= 0 {
		p.WindowHeight = def.WindowHeight
	}
	return p, nil
}

// Save writes viewer preferences to path, creating the directory if needed.
func Save(path string, p ViewerPrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
