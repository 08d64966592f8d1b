package viewer

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// overlay draws the FPS and heap counters (top-right) and a fixed info block (top-left).
type overlay struct {
	showFPS      bool
	showMemAlloc bool
	info         []string
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

func (o *overlay) draw() {
	o.frameCount++
	update := (o.frameCount % updateInterval) == 0
	if o.showFPS && o.lastFpsText == "" {
		update = true
	}
	if o.showMemAlloc && o.lastMemText == "" {
		update = true
	}

	y := int32(fpsPadding)
	for _, line := range o.info {
		rl.DrawText(line, fpsPadding, y, fpsFontSize, rl.RayWhite)
		y += fpsLineHeight
	}

	screenW := int32(rl.GetScreenWidth())
	y = int32(fpsPadding)
	if o.showFPS {
		if update {
			o.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		w := rl.MeasureText(o.lastFpsText, fpsFontSize)
		rl.DrawText(o.lastFpsText, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
		y += fpsLineHeight
	}
	if o.showMemAlloc {
		if update {
			runtime.ReadMemStats(&o.lastMemStats)
			mb := float64(o.lastMemStats.Alloc) / (1024 * 1024)
			o.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		w := rl.MeasureText(o.lastMemText, fpsFontSize)
		rl.DrawText(o.lastMemText, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
	}
}
