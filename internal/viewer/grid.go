package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	// gridMajorEvery draws every Nth line in the major color.
	gridMajorEvery = 10
	// gridLift keeps the grid above the ground's top face at z = 0.
	gridLift = 1e-3
)

// drawGrid draws a grid on the XY plane (z = 0) with major/minor lines and the x/y/z axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid(extent, step float32) {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	n := int(extent / step)
	var start, end rl.Vector3
	for i := -n; i <= n; i++ {
		c := major
		if i%gridMajorEvery != 0 {
			c = minor
		}
		v := float32(i) * step
		start.X, start.Y, start.Z = v, -extent, gridLift
		end.X, end.Y, end.Z = v, extent, gridLift
		rl.DrawLine3D(start, end, c)
		start.X, start.Y = -extent, v
		end.X, end.Y = extent, v
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = -extent, 0, 2*gridLift
	end.X, end.Y, end.Z = extent, 0, 2*gridLift
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y = 0, -extent
	end.X, end.Y = 0, extent
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, 0
	end.X, end.Y, end.Z = 0, 0, extent
	rl.DrawLine3D(start, end, axisZ)
}
