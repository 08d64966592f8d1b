package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

// runWindow opens the window and runs the main loop. Each frame it calls update (input, camera),
// then clears the screen and calls draw. Closing the window or pressing ESC ends the loop.
func runWindow(title string, width, height int32, update, draw func()) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(width, height, title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 30, 255))
		draw()
		rl.EndDrawing()
	}
}
