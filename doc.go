// Package twisty models an interactive 3x3x3 twisty puzzle: the 27 cubies,
// the layers they form, the mapping from drag gestures to layer turns and
// the animated rotation that commits a turn back to the grid.
//
// # Features
//
//   - Cubie grid with exact integer positions at rest
//   - Tolerant layer selection
//   - Gesture interpretation from face normal and screen drag
//   - Frame-driven layer rotation with ease-out and drift correction
//
// # Quick Start
//
// Drive a rotation from your frame loop:
//
//	grid := twisty.NewGrid()
//	anim := twisty.NewAnimator(grid)
//
//	anim.OnSettle(func(m twisty.Move) {
//	    fmt.Println("Turned:", m)
//	})
//
//	anim.RotateLayer(twisty.AxisX, 1, -twisty.QuarterTurn)
//	for anim.Tick(time.Now()) {
//	    // render a frame, wait for the next one...
//	}
//
// # Gestures
//
// Rendering and hit-testing are left to the caller. After a drag, pass the
// grabbed face's normal, the grabbed cubie's cell and the screen drag:
//
//	m, ok := twisty.InterpretGesture(twisty.Gesture{
//	    Normal: mgl64.Vec3{1, 0, 0},
//	    Cell:   [3]int{1, 0, 1},
//	    Drag:   mgl64.Vec2{0, 40},
//	})
//	if ok {
//	    anim.Rotate(m)
//	}
package twisty
