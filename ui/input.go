package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Keys for controller 1, in button bit order:
// 0 - A
// 1 - B
// 2 - Select
// 3 - Start
// 4 - Up
// 5 - Down
// 6 - Left
// 7 - Right
var keys = []ebiten.Key{
	ebiten.KeyA,     // A
	ebiten.KeyB,     // B
	ebiten.KeySpace, // Select
	ebiten.KeyEnter, // Start
	ebiten.KeyUp,    // Up
	ebiten.KeyDown,  // Down
	ebiten.KeyLeft,  // Left
	ebiten.KeyRight, // Right
}

// buttons reads the pad from the keyboard. pressed is
// ebiten.IsKeyPressed outside of tests.
func buttons(pressed func(ebiten.Key) bool) uint8 {
	var b uint8
	for i, key := range keys {
		if pressed(key) {
			b |= 1 << i
		}
	}
	return b
}
