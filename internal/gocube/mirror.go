package gocube

import "github.com/SeamusWaldron/twisty"

// screenColor maps a physical cube color to the on-screen one. The
// on-screen scheme is the mirror image of the GoCube's (blue front with
// red on the right), so red and orange trade places. With that swap every
// physical face sits where its on-screen counterpart does.
func screenColor(c twisty.Color) twisty.Color {
	switch c {
	case twisty.Red:
		return twisty.Orange
	case twisty.Orange:
		return twisty.Red
	default:
		return c
	}
}

// Move returns the on-screen quarter turn matching r on the grid's current
// state. It reports false for a color no center cubie carries.
func Move(g *twisty.Grid, r Rotation) (twisty.Move, bool) {
	return g.FaceTurn(screenColor(r.Color), r.Clockwise)
}
