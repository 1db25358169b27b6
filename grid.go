package twisty

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// CubieCount is the number of pieces in a 3x3x3 puzzle.
const CubieCount = 27

// Grid holds the 27 cubies of the puzzle.
//
// The grid performs no validation on mutation. The Animator is the only
// writer and keeps the rest invariant: once no move is in flight, every
// coordinate is one of -1, 0, 1 and no two cubies share a cell.
type Grid struct {
	cubies [CubieCount]*Cubie
}

// NewGrid creates a grid with every cubie at its home cell.
// Cubie IDs follow x-major, then y, then z order.
func NewGrid() *Grid {
	g := &Grid{}
	g.Reset()
	return g
}

// Reset puts every cubie back at its home cell with identity orientation.
func (g *Grid) Reset() {
	id := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				g.cubies[id] = newCubie(id, x, y, z)
				id++
			}
		}
	}
}

// Len returns the number of cubies, always CubieCount.
func (g *Grid) Len() int {
	return len(g.cubies)
}

// Cubies returns the cubies in ID order. The slice is fresh; the cubies
// are shared with the grid.
func (g *Grid) Cubies() []*Cubie {
	out := make([]*Cubie, len(g.cubies))
	copy(out, g.cubies[:])
	return out
}

// Cubie returns the cubie with the given ID, or nil.
func (g *Grid) Cubie(id int) *Cubie {
	if id < 0 || id >= len(g.cubies) {
		return nil
	}
	return g.cubies[id]
}

// At returns the cubie whose rounded position is (x, y, z), or nil.
func (g *Grid) At(x, y, z int) *Cubie {
	want := [3]int{x, y, z}
	for _, c := range g.cubies {
		if c.Rounded() == want {
			return c
		}
	}
	return nil
}

// Settled reports whether the rest invariant holds: every coordinate is
// exactly -1, 0 or 1 and all 27 cells are distinct.
func (g *Grid) Settled() bool {
	seen := make(map[[3]int]bool, len(g.cubies))
	for _, c := range g.cubies {
		var cell [3]int
		for a := range c.Position {
			v := c.Position[a]
			if v != -1 && v != 0 && v != 1 {
				return false
			}
			cell[a] = int(v)
		}
		if seen[cell] {
			return false
		}
		seen[cell] = true
	}
	return true
}

// Fingerprint hashes every cubie's rounded position and snapped orientation
// in ID order. Grids in the same state have the same fingerprint.
func (g *Grid) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, c := range g.cubies {
		for _, v := range c.Rounded() {
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
			d.Write(buf[:])
		}
		q := snapQuat(c.Orientation)
		for _, v := range [4]float64{q.W, q.V[0], q.V[1], q.V[2]} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			d.Write(buf[:])
		}
	}
	return d.Sum64()
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := &Grid{}
	for i, c := range g.cubies {
		cp := *c
		clone.cubies[i] = &cp
	}
	return clone
}

// FaceTurn returns the quarter turn of the outer face whose center cubie
// carries color, clockwise as seen looking at that face. It reports false
// if no center carries the color or its face is not axis-aligned.
func (g *Grid) FaceTurn(color Color, clockwise bool) (Move, bool) {
	for _, c := range g.cubies {
		if !isCenter(c.Home) {
			continue
		}
		face := -1
		for f, s := range c.Stickers {
			if s == color && s != ColorNone {
				face = f
			}
		}
		if face < 0 {
			continue
		}
		n := c.WorldNormal(Face(face))
		axis, sign, ok := dominantAxis(n)
		if !ok {
			return Move{}, false
		}
		angle := -QuarterTurn * sign
		if !clockwise {
			angle = -angle
		}
		return Move{Axis: axis, Layer: int(math.Round(c.Coord(axis))), Angle: angle}, true
	}
	return Move{}, false
}

// isCenter reports whether a home cell is the middle of an outer face.
func isCenter(home [3]int) bool {
	nonZero := 0
	for _, v := range home {
		if v != 0 {
			nonZero++
		}
	}
	return nonZero == 1
}

// dominantAxis returns the axis with magnitude above one half and the sign
// of that component.
func dominantAxis(v mgl64.Vec3) (Axis, float64, bool) {
	for _, a := range Axes {
		if math.Abs(v[a]) > 0.5 {
			return a, math.Copysign(1, v[a]), true
		}
	}
	return 0, 0, false
}
