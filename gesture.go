package twisty

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultMinDrag is the shortest drag, in screen pixels, that counts as a
// swipe rather than a click.
const DefaultMinDrag = 10.0

// Gesture is a completed drag on the puzzle.
type Gesture struct {
	// Normal is the outward normal of the grabbed face in grid space.
	Normal mgl64.Vec3
	// Cell is the grabbed cubie's rounded position.
	Cell [3]int
	// Drag is the pointer movement from press to release in screen
	// coordinates, y pointing down.
	Drag mgl64.Vec2
}

// Interpreter turns gestures into quarter-turn moves.
type Interpreter struct {
	// MinDrag is the threshold below which (inclusive) a drag is ignored.
	MinDrag float64
}

// NewInterpreter returns an interpreter with the given threshold. A
// non-positive threshold selects DefaultMinDrag.
func NewInterpreter(minDrag float64) *Interpreter {
	if minDrag <= 0 {
		minDrag = DefaultMinDrag
	}
	return &Interpreter{MinDrag: minDrag}
}

// InterpretGesture interprets g with DefaultMinDrag.
func InterpretGesture(g Gesture) (Move, bool) {
	return NewInterpreter(DefaultMinDrag).Interpret(g)
}

// Interpret maps a gesture to a move. It reports false when the drag is too
// short or the normal is zero.
//
// The rotation axis is looked up from the grabbed face's normal axis and
// whether the drag is mostly vertical; it is never the normal axis itself.
func (in *Interpreter) Interpret(g Gesture) (Move, bool) {
	if g.Drag.Len() <= in.MinDrag {
		return Move{}, false
	}

	normal, ok := RoundNormal(g.Normal)
	if !ok {
		return Move{}, false
	}
	normalAxis, nSign, _ := dominantAxis(normal)

	dx, dy := g.Drag[0], g.Drag[1]
	vertical := math.Abs(dy) > math.Abs(dx)

	var axis Axis
	var dir float64
	switch normalAxis {
	case AxisX:
		if vertical {
			axis, dir = AxisZ, -sign(dy)*nSign
		} else {
			axis, dir = AxisY, sign(dx)*nSign
		}
	case AxisY:
		if vertical {
			axis, dir = AxisX, sign(dy)*nSign
		} else {
			axis, dir = AxisZ, sign(dx)*nSign
		}
	case AxisZ:
		if vertical {
			axis, dir = AxisX, sign(dy)*nSign
		} else {
			axis, dir = AxisY, sign(dx)*nSign
		}
	}

	return Move{
		Axis:  axis,
		Layer: g.Cell[axis],
		Angle: dir * QuarterTurn,
	}, true
}

// RoundNormal snaps n to the nearest axis-aligned unit vector: the largest
// component keeps its sign, the others become zero. Ties go to the lower
// axis. It reports false for the zero vector.
func RoundNormal(n mgl64.Vec3) (mgl64.Vec3, bool) {
	best := AxisX
	for _, a := range Axes[1:] {
		if math.Abs(n[a]) > math.Abs(n[best]) {
			best = a
		}
	}
	if n[best] == 0 {
		return mgl64.Vec3{}, false
	}
	return best.Unit().Mul(sign(n[best])), true
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
