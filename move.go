package twisty

import (
	"fmt"
	"math"
)

// QuarterTurn is a 90 degree rotation in radians.
const QuarterTurn = math.Pi / 2

// Move is one layer rotation: the axis, the layer index along it (-1, 0
// or 1) and the signed angle in radians. Positive angles follow the
// right-hand rule about the positive axis.
type Move struct {
	Axis  Axis
	Layer int
	Angle float64
}

// Turn returns the quarter-turn move on a layer; dir is +1 or -1.
func Turn(axis Axis, layer, dir int) Move {
	return Move{Axis: axis, Layer: layer, Angle: float64(dir) * QuarterTurn}
}

// Direction returns +1 for a positive angle, -1 for a negative one and 0
// for no rotation.
func (m Move) Direction() int {
	switch {
	case m.Angle > 0:
		return 1
	case m.Angle < 0:
		return -1
	default:
		return 0
	}
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	inv := m
	inv.Angle = -m.Angle
	return inv
}

// String formats the move as axis, layer and degrees, e.g. "z+1 -90°".
func (m Move) String() string {
	return fmt.Sprintf("%s%+d %+.0f°", m.Axis, m.Layer, m.Angle*180/math.Pi)
}
