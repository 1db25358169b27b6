package twisty

import "math"

// LayerTolerance is how far a coordinate may drift from the layer index and
// still count as part of the layer.
const LayerTolerance = 0.1

// SelectLayer returns the cubies whose coordinate along axis is within
// LayerTolerance of index.
//
// At rest it returns exactly 9 cubies for index -1, 0 or 1. Any other
// index, or an invalid axis, yields an empty result rather than an error.
func (g *Grid) SelectLayer(axis Axis, index int) []*Cubie {
	if !axis.Valid() {
		return nil
	}
	layer := make([]*Cubie, 0, 9)
	for _, c := range g.cubies {
		if math.Abs(c.Coord(axis)-float64(index)) < LayerTolerance {
			layer = append(layer, c)
		}
	}
	return layer
}
