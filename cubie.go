package twisty

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CubieSize is the edge length of one cubie; the gap to 1.0 is the seam
// between neighbouring pieces.
const CubieSize = 0.95

// Cubie is one of the 27 pieces of the puzzle.
//
// Position and Orientation describe the cubie's transform in grid space.
// At rest every Position component is exactly -1, 0 or 1; during an
// animated move the layer's cubies carry intermediate values.
type Cubie struct {
	ID          int
	Home        [3]int
	Position    mgl64.Vec3
	Orientation mgl64.Quat

	// Stickers is indexed by local Face. Faces pointing into the puzzle
	// at the home position have ColorNone.
	Stickers [6]Color
}

func newCubie(id, x, y, z int) *Cubie {
	c := &Cubie{
		ID:          id,
		Home:        [3]int{x, y, z},
		Position:    mgl64.Vec3{float64(x), float64(y), float64(z)},
		Orientation: mgl64.QuatIdent(),
	}
	home := c.Home
	for f := FacePosX; f <= FaceNegZ; f++ {
		if float64(home[f.Axis()]) == f.Sign() {
			c.Stickers[f] = homeColor[f]
		}
	}
	return c
}

// Coord returns the cubie's coordinate along an axis.
func (c *Cubie) Coord(a Axis) float64 {
	return c.Position[a]
}

// Rounded returns the position rounded to the nearest integer per axis.
func (c *Cubie) Rounded() [3]int {
	return [3]int{
		int(math.Round(c.Position[0])),
		int(math.Round(c.Position[1])),
		int(math.Round(c.Position[2])),
	}
}

// WorldNormal returns the outward normal of a local face in grid space.
func (c *Cubie) WorldNormal(f Face) mgl64.Vec3 {
	return c.Orientation.Rotate(f.Normal())
}

// FaceToward returns the local face whose outward normal currently points
// closest to dir.
func (c *Cubie) FaceToward(dir mgl64.Vec3) Face {
	local := c.Orientation.Conjugate().Rotate(dir)
	best, bestDot := FacePosX, math.Inf(-1)
	for f := FacePosX; f <= FaceNegZ; f++ {
		if d := f.Normal().Dot(local); d > bestDot {
			best, bestDot = f, d
		}
	}
	return best
}

// StickerToward returns the sticker color on the face pointing along dir.
func (c *Cubie) StickerToward(dir mgl64.Vec3) Color {
	return c.Stickers[c.FaceToward(dir)]
}

// ObjectToWorld returns the cubie's model matrix (translate * rotate).
func (c *Cubie) ObjectToWorld() mgl64.Mat4 {
	return mgl64.Translate3D(c.Position[0], c.Position[1], c.Position[2]).Mul4(c.Orientation.Mat4())
}

// settle rounds the position to integers and snaps the orientation to the
// nearest axis-aligned rotation.
func (c *Cubie) settle() {
	r := c.Rounded()
	c.Position = mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])}
	c.Orientation = snapQuat(c.Orientation)
}

// quatLevels are the absolute component values the 24 rotations of a cube
// can take.
var quatLevels = [4]float64{0, 0.5, math.Sqrt2 / 2, 1}

// snapQuat moves every component of q onto the nearest entry of quatLevels
// and picks the sign with W >= 0 (first non-zero component positive).
// The input must be close to one of the 24 axis-aligned rotations.
func snapQuat(q mgl64.Quat) mgl64.Quat {
	q = q.Normalize()
	comps := [4]float64{q.W, q.V[0], q.V[1], q.V[2]}
	for i, v := range comps {
		best := quatLevels[0]
		for _, l := range quatLevels[1:] {
			if math.Abs(math.Abs(v)-l) < math.Abs(math.Abs(v)-best) {
				best = l
			}
		}
		comps[i] = math.Copysign(best, v)
		if best == 0 {
			comps[i] = 0
		}
	}
	for _, v := range comps {
		if v == 0 {
			continue
		}
		if v < 0 {
			for i := range comps {
				comps[i] = -comps[i]
				if comps[i] == 0 {
					comps[i] = 0
				}
			}
		}
		break
	}
	return mgl64.Quat{W: comps[0], V: mgl64.Vec3{comps[1], comps[2], comps[3]}}
}
