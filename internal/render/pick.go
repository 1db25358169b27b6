package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/twisty"
)

// Hit is the result of a successful Pick.
type Hit struct {
	Cubie    *twisty.Cubie
	Face     twisty.Face // local face that was entered
	Normal   mgl64.Vec3  // outward world normal of Face
	Distance float64
	Point    mgl64.Vec3
	Local    mgl64.Vec3 // hit point in the cubie's own frame
}

// Pick returns the nearest cubie face the ray enters.
func Pick(g *twisty.Grid, r Ray) (Hit, bool) {
	var best Hit
	found := false
	for _, c := range g.Cubies() {
		t, face, local, ok := intersectCubie(c, r)
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{
				Cubie:    c,
				Face:     face,
				Normal:   c.WorldNormal(face),
				Distance: t,
				Point:    r.At(t),
				Local:    local,
			}
			found = true
		}
	}
	return best, found
}

// intersectCubie moves the ray into the cubie's frame and slab-tests it
// against the cubie's box. Rays starting inside the box miss.
func intersectCubie(c *twisty.Cubie, r Ray) (float64, twisty.Face, mgl64.Vec3, bool) {
	inv := c.Orientation.Conjugate()
	ro := inv.Rotate(r.Origin.Sub(c.Position))
	rd := inv.Rotate(r.Dir)

	const half = twisty.CubieSize / 2
	tEnter, tExit := math.Inf(-1), math.Inf(1)
	var face twisty.Face

	for _, a := range twisty.Axes {
		if math.Abs(rd[a]) < 1e-12 {
			if math.Abs(ro[a]) > half {
				return 0, 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (-half - ro[a]) / rd[a]
		t2 := (half - ro[a]) / rd[a]
		// Moving in +a enters through the negative face.
		enter := twisty.FaceFor(a, false)
		if t1 > t2 {
			t1, t2 = t2, t1
			enter = twisty.FaceFor(a, true)
		}
		if t1 > tEnter {
			tEnter, face = t1, enter
		}
		tExit = math.Min(tExit, t2)
	}

	if tEnter > tExit || tEnter < 0 {
		return 0, 0, mgl64.Vec3{}, false
	}
	return tEnter, face, ro.Add(rd.Mul(tEnter)), true
}
