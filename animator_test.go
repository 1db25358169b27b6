package twisty

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

type cubieState struct {
	pos mgl64.Vec3
	rot mgl64.Quat
}

func snapshot(g *Grid) []cubieState {
	out := make([]cubieState, 0, g.Len())
	for _, c := range g.Cubies() {
		out = append(out, cubieState{pos: c.Position, rot: c.Orientation})
	}
	return out
}

// play runs m to completion on the fake clock.
func play(t *testing.T, a *Animator, clock *fakeClock, m Move) {
	t.Helper()
	a.Rotate(m)
	require.True(t, a.Busy())
	for a.Tick(clock.Advance(16 * time.Millisecond)) {
	}
	require.False(t, a.Busy())
}

func TestRotateLayerCommitsQuarterTurn(t *testing.T) {
	clock := newFakeClock()
	g := NewGrid()
	a := NewAnimator(g, WithClock(clock.Now))

	// Right face clockwise: the up-front-right corner goes to up-back-right.
	play(t, a, clock, Turn(AxisX, 1, -1))

	require.True(t, g.Settled())
	c := g.At(1, 1, -1)
	require.NotNil(t, c)
	assert.Equal(t, [3]int{1, 1, 1}, c.Home)
	assert.Equal(t, White, c.StickerToward(mgl64.Vec3{0, 0, -1}))
	assert.Equal(t, Red, c.StickerToward(mgl64.Vec3{1, 0, 0}))

	// Other layers are untouched.
	for _, other := range g.SelectLayer(AxisX, 0) {
		assert.Equal(t, other.Home, other.Rounded())
	}
}

func TestAnimatorInterpolatesWithEaseOut(t *testing.T) {
	clock := newFakeClock()
	g := NewGrid()
	a := NewAnimator(g, WithClock(clock.Now))

	c := g.At(0, 1, 1)
	a.RotateLayer(AxisX, 0, QuarterTurn)
	assert.Equal(t, Animating, a.State())

	// First frame is applied immediately at progress 0.
	assert.InDelta(t, 1.0, c.Position[1], 1e-12)

	require.True(t, a.Tick(clock.Advance(250*time.Millisecond)))
	angle := QuarterTurn * EaseOutCubic(0.5)
	want := mgl64.Vec3{0, math.Cos(angle) - math.Sin(angle), math.Sin(angle) + math.Cos(angle)}
	assert.InDelta(t, want[1], c.Position[1], 1e-9)
	assert.InDelta(t, want[2], c.Position[2], 1e-9)
	assert.False(t, g.Settled())

	cur, ok := a.Current()
	require.True(t, ok)
	assert.Equal(t, AxisX, cur.Axis)

	assert.False(t, a.Tick(clock.Advance(250*time.Millisecond)))
	assert.Equal(t, Idle, a.State())
	assert.True(t, g.Settled())
	assert.Equal(t, mgl64.Vec3{0, -1, 1}, c.Position)

	_, ok = a.Current()
	assert.False(t, ok)
}

func TestFourQuarterTurnsAreIdentity(t *testing.T) {
	for _, axis := range Axes {
		for idx := -1; idx <= 1; idx++ {
			for _, dir := range []int{-1, 1} {
				clock := newFakeClock()
				g := NewGrid()
				a := NewAnimator(g, WithClock(clock.Now))
				before := snapshot(g)

				for i := 0; i < 4; i++ {
					play(t, a, clock, Turn(axis, idx, dir))
					require.True(t, g.Settled())
				}
				assert.Equal(t, before, snapshot(g), "axis %s index %d dir %d", axis, idx, dir)
			}
		}
	}
}

func TestInverseRestoresState(t *testing.T) {
	clock := newFakeClock()
	g := NewGrid()
	a := NewAnimator(g, WithClock(clock.Now))

	// Leave the grid in a mixed state first.
	play(t, a, clock, Turn(AxisX, 1, 1))
	play(t, a, clock, Turn(AxisZ, -1, -1))
	play(t, a, clock, Turn(AxisY, 0, 1))

	for _, axis := range Axes {
		for idx := -1; idx <= 1; idx++ {
			before := snapshot(g)
			fp := g.Fingerprint()
			m := Turn(axis, idx, 1)

			play(t, a, clock, m)
			play(t, a, clock, m.Inverse())

			assert.Equal(t, before, snapshot(g))
			assert.Equal(t, fp, g.Fingerprint())
		}
	}
}

func TestRandomWalkKeepsGridSettled(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	g := NewGrid()
	a := NewAnimator(g, WithDuration(0))

	for i := 0; i < 2000; i++ {
		m := Turn(Axes[rng.IntN(len(Axes))], rng.IntN(3)-1, 1-2*rng.IntN(2))
		a.Rotate(m)
		require.False(t, a.Busy())
		require.True(t, g.Settled(), "turn %d: %s", i, m)
		for _, c := range g.Cubies() {
			require.InDelta(t, 1.0, c.Orientation.Len(), 1e-12, "turn %d cubie %d", i, c.ID)
			require.Equal(t, snapQuat(c.Orientation), c.Orientation, "turn %d cubie %d", i, c.ID)
		}
	}
}

func TestRotateWhileAnimatingIsDropped(t *testing.T) {
	clock := newFakeClock()
	g := NewGrid()
	a := NewAnimator(g, WithClock(clock.Now))

	expected := NewGrid()
	NewAnimator(expected, WithDuration(0)).RotateLayer(AxisY, 1, QuarterTurn)

	a.RotateLayer(AxisY, 1, QuarterTurn)
	a.Tick(clock.Advance(100 * time.Millisecond))
	a.RotateLayer(AxisX, -1, QuarterTurn)
	a.RotateLayer(AxisY, 1, QuarterTurn)

	cur, _ := a.Current()
	assert.Equal(t, Turn(AxisY, 1, 1), cur)

	for a.Tick(clock.Advance(100 * time.Millisecond)) {
	}
	assert.Equal(t, expected.Fingerprint(), g.Fingerprint())
	assert.Equal(t, snapshot(expected), snapshot(g))
}

func TestZeroDurationSettlesImmediately(t *testing.T) {
	g := NewGrid()
	a := NewAnimator(g, WithDuration(0))

	var settled []Move
	a.OnSettle(func(m Move) { settled = append(settled, m) })

	a.RotateLayer(AxisZ, 1, -QuarterTurn)
	assert.False(t, a.Busy())
	assert.True(t, g.Settled())
	assert.Equal(t, []Move{Turn(AxisZ, 1, -1)}, settled)
}

func TestRotateLayerDurationOverride(t *testing.T) {
	clock := newFakeClock()
	g := NewGrid()
	a := NewAnimator(g, WithClock(clock.Now))
	assert.Equal(t, DefaultDuration, a.Duration())

	a.RotateLayerDuration(AxisZ, 0, QuarterTurn, 100*time.Millisecond)
	assert.False(t, a.Tick(clock.Advance(100*time.Millisecond)))
	assert.True(t, g.Settled())
}

func TestOnSettleFiresOncePerMove(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(NewGrid(), WithClock(clock.Now), WithEasing(Linear))

	count := 0
	a.OnSettle(func(Move) { count++ })

	play(t, a, clock, Turn(AxisX, 0, 1))
	a.Tick(clock.Advance(time.Second))
	assert.Equal(t, 1, count)
}

func TestEmptyLayerLeavesGridUnchanged(t *testing.T) {
	g := NewGrid()
	a := NewAnimator(g, WithDuration(0))
	fp := g.Fingerprint()

	a.RotateLayer(AxisX, 2, QuarterTurn)
	a.RotateLayer(Axis(9), 0, QuarterTurn)
	assert.Equal(t, fp, g.Fingerprint())
	assert.False(t, a.Busy())
}

func TestTickWhenIdle(t *testing.T) {
	a := NewAnimator(NewGrid())
	assert.False(t, a.Tick(time.Now()))
	assert.Equal(t, "idle", a.State().String())
}

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-12)
	assert.Greater(t, EaseOutCubic(0.25), Linear(0.25))
}
