package twisty

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// State is the animator's lifecycle state.
type State int

const (
	Idle      State = 0
	Animating State = 1
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// Animator rotates one layer of a Grid at a time over a fixed duration.
//
// It is driven by an external frame source: RotateLayer starts a move and
// each Tick advances it by one frame. While a move is in flight further
// requests are dropped. The Animator is not safe for concurrent use; call
// it from the goroutine that owns the frame loop.
type Animator struct {
	grid *Grid
	cfg  *config

	state    State
	pivot    *pivot
	onSettle func(Move)
}

// pivot is the transient rotation anchor of one in-flight move.
type pivot struct {
	move     Move
	center   mgl64.Vec3
	start    float64
	target   float64
	angle    float64
	begin    time.Time
	duration time.Duration
	members  []attachment
}

// attachment is a cubie's transform relative to the pivot.
type attachment struct {
	cubie    *Cubie
	localPos mgl64.Vec3
	localRot mgl64.Quat
}

// NewAnimator creates an idle animator for grid.
func NewAnimator(grid *Grid, opts ...Option) *Animator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Animator{grid: grid, cfg: cfg}
}

// OnSettle sets a callback that fires after a move has been committed to
// the grid.
func (a *Animator) OnSettle(cb func(Move)) {
	a.onSettle = cb
}

// State returns the current lifecycle state.
func (a *Animator) State() State {
	return a.state
}

// Busy reports whether a move is in flight.
func (a *Animator) Busy() bool {
	return a.state == Animating
}

// Current returns the in-flight move.
func (a *Animator) Current() (Move, bool) {
	if a.pivot == nil {
		return Move{}, false
	}
	return a.pivot.move, true
}

// Grid returns the grid the animator writes to.
func (a *Animator) Grid() *Grid {
	return a.grid
}

// Duration returns the default rotation duration.
func (a *Animator) Duration() time.Duration {
	return a.cfg.duration
}

// Rotate starts m with the default duration.
func (a *Animator) Rotate(m Move) {
	a.start(m, a.cfg.duration)
}

// RotateLayer starts rotating the layer at index along axis by angle
// radians with the default duration. It is a no-op while another move is
// in flight.
func (a *Animator) RotateLayer(axis Axis, index int, angle float64) {
	a.start(Move{Axis: axis, Layer: index, Angle: angle}, a.cfg.duration)
}

// RotateLayerDuration is RotateLayer with an explicit duration.
func (a *Animator) RotateLayerDuration(axis Axis, index int, angle float64, d time.Duration) {
	a.start(Move{Axis: axis, Layer: index, Angle: angle}, d)
}

func (a *Animator) start(m Move, d time.Duration) {
	if a.state == Animating {
		a.cfg.logger.Debug("rotation dropped, move in flight", zap.Stringer("move", m))
		return
	}
	if !m.Axis.Valid() {
		return
	}

	layer := a.grid.SelectLayer(m.Axis, m.Layer)
	p := &pivot{
		move:     m,
		begin:    a.cfg.clock(),
		duration: d,
		members:  make([]attachment, 0, len(layer)),
	}
	p.target = p.start + m.Angle
	p.angle = p.start

	// Attach preserving the world transform: local = inverse(pivot) * world.
	inv := p.rotation().Conjugate()
	for _, c := range layer {
		p.members = append(p.members, attachment{
			cubie:    c,
			localPos: inv.Rotate(c.Position.Sub(p.center)),
			localRot: inv.Mul(c.Orientation),
		})
	}

	a.pivot = p
	a.state = Animating
	a.cfg.logger.Debug("rotation started",
		zap.Stringer("move", m),
		zap.Int("cubies", len(layer)),
		zap.Duration("duration", d),
	)

	a.Tick(p.begin)
}

// Tick advances the in-flight move to time now and reports whether a move
// is still in flight afterwards. It is a no-op when idle.
func (a *Animator) Tick(now time.Time) bool {
	p := a.pivot
	if p == nil {
		return false
	}

	progress := 1.0
	if p.duration > 0 {
		progress = clamp01(float64(now.Sub(p.begin)) / float64(p.duration))
	}
	eased := a.cfg.easing(progress)
	p.angle = p.start + (p.target-p.start)*eased
	p.apply()

	if progress < 1 {
		return true
	}
	a.finish()
	return false
}

// finish snaps the pivot to its target, commits the members back into grid
// space with rounded positions and returns to Idle.
func (a *Animator) finish() {
	p := a.pivot
	p.angle = p.target
	p.apply()
	for _, m := range p.members {
		m.cubie.settle()
	}

	a.pivot = nil
	a.state = Idle
	a.cfg.logger.Debug("rotation settled", zap.Stringer("move", p.move))

	if a.onSettle != nil {
		a.onSettle(p.move)
	}
}

func (p *pivot) rotation() mgl64.Quat {
	return mgl64.QuatRotate(p.angle, p.move.Axis.Unit())
}

// apply recomputes every member's world transform from the current pivot
// angle: world = pivot * local.
func (p *pivot) apply() {
	rot := p.rotation()
	for _, m := range p.members {
		m.cubie.Position = p.center.Add(rot.Rotate(m.localPos))
		m.cubie.Orientation = rot.Mul(m.localRot).Normalize()
	}
}
