package twisty

import (
	"time"

	"go.uber.org/zap"
)

// DefaultDuration is how long a layer rotation takes unless configured.
const DefaultDuration = 500 * time.Millisecond

// Option configures an Animator.
type Option func(*config)

type config struct {
	duration time.Duration
	easing   Easing
	clock    func() time.Time
	logger   *zap.Logger
}

func defaultConfig() *config {
	return &config{
		duration: DefaultDuration,
		easing:   EaseOutCubic,
		clock:    time.Now,
		logger:   zap.NewNop(),
	}
}

// WithDuration sets the default duration of a layer rotation.
// A non-positive duration makes rotations settle on the first frame.
func WithDuration(d time.Duration) Option {
	return func(c *config) {
		c.duration = d
	}
}

// WithEasing replaces the ease-out cubic curve.
func WithEasing(e Easing) Option {
	return func(c *config) {
		if e != nil {
			c.easing = e
		}
	}
}

// WithClock sets the time source used to stamp the start of a rotation.
// Tests use it to drive animations deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithLogger sets the logger used for move lifecycle debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
