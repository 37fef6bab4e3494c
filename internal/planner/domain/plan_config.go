package domain

import "errors"

// ErrCascadeLimit is returned when planning aborts because the configured
// cascade depth was exceeded. The wrapped message carries the limit, e.g.
// "cascade exceeded limit 3".
var ErrCascadeLimit = errors.New("cascade exceeded limit")

// Policy selects how conflicting neighbors are pushed out of the way.
type Policy string

const (
	// PolicyForward always pushes conflicting neighbors to start after the
	// anchor.
	PolicyForward Policy = "forward"
	// PolicyBalanced picks whichever of the forward/backward shift is
	// numerically smaller; ties favor forward.
	PolicyBalanced Policy = "balanced"
)

// Direction is the side an entry is moved to relative to the anchor.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// PlanConfig tunes a single planning run. The zero value plans forward with
// no cascade cap and per-conflict direction choice.
type PlanConfig struct {
	Policy Policy

	// MaxCascade caps the number of accepted moves before planning aborts.
	// Zero means unlimited.
	MaxCascade int

	// StickyDirection reuses the direction chosen for the first resolved
	// conflict for every later cascade step, preventing entries from
	// bouncing back and forth across iterations.
	StickyDirection bool

	// CascadeDirection pre-seeds the sticky direction. Empty means the
	// direction is decided on the first conflict.
	CascadeDirection Direction
}

// DefaultPlanConfig returns the planning defaults.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{Policy: PolicyForward}
}
