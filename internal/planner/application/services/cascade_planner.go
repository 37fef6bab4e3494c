// Package services holds the pure planning logic behind the reschedule
// commands.
package services

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/google/uuid"
)

// CascadePlanner computes the ordered moves needed to place an anchor
// interval on the calendar without overlapping movable neighbors. It is a
// pure function over its inputs: no I/O, no shared state between runs.
type CascadePlanner struct {
	logger *slog.Logger
}

// NewCascadePlanner creates a new planner.
func NewCascadePlanner(logger *slog.Logger) *CascadePlanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &CascadePlanner{logger: logger}
}

// anchor is the interval currently being used to resolve overlaps. The run
// starts with a synthetic anchor (uuid.Nil) for the new or updated entry,
// then each moved neighbor takes a turn.
type anchor struct {
	id       uuid.UUID
	interval domain.Interval
}

type visitKey struct {
	id         uuid.UUID
	start, end int64
}

// plannerState owns the mutable bookkeeping of one planning run.
type plannerState struct {
	proposed map[uuid.UUID]domain.Interval
	queue    []anchor
	queued   map[uuid.UUID]bool
	visited  map[visitKey]bool
}

func newPlannerState(candidates []*domain.Entry, seed anchor) *plannerState {
	s := &plannerState{
		proposed: make(map[uuid.UUID]domain.Interval, len(candidates)),
		queued:   make(map[uuid.UUID]bool),
		visited:  make(map[visitKey]bool),
	}
	for _, e := range candidates {
		s.proposed[e.ID()] = e.Interval()
	}
	s.queue = append(s.queue, seed)
	s.queued[seed.id] = true
	s.visited[keyOf(seed.id, seed.interval)] = true
	return s
}

func keyOf(id uuid.UUID, iv domain.Interval) visitKey {
	return visitKey{id: id, start: iv.Start.Unix(), end: iv.End.Unix()}
}

// enqueue adds a moved entry as a future anchor. Duplicate ids are skipped;
// when the queued anchor pops, its interval is refreshed to the latest
// proposed position anyway.
func (s *plannerState) enqueue(id uuid.UUID, iv domain.Interval) bool {
	if s.queued[id] {
		return false
	}
	k := keyOf(id, iv)
	if s.visited[k] {
		return false
	}
	s.queue = append(s.queue, anchor{id: id, interval: iv})
	s.queued[id] = true
	s.visited[k] = true
	return true
}

func (s *plannerState) pop() anchor {
	a := s.queue[0]
	s.queue = s.queue[1:]
	delete(s.queued, a.id)
	// Refresh to the latest proposed interval; the entry may have been moved
	// again while waiting in the queue.
	if a.id != uuid.Nil {
		if cur, ok := s.proposed[a.id]; ok {
			a.interval = cur
		}
	}
	return a
}

// PlanMoves computes the moves needed to place anchorInterval without
// overlapping any movable entry in existing. Locked and fixed entries are
// left alone; overlaps with them are tolerated. On cascade overflow the
// moves accepted so far are returned together with domain.ErrCascadeLimit.
func (p *CascadePlanner) PlanMoves(existing []*domain.Entry, anchorInterval domain.Interval, cfg domain.PlanConfig) ([]domain.Move, error) {
	if cfg.Policy == "" {
		cfg.Policy = domain.PolicyForward
	}

	p.logger.Debug("planning moves",
		"anchor_start", anchorInterval.Start,
		"anchor_end", anchorInterval.End,
		"policy", cfg.Policy,
		"max_cascade", cfg.MaxCascade,
	)

	// Entries without a usable start date cannot participate.
	candidates := make([]*domain.Entry, 0, len(existing))
	for _, e := range existing {
		if e == nil || e.Start().IsZero() {
			continue
		}
		candidates = append(candidates, e)
	}

	// Deterministic iteration makes tie-breaking among simultaneous
	// candidates reproducible, which also pins down the first sticky move.
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.Start().Equal(b.Start()) {
			return a.Start().Before(b.Start())
		}
		if !a.End().Equal(b.End()) {
			return a.End().Before(b.End())
		}
		return a.ID().String() < b.ID().String()
	})

	p.logger.Debug("existing entries considered", "count", len(candidates))

	cascadeDir := cfg.CascadeDirection
	state := newPlannerState(candidates, anchor{id: uuid.Nil, interval: anchorInterval})

	var moves []domain.Move
	steps := 0

	for len(state.queue) > 0 {
		a := state.pop()
		p.logger.Debug("pop anchor",
			"anchor_id", a.id,
			"start", a.interval.Start,
			"end", a.interval.End,
			"queue_len", len(state.queue),
		)

		for _, e := range candidates {
			if e.ID() == a.id {
				continue
			}
			cur := state.proposed[e.ID()]
			if !a.interval.Overlaps(cur) {
				continue
			}
			if e.Immovable() {
				// Overlap is tolerated; immovable entries never move and
				// never cascade.
				p.logger.Debug("overlap with immovable entry, allowing overlap",
					"entry_id", e.ID(),
					"locked", e.Locked(),
					"fixed", e.Fixed(),
				)
				continue
			}

			var dir domain.Direction
			if cfg.StickyDirection && cascadeDir != "" {
				dir = cascadeDir
			} else {
				dir = chooseDirection(cfg.Policy, a.interval, cur, e.Duration())
				if cfg.StickyDirection && cascadeDir == "" {
					cascadeDir = dir
					p.logger.Debug("sticky cascade direction locked on first move",
						"direction", cascadeDir,
						"anchor_id", a.id,
					)
				}
			}

			target := shiftTarget(dir, a.interval, e.Duration())
			p.logger.Debug("overlap found",
				"entry_id", e.ID(),
				"cur_start", cur.Start,
				"cur_end", cur.End,
				"direction", dir,
				"target_start", target.Start,
				"target_end", target.End,
			)

			if target.Equal(cur) {
				continue
			}

			steps++
			if cfg.MaxCascade > 0 && steps > cfg.MaxCascade {
				err := fmt.Errorf("%w %d", domain.ErrCascadeLimit, cfg.MaxCascade)
				p.logger.Error("planning aborted", "error", err)
				return moves, err
			}

			moves = append(moves, domain.Move{
				EntryID:  e.ID(),
				OldStart: cur.Start,
				OldEnd:   cur.End,
				NewStart: target.Start,
				NewEnd:   target.End,
			})
			state.proposed[e.ID()] = target
			state.enqueue(e.ID(), target)
		}
	}

	p.logger.Debug("planning completed", "moves", len(moves))
	return moves, nil
}

// chooseDirection picks the side to push a conflicting neighbor to.
//
// The geometric base direction is derived from inclusive overlap: when the
// anchor's head overlaps the candidate's tail the neighbor moves backward;
// when the anchor's tail overlaps the candidate's head it moves forward. Both
// conditions can hold for full containment, in which case the second check
// wins and forward is the result. That override is deliberate and callers
// rely on it; do not reorder the checks.
func chooseDirection(policy domain.Policy, anchor, candidate domain.Interval, duration int) domain.Direction {
	base := domain.DirectionForward
	if !anchor.Start.After(candidate.End) && !anchor.End.Before(candidate.End) {
		base = domain.DirectionBackward
	}
	if !anchor.End.Before(candidate.Start) && !anchor.Start.After(candidate.Start) {
		base = domain.DirectionForward
	}

	if policy != domain.PolicyBalanced {
		return base
	}

	// Balanced: compare shift distances; ties favor forward.
	forwardStart := anchor.End.AddDate(0, 0, 1)
	costForward := abs(domain.DaysBetween(candidate.Start, forwardStart))
	backwardEnd := anchor.Start.AddDate(0, 0, -1)
	backwardStart := backwardEnd.AddDate(0, 0, -(duration - 1))
	costBackward := abs(domain.DaysBetween(backwardStart, candidate.Start))
	if costBackward < costForward {
		return domain.DirectionBackward
	}
	return domain.DirectionForward
}

// shiftTarget computes the neighbor's new interval flush against the anchor,
// preserving its duration.
func shiftTarget(dir domain.Direction, anchor domain.Interval, duration int) domain.Interval {
	if dir == domain.DirectionBackward {
		end := anchor.Start.AddDate(0, 0, -1)
		return domain.Interval{Start: end.AddDate(0, 0, -(duration - 1)), End: end}
	}
	start := anchor.End.AddDate(0, 0, 1)
	return domain.Interval{Start: start, End: start.AddDate(0, 0, duration-1)}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
