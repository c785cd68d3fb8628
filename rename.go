package sequences

import (
	"errors"
	"fmt"

	"github.com/burninghelix123/sequences/backend"
)

// Move is one source-to-destination step of a rename plan.
type Move struct {
	From, To string
}

// RenamePlan is the ordered, validated list of moves a rename will perform.
// A nil plan means the request is a no-op.
type RenamePlan struct {
	Moves      []Move
	Padding    int  // destination slot width
	Offset     int  // added to every item number
	Descending bool // true when numbers move up and the plan runs last-first
}

// RenameOptions control renumbering. The zero value is a no-op.
type RenameOptions struct {
	// Padding is the destination slot width; <= 0 keeps the instance
	// padding.
	Padding int

	// Start renumbers the sequence so the first item becomes *Start. Nil
	// keeps the numbers.
	Start *int

	// IgnoreMissing allows renaming a gapped sequence; gaps keep their
	// relative position.
	IgnoreMissing bool

	// Overwrite silences the destination-collision check.
	Overwrite bool

	// DryRun validates and walks the whole plan without touching any
	// file. Running it any number of times leaves the scope unchanged.
	DryRun bool

	// Progress, when set, is called after each completed move.
	Progress func(done, total int)
}

// PlanRename validates the request and computes the ordered move list
// without touching the backend. It returns (nil, nil) when there is
// nothing to do.
func (s *Sequence) PlanRename(opts RenameOptions) (*RenamePlan, error) {
	if err := s.build(); err != nil {
		return nil, err
	}
	wantPad := opts.Padding > 0
	wantStart := opts.Start != nil
	if !wantPad && !wantStart {
		return nil, nil
	}
	if wantStart && *opts.Start < 0 {
		return nil, fmt.Errorf("start %d: %w", *opts.Start, ErrNegativeNumber)
	}

	nums := s.index.Numbers()
	if len(nums) == 0 {
		return nil, nil
	}
	first := nums[0]
	pad := s.pad(opts.Padding)

	samePad := pad == s.m.Padding
	sameStart := !wantStart || *opts.Start == first
	if samePad && sameStart {
		return nil, nil
	}

	if !opts.IgnoreMissing {
		if gaps := missingBetween(nums); len(gaps) > 0 {
			return nil, fmt.Errorf("missing %v: %w", gaps, ErrNonContiguous)
		}
	}

	offset := 0
	if wantStart {
		offset = *opts.Start - first
	}

	plan := &RenamePlan{
		Padding:    pad,
		Offset:     offset,
		Descending: offset > 0,
	}
	for _, n := range nums {
		from, _ := s.index.Get(n)
		to := s.ItemString(n+offset, pad)
		if from == to {
			continue
		}
		plan.Moves = append(plan.Moves, Move{From: from, To: to})
	}
	if len(plan.Moves) == 0 {
		return nil, nil
	}
	if plan.Descending {
		// Numbers move up: process last-first so an item never lands
		// on a sibling that has not vacated yet.
		for i, j := 0, len(plan.Moves)-1; i < j; i, j = i+1, j-1 {
			plan.Moves[i], plan.Moves[j] = plan.Moves[j], plan.Moves[i]
		}
	}
	return plan, nil
}

// Rename renumbers and/or repads the sequence on its backend. On success
// the source string is re-rendered in its own flavor at the new width and
// numbering. On a failed move every completed move is undone in reverse
// order before the error is returned. A dry run walks the full plan,
// including collision checks, without mutating anything.
func (s *Sequence) Rename(opts RenameOptions) error {
	plan, err := s.PlanRename(opts)
	if err != nil || plan == nil {
		return err
	}
	return s.Apply(plan, opts)
}

// Apply executes a plan previously computed by PlanRename, so callers that
// show the plan first run exactly the moves they showed. Only DryRun,
// Overwrite and Progress are consulted from opts; the plan already fixes
// padding, offset and ordering.
func (s *Sequence) Apply(plan *RenamePlan, opts RenameOptions) error {
	if plan == nil || len(plan.Moves) == 0 {
		return nil
	}
	prov := s.provider
	if prov == nil {
		return fmt.Errorf("%q: no backend to rename on: %w", s.source, ErrScopeUnavailable)
	}

	// Destinations that equal a source already vacated earlier in the
	// plan are not collisions. Dry runs never mutate, so the same rule
	// keeps their collision pass honest too.
	vacated := make(map[string]bool, len(plan.Moves))
	var done []Move
	for i, mv := range plan.Moves {
		exists, err := prov.Exists(mv.To)
		if err != nil {
			return s.abort(prov, done, fmt.Errorf("checking %q: %w", mv.To, err))
		}
		if exists && !vacated[mv.To] && !opts.Overwrite {
			return s.abort(prov, done, fmt.Errorf("%q: %w", mv.To, ErrDestinationExists))
		}
		vacated[mv.From] = true
		if opts.DryRun {
			continue
		}
		if err := prov.Move(mv.From, mv.To); err != nil {
			return s.abort(prov, done, fmt.Errorf("moving %q to %q: %w", mv.From, mv.To, err))
		}
		done = append(done, mv)
		if opts.Progress != nil {
			opts.Progress(i+1, len(plan.Moves))
		}
	}
	if opts.DryRun {
		return nil
	}
	return s.commit(plan)
}

// abort undoes completed moves in reverse order and returns cause, joined
// with any rollback failures.
func (s *Sequence) abort(prov backend.Provider, done []Move, cause error) error {
	var undoErrs []error
	for i := len(done) - 1; i >= 0; i-- {
		if err := prov.Move(done[i].To, done[i].From); err != nil {
			undoErrs = append(undoErrs, fmt.Errorf("undoing %q: %w", done[i].To, err))
		}
	}
	if len(undoErrs) > 0 {
		return errors.Join(append([]error{cause}, undoErrs...)...)
	}
	return cause
}

// commit refreshes the source string and the explicit item list after a
// completed rename.
func (s *Sequence) commit(plan *RenamePlan) error {
	var source string
	switch s.m.Flavor {
	case FlavorDigits:
		source = s.ItemString(s.curNum+plan.Offset, plan.Padding)
	case FlavorPounds:
		source = s.PoundString(plan.Padding)
	case FlavorRegex:
		source = s.RegexString(plan.Padding)
	case FlavorFormat:
		source = s.FormatString(plan.Padding)
	case FlavorPercent:
		source = s.PercentString(plan.Padding)
	default:
		source = s.source
	}
	if s.explicit != nil {
		items := make([]string, 0, s.index.Len())
		for _, n := range s.index.Numbers() {
			items = append(items, s.ItemString(n+plan.Offset, plan.Padding))
		}
		s.explicit = items
	}
	return s.SetSource(source)
}
