package main

import "fmt"

// insertOptions carries tunable parameters for sequence insertion.
type insertOptions struct {
	minWindowLength  int  // 0 means "use the rule's own MinLength"
	compositionCheck bool // verify identity composition per window length
}

// InsertOption configures InsertSequences.
type InsertOption func(*insertOptions)

// WithMinWindowLength overrides the eligibility threshold: only slack
// windows of at least n moments are filled. The default threshold is the
// rule's base pattern length; pass 1 to fill every window (the rule's
// identity padding keeps short fills sound).
func WithMinWindowLength(n int) InsertOption {
	return func(o *insertOptions) { o.minWindowLength = n }
}

// WithCompositionCheck verifies, for every distinct window length filled,
// that the rule's sequence composes to the identity. Advisory and off by
// default; failures surface as ErrRuleComposition.
func WithCompositionCheck() InsertOption {
	return func(o *insertOptions) { o.compositionCheck = true }
}

// InsertSequences fills the circuit's idle time with decoupling gates.
// It derives the mask and slack matrix, selects every slack window whose
// length meets the eligibility threshold, and writes rule.Sequence(L)
// into the window's cells in time order. Occupied cells are never touched
// and the moment count is preserved: insertion only fills existing idle
// cells, it does not reshape the circuit's timing.
//
// The input circuit is not mutated; the returned circuit is a fresh value.
// Fails with ErrInvalidCircuit (malformed input), ErrRuleLength (rule
// broke the exact-length contract; no partial circuit is returned) or
// ErrRuleComposition (when the composition check is enabled).
func InsertSequences(c *Circuit, rule Rule, opts ...InsertOption) (*Circuit, error) {
	options := insertOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	minLen := options.minWindowLength
	if minLen <= 0 {
		minLen = rule.MinLength()
	}

	slack, err := CircuitSlack(c)
	if err != nil {
		return nil, err
	}

	checked := make(map[int]bool)
	out := c.Clone()
	for _, w := range SlackWindows(slack) {
		if w.Length < minLen {
			continue
		}
		if options.compositionCheck && !checked[w.Length] {
			if err := VerifyRuleIdentity(rule, w.Length); err != nil {
				return nil, err
			}
			checked[w.Length] = true
		}

		seq, err := rule.Sequence(w.Length)
		if err != nil {
			return nil, err
		}
		if len(seq) != w.Length {
			return nil, fmt.Errorf("%w: rule %q returned %d labels for window of %d",
				ErrRuleLength, rule.Name(), len(seq), w.Length)
		}
		for i, label := range seq {
			out.Gates = append(out.Gates, Gate{
				Label:    label,
				Target:   w.Qubit,
				Control:  -1,
				Moment:   w.Start + i,
				Inserted: true,
			})
		}
	}
	return out, nil
}
