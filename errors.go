package main

import "errors"

// Sentinel errors for the decoupling engine. Callers match with errors.Is;
// raising sites wrap these with context via fmt.Errorf("%w: ...").
var (
	// ErrInvalidCircuit indicates a malformed circuit: two gates sharing a
	// qubit within one moment, or a gate referencing a qubit outside the
	// circuit's declared qubit range.
	ErrInvalidCircuit = errors.New("ddd: invalid circuit")

	// ErrRuleLength indicates a rule produced a sequence whose length does
	// not match the requested window length.
	ErrRuleLength = errors.New("ddd: rule returned wrong sequence length")

	// ErrRuleComposition indicates a rule's gate sequence does not compose
	// to the identity operator.
	ErrRuleComposition = errors.New("ddd: rule sequence is not an identity")

	// ErrUnknownRule indicates a catalog lookup for a name that was never
	// registered.
	ErrUnknownRule = errors.New("ddd: unknown decoupling rule")

	// ErrNumTrials indicates a non-positive trial count.
	ErrNumTrials = errors.New("ddd: number of trials must be at least 1")
)
