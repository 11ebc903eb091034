package main

import (
	"fmt"
	"sort"
)

// Rule generates decoupling gate sequences. A rule is stateless and
// deterministic: Sequence(n) always yields exactly n single-qubit gate
// labels whose time-ordered operator product is the identity (up to a
// global phase). MinLength is the shortest window the rule can usefully
// fill, normally its base pattern length.
type Rule interface {
	Name() string
	MinLength() int
	Sequence(length int) ([]string, error)
}

// PatternRule fills a window by repeating a fixed base pattern as many
// whole times as fit and padding the remaining cells with explicit "I"
// gates at the end. Whole repetitions keep the identity-composition
// property regardless of window length; the pattern is never cut mid-way.
type PatternRule struct {
	name    string
	pattern []string
}

// NewPatternRule builds a rule from a named base pattern.
func NewPatternRule(name string, pattern ...string) PatternRule {
	return PatternRule{name: name, pattern: pattern}
}

func (r PatternRule) Name() string { return r.name }

func (r PatternRule) MinLength() int { return len(r.pattern) }

// Sequence returns exactly length labels for any length >= 1.
func (r PatternRule) Sequence(length int) ([]string, error) {
	if len(r.pattern) == 0 {
		return nil, fmt.Errorf("%w: rule %q has an empty base pattern", ErrRuleLength, r.name)
	}
	if length < 1 {
		return nil, fmt.Errorf("%w: requested length %d", ErrRuleLength, length)
	}
	seq := make([]string, 0, length)
	for len(seq)+len(r.pattern) <= length {
		seq = append(seq, r.pattern...)
	}
	for len(seq) < length {
		seq = append(seq, "I")
	}
	return seq, nil
}

// Built-in rules: the standard XX, YY and XYXY decoupling sequences.
func xxRule() PatternRule   { return NewPatternRule("xx", "X", "X") }
func yyRule() PatternRule   { return NewPatternRule("yy", "Y", "Y") }
func xyxyRule() PatternRule { return NewPatternRule("xyxy", "X", "Y", "X", "Y") }

// Catalog is an explicit registry of named rules. It is constructed and
// passed to call sites; there is no ambient global catalog.
type Catalog struct {
	rules map[string]Rule
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{rules: make(map[string]Rule)}
}

// DefaultCatalog returns a catalog with the built-in rules registered.
func DefaultCatalog() *Catalog {
	cat := NewCatalog()
	cat.Register(xxRule())
	cat.Register(yyRule())
	cat.Register(xyxyRule())
	return cat
}

// Register adds or replaces a rule under its own name.
func (c *Catalog) Register(r Rule) {
	c.rules[r.Name()] = r
}

// Lookup returns the rule registered under name.
func (c *Catalog) Lookup(name string) (Rule, error) {
	r, ok := c.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return r, nil
}

// Names returns the registered rule names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.rules))
	for name := range c.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VerifyRuleIdentity checks at runtime that rule's sequence for the given
// length composes to the identity operator. The check is advisory: the
// inserter does not run it on every window, it exists for diagnosing
// hand-written rules. Fails with ErrRuleComposition or ErrRuleLength.
func VerifyRuleIdentity(rule Rule, length int) error {
	seq, err := rule.Sequence(length)
	if err != nil {
		return err
	}
	if len(seq) != length {
		return fmt.Errorf("%w: rule %q returned %d labels for length %d",
			ErrRuleLength, rule.Name(), len(seq), length)
	}

	product := identity2
	for _, label := range seq {
		m, ok := singleQubitMatrix(label, false, nil)
		if !ok {
			return fmt.Errorf("%w: rule %q emitted non-single-qubit label %q",
				ErrRuleComposition, rule.Name(), label)
		}
		// Time order: later gates multiply from the left.
		product = m.mul(product)
	}
	if !product.isIdentityUpToPhase(1e-9) {
		return fmt.Errorf("%w: rule %q at length %d", ErrRuleComposition, rule.Name(), length)
	}
	return nil
}
