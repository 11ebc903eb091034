package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternRuleSequenceExactLength(t *testing.T) {
	rule := xyxyRule()
	for length := 1; length <= 12; length++ {
		seq, err := rule.Sequence(length)
		require.NoError(t, err)
		assert.Len(t, seq, length, "length %d", length)
	}
}

func TestPatternRulePadding(t *testing.T) {
	tests := []struct {
		rule   PatternRule
		length int
		want   []string
	}{
		{xxRule(), 2, []string{"X", "X"}},
		{xxRule(), 5, []string{"X", "X", "X", "X", "I"}},
		{yyRule(), 3, []string{"Y", "Y", "I"}},
		{xyxyRule(), 4, []string{"X", "Y", "X", "Y"}},
		{xyxyRule(), 6, []string{"X", "Y", "X", "Y", "I", "I"}},
		// Shorter than one repetition: identity only, never a cut pattern.
		{xyxyRule(), 3, []string{"I", "I", "I"}},
		{xxRule(), 1, []string{"I"}},
	}
	for _, tt := range tests {
		seq, err := tt.rule.Sequence(tt.length)
		require.NoError(t, err)
		assert.Equal(t, tt.want, seq, "%s at %d", tt.rule.Name(), tt.length)
	}
}

func TestPatternRuleRejectsNonPositiveLength(t *testing.T) {
	_, err := xxRule().Sequence(0)
	require.ErrorIs(t, err, ErrRuleLength)
	_, err = xxRule().Sequence(-3)
	require.ErrorIs(t, err, ErrRuleLength)
}

func TestPatternRuleRejectsEmptyPattern(t *testing.T) {
	empty := NewPatternRule("noop")
	_, err := empty.Sequence(3)
	require.ErrorIs(t, err, ErrRuleLength)

	// MinLength 0 makes every window eligible; insertion must surface
	// the same error instead of filling anything.
	c := &Circuit{NumQubits: 1}
	c.AddGate("H", 0, 0)
	c.AddGate("H", 0, 3)
	_, err = InsertSequences(c, empty)
	require.ErrorIs(t, err, ErrRuleLength)
}

func TestVerifyRuleIdentityBuiltins(t *testing.T) {
	cat := DefaultCatalog()
	for _, name := range cat.Names() {
		rule, err := cat.Lookup(name)
		require.NoError(t, err)
		for length := 1; length <= 12; length++ {
			assert.NoError(t, VerifyRuleIdentity(rule, length), "%s at %d", name, length)
		}
	}
}

func TestVerifyRuleIdentityRejectsBadPattern(t *testing.T) {
	// X then Z composes to ZX, not an identity up to phase.
	bad := NewPatternRule("xz", "X", "Z")
	err := VerifyRuleIdentity(bad, 2)
	require.ErrorIs(t, err, ErrRuleComposition)
}

// wrongLengthRule violates the exact-length contract on purpose.
type wrongLengthRule struct{}

func (wrongLengthRule) Name() string   { return "wronglen" }
func (wrongLengthRule) MinLength() int { return 1 }

func (wrongLengthRule) Sequence(length int) ([]string, error) {
	return []string{"X"}, nil
}

func TestVerifyRuleIdentityRejectsWrongLength(t *testing.T) {
	err := VerifyRuleIdentity(wrongLengthRule{}, 3)
	require.ErrorIs(t, err, ErrRuleLength)
}

func TestCatalog(t *testing.T) {
	cat := DefaultCatalog()
	assert.Equal(t, []string{"xx", "xyxy", "yy"}, cat.Names())

	rule, err := cat.Lookup("xx")
	require.NoError(t, err)
	assert.Equal(t, 2, rule.MinLength())

	_, err = cat.Lookup("nope")
	require.ErrorIs(t, err, ErrUnknownRule)
}

func TestCatalogRegisterReplaces(t *testing.T) {
	cat := NewCatalog()
	cat.Register(NewPatternRule("custom", "X", "X"))
	cat.Register(NewPatternRule("custom", "Y", "Y"))

	rule, err := cat.Lookup("custom")
	require.NoError(t, err)
	seq, err := rule.Sequence(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Y", "Y"}, seq)
	assert.Equal(t, []string{"custom"}, cat.Names())
}
