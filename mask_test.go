package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMask(t *testing.T) {
	c := &Circuit{NumQubits: 3}
	c.AddGate("H", 0, 0)
	c.AddGate("CX", 2, 1, 0) // control q0, target q2
	c.AddGate("X", 1, 2)

	mask, err := BuildMask(c)
	require.NoError(t, err)
	assert.Equal(t, [][]int{
		{1, 1, 0},
		{0, 0, 1},
		{0, 1, 0},
	}, mask)
}

func TestBuildMaskBarrierMarksColumn(t *testing.T) {
	c := &Circuit{NumQubits: 3}
	c.AddGate("H", 0, 0)
	c.AddBarrier(1)
	c.AddGate("X", 2, 2)

	mask, err := BuildMask(c)
	require.NoError(t, err)
	for q := 0; q < 3; q++ {
		assert.Equal(t, 1, mask[q][1], "barrier column, qubit %d", q)
	}
}

func TestBuildMaskMultiControlGate(t *testing.T) {
	c := &Circuit{NumQubits: 4}
	c.AddMultiControlGate("CCX", 3, 0, []int{0, 1})

	mask, err := BuildMask(c)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}, {1}, {0}, {1}}, mask)
}

func TestBuildMaskRejectsQubitCollision(t *testing.T) {
	c := &Circuit{NumQubits: 2}
	c.AddGate("H", 0, 0)
	c.AddGate("X", 0, 0)

	_, err := BuildMask(c)
	require.ErrorIs(t, err, ErrInvalidCircuit)
}

func TestBuildMaskRejectsOutOfRangeQubit(t *testing.T) {
	c := &Circuit{NumQubits: 2}
	c.AddGate("X", 5, 0)

	_, err := BuildMask(c)
	require.ErrorIs(t, err, ErrInvalidCircuit)
}

func TestBuildMaskEmptyCircuit(t *testing.T) {
	c := &Circuit{NumQubits: 2}
	mask, err := BuildMask(c)
	require.NoError(t, err)
	require.Len(t, mask, 2)
	assert.Empty(t, mask[0])
}
