package main

import (
	"math"
	"math/cmplx"
	"testing"
)

const tol = 1e-10

func probOf(s *StateVector, basis int) float64 {
	a := s.Amplitudes[basis]
	return real(a * cmplx.Conj(a))
}

func TestSimulateBellState(t *testing.T) {
	c := &Circuit{NumQubits: 2}
	c.AddGate("H", 0, 0)
	c.AddGate("CX", 1, 1, 0)

	s := SimulateCircuit(c)

	if p := probOf(s, 0b00); math.Abs(p-0.5) > tol {
		t.Errorf("P(00) = %v, want 0.5", p)
	}
	if p := probOf(s, 0b11); math.Abs(p-0.5) > tol {
		t.Errorf("P(11) = %v, want 0.5", p)
	}
	if p := probOf(s, 0b01) + probOf(s, 0b10); p > tol {
		t.Errorf("P(01)+P(10) = %v, want 0", p)
	}
}

func TestSimulateHadamardTwice(t *testing.T) {
	c := &Circuit{NumQubits: 1}
	c.AddGate("H", 0, 0)
	c.AddGate("H", 0, 1)

	s := SimulateCircuit(c)
	if p := s.GroundStateProbability(); math.Abs(p-1) > tol {
		t.Errorf("P(0) = %v, want 1", p)
	}
}

func TestSimulatePauliSequencesAreIdentity(t *testing.T) {
	sequences := [][]string{
		{"X", "X"},
		{"Y", "Y"},
		{"X", "Y", "X", "Y"},
	}
	for _, seq := range sequences {
		c := &Circuit{NumQubits: 1}
		c.AddGate("H", 0, 0)
		for i, label := range seq {
			c.AddGate(label, 0, i+1)
		}
		c.AddGate("H", 0, len(seq)+1)

		s := SimulateCircuit(c)
		if p := s.GroundStateProbability(); math.Abs(p-1) > tol {
			t.Errorf("sequence %v: P(0) = %v, want 1", seq, p)
		}
	}
}

func TestSimulateSwap(t *testing.T) {
	c := &Circuit{NumQubits: 2}
	c.AddGate("X", 0, 0)
	c.AddGate("SWAP", 1, 1, 0)

	s := SimulateCircuit(c)
	if p := probOf(s, 0b10); math.Abs(p-1) > tol {
		t.Errorf("P(10) = %v, want 1", p)
	}
}

func TestSimulateRotations(t *testing.T) {
	// RX(pi) is X up to phase.
	c := &Circuit{NumQubits: 1}
	c.AddParameterizedGate("RX", 0, 0, []float64{math.Pi})

	s := SimulateCircuit(c)
	if p := probOf(s, 1); math.Abs(p-1) > tol {
		t.Errorf("P(1) = %v, want 1", p)
	}

	// RZ never moves population.
	c = &Circuit{NumQubits: 1}
	c.AddParameterizedGate("RZ", 0, 0, []float64{1.234})
	s = SimulateCircuit(c)
	if p := s.GroundStateProbability(); math.Abs(p-1) > tol {
		t.Errorf("P(0) after RZ = %v, want 1", p)
	}
}

func TestSimulateDaggerGates(t *testing.T) {
	c := &Circuit{NumQubits: 1}
	c.AddGate("H", 0, 0)
	c.AddGate("S", 0, 1)
	c.AddDaggerGate("S", 0, 2)
	c.AddGate("H", 0, 3)

	s := SimulateCircuit(c)
	if p := s.GroundStateProbability(); math.Abs(p-1) > tol {
		t.Errorf("P(0) = %v, want 1", p)
	}
}

func TestSimulateToffoli(t *testing.T) {
	c := &Circuit{NumQubits: 3}
	c.AddGate("X", 0, 0)
	c.AddGate("X", 1, 0)
	c.AddMultiControlGate("CCX", 2, 1, []int{0, 1})

	s := SimulateCircuit(c)
	if p := probOf(s, 0b111); math.Abs(p-1) > tol {
		t.Errorf("P(111) = %v, want 1", p)
	}
}

func TestNoiselessExecutorIgnoresIdleTime(t *testing.T) {
	c := &Circuit{NumQubits: 2}
	c.AddGate("X", 0, 0)
	c.AddGate("X", 0, 9) // long idle gap on both qubits

	p, err := NoiselessExecutor()(c)
	if err != nil {
		t.Fatalf("executor error: %v", err)
	}
	if math.Abs(p-1) > tol {
		t.Errorf("P(00) = %v, want 1", p)
	}
}

func TestDephasingExecutorPenalizesIdleSuperposition(t *testing.T) {
	c := &Circuit{NumQubits: 1}
	c.AddGate("H", 0, 0)
	c.AddGate("H", 0, 3)

	p, err := DephasingExecutor(0.4)(c)
	if err != nil {
		t.Fatalf("executor error: %v", err)
	}
	// Two RZ(0.4) kicks between the Hadamards.
	want := math.Pow(math.Cos(0.4), 2)
	if math.Abs(p-want) > tol {
		t.Errorf("P(0) = %v, want %v", p, want)
	}
}

func TestDephasingExecutorZeroAngleIsNoiseless(t *testing.T) {
	c := &Circuit{NumQubits: 2}
	c.AddGate("H", 0, 0)
	c.AddGate("CX", 1, 3, 0)

	ideal, err := NoiselessExecutor()(c)
	if err != nil {
		t.Fatalf("executor error: %v", err)
	}
	noisy, err := DephasingExecutor(0)(c)
	if err != nil {
		t.Fatalf("executor error: %v", err)
	}
	if math.Abs(ideal-noisy) > tol {
		t.Errorf("theta=0 executor = %v, noiseless = %v", noisy, ideal)
	}
}
