package main

import (
	"math/cmplx"
)

// StateVector holds the amplitudes of an n-qubit pure state.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector returns |0...0⟩ on numQubits qubits.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// applyMatrix applies a single-qubit operator to qubit q.
func (s *StateVector) applyMatrix(m matrix2, q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
			s.Amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	cBit, tBit := 1<<control, 1<<target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCCX(c1, c2, target int) {
	b1, b2, tBit := 1<<c1, 1<<c2, 1<<target
	for i := range s.Amplitudes {
		if i&b1 != 0 && i&b2 != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	cBit, tBit := 1<<control, 1<<target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applySWAP(q1, q2 int) {
	bit1, bit2 := 1<<q1, 1<<q2
	for i := range s.Amplitudes {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i & ^bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// ApplyGate applies one circuit gate. Measurements and barriers are
// no-ops for statevector purposes.
func (s *StateVector) ApplyGate(g Gate) {
	switch g.Label {
	case "BARRIER", "MEASURE":
		return
	case "CX":
		s.applyCX(g.Control, g.Target)
	case "CH":
		h, _ := singleQubitMatrix("H", false, nil)
		s.applyControlled(h, g.Control, g.Target)
	case "CZ":
		s.applyCZ(g.Control, g.Target)
	case "SWAP":
		s.applySWAP(g.Control, g.Target)
	case "CCX", "TOFFOLI":
		if len(g.Controls) >= 2 {
			s.applyCCX(g.Controls[0], g.Controls[1], g.Target)
		}
	case "CRX", "CRY", "CRZ":
		m, ok := singleQubitMatrix(g.Label[1:], g.IsDagger, g.Params)
		if ok {
			s.applyControlled(m, g.Control, g.Target)
		}
	default:
		if m, ok := singleQubitMatrix(g.Label, g.IsDagger, g.Params); ok {
			s.applyMatrix(m, g.Target)
		}
	}
}

// applyControlled applies a single-qubit operator to target on the
// subspace where control is |1⟩.
func (s *StateVector) applyControlled(m matrix2, control, target int) {
	cBit, tBit := 1<<control, 1<<target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
			s.Amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
		}
	}
}

// GroundStateProbability returns ⟨0...0|ψ⟩⟨ψ|0...0⟩.
func (s *StateVector) GroundStateProbability() float64 {
	a := s.Amplitudes[0]
	return real(a * cmplx.Conj(a))
}

// SimulateCircuit runs the circuit on |0...0⟩, moment by moment.
func SimulateCircuit(c *Circuit) *StateVector {
	if c.NumQubits == 0 {
		return NewStateVector(1)
	}
	state := NewStateVector(c.NumQubits)
	for moment := 0; moment < c.NumMoments; moment++ {
		for _, g := range c.OperationsAt(moment) {
			state.ApplyGate(g)
		}
	}
	return state
}

// NoiselessExecutor returns an Executor computing the exact ground-state
// probability of the circuit. This is the reference executor: inserting a
// well-formed decoupling rule must leave its value unchanged.
func NoiselessExecutor() Executor {
	return func(c *Circuit) (float64, error) {
		return SimulateCircuit(c).GroundStateProbability(), nil
	}
}

// DephasingExecutor returns an Executor modeling coherent idle dephasing:
// every idle (qubit, moment) cell picks up an RZ(theta) kick before the
// moment's gates run. Gates inserted by a decoupling rule occupy their
// cells, so they displace the kick and refocus accumulated phase.
func DephasingExecutor(theta float64) Executor {
	rz, _ := singleQubitMatrix("RZ", false, []float64{theta})
	return func(c *Circuit) (float64, error) {
		mask, err := BuildMask(c)
		if err != nil {
			return 0, err
		}
		if c.NumQubits == 0 {
			return 1, nil
		}
		state := NewStateVector(c.NumQubits)
		for moment := 0; moment < c.NumMoments; moment++ {
			for q := 0; q < c.NumQubits; q++ {
				if mask[q][moment] == 0 {
					state.applyMatrix(rz, q)
				}
			}
			for _, g := range c.OperationsAt(moment) {
				state.ApplyGate(g)
			}
		}
		return state.GroundStateProbability(), nil
	}
}
