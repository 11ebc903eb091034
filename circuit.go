package main

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*(\w+)\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
	barrierRegex         = regexp.MustCompile(`^barrier\s+`)
)

// Gate is a single operation placed on the circuit's time grid.
// A gate occupies exactly one moment; its qubit tuple is Target plus any
// controls. A barrier has Target == -1 and spans every qubit of its moment.
type Gate struct {
	Label    string    // "H", "X", "CX", "RX", "BARRIER", ...
	Target   int       // target qubit, or -1 for barriers
	Control  int       // control qubit for two-qubit gates, -1 if none
	Controls []int     // extra controls (CCX/Toffoli)
	Moment   int       // column on the time grid
	Params   []float64 // rotation angles etc.
	IsDagger bool      // adjoint variant (S†, T†)
	Inserted bool      // placed by the decoupling inserter, not the user
}

// Qubits returns the ordered qubit tuple the gate acts on.
// Barriers return nil; they are handled by span, not by tuple.
func (g Gate) Qubits() []int {
	if g.Label == "BARRIER" {
		return nil
	}
	qs := make([]int, 0, 2+len(g.Controls))
	if g.Control >= 0 {
		qs = append(qs, g.Control)
	}
	qs = append(qs, g.Controls...)
	qs = append(qs, g.Target)
	return qs
}

// touches reports whether the gate occupies the given qubit's wire.
func (g Gate) touches(qubit int) bool {
	if g.Label == "BARRIER" {
		return true
	}
	if g.Target == qubit || g.Control == qubit {
		return true
	}
	return slices.Contains(g.Controls, qubit)
}

// Circuit is an ordered sequence of moments over a fixed qubit set.
// Moment t is the set of gates with Moment == t. The decoupling engine
// treats circuits as immutable values: every transformation clones first.
type Circuit struct {
	NumQubits  int
	Gates      []Gate
	NumMoments int
}

// Clone returns a deep copy; gate slices are duplicated so the copy can be
// edited without aliasing the original.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{
		NumQubits:  c.NumQubits,
		Gates:      make([]Gate, len(c.Gates)),
		NumMoments: c.NumMoments,
	}
	for i, g := range c.Gates {
		g.Controls = slices.Clone(g.Controls)
		g.Params = slices.Clone(g.Params)
		out.Gates[i] = g
	}
	return out
}

func (c *Circuit) grow(moment int) {
	if moment >= c.NumMoments {
		c.NumMoments = moment + 1
	}
}

// AddGate appends a gate at the given moment. An optional control qubit
// turns it into a two-qubit gate.
func (c *Circuit) AddGate(label string, target, moment int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Label:   label,
		Target:  target,
		Control: ctrl,
		Moment:  moment,
	})
	c.grow(moment)
}

// AddParameterizedGate appends a parameterized gate at the given moment.
func (c *Circuit) AddParameterizedGate(label string, target, moment int, params []float64, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Label:   label,
		Target:  target,
		Control: ctrl,
		Moment:  moment,
		Params:  params,
	})
	c.grow(moment)
}

// AddMultiControlGate appends a gate with several control qubits (CCX).
func (c *Circuit) AddMultiControlGate(label string, target, moment int, controls []int) {
	c.Gates = append(c.Gates, Gate{
		Label:    label,
		Target:   target,
		Control:  -1,
		Controls: controls,
		Moment:   moment,
	})
	c.grow(moment)
}

// AddDaggerGate appends an adjoint gate (SDG/TDG) at the given moment.
func (c *Circuit) AddDaggerGate(label string, target, moment int) {
	c.Gates = append(c.Gates, Gate{
		Label:    label,
		Target:   target,
		Control:  -1,
		Moment:   moment,
		IsDagger: true,
	})
	c.grow(moment)
}

// AddBarrier places a barrier spanning all qubits at the given moment,
// replacing any barrier already there.
func (c *Circuit) AddBarrier(moment int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.Moment == moment && g.Label == "BARRIER"
	})
	c.Gates = append(c.Gates, Gate{
		Label:   "BARRIER",
		Target:  -1,
		Control: -1,
		Moment:  moment,
	})
	c.grow(moment)
}

// RemoveGateAt removes whatever occupies (moment, qubit), barriers included.
func (c *Circuit) RemoveGateAt(moment, qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.Moment == moment && g.touches(qubit)
	})
}

// RemoveGatesOnQubit removes every gate whose tuple includes the qubit.
func (c *Circuit) RemoveGatesOnQubit(qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.Label != "BARRIER" && g.touches(qubit)
	})
}

// GateAt returns the gate occupying (moment, qubit), or nil.
func (c *Circuit) GateAt(moment, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Moment == moment && g.touches(qubit) {
			return g
		}
	}
	return nil
}

// OperationsAt returns the gates of one moment, in insertion order.
func (c *Circuit) OperationsAt(moment int) []Gate {
	var ops []Gate
	for _, g := range c.Gates {
		if g.Moment == moment {
			ops = append(ops, g)
		}
	}
	return ops
}

// CanPlaceAt reports whether every listed qubit wire is free at the moment.
func (c *Circuit) CanPlaceAt(moment int, qubits []int) bool {
	for _, q := range qubits {
		if c.GateAt(moment, q) != nil {
			return false
		}
	}
	return true
}

// validate checks circuit well-formedness: every gate's qubits lie in
// [0, NumQubits) and no two gates of one moment share a qubit. Barriers
// span the whole moment, so anything else in a barrier moment collides.
func (c *Circuit) validate() error {
	type cell struct{ moment, qubit int }
	seen := make(map[cell]bool, len(c.Gates))
	barrier := make(map[int]bool)
	occupied := make(map[int]bool)

	for _, g := range c.Gates {
		if g.Moment < 0 || g.Moment >= c.NumMoments {
			return fmt.Errorf("%w: gate %s at moment %d outside [0,%d)",
				ErrInvalidCircuit, g.Label, g.Moment, c.NumMoments)
		}
		if g.Label == "BARRIER" {
			if barrier[g.Moment] || occupied[g.Moment] {
				return fmt.Errorf("%w: barrier overlaps gates at moment %d",
					ErrInvalidCircuit, g.Moment)
			}
			barrier[g.Moment] = true
			continue
		}
		if barrier[g.Moment] {
			return fmt.Errorf("%w: gate %s shares moment %d with a barrier",
				ErrInvalidCircuit, g.Label, g.Moment)
		}
		occupied[g.Moment] = true
		for _, q := range g.Qubits() {
			if q < 0 || q >= c.NumQubits {
				return fmt.Errorf("%w: gate %s references qubit %d outside [0,%d)",
					ErrInvalidCircuit, g.Label, q, c.NumQubits)
			}
			key := cell{g.Moment, q}
			if seen[key] {
				return fmt.Errorf("%w: qubit %d used twice at moment %d",
					ErrInvalidCircuit, q, g.Moment)
			}
			seen[key] = true
		}
	}
	return nil
}

// ──────────────────────────── QASM 2.0 ────────────────────────────

// ToQASM generates QASM 2.0 output, moment by moment. Inserted decoupling
// gates serialize like any other single-qubit gate.
func (c *Circuit) ToQASM() string {
	maxQubit := -1
	hasMeasure := false
	for _, g := range c.Gates {
		maxQubit = max(maxQubit, g.Target, g.Control)
		for _, ctrl := range g.Controls {
			maxQubit = max(maxQubit, ctrl)
		}
		if g.Label == "MEASURE" {
			hasMeasure = true
		}
	}
	numQubits := max(maxQubit+1, c.NumQubits, 1)

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	if hasMeasure {
		fmt.Fprintf(&sb, "creg c[%d];\n", numQubits)
	}
	sb.WriteString("\n")

	for moment := 0; moment < c.NumMoments; moment++ {
		for _, g := range c.Gates {
			if g.Moment != moment {
				continue
			}
			writeGateQASM(&sb, g, numQubits)
		}
	}
	return sb.String()
}

func writeGateQASM(sb *strings.Builder, g Gate, numQubits int) {
	name := strings.ToLower(g.Label)
	switch {
	case g.Label == "BARRIER":
		qubits := make([]string, numQubits)
		for q := 0; q < numQubits; q++ {
			qubits[q] = fmt.Sprintf("q[%d]", q)
		}
		fmt.Fprintf(sb, "barrier %s;\n", strings.Join(qubits, ", "))

	case g.Label == "MEASURE":
		fmt.Fprintf(sb, "measure q[%d] -> c[%d];\n", g.Target, g.Target)

	case len(g.Controls) > 0:
		all := append(slices.Clone(g.Controls), g.Target)
		parts := make([]string, len(all))
		for i, q := range all {
			parts[i] = fmt.Sprintf("q[%d]", q)
		}
		fmt.Fprintf(sb, "%s %s;\n", name, strings.Join(parts, ", "))

	case g.Control >= 0:
		if len(g.Params) > 0 {
			fmt.Fprintf(sb, "%s(%s) q[%d], q[%d];\n", name, formatParam(g.Params[0]), g.Control, g.Target)
		} else {
			fmt.Fprintf(sb, "%s q[%d], q[%d];\n", name, g.Control, g.Target)
		}

	case len(g.Params) > 0:
		fmt.Fprintf(sb, "%s(%s) q[%d];\n", name, formatParam(g.Params[0]), g.Target)

	case g.IsDagger:
		fmt.Fprintf(sb, "%sdg q[%d];\n", name, g.Target)

	case g.Label == "I":
		fmt.Fprintf(sb, "id q[%d];\n", g.Target)

	default:
		fmt.Fprintf(sb, "%s q[%d];\n", name, g.Target)
	}
}

// momentPacker assigns moments to gates as they stream out of the QASM
// parser: independent single-qubit gates share a moment, a qubit conflict
// opens the next one, and multi-qubit gates or barriers always claim a
// fresh moment so their column is pinned for every row they touch.
type momentPacker struct {
	current int
	used    map[int]bool
}

func newMomentPacker() *momentPacker {
	return &momentPacker{used: make(map[int]bool)}
}

func (p *momentPacker) advance() {
	p.current++
	p.used = make(map[int]bool)
}

// place returns the moment for a gate over the given qubits; exclusive
// gates (multi-qubit, barrier) never share their moment.
func (p *momentPacker) place(qubits []int, exclusive bool) int {
	if exclusive {
		if len(p.used) > 0 {
			p.advance()
		}
		m := p.current
		p.advance()
		return m
	}
	for _, q := range qubits {
		if p.used[q] {
			p.advance()
			break
		}
	}
	for _, q := range qubits {
		p.used[q] = true
	}
	return p.current
}

// ParseQASM parses QASM text and rebuilds the circuit from it.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.NumMoments = 0
	packer := newMomentPacker()

	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if matches := qregRegex.FindStringSubmatch(line); len(matches) > 2 {
				n, _ := strconv.Atoi(matches[2])
				c.NumQubits = max(c.NumQubits, n)
			}
			continue
		}
		if barrierRegex.MatchString(line) {
			c.AddBarrier(packer.place(nil, true))
			continue
		}

		// measure q[n] -> c[m];
		if matches := measureRegex.FindStringSubmatch(line); matches != nil {
			target, _ := strconv.Atoi(matches[1])
			c.AddGate("MEASURE", target, packer.place([]int{target}, false))
			continue
		}

		// Three-qubit gates (ccx).
		if matches := threeQubitRegex.FindStringSubmatch(line); matches != nil {
			label := strings.ToUpper(matches[1])
			q1, _ := strconv.Atoi(matches[2])
			q2, _ := strconv.Atoi(matches[3])
			q3, _ := strconv.Atoi(matches[4])
			if label == "CCX" || label == "TOFFOLI" {
				c.AddMultiControlGate("CCX", q3, packer.place([]int{q1, q2, q3}, true), []int{q1, q2})
			}
			continue
		}

		// Two-qubit parameterized gates (crx, cry, crz).
		if matches := twoQubitParamRegex.FindStringSubmatch(line); matches != nil {
			label := strings.ToUpper(matches[1])
			param, _ := parseParamExpr(matches[2])
			q1, _ := strconv.Atoi(matches[3])
			q2, _ := strconv.Atoi(matches[4])
			c.AddParameterizedGate(label, q2, packer.place([]int{q1, q2}, true), []float64{param}, q1)
			continue
		}

		// Two-qubit gates (cx, cz, swap, ch).
		if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
			label := strings.ToUpper(matches[1])
			q1, _ := strconv.Atoi(matches[2])
			q2, _ := strconv.Atoi(matches[3])
			c.AddGate(label, q2, packer.place([]int{q1, q2}, true), q1)
			continue
		}

		// Single-qubit parameterized gates (rx, ry, rz, p, u1).
		if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
			label := strings.ToUpper(matches[1])
			param, _ := parseParamExpr(matches[2])
			target, _ := strconv.Atoi(matches[3])
			c.AddParameterizedGate(label, target, packer.place([]int{target}, false), []float64{param})
			continue
		}

		// Single-qubit gates, dagger variants included.
		if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
			label := strings.ToUpper(matches[1])
			target, _ := strconv.Atoi(matches[2])
			if label == "ID" {
				label = "I"
			}
			moment := packer.place([]int{target}, false)
			if base, ok := strings.CutSuffix(label, "DG"); ok && base != "" {
				c.AddDaggerGate(base, target, moment)
			} else {
				c.AddGate(label, target, moment)
			}
			continue
		}
	}

	// Qubit count may exceed the declared register when gates reach higher.
	for _, g := range c.Gates {
		for _, q := range g.Qubits() {
			c.NumQubits = max(c.NumQubits, q+1)
		}
	}
	return nil
}

// ──────────────────────────── Grid cells ────────────────────────────

// cellInfo describes what occupies a single cell of the rendered grid.
type cellInfo struct {
	gate        *Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
	isBarrier   bool
}

// getCellInfo returns rendering information for the cell at (moment, qubit).
func (c *Circuit) getCellInfo(moment, qubit int) cellInfo {
	var info cellInfo

	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Moment != moment {
			continue
		}
		if g.Label == "BARRIER" {
			info.isBarrier = true
			if info.gate == nil {
				info.gate = g
			}
			continue
		}
		if g.touches(qubit) {
			info.gate = g
			info.isControl = g.Control == qubit || slices.Contains(g.Controls, qubit)
			info.isTarget = g.Target == qubit && (g.Control >= 0 || len(g.Controls) > 0)
		}

		// Vertical connector span for multi-qubit gates.
		qs := g.Qubits()
		if len(qs) < 2 {
			continue
		}
		minQ, maxQ := slices.Min(qs), slices.Max(qs)
		if qubit >= minQ && qubit <= maxQ {
			if qubit > minQ {
				info.vertAbove = true
			}
			if qubit < maxQ {
				info.vertBelow = true
			}
			if qubit > minQ && qubit < maxQ && !g.touches(qubit) {
				info.passThrough = true
			}
		}
	}
	return info
}
