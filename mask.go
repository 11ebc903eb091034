package main

// BuildMask converts a circuit into its occupancy grid: a 0/1 matrix with
// one row per qubit and one column per moment. Entry (q, t) is 1 iff some
// gate at moment t acts on qubit q; a multi-qubit gate marks every row of
// its tuple at its column, and a barrier marks the whole column. Gate
// identity and parameters are irrelevant here.
//
// Fails with ErrInvalidCircuit when two gates of one moment share a qubit
// or a gate references a qubit outside the circuit's range.
func BuildMask(c *Circuit) ([][]int, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	mask := make([][]int, c.NumQubits)
	for q := range mask {
		mask[q] = make([]int, c.NumMoments)
	}
	for _, g := range c.Gates {
		if g.Label == "BARRIER" {
			for q := 0; q < c.NumQubits; q++ {
				mask[q][g.Moment] = 1
			}
			continue
		}
		for _, q := range g.Qubits() {
			mask[q][g.Moment] = 1
		}
	}
	return mask, nil
}
