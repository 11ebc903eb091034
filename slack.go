package main

// SlackMatrix derives the idle-run structure of an occupancy mask. The
// result has the mask's shape; entry (q, t) = L > 0 iff columns t..t+L-1
// are a maximal run of zeros in row q (the cells before and after the run
// are occupied or out of range). All other entries are 0.
//
// The input need not come from a circuit; any rectangular 0/1 matrix works.
func SlackMatrix(mask [][]int) [][]int {
	slack := make([][]int, len(mask))
	for q, row := range mask {
		slack[q] = make([]int, len(row))
		start := -1
		for t, occupied := range row {
			switch {
			case occupied == 0 && start < 0:
				start = t
			case occupied != 0 && start >= 0:
				slack[q][start] = t - start
				start = -1
			}
		}
		if start >= 0 {
			slack[q][start] = len(row) - start
		}
	}
	return slack
}

// SlackWindow is one maximal idle run on a single qubit wire.
type SlackWindow struct {
	Qubit  int
	Start  int // first idle moment
	Length int
}

// SlackWindows materializes the sparse interval view of a slack matrix:
// per-qubit ordered (start, length) windows, qubit-major then time-major.
func SlackWindows(slack [][]int) []SlackWindow {
	var windows []SlackWindow
	for q, row := range slack {
		for t, length := range row {
			if length > 0 {
				windows = append(windows, SlackWindow{Qubit: q, Start: t, Length: length})
			}
		}
	}
	return windows
}

// CircuitSlack is a convenience composition of BuildMask and SlackMatrix.
func CircuitSlack(c *Circuit) ([][]int, error) {
	mask, err := BuildMask(c)
	if err != nil {
		return nil, err
	}
	return SlackMatrix(mask), nil
}
