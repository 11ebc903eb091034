package main

import "fmt"

// Executor runs a circuit and returns a scalar expectation value. It is
// opaque to the decoupling engine and may be noisy or stochastic; a
// noiseless statevector executor lives in quantum.go.
type Executor func(*Circuit) (float64, error)

// ExecuteWithDDD runs the circuit with decoupling sequences inserted and
// returns the executor's expectation value. With numTrials == 1 the result
// is exactly executor(InsertSequences(c, rule)). With numTrials > 1 the
// insert+execute round repeats and the arithmetic mean is returned;
// insertion itself is deterministic, so trial-to-trial variation comes
// from the executor alone. Trials run sequentially.
//
// Any executor failure aborts the whole call: no retries, no averaging
// over the trials that did succeed.
func ExecuteWithDDD(c *Circuit, execute Executor, rule Rule, numTrials int, opts ...InsertOption) (float64, error) {
	if numTrials < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrNumTrials, numTrials)
	}

	sum := 0.0
	for trial := 0; trial < numTrials; trial++ {
		modified, err := InsertSequences(c, rule, opts...)
		if err != nil {
			return 0, err
		}
		value, err := execute(modified)
		if err != nil {
			return 0, fmt.Errorf("ddd: trial %d failed: %w", trial, err)
		}
		sum += value
	}
	return sum / float64(numTrials), nil
}
