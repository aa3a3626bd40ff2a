package diff

import "github.com/atahabilder1/SPECTRE/internal/core"

// classifyFn reproduces the classification a candidate program yields when
// run under the same (forkA, forkB, gasLimit) as the original diverging
// program. Minimize is decoupled from Run so it can be tested against a
// synthetic predicate without spinning up real EVM state.
type classifyFn func(code []byte) Classification

// Minimize implements the standard delta-debugging recurrence (§4.9,
// "Minimizer"): it partitions the program into n chunks and tests whether
// removing each chunk, or keeping only that chunk, preserves the original
// classification. After a successful reduction it restarts at n = 2; when no
// chunk reduces the program it doubles n, and it stops once n reaches the
// program length. The predicate is exact category equality, not byte
// equality.
func Minimize(code []byte, target Classification, classify classifyFn) []byte {
	current := append([]byte(nil), code...)
	n := 2

	for len(current) > 0 {
		reduced := false

		chunkSize := (len(current) + n - 1) / n
		if chunkSize == 0 {
			break
		}

		for i := 0; i < n; i++ {
			lo := i * chunkSize
			hi := lo + chunkSize
			if lo >= len(current) {
				break
			}
			if hi > len(current) {
				hi = len(current)
			}

			// Try removing this chunk.
			candidate := make([]byte, 0, len(current)-(hi-lo))
			candidate = append(candidate, current[:lo]...)
			candidate = append(candidate, current[hi:]...)
			if len(candidate) > 0 && classify(candidate) == target {
				current = candidate
				reduced = true
				break
			}

			// Try keeping only this chunk (the complement test).
			complement := append([]byte(nil), current[lo:hi]...)
			if len(complement) < len(current) && classify(complement) == target {
				current = complement
				reduced = true
				break
			}
		}

		if reduced {
			n = 2
			continue
		}

		if n >= len(current) {
			break
		}
		n *= 2
	}

	return current
}

// MinimizeDivergence minimizes a real diverging program by re-running it
// through the interpreter under the original fork pair and gas limit for
// every candidate the delta-debugging recurrence proposes.
func MinimizeDivergence(code []byte, gasLimit uint64, forkA, forkB core.Fork, target Classification) []byte {
	classify := func(candidate []byte) Classification {
		d, err := Run(candidate, gasLimit, forkA, forkB)
		if err != nil {
			return NoDivergence
		}
		return d.Classification
	}
	return Minimize(code, target, classify)
}
