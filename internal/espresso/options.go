// SPDX-License-Identifier: Apache-2.0
package espresso

// Strategy selects the minimization effort. The driver branches on it once
// at the top level; no pass inspects it again.
type Strategy int

const (
	// StrategyDefault iterates EXPAND/IRREDUNDANT/REDUCE to a cost
	// fixpoint, then tries LAST_GASP, going back to the loop whenever the
	// gasp improves the cover.
	StrategyDefault Strategy = iota
	// StrategyFast runs a single EXPAND and IRREDUNDANT pass.
	StrategyFast
	// StrategyStrong iterates LAST_GASP until it stops improving.
	StrategyStrong
)

func (s Strategy) String() string {
	switch s {
	case StrategyFast:
		return "fast"
	case StrategyStrong:
		return "strong"
	default:
		return "default"
	}
}

// Options configures a top-level minimize call.
type Options struct {
	Strategy Strategy

	// UnwrapOnset expands the ON-set into single-output cubes before
	// minimization.
	UnwrapOnset bool

	// RecomputeOnset derives F as the complement of D ∪ R before starting.
	RecomputeOnset bool

	// DetectEssentials peels essential primes out of the iteration.
	DetectEssentials bool

	// FinalIrredundant runs a closing IRREDUNDANT; when false the
	// literal-removal step may leave redundancy behind.
	FinalIrredundant bool

	// SwapOnOff minimizes the OFF-set instead: F and R are swapped on
	// input and the result covers the original OFF-set.
	SwapOnOff bool

	// MaxCoverNodes caps the branch-and-bound node count of every minimum
	// cover search. Zero means DefaultMaxCoverNodes.
	MaxCoverNodes int

	// MaxPrimes caps the prime table of the exact solver. Zero means
	// DefaultMaxPrimes.
	MaxPrimes int
}

const (
	DefaultMaxCoverNodes = 200000
	DefaultMaxPrimes     = 50000
)

// DefaultOptions is the configuration of a plain minimize call.
func DefaultOptions() Options {
	return Options{
		Strategy:         StrategyDefault,
		DetectEssentials: true,
		FinalIrredundant: true,
	}
}

func (o Options) maxCoverNodes() int {
	if o.MaxCoverNodes > 0 {
		return o.MaxCoverNodes
	}
	return DefaultMaxCoverNodes
}

func (o Options) maxPrimes() int {
	if o.MaxPrimes > 0 {
		return o.MaxPrimes
	}
	return DefaultMaxPrimes
}
