// Package search implements neighbourhood search over the anagram index,
// candidate gathering/scoring/ranking, the optional visited-hash cache,
// and confusable reweighting: the driver that answers "what are the
// lexicon variants of this input string".
package search

import "math"

// Weights are the non-negative scoring coefficients combined into the
// composite candidate score. Their sum must be positive.
type Weights struct {
	LD     float64
	LCS    float64
	Freq   float64
	Prefix float64
	Suffix float64
	Case   float64
	Lex    float64
}

// DefaultWeights gives equal weight to the five core distance/similarity
// signals, with no case or lexicon weighting unless the caller opts in.
func DefaultWeights() Weights {
	return Weights{LD: 1.0, LCS: 1.0, Freq: 1.0, Prefix: 1.0, Suffix: 1.0}
}

// Sum returns the total of all seven weights, used to normalise the
// composite score into [0,1].
func (w Weights) Sum() float64 {
	return w.LD + w.LCS + w.Freq + w.Prefix + w.Suffix + w.Case + w.Lex
}

// ThresholdKind discriminates a DistanceThreshold's interpretation.
type ThresholdKind uint8

const (
	Absolute ThresholdKind = iota
	Ratio
	RatioWithLimit
)

// DistanceThreshold bounds an anagram or edit distance either as a fixed
// count, or as a ratio of the query length (optionally capped).
type DistanceThreshold struct {
	Kind  ThresholdKind
	Abs   uint8
	Ratio float64
	Limit uint8
}

// AbsoluteThreshold builds a fixed-count threshold.
func AbsoluteThreshold(n uint8) DistanceThreshold {
	return DistanceThreshold{Kind: Absolute, Abs: n}
}

// RatioThreshold builds a threshold proportional to query length.
func RatioThreshold(ratio float64) DistanceThreshold {
	return DistanceThreshold{Kind: Ratio, Ratio: ratio}
}

// RatioWithLimitThreshold builds a ratio threshold capped at limit.
func RatioWithLimitThreshold(ratio float64, limit uint8) DistanceThreshold {
	return DistanceThreshold{Kind: RatioWithLimit, Ratio: ratio, Limit: limit}
}

// Resolve computes the concrete distance bound for a query of the given
// character length.
func (d DistanceThreshold) Resolve(queryLength int) uint8 {
	switch d.Kind {
	case Absolute:
		return d.Abs
	case Ratio:
		return roundRatio(d.Ratio, queryLength)
	case RatioWithLimit:
		n := roundRatio(d.Ratio, queryLength)
		if n > d.Limit {
			return d.Limit
		}
		return n
	default:
		return d.Abs
	}
}

func roundRatio(ratio float64, length int) uint8 {
	n := math.Round(ratio * float64(length))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// StopKind discriminates a StopCriterion's early-termination rule.
type StopKind uint8

const (
	Exhaustive StopKind = iota
	StopAtExactMatch
	Iterative
	IterativeStopAtExactMatch
)

// StopCriterion controls how variantcl.Model.FindVariants terminates
// anagram-distance expansion
// early. Threshold is only meaningful for the Iterative variants: it is
// the candidate count at which widening stops.
type StopCriterion struct {
	Kind      StopKind
	Threshold int
}

// Params bundles everything variantcl.Model.FindVariants needs beyond the
// query string itself.
type Params struct {
	MaxAnagramDistance DistanceThreshold
	MaxEditDistance    DistanceThreshold
	MaxMatches         int
	ScoreThreshold     float64
	Weights            Weights
	StopCriterion      StopCriterion
	SingleThread       bool
}

// DefaultParams mirrors a permissive, exhaustive search: distance 2, at
// most 10 matches, the default weights, and no early termination.
func DefaultParams() Params {
	return Params{
		MaxAnagramDistance: AbsoluteThreshold(2),
		MaxEditDistance:    AbsoluteThreshold(2),
		MaxMatches:         10,
		Weights:            DefaultWeights(),
		StopCriterion:      StopCriterion{Kind: Exhaustive},
	}
}
