// Package scale provides the numeric primitives shared by every scorer:
// range-to-score normalization, clamping, weighted aggregation, and the
// three-state sub-score sample used to keep "unavailable", "assumed", and
// "computed" values distinct until the blending boundary.
package scale

import "math"

// Weighted pairs a sub-score with its aggregation weight.
type Weighted struct {
	Score  float64
	Weight float64
}

// Clamp bounds n to [min, max]. Non-finite input maps to min.
func Clamp(n, min, max float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return min
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// Clamp0100 bounds n to the standard score range [0, 100].
func Clamp0100(n float64) float64 {
	return Clamp(n, 0, 100)
}

// ScoreFromRange linearly maps value from [min, max] to [0, 100].
// A non-finite value scores 0, as does a degenerate range (max == min).
// When higherIsBetter is false the scale is inverted (100 - p), for
// metrics like vacancy rate or distance where lower raw values are better.
func ScoreFromRange(value, min, max float64, higherIsBetter bool) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	if max == min {
		return 0
	}
	p := Clamp0100((value - min) / (max - min) * 100)
	if !higherIsBetter {
		return 100 - p
	}
	return p
}

// ScoreFromRangeOpt is ScoreFromRange for optional metrics: nil scores 0.
func ScoreFromRangeOpt(value *float64, min, max float64, higherIsBetter bool) float64 {
	if value == nil {
		return 0
	}
	return ScoreFromRange(*value, min, max, higherIsBetter)
}

// WeightedMean computes the weighted mean of the items, excluding any item
// with a non-positive weight. Each score is clamped to [0, 100] before
// multiplication. Returns 0 when no item carries positive weight.
//
// Excluding rather than zeroing is what lets scorers silently drop
// unavailable components without rebalancing the remaining weights.
func WeightedMean(items []Weighted) float64 {
	var sum, total float64
	for _, it := range items {
		if it.Weight <= 0 || math.IsNaN(it.Weight) || math.IsInf(it.Weight, 0) {
			continue
		}
		sum += Clamp0100(it.Score) * it.Weight
		total += it.Weight
	}
	if total <= 0 {
		return 0
	}
	return sum / total
}

// RoundScore rounds n to the given number of decimals. Non-finite input
// rounds to 0.
func RoundScore(n float64, decimals int) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(n*pow) / pow
}
