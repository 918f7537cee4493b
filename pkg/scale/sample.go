package scale

// SampleState distinguishes how a sub-score value was obtained.
type SampleState int

const (
	// SampleUnavailable means the backing data was absent entirely.
	SampleUnavailable SampleState = iota
	// SampleAssumed means a neutral value was substituted for missing data.
	SampleAssumed
	// SampleComputed means the value was derived from real input.
	SampleComputed
)

// Sample is a sub-score with provenance. Missing data is represented
// explicitly instead of being conflated with a genuine 0 or 50; the state
// collapses to a plain number only when the sample enters a weighted mean.
type Sample struct {
	State SampleState
	Value float64
}

// Unavailable returns a sample for absent data.
func Unavailable() Sample {
	return Sample{State: SampleUnavailable}
}

// Assumed returns a neutral-substitute sample.
func Assumed(v float64) Sample {
	return Sample{State: SampleAssumed, Value: Clamp0100(v)}
}

// Computed returns a sample derived from real input.
func Computed(v float64) Sample {
	return Sample{State: SampleComputed, Value: Clamp0100(v)}
}

// Score collapses the sample to a number, using fallback when unavailable.
// The fallback differs per metric (0 for presence-style metrics, 50 for
// optional blocks) and is chosen by the caller, never unified here.
func (s Sample) Score(fallback float64) float64 {
	if s.State == SampleUnavailable {
		return Clamp0100(fallback)
	}
	return s.Value
}

// Known reports whether the sample carries a value (assumed or computed).
func (s Sample) Known() bool {
	return s.State != SampleUnavailable
}
