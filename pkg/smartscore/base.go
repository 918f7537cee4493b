package smartscore

import (
	"math"
	"time"

	"github.com/tlemarchand/aval/pkg/scale"
)

// Option configures a Compute call.
type Option func(*computeOptions)

type computeOptions struct {
	thresholds      VerdictThresholds
	opportunities   []string
	risks           []string
	recommendations []string
	now             func() time.Time
}

// WithThresholds overrides the default verdict ladder. Invalid ladders
// (not strictly decreasing) are ignored.
func WithThresholds(t VerdictThresholds) Option {
	return func(o *computeOptions) {
		if t.Valid() {
			o.thresholds = t
		}
	}
}

// WithNarrative attaches the caller-generated opportunity, risk and
// recommendation texts to the result.
func WithNarrative(opportunities, risks, recommendations []string) Option {
	return func(o *computeOptions) {
		o.opportunities = opportunities
		o.risks = risks
		o.recommendations = recommendations
	}
}

// withClock fixes the computation timestamp, for tests.
func withClock(now func() time.Time) Option {
	return func(o *computeOptions) {
		o.now = now
	}
}

// ComputeVerdict clamps the score to [0,100] and classifies it against the
// threshold ladder.
func ComputeVerdict(score float64, t VerdictThresholds) Verdict {
	if !t.Valid() {
		t = DefaultThresholds()
	}
	s := scale.Clamp0100(score)
	switch {
	case s >= t.Go:
		return VerdictGo
	case s >= t.GoWithReserves:
		return VerdictGoReserves
	case s >= t.Deepen:
		return VerdictApprofondir
	default:
		return VerdictNoGo
	}
}

// NormalizeComponents clamps every component's weight to [0,1] and score to
// [0,100], zeroing non-finite values. This guards the aggregation against
// out-of-range values produced by an upstream scorer bug.
func NormalizeComponents(components []ScoreComponent) []ScoreComponent {
	out := make([]ScoreComponent, len(components))
	for i, c := range components {
		c.Weight = scale.Clamp(c.Weight, 0, 1)
		c.Score = scale.Clamp0100(c.Score)
		out[i] = c
	}
	return out
}

// Compute normalizes the components, blends them into an overall score via
// the weighted mean (components with non-positive weight are excluded, not
// zero-counted), classifies the verdict, and packages everything with the
// scorer version and a UTC timestamp. The verdict is classified on the
// rounded published score so the displayed pair is always consistent.
func Compute(nature ProjectNature, components []ScoreComponent, opts ...Option) *Result {
	o := computeOptions{
		thresholds: DefaultThresholds(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	normalized := NormalizeComponents(components)
	items := make([]scale.Weighted, len(normalized))
	for i, c := range normalized {
		items[i] = scale.Weighted{Score: c.Score, Weight: c.Weight}
	}
	overall := scale.WeightedMean(items)
	score := int(math.Round(scale.Clamp0100(overall)))

	return &Result{
		ProjectNature:   nature,
		Score:           score,
		Verdict:         ComputeVerdict(float64(score), o.thresholds),
		Components:      normalized,
		Opportunities:   emptyIfNil(o.opportunities),
		Risks:           emptyIfNil(o.risks),
		Recommendations: emptyIfNil(o.recommendations),
		Meta: Meta{
			Version:    Version,
			ComputedAt: o.now().UTC(),
		},
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
