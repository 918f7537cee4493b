package portfolio

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// TrendPoint is one dated score in a portfolio history.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
	Label string    `json:"label,omitempty"`
}

// TrendStats holds regression statistics over a score history, with the
// point index as the independent variable.
type TrendStats struct {
	Slope       float64 `json:"slope"`     // score change per analysis
	Intercept   float64 `json:"intercept"` // fitted score at the first analysis
	RSquared    float64 `json:"r_squared"` // goodness of fit, 0-1
	Correlation float64 `json:"correlation"`
}

// Direction of a portfolio trend. Slopes within the stable band are noise.
type Direction string

const (
	TrendImproving Direction = "improving"
	TrendDeclining Direction = "declining"
	TrendStable    Direction = "stable"
)

const stableSlopeBand = 0.5

// Direction classifies the fitted slope.
func (s TrendStats) Direction() Direction {
	switch {
	case s.Slope > stableSlopeBand:
		return TrendImproving
	case s.Slope < -stableSlopeBand:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// ComputeTrendStats fits a linear regression over the points in date order.
// Fewer than two points yield zero statistics.
func ComputeTrendStats(points []TrendPoint) TrendStats {
	n := len(points)
	if n < 2 {
		return TrendStats{}
	}

	sorted := make([]TrendPoint, n)
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range sorted {
		xs[i] = float64(i)
		ys[i] = float64(p.Score)
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return TrendStats{
		Slope:       slope,
		Intercept:   intercept,
		RSquared:    stat.RSquared(xs, ys, nil, intercept, slope),
		Correlation: stat.Correlation(xs, ys, nil),
	}
}

// BuildTrend extracts dated points from a batch run. Files that failed,
// carry no analysis date, or duplicate an earlier file are skipped.
func BuildTrend(results []FileResult) []TrendPoint {
	var points []TrendPoint
	for _, fr := range results {
		if fr.Err != nil || fr.Result == nil || fr.Dossier == nil || fr.Dossier.AnalyzedAt == nil {
			continue
		}
		if fr.DuplicateOf != "" {
			continue
		}
		points = append(points, TrendPoint{
			Date:  *fr.Dossier.AnalyzedAt,
			Score: fr.Result.Score,
			Label: fr.Dossier.Label,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}
