// Package stats contains scoring, aggregation, and report rendering.
package stats

import (
	"fmt"
	"math"
	"strings"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/verte-zerg/subcrack/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summarize aggregates per-trial success rates observed at one length.
func Summarize(length int, rates []float64) (model.TrendPoint, error) {
	point := model.TrendPoint{Length: length, Trials: len(rates)}
	if len(rates) == 0 {
		return point, fmt.Errorf("no trials for length %d", length)
	}
	var err error
	if point.Mean, err = mstats.Mean(rates); err != nil {
		return point, fmt.Errorf("failed to compute mean: %w", err)
	}
	if point.StdDev, err = mstats.StandardDeviation(rates); err != nil {
		return point, fmt.Errorf("failed to compute stddev: %w", err)
	}
	if point.Min, err = mstats.Min(rates); err != nil {
		return point, fmt.Errorf("failed to compute min: %w", err)
	}
	if point.Max, err = mstats.Max(rates); err != nil {
		return point, fmt.Errorf("failed to compute max: %w", err)
	}
	return point, nil
}

// LengthCorrelation returns the Pearson correlation between length and mean rate.
// It is NaN for fewer than two points or a constant series.
func LengthCorrelation(points []model.TrendPoint) float64 {
	if len(points) < 2 {
		return math.NaN()
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.Length)
		ys[i] = p.Mean
	}
	return stat.Correlation(xs, ys, nil)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
