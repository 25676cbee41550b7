// Package model defines shared data structures.
package model

import "time"

// Run kinds stored with each run.
const (
	KindExperiment = "experiment"
	KindTrend      = "trend"
)

// Config defines experiment settings.
type Config struct {
	Lengths    []int
	Seed       int64
	Repeat     int
	Sentence   string
	SampleFile string
	Save       bool
	ShowKey    bool
}

// HistoryConfig defines filters for listing stored runs.
type HistoryConfig struct {
	Kind string
	Last int
}

// ExperimentResult is the success rate observed at one message length.
type ExperimentResult struct {
	Length      int
	SuccessRate float64
}

// TrendPoint summarizes success rates across trials at one message length.
type TrendPoint struct {
	Length int
	Trials int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Trend is the outcome of a trend run.
type Trend struct {
	Points []TrendPoint
	// Correlation between length and mean rate; NaN when undefined.
	Correlation float64
}

// Run captures a stored experiment or trend run.
type Run struct {
	ID        string
	StartedAt time.Time
	Kind      string
	Seed      int64
	Key       string
	Trials    int
	Results   []RunResult
}

// RunResult is one stored row of a run.
type RunResult struct {
	Length      int
	SuccessRate float64
	StdDev      float64
}
