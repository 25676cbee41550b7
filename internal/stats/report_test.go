package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/subcrack/internal/model"
)

func TestRenderReportFormat(t *testing.T) {
	var buf bytes.Buffer
	err := RenderReport(&buf, []model.ExperimentResult{
		{Length: 50, SuccessRate: 2.3255814},
		{Length: 1000, SuccessRate: 21.428571},
	})
	require.NoError(t, err)
	want := "Message Length | Success Rate (%)\n" +
		"----------------------------------\n" +
		"            50 | 2.33\n" +
		"          1000 | 21.43\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderTrend(t *testing.T) {
	var buf bytes.Buffer
	trend := model.Trend{
		Points: []model.TrendPoint{
			{Length: 50, Trials: 10, Mean: 4.5, StdDev: 2, Min: 0, Max: 9},
			{Length: 1000, Trials: 10, Mean: 20.25, StdDev: 1, Min: 18, Max: 22},
		},
		Correlation: 1,
	}
	require.NoError(t, RenderTrend(&buf, trend))
	out := buf.String()
	for _, needle := range []string{"Trend over 10 trials", "Mean (%)", "20.25", "Means: [ @]", "Correlation (length vs mean): 1.000"} {
		assert.Contains(t, out, needle)
	}
}

func TestRenderTrendUndefinedCorrelation(t *testing.T) {
	var buf bytes.Buffer
	trend := model.Trend{
		Points:      []model.TrendPoint{{Length: 50, Trials: 1, Mean: 3}},
		Correlation: math.NaN(),
	}
	require.NoError(t, RenderTrend(&buf, trend))
	assert.Contains(t, buf.String(), "Correlation (length vs mean): n/a")
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHistory(&buf, nil))
	assert.Equal(t, "No runs found.", strings.TrimSpace(buf.String()))

	buf.Reset()
	runs := []model.Run{{
		ID:        "0123456789abcdef",
		StartedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.Local),
		Kind:      model.KindExperiment,
		Seed:      7,
		Trials:    1,
		Results: []model.RunResult{
			{Length: 50, SuccessRate: 2.33},
			{Length: 100, SuccessRate: 12.94},
		},
	}}
	require.NoError(t, RenderHistory(&buf, runs))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "header and one row")
	for _, needle := range []string{"2026-01-02 03:04", "experiment", "50:2.33 100:12.94", "01234567"} {
		assert.Contains(t, lines[1], needle)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Length", "Mean (%)", "Note"}
	rows := [][]string{
		{"50", "2.33", "short"},
		{"1000", "21.43", ""},
	}
	rightAlign := map[int]bool{0: true, 1: true}

	lines := formatTable(headers, rows, rightAlign)
	assert.Equal(t, []string{
		"Length Mean (%) Note",
		"    50     2.33 short",
		"  1000    21.43",
	}, lines)
}
