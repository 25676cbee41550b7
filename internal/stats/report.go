package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/subcrack/internal/model"
)

const (
	reportHeader    = "Message Length | Success Rate (%)"
	reportSeparator = "----------------------------------"
	historyTime     = "2006-01-02 15:04"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))

// RenderReport prints one row per configured length in the order given.
func RenderReport(w io.Writer, results []model.ExperimentResult) error {
	if _, err := fmt.Fprintln(w, styleHeader(w, reportHeader)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, reportSeparator); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%14d | %.2f\n", r.Length, r.SuccessRate); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints averaged success rates per length.
func RenderTrend(w io.Writer, trend model.Trend) error {
	if len(trend.Points) == 0 {
		_, err := fmt.Fprintln(w, "No trend data.")
		return err
	}
	title := fmt.Sprintf("Trend over %d trials", trend.Points[0].Trials)
	if _, err := fmt.Fprintln(w, styleHeader(w, title)); err != nil {
		return err
	}

	headers := []string{"Length", "Mean (%)", "StdDev", "Min", "Max"}
	rows := make([][]string, 0, len(trend.Points))
	means := make([]float64, 0, len(trend.Points))
	for _, p := range trend.Points {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Length),
			fmt.Sprintf("%.2f", p.Mean),
			fmt.Sprintf("%.2f", p.StdDev),
			fmt.Sprintf("%.2f", p.Min),
			fmt.Sprintf("%.2f", p.Max),
		})
		means = append(means, p.Mean)
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Means: [%s]\n", Sparkline(means)); err != nil {
		return err
	}
	corr := "n/a"
	if !math.IsNaN(trend.Correlation) {
		corr = fmt.Sprintf("%.3f", trend.Correlation)
	}
	_, err := fmt.Fprintf(w, "Correlation (length vs mean): %s\n", corr)
	return err
}

// RenderHistory prints stored runs, newest first as given.
func RenderHistory(w io.Writer, runs []model.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	headers := []string{"Started", "Kind", "Seed", "Trials", "Rates", "Curve", "ID"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		parts := make([]string, 0, len(run.Results))
		rates := make([]float64, 0, len(run.Results))
		for _, r := range run.Results {
			parts = append(parts, fmt.Sprintf("%d:%.2f", r.Length, r.SuccessRate))
			rates = append(rates, r.SuccessRate)
		}
		rows = append(rows, []string{
			run.StartedAt.In(time.Local).Format(historyTime),
			run.Kind,
			fmt.Sprintf("%d", run.Seed),
			fmt.Sprintf("%d", run.Trials),
			strings.Join(parts, " "),
			Sparkline(rates),
			shortID(run.ID),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func styleHeader(w io.Writer, s string) string {
	if !shouldUseColor(w) {
		return s
	}
	return headerStyle.Render(s)
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
