package experiment

import (
	"context"
	"fmt"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/subcrack/internal/generator"
	"github.com/verte-zerg/subcrack/internal/model"
	"github.com/verte-zerg/subcrack/internal/stats"
)

// TrendOptions configures an averaged run.
type TrendOptions struct {
	Sample   string
	Lengths  []int
	Trials   int
	Parallel int
	Seed     int64
	// RandomWindow attacks a random slice of the sample instead of its prefix.
	RandomWindow bool
}

// Trend repeats the experiment with independent keys and summarizes each length.
// Trial seeds are drawn up front so results do not depend on scheduling.
func Trend(ctx context.Context, opts TrendOptions) (model.Trend, error) {
	if opts.Trials <= 0 {
		return model.Trend{}, fmt.Errorf("trials must be > 0")
	}
	if len(opts.Lengths) == 0 {
		return model.Trend{}, fmt.Errorf("no lengths configured")
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = 1
	}

	master := generator.NewSeeded(opts.Seed)
	seeds := make([]int64, opts.Trials)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	// rates[length index][trial index]
	rates := make([][]float64, len(opts.Lengths))
	for i := range rates {
		rates[i] = make([]float64, opts.Trials)
	}
	total := utf8.RuneCountInString(opts.Sample)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for trial := 0; trial < opts.Trials; trial++ {
		trial := trial
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			gen := generator.NewSeeded(seeds[trial])
			key := gen.GenerateKey()
			for li, l := range opts.Lengths {
				off := 0
				if opts.RandomWindow {
					off = gen.Offset(total, l)
				}
				rates[li][trial] = Attack(Window(opts.Sample, off, l), key).SuccessRate
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Trend{}, err
	}

	trend := model.Trend{Points: make([]model.TrendPoint, 0, len(opts.Lengths))}
	for li, l := range opts.Lengths {
		point, err := stats.Summarize(l, rates[li])
		if err != nil {
			return model.Trend{}, err
		}
		trend.Points = append(trend.Points, point)
	}
	trend.Correlation = stats.LengthCorrelation(trend.Points)
	return trend, nil
}
