// Package main provides the CLI entrypoint for subcrack.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/subcrack/internal/config"
	"github.com/verte-zerg/subcrack/internal/experiment"
	"github.com/verte-zerg/subcrack/internal/generator"
	"github.com/verte-zerg/subcrack/internal/model"
	"github.com/verte-zerg/subcrack/internal/stats"
	"github.com/verte-zerg/subcrack/internal/store"
	"github.com/verte-zerg/subcrack/internal/tui"
)

const (
	defaultTrials      = 200
	defaultParallel    = 4
	defaultHistoryLast = 10
)

var (
	runLengths    []int
	runSeed       int64
	runRepeat     int
	runSentence   string
	runSampleFile string
	runSave       bool
	runShowKey    bool

	trendTrials       int
	trendParallel     int
	trendRandomWindow bool

	historyLast int
	historyKind string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "subcrack",
		Short:         "Break substitution ciphers with letter frequencies",
		Long:          "Encrypts a sample text with a random substitution key, guesses the key from\nciphertext letter frequencies alone, and reports how much plaintext is recovered\nat each message length.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runExperimentCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntSliceVar(&runLengths, "lengths", experiment.DefaultLengths(), "message lengths to attack")
	flags.Int64Var(&runSeed, "seed", 0, "random seed (0: time based)")
	flags.IntVar(&runRepeat, "repeat", experiment.DefaultRepeat, "times the sample sentence is repeated")
	flags.StringVar(&runSentence, "sentence", experiment.DefaultSentence, "sample sentence")
	flags.StringVar(&runSampleFile, "sample-file", "", "read the sample from a file instead of --sentence")
	flags.BoolVar(&runSave, "save", false, "record the run in the history database")
	rootCmd.Flags().BoolVar(&runShowKey, "show-key", false, "print the generated and guessed keys to stderr")

	rootCmd.AddCommand(newTrendCmd())
	rootCmd.AddCommand(newExploreCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runExperimentCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveConfig(cmd, fileCfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	sample, err := loadSample(cfg)
	if err != nil {
		return err
	}

	startedAt := time.Now()
	seed := resolveSeed(cfg.Seed, startedAt)
	res := experiment.Run(generator.NewSeeded(seed), sample, cfg.Lengths)

	if cfg.ShowKey {
		logErrf("seed %d\nkey  %s\n", seed, res.Key)
		for _, trace := range res.Traces {
			logErrf("%5d rank %s guess %s\n", len([]rune(trace.Plaintext)), trace.Ranking.Letters(), trace.Guess)
		}
	}
	if err := stats.RenderReport(cmd.OutOrStdout(), res.Results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !cfg.Save {
		return nil
	}
	run := model.Run{
		StartedAt: startedAt,
		Kind:      model.KindExperiment,
		Seed:      seed,
		Key:       res.Key.String(),
		Trials:    1,
	}
	for _, r := range res.Results {
		run.Results = append(run.Results, model.RunResult{Length: r.Length, SuccessRate: r.SuccessRate})
	}
	return saveRun(cmd.Context(), run)
}

func newTrendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Average success rates over many random keys",
		Args:  cobra.NoArgs,
		RunE:  runTrendCmd,
	}
	cmd.Flags().IntVar(&trendTrials, "trials", defaultTrials, "number of independent keys")
	cmd.Flags().IntVar(&trendParallel, "parallel", defaultParallel, "trials run concurrently")
	cmd.Flags().BoolVar(&trendRandomWindow, "random-window", false, "attack a random slice of the sample instead of its prefix")
	return cmd
}

func runTrendCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "trials", &trendTrials, fileCfg.Trend.Trials)
	applyIntConfig(cmd, "parallel", &trendParallel, fileCfg.Trend.Parallel)
	applyBoolConfig(cmd, "random-window", &trendRandomWindow, fileCfg.Trend.RandomWindow)

	cfg := resolveConfig(cmd, fileCfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if trendTrials <= 0 {
		return fmt.Errorf("--trials must be > 0")
	}
	if trendParallel <= 0 {
		return fmt.Errorf("--parallel must be > 0")
	}
	sample, err := loadSample(cfg)
	if err != nil {
		return err
	}

	startedAt := time.Now()
	seed := resolveSeed(cfg.Seed, startedAt)
	trend, err := experiment.Trend(cmd.Context(), experiment.TrendOptions{
		Sample:       sample,
		Lengths:      cfg.Lengths,
		Trials:       trendTrials,
		Parallel:     trendParallel,
		Seed:         seed,
		RandomWindow: trendRandomWindow,
	})
	if err != nil {
		return fmt.Errorf("failed to run trend: %w", err)
	}
	if err := stats.RenderTrend(cmd.OutOrStdout(), trend); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !cfg.Save {
		return nil
	}
	run := model.Run{
		StartedAt: startedAt,
		Kind:      model.KindTrend,
		Seed:      seed,
		Trials:    trendTrials,
	}
	for _, p := range trend.Points {
		run.Results = append(run.Results, model.RunResult{Length: p.Length, SuccessRate: p.Mean, StdDev: p.StdDev})
	}
	return saveRun(cmd.Context(), run)
}

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Step through the attack interactively",
		Args:  cobra.NoArgs,
		RunE:  runExploreCmd,
	}
}

func runExploreCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveConfig(cmd, fileCfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	sample, err := loadSample(cfg)
	if err != nil {
		return err
	}

	gen := generator.New()
	if cfg.Seed != 0 {
		gen = generator.NewSeeded(cfg.Seed)
	}
	program := tea.NewProgram(tui.NewModel(gen, sample, cfg.Lengths), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "show the last N runs (0: all)")
	cmd.Flags().StringVar(&historyKind, "kind", "", "filter by kind (experiment, trend)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	kind := strings.TrimSpace(strings.ToLower(historyKind))
	if kind != "" && kind != model.KindExperiment && kind != model.KindTrend {
		return fmt.Errorf("--kind must be %q or %q", model.KindExperiment, model.KindTrend)
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(cmd.Context(), model.HistoryConfig{Kind: kind, Last: historyLast})
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if err := stats.RenderHistory(cmd.OutOrStdout(), runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveConfig merges config file values under explicitly set flags.
func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	exp := fileCfg.Experiment
	applyIntsConfig(cmd, "lengths", &runLengths, exp.Lengths)
	applyInt64Config(cmd, "seed", &runSeed, exp.Seed)
	applyIntConfig(cmd, "repeat", &runRepeat, exp.Repeat)
	applyStringConfig(cmd, "sentence", &runSentence, exp.Sentence)
	applyStringConfig(cmd, "sample-file", &runSampleFile, exp.SampleFile)
	applyBoolConfig(cmd, "save", &runSave, exp.Save)

	return model.Config{
		Lengths:    append([]int(nil), runLengths...),
		Seed:       runSeed,
		Repeat:     runRepeat,
		Sentence:   runSentence,
		SampleFile: runSampleFile,
		Save:       runSave,
		ShowKey:    runShowKey,
	}
}

func validateConfig(cfg model.Config) error {
	if len(cfg.Lengths) == 0 {
		return fmt.Errorf("--lengths must not be empty")
	}
	for _, l := range cfg.Lengths {
		if l <= 0 {
			return fmt.Errorf("--lengths must be > 0, got %d", l)
		}
	}
	if cfg.Repeat <= 0 {
		return fmt.Errorf("--repeat must be > 0")
	}
	if cfg.SampleFile == "" && cfg.Sentence == "" {
		return fmt.Errorf("--sentence must not be empty")
	}
	return nil
}

func loadSample(cfg model.Config) (string, error) {
	if cfg.SampleFile == "" {
		return experiment.SampleText(cfg.Sentence, cfg.Repeat), nil
	}
	sample, err := experiment.LoadSample(cfg.SampleFile, cfg.Repeat)
	if err != nil {
		return "", fmt.Errorf("failed to load sample: %w", err)
	}
	return sample, nil
}

func resolveSeed(seed int64, now time.Time) int64 {
	if seed != 0 {
		return seed
	}
	return now.UnixNano()
}

func saveRun(ctx context.Context, run model.Run) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	id, err := st.InsertRun(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	logErrf("Saved run %s\n", id)
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntsConfig(cmd *cobra.Command, name string, target, value *[]int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = append([]int(nil), (*value)...)
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# subcrack configuration
# Uncomment a value to enable it. CLI flags override config values.

[experiment]
# lengths = %s      # Message lengths to attack
# seed = 0                          # Random seed (0: time based)
# repeat = %d                       # Times the sample sentence is repeated
# sentence = %q
# sample-file = ""                  # Read the sample from a file instead
# save = false                      # Record runs in the history database

[trend]
# trials = %d                      # Number of independent keys
# parallel = %d                      # Trials run concurrently
# random-window = false             # Attack a random slice instead of the prefix
`,
		formatLengths(experiment.DefaultLengths()),
		experiment.DefaultRepeat,
		experiment.DefaultSentence,
		defaultTrials,
		defaultParallel,
	)
}

func formatLengths(lengths []int) string {
	parts := make([]string, len(lengths))
	for i, l := range lengths {
		parts[i] = fmt.Sprintf("%d", l)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
