// Package main provides the CLI entrypoint for readpace.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/readpace/internal/config"
	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/pacer"
	"github.com/verte-zerg/readpace/internal/passage"
	"github.com/verte-zerg/readpace/internal/source"
	"github.com/verte-zerg/readpace/internal/stats"
	"github.com/verte-zerg/readpace/internal/statsui"
	"github.com/verte-zerg/readpace/internal/store"
	"github.com/verte-zerg/readpace/internal/testui"
	"github.com/verte-zerg/readpace/internal/tui"
)

const (
	defaultMode            = "run"
	defaultCenterThreshold = 0
	defaultStatsWindow     = 5
)

var (
	practiceMode            string
	practiceWPM             int
	practiceFontRun         int
	practiceFontFlash       int
	practiceCenterThreshold int
	practiceWatch           bool
	practiceClipboard       bool

	testPassageID   string
	testPassagePath string

	statsSince  string
	statsLast   int
	statsWindow int
	statsPlain  bool
)

func main() {
	loadDotEnv(".env")
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDotEnv pins XDG_* and READPACE_DB per project before paths resolve.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logErrf("failed to load %s: %v\n", path, err)
	}
}

func newRootCmd() *cobra.Command {
	_, _, defaultRunFont := pacer.Run.FontBounds()
	_, _, defaultFlashFont := pacer.Flash.FontBounds()

	rootCmd := &cobra.Command{
		Use:           "readpace [file]",
		Short:         "Terminal speed-reading trainer",
		Long:          "Paces through text one word at a time. Text comes from a file, piped stdin, the clipboard, or the built-in editor.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "presentation mode (run or flash)")
	rootCmd.Flags().IntVar(&practiceWPM, "wpm", pacer.DefaultRate, fmt.Sprintf("words per minute (%d-%d)", pacer.MinRate, pacer.MaxRate))
	rootCmd.Flags().IntVar(&practiceFontRun, "font-run", defaultRunFont, "run mode font size in px")
	rootCmd.Flags().IntVar(&practiceFontFlash, "font-flash", defaultFlashFont, "flash mode font size in px")
	rootCmd.Flags().IntVar(&practiceCenterThreshold, "center-threshold", defaultCenterThreshold, "lines the current word may drift from the middle before recentring (0: only when out of view)")
	rootCmd.Flags().BoolVar(&practiceWatch, "watch", false, "reload the file when it changes")
	rootCmd.Flags().BoolVar(&practiceClipboard, "clipboard", false, "read the text from the clipboard")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newPassagesCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyIntConfig(cmd, "wpm", &practiceWPM, fileCfg.Practice.WPM)
	applyIntConfig(cmd, "font-run", &practiceFontRun, fileCfg.Practice.FontRun)
	applyIntConfig(cmd, "font-flash", &practiceFontFlash, fileCfg.Practice.FontFlash)
	applyIntConfig(cmd, "center-threshold", &practiceCenterThreshold, fileCfg.Practice.CenterThreshold)
	applyBoolConfig(cmd, "watch", &practiceWatch, fileCfg.Practice.Watch)

	cfg := model.Config{
		Mode:            practiceMode,
		WPM:             practiceWPM,
		FontRun:         practiceFontRun,
		FontFlash:       practiceFontFlash,
		CenterThreshold: practiceCenterThreshold,
		Watch:           practiceWatch,
	}
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	// watch set from the config file only applies when there is a file
	if path == "" && !cmd.Flags().Changed("watch") {
		cfg.Watch = false
	}
	if err := validateConfig(cfg, path, practiceClipboard); err != nil {
		return err
	}

	text, label, pipedStdin, err := readPracticeText(path, practiceClipboard)
	if err != nil {
		return err
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

	m, err := tui.NewModel(tui.Options{
		Config:    cfg,
		Text:      text,
		Source:    label,
		WatchPath: path,
		Store:     st,
	})
	if err != nil {
		return fmt.Errorf("failed to start practice: %w", err)
	}
	defer m.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if pipedStdin {
		opts = append(opts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// readPracticeText picks the text source: a file argument, the clipboard,
// piped stdin, or nothing (the editor).
func readPracticeText(path string, clipboard bool) (text, label string, piped bool, err error) {
	switch {
	case path != "":
		text, err = source.FromFile(path)
		if errors.Is(err, source.ErrEmpty) && practiceWatch {
			return "", path, false, nil
		}
		return text, path, false, err
	case clipboard:
		text, err = source.FromClipboard()
		if err != nil {
			return "", "", false, err
		}
		return text, "clipboard", false, nil
	case !term.IsTerminal(int(os.Stdin.Fd())):
		text, err = source.FromReader(os.Stdin)
		if err != nil {
			return "", "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return text, "stdin", true, nil
	default:
		return "", "editor", false, nil
	}
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

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Take a timed reading test with comprehension questions",
		Args:  cobra.NoArgs,
		RunE:  runTestCmd,
	}
	cmd.Flags().StringVar(&testPassageID, "passage", "", "passage id (default: first passage)")
	cmd.Flags().StringVar(&testPassagePath, "passages", "", "YAML passage bank (default: built-in bank or the config dir passages.yaml)")
	return cmd
}

func loadBank(cmd *cobra.Command) (passage.Bank, model.TestConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return passage.Bank{}, model.TestConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := model.TestConfig{PassagesPath: config.DefaultPassagesPath()}
	if cmd.Flags().Lookup("passage") != nil {
		applyStringConfig(cmd, "passage", &testPassageID, fileCfg.Test.Passage)
		cfg.PassageID = testPassageID
	}
	applyStringConfig(cmd, "passages", &testPassagePath, fileCfg.Test.Passages)
	if testPassagePath != "" {
		cfg.PassagesPath = testPassagePath
		if _, err := os.Stat(cfg.PassagesPath); err != nil {
			return passage.Bank{}, cfg, fmt.Errorf("failed to open passages: %w", err)
		}
	}
	bank, err := passage.Load(cfg.PassagesPath)
	if err != nil {
		return passage.Bank{}, cfg, err
	}
	return bank, cfg, nil
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	bank, cfg, err := loadBank(cmd)
	if err != nil {
		return err
	}
	p, err := bank.Get(cfg.PassageID)
	if err != nil {
		if errors.Is(err, passage.ErrNotFound) {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(bank.IDs(), ", "))
		}
		return err
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

	m := testui.NewModel(p, st, time.Now)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run test TUI: %w", err)
	}
	if res, ok := m.Result(); ok {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %d WPM, %d%% comprehension (%d/%d)\n",
			res.PassageID, res.WPM, res.Comprehension, res.Correct, res.Total)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newPassagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passages",
		Short: "List test passages",
		Args:  cobra.NoArgs,
		RunE:  runPassagesCmd,
	}
	cmd.Flags().StringVar(&testPassagePath, "passages", "", "YAML passage bank")
	return cmd
}

func runPassagesCmd(cmd *cobra.Command, _ []string) error {
	bank, _, err := loadBank(cmd)
	if err != nil {
		return err
	}
	return writePassages(cmd.OutOrStdout(), bank)
}

func writePassages(w io.Writer, bank passage.Bank) error {
	for _, p := range bank.Passages {
		if _, err := fmt.Fprintf(w, "%-20s %-40s %5d words  %d questions\n", p.ID, p.Title, p.Words(), len(p.Questions)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show reading history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N tests and runs")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig(statsSince, statsLast, statsWindow)
	if err != nil {
		return err
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

	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return err
		}
		return report.Render(cmd.OutOrStdout(), cfg.Window, 0)
	}

	m := statsui.NewModel(st, cfg)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func statsConfig(since string, last, window int) (model.StatsConfig, error) {
	var sinceTime *time.Time
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window < 1 {
		return model.StatsConfig{}, fmt.Errorf("--window must be >= 1")
	}
	return model.StatsConfig{Since: sinceTime, Last: last, Window: window}, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	_, _, runFont := pacer.Run.FontBounds()
	_, _, flashFont := pacer.Flash.FontBounds()
	return fmt.Sprintf(`# readpace configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q               # Presentation mode: run or flash
# wpm = %d                # Words per minute (%d-%d)
# font-run = %d           # Run mode font size in px
# font-flash = %d         # Flash mode font size in px
# center-threshold = %d   # Lines of drift before recentring (0: only when out of view)
# watch = false           # Reload the file argument when it changes

[test]
# passages = "passages.yaml"   # YAML passage bank
# passage = "comprehension"    # Default passage id
`,
		defaultMode,
		pacer.DefaultRate,
		pacer.MinRate,
		pacer.MaxRate,
		runFont,
		flashFont,
		defaultCenterThreshold,
	)
}

// validateConfig rejects settings that cannot be clamped. Rates and font
// sizes out of range are clamped by the engine instead.
func validateConfig(cfg model.Config, path string, clipboard bool) error {
	if _, err := pacer.ParseMode(cfg.Mode); err != nil {
		return fmt.Errorf("--mode: %w", err)
	}
	if cfg.WPM < 0 {
		return fmt.Errorf("--wpm must be >= 0")
	}
	if cfg.FontRun < 0 || cfg.FontFlash < 0 {
		return fmt.Errorf("font sizes must be >= 0")
	}
	if cfg.CenterThreshold < 0 {
		return fmt.Errorf("--center-threshold must be >= 0")
	}
	if cfg.Watch && path == "" {
		return fmt.Errorf("--watch requires a file argument")
	}
	if clipboard && path != "" {
		return fmt.Errorf("--clipboard cannot be combined with a file argument")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
