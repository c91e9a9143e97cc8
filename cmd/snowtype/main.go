package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/snowtype/internal/analysis"
	"github.com/san-kum/snowtype/internal/audio"
	"github.com/san-kum/snowtype/internal/config"
	"github.com/san-kum/snowtype/internal/export"
	"github.com/san-kum/snowtype/internal/frontend"
	"github.com/san-kum/snowtype/internal/fx"
	"github.com/san-kum/snowtype/internal/gui"
	"github.com/san-kum/snowtype/internal/sentence"
	"github.com/san-kum/snowtype/internal/tui"
	"github.com/san-kum/snowtype/internal/typing"
	"github.com/san-kum/snowtype/internal/viz"
)

var (
	configFile    string
	preset        string
	theme         string
	seed          int64
	fps           int
	sentencesFile string
	noSound       bool
	debug         bool
	chartFile     string
	frames        int
	logFile       io.Closer
)

// main registers the commands and runs the typing trainer when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:               "snowtype",
		Short:             "typing practice in the snow",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(*cobra.Command, []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: runTyping,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "apply a named preset")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&sentencesFile, "sentences", "", "sentence list (yaml)")
	pf.BoolVar(&noSound, "no-sound", false, "disable audio")
	pf.BoolVar(&debug, "debug", false, "log to snowtype.log")
	rootCmd.Flags().StringVar(&chartFile, "chart", "", "write the speed chart to an svg file on exit")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the trainer in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	snowCmd := &cobra.Command{
		Use:   "snow",
		Short: "watch the snowfall",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmbient(cmd, tui.ModeSnow)
		},
	}

	stormCmd := &cobra.Command{
		Use:   "storm",
		Short: "snowfall with random lightning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmbient(cmd, tui.ModeStorm)
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [out.svg]",
		Short: "render the effects headless to an svg",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&frames, "frames", export.DefaultSnapshotOptions().Frames, "frames to simulate")

	sentencesCmd := &cobra.Command{
		Use:   "sentences",
		Short: "list the practice sentences",
		Args:  cobra.NoArgs,
		RunE:  listSentences,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list available themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range viz.ThemeNames() {
				fmt.Printf("  %s\n", t)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, snowCmd, stormCmd, snapshotCmd, sentencesCmd, presetsCmd, themesCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile("snowtype.log", "snowtype")
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	logFile = f
	return nil
}

// loadConfig layers the config file, the preset and any explicit flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" && !cfg.Apply(preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		if !viz.HasTheme(theme) {
			return nil, fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
		}
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("sentences") {
		cfg.Sentences = sentencesFile
	}
	if noSound {
		cfg.Sound = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadSentences(cfg *config.Config) (sentence.Source, error) {
	if cfg.Sentences == "" {
		return sentence.Builtin(), nil
	}
	src, err := sentence.Load(cfg.Sentences)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentences: %w", err)
	}
	return src, nil
}

// openAudio starts the synth, or returns a silent player if sound is off or
// no device is available.
func openAudio(cfg *config.Config) (audio.Player, func()) {
	if !cfg.Sound {
		return audio.Nop{}, func() {}
	}
	proc := audio.NewProcessor(cfg.Volume)
	if err := proc.Start(); err != nil {
		log.Printf("audio disabled: %v", err)
		return audio.Nop{}, func() {}
	}
	return proc, proc.Stop
}

func frontEnd(cmd *cobra.Command) (*config.Config, frontend.Options, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, frontend.Options{}, nil, err
	}
	src, err := loadSentences(cfg)
	if err != nil {
		return nil, frontend.Options{}, nil, err
	}
	player, stop := openAudio(cfg)
	return cfg, frontend.FromConfig(cfg, src, player), stop, nil
}

func runTyping(cmd *cobra.Command, args []string) error {
	_, opts, stop, err := frontEnd(cmd)
	if err != nil {
		return err
	}
	defer stop()

	report, err := tui.Run(opts)
	if err != nil {
		return err
	}
	printReport(report)

	if chartFile != "" && len(report.Samples) > 1 {
		svg := export.SeriesToSVG(report.Samples, 800, 300, string(opts.Theme.Primary))
		if err := export.WriteFile(chartFile, svg); err != nil {
			return err
		}
		fmt.Printf("chart written to %s\n", chartFile)
	}
	return nil
}

func printReport(r *tui.Report) {
	if len(r.Completed) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDURATION\tSPEED\tSENTENCE")
	for i, s := range r.Completed {
		fmt.Fprintf(w, "%d\t%.1fs\t%.2f cps\t%s\n", i+1, s.Duration.Seconds(), s.Speed, truncate(s.Target, 40))
	}
	w.Flush()
	fmt.Println()

	if len(r.Samples) > 1 {
		graph := asciigraph.Plot(r.Samples,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("speed (cps)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Printf("accuracy:    %.0f%%\n", r.Values["accuracy"])
	fmt.Printf("top speed:   %.2f cps\n", r.Values["peak"])
	fmt.Printf("corrections: %.0f\n", r.Values["corrections"])

	freq, period := analysis.Dominant(analysis.PowerSpectrum(r.Samples), typing.SpeedInterval)
	if freq > 0 {
		fmt.Printf("rhythm:      %.3f hz (every %s)\n", freq, period.Round(100*time.Millisecond))
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, opts, stop, err := frontEnd(cmd)
	if err != nil {
		return err
	}
	defer stop()
	return gui.Run(opts, cfg.Window.Width, cfg.Window.Height)
}

func runAmbient(cmd *cobra.Command, mode tui.Mode) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return tui.RunAmbient(frontend.FromConfig(cfg, sentence.Builtin(), nil), mode)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := export.DefaultSnapshotOptions()
	opts.Frames = frames
	opts.FPS = cfg.FPS
	opts.Theme = viz.GetTheme(cfg.Theme)
	opts.SnowCount = cfg.Snow.Count
	opts.Snow = cfg.Snow.Enabled
	opts.Sparks = cfg.Sparks.Enabled
	opts.Lightning = cfg.Lightning.Enabled

	layers, err := export.Snapshot(context.Background(), opts, fx.Seeded(cfg.Seed))
	if err != nil {
		return err
	}
	if err := export.WriteFile(args[0], export.Compose(layers)); err != nil {
		return err
	}
	fmt.Printf("snapshot written to %s (%d layers, %d frames)\n", args[0], len(layers), opts.Frames)
	return nil
}

func listSentences(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := loadSentences(cfg)
	if err != nil {
		return err
	}
	for i, s := range src.Sentences() {
		fmt.Printf("%3d  %s\n", i+1, strings.TrimSpace(s))
	}
	return nil
}
