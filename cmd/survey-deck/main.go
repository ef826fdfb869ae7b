package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"surveydeck/internal/app"
	"surveydeck/internal/devtools"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds raw flag values. Only flags the user actually set are
// copied over the environment-derived config.
type options struct {
	deck, log, style, motion, mouse, demo, devState string
	debug, ascii                                    bool
	start                                           int
}

func newRootCmd() *cobra.Command {
	var opts options
	cfg := app.DefaultConfig()

	root := &cobra.Command{
		Use:   "survey-deck",
		Short: "Present the classroom survey deck in the terminal",
		Long: `survey-deck shows the classroom survey results as a keyboard driven
slide deck: charts, comparisons, a slide overview and a penalty kick
minigame on the closing slide.

Settings come from SURVEY_DECK_* environment variables, then flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Run(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.deck, "deck", "", "path to a deck YAML file (default: built-in survey deck)")
	pf.BoolVar(&opts.ascii, "ascii", false, "draw with ASCII only")
	pf.StringVar(&opts.style, "style", "", "style variant: modern_arcade, cozy_clean, retro_terminal")

	f := root.Flags()
	f.StringVar(&opts.log, "log", "", "write JSON events to this file")
	f.BoolVar(&opts.debug, "debug", false, "show layout diagnostics and debug logs")
	f.StringVar(&opts.motion, "motion", "", "animation level: off, reduced, full")
	f.StringVar(&opts.mouse, "mouse", "", "mouse support: off, scoped, full")
	f.IntVar(&opts.start, "start", 0, "zero-based slide to open on")
	f.StringVar(&opts.demo, "demo", "", "pre-position the deck with a demo scenario")
	f.StringVar(&opts.devState, "dev-state", "", "directory for dev_state.json snapshots")

	root.AddCommand(newRenderCmd(&cfg), newScenariosCmd())
	return root
}

func resolveConfig(cmd *cobra.Command, opts options) (app.Config, error) {
	cfg := app.DefaultConfig()
	if err := app.LoadEnv(&cfg); err != nil {
		return cfg, err
	}
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "deck":
			cfg.DeckPath = opts.deck
		case "log":
			cfg.LogPath = opts.log
		case "debug":
			cfg.Debug = opts.debug
		case "ascii":
			cfg.ASCIIOnly = opts.ascii
		case "style":
			cfg.UI.StyleVariant = opts.style
		case "motion":
			cfg.UI.MotionLevel = opts.motion
		case "mouse":
			cfg.UI.MouseScope = opts.mouse
		case "start":
			cfg.StartSlide = opts.start
		case "demo":
			cfg.DemoScenario = opts.demo
		case "dev-state":
			cfg.DevStateDir = opts.devState
		}
	})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List demo scenarios accepted by --demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range devtools.NewManager().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
