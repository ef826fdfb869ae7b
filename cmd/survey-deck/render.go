package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"surveydeck/internal/app"
	"surveydeck/internal/deck"
	"surveydeck/internal/render"
	"surveydeck/internal/ui"
)

// newRenderCmd prints slides without starting the interactive program, for
// quick previews and piping into files.
func newRenderCmd(cfg *app.Config) *cobra.Command {
	var slide, width int
	var all bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print one slide, or the whole deck, to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deck.NewLoader().Load(cmd.Context(), cfg.DeckPath)
			if err != nil {
				return fmt.Errorf("load deck: %w", err)
			}
			for _, w := range d.Warnings() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}
			if !all {
				if _, ok := d.At(slide); !ok {
					return fmt.Errorf("slide %d out of range (deck has %d)", slide, d.Len())
				}
			}
			return printSlides(cmd.OutOrStdout(), d, *cfg, width, slide, all)
		},
	}
	cmd.Flags().IntVar(&slide, "slide", 0, "zero-based slide to print")
	cmd.Flags().IntVar(&width, "width", 100, "output width in columns")
	cmd.Flags().BoolVar(&all, "all", false, "print every slide")
	return cmd
}

func printSlides(w io.Writer, d *deck.Deck, cfg app.Config, width, slide int, all bool) error {
	md, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(max(20, width-2)))
	if err != nil {
		md = nil
	}
	ctx := render.Context{
		Width:    width,
		ASCII:    cfg.ASCIIOnly,
		Styles:   ui.ThemeForVariant(cfg.UI.StyleVariant).Slide(),
		Markdown: md,
		Authors:  d.Authors(),
	}
	for i, s := range d.Slides() {
		if !all && i != slide {
			continue
		}
		if _, err := fmt.Fprintf(w, "--- %d/%d %s ---\n%s\n\n", i+1, d.Len(), s.Kind, render.Dispatch(s, ctx)); err != nil {
			return err
		}
	}
	return nil
}
