package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"easein-studio-backend/pkg/pagefx/carousel"
	"easein-studio-backend/pkg/pagefx/clock"
)

type carouselStep struct {
	Step       int             `json:"step" yaml:"step"`
	Move       *carousel.Move  `json:"move,omitempty" yaml:"move,omitempty"`
	Index      *int            `json:"index,omitempty" yaml:"index,omitempty"`
	ScrollLeft *float64        `json:"scroll_left,omitempty" yaml:"scroll_left,omitempty"`
	Roles      *carousel.Roles `json:"roles,omitempty" yaml:"roles,omitempty"`
}

type carouselOptions struct {
	kind        string
	items       int
	steps       int
	width       float64
	step        float64
	scrollWidth float64
}

func newCarouselCmd(root *rootOptions) *cobra.Command {
	o := &carouselOptions{}

	cmd := &cobra.Command{
		Use:   "carousel",
		Short: "Simulate carousel advances",
		Long: `Simulates --steps advances of a carousel:
  loop   the cloned showcase loop (snaps back after passing the originals)
  strip  the mobile work strip in px (wraps near the end)
  reel   the stacked card reel roles`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := simulate(o)
			if err != nil {
				return err
			}
			return root.print(cmd.OutOrStdout(), steps)
		},
	}

	cmd.Flags().StringVar(&o.kind, "kind", "loop", "loop, strip or reel")
	cmd.Flags().IntVar(&o.items, "items", 6, "number of items")
	cmd.Flags().IntVar(&o.steps, "steps", 8, "number of advances")
	cmd.Flags().Float64Var(&o.width, "width", 1440, "viewport or strip client width in px")
	cmd.Flags().Float64Var(&o.step, "step", carousel.StripStep, "strip step in px")
	cmd.Flags().Float64Var(&o.scrollWidth, "scroll-width", 1560, "strip scroll width in px")
	return cmd
}

func simulate(o *carouselOptions) ([]carouselStep, error) {
	if o.steps < 0 {
		return nil, fmt.Errorf("steps must not be negative")
	}
	out := make([]carouselStep, 0, o.steps)

	switch o.kind {
	case "loop":
		loop := carousel.NewLoop(o.items, o.width)
		for i := 1; i <= o.steps; i++ {
			m := loop.Next()
			if m.NeedsSnap {
				m = loop.Snap()
			}
			idx := loop.Index()
			out = append(out, carouselStep{Step: i, Move: &m, Index: &idx})
		}

	case "strip":
		track := &carousel.Track{Step: o.step, ScrollWidth: o.scrollWidth, ClientWidth: o.width}
		for i := 1; i <= o.steps; i++ {
			left := track.Next()
			out = append(out, carouselStep{Step: i, ScrollLeft: &left})
		}

	case "reel":
		clk := clock.NewFake(time.Time{})
		reel, err := carousel.NewReel(clk, o.items, carousel.ReelInterval, nil)
		if err != nil {
			return nil, err
		}
		defer reel.Close()
		for i := 1; i <= o.steps; i++ {
			roles := reel.Rotate()
			out = append(out, carouselStep{Step: i, Roles: &roles})
		}

	default:
		return nil, fmt.Errorf("unknown carousel kind %q", o.kind)
	}

	return out, nil
}
