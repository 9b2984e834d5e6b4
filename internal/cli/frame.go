package cli

import (
	"github.com/spf13/cobra"

	"easein-studio-backend/pkg/pagefx/motion"
)

type frameOutput struct {
	Viewport  motion.Viewport `json:"viewport" yaml:"viewport"`
	Frame     motion.Frame    `json:"frame" yaml:"frame"`
	CTAGhostY float64         `json:"cta_ghost_y" yaml:"cta_ghost_y"`
}

func newFrameCmd(root *rootOptions) *cobra.Command {
	v := motion.Viewport{}

	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Print the motion frame for a scroll position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.print(cmd.OutOrStdout(), frameOutput{
				Viewport:  v,
				Frame:     motion.Compute(v),
				CTAGhostY: motion.CTAGhostY(v.ScrollY),
			})
		},
	}

	cmd.Flags().Float64Var(&v.ScrollY, "scroll", 0, "scroll offset in px")
	cmd.Flags().Float64Var(&v.DocHeight, "doc-height", 5000, "document height in px")
	cmd.Flags().Float64Var(&v.Width, "width", 1440, "viewport width in px")
	cmd.Flags().Float64Var(&v.Height, "height", 900, "viewport height in px")
	return cmd
}
