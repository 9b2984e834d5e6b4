// Package cli implements the pagefx command line: it previews page motion
// and carousel behavior, checks page profiles and posts test submissions.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Version is set via ldflags at build time.
var Version = "dev"

type rootOptions struct {
	output string
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "pagefx",
		Short: "Inspect Easein Studio page behavior and exercise the contact relay",
		Long: `pagefx computes the scroll frames and carousel moves the site script
renders, validates the page behavior profiles, and posts test submissions
to a contact relay.`,
		SilenceUsage: true,
		Version:      Version,
	}
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "yaml", "output format: yaml or json")

	root.AddCommand(
		newFrameCmd(opts),
		newCarouselCmd(opts),
		newPagesCmd(opts),
		newSubmitCmd(opts),
	)
	return root
}

// Execute runs the CLI against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) print(w io.Writer, v any) error {
	switch o.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
}
