package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"easein-studio-backend/config"
)

func newPagesCmd(root *rootOptions) *cobra.Command {
	var path, show string

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Load, validate and list the page behavior profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := config.LoadPages(path)
			if err != nil {
				return err
			}

			if show != "" {
				opts, ok := pages[show]
				if !ok {
					return fmt.Errorf("page %q not found", show)
				}
				return root.print(cmd.OutOrStdout(), opts)
			}

			for _, name := range pages.Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tok\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "config", "config/pages.yaml", "page profile file")
	cmd.Flags().StringVar(&show, "show", "", "print one profile instead of the list")
	return cmd
}
