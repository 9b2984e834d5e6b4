package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"easein-studio-backend/pkg/pagefx/form"
	"easein-studio-backend/pkg/pagefx/page"
)

type submitOptions struct {
	endpoint string
	fields   map[string]*string
	file     string
	timeout  time.Duration
}

func newSubmitCmd(root *rootOptions) *cobra.Command {
	o := &submitOptions{fields: make(map[string]*string, len(form.ContactFields))}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Post a test submission to a contact relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := submit(cmd.Context(), o)
			if err != nil {
				return err
			}
			if err := root.print(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("relay answered %d: %s", res.Status, res.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&o.endpoint, "endpoint", "http://localhost:8080"+page.DefaultEndpoint, "relay URL")
	for _, name := range form.ContactFields {
		o.fields[name] = cmd.Flags().String(name, "", name+" field")
	}
	cmd.Flags().StringVar(&o.file, "file", "", "path of a reference upload")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 60*time.Second, "request timeout")
	return cmd
}

func submit(ctx context.Context, o *submitOptions) (*form.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	f := form.New()
	for _, name := range form.ContactFields {
		f.Set(name, *o.fields[name])
	}
	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		f.Attach(&form.File{Name: filepath.Base(o.file), Data: data})
	}

	client := form.NewClient(o.endpoint)
	client.HTTP.Timeout = o.timeout
	return client.Post(ctx, f.Snapshot())
}
