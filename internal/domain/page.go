package domain

import (
	"context"

	"easein-studio-backend/pkg/pagefx/page"
)

// PageUsecase serves the behavior options the page script mounts with.
type PageUsecase interface {
	List(ctx context.Context) []page.Options
	Get(ctx context.Context, name string) (*page.Options, error)
}
