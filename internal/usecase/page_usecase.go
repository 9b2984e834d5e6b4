package usecase

import (
	"context"

	"easein-studio-backend/config"
	"easein-studio-backend/internal/domain"
	"easein-studio-backend/pkg/apperror"
	"easein-studio-backend/pkg/pagefx/page"
)

type pageUsecase struct {
	pages config.Pages
}

func NewPageUsecase(pages config.Pages) domain.PageUsecase {
	if pages == nil {
		pages = config.Pages(page.Defaults())
	}
	return &pageUsecase{pages: pages}
}

// List returns every page, sorted by name.
func (u *pageUsecase) List(ctx context.Context) []page.Options {
	out := make([]page.Options, 0, len(u.pages))
	for _, name := range u.pages.Names() {
		out = append(out, u.pages[name])
	}
	return out
}

func (u *pageUsecase) Get(ctx context.Context, name string) (*page.Options, error) {
	opts, ok := u.pages[name]
	if !ok {
		return nil, apperror.NotFound("Page not found")
	}
	return &opts, nil
}
