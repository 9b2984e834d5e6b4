package domain

import "context"

// HealthUsecase checks the relay's collaborators.
type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}
