package usecase

import (
	"context"
	"strings"
	"time"

	"easein-studio-backend/internal/domain"
	"easein-studio-backend/pkg/security/antivirus"
)

// HealthDeps are the collaborators a health check pings. A nil Redis
// check means rate limiting runs in memory.
type HealthDeps struct {
	MailConfigured bool
	Transports     []string
	Redis          func(ctx context.Context) error
	Scanner        antivirus.Scanner
}

type healthUsecase struct {
	deps HealthDeps
}

func NewHealthUsecase(deps HealthDeps) domain.HealthUsecase {
	if deps.Scanner == nil {
		deps.Scanner = antivirus.NewNoOpScanner()
	}
	return &healthUsecase{deps: deps}
}

// Check reports "ok" when every configured component answers and
// "degraded" otherwise. The relay keeps serving while degraded.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := map[string]string{
		"status":     "ok",
		"transports": strings.Join(u.deps.Transports, ","),
	}
	degrade := func(key, value string) {
		status[key] = value
		status["status"] = "degraded"
	}

	if u.deps.MailConfigured && len(u.deps.Transports) > 0 {
		status["mail"] = "configured"
	} else {
		degrade("mail", "missing credentials")
	}

	switch {
	case u.deps.Redis == nil:
		status["redis"] = "disabled"
	case u.deps.Redis(ctx) != nil:
		degrade("redis", "unreachable")
	default:
		status["redis"] = "ok"
	}

	scanner := u.deps.Scanner
	switch {
	case scanner.Name() == "noop":
		status["scanner"] = "disabled"
	case !scanner.Available(ctx):
		degrade("scanner", scanner.Name()+" unreachable")
	default:
		status["scanner"] = scanner.Name()
	}

	return status
}
