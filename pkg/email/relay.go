package email

import (
	"context"
	"errors"
	"strings"

	"easein-studio-backend/pkg/logger"
)

// ErrNoTransports is returned by a relay built without any transport.
var ErrNoTransports = errors.New("email: no transports configured")

// Sender is what the contact flow needs from the mail layer.
type Sender interface {
	Send(ctx context.Context, msgs ...*Message) (SendReport, error)
}

// Attempt records one transport try.
type Attempt struct {
	Transport string
	Err       error
}

// SendReport lists every attempt made for one batch. Transport is the one
// that delivered, empty when none did.
type SendReport struct {
	Transport string
	Attempts  []Attempt
}

// UsedFallback is true when delivery needed more than the first transport.
func (r SendReport) UsedFallback() bool {
	return r.Transport != "" && len(r.Attempts) > 1
}

// SendError is returned once every transport has failed.
type SendError struct {
	Attempts []Attempt
}

func (e *SendError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Transport+": "+a.Err.Error())
	}
	return "all mail transports failed: " + strings.Join(parts, "; ")
}

// First is the primary transport's error, the one surfaced as debug output.
func (e *SendError) First() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[0].Err
}

func (e *SendError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// Relay tries an ordered list of transports, one attempt each, and stops at
// the first that delivers the whole batch. A failure anywhere in the batch
// counts as a failure of that transport.
type Relay struct {
	transports []Transport
}

var _ Sender = (*Relay)(nil)

func NewRelay(transports ...Transport) *Relay {
	return &Relay{transports: transports}
}

// Transports returns the transport names in attempt order.
func (r *Relay) Transports() []string {
	names := make([]string, 0, len(r.transports))
	for _, t := range r.transports {
		names = append(names, t.Name())
	}
	return names
}

func (r *Relay) Send(ctx context.Context, msgs ...*Message) (SendReport, error) {
	var report SendReport
	if len(r.transports) == 0 {
		return report, ErrNoTransports
	}

	for i, t := range r.transports {
		if err := ctx.Err(); err != nil {
			report.Attempts = append(report.Attempts, Attempt{Transport: t.Name(), Err: err})
			break
		}

		err := t.Send(ctx, msgs...)
		report.Attempts = append(report.Attempts, Attempt{Transport: t.Name(), Err: err})
		if err == nil {
			report.Transport = t.Name()
			return report, nil
		}

		if i+1 < len(r.transports) {
			logger.Log.Warn("Mail transport failed, retrying with next transport",
				"transport", t.Name(),
				"next", r.transports[i+1].Name(),
				"error", err,
			)
		}
	}

	for _, a := range report.Attempts {
		logger.Log.Error("Mail error", "transport", a.Transport, "error", a.Err)
	}

	return report, &SendError{Attempts: report.Attempts}
}
