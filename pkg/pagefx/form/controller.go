package form

import (
	"context"
	"errors"
	"sync"
)

// ErrSubmissionPending is returned while a submission is in flight; the
// submit button is disabled during that time.
var ErrSubmissionPending = errors.New("form: submission already in flight")

const (
	SendingText    = "Sending..."
	NetworkFailure = "Network error. Please try again later."
)

// State is what the form UI shows.
type State struct {
	Pending    bool
	ButtonText string
	ModalOpen  bool   // success modal
	Alert      string // error text for the user, empty on success
}

// Controller drives one form's submit button, alerts and success modal.
type Controller struct {
	mu         sync.Mutex
	form       *Form
	poster     Poster
	buttonText string
	state      State
	onChange   func(State)
}

func NewController(f *Form, p Poster, buttonText string, onChange func(State)) *Controller {
	return &Controller{
		form:       f,
		poster:     p,
		buttonText: buttonText,
		state:      State{ButtonText: buttonText},
		onChange:   onChange,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit sends the form. Success resets the form and opens the modal. A
// rejected submission shows the relay's message; a transport failure
// shows a generic one. The returned error is only non-nil for
// ErrSubmissionPending or a transport failure.
func (c *Controller) Submit(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	if c.state.Pending {
		c.mu.Unlock()
		return nil, ErrSubmissionPending
	}
	c.state = State{Pending: true, ButtonText: SendingText}
	c.mu.Unlock()
	c.notify()

	res, err := c.poster.Post(ctx, c.form.Snapshot())

	c.mu.Lock()
	next := State{ButtonText: c.buttonText}
	switch {
	case err != nil:
		next.Alert = NetworkFailure
	case res.Success:
		next.ModalOpen = true
	default:
		msg := res.Message
		if msg == "" {
			msg = "Unknown error occurred."
		}
		next.Alert = "Error: " + msg
	}
	c.state = next
	c.mu.Unlock()

	if err == nil && res.Success {
		c.form.Reset()
	}
	c.notify()
	return res, err
}

// CloseModal handles the close button, backdrop click and Escape.
func (c *Controller) CloseModal() {
	c.mu.Lock()
	changed := c.state.ModalOpen
	c.state.ModalOpen = false
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.State())
	}
}
