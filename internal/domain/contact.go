package domain

import (
	"context"
	"time"
)

// ContactRequest represents a contact form submission. It lives for one
// request and is never stored.
type ContactRequest struct {
	Name           string  `form:"name" json:"name" validate:"required,not_blank"`
	Email          string  `form:"email" json:"email" validate:"required,email"`
	Phone          string  `form:"phone" json:"phone" validate:"required,not_blank"`
	VideoType      string  `form:"video_type" json:"video_type" validate:"required,not_blank"`
	ProjectDetails string  `form:"project_details" json:"project_details" validate:"required,not_blank"`
	Upload         *Upload `form:"-" json:"-" validate:"-"`
}

// Upload is the optional reference_upload file, read fully into memory.
type Upload struct {
	Filename    string
	ContentType string // as sent by the client, not trusted
	Data        []byte
}

// ContactReceipt describes a relayed submission.
type ContactReceipt struct {
	Transport    string    `json:"-"`
	UsedFallback bool      `json:"-"`
	SubmittedAt  time.Time `json:"-"`
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates the request and relays the admin notification and
	// the user confirmation.
	Submit(ctx context.Context, req *ContactRequest) (*ContactReceipt, error)
}
