package apperror

import "net/http"

type AppError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"errors,omitempty"`
	Debug   string   `json:"-"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// MethodNotAllowed is returned for anything but POST on the relay endpoint.
func MethodNotAllowed() *AppError {
	return New(http.StatusMethodNotAllowed, "Method Not Allowed. Use POST.", nil)
}

// Validation carries the human-readable field errors in the order they were found.
func Validation(details []string) *AppError {
	appErr := New(http.StatusUnprocessableEntity, "Validation error.", nil)
	appErr.Details = details
	return appErr
}

// MailSendFailure is returned once every mail transport has been tried.
// debug holds the first transport's error and is only shown when the
// server is configured to expose it.
func MailSendFailure(err error, debug string) *AppError {
	appErr := New(http.StatusInternalServerError, "Email sending failed. Please try again or contact us directly.", err)
	appErr.Debug = debug
	return appErr
}
