package notify

import (
	"errors"
	"fmt"
)

// ErrEmailDisabled is returned by the mailer used when email is switched off
var ErrEmailDisabled = errors.New("email notifications are disabled")

// ErrExternalService indicates a failure in an external service call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx response from the email API
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("email API returned status %d: %s", e.StatusCode, e.Body)
}
