package api

import (
	"errors"
	"fmt"
)

// Error taxonomy of the client. Callers branch on these with errors.Is /
// errors.As; the message text is for logs, not for matching.
var (
	// ErrUnauthenticated means there is no usable session credential.
	// The caller should send the user to the login screen, never render
	// this inline.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrFetchFailed is a failed read: network error, non-2xx status or
	// a response that does not match the expected shape.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrMutationFailed is a failed cart write. Nothing is retried; the
	// user re-triggers the action.
	ErrMutationFailed = errors.New("mutation failed")

	// ErrIncompleteDeliveryInfo is raised before any network call when
	// the delivery address or phone is blank.
	ErrIncompleteDeliveryInfo = errors.New("delivery address and phone are required")
)

// CheckoutError is an order submission the backend rejected. Message
// carries the server's reason when it sent one.
type CheckoutError struct {
	Message string
}

func (e *CheckoutError) Error() string {
	if e.Message == "" {
		return "checkout failed"
	}
	return e.Message
}

// StatusError is a non-2xx backend reply, with the message field from the
// response body when present.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}
