package gateway

import (
	"errors"
	"fmt"
)

// APIError is any non-2xx answer from the server. Message is the raw
// backend text; translating it into something printable is the error
// classifier's job, not the gateway's.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// RemoteMessage extracts the backend's free-text message from an error
// chain, falling back to the plain error text for transport failures.
func RemoteMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
