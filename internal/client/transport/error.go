package transport

import "fmt"

// APIError carries an HTTP failure back to the caller as data: the status
// code plus whatever message the backend put in the error body. Message is
// empty when the body was missing or not the documented shape; callers pick
// their own fallback wording.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: status %d", e.Status)
	}
	return fmt.Sprintf("request failed: status %d: %s", e.Status, e.Message)
}
