package backend

import "fmt"

// RequestError represents a transport-level failure reaching the backend.
// It always names the attempted URL so misconfiguration is diagnosable.
type RequestError struct {
	URL     string
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("backend request to %s failed: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("backend request to %s failed: %s", e.URL, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// StatusError represents a non-success status reported by the backend. Body
// carries the response text for diagnosis.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d for %s: %s", e.StatusCode, e.URL, e.Body)
}
