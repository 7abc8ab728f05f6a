package asana

import (
	"encoding/json"
	"fmt"
)

// UpstreamError is a non-success response from the tracker API. Message
// is the first message extracted from the tracker's error envelope when
// one is present; Body keeps the raw response text for diagnostics.
type UpstreamError struct {
	StatusCode int
	Status     string
	Message    string
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("tracker API returned %s", e.Status)
}

func newUpstreamError(statusCode int, status string, body []byte) *UpstreamError {
	e := &UpstreamError{
		StatusCode: statusCode,
		Status:     status,
		Body:       string(body),
	}
	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		e.Message = envelope.Errors[0].Message
	}
	return e
}
