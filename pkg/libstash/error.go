package libstash

import (
	"encoding/json"
	"io"
)

// An APIError represents an HTTP error returned by a polishstash server.
type APIError struct {
	StatusCode int
	Err        struct {
		Message string `json:"message"`
	} `json:"error"`
}

func parseAPIError(r io.Reader, code int) error {
	var apierr APIError
	dec := json.NewDecoder(r)
	if err := dec.Decode(&apierr); err != nil {
		apierr.Err.Message = "unexpected server error"
	}
	apierr.StatusCode = code
	return &apierr
}

func (e *APIError) Error() string {
	return e.Err.Message
}
