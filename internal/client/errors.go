package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPError carries a non-2xx response back to the caller with the server's
// error message, so optimistic UI updates can roll back and surface it.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsNotFound reports whether the error is a 404.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// ParseHTTPError builds an HTTPError from a failed response. The server
// sends {"error": message} bodies; anything else falls back to the bare
// status.
func ParseHTTPError(resp *http.Response) *HTTPError {
	httpErr := &HTTPError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return httpErr
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		httpErr.Message = payload.Error
	}
	return httpErr
}
