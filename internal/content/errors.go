package content

import "fmt"

// APIError represents a non-2xx response from a content endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content API error %d: %s", e.StatusCode, e.Message)
}

// NotFoundError is returned when the endpoint responds with 404 Not Found.
type NotFoundError struct{ APIError }

// RateLimitError is returned when the endpoint responds with 429 Too Many Requests.
type RateLimitError struct{ APIError }
