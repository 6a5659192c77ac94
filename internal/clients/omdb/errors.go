package omdb

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned by every call while the API key is missing
	// or still the placeholder value.
	ErrConfiguration = errors.New("omdb api key is not configured")
	ErrInvalidQuery  = errors.New("search query must not be empty")
	ErrInvalidID     = errors.New("invalid imdb identifier")
	ErrInvalidType   = errors.New("type must be movie or series")
)

// RequestError reports an HTTP-layer failure: a non-2xx response, or with
// StatusCode 0 a transport error or a body that is not a provider payload.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("omdb request failed: %v", e.Err)
	}
	return fmt.Sprintf("omdb request failed with status %d", e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ProviderError is a logical failure signalled inside a 200 response.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "omdb: " + e.Message
}
