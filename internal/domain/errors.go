package domain

import "fmt"

// FetchErrorKind classifies failures at the source boundary.
type FetchErrorKind string

const (
	// FetchErrNetwork covers transport failures and non-200 responses.
	FetchErrNetwork FetchErrorKind = "network"
	// FetchErrMalformed covers responses whose shape could not be decoded.
	FetchErrMalformed FetchErrorKind = "malformed"
)

// FetchError is the uniform error a source adapter produces. It never
// escapes the aggregator boundary as an uncaught fault; callers inspect it
// with errors.As.
type FetchError struct {
	Kind   FetchErrorKind
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewNetworkError wraps a transport-level failure for the given source.
func NewNetworkError(source string, err error) *FetchError {
	return &FetchError{Kind: FetchErrNetwork, Source: source, Err: err}
}

// NewMalformedError wraps an unexpected-payload failure for the given source.
func NewMalformedError(source string, err error) *FetchError {
	return &FetchError{Kind: FetchErrMalformed, Source: source, Err: err}
}
