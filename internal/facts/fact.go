// Package facts fetches short "did you know" facts and coordinates how they
// reach the display: a one-slot prefetch cache, a loading guard and the
// copy/share fallback chains.
package facts

import (
	"context"
	"errors"
	"fmt"
)

// Fact is a single piece of trivia. Only Text is required for display.
type Fact struct {
	Text      string `json:"text"`
	ID        string `json:"id,omitempty"`
	Source    string `json:"source,omitempty"`
	Permalink string `json:"permalink,omitempty"`
}

// Source produces one fact per call. Implementations must honour ctx
// cancellation.
type Source interface {
	Fetch(ctx context.Context) (Fact, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (Fact, error)

// Fetch calls f(ctx).
func (f SourceFunc) Fetch(ctx context.Context) (Fact, error) {
	return f(ctx)
}

// Kind classifies a fetch failure.
type Kind int

const (
	// KindNetwork means the request never produced a response.
	KindNetwork Kind = iota
	// KindHTTPStatus means the server answered with a non-success status.
	KindHTTPStatus
	// KindParse means the response body was not valid JSON.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http status"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Sentinels matched by FetchError.Is.
var (
	ErrNetwork = errors.New("network error")
	ErrParse   = errors.New("parse error")
)

// FetchError is returned by sources when a fact could not be produced.
type FetchError struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Kind == KindHTTPStatus:
		return fmt.Sprintf("fetch fact: unexpected status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetch fact: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("fetch fact: %s", e.Kind)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports HTTP status failures as network errors, matching how the
// controller treats them.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork || e.Kind == KindHTTPStatus
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}
