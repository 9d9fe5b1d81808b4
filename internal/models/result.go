package models

import "fmt"

// Result is the outcome of a single probe: either a value or the reason it failed.
// A failed result never carries a meaningful Value.
type Result[T any] struct {
	Value  T      `json:"value"`
	Failed bool   `json:"failed"`
	Reason string `json:"reason,omitempty"`
}

// Ok wraps a successful probe value
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail builds a failed result with a human-readable reason
func Fail[T any](reason string) Result[T] {
	if reason == "" {
		reason = "unknown error"
	}
	return Result[T]{Failed: true, Reason: reason}
}

// String renders the value, or the failure placeholder
func (r Result[T]) String() string {
	if r.Failed {
		return "Error: " + r.Reason
	}
	return fmt.Sprint(r.Value)
}

// Render formats the value with a fmt verb, or the failure placeholder
func (r Result[T]) Render(format string) string {
	if r.Failed {
		return "Error: " + r.Reason
	}
	return fmt.Sprintf(format, r.Value)
}
