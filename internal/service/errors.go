package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"finbalance/internal/repository"
)

var (
	ErrUpstreamFetch = errors.New("upstream fetch failed")
	ErrNotFound      = repository.ErrNotFound
)

// UpstreamError reports a failed store read. The whole operation is aborted;
// nothing computed from partial data is returned or cached.
type UpstreamError struct {
	Table string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Table, e.Err)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstreamFetch, e.Err}
}

func upstream(table string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Table: table, Err: err}
}

// ValidationError names every offending request field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// goalError turns a rejected goal adjustment into a validation error, or
// returns nil when err is something else.
func goalError(err error) error {
	switch {
	case errors.Is(err, repository.ErrGoalNotFound):
		return NewValidationError("goal_id", "does not match any of your savings goals")
	case errors.Is(err, repository.ErrGoalOverdrawn):
		return NewValidationError("amount", "exceeds the amount held in the savings goal")
	default:
		return nil
	}
}
