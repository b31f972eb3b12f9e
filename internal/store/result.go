package store

import (
	"errors"
	"reflect"
)

// Outcome classifies the result of a read.
type Outcome int

const (
	// Found means the read succeeded and returned data.
	Found Outcome = iota
	// Empty means the read succeeded with nothing to return.
	Empty
	// Failed means the read returned an error.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result wraps a read so callers decide explicitly how to treat a failure.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

// Fetch runs fn and classifies its return. ErrNotFound and zero-length
// slices count as Empty.
func Fetch[T any](fn func() (T, error)) Result[T] {
	v, err := fn()
	switch {
	case errors.Is(err, ErrNotFound):
		var zero T
		return Result[T]{Value: zero, Outcome: Empty}
	case err != nil:
		var zero T
		return Result[T]{Value: zero, Outcome: Failed, Err: err}
	case isEmpty(v):
		return Result[T]{Value: v, Outcome: Empty}
	default:
		return Result[T]{Value: v, Outcome: Found}
	}
}

// OrEmpty returns the value, or the zero value when the read failed. onFail
// is called with the error in that case so the caller can report it.
func (r Result[T]) OrEmpty(onFail func(error)) T {
	if r.Outcome == Failed {
		if onFail != nil {
			onFail(r.Err)
		}
		var zero T
		return zero
	}
	return r.Value
}

// isEmpty reports whether v is a nil pointer or a zero-length slice, map or string.
func isEmpty(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map, reflect.String:
		return rv.Len() == 0
	}
	return false
}
