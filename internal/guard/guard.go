// Package guard bounds how long a caller waits on an operation it cannot cancel.
//
// Run races the operation against a timer. Whichever settles first decides the
// Outcome. An operation that loses the race keeps running on a context detached from
// the caller; its eventual result is dropped.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TimeoutError reports that a guarded operation did not settle within its ceiling.
type TimeoutError struct {
	Label string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timeout after %dms", e.Label, e.After.Milliseconds())
}

// ProviderError wraps a failure reported by the guarded operation itself.
type ProviderError struct {
	Label string
	Err   error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

// Outcome is the settled result of a guarded operation: fulfilled when Err is nil.
type Outcome[T any] struct {
	Value   T
	Err     error
	Elapsed time.Duration
}

func (o Outcome[T]) Fulfilled() bool { return o.Err == nil }

func (o Outcome[T]) TimedOut() bool {
	var te *TimeoutError
	return errors.As(o.Err, &te)
}

// Reason returns the failure message, or "" for a fulfilled outcome.
func (o Outcome[T]) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

type result[T any] struct {
	value T
	err   error
}

// Run executes op and waits at most timeout for it. A non-positive timeout waits
// without a ceiling. Panics inside op are reported as a ProviderError.
func Run[T any](ctx context.Context, timeout time.Duration, label string, op func(context.Context) (T, error)) Outcome[T] {
	start := time.Now()

	// buffered so a straggler can always deliver and exit
	done := make(chan result[T], 1)
	opCtx := context.WithoutCancel(ctx)

	go func() {
		var res result[T]
		defer func() {
			if r := recover(); r != nil {
				res = result[T]{err: fmt.Errorf("%s panicked: %v", label, r)}
			}
			done <- res
		}()
		v, err := op(opCtx)
		res = result[T]{value: v, err: err}
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case res := <-done:
		out := Outcome[T]{Value: res.value, Elapsed: time.Since(start)}
		if res.err != nil {
			out.Err = &ProviderError{Label: label, Err: res.err}
		}
		return out
	case <-expired:
		return Outcome[T]{
			Err:     &TimeoutError{Label: label, After: timeout},
			Elapsed: time.Since(start),
		}
	}
}
