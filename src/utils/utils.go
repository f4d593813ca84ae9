package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.handmade.network/hmn/marsport/src/oops"
)

// Returns the provided value, or a default value if the input was zero.
func OrDefault[T comparable](v T, def T) T {
	var zero T
	if v == zero {
		return def
	} else {
		return v
	}
}

// P returns a pointer to a copy of v. Handy for the optional fields on DTOs.
func P[T any](v T) *T {
	return &v
}

func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

/*
Recover a panic and convert it to a returned error. Call it like so:

	func MyFunc() (err error) {
		defer utils.RecoverPanicAsError(&err)
	}

If an error was already present, the panicked error will take precedence, wrapping the
original one so that errors.Is still finds it.
*/
func RecoverPanicAsError(err *error) {
	if r := recover(); r != nil {
		var recoveredErr error
		if rerr, ok := r.(error); ok {
			recoveredErr = rerr
		} else if *err != nil {
			recoveredErr = fmt.Errorf("panic with value: %v (previous error: %w)", r, *err)
		} else {
			recoveredErr = fmt.Errorf("panic with value: %v", r)
		}
		*err = oops.New(recoveredErr, "panic recovered as error")
	}
}

var ErrSleepInterrupted = errors.New("sleep interrupted by context cancellation")

func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ErrSleepInterrupted
	case <-timer.C:
		return nil
	}
}
