package oops

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

var SampleErrorValue = errors.New("upstream went away")

type SampleErrorType struct {
	Message string
}

func (s SampleErrorType) Error() string {
	return s.Message
}

func init() {
	zerolog.ErrorStackMarshaler = ZerologStackMarshaler
}

func TestNew(t *testing.T) {
	t.Run("errors.Is", func(t *testing.T) {
		err := New(SampleErrorValue, "failed to fetch rockets")
		assert.True(t, errors.Is(err, SampleErrorValue))
	})
	t.Run("errors.As", func(t *testing.T) {
		err := New(SampleErrorType{Message: "bad shape"}, "failed to decode roadster")
		var sErr SampleErrorType
		assert.True(t, errors.As(err, &sErr))
	})
	t.Run("message", func(t *testing.T) {
		assert.Equal(t, "failed to fetch rockets: upstream went away", New(SampleErrorValue, "failed to fetch %s", "rockets").Error())
		assert.Equal(t, "no username", New(nil, "no username").Error())
	})
	t.Run("stack starts at caller", func(t *testing.T) {
		err := New(nil, "boom").(*Error)
		if assert.NotEmpty(t, err.Stack) {
			assert.Contains(t, err.Stack[0].Function, "oops.TestNew")
		}
	})
}

type wrapper struct{ Wrapped error }

func (w *wrapper) Error() string { return "wrapped: " + w.Wrapped.Error() }
func (w *wrapper) Unwrap() error { return w.Wrapped }

func TestZerologStackMarshaler(t *testing.T) {
	inner := New(nil, "bad shape").(*Error)

	assert.Equal(t, inner.Stack, ZerologStackMarshaler(inner))
	assert.Equal(t, inner.Stack, ZerologStackMarshaler(&wrapper{Wrapped: inner}))
	assert.Nil(t, ZerologStackMarshaler(SampleErrorValue))
}
