package oops

import (
	"errors"
	"fmt"

	"github.com/go-stack/stack"
	"github.com/rs/zerolog"
)

// Error is an error annotated with a message and the call stack at the point
// it was created. Wrapped may be nil when the error originates here.
type Error struct {
	Message string
	Wrapped error
	Stack   CallStack
}

func (e *Error) Error() string {
	if e.Wrapped == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

type CallStack []StackFrame

func (s CallStack) MarshalZerologArray(a *zerolog.Array) {
	for _, frame := range s {
		a.Object(frame)
	}
}

type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

func (f StackFrame) MarshalZerologObject(e *zerolog.Event) {
	e.
		Str("file", f.File).
		Int("line", f.Line).
		Str("function", f.Function)
}

// ZerologStackMarshaler finds the stack of the outermost *Error in the
// chain, so errors like spacex.ShapeError that wrap one still log it.
var ZerologStackMarshaler = func(err error) interface{} {
	var asOops *Error
	if errors.As(err, &asOops) {
		return asOops.Stack
	}
	return nil
}

func New(wrapped error, format string, args ...interface{}) error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Wrapped: wrapped,
		Stack:   Trace()[1:],
	}
}

// Trace captures the current call stack, minus runtime frames and Trace itself.
func Trace() CallStack {
	trace := stack.Trace().TrimRuntime()
	frames := make(CallStack, 0, len(trace))
	for i, call := range trace {
		if i == 0 {
			continue
		}
		callFrame := call.Frame()
		frames = append(frames, StackFrame{
			File:     callFrame.File,
			Line:     callFrame.Line,
			Function: callFrame.Function,
		})
	}
	return frames
}
