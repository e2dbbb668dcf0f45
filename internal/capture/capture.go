// Package capture turns Go runtime failures into analytics events: a
// recovered panic is an uncaught error, an error returned from a goroutine
// nobody waits on is an unhandled rejection.
package capture

import (
	"fmt"
	"runtime/debug"

	"wcag-audit/internal/model"
)

// Sink receives normalized failures. *analytics.Analytics implements it.
type Sink interface {
	Capture(ev model.Event) model.ErrorRecord
}

// Guard runs fn and captures a panic as an uncaught event instead of
// letting it propagate. It reports whether fn completed normally.
func Guard(sink Sink, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			sink.Capture(Panic(r, debug.Stack()))
			ok = false
		}
	}()
	fn()
	return true
}

// Go runs fn on a new goroutine. A returned error is captured as a
// rejection, a panic as an uncaught event. The returned channel is closed
// once fn has finished and anything it produced has been captured.
func Go(sink Sink, fn func() error) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		Guard(sink, func() {
			if err := fn(); err != nil {
				sink.Capture(Rejection(err))
			}
		})
	}()
	return done
}

// Panic builds an uncaught event from a recovered value.
func Panic(r any, stack []byte) model.Event {
	ev := model.Event{
		Kind:    model.EventUncaught,
		Message: fmt.Sprint(r),
		Stack:   string(stack),
	}
	if err, ok := r.(error); ok {
		ev.Context = map[string]any{"error": err.Error()}
	}
	return ev
}

// Rejection builds a rejection event from an error.
func Rejection(err error) model.Event {
	return model.Event{
		Kind:    model.EventRejection,
		Message: err.Error(),
		Context: map[string]any{"reason": fmt.Sprintf("%T", err)},
	}
}
