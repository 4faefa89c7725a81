// Package notify defines the notification sink handed to components that
// need to surface something to the user (replacing any ambient global
// toast-style dispatch).
package notify

import "log"

const (
	KindInfo  = "info"
	KindError = "error"
)

// Sink receives user-facing notifications.
type Sink interface {
	Notify(kind, text string)
}

// LogSink writes notifications to the standard logger. It is the default
// sink for headless clients.
type LogSink struct{}

func (LogSink) Notify(kind, text string) {
	log.Printf("[%s] %s", kind, text)
}

// Discard drops all notifications. Useful in tests.
type Discard struct{}

func (Discard) Notify(string, string) {}
