// Package notify carries user-visible feedback from the state layer to
// whatever surface is showing it: a log, a terminal, or a test recorder.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is one (severity, message) pair.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Success builds a success notification.
func Success(format string, args ...any) Notification {
	return Notification{Severity: SeveritySuccess, Message: fmt.Sprintf(format, args...)}
}

// Error builds an error notification.
func Error(format string, args ...any) Notification {
	return Notification{Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

// Sink receives notifications.
type Sink interface {
	Notify(ctx context.Context, n Notification)
}

// LogSink writes notifications to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink. A nil logger uses slog.Default.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "notify")}
}

// Notify implements Sink.
func (s *LogSink) Notify(ctx context.Context, n Notification) {
	level := slog.LevelInfo
	if n.Severity == SeverityError {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, n.Message, "severity", string(n.Severity))
}

// WriterSink prints one line per notification, e.g. for a terminal.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a WriterSink on w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Notify implements Sink.
func (s *WriterSink) Notify(_ context.Context, n Notification) {
	prefix := "ok"
	if n.Severity == SeverityError {
		prefix = "error"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s: %s\n", prefix, n.Message)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify implements Sink.
func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return Notification{}, false
	}
	return r.sent[len(r.sent)-1], true
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
