// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON
// (or text, for terminals) logging with configurable log levels.
package logger
