// Package api exposes the note, flashcard, summary and preference state
// over HTTP. Handlers translate requests into service calls and map
// service outcomes to status codes; they hold no state of their own.
package api
