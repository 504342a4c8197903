// Package domain contains the core entities of the note-taking application:
// users, notes, flashcards and decks, and the UI preference pair. It is
// independent of storage and delivery: the state owners in the service
// package are the only code that mutates these values, and every read they
// hand out is a deep copy.
package domain
