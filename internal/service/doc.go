// Package service contains the state owners of the application: auth
// session, notes, flashcard decks, summaries and UI preferences.
//
// Each owner is an explicit object built once at startup. It guards its
// collection with a mutex, hands out deep copies from every read, saves a
// JSON snapshot of its partition after every mutation and emits an
// events.StateChangedEvent once the mutation is committed. User-visible
// outcomes go to a notify.Sink, exactly one notification per action.
//
// Lookup misses in note and deck mutations are silent no-ops, not errors.
// Only authentication failures and empty summary input are returned to the
// caller as errors.
package service
