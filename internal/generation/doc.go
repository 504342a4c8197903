// Package generation turns note content into study material. It defines the
// Generator interface used by the flashcard state owner, a deterministic
// line-splitting implementation of it, and the sentence-ratio summarizer.
//
// Nothing here calls out to a language model; every function is pure over
// its input apart from the timestamp taken from the injected clock.
package generation
