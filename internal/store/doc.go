// Package store defines the persistence contract used by the state owners.
// Each state component keeps one named partition holding its full snapshot,
// so a store is little more than a key-value map from partition name to
// bytes. Implementations live under internal/platform; MemoryStore here is
// used for tests and for the ephemeral "memory" driver.
package store
