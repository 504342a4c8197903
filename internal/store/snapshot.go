package store

import "context"

// Partition names, one per state component.
const (
	PartitionAuth       = "auth"
	PartitionAccounts   = "accounts"
	PartitionNotes      = "notes"
	PartitionFlashcards = "flashcards"
	PartitionUI         = "ui"
)

// Partitions lists every partition the application persists.
func Partitions() []string {
	return []string{
		PartitionAuth,
		PartitionAccounts,
		PartitionNotes,
		PartitionFlashcards,
		PartitionUI,
	}
}

// SnapshotStore persists whole-state snapshots by partition name.
type SnapshotStore interface {
	// Load returns the last snapshot saved for partition.
	// Returns ErrSnapshotNotFound if nothing was ever saved.
	Load(ctx context.Context, partition string) ([]byte, error)

	// Save replaces the snapshot for partition.
	Save(ctx context.Context, partition string, data []byte) error
}
