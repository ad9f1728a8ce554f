package card

import "context"

// Snapshot is a complete, point-in-time replacement of a user's card
// collection. Consumers recompute all derived values from it; it is
// never a delta to merge.
type Snapshot []Card

// SnapshotFunc receives each full replacement snapshot.
type SnapshotFunc func(Snapshot)

// StopFunc cancels a snapshot subscription.
type StopFunc func()

// Repository persists cards in the external document store, partitioned
// per user. The store is the source of truth: a failed write leaves the
// prior snapshot authoritative.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Card, error)
	GetByID(ctx context.Context, userID, cardID string) (*Card, error)
	Create(ctx context.Context, userID string, c Card) (*Card, error)
	Delete(ctx context.Context, userID, cardID string) error
	UpdateNotes(ctx context.Context, userID, cardID, notes string) error

	// Watch streams full collection snapshots to fn until the returned
	// stop function is called or ctx is cancelled.
	Watch(ctx context.Context, userID string, fn SnapshotFunc) (StopFunc, error)
}
