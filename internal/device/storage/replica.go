package storage

import (
	"context"

	"github.com/iudanet/synchub/internal/models"
)

//go:generate moq -out replica_mock.go . ReplicaStorage

// ReplicaStorage defines interface for the device-local replica of the shared store
type ReplicaStorage interface {
	// SaveItem stores item using LWW logic: it replaces the stored version
	// only if it is newer. Returns true if the item was applied.
	SaveItem(ctx context.Context, item *models.DataItem) (bool, error)

	// GetItem retrieves an item by key, tombstones included
	// Returns ErrItemNotFound if key was never written
	GetItem(ctx context.Context, key string) (*models.DataItem, error)

	// GetAllItems returns all items (including tombstones) ordered by key
	GetAllItems(ctx context.Context) ([]*models.DataItem, error)

	// GetActiveItems returns all non-deleted items ordered by key
	GetActiveItems(ctx context.Context) ([]*models.DataItem, error)

	// GetLocalItemsAfter returns items written by origin with timestamp
	// greater than the given one, ordered by timestamp.
	// Used to collect local changes for push.
	GetLocalItemsAfter(ctx context.Context, origin models.DeviceID, timestamp int64) ([]*models.DataItem, error)

	// GetMaxTimestamp returns the maximum timestamp in the local replica
	GetMaxTimestamp(ctx context.Context) (int64, error)

	// Clear removes all items from storage
	// Used for full re-sync
	Clear(ctx context.Context) error
}
