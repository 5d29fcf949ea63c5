package storage

import (
	"context"

	"github.com/iudanet/synchub/internal/models"
)

// DataStorage defines interface for replicated data and sync metadata persistence
type DataStorage interface {
	// SaveDataFromSync stores items pushed by deviceID using LWW logic:
	// an item replaces the stored version of its key only if it is newer.
	// Returns the hub high-water timestamp after the save.
	SaveDataFromSync(ctx context.Context, items []models.DataItem, deviceID models.DeviceID) (int64, error)

	// GetUnsyncData returns every version (tombstones included) with
	// since < timestamp <= until that was not written by deviceID,
	// ordered by timestamp ascending.
	GetUnsyncData(ctx context.Context, since, until int64, deviceID models.DeviceID) ([]models.DataItem, error)

	// SaveMetaData creates or replaces a metadata item
	SaveMetaData(ctx context.Context, item models.DataItem) error

	// GetMetaData retrieves a metadata item by key
	// Returns ErrMetaDataNotFound if it doesn't exist
	GetMetaData(ctx context.Context, key string) (*models.DataItem, error)

	// Close releases underlying resources
	Close() error
}
