package storage

import (
	"context"
	"time"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing device sync metadata
type MetadataStorage interface {
	// SaveLastSyncTimestamp saves the pull watermark confirmed by the hub
	SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error

	// GetLastSyncTimestamp retrieves the pull watermark
	// Returns 0 if no sync has been performed yet
	GetLastSyncTimestamp(ctx context.Context) (int64, error)

	// SavePushCursor saves the timestamp up to which local writes were accepted by the hub
	SavePushCursor(ctx context.Context, timestamp int64) error

	// GetPushCursor retrieves the push cursor
	// Returns 0 if nothing was pushed yet
	GetPushCursor(ctx context.Context) (int64, error)

	// SaveClockOffset saves the measured offset between hub and local clocks
	SaveClockOffset(ctx context.Context, offset time.Duration) error

	// GetClockOffset retrieves the clock offset
	// Returns 0 if the clock was never synchronized
	GetClockOffset(ctx context.Context) (time.Duration, error)
}
