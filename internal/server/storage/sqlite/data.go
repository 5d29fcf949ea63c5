package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/synchub/internal/models"
	"github.com/iudanet/synchub/internal/server/storage"
)

// SaveDataFromSync stores items pushed by deviceID in a single transaction.
// Each item replaces the stored version of its key only if it wins by LWW
// (greater timestamp, ties broken by greater origin device).
// Returns the hub high-water timestamp after the save.
func (s *Storage) SaveDataFromSync(ctx context.Context, items []models.DataItem, deviceID models.DeviceID) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Upsert по правилу LWW: DO UPDATE срабатывает только для более новой версии
	query := `
		INSERT INTO data_items (key, value, timestamp, origin_device, deleted, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			timestamp = excluded.timestamp,
			origin_device = excluded.origin_device,
			deleted = excluded.deleted,
			updated_at = excluded.updated_at
		WHERE excluded.timestamp > data_items.timestamp
		   OR (excluded.timestamp = data_items.timestamp AND excluded.origin_device > data_items.origin_device)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, item := range items {
		if item.Key == "" {
			return 0, storage.ErrEmptyKey
		}
		value := item.Value
		if item.Deleted {
			value = ""
		}
		if _, err := stmt.ExecContext(ctx,
			item.Key,
			value,
			item.Timestamp,
			int64(deviceID),
			boolToInt(item.Deleted),
			now,
		); err != nil {
			return 0, fmt.Errorf("failed to save item %q: %w", item.Key, err)
		}
	}

	var highWater int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(timestamp), 0) FROM data_items`).Scan(&highWater); err != nil {
		return 0, fmt.Errorf("failed to read high-water timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return highWater, nil
}

// GetUnsyncData returns every version (tombstones included) with
// since < timestamp <= until that was not written by deviceID
func (s *Storage) GetUnsyncData(ctx context.Context, since, until int64, deviceID models.DeviceID) ([]models.DataItem, error) {
	query := `
		SELECT key, value, timestamp, origin_device, deleted
		FROM data_items
		WHERE timestamp > ? AND timestamp <= ? AND origin_device != ?
		ORDER BY timestamp ASC, key ASC
	`

	rows, err := s.db.QueryContext(ctx, query, since, until, int64(deviceID))
	if err != nil {
		return nil, fmt.Errorf("failed to query unsynced items: %w", err)
	}
	defer rows.Close()

	items := make([]models.DataItem, 0)
	for rows.Next() {
		var item models.DataItem
		var origin int64
		var deleted int

		if err := rows.Scan(&item.Key, &item.Value, &item.Timestamp, &origin, &deleted); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		item.Origin = models.DeviceID(origin)
		item.Deleted = intToBool(deleted)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// SaveMetaData creates or replaces a metadata item
func (s *Storage) SaveMetaData(ctx context.Context, item models.DataItem) error {
	if item.Key == "" {
		return storage.ErrEmptyKey
	}

	query := `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, item.Key, item.Value, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save metadata %q: %w", item.Key, err)
	}

	return nil
}

// GetMetaData retrieves a metadata item by key
// Returns ErrMetaDataNotFound if it doesn't exist
func (s *Storage) GetMetaData(ctx context.Context, key string) (*models.DataItem, error) {
	item := &models.DataItem{Key: key}
	var updatedAt int64

	err := s.db.QueryRowContext(ctx, `SELECT value, updated_at FROM metadata WHERE key = ?`, key).
		Scan(&item.Value, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrMetaDataNotFound
		}
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}

	item.Timestamp = updatedAt
	return item, nil
}

// Helper functions for bool/int conversion
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
