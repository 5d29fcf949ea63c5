package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/synchub/internal/device/storage"
)

const (
	keyLastSyncTimestamp = "last_sync_timestamp"
	keyPushCursor        = "push_cursor"
	keyClockOffset       = "clock_offset"
)

// SaveLastSyncTimestamp saves the pull watermark confirmed by the hub
func (s *Storage) SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error {
	if err := s.putInt(keyLastSyncTimestamp, timestamp); err != nil {
		return fmt.Errorf("failed to save last sync timestamp: %w", err)
	}
	return nil
}

// GetLastSyncTimestamp retrieves the pull watermark
// Returns 0 if no sync has been performed yet
func (s *Storage) GetLastSyncTimestamp(ctx context.Context) (int64, error) {
	ts, err := s.getInt(keyLastSyncTimestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to get last sync timestamp: %w", err)
	}
	return ts, nil
}

// SavePushCursor saves the timestamp up to which local writes were accepted by the hub
func (s *Storage) SavePushCursor(ctx context.Context, timestamp int64) error {
	if err := s.putInt(keyPushCursor, timestamp); err != nil {
		return fmt.Errorf("failed to save push cursor: %w", err)
	}
	return nil
}

// GetPushCursor retrieves the push cursor
func (s *Storage) GetPushCursor(ctx context.Context) (int64, error) {
	ts, err := s.getInt(keyPushCursor)
	if err != nil {
		return 0, fmt.Errorf("failed to get push cursor: %w", err)
	}
	return ts, nil
}

// SaveClockOffset saves the measured offset between hub and local clocks
func (s *Storage) SaveClockOffset(ctx context.Context, offset time.Duration) error {
	if err := s.putInt(keyClockOffset, int64(offset)); err != nil {
		return fmt.Errorf("failed to save clock offset: %w", err)
	}
	return nil
}

// GetClockOffset retrieves the clock offset
func (s *Storage) GetClockOffset(ctx context.Context) (time.Duration, error) {
	v, err := s.getInt(keyClockOffset)
	if err != nil {
		return 0, fmt.Errorf("failed to get clock offset: %w", err)
	}
	return time.Duration(v), nil
}

func (s *Storage) putInt(key string, v int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Конвертируем int64 в bytes
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(v))
		return tx.Bucket(bucketMetadata).Put([]byte(key), buf)
	})
}

// getInt возвращает 0, если ключ еще не записан
func (s *Storage) getInt(key string) (int64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var v int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		buf := tx.Bucket(bucketMetadata).Get([]byte(key))
		if buf == nil {
			return nil
		}
		if len(buf) != 8 {
			return fmt.Errorf("corrupted value for %q", key)
		}
		v = int64(binary.BigEndian.Uint64(buf))
		return nil
	})
	return v, err
}
