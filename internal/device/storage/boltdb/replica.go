package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/synchub/internal/device/storage"
	"github.com/iudanet/synchub/internal/models"
)

// SaveItem stores item if it wins over the stored version by LWW rules
func (s *Storage) SaveItem(ctx context.Context, item *models.DataItem) (bool, error) {
	if s.db == nil {
		return false, storage.ErrStorageClosed
	}
	if item.Key == "" {
		return false, storage.ErrEmptyKey
	}

	data, err := json.Marshal(item)
	if err != nil {
		return false, fmt.Errorf("failed to marshal data item: %w", err)
	}

	applied := false
	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketItems)

		// Сравниваем с текущей версией ключа
		if existing := bucket.Get([]byte(item.Key)); existing != nil {
			var current models.DataItem
			if err := json.Unmarshal(existing, &current); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}
			if !item.IsNewerThan(&current) {
				return nil
			}
		}

		if err := bucket.Put([]byte(item.Key), data); err != nil {
			return fmt.Errorf("failed to save item: %w", err)
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("transaction failed: %w", err)
	}

	return applied, nil
}

// GetItem retrieves an item by key
func (s *Storage) GetItem(ctx context.Context, key string) (*models.DataItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var item *models.DataItem
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketItems).Get([]byte(key))
		if data == nil {
			return storage.ErrItemNotFound
		}

		item = &models.DataItem{}
		if err := json.Unmarshal(data, item); err != nil {
			return fmt.Errorf("failed to unmarshal item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// GetAllItems returns all items including tombstones
func (s *Storage) GetAllItems(ctx context.Context) ([]*models.DataItem, error) {
	items, err := s.scan(func(*models.DataItem) bool { return true })
	if err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return items, nil
}

// GetActiveItems returns all non-deleted items
func (s *Storage) GetActiveItems(ctx context.Context) ([]*models.DataItem, error) {
	items, err := s.scan(func(it *models.DataItem) bool { return !it.Deleted })
	if err != nil {
		return nil, fmt.Errorf("failed to get active items: %w", err)
	}
	return items, nil
}

// GetLocalItemsAfter returns items written by origin after timestamp
func (s *Storage) GetLocalItemsAfter(ctx context.Context, origin models.DeviceID, timestamp int64) ([]*models.DataItem, error) {
	items, err := s.scan(func(it *models.DataItem) bool {
		return it.Origin == origin && it.Timestamp > timestamp
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get local items: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp < items[j].Timestamp
	})
	return items, nil
}

// GetMaxTimestamp returns the maximum timestamp in the local replica
func (s *Storage) GetMaxTimestamp(ctx context.Context) (int64, error) {
	items, err := s.scan(func(*models.DataItem) bool { return true })
	if err != nil {
		return 0, fmt.Errorf("failed to get max timestamp: %w", err)
	}

	var maxTimestamp int64
	for _, it := range items {
		if it.Timestamp > maxTimestamp {
			maxTimestamp = it.Timestamp
		}
	}
	return maxTimestamp, nil
}

// Clear removes all items from storage
func (s *Storage) Clear(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketItems); err != nil && err != bbolt.ErrBucketNotFound {
			return fmt.Errorf("failed to delete bucket: %w", err)
		}
		if _, err := tx.CreateBucket(bucketItems); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear transaction failed: %w", err)
	}

	return nil
}

// scan обходит bucket в порядке ключей и отбирает записи по keep
func (s *Storage) scan(keep func(*models.DataItem) bool) ([]*models.DataItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var items []*models.DataItem
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketItems).ForEach(func(k, v []byte) error {
			var item models.DataItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal item %q: %w", k, err)
			}
			if keep(&item) {
				items = append(items, &item)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}
