// Package memory хранилище хаба в памяти процесса поверх LWW-Element-Set.
// Данные теряются при перезапуске; подходит для тестов и разработки.
package memory

import (
	"context"
	"sync"

	"github.com/iudanet/synchub/internal/crdt"
	"github.com/iudanet/synchub/internal/models"
	"github.com/iudanet/synchub/internal/server/storage"
)

var _ storage.DataStorage = (*Storage)(nil)

// Storage хранилище в памяти
type Storage struct {
	items *crdt.LWWSet
	meta  map[string]models.DataItem
	mu    sync.RWMutex // защищает meta
}

// New создает пустое хранилище
func New() *Storage {
	return &Storage{
		items: crdt.NewLWWSet(),
		meta:  make(map[string]models.DataItem),
	}
}

// SaveDataFromSync применяет записи устройства по правилу LWW
func (s *Storage) SaveDataFromSync(ctx context.Context, items []models.DataItem, deviceID models.DeviceID) (int64, error) {
	for _, item := range items {
		if item.Key == "" {
			return 0, storage.ErrEmptyKey
		}
	}

	for _, item := range items {
		it := item
		it.Origin = deviceID
		if it.Deleted {
			s.items.Remove(&it)
			continue
		}
		s.items.Add(&it)
	}

	return s.items.MaxTimestamp(), nil
}

// GetUnsyncData возвращает версии в окне (since, until], записанные не deviceID
func (s *Storage) GetUnsyncData(ctx context.Context, since, until int64, deviceID models.DeviceID) ([]models.DataItem, error) {
	found := s.items.Range(since, until, deviceID)

	result := make([]models.DataItem, 0, len(found))
	for _, it := range found {
		result = append(result, *it)
	}
	return result, nil
}

// SaveMetaData сохраняет элемент метаданных
func (s *Storage) SaveMetaData(ctx context.Context, item models.DataItem) error {
	if item.Key == "" {
		return storage.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.meta[item.Key] = item
	return nil
}

// GetMetaData возвращает элемент метаданных или ErrMetaDataNotFound
func (s *Storage) GetMetaData(ctx context.Context, key string) (*models.DataItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.meta[key]
	if !ok {
		return nil, storage.ErrMetaDataNotFound
	}
	return &item, nil
}

// Close ничего не освобождает
func (s *Storage) Close() error {
	return nil
}
