package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/synchub/internal/crdt"
	"github.com/iudanet/synchub/internal/device/storage"
	"github.com/iudanet/synchub/internal/models"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для локальных операций с данными устройства
type Service interface {
	// Put записывает значение ключа с новой меткой времени
	Put(ctx context.Context, key, value string) (*models.DataItem, error)
	// Delete записывает tombstone для существующего ключа
	Delete(ctx context.Context, key string) (*models.DataItem, error)
	// Get возвращает активную запись; удаленные ключи не возвращаются
	Get(ctx context.Context, key string) (*models.DataItem, error)
	// List возвращает все активные записи
	List(ctx context.Context) ([]*models.DataItem, error)
}

// service handles device-side data operations
type service struct {
	replica  storage.ReplicaStorage
	clock    *crdt.Clock
	deviceID models.DeviceID
}

// NewService creates a new data service
func NewService(replica storage.ReplicaStorage, clock *crdt.Clock, deviceID models.DeviceID) Service {
	return &service{
		replica:  replica,
		clock:    clock,
		deviceID: deviceID,
	}
}

// Put writes value for key in local replica
func (s *service) Put(ctx context.Context, key, value string) (*models.DataItem, error) {
	if key == "" {
		return nil, storage.ErrEmptyKey
	}

	item := &models.DataItem{
		Key:       key,
		Value:     value,
		Timestamp: s.clock.Tick(),
		Origin:    s.deviceID,
	}

	applied, err := s.replica.SaveItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	// Метка часов всегда новее сохраненных, отказ означает рассинхронизацию часов
	if !applied {
		return nil, fmt.Errorf("local write for %q lost to a newer version", key)
	}

	return item, nil
}

// Delete marks key as deleted (tombstone)
func (s *service) Delete(ctx context.Context, key string) (*models.DataItem, error) {
	existing, err := s.replica.GetItem(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if existing.Deleted {
		return nil, fmt.Errorf("failed to delete %q: %w", key, storage.ErrItemNotFound)
	}

	tombstone := &models.DataItem{
		Key:       key,
		Timestamp: s.clock.Tick(),
		Origin:    s.deviceID,
		Deleted:   true,
	}

	applied, err := s.replica.SaveItem(ctx, tombstone)
	if err != nil {
		return nil, fmt.Errorf("failed to save tombstone: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("local delete for %q lost to a newer version", key)
	}

	return tombstone, nil
}

// Get retrieves an active item by key
func (s *service) Get(ctx context.Context, key string) (*models.DataItem, error) {
	item, err := s.replica.GetItem(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	// Проверяем что не удалено
	if item.Deleted {
		return nil, fmt.Errorf("item %q is deleted: %w", key, storage.ErrItemNotFound)
	}

	return item, nil
}

// List returns all active items
func (s *service) List(ctx context.Context) ([]*models.DataItem, error) {
	items, err := s.replica.GetActiveItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// IsNotFound сообщает, что ключ отсутствует или удален
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrItemNotFound)
}
