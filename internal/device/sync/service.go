package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/synchub/internal/crdt"
	"github.com/iudanet/synchub/internal/device/storage"
	"github.com/iudanet/synchub/internal/models"
	"github.com/iudanet/synchub/pkg/api"
)

//go:generate moq -out hub_mock.go . Hub
//go:generate moq -out service_mock.go . Service

// Hub операции протокола синхронизации, которые устройство выполняет на хабе.
// Реализуется device.Client.
type Hub interface {
	// Time возвращает время хаба в мс и время ответа
	Time(ctx context.Context) (int64, time.Duration, error)
	// Push отправляет локальные изменения и возвращает high-water хаба
	Push(ctx context.Context, items []api.Item) (int64, error)
	// Pull возвращает изменения других устройств после watermark
	Pull(ctx context.Context) ([]api.Item, error)
	// Ack подтверждает получение до ts и возвращает watermark хаба
	Ack(ctx context.Context, ts int64) (int64, error)
}

// Service определяет интерфейс для sync.Service
type Service interface {
	// Sync выполняет полную синхронизацию с хабом
	Sync(ctx context.Context) (*SyncResult, error)

	// SyncClock корректирует часы устройства по времени хаба
	SyncClock(ctx context.Context) (time.Duration, error)

	// Watch синхронизируется при каждом уведомлении DataChange
	Watch(ctx context.Context, notifications <-chan models.DeviceID, done <-chan struct{}) error

	// GetPendingSyncCount возвращает количество записей, ожидающих отправки
	GetPendingSyncCount(ctx context.Context) (int, error)
}

// service handles synchronization between device and hub
type service struct {
	hub      Hub
	replica  storage.ReplicaStorage
	metadata storage.MetadataStorage
	clock    *crdt.Clock
	logger   *slog.Logger
	deviceID models.DeviceID
}

// NewService creates a new sync service
func NewService(
	hub Hub,
	replica storage.ReplicaStorage,
	metadata storage.MetadataStorage,
	clock *crdt.Clock,
	deviceID models.DeviceID,
	logger *slog.Logger,
) Service {
	return &service{
		hub:      hub,
		replica:  replica,
		metadata: metadata,
		clock:    clock,
		deviceID: deviceID,
		logger:   logger,
	}
}

// SyncResult contains sync operation results
type SyncResult struct {
	PushedItems  int   // количество отправленных на хаб записей
	PulledItems  int   // количество полученных с хаба записей
	MergedItems  int   // количество примененных записей
	SkippedItems int   // количество записей, проигравших локальной версии
	HighWater    int64 // high-water хаба после push
	Watermark    int64 // watermark устройства после ack
}

// Sync performs full synchronization with hub
// 1. Pushes local writes made after the push cursor
// 2. Pulls changes of other devices
// 3. Merges them into the replica using LWW rules
// 4. Acknowledges the pulled range
func (s *service) Sync(ctx context.Context) (*SyncResult, error) {
	s.logger.Info("Starting synchronization", "device_id", s.deviceID)

	result := &SyncResult{}

	if err := s.push(ctx, result); err != nil {
		return nil, err
	}
	if err := s.pull(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info("Synchronization completed",
		"pushed", result.PushedItems,
		"pulled", result.PulledItems,
		"merged", result.MergedItems,
		"skipped", result.SkippedItems,
		"watermark", result.Watermark)

	return result, nil
}

func (s *service) push(ctx context.Context, result *SyncResult) error {
	cursor, err := s.metadata.GetPushCursor(ctx)
	if err != nil {
		return fmt.Errorf("failed to get push cursor: %w", err)
	}

	local, err := s.replica.GetLocalItemsAfter(ctx, s.deviceID, cursor)
	if err != nil {
		return fmt.Errorf("failed to get local items: %w", err)
	}
	// Хаб отклоняет пустой Sync
	if len(local) == 0 {
		s.logger.Debug("Nothing to push", "cursor", cursor)
		return nil
	}

	items := make([]api.Item, 0, len(local))
	maxTS := cursor
	for _, item := range local {
		items = append(items, api.Item{
			Key:       item.Key,
			Value:     item.Value,
			Timestamp: item.Timestamp,
			Deleted:   item.Deleted,
		})
		maxTS = max(maxTS, item.Timestamp)
	}

	highWater, err := s.hub.Push(ctx, items)
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	// Курсор двигается только после подтверждения хаба
	if err := s.metadata.SavePushCursor(ctx, maxTS); err != nil {
		return fmt.Errorf("failed to save push cursor: %w", err)
	}

	result.PushedItems = len(items)
	result.HighWater = highWater
	s.logger.Debug("Pushed local changes", "count", len(items), "cursor", maxTS, "high_water", highWater)
	return nil
}

func (s *service) pull(ctx context.Context, result *SyncResult) error {
	items, err := s.hub.Pull(ctx)
	if err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}
	result.PulledItems = len(items)

	if len(items) == 0 {
		watermark, err := s.metadata.GetLastSyncTimestamp(ctx)
		if err != nil {
			return fmt.Errorf("failed to get last sync timestamp: %w", err)
		}
		result.Watermark = watermark
		return nil
	}

	var maxTS int64
	for _, wire := range items {
		maxTS = max(maxTS, wire.Timestamp)

		// Источник записи не передается, изменения других устройств приходят от имени хаба
		item := &models.DataItem{
			Key:       wire.Key,
			Value:     wire.Value,
			Timestamp: wire.Timestamp,
			Origin:    models.HubDeviceID,
			Deleted:   wire.Deleted,
		}
		s.clock.Observe(item.Timestamp)

		applied, err := s.replica.SaveItem(ctx, item)
		if err != nil {
			return fmt.Errorf("failed to merge item %q: %w", item.Key, err)
		}
		if !applied {
			s.logger.Debug("Skipping item (local is newer)", "key", item.Key, "timestamp", item.Timestamp)
			result.SkippedItems++
			continue
		}
		result.MergedItems++
	}

	watermark, err := s.hub.Ack(ctx, maxTS)
	if err != nil {
		return fmt.Errorf("ack failed: %w", err)
	}
	if err := s.metadata.SaveLastSyncTimestamp(ctx, watermark); err != nil {
		s.logger.Warn("Failed to save last sync timestamp", "error", err)
	}
	result.Watermark = watermark
	return nil
}

// SyncClock запрашивает время хаба и сохраняет смещение часов
func (s *service) SyncClock(ctx context.Context) (time.Duration, error) {
	hubMillis, rtt, err := s.hub.Time(ctx)
	if err != nil {
		return 0, err
	}

	s.clock.SyncWithHub(hubMillis, rtt)
	offset := s.clock.Offset()
	if err := s.metadata.SaveClockOffset(ctx, offset); err != nil {
		return 0, fmt.Errorf("failed to save clock offset: %w", err)
	}

	s.logger.Debug("Clock synchronized", "offset", offset, "rtt", rtt)
	return offset, nil
}

// Watch выполняет начальную синхронизацию и затем синхронизируется после
// каждого DataChange, пока не отменен ctx или не закрыт done.
func (s *service) Watch(ctx context.Context, notifications <-chan models.DeviceID, done <-chan struct{}) error {
	if _, err := s.Sync(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case from, ok := <-notifications:
			if !ok {
				return nil
			}
			s.logger.Info("Data changed", "from", from)
			if _, err := s.Sync(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}

// GetPendingSyncCount возвращает количество локальных записей после курсора отправки
func (s *service) GetPendingSyncCount(ctx context.Context) (int, error) {
	cursor, err := s.metadata.GetPushCursor(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get push cursor: %w", err)
	}

	items, err := s.replica.GetLocalItemsAfter(ctx, s.deviceID, cursor)
	if err != nil {
		return 0, fmt.Errorf("failed to get pending items: %w", err)
	}
	return len(items), nil
}

// RestoreClock восстанавливает часы устройства: сохраненное смещение
// относительно хаба и максимальную метку реплики.
func RestoreClock(ctx context.Context, clock *crdt.Clock, replica storage.ReplicaStorage, metadata storage.MetadataStorage) error {
	offset, err := metadata.GetClockOffset(ctx)
	if err != nil {
		return fmt.Errorf("failed to get clock offset: %w", err)
	}
	clock.SetOffset(offset)

	maxTS, err := replica.GetMaxTimestamp(ctx)
	if err != nil {
		return fmt.Errorf("failed to get max timestamp: %w", err)
	}
	clock.Observe(maxTS)
	return nil
}
