// Package engine реализует протокол синхронизации хаба: разбор запросов
// устройств, сессии устройств с курсорами синхронизации и рассылку
// уведомлений DataChange.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/iudanet/synchub/internal/frame"
	"github.com/iudanet/synchub/internal/models"
	"github.com/iudanet/synchub/internal/server/channel"
	"github.com/iudanet/synchub/internal/server/storage"
	"github.com/iudanet/synchub/pkg/api"
)

//go:generate moq -out storage_mock.go . Storage
//go:generate moq -out sender_mock.go . Sender

// Storage хранилище данных и метаданных синхронизации
type Storage interface {
	SaveDataFromSync(ctx context.Context, items []models.DataItem, deviceID models.DeviceID) (int64, error)
	GetUnsyncData(ctx context.Context, since, until int64, deviceID models.DeviceID) ([]models.DataItem, error)
	SaveMetaData(ctx context.Context, item models.DataItem) error
	GetMetaData(ctx context.Context, key string) (*models.DataItem, error)
}

// Sender асинхронная отправка кадров устройствам
type Sender interface {
	SendText(deviceID models.DeviceID, payload []byte) error
	SendBinary(deviceID models.DeviceID, payload []byte) error
}

var _ channel.Handler = (*Engine)(nil)

// Engine обрабатывает сообщения устройств. Методы Handle* вызываются
// реестром каналов; обработка сообщений идет последовательно во входящем насосе.
type Engine struct {
	storage  Storage
	sender   Sender
	logger   *slog.Logger
	now      func() time.Time
	sessions map[models.DeviceID]*models.DeviceSession
	// pending получатель -> устройства, о чьих изменениях он не был уведомлен
	pending map[models.DeviceID]map[models.DeviceID]struct{}
	mu      sync.Mutex
}

// Option настройка Engine
type Option func(*Engine)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New создает движок протокола
func New(logger *slog.Logger, store Storage, sender Sender, opts ...Option) *Engine {
	e := &Engine{
		storage:  store,
		sender:   sender,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[models.DeviceID]*models.DeviceSession),
		pending:  make(map[models.DeviceID]map[models.DeviceID]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) nowMillis() int64 {
	return e.now().UnixMilli()
}

// HandleMessage обрабатывает кадр, принятый от устройства
func (e *Engine) HandleMessage(ctx context.Context, msg channel.Message) {
	switch msg.Kind {
	case frame.KindText:
		e.handleText(ctx, msg)
	case frame.KindBinary:
		e.handleBinary(msg)
	default:
		e.logger.Debug("Unexpected frame kind", "device_id", msg.DeviceID, "kind", msg.Kind)
	}
}

func (e *Engine) handleBinary(msg channel.Message) {
	notifier, err := api.DecodeDataChange(msg.Payload)
	if err != nil {
		e.logger.Warn("Invalid binary message",
			"device_id", msg.DeviceID,
			"bytes", len(msg.Payload),
			"error", err,
		)
		return
	}
	e.logger.Debug("DataChange received", "device_id", msg.DeviceID, "notifier", notifier)
}

func (e *Engine) handleText(ctx context.Context, msg channel.Message) {
	id := msg.DeviceID
	e.touch(id)

	req, err := api.Decode(msg.Payload)
	if err != nil {
		var decodeErr *api.DecodeError
		if !errors.As(err, &decodeErr) {
			decodeErr = &api.DecodeError{Reason: api.ReasonMalformedMessage, Err: err}
		}
		e.reject(id, decodeErr.Header, decodeErr.Reason, err)
		return
	}

	e.logger.Debug("Request received",
		"device_id", id,
		"message_type", req.Header().MessageType,
		"request_id", req.Header().RequestID,
	)

	switch m := req.(type) {
	case *api.TimeRequest:
		e.handleTimeRequest(id, m)
	case *api.SyncRequest:
		e.handleSync(ctx, id, m)
	case *api.RequestSync:
		e.handleRequestSync(ctx, id, m)
	case *api.RequestSyncAck:
		e.handleRequestSyncAck(ctx, id, m)
	}
}

func (e *Engine) handleTimeRequest(id models.DeviceID, m *api.TimeRequest) {
	e.respond(id, m.Head, api.TypeTimeResponse, api.TimeResponseBody{
		TimeStamp: api.FormatTimestamp(e.nowMillis()),
	})
}

func (e *Engine) handleSync(ctx context.Context, id models.DeviceID, m *api.SyncRequest) {
	items := make([]models.DataItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, models.DataItem{
			Key:       it.Key,
			Value:     it.Value,
			Timestamp: it.Timestamp,
			Origin:    id,
			Deleted:   it.Deleted,
		})
	}

	highWater, err := e.storage.SaveDataFromSync(ctx, items, id)
	if err != nil {
		e.reject(id, m.Head, api.ReasonInternal, err)
		return
	}

	e.logger.Info("Data saved from sync",
		"device_id", id,
		"items", len(items),
		"high_water", highWater,
	)

	e.respond(id, m.Head, api.TypeSyncAck, api.SyncAckBody{
		TimeStamp: api.FormatTimestamp(highWater),
	})
	e.notifyOthers(id)
}

func (e *Engine) handleRequestSync(ctx context.Context, id models.DeviceID, m *api.RequestSync) {
	watermark, ok := e.watermark(id)
	if !ok {
		e.reject(id, m.Head, api.ReasonUnknownDevice, nil)
		return
	}

	items, err := e.storage.GetUnsyncData(ctx, watermark, e.nowMillis(), id)
	if err != nil {
		e.reject(id, m.Head, api.ReasonInternal, err)
		return
	}

	e.logger.Debug("Unsynced data collected",
		"device_id", id,
		"watermark", watermark,
		"items", len(items),
	)

	e.respond(id, m.Head, api.TypeResponseSync, api.ResponseSyncBody{
		DataItem:     toWire(items),
		DataItemSize: len(items),
	})
}

func (e *Engine) handleRequestSyncAck(ctx context.Context, id models.DeviceID, m *api.RequestSyncAck) {
	e.mu.Lock()
	session, ok := e.sessions[id]
	if !ok {
		e.mu.Unlock()
		e.reject(id, m.Head, api.ReasonUnknownDevice, nil)
		return
	}
	advanced := session.Advance(m.Timestamp)
	watermark := session.Watermark
	e.mu.Unlock()

	if !advanced {
		e.logger.Debug("Stale ack ignored",
			"device_id", id,
			"declared", m.Timestamp,
			"watermark", watermark,
		)
	} else if err := e.saveWatermark(ctx, id, watermark); err != nil {
		e.reject(id, m.Head, api.ReasonInternal, err)
		return
	}

	e.respond(id, m.Head, api.TypeResponseSyncAck, api.ResponseSyncAckBody{
		TimeStamp: api.FormatTimestamp(watermark),
		Return:    true,
	})
}

// respond отправляет ответ устройству от имени хаба
func (e *Engine) respond(id models.DeviceID, req api.Header, respType api.MessageType, body any) {
	h := api.Header{
		MessageType: respType,
		RequestID:   req.RequestID,
		DeviceID:    int64(models.HubDeviceID),
	}
	payload, err := api.Marshal(h, body)
	if err != nil {
		e.logger.Error("Failed to encode response",
			"device_id", id,
			"message_type", respType,
			"error", err,
		)
		return
	}
	if err := e.sender.SendText(id, payload); err != nil {
		e.logger.Warn("Failed to send response",
			"device_id", id,
			"message_type", respType,
			"error", err,
		)
	}
}

// reject отправляет отказ с кодом причины
func (e *Engine) reject(id models.DeviceID, req api.Header, reason api.Reason, cause error) {
	level := slog.LevelWarn
	if reason == api.ReasonInternal {
		level = slog.LevelError
	}
	e.logger.Log(context.Background(), level, "Request rejected",
		"device_id", id,
		"message_type", req.MessageType,
		"request_id", req.RequestID,
		"reason", reason,
		"error", cause,
	)

	e.respond(id, req, req.MessageType.ResponseType(), api.ErrorBody{
		Error:  reason,
		Return: false,
	})
}

func toWire(items []models.DataItem) []api.WireItem {
	out := make([]api.WireItem, 0, len(items))
	for _, it := range items {
		out = append(out, api.WireItem{
			Key:       it.Key,
			Value:     it.Value,
			TimeStamp: api.FormatTimestamp(it.Timestamp),
			DeleteBit: it.Deleted,
		})
	}
	return out
}

// touch обновляет время последнего запроса устройства
func (e *Engine) touch(id models.DeviceID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.sessions[id]; ok {
		s.LastRequestAt = e.now()
	}
}

func (e *Engine) watermark(id models.DeviceID) (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[id]
	if !ok {
		return 0, false
	}
	return s.Watermark, true
}

// Session возвращает копию сессии устройства
func (e *Engine) Session(id models.DeviceID) (models.DeviceSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[id]
	if !ok {
		return models.DeviceSession{}, false
	}
	return *s, true
}

// Pending возвращает устройства, о чьих изменениях id еще не уведомлен
func (e *Engine) Pending(id models.DeviceID) []models.DeviceID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return sortedIDs(e.pending[id])
}

func sortedIDs(set map[models.DeviceID]struct{}) []models.DeviceID {
	ids := make([]models.DeviceID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (e *Engine) loadWatermark(ctx context.Context, id models.DeviceID) (int64, error) {
	item, err := e.storage.GetMetaData(ctx, models.WatermarkKey(id))
	if errors.Is(err, storage.ErrMetaDataNotFound) {
		return 0, e.saveWatermark(ctx, id, 0)
	}
	if err != nil {
		return 0, err
	}

	wm, err := strconv.ParseInt(item.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stored watermark %q: %w", item.Value, err)
	}
	return wm, nil
}

func (e *Engine) saveWatermark(ctx context.Context, id models.DeviceID, wm int64) error {
	return e.storage.SaveMetaData(ctx, models.DataItem{
		Key:       models.WatermarkKey(id),
		Value:     api.FormatTimestamp(wm),
		Timestamp: e.nowMillis(),
		Origin:    models.HubDeviceID,
	})
}
