package engine

import (
	"context"

	"github.com/iudanet/synchub/internal/frame"
	"github.com/iudanet/synchub/internal/models"
	"github.com/iudanet/synchub/internal/server/channel"
	"github.com/iudanet/synchub/pkg/api"
)

// HandleStatusChange создает сессию при подключении устройства
// и сохраняет ее курсор при отключении.
func (e *Engine) HandleStatusChange(ctx context.Context, id models.DeviceID, status channel.Status) {
	switch status {
	case channel.StatusOnline:
		e.online(ctx, id)
	case channel.StatusOffline:
		e.offline(ctx, id)
	}
}

func (e *Engine) online(ctx context.Context, id models.DeviceID) {
	watermark, ok := e.watermark(id)
	if !ok {
		wm, err := e.loadWatermark(ctx, id)
		if err != nil {
			// Без сессии запросы устройства отклоняются до переподключения,
			// а offline не перезапишет сохраненный курсор нулем.
			e.logger.Error("Failed to load watermark, session not opened", "device_id", id, "error", err)
			return
		}

		now := e.now()
		e.mu.Lock()
		if s, exists := e.sessions[id]; exists {
			wm = s.Watermark
		} else {
			e.sessions[id] = &models.DeviceSession{
				OnlineAt:      now,
				LastRequestAt: now,
				Watermark:     wm,
			}
		}
		e.mu.Unlock()
		watermark = wm

		e.logger.Info("Session opened", "device_id", id, "watermark", watermark)
	}

	e.mu.Lock()
	notifiers := e.pending[id]
	delete(e.pending, id)
	e.mu.Unlock()
	if notifiers == nil {
		notifiers = make(map[models.DeviceID]struct{})
	}

	items, err := e.storage.GetUnsyncData(ctx, watermark, e.nowMillis(), id)
	if err != nil {
		e.logger.Error("Failed to check unsynced data", "device_id", id, "error", err)
	} else if len(items) > 0 {
		notifiers[items[len(items)-1].Origin] = struct{}{}
	}

	for _, notifier := range sortedIDs(notifiers) {
		e.notify(id, notifier)
	}
}

func (e *Engine) offline(ctx context.Context, id models.DeviceID) {
	e.mu.Lock()
	session, ok := e.sessions[id]
	delete(e.sessions, id)
	e.mu.Unlock()
	if !ok {
		return
	}

	if err := e.saveWatermark(context.WithoutCancel(ctx), id, session.Watermark); err != nil {
		e.logger.Error("Failed to persist watermark",
			"device_id", id,
			"watermark", session.Watermark,
			"error", err,
		)
	}
	e.logger.Info("Session closed", "device_id", id, "watermark", session.Watermark)
}

// HandleUndelivered запоминает недоставленные уведомления DataChange,
// чтобы повторить их при следующем подключении получателя.
// Недоставленные ответы не повторяются.
func (e *Engine) HandleUndelivered(_ context.Context, msg channel.Message) {
	if msg.Kind != frame.KindBinary {
		e.logger.Debug("Response undelivered", "device_id", msg.DeviceID)
		return
	}
	notifier, err := api.DecodeDataChange(msg.Payload)
	if err != nil {
		return
	}
	e.markPending(msg.DeviceID, models.DeviceID(notifier))
}

func (e *Engine) markPending(recipient, notifier models.DeviceID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.pending[recipient]
	if !ok {
		set = make(map[models.DeviceID]struct{})
		e.pending[recipient] = set
	}
	set[notifier] = struct{}{}
}

// notifyOthers рассылает DataChange всем устройствам с сессией, кроме pusher
func (e *Engine) notifyOthers(pusher models.DeviceID) {
	e.mu.Lock()
	targets := make(map[models.DeviceID]struct{}, len(e.sessions))
	for id := range e.sessions {
		if id != pusher {
			targets[id] = struct{}{}
		}
	}
	e.mu.Unlock()

	for _, id := range sortedIDs(targets) {
		e.notify(id, pusher)
	}
}

func (e *Engine) notify(recipient, notifier models.DeviceID) {
	if err := e.sender.SendBinary(recipient, api.EncodeDataChange(int64(notifier))); err != nil {
		e.logger.Warn("Failed to queue DataChange",
			"device_id", recipient,
			"notifier", notifier,
			"error", err,
		)
		e.markPending(recipient, notifier)
		return
	}
	e.logger.Debug("DataChange queued", "device_id", recipient, "notifier", notifier)
}
