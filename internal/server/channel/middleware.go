package channel

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/iudanet/synchub/internal/models"
)

// Middleware оборачивает Handler
type Middleware func(Handler) Handler

// Chain применяет middleware так, что первая в списке оказывается внешней
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Recovery перехватывает panic в обработчике, логирует стек вызовов
// и не дает панике остановить насос или горутину чтения.
func Recovery(logger *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return &recoveryHandler{next: next, logger: logger}
	}
}

type recoveryHandler struct {
	next   Handler
	logger *slog.Logger
}

func (h *recoveryHandler) guard(op string, id models.DeviceID) {
	if err := recover(); err != nil {
		h.logger.Error("Panic recovered",
			"error", err,
			"op", op,
			"device_id", id,
			"stack", string(debug.Stack()),
		)
	}
}

func (h *recoveryHandler) HandleMessage(ctx context.Context, msg Message) {
	defer h.guard("message", msg.DeviceID)
	h.next.HandleMessage(ctx, msg)
}

func (h *recoveryHandler) HandleStatusChange(ctx context.Context, id models.DeviceID, status Status) {
	defer h.guard("status", id)
	h.next.HandleStatusChange(ctx, id, status)
}

func (h *recoveryHandler) HandleUndelivered(ctx context.Context, msg Message) {
	defer h.guard("undelivered", msg.DeviceID)
	h.next.HandleUndelivered(ctx, msg)
}

// Logging логирует каждое входящее сообщение с длительностью обработки.
// Payload не логируется.
func Logging(logger *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return &loggingHandler{next: next, logger: logger}
	}
}

type loggingHandler struct {
	next   Handler
	logger *slog.Logger
}

func (h *loggingHandler) HandleMessage(ctx context.Context, msg Message) {
	start := time.Now()
	h.next.HandleMessage(ctx, msg)

	h.logger.Debug("Message handled",
		"device_id", msg.DeviceID,
		"kind", msg.Kind,
		"bytes", len(msg.Payload),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (h *loggingHandler) HandleStatusChange(ctx context.Context, id models.DeviceID, status Status) {
	h.logger.Debug("Status change", "device_id", id, "status", status)
	h.next.HandleStatusChange(ctx, id, status)
}

func (h *loggingHandler) HandleUndelivered(ctx context.Context, msg Message) {
	h.logger.Debug("Message undelivered", "device_id", msg.DeviceID, "kind", msg.Kind)
	h.next.HandleUndelivered(ctx, msg)
}
