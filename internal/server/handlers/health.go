// Package handlers HTTP-эндпоинт состояния хаба.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/iudanet/synchub/internal/models"
)

// DeviceLister возвращает подключенные устройства (channel.Registry)
type DeviceLister interface {
	Devices() []models.DeviceID
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	devices DeviceLister
	logger  *slog.Logger
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(devices DeviceLister, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		devices: devices,
		version: version,
		logger:  logger,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Devices []models.DeviceID `json:"devices"`
}

// Health обрабатывает GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	devices := h.devices.Devices()
	if devices == nil {
		devices = []models.DeviceID{}
	}

	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
		Devices: devices,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}

// NewRouter собирает маршруты эндпоинта состояния
func NewRouter(h *HealthHandler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	return recovery(mux, logger)
}

// recovery перехватывает panic обработчика и отвечает 500
func recovery(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"stack", string(debug.Stack()),
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
