package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/synchub/internal/frame"
	"github.com/iudanet/synchub/internal/models"
)

const (
	DefaultHeartbeatInterval = 5 * time.Second
	DefaultReceiveBufferSize = 4096
	DefaultSendQueueSize     = 256

	// heartbeatTimeoutFactor число пропущенных heartbeat до признания канала мертвым
	heartbeatTimeoutFactor = 6
)

// Config параметры слушателя и каналов
type Config struct {
	Address           string
	HeartbeatInterval time.Duration
	ReceiveBufferSize int
	SendQueueSize     int
	MaxFrameSize      int
}

// ReadTimeout таймаут чтения кадра
func (c Config) ReadTimeout() time.Duration {
	return heartbeatTimeoutFactor * c.HeartbeatInterval
}

func (c Config) withDefaults() Config {
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.ReceiveBufferSize <= 0 {
		c.ReceiveBufferSize = DefaultReceiveBufferSize
	}
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = DefaultSendQueueSize
	}
	if c.MaxFrameSize <= 0 {
		c.MaxFrameSize = frame.DefaultMaxSize
	}
	return c
}

// Handler получатель событий реестра.
// Все методы, кроме HandleStatusChange, вызываются из входящего насоса;
// HandleStatusChange вызывается из горутины чтения канала.
type Handler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandleStatusChange(ctx context.Context, id models.DeviceID, status Status)
	HandleUndelivered(ctx context.Context, msg Message)
}

// Registry принимает соединения устройств и владеет отображением
// DeviceID -> Channel.
type Registry struct {
	ctx      context.Context
	handler  Handler
	listener net.Listener
	logger   *slog.Logger
	inbound  *Queue
	outbound *Queue
	devices  map[models.DeviceID]*Channel
	tracked  map[*Channel]struct{}
	cancel   context.CancelFunc
	cfg      Config
	wg       sync.WaitGroup
	mu       sync.RWMutex
	statusMu sync.Mutex // порядок событий статуса совпадает с порядком изменений devices
	stopOnce sync.Once
	running  atomic.Bool
}

// New создает реестр. Слушатель открывается в Start.
func New(cfg Config, logger *slog.Logger) *Registry {
	return &Registry{
		cfg:      cfg.withDefaults(),
		logger:   logger,
		inbound:  NewQueue(),
		outbound: NewQueue(),
		devices:  make(map[models.DeviceID]*Channel),
		tracked:  make(map[*Channel]struct{}),
		ctx:      context.Background(),
	}
}

// SetHandler устанавливает получателя событий.
// Обработчик оборачивается в Recovery.
func (r *Registry) SetHandler(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h == nil {
		r.handler = nil
		return
	}
	r.handler = Recovery(r.logger)(h)
}

func (r *Registry) currentHandler() Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handler
}

// Start открывает слушатель и запускает насосы и цикл приема.
// Возвращает управление, когда слушатель готов.
func (r *Registry) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", r.cfg.Address)
	if err != nil {
		r.running.Store(false)
		return fmt.Errorf("failed to listen on %s: %w", r.cfg.Address, err)
	}

	r.mu.Lock()
	r.listener = ln
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.mu.Unlock()

	r.logger.Info("Registry listening",
		"address", ln.Addr().String(),
		"heartbeat_interval", r.cfg.HeartbeatInterval,
		"read_timeout", r.cfg.ReadTimeout(),
	)

	r.wg.Add(3)
	go r.acceptLoop(ln)
	go r.runInbound()
	go r.runOutbound()

	go func() {
		<-r.ctx.Done()
		r.Stop()
	}()
	return nil
}

// Addr адрес слушателя; nil до Start
func (r *Registry) Addr() net.Addr {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.listener == nil {
		return nil
	}
	return r.listener.Addr()
}

// Stop останавливает реестр: прекращает прием, закрывает очереди,
// закрывает каналы и ждет завершения всех горутин. Идемпотентен.
func (r *Registry) Stop() {
	if r.Addr() == nil {
		return
	}
	r.stopOnce.Do(func() {
		r.mu.RLock()
		ln := r.listener
		r.mu.RUnlock()

		r.running.Store(false)
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			r.logger.Warn("Failed to close listener", "error", err)
		}

		r.inbound.Close()
		r.outbound.Close()

		r.mu.Lock()
		channels := make([]*Channel, 0, len(r.tracked))
		for ch := range r.tracked {
			channels = append(channels, ch)
		}
		r.mu.Unlock()
		for _, ch := range channels {
			_ = ch.Close()
		}

		r.wg.Wait()
		r.cancel()
		r.logger.Info("Registry stopped")
	})
}

// SendText ставит текстовый кадр в исходящую очередь
func (r *Registry) SendText(id models.DeviceID, payload []byte) error {
	return r.enqueue(Message{DeviceID: id, Kind: frame.KindText, Payload: payload})
}

// SendBinary ставит бинарный кадр в исходящую очередь
func (r *Registry) SendBinary(id models.DeviceID, payload []byte) error {
	return r.enqueue(Message{DeviceID: id, Kind: frame.KindBinary, Payload: payload})
}

func (r *Registry) enqueue(msg Message) error {
	if !r.running.Load() || !r.outbound.Push(msg) {
		return ErrRegistryStopped
	}
	return nil
}

// Devices возвращает устройства с активным каналом, по возрастанию id
func (r *Registry) Devices() []models.DeviceID {
	r.mu.RLock()
	ids := make([]models.DeviceID, 0, len(r.devices))
	for id := range r.devices {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Backlog возвращает число сообщений, ожидающих во входящей и исходящей очередях
func (r *Registry) Backlog() (inbound, outbound int) {
	return r.inbound.Len(), r.outbound.Len()
}

// Channel возвращает активный канал устройства
func (r *Registry) Channel(id models.DeviceID) (*Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.devices[id]
	return ch, ok
}

func (r *Registry) acceptLoop(ln net.Listener) {
	defer r.wg.Done()

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if !r.running.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			if backoff == 0 {
				backoff = 5 * time.Millisecond
			} else {
				backoff = min(backoff*2, time.Second)
			}
			r.logger.Warn("Failed to accept connection", "error", err, "retry_in", backoff)
			time.Sleep(backoff)
			continue
		}
		backoff = 0
		r.serve(conn)
	}
}

func (r *Registry) serve(conn net.Conn) {
	ch := newChannel(conn, r.cfg, r, r.logger)

	r.mu.Lock()
	if !r.running.Load() {
		r.mu.Unlock()
		_ = conn.Close()
		return
	}
	r.tracked[ch] = struct{}{}
	r.mu.Unlock()

	r.logger.Debug("Connection accepted", "remote_addr", ch.RemoteAddr())
	ch.start(&r.wg)
}

func (r *Registry) onStatusChange(ch *Channel, status Status) {
	id := ch.DeviceID()

	// Событие доставляется обработчику под тем же замком, что и изменение
	// отображения: иначе offline старого канала может обогнать online нового.
	r.statusMu.Lock()
	defer r.statusMu.Unlock()

	switch status {
	case StatusOnline:
		r.mu.Lock()
		prev := r.devices[id]
		r.devices[id] = ch
		r.mu.Unlock()

		if prev != nil && prev != ch {
			r.logger.Info("Channel superseded",
				"device_id", id,
				"old_remote_addr", prev.RemoteAddr(),
				"remote_addr", ch.RemoteAddr(),
			)
			_ = prev.Close()
		}
		r.logger.Info("Device online", "device_id", id, "remote_addr", ch.RemoteAddr())

	case StatusOffline:
		r.mu.Lock()
		delete(r.tracked, ch)
		removed := false
		if id != models.UnboundDevice && r.devices[id] == ch {
			delete(r.devices, id)
			removed = true
		}
		r.mu.Unlock()

		if !removed {
			return
		}
		r.logger.Info("Device offline", "device_id", id, "remote_addr", ch.RemoteAddr())

	default:
		return
	}

	if h := r.currentHandler(); h != nil {
		h.HandleStatusChange(r.context(), id, status)
	}
}

func (r *Registry) onReceive(msg Message) {
	if !r.inbound.Push(msg) {
		r.logger.Debug("Inbound queue closed, message dropped", "device_id", msg.DeviceID)
	}
}

func (r *Registry) context() context.Context {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ctx
}
