package channel

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"math"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"

	"github.com/iudanet/synchub/internal/frame"
	"github.com/iudanet/synchub/internal/models"
)

// Status состояние канала
type Status int32

const (
	StatusConnecting Status = iota
	StatusOnline
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// deviceIDPath путь к идентификатору устройства в текстовом кадре
const deviceIDPath = "MessageHeader.deviceId"

// owner получает события канала. Вызовы идут из горутины чтения канала.
type owner interface {
	onStatusChange(ch *Channel, status Status)
	onReceive(msg Message)
}

type outFrame struct {
	payload []byte
	kind    frame.Kind
}

// Channel одно TCP-соединение устройства: разбор кадров, контроль
// живости по heartbeat и асинхронная отправка через ограниченную очередь.
type Channel struct {
	conn          net.Conn
	owner         owner
	logger        *slog.Logger
	sendQ         chan outFrame
	done          chan struct{}
	remoteAddr    string
	cfg           Config
	deviceID      atomic.Int64
	lastHeartbeat atomic.Int64
	status        atomic.Int32
	closeOnce     sync.Once
}

func newChannel(conn net.Conn, cfg Config, o owner, logger *slog.Logger) *Channel {
	ch := &Channel{
		conn:       conn,
		owner:      o,
		cfg:        cfg,
		sendQ:      make(chan outFrame, cfg.SendQueueSize),
		done:       make(chan struct{}),
		remoteAddr: conn.RemoteAddr().String(),
	}
	ch.logger = logger.With("remote_addr", ch.remoteAddr)
	ch.deviceID.Store(int64(models.UnboundDevice))
	ch.status.Store(int32(StatusConnecting))
	ch.touch()
	ch.configureSocket()
	return ch
}

// configureSocket применяет политику сокета для TCP-соединений
func (c *Channel) configureSocket() {
	tcp, ok := c.conn.(*net.TCPConn)
	if !ok {
		return
	}
	if err := tcp.SetReadBuffer(c.cfg.ReceiveBufferSize); err != nil {
		c.logger.Debug("Failed to set receive buffer", "error", err)
	}
	if err := tcp.SetNoDelay(true); err != nil {
		c.logger.Debug("Failed to set no delay", "error", err)
	}
	if err := tcp.SetKeepAlive(true); err != nil {
		c.logger.Debug("Failed to enable keepalive", "error", err)
		return
	}
	if err := tcp.SetKeepAlivePeriod(c.cfg.HeartbeatInterval); err != nil {
		c.logger.Debug("Failed to set keepalive period", "error", err)
	}
}

func (c *Channel) start(wg *sync.WaitGroup) {
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.readLoop()
	}()
	go func() {
		defer wg.Done()
		c.writeLoop()
	}()
}

// DeviceID возвращает привязанный идентификатор устройства
// или models.UnboundDevice, если канал еще не привязан.
func (c *Channel) DeviceID() models.DeviceID {
	return models.DeviceID(c.deviceID.Load())
}

// Status возвращает текущее состояние канала
func (c *Channel) Status() Status {
	return Status(c.status.Load())
}

// LastHeartbeat время последнего принятого кадра
func (c *Channel) LastHeartbeat() time.Time {
	return time.UnixMilli(c.lastHeartbeat.Load())
}

// RemoteAddr адрес удаленной стороны
func (c *Channel) RemoteAddr() string {
	return c.remoteAddr
}

// Send ставит кадр в очередь отправки. Никогда не блокируется.
func (c *Channel) Send(kind frame.Kind, payload []byte) error {
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}

	select {
	case c.sendQ <- outFrame{kind: kind, payload: payload}:
		return nil
	case <-c.done:
		return ErrChannelClosed
	default:
		return ErrSendQueueFull
	}
}

// Close закрывает соединение. Переход в Offline выполняет горутина чтения.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

func (c *Channel) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Channel) touch() {
	c.lastHeartbeat.Store(time.Now().UnixMilli())
}

func (c *Channel) readTimeout() time.Duration {
	return c.cfg.ReadTimeout()
}

func (c *Channel) readLoop() {
	defer c.setOffline()
	defer c.Close()

	r := bufio.NewReaderSize(c.conn, c.cfg.ReceiveBufferSize)
	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout())); err != nil {
			c.logReadError(err)
			return
		}

		kind, payload, err := frame.Read(r, c.cfg.MaxFrameSize)
		if err != nil {
			c.logReadError(err)
			return
		}
		c.touch()

		switch kind {
		case frame.KindHeartbeat:
			if err := c.Send(frame.KindHeartbeat, nil); err != nil {
				c.logger.Debug("Failed to echo heartbeat", "error", err)
			}
		case frame.KindText:
			id, ok := c.bind(payload)
			if !ok {
				continue
			}
			c.owner.onReceive(Message{DeviceID: id, Kind: kind, Payload: payload})
		case frame.KindBinary:
			id := c.DeviceID()
			if id == models.UnboundDevice {
				c.logger.Warn("Binary frame on unbound channel dropped", "bytes", len(payload))
				continue
			}
			c.owner.onReceive(Message{DeviceID: id, Kind: kind, Payload: payload})
		}
	}
}

func (c *Channel) logReadError(err error) {
	var netErr net.Error
	switch {
	case c.closed() || errors.Is(err, net.ErrClosed):
		c.logger.Debug("Channel closed locally", "device_id", c.DeviceID())
	case errors.Is(err, io.EOF):
		c.logger.Info("Channel closed by peer", "device_id", c.DeviceID())
	case errors.As(err, &netErr) && netErr.Timeout():
		c.logger.Warn("Heartbeat timeout",
			"device_id", c.DeviceID(),
			"timeout", c.readTimeout(),
			"last_heartbeat", c.LastHeartbeat(),
		)
	default:
		c.logger.Warn("Failed to read frame", "device_id", c.DeviceID(), "error", err)
	}
}

// bind привязывает канал к устройству по первому текстовому кадру.
// Возвращает false, если кадр нужно отбросить.
func (c *Channel) bind(payload []byte) (models.DeviceID, bool) {
	res := gjson.GetBytes(payload, deviceIDPath)
	declared, valid := headerDeviceID(res)

	current := c.DeviceID()
	if current != models.UnboundDevice {
		if res.Exists() && (!valid || declared != current) {
			c.logger.Warn("Frame names another device, dropped",
				"device_id", current,
				"declared", res.Raw,
			)
			return 0, false
		}
		return current, true
	}

	if !valid {
		c.logger.Warn("Text frame without valid device id on unbound channel dropped",
			"declared", res.Raw,
		)
		return 0, false
	}

	c.deviceID.Store(int64(declared))
	if c.status.CompareAndSwap(int32(StatusConnecting), int32(StatusOnline)) {
		c.logger.Info("Channel bound to device", "device_id", declared)
		c.owner.onStatusChange(c, StatusOnline)
	}
	return declared, true
}

func headerDeviceID(res gjson.Result) (models.DeviceID, bool) {
	if res.Type != gjson.Number {
		return 0, false
	}
	if res.Num != math.Trunc(res.Num) || res.Num < 0 || res.Num > math.MaxInt64 {
		return 0, false
	}
	return models.DeviceID(res.Int()), true
}

// setOffline выполняет единственный переход в Offline
func (c *Channel) setOffline() {
	prev := Status(c.status.Swap(int32(StatusOffline)))
	if prev == StatusOffline {
		return
	}
	c.owner.onStatusChange(c, StatusOffline)
}

func (c *Channel) writeLoop() {
	w := bufio.NewWriter(c.conn)
	for {
		select {
		case <-c.done:
			return
		case f := <-c.sendQ:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.readTimeout())); err != nil {
				c.logger.Warn("Failed to set write deadline", "error", err)
				_ = c.Close()
				return
			}
			err := frame.Write(w, f.kind, f.payload, c.cfg.MaxFrameSize)
			if errors.Is(err, frame.ErrFrameTooLarge) || errors.Is(err, frame.ErrEmptyFrame) {
				c.logger.Warn("Outbound frame dropped", "kind", f.kind, "bytes", len(f.payload), "error", err)
				continue
			}
			if err == nil && len(c.sendQ) == 0 {
				err = w.Flush()
			}
			if err != nil {
				if !c.closed() {
					c.logger.Warn("Failed to write frame", "error", err)
				}
				_ = c.Close()
				return
			}
		}
	}
}
