// Package device реализует клиент устройства для хаба синхронизации:
// подключение, heartbeat, сопоставление ответов запросам по requestId
// и прием уведомлений DataChange.
package device

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/synchub/internal/frame"
	"github.com/iudanet/synchub/internal/models"
	"github.com/iudanet/synchub/pkg/api"
)

const (
	DefaultHeartbeatInterval = 5 * time.Second
	defaultNotifyBuffer      = 16
)

// Options параметры подключения
type Options struct {
	HeartbeatInterval time.Duration
	MaxFrameSize      int
}

// Client соединение устройства с хабом
type Client struct {
	conn      net.Conn
	w         *bufio.Writer
	logger    *slog.Logger
	pending   map[string]chan *api.Envelope
	notify    chan models.DeviceID
	done      chan struct{}
	err       error
	opts      Options
	id        models.DeviceID
	wg        sync.WaitGroup
	mu        sync.Mutex
	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Dial подключается к хабу от имени устройства id
func Dial(ctx context.Context, addr string, id models.DeviceID, opts Options, logger *slog.Logger) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to hub %s: %w", addr, err)
	}
	return newClient(conn, id, opts, logger), nil
}

func newClient(conn net.Conn, id models.DeviceID, opts Options, logger *slog.Logger) *Client {
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if opts.MaxFrameSize <= 0 {
		opts.MaxFrameSize = frame.DefaultMaxSize
	}

	c := &Client{
		conn:    conn,
		w:       bufio.NewWriter(conn),
		logger:  logger.With("device_id", id),
		pending: make(map[string]chan *api.Envelope),
		notify:  make(chan models.DeviceID, defaultNotifyBuffer),
		done:    make(chan struct{}),
		opts:    opts,
		id:      id,
	}

	c.wg.Add(2)
	go c.readLoop()
	go c.heartbeatLoop()
	return c
}

// DeviceID идентификатор устройства
func (c *Client) DeviceID() models.DeviceID {
	return c.id
}

// Notifications канал уведомлений DataChange: id устройства, изменившего данные.
// Уведомления, которые не успели прочитать, отбрасываются.
func (c *Client) Notifications() <-chan models.DeviceID {
	return c.notify
}

// Done закрывается при разрыве соединения
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err причина закрытия соединения
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close закрывает соединение и ждет остановки фоновых горутин
func (c *Client) Close() error {
	c.shutdown(ErrClosed)
	c.wg.Wait()
	return nil
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *Client) timeout() time.Duration {
	return 6 * c.opts.HeartbeatInterval
}

func (c *Client) write(kind frame.Kind, payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout())); err != nil {
		return err
	}
	if err := frame.Write(c.w, kind, payload, c.opts.MaxFrameSize); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *Client) heartbeatLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.opts.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.write(frame.KindHeartbeat, nil); err != nil {
				c.logger.Warn("Failed to send heartbeat", "error", err)
				c.shutdown(fmt.Errorf("%w: heartbeat: %v", ErrClosed, err))
				return
			}
		}
	}
}

func (c *Client) readLoop() {
	defer c.wg.Done()

	r := bufio.NewReader(c.conn)
	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout())); err != nil {
			c.shutdown(fmt.Errorf("%w: %v", ErrClosed, err))
			return
		}

		kind, payload, err := frame.Read(r, c.opts.MaxFrameSize)
		if err != nil {
			select {
			case <-c.done:
			default:
				if errors.Is(err, io.EOF) {
					c.logger.Info("Hub closed connection")
				} else {
					c.logger.Warn("Failed to read frame", "error", err)
				}
			}
			c.shutdown(fmt.Errorf("%w: %v", ErrClosed, err))
			return
		}

		switch kind {
		case frame.KindHeartbeat:
		case frame.KindBinary:
			c.handleBinary(payload)
		case frame.KindText:
			c.handleText(payload)
		}
	}
}

func (c *Client) handleBinary(payload []byte) {
	notifier, err := api.DecodeDataChange(payload)
	if err != nil {
		c.logger.Warn("Invalid binary message from hub", "error", err)
		return
	}

	select {
	case c.notify <- models.DeviceID(notifier):
	default:
		c.logger.Debug("Notification buffer full, DataChange coalesced", "notifier", notifier)
	}
}

func (c *Client) handleText(payload []byte) {
	env, err := api.Unmarshal(payload)
	if err != nil {
		c.logger.Warn("Invalid response from hub", "error", err)
		return
	}

	c.mu.Lock()
	ch, ok := c.pending[env.Header.RequestID]
	delete(c.pending, env.Header.RequestID)
	c.mu.Unlock()

	if !ok {
		c.logger.Debug("Response for unknown request",
			"request_id", env.Header.RequestID,
			"message_type", env.Header.MessageType,
		)
		return
	}
	ch <- env
}

// call отправляет запрос и ждет ответ с тем же requestId
func (c *Client) call(ctx context.Context, typ api.MessageType, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	requestID := uuid.NewString()
	payload, err := api.Marshal(api.Header{
		MessageType: typ,
		RequestID:   requestID,
		DeviceID:    int64(c.id),
	}, body)
	if err != nil {
		return err
	}

	respCh := make(chan *api.Envelope, 1)
	c.mu.Lock()
	c.pending[requestID] = respCh
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, requestID)
		c.mu.Unlock()
	}()

	if err := c.write(frame.KindText, payload); err != nil {
		return fmt.Errorf("failed to send %s: %w", typ, err)
	}

	select {
	case env := <-respCh:
		if reason, rejected := env.Rejection(); rejected {
			return &RejectedError{Type: typ, Reason: reason}
		}
		if want := typ.ResponseType(); env.Header.MessageType != want {
			return fmt.Errorf("unexpected response type %q, want %q", env.Header.MessageType, want)
		}
		if out == nil {
			return nil
		}
		return env.DecodeBody(out)
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return c.Err()
	}
}

// Time запрашивает время хаба. Возвращает время хаба в мс и время ответа.
func (c *Client) Time(ctx context.Context) (int64, time.Duration, error) {
	start := time.Now()

	var body api.TimeResponseBody
	if err := c.call(ctx, api.TypeTimeRequest, nil, &body); err != nil {
		return 0, 0, fmt.Errorf("time request failed: %w", err)
	}
	rtt := time.Since(start)

	ts, err := api.ParseTimestamp(body.TimeStamp)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hub time %q: %w", body.TimeStamp, err)
	}
	return ts, rtt, nil
}

// Push отправляет локальные изменения. Возвращает high-water хаба.
func (c *Client) Push(ctx context.Context, items []api.Item) (int64, error) {
	var body api.SyncAckBody
	err := c.call(ctx, api.TypeSync, api.SyncBody{
		DataItem:     api.ToWire(items),
		DataItemSize: len(items),
	}, &body)
	if err != nil {
		return 0, fmt.Errorf("sync request failed: %w", err)
	}

	highWater, err := api.ParseTimestamp(body.TimeStamp)
	if err != nil {
		return 0, fmt.Errorf("invalid high-water %q: %w", body.TimeStamp, err)
	}
	return highWater, nil
}

// Pull запрашивает изменения других устройств после watermark
func (c *Client) Pull(ctx context.Context) ([]api.Item, error) {
	var body api.ResponseSyncBody
	if err := c.call(ctx, api.TypeRequestSync, nil, &body); err != nil {
		return nil, fmt.Errorf("request sync failed: %w", err)
	}
	if body.DataItemSize != len(body.DataItem) {
		return nil, fmt.Errorf("DataItemSize is %d but %d items present", body.DataItemSize, len(body.DataItem))
	}

	items, err := api.FromWire(body.DataItem)
	if err != nil {
		return nil, fmt.Errorf("invalid items from hub: %w", err)
	}
	return items, nil
}

// Ack подтверждает получение данных до ts. Возвращает watermark хаба.
func (c *Client) Ack(ctx context.Context, ts int64) (int64, error) {
	var body api.ResponseSyncAckBody
	err := c.call(ctx, api.TypeRequestSyncAck, api.RequestSyncAckBody{
		TimeStamp: api.FormatTimestamp(ts),
	}, &body)
	if err != nil {
		return 0, fmt.Errorf("request sync ack failed: %w", err)
	}

	watermark, err := api.ParseTimestamp(body.TimeStamp)
	if err != nil {
		return 0, fmt.Errorf("invalid watermark %q: %w", body.TimeStamp, err)
	}
	return watermark, nil
}
