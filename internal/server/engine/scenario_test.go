package engine

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/synchub/internal/frame"
	"github.com/iudanet/synchub/internal/models"
	"github.com/iudanet/synchub/internal/server/channel"
	"github.com/iudanet/synchub/internal/server/storage/memory"
	"github.com/iudanet/synchub/pkg/api"
)

type testDevice struct {
	conn net.Conn
	r    *bufio.Reader
	id   models.DeviceID
}

func connect(t *testing.T, addr string, id models.DeviceID) *testDevice {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &testDevice{conn: conn, r: bufio.NewReader(conn), id: id}
}

func (d *testDevice) send(t *testing.T, typ api.MessageType, requestID string, body any) {
	t.Helper()
	payload, err := api.Marshal(api.Header{MessageType: typ, RequestID: requestID, DeviceID: int64(d.id)}, body)
	require.NoError(t, err)
	require.NoError(t, frame.Write(d.conn, frame.KindText, payload, 0))
}

func (d *testDevice) next(t *testing.T) (frame.Kind, []byte) {
	t.Helper()
	require.NoError(t, d.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	kind, payload, err := frame.Read(d.r, 0)
	require.NoError(t, err)
	return kind, payload
}

func (d *testDevice) response(t *testing.T) *api.Envelope {
	t.Helper()
	kind, payload := d.next(t)
	require.Equal(t, frame.KindText, kind)
	env, err := api.Unmarshal(payload)
	require.NoError(t, err)
	return env
}

func startHub(t *testing.T) (*channel.Registry, *Engine) {
	t.Helper()
	reg := channel.New(channel.Config{Address: "127.0.0.1:0"}, testLogger())
	e := New(testLogger(), memory.New(), reg)
	reg.SetHandler(e)
	require.NoError(t, reg.Start(context.Background()))
	t.Cleanup(reg.Stop)
	return reg, e
}

func TestScenario_PushNotifiesOtherDevice(t *testing.T) {
	reg, e := startHub(t)
	addr := reg.Addr().String()

	d7 := connect(t, addr, 7)
	d7.send(t, api.TypeTimeRequest, "r1", nil)
	env := d7.response(t)
	assert.Equal(t, api.TypeTimeResponse, env.Header.MessageType)
	assert.Equal(t, "r1", env.Header.RequestID)
	var tr api.TimeResponseBody
	require.NoError(t, env.DecodeBody(&tr))
	hubTime, err := api.ParseTimestamp(tr.TimeStamp)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().UnixMilli(), hubTime, float64(time.Minute.Milliseconds()))

	d9 := connect(t, addr, 9)
	d9.send(t, api.TypeTimeRequest, "r9", nil)
	d9.response(t)
	require.Eventually(t, func() bool {
		_, ok := e.Session(9)
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	ts := time.Now().UnixMilli() - 1000
	d7.send(t, api.TypeSync, "r2", api.SyncBody{
		DataItemSize: 1,
		DataItem:     []api.WireItem{{Key: "k", Value: "v", TimeStamp: api.FormatTimestamp(ts)}},
	})
	env = d7.response(t)
	assert.Equal(t, api.TypeSyncAck, env.Header.MessageType)
	assert.Equal(t, "r2", env.Header.RequestID)
	var ack api.SyncAckBody
	require.NoError(t, env.DecodeBody(&ack))
	assert.Equal(t, api.FormatTimestamp(ts), ack.TimeStamp)

	kind, payload := d9.next(t)
	require.Equal(t, frame.KindBinary, kind)
	notifier, err := api.DecodeDataChange(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(7), notifier)

	d9.send(t, api.TypeRequestSync, "r3", nil)
	env = d9.response(t)
	assert.Equal(t, api.TypeResponseSync, env.Header.MessageType)
	var pulled api.ResponseSyncBody
	require.NoError(t, env.DecodeBody(&pulled))
	require.Equal(t, 1, pulled.DataItemSize)
	assert.Equal(t, "k", pulled.DataItem[0].Key)
	assert.Equal(t, "v", pulled.DataItem[0].Value)

	d9.send(t, api.TypeRequestSyncAck, "r4", api.RequestSyncAckBody{TimeStamp: pulled.DataItem[0].TimeStamp})
	env = d9.response(t)
	var ackResp api.ResponseSyncAckBody
	require.NoError(t, env.DecodeBody(&ackResp))
	assert.True(t, ackResp.Return)
	assert.Equal(t, api.FormatTimestamp(ts), ackResp.TimeStamp)

	// Второй pull ничего не возвращает
	d9.send(t, api.TypeRequestSync, "r5", nil)
	require.NoError(t, d9.response(t).DecodeBody(&pulled))
	assert.Equal(t, 0, pulled.DataItemSize)
}

func TestScenario_OfflineDeviceGetsNoticeOnReconnect(t *testing.T) {
	reg, e := startHub(t)
	addr := reg.Addr().String()

	d9 := connect(t, addr, 9)
	d9.send(t, api.TypeTimeRequest, "r1", nil)
	d9.response(t)
	require.NoError(t, d9.conn.Close())
	require.Eventually(t, func() bool {
		_, ok := e.Session(9)
		return !ok
	}, 2*time.Second, 10*time.Millisecond)

	d7 := connect(t, addr, 7)
	d7.send(t, api.TypeSync, "r2", api.SyncBody{
		DataItemSize: 1,
		DataItem:     []api.WireItem{{Key: "k", Value: "v", TimeStamp: api.FormatTimestamp(time.Now().UnixMilli() - 1000)}},
	})
	d7.response(t)

	again := connect(t, addr, 9)
	again.send(t, api.TypeTimeRequest, "r3", nil)

	var gotNotice, gotResponse bool
	for !gotNotice || !gotResponse {
		kind, payload := again.next(t)
		switch kind {
		case frame.KindBinary:
			notifier, err := api.DecodeDataChange(payload)
			require.NoError(t, err)
			assert.Equal(t, int64(7), notifier)
			gotNotice = true
		case frame.KindText:
			gotResponse = true
		}
	}
}

// delayedOffline притормаживает offline перед движком
type delayedOffline struct {
	channel.Handler
	delay time.Duration
}

func (d delayedOffline) HandleStatusChange(ctx context.Context, id models.DeviceID, status channel.Status) {
	if status == channel.StatusOffline {
		time.Sleep(d.delay)
	}
	d.Handler.HandleStatusChange(ctx, id, status)
}

func TestScenario_FastReconnectKeepsSession(t *testing.T) {
	reg := channel.New(channel.Config{Address: "127.0.0.1:0"}, testLogger())
	e := New(testLogger(), memory.New(), reg)
	reg.SetHandler(delayedOffline{Handler: e, delay: 200 * time.Millisecond})
	require.NoError(t, reg.Start(context.Background()))
	t.Cleanup(reg.Stop)
	addr := reg.Addr().String()

	d5 := connect(t, addr, 5)
	d5.send(t, api.TypeTimeRequest, "r1", nil)
	d5.response(t)
	require.NoError(t, d5.conn.Close())
	require.Eventually(t, func() bool { return len(reg.Devices()) == 0 }, 2*time.Second, time.Millisecond)

	again := connect(t, addr, 5)
	again.send(t, api.TypeTimeRequest, "r2", nil)
	again.response(t)

	// Offline первого соединения уже отработал и не снес новую сессию
	time.Sleep(300 * time.Millisecond)
	_, ok := e.Session(5)
	require.True(t, ok)

	again.send(t, api.TypeRequestSync, "r3", nil)
	env := again.response(t)
	_, rejected := env.Rejection()
	assert.False(t, rejected)
	assert.Equal(t, api.TypeResponseSync, env.Header.MessageType)
}
