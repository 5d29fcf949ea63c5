package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Valid(t *testing.T) {
	t.Run("time request", func(t *testing.T) {
		msg, err := Decode([]byte(`{"MessageHeader":{"messageType":"TimeRequest","requestId":"r1","deviceId":7}}`))
		require.NoError(t, err)

		req, ok := msg.(*TimeRequest)
		require.True(t, ok)
		assert.Equal(t, Header{MessageType: TypeTimeRequest, RequestID: "r1", DeviceID: 7}, req.Header())
	})

	t.Run("sync with string and numeric timestamps", func(t *testing.T) {
		payload := `{"MessageHeader":{"messageType":"Sync","requestId":"r2","deviceId":7},
			"Message":{"DataItemSize":2,"DataItem":[
				{"Key":"a","Value":"1","TimeStamp":"100","DeleteBit":false},
				{"Key":"b","Value":"","TimeStamp":101,"DeleteBit":true}]}}`

		msg, err := Decode([]byte(payload))
		require.NoError(t, err)

		req, ok := msg.(*SyncRequest)
		require.True(t, ok)
		assert.Equal(t, []Item{
			{Key: "a", Value: "1", Timestamp: 100},
			{Key: "b", Timestamp: 101, Deleted: true},
		}, req.Items)
	})

	t.Run("data item size as string", func(t *testing.T) {
		payload := `{"MessageHeader":{"messageType":"Sync","deviceId":1},
			"Message":{"DataItemSize":"1","DataItem":[{"Key":"a","Value":"1","TimeStamp":"5"}]}}`
		msg, err := Decode([]byte(payload))
		require.NoError(t, err)
		assert.Len(t, msg.(*SyncRequest).Items, 1)
	})

	t.Run("request sync", func(t *testing.T) {
		msg, err := Decode([]byte(`{"MessageHeader":{"messageType":"RequestSync","deviceId":9}}`))
		require.NoError(t, err)
		assert.IsType(t, &RequestSync{}, msg)
		assert.Equal(t, int64(9), msg.Header().DeviceID)
	})

	t.Run("request sync ack", func(t *testing.T) {
		msg, err := Decode([]byte(`{"MessageHeader":{"messageType":"RequestSyncAck","deviceId":9},"Message":{"TimeStamp":"150"}}`))
		require.NoError(t, err)
		assert.Equal(t, int64(150), msg.(*RequestSyncAck).Timestamp)
	})
}

func TestDecode_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		reason  Reason
	}{
		{
			name:    "not json",
			payload: `{{{`,
			reason:  ReasonMalformedMessage,
		},
		{
			name:    "unknown type",
			payload: `{"MessageHeader":{"messageType":"Sign_Test","deviceId":7}}`,
			reason:  ReasonUnknownMessageType,
		},
		{
			name:    "missing type",
			payload: `{"MessageHeader":{"deviceId":7}}`,
			reason:  ReasonUnknownMessageType,
		},
		{
			name:    "sync without body",
			payload: `{"MessageHeader":{"messageType":"Sync","deviceId":7}}`,
			reason:  ReasonInvalidDataItemSize,
		},
		{
			name:    "sync zero size",
			payload: `{"MessageHeader":{"messageType":"Sync","deviceId":7},"Message":{"DataItemSize":0,"DataItem":[]}}`,
			reason:  ReasonInvalidDataItemSize,
		},
		{
			name:    "sync negative size",
			payload: `{"MessageHeader":{"messageType":"Sync","deviceId":7},"Message":{"DataItemSize":-1}}`,
			reason:  ReasonInvalidDataItemSize,
		},
		{
			name:    "sync missing array",
			payload: `{"MessageHeader":{"messageType":"Sync","deviceId":7},"Message":{"DataItemSize":1}}`,
			reason:  ReasonInvalidDataItem,
		},
		{
			name:    "sync array not an array",
			payload: `{"MessageHeader":{"messageType":"Sync","deviceId":7},"Message":{"DataItemSize":1,"DataItem":"x"}}`,
			reason:  ReasonInvalidDataItem,
		},
		{
			name: "sync declares 3 items but carries 2",
			payload: `{"MessageHeader":{"messageType":"Sync","deviceId":7},"Message":{"DataItemSize":3,"DataItem":[
				{"Key":"a","Value":"1","TimeStamp":"1"},{"Key":"b","Value":"2","TimeStamp":"2"}]}}`,
			reason: ReasonInvalidDataItem,
		},
		{
			name:    "sync item with bad timestamp",
			payload: `{"MessageHeader":{"messageType":"Sync","deviceId":7},"Message":{"DataItemSize":1,"DataItem":[{"Key":"a","TimeStamp":"soon"}]}}`,
			reason:  ReasonInvalidDataItem,
		},
		{
			name:    "sync item without key",
			payload: `{"MessageHeader":{"messageType":"Sync","deviceId":7},"Message":{"DataItemSize":1,"DataItem":[{"Value":"1","TimeStamp":"1"}]}}`,
			reason:  ReasonInvalidDataItem,
		},
		{
			name:    "ack without timestamp",
			payload: `{"MessageHeader":{"messageType":"RequestSyncAck","deviceId":7},"Message":{}}`,
			reason:  ReasonInvalidTimestamp,
		},
		{
			name:    "ack without body",
			payload: `{"MessageHeader":{"messageType":"RequestSyncAck","deviceId":7}}`,
			reason:  ReasonInvalidTimestamp,
		},
		{
			name:    "ack with garbage timestamp",
			payload: `{"MessageHeader":{"messageType":"RequestSyncAck","deviceId":7},"Message":{"TimeStamp":"abc"}}`,
			reason:  ReasonInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode([]byte(tt.payload))
			require.Error(t, err)
			assert.Nil(t, msg)

			var decErr *DecodeError
			require.True(t, errors.As(err, &decErr))
			assert.Equal(t, tt.reason, decErr.Reason)
		})
	}
}

func TestDecodeError_KeepsHeader(t *testing.T) {
	_, err := Decode([]byte(`{"MessageHeader":{"messageType":"Sync","requestId":"abc","deviceId":3},"Message":{"DataItemSize":0}}`))

	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, "abc", decErr.Header.RequestID)
	assert.Equal(t, int64(3), decErr.Header.DeviceID)
	assert.Contains(t, decErr.Error(), string(ReasonInvalidDataItemSize))
}

func TestMarshal_ResponseShape(t *testing.T) {
	data, err := Marshal(Header{MessageType: TypeTimeResponse, RequestID: "r1"}, TimeResponseBody{TimeStamp: "123"})
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "TimeResponse", raw["MessageHeader"]["messageType"])
	assert.Equal(t, "r1", raw["MessageHeader"]["requestId"])
	assert.Equal(t, "123", raw["Message"]["TimeStamp"])
	assert.NotContains(t, raw["Message"], "Error")

	env, err := Unmarshal(data)
	require.NoError(t, err)
	_, rejected := env.Rejection()
	assert.False(t, rejected)
}

func TestEnvelope_Rejection(t *testing.T) {
	data, err := Marshal(Header{MessageType: TypeResponseSync, RequestID: "r1"}, ErrorBody{Error: ReasonUnknownDevice})
	require.NoError(t, err)

	env, err := Unmarshal(data)
	require.NoError(t, err)

	reason, rejected := env.Rejection()
	assert.True(t, rejected)
	assert.Equal(t, ReasonUnknownDevice, reason)
}

func TestMessageType_ResponseType(t *testing.T) {
	assert.Equal(t, TypeTimeResponse, TypeTimeRequest.ResponseType())
	assert.Equal(t, TypeSyncAck, TypeSync.ResponseType())
	assert.Equal(t, TypeResponseSync, TypeRequestSync.ResponseType())
	assert.Equal(t, TypeResponseSyncAck, TypeRequestSyncAck.ResponseType())
	assert.Equal(t, TypeError, MessageType("Sign_Test").ResponseType())
}

func TestWireConversion(t *testing.T) {
	items := []Item{{Key: "a", Value: "1", Timestamp: 100}, {Key: "b", Timestamp: 200, Deleted: true}}

	wire := ToWire(items)
	assert.Equal(t, "100", wire[0].TimeStamp)
	assert.True(t, wire[1].DeleteBit)

	back, err := FromWire(wire)
	require.NoError(t, err)
	assert.Equal(t, items, back)

	_, err = FromWire([]WireItem{{Key: "a", TimeStamp: "x"}})
	assert.Error(t, err)
}
