package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Reason код причины отказа
type Reason string

const (
	ReasonUnknownMessageType  Reason = "unknown message type"
	ReasonInvalidDataItemSize Reason = "invalid dataitemsize"
	ReasonInvalidDataItem     Reason = "invalid dataitem"
	ReasonUnknownDevice       Reason = "unknown device"
	ReasonInvalidTimestamp    Reason = "invalid timestamp"
	ReasonMalformedMessage    Reason = "malformed message"
	ReasonInternal            Reason = "internal error"
)

// DecodeError ошибка разбора или валидации запроса.
// Header заполнен настолько, насколько удалось разобрать конверт.
type DecodeError struct {
	Err    error
	Header Header
	Reason Reason
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Message запрос устройства после разбора и валидации.
// Реализации: *TimeRequest, *SyncRequest, *RequestSync, *RequestSyncAck.
type Message interface {
	Header() Header
	isMessage()
}

// TimeRequest запрос времени хаба
type TimeRequest struct {
	Head Header
}

// SyncRequest отправка изменений устройства на хаб (push)
type SyncRequest struct {
	Head  Header
	Items []Item
}

// RequestSync запрос несинхронизированных данных (pull)
type RequestSync struct {
	Head Header
}

// RequestSyncAck подтверждение получения данных до Timestamp
type RequestSyncAck struct {
	Head      Header
	Timestamp int64
}

func (m *TimeRequest) Header() Header    { return m.Head }
func (m *SyncRequest) Header() Header    { return m.Head }
func (m *RequestSync) Header() Header    { return m.Head }
func (m *RequestSyncAck) Header() Header { return m.Head }

func (*TimeRequest) isMessage()    {}
func (*SyncRequest) isMessage()    {}
func (*RequestSync) isMessage()    {}
func (*RequestSyncAck) isMessage() {}

// Decode разбирает текстовый кадр в типизированный запрос.
// Любая ошибка возвращается как *DecodeError с кодом причины.
func Decode(payload []byte) (Message, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, &DecodeError{Reason: ReasonMalformedMessage, Err: err}
	}
	h := env.Header

	switch h.MessageType {
	case TypeTimeRequest:
		return &TimeRequest{Head: h}, nil
	case TypeSync:
		return decodeSync(h, env.Body)
	case TypeRequestSync:
		return &RequestSync{Head: h}, nil
	case TypeRequestSyncAck:
		return decodeRequestSyncAck(h, env.Body)
	default:
		return nil, &DecodeError{
			Header: h,
			Reason: ReasonUnknownMessageType,
			Err:    fmt.Errorf("message type %q", h.MessageType),
		}
	}
}

type syncBodyIn struct {
	DataItemSize json.RawMessage `json:"DataItemSize"`
	DataItem     json.RawMessage `json:"DataItem"`
}

type wireItemIn struct {
	Key       string          `json:"Key"`
	Value     string          `json:"Value"`
	TimeStamp json.RawMessage `json:"TimeStamp"`
	DeleteBit bool            `json:"DeleteBit"`
}

func decodeSync(h Header, body json.RawMessage) (Message, error) {
	var in syncBodyIn
	if len(body) > 0 {
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, &DecodeError{Header: h, Reason: ReasonInvalidDataItem, Err: err}
		}
	}

	size, ok := lenientInt(in.DataItemSize)
	if !ok || size <= 0 {
		return nil, &DecodeError{
			Header: h,
			Reason: ReasonInvalidDataItemSize,
			Err:    fmt.Errorf("DataItemSize %s", string(in.DataItemSize)),
		}
	}

	if isNull(in.DataItem) {
		return nil, &DecodeError{Header: h, Reason: ReasonInvalidDataItem, Err: errors.New("DataItem is missing")}
	}
	var raw []wireItemIn
	if err := json.Unmarshal(in.DataItem, &raw); err != nil {
		return nil, &DecodeError{Header: h, Reason: ReasonInvalidDataItem, Err: err}
	}
	if int64(len(raw)) != size {
		return nil, &DecodeError{
			Header: h,
			Reason: ReasonInvalidDataItem,
			Err:    fmt.Errorf("DataItemSize is %d but %d items present", size, len(raw)),
		}
	}

	items := make([]Item, 0, len(raw))
	for i, w := range raw {
		if w.Key == "" {
			return nil, &DecodeError{Header: h, Reason: ReasonInvalidDataItem, Err: fmt.Errorf("item %d: empty key", i)}
		}
		ts, ok := lenientInt(w.TimeStamp)
		if !ok {
			return nil, &DecodeError{
				Header: h,
				Reason: ReasonInvalidDataItem,
				Err:    fmt.Errorf("item %d: invalid TimeStamp %s", i, string(w.TimeStamp)),
			}
		}
		items = append(items, Item{Key: w.Key, Value: w.Value, Timestamp: ts, Deleted: w.DeleteBit})
	}

	return &SyncRequest{Head: h, Items: items}, nil
}

func decodeRequestSyncAck(h Header, body json.RawMessage) (Message, error) {
	var in struct {
		TimeStamp json.RawMessage `json:"TimeStamp"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, &DecodeError{Header: h, Reason: ReasonInvalidTimestamp, Err: err}
		}
	}
	ts, ok := lenientInt(in.TimeStamp)
	if !ok {
		return nil, &DecodeError{
			Header: h,
			Reason: ReasonInvalidTimestamp,
			Err:    fmt.Errorf("TimeStamp %s", string(in.TimeStamp)),
		}
	}
	return &RequestSyncAck{Head: h, Timestamp: ts}, nil
}

// lenientInt принимает число как JSON number или как строку с числом.
func lenientInt(raw json.RawMessage) (int64, bool) {
	if isNull(raw) {
		return 0, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		v, err := strconv.ParseInt(s, 10, 64)
		return v, err == nil
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
