package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MessageType тип сообщения протокола синхронизации
type MessageType string

// Запросы устройств
const (
	TypeTimeRequest    MessageType = "TimeRequest"
	TypeSync           MessageType = "Sync"
	TypeRequestSync    MessageType = "RequestSync"
	TypeRequestSyncAck MessageType = "RequestSyncAck"
)

// Ответы хаба
const (
	TypeTimeResponse    MessageType = "TimeResponse"
	TypeSyncAck         MessageType = "SyncAck"
	TypeResponseSync    MessageType = "ResponseSync"
	TypeResponseSyncAck MessageType = "ResponseSyncAck"
	TypeError           MessageType = "Error"
)

// ResponseType возвращает тип ответа на запрос данного типа.
// Для неизвестных типов возвращает TypeError.
func (t MessageType) ResponseType() MessageType {
	switch t {
	case TypeTimeRequest:
		return TypeTimeResponse
	case TypeSync:
		return TypeSyncAck
	case TypeRequestSync:
		return TypeResponseSync
	case TypeRequestSyncAck:
		return TypeResponseSyncAck
	default:
		return TypeError
	}
}

// Header заголовок конверта
type Header struct {
	MessageType MessageType `json:"messageType"`
	RequestID   string      `json:"requestId"`
	DeviceID    int64       `json:"deviceId"`
}

// Envelope конверт текстового сообщения
type Envelope struct {
	Body   json.RawMessage `json:"Message,omitempty"`
	Header Header          `json:"MessageHeader"`
}

// WireItem запись данных в формате протокола
type WireItem struct {
	Key       string `json:"Key"`
	Value     string `json:"Value"`
	TimeStamp string `json:"TimeStamp"`
	DeleteBit bool   `json:"DeleteBit"`
}

// Item запись данных после разбора
type Item struct {
	Key       string
	Value     string
	Timestamp int64
	Deleted   bool
}

// TimeResponseBody тело TimeResponse
type TimeResponseBody struct {
	TimeStamp string `json:"TimeStamp"`
}

// SyncBody тело запроса Sync
type SyncBody struct {
	DataItem     []WireItem `json:"DataItem"`
	DataItemSize int        `json:"DataItemSize"`
}

// SyncAckBody тело SyncAck
type SyncAckBody struct {
	TimeStamp string `json:"TimeStamp"`
}

// ResponseSyncBody тело ResponseSync
type ResponseSyncBody struct {
	DataItem     []WireItem `json:"DataItem"`
	DataItemSize int        `json:"DataItemSize"`
}

// RequestSyncAckBody тело RequestSyncAck
type RequestSyncAckBody struct {
	TimeStamp string `json:"TimeStamp"`
}

// ResponseSyncAckBody тело ResponseSyncAck
type ResponseSyncAckBody struct {
	TimeStamp string `json:"TimeStamp"`
	Return    bool   `json:"Return"`
}

// ErrorBody тело отказа
type ErrorBody struct {
	Error  Reason `json:"Error"`
	Return bool   `json:"Return"`
}

// Marshal собирает конверт из заголовка и тела.
func Marshal(h Header, body any) ([]byte, error) {
	env := Envelope{Header: h}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		env.Body = raw
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return data, nil
}

// Unmarshal разбирает конверт без проверки тела.
// Используется на стороне устройства для ответов хаба.
func Unmarshal(payload []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	return &env, nil
}

// DecodeBody разбирает тело конверта в v.
func (e *Envelope) DecodeBody(v any) error {
	if len(e.Body) == 0 {
		return fmt.Errorf("empty message body")
	}
	if err := json.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("failed to unmarshal body: %w", err)
	}
	return nil
}

// Rejection возвращает код отказа, если хаб отклонил запрос.
func (e *Envelope) Rejection() (Reason, bool) {
	if len(e.Body) == 0 {
		return "", e.Header.MessageType == TypeError
	}
	var body struct {
		Error Reason `json:"Error"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return "", e.Header.MessageType == TypeError
	}
	if body.Error != "" {
		return body.Error, true
	}
	return "", e.Header.MessageType == TypeError
}

// FormatTimestamp форматирует timestamp так, как он передается по сети.
func FormatTimestamp(ts int64) string {
	return strconv.FormatInt(ts, 10)
}

// ParseTimestamp разбирает timestamp из сетевого представления.
func ParseTimestamp(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// ToWire конвертирует записи в сетевой формат.
func ToWire(items []Item) []WireItem {
	out := make([]WireItem, 0, len(items))
	for _, it := range items {
		out = append(out, WireItem{
			Key:       it.Key,
			Value:     it.Value,
			TimeStamp: FormatTimestamp(it.Timestamp),
			DeleteBit: it.Deleted,
		})
	}
	return out
}

// FromWire конвертирует записи из сетевого формата.
func FromWire(items []WireItem) ([]Item, error) {
	out := make([]Item, 0, len(items))
	for i, w := range items {
		it, err := w.parse()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, it)
	}
	return out, nil
}

func (w WireItem) parse() (Item, error) {
	if w.Key == "" {
		return Item{}, fmt.Errorf("empty key")
	}
	ts, err := ParseTimestamp(w.TimeStamp)
	if err != nil {
		return Item{}, fmt.Errorf("invalid timestamp %q: %w", w.TimeStamp, err)
	}
	return Item{Key: w.Key, Value: w.Value, Timestamp: ts, Deleted: w.DeleteBit}, nil
}
