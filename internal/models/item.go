package models

import (
	"strconv"
	"time"
)

// DeviceID стабильный идентификатор устройства.
type DeviceID int64

// UnboundDevice используется для канала, который ещё не прислал ни одного
// сообщения с идентификатором устройства.
const UnboundDevice DeviceID = -1

// HubDeviceID идентификатор, которым хаб подписывает свои ответы.
const HubDeviceID DeviceID = 0

// String возвращает десятичное представление идентификатора.
func (id DeviceID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseDeviceID разбирает десятичное представление идентификатора.
func ParseDeviceID(s string) (DeviceID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return UnboundDevice, err
	}
	return DeviceID(v), nil
}

// DataItem представляет одну реплицируемую запись хранилища ключ-значение.
// Удаление выражается tombstone-записью (Deleted = true), которая версионируется
// и реплицируется так же, как обычная запись.
type DataItem struct {
	Key       string   `json:"key"`       // Key ключ записи
	Value     string   `json:"value"`     // Value значение (пустое для tombstone)
	Timestamp int64    `json:"timestamp"` // Timestamp логическое время записи (мс)
	Origin    DeviceID `json:"origin"`    // Origin устройство, записавшее эту версию
	Deleted   bool     `json:"deleted"`   // Deleted флаг tombstone
}

// IsNewerThan сравнивает две версии одного ключа по правилу LWW (Last-Write-Wins):
// 1. Сначала сравнивается Timestamp (больший выигрывает)
// 2. При равных Timestamp сравнивается Origin (для детерминизма)
func (i *DataItem) IsNewerThan(other *DataItem) bool {
	if i.Timestamp > other.Timestamp {
		return true
	}
	if i.Timestamp < other.Timestamp {
		return false
	}
	return i.Origin > other.Origin
}

// Clone создает копию записи
func (i *DataItem) Clone() *DataItem {
	c := *i
	return &c
}

// DeviceSession состояние синхронизации устройства на стороне хаба.
// Существует только пока устройство онлайн.
type DeviceSession struct {
	OnlineAt      time.Time // OnlineAt время перехода устройства в онлайн
	LastRequestAt time.Time // LastRequestAt время последнего сообщения от устройства
	Watermark     int64     // Watermark курсор синхронизации, только растет
}

// Advance сдвигает watermark вперед. Меньшее значение игнорируется.
// Возвращает true, если watermark изменился.
func (s *DeviceSession) Advance(ts int64) bool {
	if ts <= s.Watermark {
		return false
	}
	s.Watermark = ts
	return true
}

// WatermarkKey ключ метаданных, под которым хранится watermark устройства.
func WatermarkKey(id DeviceID) string {
	return "WaterMark@" + id.String()
}
