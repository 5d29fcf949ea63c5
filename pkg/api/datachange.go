package api

import (
	"errors"
	"fmt"
	"strconv"
)

// DataChangeTag первый байт бинарного уведомления DataChange
const DataChangeTag byte = 0x01

// ErrInvalidDataChange бинарное сообщение не является корректным DataChange
var ErrInvalidDataChange = errors.New("invalid data change message")

// EncodeDataChange кодирует уведомление об изменении данных устройством deviceID:
// tag | len(id) | id в десятичной записи.
func EncodeDataChange(deviceID int64) []byte {
	id := strconv.FormatInt(deviceID, 10)
	msg := make([]byte, 2+len(id))
	msg[0] = DataChangeTag
	msg[1] = byte(len(id))
	copy(msg[2:], id)
	return msg
}

// DecodeDataChange возвращает идентификатор устройства из уведомления DataChange.
func DecodeDataChange(msg []byte) (int64, error) {
	if len(msg) < 3 {
		return 0, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidDataChange, len(msg))
	}
	if msg[0] != DataChangeTag {
		return 0, fmt.Errorf("%w: unexpected tag 0x%02x", ErrInvalidDataChange, msg[0])
	}
	n := int(msg[1])
	if n != len(msg)-2 {
		return 0, fmt.Errorf("%w: length %d does not match payload %d", ErrInvalidDataChange, n, len(msg)-2)
	}
	id, err := strconv.ParseInt(string(msg[2:]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDataChange, err)
	}
	return id, nil
}
