// Package frame реализует кадрирование сообщений поверх TCP-соединения.
//
// Кадр: kind (1 байт) | длина payload (uint32, big endian) | payload.
package frame

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Kind тип кадра
type Kind byte

const (
	// KindText JSON-конверт протокола синхронизации
	KindText Kind = 0x01
	// KindBinary внеполосное бинарное сообщение (DataChange)
	KindBinary Kind = 0x02
	// KindHeartbeat пустой кадр для проверки живости соединения
	KindHeartbeat Kind = 0x03
)

// DefaultMaxSize максимальный размер payload по умолчанию
const DefaultMaxSize = 1 << 20

const headerSize = 5

var (
	// ErrFrameTooLarge payload превышает допустимый размер
	ErrFrameTooLarge = errors.New("frame too large")
	// ErrEmptyFrame текстовый или бинарный кадр без payload
	ErrEmptyFrame = errors.New("empty frame")
	// ErrUnknownKind неизвестный тип кадра
	ErrUnknownKind = errors.New("unknown frame kind")
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return fmt.Sprintf("kind(0x%02x)", byte(k))
	}
}

func (k Kind) valid() bool {
	return k == KindText || k == KindBinary || k == KindHeartbeat
}

// Write записывает один кадр в w.
func Write(w io.Writer, kind Kind, payload []byte, maxSize int) error {
	if err := check(kind, len(payload), maxSize); err != nil {
		return err
	}
	var header [headerSize]byte
	header[0] = byte(kind)
	binary.BigEndian.PutUint32(header[1:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// Read читает один кадр из r.
func Read(r *bufio.Reader, maxSize int) (Kind, []byte, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, err
	}
	kind := Kind(header[0])
	size := binary.BigEndian.Uint32(header[1:])
	if err := check(kind, int(size), maxSize); err != nil {
		return kind, nil, err
	}
	if size == 0 {
		return kind, nil, nil
	}
	payload := make([]byte, int(size))
	if _, err := io.ReadFull(r, payload); err != nil {
		return kind, nil, err
	}
	return kind, payload, nil
}

func check(kind Kind, size, maxSize int) error {
	if !kind.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if size > maxSize {
		return fmt.Errorf("%w: %d", ErrFrameTooLarge, size)
	}
	if size == 0 && kind != KindHeartbeat {
		return fmt.Errorf("%w: %s", ErrEmptyFrame, kind)
	}
	return nil
}
