package device

import (
	"errors"
	"fmt"

	"github.com/iudanet/synchub/pkg/api"
)

// ErrClosed соединение с хабом закрыто
var ErrClosed = errors.New("connection closed")

// RejectedError хаб отклонил запрос
type RejectedError struct {
	Type   api.MessageType
	Reason api.Reason
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("hub rejected %s: %s", e.Type, e.Reason)
}
