package channel

import "errors"

var (
	// ErrChannelClosed канал закрыт, отправка невозможна
	ErrChannelClosed = errors.New("channel closed")

	// ErrSendQueueFull очередь отправки канала переполнена
	ErrSendQueueFull = errors.New("send queue full")

	// ErrRegistryStopped реестр остановлен или еще не запущен
	ErrRegistryStopped = errors.New("registry stopped")

	// ErrAlreadyStarted повторный запуск реестра
	ErrAlreadyStarted = errors.New("registry already started")
)
