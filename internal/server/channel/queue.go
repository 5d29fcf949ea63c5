package channel

import (
	"sync"

	"github.com/iudanet/synchub/internal/frame"
	"github.com/iudanet/synchub/internal/models"
)

// Message единица асинхронного ввода-вывода между сокетами и движком протокола
type Message struct {
	Payload  []byte
	DeviceID models.DeviceID
	Kind     frame.Kind
}

// Queue неограниченная FIFO-очередь с блокирующим Pop.
// Рассчитана на одного потребителя и любое число производителей.
type Queue struct {
	cond   *sync.Cond
	items  []Message
	mu     sync.Mutex
	closed bool
}

// NewQueue создает пустую очередь
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push добавляет сообщение в конец очереди.
// Возвращает false, если очередь закрыта.
func (q *Queue) Push(msg Message) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, msg)
	q.cond.Signal()
	return true
}

// Pop ждет появления сообщения и извлекает его из начала очереди.
// Возвращает false, когда очередь закрыта; оставшиеся сообщения отбрасываются.
func (q *Queue) Pop() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return Message{}, false
	}

	msg := q.items[0]
	q.items[0] = Message{}
	q.items = q.items[1:]
	return msg, true
}

// Close закрывает очередь и будит ожидающего потребителя. Идемпотентен.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.items = nil
	q.cond.Broadcast()
}

// Len возвращает число сообщений в очереди
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
