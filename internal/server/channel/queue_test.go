package channel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/synchub/internal/frame"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	for i := 1; i <= 3; i++ {
		require.True(t, q.Push(Message{DeviceID: 7, Kind: frame.KindText, Payload: []byte{byte(i)}}))
	}
	assert.Equal(t, 3, q.Len())

	for i := 1; i <= 3; i++ {
		msg, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, []byte{byte(i)}, msg.Payload)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_PopBlocksUntilPush(t *testing.T) {
	q := NewQueue()
	got := make(chan Message, 1)

	go func() {
		msg, ok := q.Pop()
		if ok {
			got <- msg
		}
	}()

	select {
	case <-got:
		t.Fatal("Pop returned before Push")
	case <-time.After(50 * time.Millisecond):
	}

	q.Push(Message{DeviceID: 9, Payload: []byte("x")})

	select {
	case msg := <-got:
		assert.Equal(t, []byte("x"), msg.Payload)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake up after Push")
	}
}

func TestQueue_CloseWakesConsumer(t *testing.T) {
	q := NewQueue()
	done := make(chan bool, 1)

	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Pop did not return after Close")
	}

	assert.False(t, q.Push(Message{DeviceID: 1, Payload: []byte("late")}))
	q.Close()
}
