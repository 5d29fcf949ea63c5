package crdt

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedSource(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestClock_Tick_UsesPhysicalTime(t *testing.T) {
	clock := NewClockWithSource(fixedSource(1000))

	assert.Equal(t, int64(1000), clock.Tick())
	// Время не изменилось - метка все равно растет
	assert.Equal(t, int64(1001), clock.Tick())
	assert.Equal(t, int64(1002), clock.Tick())
	assert.Equal(t, int64(1002), clock.GetTimestamp())
}

func TestClock_Observe(t *testing.T) {
	tests := []struct {
		name     string
		local    int64
		remote   int64
		expected int64
	}{
		{name: "remote ahead", local: 1000, remote: 5000, expected: 5001},
		{name: "remote behind", local: 1000, remote: 10, expected: 1001},
		{name: "remote equal", local: 1000, remote: 1000, expected: 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewClockWithSource(fixedSource(0))
			clock.SetTimestamp(tt.local)

			clock.Observe(tt.remote)
			assert.Equal(t, tt.expected, clock.Tick())
		})
	}
}

func TestClock_SyncWithHub(t *testing.T) {
	clock := NewClockWithSource(fixedSource(10_000))

	// Хаб опережает на 5 секунд, ответ пришел за 200 мс
	clock.SyncWithHub(15_000-100, 200*time.Millisecond)
	assert.Equal(t, 5*time.Second-100*time.Millisecond+100*time.Millisecond, clock.Offset())

	assert.Equal(t, int64(15_000), clock.Tick())
}

func TestClock_SetOffset(t *testing.T) {
	clock := NewClockWithSource(fixedSource(10_000))
	clock.SetOffset(-2 * time.Second)

	assert.Equal(t, -2*time.Second, clock.Offset())
	assert.Equal(t, int64(8_000), clock.Tick())
}

func TestClock_Tick_Monotonicity_Concurrent(t *testing.T) {
	clock := NewClock()

	const goroutines = 10
	const ticks = 100

	results := make(chan int64, goroutines*ticks)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < ticks; j++ {
				results <- clock.Tick()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, goroutines*ticks)
	for ts := range results {
		assert.False(t, seen[ts], "Tick must never return the same value twice")
		seen[ts] = true
	}
	assert.Len(t, seen, goroutines*ticks)
}
