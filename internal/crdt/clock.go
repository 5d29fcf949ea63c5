package crdt

import (
	"sync"
	"time"
)

// Clock логические часы устройства для временных меток записей.
// Основа - физическое время в миллисекундах, скорректированное на смещение
// относительно часов хаба (TimeRequest). Как и часы Лампорта, значения строго
// монотонны и никогда не меньше уже наблюдавшихся удаленных меток.
type Clock struct {
	now    func() time.Time
	last   int64 // последняя выданная или наблюдавшаяся метка
	offset int64 // смещение относительно хаба, мс
	mu     sync.Mutex
}

// NewClock создает часы на основе системного времени.
func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource создает часы с заданным источником времени.
// Используется для тестирования.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Tick возвращает новую метку для локальной записи.
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.now().UnixMilli() + c.offset
	if ts <= c.last {
		ts = c.last + 1
	}
	c.last = ts
	return ts
}

// Observe учитывает метку, полученную от другого узла,
// чтобы следующая локальная запись была новее нее.
func (c *Clock) Observe(remote int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if remote > c.last {
		c.last = remote
	}
}

// SyncWithHub вычисляет смещение по времени хаба hubMillis,
// полученному за время rtt.
func (c *Clock) SyncWithHub(hubMillis int64, rtt time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	local := c.now().UnixMilli() - rtt.Milliseconds()/2
	c.offset = hubMillis - local
}

// Offset возвращает текущее смещение относительно хаба.
func (c *Clock) Offset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return time.Duration(c.offset) * time.Millisecond
}

// SetOffset восстанавливает сохраненное смещение относительно хаба.
func (c *Clock) SetOffset(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.offset = d.Milliseconds()
}

// GetTimestamp возвращает последнюю выданную или наблюдавшуюся метку.
func (c *Clock) GetTimestamp() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}

// SetTimestamp восстанавливает состояние часов (например, после перезапуска).
func (c *Clock) SetTimestamp(ts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = ts
}
