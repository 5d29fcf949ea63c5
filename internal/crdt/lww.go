package crdt

import (
	"sort"
	"sync"

	"github.com/iudanet/synchub/internal/models"
)

// LWWSet представляет Last-Write-Wins Element Set по ключам DataItem.
// Для каждого ключа хранится единственная версия с наибольшим (Timestamp, Origin).
// Удаленные записи остаются в set как tombstone.
type LWWSet struct {
	elements map[string]*models.DataItem // map[key]item
	mu       sync.RWMutex
}

// NewLWWSet создает новый экземпляр LWW-Element-Set.
func NewLWWSet() *LWWSet {
	return &LWWSet{
		elements: make(map[string]*models.DataItem),
	}
}

// Add добавляет новую версию ключа, если она новее существующей.
// Возвращает true, если элемент был добавлен/обновлен.
func (s *LWWSet) Add(item *models.DataItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(item)
}

// Remove записывает tombstone для ключа.
// Возвращает true, если tombstone победил существующую версию.
func (s *LWWSet) Remove(item *models.DataItem) bool {
	tomb := item.Clone()
	tomb.Deleted = true
	tomb.Value = ""

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(tomb)
}

func (s *LWWSet) apply(item *models.DataItem) bool {
	existing, exists := s.elements[item.Key]
	if exists && !item.IsNewerThan(existing) {
		return false
	}
	s.elements[item.Key] = item.Clone()
	return true
}

// Range возвращает все версии (включая tombstone) с since < Timestamp <= until,
// записанные не устройством exclude. Результат упорядочен по Timestamp.
func (s *LWWSet) Range(since, until int64, exclude models.DeviceID) []*models.DataItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.DataItem, 0)
	for _, item := range s.elements {
		if item.Timestamp <= since || item.Timestamp > until || item.Origin == exclude {
			continue
		}
		result = append(result, item.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp != result[j].Timestamp {
			return result[i].Timestamp < result[j].Timestamp
		}
		return result[i].Key < result[j].Key
	})

	return result
}

// MaxTimestamp возвращает наибольший Timestamp среди всех версий (0 для пустого set).
func (s *LWWSet) MaxTimestamp() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var maxTS int64
	for _, item := range s.elements {
		if item.Timestamp > maxTS {
			maxTS = item.Timestamp
		}
	}
	return maxTS
}
