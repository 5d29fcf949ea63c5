package crdt

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/synchub/internal/models"
)

func createTestItem(key, value string, origin models.DeviceID, ts int64, deleted bool) *models.DataItem {
	return &models.DataItem{
		Key:       key,
		Value:     value,
		Timestamp: ts,
		Origin:    origin,
		Deleted:   deleted,
	}
}

// versions возвращает текущие версии всех ключей, включая tombstone
func versions(set *LWWSet) map[string]*models.DataItem {
	result := make(map[string]*models.DataItem)
	for _, item := range set.Range(math.MinInt64, math.MaxInt64, models.UnboundDevice) {
		result[item.Key] = item
	}
	return result
}

func TestLWWSet_Add_UpdateNewerItem(t *testing.T) {
	set := NewLWWSet()

	// Добавляем начальную запись
	added := set.Add(createTestItem("a", "1", 7, 10, false))
	assert.True(t, added, "First add should succeed")
	assert.Len(t, versions(set), 1)

	// Обновляем более новой версией
	updated := set.Add(createTestItem("a", "2", 7, 20, false))
	assert.True(t, updated, "Update with newer timestamp should succeed")
	require.Len(t, versions(set), 1, "Key should keep a single version")

	retrieved := versions(set)["a"]
	assert.Equal(t, "2", retrieved.Value)
	assert.Equal(t, int64(20), retrieved.Timestamp)
}

func TestLWWSet_Add_IgnoreOlderItem(t *testing.T) {
	set := NewLWWSet()

	set.Add(createTestItem("a", "new", 7, 20, false))
	updated := set.Add(createTestItem("a", "old", 9, 10, false))

	assert.False(t, updated, "Update with older timestamp should be ignored")

	retrieved := versions(set)["a"]
	require.NotNil(t, retrieved)
	assert.Equal(t, "new", retrieved.Value)
}

func TestLWWSet_Add_ConflictResolution_SameTimestamp(t *testing.T) {
	set := NewLWWSet()

	set.Add(createTestItem("a", "from 7", 7, 10, false))
	updated := set.Add(createTestItem("a", "from 9", 9, 10, false))
	assert.True(t, updated, "Item with greater origin should win")

	// Обратный порядок должен привести к тому же результату
	other := NewLWWSet()
	other.Add(createTestItem("a", "from 9", 9, 10, false))
	assert.False(t, other.Add(createTestItem("a", "from 7", 7, 10, false)))

	assert.Equal(t, versions(set), versions(other))
}

func TestLWWSet_Remove(t *testing.T) {
	set := NewLWWSet()

	set.Add(createTestItem("a", "1", 7, 10, false))

	removed := set.Remove(createTestItem("a", "ignored", 7, 20, false))
	assert.True(t, removed, "Remove should succeed")

	all := versions(set)
	require.Len(t, all, 1, "Tombstone should replace the item")
	tomb := all["a"]
	assert.True(t, tomb.Deleted)
	assert.Empty(t, tomb.Value)
	assert.Equal(t, int64(20), tomb.Timestamp)
}

func TestLWWSet_Remove_IgnoreOlderTimestamp(t *testing.T) {
	set := NewLWWSet()

	set.Add(createTestItem("a", "1", 7, 20, false))
	removed := set.Remove(createTestItem("a", "", 7, 10, false))

	assert.False(t, removed, "Remove with older timestamp should be ignored")
	assert.False(t, versions(set)["a"].Deleted, "Item should still exist")
}

func TestLWWSet_Range_ReturnsCopies(t *testing.T) {
	set := NewLWWSet()
	set.Add(createTestItem("a", "1", 7, 10, false))

	set.Range(0, 100, models.UnboundDevice)[0].Value = "modified"

	assert.Equal(t, "1", versions(set)["a"].Value, "Should return a copy")
}

func TestLWWSet_Range(t *testing.T) {
	set := NewLWWSet()
	set.Add(createTestItem("a", "1", 7, 100, false))
	set.Add(createTestItem("b", "", 7, 150, true))
	set.Add(createTestItem("c", "3", 9, 200, false))
	set.Add(createTestItem("d", "4", 7, 300, false))

	tests := []struct {
		name    string
		want    []string
		since   int64
		until   int64
		exclude models.DeviceID
	}{
		{name: "everything", since: 0, until: 1000, exclude: models.UnboundDevice, want: []string{"a", "b", "c", "d"}},
		{name: "lower bound is exclusive", since: 100, until: 1000, exclude: models.UnboundDevice, want: []string{"b", "c", "d"}},
		{name: "upper bound is inclusive", since: 0, until: 200, exclude: models.UnboundDevice, want: []string{"a", "b", "c"}},
		{name: "tombstone inside window", since: 149, until: 150, exclude: models.UnboundDevice, want: []string{"b"}},
		{name: "own writes excluded", since: 0, until: 1000, exclude: 7, want: []string{"c"}},
		{name: "empty window", since: 300, until: 1000, exclude: models.UnboundDevice, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := set.Range(tt.since, tt.until, tt.exclude)
			keys := make([]string, 0, len(got))
			for _, it := range got {
				keys = append(keys, it.Key)
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestLWWSet_MaxTimestamp(t *testing.T) {
	set := NewLWWSet()
	assert.Equal(t, int64(0), set.MaxTimestamp())

	set.Add(createTestItem("a", "1", 7, 100, false))
	set.Remove(createTestItem("b", "", 7, 250, false))
	assert.Equal(t, int64(250), set.MaxTimestamp())
}

func TestLWWSet_ConcurrentAdd(t *testing.T) {
	set := NewLWWSet()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(ts int64) {
			defer wg.Done()
			set.Add(createTestItem("a", "v", 7, ts, false))
		}(int64(i))
	}
	wg.Wait()

	item := versions(set)["a"]
	require.NotNil(t, item)
	assert.Equal(t, int64(50), item.Timestamp, "Highest timestamp must win regardless of order")
}
