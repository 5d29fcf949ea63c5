package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/synchub/internal/crdt"
	"github.com/iudanet/synchub/internal/device/storage"
	"github.com/iudanet/synchub/internal/models"
)

// newMemoryReplica создает мок хранилища поверх map с LWW-семантикой
func newMemoryReplica() (*storage.ReplicaStorageMock, map[string]*models.DataItem) {
	items := make(map[string]*models.DataItem)
	mock := &storage.ReplicaStorageMock{
		SaveItemFunc: func(ctx context.Context, item *models.DataItem) (bool, error) {
			if cur, ok := items[item.Key]; ok && !item.IsNewerThan(cur) {
				return false, nil
			}
			items[item.Key] = item.Clone()
			return true, nil
		},
		GetItemFunc: func(ctx context.Context, key string) (*models.DataItem, error) {
			if it, ok := items[key]; ok {
				return it.Clone(), nil
			}
			return nil, storage.ErrItemNotFound
		},
		GetActiveItemsFunc: func(ctx context.Context) ([]*models.DataItem, error) {
			var out []*models.DataItem
			for _, it := range items {
				if !it.Deleted {
					out = append(out, it.Clone())
				}
			}
			return out, nil
		},
	}
	return mock, items
}

func testClock() *crdt.Clock {
	return crdt.NewClockWithSource(func() time.Time { return time.UnixMilli(1000) })
}

func TestService_PutGet(t *testing.T) {
	ctx := context.Background()
	replica, _ := newMemoryReplica()
	svc := NewService(replica, testClock(), 7)

	item, err := svc.Put(ctx, "k", "v1")
	require.NoError(t, err)
	assert.Equal(t, &models.DataItem{Key: "k", Value: "v1", Timestamp: 1000, Origin: 7}, item)

	item, err = svc.Put(ctx, "k", "v2")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), item.Timestamp)

	got, err := svc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Value)
}

func TestService_Put_EmptyKey(t *testing.T) {
	replica, _ := newMemoryReplica()
	svc := NewService(replica, testClock(), 7)

	_, err := svc.Put(context.Background(), "", "v")
	assert.ErrorIs(t, err, storage.ErrEmptyKey)
	assert.Empty(t, replica.SaveItemCalls())
}

func TestService_Put_LostToNewerVersion(t *testing.T) {
	ctx := context.Background()
	replica, items := newMemoryReplica()
	items["k"] = &models.DataItem{Key: "k", Value: "remote", Timestamp: 5000, Origin: 9}
	svc := NewService(replica, testClock(), 7)

	_, err := svc.Put(ctx, "k", "local")
	assert.Error(t, err)
	assert.Equal(t, "remote", items["k"].Value)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	replica, items := newMemoryReplica()
	svc := NewService(replica, testClock(), 7)

	_, err := svc.Put(ctx, "k", "v")
	require.NoError(t, err)

	tombstone, err := svc.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, tombstone.Deleted)
	assert.Equal(t, int64(1001), tombstone.Timestamp)
	assert.True(t, items["k"].Deleted)
	assert.Empty(t, items["k"].Value)

	_, err = svc.Get(ctx, "k")
	assert.True(t, IsNotFound(err))

	_, err = svc.Delete(ctx, "k")
	assert.True(t, IsNotFound(err))

	_, err = svc.Delete(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	replica, _ := newMemoryReplica()
	svc := NewService(replica, testClock(), 7)

	_, err := svc.Put(ctx, "a", "1")
	require.NoError(t, err)
	_, err = svc.Put(ctx, "b", "2")
	require.NoError(t, err)
	_, err = svc.Delete(ctx, "a")
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Key)
}

func TestService_StorageError(t *testing.T) {
	boom := errors.New("boom")
	replica := &storage.ReplicaStorageMock{
		SaveItemFunc: func(context.Context, *models.DataItem) (bool, error) { return false, boom },
		GetActiveItemsFunc: func(context.Context) ([]*models.DataItem, error) {
			return nil, boom
		},
	}
	svc := NewService(replica, testClock(), 7)

	_, err := svc.Put(context.Background(), "k", "v")
	assert.ErrorIs(t, err, boom)

	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, boom)
}
