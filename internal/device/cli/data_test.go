package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/synchub/internal/device/data"
	"github.com/iudanet/synchub/internal/device/iocli"
	"github.com/iudanet/synchub/internal/device/storage"
	"github.com/iudanet/synchub/internal/models"
)

func newTestCli(dataService data.Service) (*Cli, *bytes.Buffer) {
	var out bytes.Buffer
	return New(iocli.NewWriter(&out), dataService, nil), &out
}

func TestCli_runPut(t *testing.T) {
	mockData := &data.ServiceMock{
		PutFunc: func(ctx context.Context, key, value string) (*models.DataItem, error) {
			return &models.DataItem{Key: key, Value: value, Timestamp: 1234, Origin: 7}, nil
		},
	}
	cli, out := newTestCli(mockData)

	require.NoError(t, cli.runPut(context.Background(), "k", "v"))
	assert.Equal(t, "Saved k at 1234\n", out.String())

	require.Len(t, mockData.PutCalls(), 1)
	assert.Equal(t, "v", mockData.PutCalls()[0].Value)
}

func TestCli_runDelete_NotFound(t *testing.T) {
	mockData := &data.ServiceMock{
		DeleteFunc: func(ctx context.Context, key string) (*models.DataItem, error) {
			return nil, fmt.Errorf("failed to get item: %w", storage.ErrItemNotFound)
		},
	}
	cli, _ := newTestCli(mockData)

	err := cli.runDelete(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key not found: missing")
}

func TestCli_runGet(t *testing.T) {
	tests := []struct {
		name     string
		item     *models.DataItem
		contains []string
	}{
		{
			name:     "written by another device",
			item:     &models.DataItem{Key: "k", Value: "v", Timestamp: 0, Origin: 7},
			contains: []string{"Key:       k", "Value:     v", "1970-01-01T00:00:00Z", "Origin:    7"},
		},
		{
			name:     "pulled from hub",
			item:     &models.DataItem{Key: "k", Value: "v", Timestamp: 1500, Origin: models.HubDeviceID},
			contains: []string{"Timestamp: 1500", "Origin:    hub"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockData := &data.ServiceMock{
				GetFunc: func(ctx context.Context, key string) (*models.DataItem, error) {
					return tt.item, nil
				},
			}
			cli, out := newTestCli(mockData)

			require.NoError(t, cli.runGet(context.Background(), "k"))
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestCli_runGet_Errors(t *testing.T) {
	boom := errors.New("disk failure")
	mockData := &data.ServiceMock{
		GetFunc: func(ctx context.Context, key string) (*models.DataItem, error) {
			if key == "gone" {
				return nil, storage.ErrItemNotFound
			}
			return nil, boom
		},
	}
	cli, _ := newTestCli(mockData)

	err := cli.runGet(context.Background(), "gone")
	assert.EqualError(t, err, "key not found: gone")

	err = cli.runGet(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
}

func TestCli_runList_EmptyList(t *testing.T) {
	mockIO := &iocli.IOMock{
		PrintlnFunc: func(a ...any) {},
		PrintfFunc:  func(format string, a ...any) {},
	}
	mockData := &data.ServiceMock{
		ListFunc: func(ctx context.Context) ([]*models.DataItem, error) {
			return []*models.DataItem{}, nil
		},
	}
	cli := New(mockIO, mockData, nil)

	require.NoError(t, cli.runList(context.Background()))

	printlnCalls := mockIO.PrintlnCalls()
	require.Len(t, printlnCalls, 3)
	assert.Equal(t, "=== Items ===", printlnCalls[0].A[0])
	assert.Equal(t, "No items found.", printlnCalls[2].A[0])
	assert.Empty(t, mockIO.PrintfCalls())
}

func TestCli_runList_SortedByKey(t *testing.T) {
	mockData := &data.ServiceMock{
		ListFunc: func(ctx context.Context) ([]*models.DataItem, error) {
			return []*models.DataItem{
				{Key: "b", Value: "2"},
				{Key: "a", Value: "1"},
			}, nil
		},
	}
	cli, out := newTestCli(mockData)

	require.NoError(t, cli.runList(context.Background()))
	assert.Equal(t, "=== Items ===\n\na = 1\nb = 2\n\nTotal: 2\n", out.String())
}
