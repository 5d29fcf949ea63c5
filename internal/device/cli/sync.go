package cli

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/synchub/internal/models"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")

	pending, err := c.syncService.GetPendingSyncCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending items: %w", err)
	}
	c.io.Printf("Pending local changes: %d\n", pending)

	result, err := c.syncService.Sync(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	return templates.ExecuteTemplate(c.io, "sync", result)
}

func (c *Cli) runTime(ctx context.Context) error {
	offset, err := c.syncService.SyncClock(ctx)
	if err != nil {
		return fmt.Errorf("failed to synchronize clock: %w", err)
	}

	c.io.Printf("Clock offset to hub: %s\n", offset)
	return nil
}

// runWatch синхронизируется по уведомлениям до отмены ctx или разрыва
// соединения; раз в clockInterval корректирует часы по хабу.
func (c *Cli) runWatch(ctx context.Context, notifications <-chan models.DeviceID, done <-chan struct{}, clockInterval time.Duration) error {
	c.io.Println("Watching for changes. Press Ctrl+C to stop.")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return c.syncService.Watch(gctx, notifications, done)
	})
	if clockInterval > 0 {
		g.Go(func() error {
			c.clockLoop(gctx, clockInterval)
			return nil
		})
	}
	return g.Wait()
}

func (c *Cli) clockLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.syncService.SyncClock(ctx); err != nil && ctx.Err() == nil {
				c.io.Printf("Clock sync failed: %v\n", err)
			}
		}
	}
}
