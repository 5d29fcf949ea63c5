package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/iudanet/synchub/internal/device/data"
)

func (c *Cli) runPut(ctx context.Context, key, value string) error {
	item, err := c.dataService.Put(ctx, key, value)
	if err != nil {
		return fmt.Errorf("failed to put %q: %w", key, err)
	}

	c.io.Printf("Saved %s at %d\n", item.Key, item.Timestamp)
	return nil
}

func (c *Cli) runDelete(ctx context.Context, key string) error {
	item, err := c.dataService.Delete(ctx, key)
	if err != nil {
		if data.IsNotFound(err) {
			return fmt.Errorf("key not found: %s", key)
		}
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}

	c.io.Printf("Deleted %s at %d\n", item.Key, item.Timestamp)
	return nil
}

func (c *Cli) runGet(ctx context.Context, key string) error {
	item, err := c.dataService.Get(ctx, key)
	if err != nil {
		if data.IsNotFound(err) {
			return fmt.Errorf("key not found: %s", key)
		}
		return fmt.Errorf("failed to get %q: %w", key, err)
	}

	return templates.ExecuteTemplate(c.io, "item", item)
}

func (c *Cli) runList(ctx context.Context) error {
	items, err := c.dataService.List(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Items ===")
	c.io.Println()

	if len(items) == 0 {
		c.io.Println("No items found.")
		return nil
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	for _, item := range items {
		c.io.Printf("%s = %s\n", item.Key, item.Value)
	}
	c.io.Println()
	c.io.Printf("Total: %d\n", len(items))
	return nil
}
