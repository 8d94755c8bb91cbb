package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AzielCF/az-planner/infrastructure/valkey"
	valkeylib "github.com/valkey-io/valkey-go"
)

// ValkeyWorkbookCache implements export.WorkbookCache on Valkey so several
// planner processes behind a balancer share rendered workbooks.
type ValkeyWorkbookCache struct {
	client *valkey.Client
	prefix string
}

func NewValkeyWorkbookCache(client *valkey.Client) *ValkeyWorkbookCache {
	return &ValkeyWorkbookCache{
		client: client,
		prefix: client.Key("workbook") + ":",
	}
}

func (c *ValkeyWorkbookCache) Name() string { return "valkey" }

func (c *ValkeyWorkbookCache) inner() valkeylib.Client {
	return c.client.Inner()
}

func (c *ValkeyWorkbookCache) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := c.inner().B().Get().Key(c.prefix + key).Build()
	data, err := c.inner().Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read workbook %s: %w", key, err)
	}
	return data, nil
}

func (c *ValkeyWorkbookCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	cmd := c.inner().B().Set().
		Key(c.prefix + key).
		Value(valkeylib.BinaryString(data)).
		Ex(ttl).
		Build()
	if err := c.inner().Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to store workbook %s: %w", key, err)
	}
	return nil
}
