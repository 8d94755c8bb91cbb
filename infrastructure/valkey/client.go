package valkey

import (
	"context"
	"fmt"
	"strings"
	"time"

	valkeylib "github.com/valkey-io/valkey-go"
)

// DefaultConnectTimeout is the maximum time to wait for the first ping.
const DefaultConnectTimeout = 5 * time.Second

type Config struct {
	Address        string
	Password       string
	DB             int
	KeyPrefix      string
	ConnectTimeout time.Duration
}

// Client wraps valkey-go with key prefixing and the few commands the
// planner needs (workbook cache, websocket fan-out).
type Client struct {
	inner     valkeylib.Client
	keyPrefix string
}

// NewClient connects and pings Valkey. The caller must Close the client.
func NewClient(cfg Config) (*Client, error) {
	opts := valkeylib.ClientOption{
		InitAddress: []string{cfg.Address},
		SelectDB:    cfg.DB,
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	inner, err := valkeylib.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = DefaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := inner.Do(ctx, inner.B().Ping().Build()).Error(); err != nil {
		inner.Close()
		return nil, fmt.Errorf("failed to ping valkey (timeout: %v): %w", timeout, err)
	}

	return &Client{
		inner:     inner,
		keyPrefix: normalizePrefix(cfg.KeyPrefix),
	}, nil
}

func normalizePrefix(prefix string) string {
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return prefix
}

// Inner returns the underlying valkey-go client.
func (c *Client) Inner() valkeylib.Client {
	return c.inner
}

func (c *Client) Close() {
	if c.inner != nil {
		c.inner.Close()
	}
}

// Key joins parts under the configured prefix: Key("workbook", "abc") -> "planner:workbook:abc".
func (c *Client) Key(parts ...string) string {
	if len(parts) == 0 {
		return strings.TrimSuffix(c.keyPrefix, ":")
	}
	return c.keyPrefix + strings.Join(parts, ":")
}

func (c *Client) Ping(ctx context.Context) error {
	return c.inner.Do(ctx, c.inner.B().Ping().Build()).Error()
}

// Publish sends payload on the prefixed channel.
func (c *Client) Publish(ctx context.Context, channel string, payload []byte) error {
	cmd := c.inner.B().Publish().Channel(c.Key(channel)).Message(valkeylib.BinaryString(payload)).Build()
	return c.inner.Do(ctx, cmd).Error()
}

// Subscribe blocks, calling fn for every message on the prefixed channel,
// until ctx is done or the connection fails.
func (c *Client) Subscribe(ctx context.Context, channel string, fn func(payload []byte)) error {
	cmd := c.inner.B().Subscribe().Channel(c.Key(channel)).Build()
	return c.inner.Receive(ctx, cmd, func(msg valkeylib.PubSubMessage) {
		fn([]byte(msg.Message))
	})
}

// IsNil reports whether err is a Valkey NIL reply.
func IsNil(err error) bool {
	return valkeylib.IsValkeyNil(err)
}
