package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/onurcolak/sms-relay/environments"
	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/logger"
)

const telephoneKeyPrefix = "telephone:number:"

// Client caches telephone-by-number lookups for inbound routing.
type Client struct {
	client valkey.Client
	ttl    time.Duration
}

func NewRedisClient(cfg environments.RedisConfig) (*Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Connected to Redis (via Valkey client)")

	ttl := cfg.TelephoneTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Client{client: client, ttl: ttl}, nil
}

func telephoneKey(number string) string {
	return telephoneKeyPrefix + domain.NormalizeNumber(number)
}

func (c *Client) CacheTelephone(ctx context.Context, telephone *domain.Telephone) error {
	data, err := json.Marshal(telephone)
	if err != nil {
		return fmt.Errorf("failed to marshal telephone: %w", err)
	}

	cmd := c.client.B().Set().Key(telephoneKey(telephone.Number)).Value(string(data)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to cache telephone: %w", err)
	}

	logger.Debugf("Cached telephone %d under %s", telephone.ID, telephone.Number)

	return nil
}

// GetCachedTelephone returns nil, nil on a cache miss.
func (c *Client) GetCachedTelephone(ctx context.Context, number string) (*domain.Telephone, error) {
	result := c.client.Do(ctx, c.client.B().Get().Key(telephoneKey(number)).Build())
	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached telephone: %w", err)
	}

	data, err := result.ToString()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached telephone: %w", err)
	}

	var telephone domain.Telephone
	if err := json.Unmarshal([]byte(data), &telephone); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached telephone: %w", err)
	}

	return &telephone, nil
}

func (c *Client) Close() error {
	c.client.Close()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}
