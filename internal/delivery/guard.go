package delivery

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 24 * time.Hour

// SendGuard is a redis-backed idempotency check for outbound sends. Broker
// redelivery can replay a processed event; the guard keeps the customer from
// receiving the same reply twice.
type SendGuard struct {
	client *redis.Client
}

// NewSendGuard wraps a redis client.
func NewSendGuard(client *redis.Client) *SendGuard {
	return &SendGuard{client: client}
}

// FirstDelivery reports whether this key has not been sent before, claiming
// it atomically when so.
func (g *SendGuard) FirstDelivery(ctx context.Context, key string) (bool, error) {
	return g.client.SetNX(ctx, "delivery:"+key, 1, guardTTL).Result()
}
