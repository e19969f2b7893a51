package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// UpdateMessage is the wire shape published on the updates channel after a
// reservation or check-in commits.
type UpdateMessage struct {
	EventID   string    `json:"event_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RedisPublisher broadcasts record changes over a Redis pub/sub channel so
// every running instance, not just the one that handled the write, can wake
// its stream subscribers.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// EventUpdated publishes a change signal for the given event. The write it
// reports is already durable, so failures are logged and not surfaced; a
// subscriber that misses a signal catches up on its next snapshot.
func (p *RedisPublisher) EventUpdated(ctx context.Context, eventID uuid.UUID) {
	msg := UpdateMessage{EventID: eventID.String(), UpdatedAt: time.Now().UTC()}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("marshal update message: %v", err)
		return
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		log.Errorf("publish update for event %s: %v", msg.EventID, err)
	}
}
