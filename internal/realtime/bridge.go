package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// SubscribeUpdates bridges the Redis updates channel into the in-process
// broker. It reconnects with a short delay if the pub/sub connection drops
// and exits when ctx is cancelled.
func SubscribeUpdates(ctx context.Context, rc *redis.Client, channel string, broker *Broker) {
	for {
		sub := rc.Subscribe(ctx, channel)
		ch := sub.Channel()
	recv:
		for {
			select {
			case <-ctx.Done():
				sub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					break recv
				}
				var update UpdateMessage
				if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
					log.Errorf("unable to parse update: %v", err)
					continue
				}
				log.Debugf("event %s changed, waking subscribers", update.EventID)
				broker.Notify()
			}
		}
		sub.Close()
		if ctx.Err() != nil {
			return
		}
		log.Error("pubsub channel closed, reconnecting")
		time.Sleep(time.Second)
	}
}
