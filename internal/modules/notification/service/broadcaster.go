package notification

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel is the pub/sub channel every hospital listens on.
const Channel = "hospital_notifications"

// Broadcaster fans a payload out to every current subscriber. Delivery is
// at-most-once: subscribers that are gone or too slow miss the message.
type Broadcaster interface {
	Publish(ctx context.Context, payload []byte) error
	// Subscribe returns a message stream and a function that ends the
	// subscription and closes the stream.
	Subscribe(ctx context.Context) (<-chan []byte, func(), error)
}

const subscriberBuffer = 16

// Hub is an in-process Broadcaster for single-instance deployments.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan []byte]struct{}
	log    *zap.Logger
	closed bool
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{subs: make(map[chan []byte]struct{}), log: log}
}

func (h *Hub) Publish(_ context.Context, payload []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- payload:
		default:
			h.log.Warn("dropping notification for slow subscriber")
		}
	}
	return nil
}

func (h *Hub) Subscribe(_ context.Context) (<-chan []byte, func(), error) {
	ch := make(chan []byte, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}, nil
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
			h.mu.Unlock()
		})
	}
	return ch, cancel, nil
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
	h.closed = true
}

// RedisBroadcaster relays payloads through Redis pub/sub so every API
// instance reaches its own connected hospitals.
type RedisBroadcaster struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisBroadcaster(rdb *redis.Client, log *zap.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{rdb: rdb, log: log}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, payload []byte) error {
	return b.rdb.Publish(ctx, Channel, payload).Err()
}

func (b *RedisBroadcaster) Subscribe(ctx context.Context) (<-chan []byte, func(), error) {
	pubsub := b.rdb.Subscribe(ctx, Channel)

	// Wait for confirmation that the subscription is live.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan []byte, subscriberBuffer)
	done := make(chan struct{})
	msgs := pubsub.Channel()

	go func() {
		defer close(out)
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				default:
					b.log.Warn("dropping notification for slow subscriber")
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			if err := pubsub.Close(); err != nil {
				b.log.Debug("closing redis subscription", zap.Error(err))
			}
		})
	}
	return out, cancel, nil
}
