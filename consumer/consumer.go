package consumer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coursehub/ai-service/types"
)

const (
	readCount        = 10
	readBlock        = time.Second
	reconnectBackoff = 5 * time.Second
)

// Handler processes a single decoded stream message. A nil return
// acknowledges the message; an error leaves it pending.
type Handler func(ctx context.Context, msg redis.XMessage) error

// Consumer reads one Redis stream through a consumer group and feeds
// each message to its handler. Lost connections are retried with a
// fixed backoff until Stop is called.
type Consumer struct {
	url     string
	stream  string
	group   string
	name    string
	handler Handler

	mu        sync.Mutex
	client    *redis.Client
	running   bool
	connected bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewConsumer(redisURL, stream, group, name string, handler Handler) (*Consumer, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("%w: redis url is required", types.ErrConfiguration)
	}
	if _, err := redis.ParseURL(redisURL); err != nil {
		return nil, fmt.Errorf("%w: invalid redis url: %v", types.ErrConfiguration, err)
	}
	return &Consumer{
		url:     redisURL,
		stream:  stream,
		group:   group,
		name:    name,
		handler: handler,
	}, nil
}

// Start connects, ensures the consumer group exists and launches the
// read loop. It returns an error only when the first connection fails.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = true
	loopCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	c.mu.Unlock()

	if err := c.connect(ctx); err != nil {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		cancel()
		return err
	}

	go c.loop(loopCtx)
	log.Printf("consumer %s started on stream %s (group %s)", c.name, c.stream, c.group)
	return nil
}

// Stop cancels the read loop and waits for it to finish or for the
// context to expire.
func (c *Consumer) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("stop consumer %s: %w", c.name, ctx.Err())
	}
	return nil
}

func (c *Consumer) Status() types.ConsumerStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return types.ConsumerStatus{
		IsRunning:     c.running,
		IsConnected:   c.connected,
		StreamKey:     c.stream,
		ConsumerGroup: c.group,
		ConsumerName:  c.name,
	}
}

func (c *Consumer) connect(ctx context.Context) error {
	opts, err := redis.ParseURL(c.url)
	if err != nil {
		return fmt.Errorf("%w: invalid redis url: %v", types.ErrConfiguration, err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("%w: connect to redis: %v", types.ErrTransient, err)
	}

	// Existing groups are fine, only BUSYGROUP is tolerated.
	if err := client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err(); err != nil && !isBusyGroup(err) {
		client.Close()
		return fmt.Errorf("%w: create consumer group %s: %v", types.ErrTransient, c.group, err)
	}

	c.mu.Lock()
	if c.client != nil {
		c.client.Close()
	}
	c.client = client
	c.connected = true
	c.mu.Unlock()
	return nil
}

func (c *Consumer) loop(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		if c.client != nil {
			c.client.Close()
			c.client = nil
		}
		c.running = false
		c.connected = false
		done := c.done
		c.mu.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.Lock()
		client := c.client
		c.mu.Unlock()

		streams, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.name,
			Streams:  []string{c.stream, ">"},
			Count:    readCount,
			Block:    readBlock,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.recover(ctx, client, err)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				c.process(ctx, client, msg)
			}
		}
	}
}

// recover probes the connection and reconnects with backoff until the
// context is cancelled.
func (c *Consumer) recover(ctx context.Context, client *redis.Client, cause error) {
	pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
	pingErr := client.Ping(pingCtx).Err()
	pingCancel()
	if pingErr == nil {
		log.Printf("consumer %s: transient read error: %v", c.name, cause)
		return
	}

	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
	log.Printf("consumer %s: connection lost (%v), reconnecting", c.name, cause)

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectBackoff):
		}
		if err := c.connect(ctx); err != nil {
			log.Printf("consumer %s: reconnect failed: %v", c.name, err)
			continue
		}
		log.Printf("consumer %s: reconnected", c.name)
		return
	}
}

// process runs the handler and acknowledges only on success, so failed
// messages stay pending for inspection.
func (c *Consumer) process(ctx context.Context, client *redis.Client, msg redis.XMessage) {
	if err := c.handler(ctx, msg); err != nil {
		log.Printf("consumer %s: message %s failed: %v", c.name, msg.ID, err)
		return
	}
	if err := client.XAck(ctx, c.stream, c.group, msg.ID).Err(); err != nil {
		log.Printf("consumer %s: ack %s failed: %v", c.name, msg.ID, err)
	}
}

// Ping checks the live connection, used by health endpoints.
func (c *Consumer) Ping(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client == nil {
		return fmt.Errorf("%w: consumer %s is not connected", types.ErrTransient, c.name)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %v", types.ErrTransient, err)
	}
	return nil
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}
