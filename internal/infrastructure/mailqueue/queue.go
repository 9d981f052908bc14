// Package mailqueue moves outbound mail through a redis list so the HTTP
// path never blocks on SMTP. The API process pushes messages; the mail
// worker pops and delivers them.
package mailqueue

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"iothub/internal/shared/logger"
)

// Message kinds.
const (
	KindActivation    = "activation"
	KindResetPassword = "reset_password"
)

// maxDeliveryAttempts bounds re-pushes of a failing job so a dead SMTP
// target cannot grow the queue forever.
const maxDeliveryAttempts = 3

// Message is one outbound mail job. Attempts counts delivery tries so far.
type Message struct {
	Kind     string `json:"kind"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Attempts int    `json:"attempts,omitempty"`
}

// nextRetry returns the message prepared for another delivery attempt, or
// false when the attempt budget is spent.
func (m Message) nextRetry() (Message, bool) {
	m.Attempts++
	if m.Attempts >= maxDeliveryAttempts {
		return m, false
	}
	return m, true
}

// Sender delivers a popped message. Implemented by the SMTP sender.
type Sender interface {
	SendActivationMail(to, name, code string) error
	SendResetPasswordMail(to, name, code string) error
}

// Producer enqueues mail jobs.
type Producer struct {
	client *redis.Client
	key    string
}

// NewProducer creates a Producer pushing onto the given list key.
func NewProducer(client *redis.Client, key string) *Producer {
	return &Producer{client: client, key: key}
}

// Enqueue pushes a mail job. The caller decides whether a failure here
// rolls anything back; committed token state normally stays committed.
func (p *Producer) Enqueue(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal mail message: %w", err)
	}
	if err := p.client.LPush(ctx, p.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue mail message: %w", err)
	}
	return nil
}

// EnqueueActivationMail queues an activation code mail.
func (p *Producer) EnqueueActivationMail(ctx context.Context, email, name, code string) error {
	return p.Enqueue(ctx, Message{Kind: KindActivation, Email: email, Name: name, Code: code})
}

// EnqueueResetPasswordMail queues a password reset code mail.
func (p *Producer) EnqueueResetPasswordMail(ctx context.Context, email, name, code string) error {
	return p.Enqueue(ctx, Message{Kind: KindResetPassword, Email: email, Name: name, Code: code})
}

// Consumer pops mail jobs and hands them to the sender.
type Consumer struct {
	client *redis.Client
	key    string
	sender Sender
	log    logger.Interface
}

// NewConsumer creates a Consumer for the given list key.
func NewConsumer(client *redis.Client, key string, sender Sender, log logger.Interface) *Consumer {
	return &Consumer{client: client, key: key, sender: sender, log: log}
}

// Run consumes until the context is canceled. A failed delivery is pushed
// back for another attempt; once the attempt budget is spent the job is
// logged and dropped so a poisoned job cannot wedge the queue.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Infow("mail consumer started", "queue", c.key)
	for {
		result, err := c.client.BRPop(ctx, 5*time.Second, c.key).Result()
		if err != nil {
			if stderrors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				c.log.Infow("mail consumer stopping", "queue", c.key)
				return nil
			}
			c.log.Errorw("failed to pop mail message", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		// BRPop returns [key, value].
		if len(result) < 2 {
			continue
		}
		c.handle(ctx, result[1])
	}
}

func (c *Consumer) handle(ctx context.Context, payload string) {
	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		c.log.Errorw("failed to decode mail message", "error", err)
		return
	}

	var err error
	switch msg.Kind {
	case KindActivation:
		err = c.sender.SendActivationMail(msg.Email, msg.Name, msg.Code)
	case KindResetPassword:
		err = c.sender.SendResetPasswordMail(msg.Email, msg.Name, msg.Code)
	default:
		c.log.Warnw("unknown mail message kind", "kind", msg.Kind)
		return
	}

	if err != nil {
		retry, ok := msg.nextRetry()
		if !ok {
			c.log.Errorw("dropping mail after repeated delivery failures",
				"kind", msg.Kind, "attempts", retry.Attempts, "error", err)
			return
		}
		c.log.Warnw("delivery failed, re-queueing",
			"kind", msg.Kind, "attempt", retry.Attempts, "error", err)
		if requeueErr := c.requeue(ctx, retry); requeueErr != nil {
			c.log.Errorw("failed to re-queue mail", "kind", msg.Kind, "error", requeueErr)
		}
		return
	}
	c.log.Infow("mail delivered", "kind", msg.Kind)
}

func (c *Consumer) requeue(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal mail message: %w", err)
	}
	return c.client.LPush(ctx, c.key, payload).Err()
}
