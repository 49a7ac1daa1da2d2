package scheduler

import (
	"context"
	"fmt"

	"labportal_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *asynq.Client
	queue  string
}

// EmailEnqueuer queues quotation notification emails for background delivery.
type EmailEnqueuer interface {
	EnqueueQuotationEmail(ctx context.Context, payload QuotationEmailPayload) error
	EnqueueQuotationStatusEmail(ctx context.Context, payload QuotationStatusEmailPayload) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetTaskQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) EnqueueQuotationEmail(ctx context.Context, payload QuotationEmailPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewQuotationEmailTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(5))
	return err
}

func (c *Client) EnqueueQuotationStatusEmail(ctx context.Context, payload QuotationStatusEmailPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewQuotationStatusEmailTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(5))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
