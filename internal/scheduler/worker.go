package scheduler

import (
	"context"
	"fmt"

	"labportal_backend/internal/email"
	"labportal_backend/platform/config"
	"labportal_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker processes queued tasks. It runs as its own binary so email
// delivery retries never block API request handling.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
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

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskQuotationEmail, w.handleQuotationEmail)
	mux.HandleFunc(TaskQuotationStatusEmail, w.handleQuotationStatusEmail)

	return w, nil
}

func (w *Worker) handleQuotationEmail(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQuotationEmailPayload(task)
	if err != nil {
		return err
	}

	if payload.ClientEmail == "" {
		w.log.Debug("quotation has no client email, skipping notification",
			"quotationId", payload.QuotationID)
		return nil
	}

	if err := w.sender.SendQuotationCreatedEmail(ctx,
		payload.ClientEmail,
		payload.ClientName,
		payload.QuotationNumber,
		payload.TotalFormatted,
		payload.ItemCount,
	); err != nil {
		return fmt.Errorf("send quotation email %s: %w", payload.QuotationNumber, err)
	}

	w.log.Info("quotation notification sent",
		"quotationNumber", payload.QuotationNumber,
		"to", payload.ClientEmail)
	return nil
}

func (w *Worker) handleQuotationStatusEmail(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQuotationStatusEmailPayload(task)
	if err != nil {
		return err
	}

	if payload.ClientEmail == "" {
		w.log.Debug("quotation has no client email, skipping status notification",
			"quotationId", payload.QuotationID)
		return nil
	}

	if err := w.sender.SendQuotationStatusEmail(ctx,
		payload.ClientEmail,
		payload.ClientName,
		payload.QuotationNumber,
		payload.Status,
	); err != nil {
		return fmt.Errorf("send quotation status email %s: %w", payload.QuotationNumber, err)
	}

	w.log.Info("quotation status notification sent",
		"quotationNumber", payload.QuotationNumber,
		"status", payload.Status,
		"to", payload.ClientEmail)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
