// Package notifications turns domain events into outbound email. When the
// task queue is available, emails are enqueued for the worker process;
// otherwise they are sent inline so a Redis-less deployment still notifies.
package notifications

import (
	"context"

	"labportal_backend/internal/email"
	"labportal_backend/internal/events"
	"labportal_backend/internal/scheduler"
	"labportal_backend/platform/logger"
)

type Module struct {
	enqueuer scheduler.EmailEnqueuer // nil when the task queue is disabled
	sender   email.Sender
	log      *logger.Logger
}

func NewModule(enqueuer scheduler.EmailEnqueuer, sender email.Sender, log *logger.Logger) *Module {
	return &Module{
		enqueuer: enqueuer,
		sender:   sender,
		log:      log,
	}
}

// RegisterHandlers subscribes to the domain events that trigger emails.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.QuotationCreated{}.EventName(), m)
	bus.Subscribe(events.QuotationStatusChanged{}.EventName(), m)

	m.log.Info("notifications module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.QuotationCreated:
		return m.handleQuotationCreated(ctx, e)
	case events.QuotationStatusChanged:
		return m.handleQuotationStatusChanged(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleQuotationCreated(ctx context.Context, e events.QuotationCreated) error {
	if e.ClientEmail == "" {
		m.log.Debug("quotation client has no email, skipping notification",
			"quotationNumber", e.QuotationNumber)
		return nil
	}

	payload := scheduler.QuotationEmailPayload{
		QuotationID:     e.QuotationID.String(),
		QuotationNumber: e.QuotationNumber,
		ClientName:      e.ClientName,
		ClientEmail:     e.ClientEmail,
		TotalFormatted:  "$ " + e.Total.StringFixed(2),
		ItemCount:       e.ItemCount,
	}

	if m.enqueuer != nil {
		if err := m.enqueuer.EnqueueQuotationEmail(ctx, payload); err != nil {
			m.log.Error("failed to enqueue quotation email",
				"quotationNumber", e.QuotationNumber, "error", err)
			return err
		}
		return nil
	}

	if err := m.sender.SendQuotationCreatedEmail(ctx,
		payload.ClientEmail,
		payload.ClientName,
		payload.QuotationNumber,
		payload.TotalFormatted,
		payload.ItemCount,
	); err != nil {
		m.log.Error("failed to send quotation email",
			"quotationNumber", e.QuotationNumber, "error", err)
		return err
	}

	return nil
}

func (m *Module) handleQuotationStatusChanged(ctx context.Context, e events.QuotationStatusChanged) error {
	if e.ClientEmail == "" {
		m.log.Debug("quotation client has no email, skipping status notification",
			"quotationNumber", e.QuotationNumber)
		return nil
	}

	payload := scheduler.QuotationStatusEmailPayload{
		QuotationID:     e.QuotationID.String(),
		QuotationNumber: e.QuotationNumber,
		ClientName:      e.ClientName,
		ClientEmail:     e.ClientEmail,
		Status:          e.Status,
	}

	if m.enqueuer != nil {
		if err := m.enqueuer.EnqueueQuotationStatusEmail(ctx, payload); err != nil {
			m.log.Error("failed to enqueue quotation status email",
				"quotationNumber", e.QuotationNumber, "error", err)
			return err
		}
		return nil
	}

	if err := m.sender.SendQuotationStatusEmail(ctx,
		payload.ClientEmail,
		payload.ClientName,
		payload.QuotationNumber,
		payload.Status,
	); err != nil {
		m.log.Error("failed to send quotation status email",
			"quotationNumber", e.QuotationNumber, "error", err)
		return err
	}

	return nil
}
