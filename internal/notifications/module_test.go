package notifications

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"labportal_backend/internal/email"
	"labportal_backend/internal/events"
	"labportal_backend/internal/scheduler"
	"labportal_backend/platform/logger"
)

type fakeEnqueuer struct {
	payloads       []scheduler.QuotationEmailPayload
	statusPayloads []scheduler.QuotationStatusEmailPayload
}

func (f *fakeEnqueuer) EnqueueQuotationEmail(_ context.Context, payload scheduler.QuotationEmailPayload) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakeEnqueuer) EnqueueQuotationStatusEmail(_ context.Context, payload scheduler.QuotationStatusEmailPayload) error {
	f.statusPayloads = append(f.statusPayloads, payload)
	return nil
}

type recordingSender struct {
	email.NoopSender
	sent       int
	statusSent int
}

func (r *recordingSender) SendQuotationCreatedEmail(_ context.Context, _, _, _, _ string, _ int) error {
	r.sent++
	return nil
}

func (r *recordingSender) SendQuotationStatusEmail(_ context.Context, _, _, _, _ string) error {
	r.statusSent++
	return nil
}

func quotationCreated(clientEmail string) events.QuotationCreated {
	return events.QuotationCreated{
		BaseEvent:       events.NewBaseEvent(),
		QuotationID:     uuid.New(),
		QuotationNumber: "COT-2026-0007",
		ClientID:        uuid.New(),
		ClientName:      "Ana Torres",
		ClientEmail:     clientEmail,
		Total:           decimal.RequireFromString("1234.50"),
		ItemCount:       3,
	}
}

func TestHandleQuotationCreatedEnqueuesTask(t *testing.T) {
	enq := &fakeEnqueuer{}
	sender := &recordingSender{}
	m := NewModule(enq, sender, logger.New("development"))

	if err := m.Handle(context.Background(), quotationCreated("ana@orion.mx")); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(enq.payloads) != 1 {
		t.Fatalf("expected 1 enqueued payload, got %d", len(enq.payloads))
	}
	p := enq.payloads[0]
	if p.QuotationNumber != "COT-2026-0007" {
		t.Errorf("quotation number = %q", p.QuotationNumber)
	}
	if p.ClientEmail != "ana@orion.mx" {
		t.Errorf("client email = %q", p.ClientEmail)
	}
	if p.TotalFormatted != "$ 1234.50" {
		t.Errorf("total formatted = %q", p.TotalFormatted)
	}
	if p.ItemCount != 3 {
		t.Errorf("item count = %d", p.ItemCount)
	}
	if sender.sent != 0 {
		t.Errorf("sender should not be used when the queue is available, sent %d", sender.sent)
	}
}

func TestHandleQuotationCreatedSendsInlineWithoutQueue(t *testing.T) {
	sender := &recordingSender{}
	m := NewModule(nil, sender, logger.New("development"))

	if err := m.Handle(context.Background(), quotationCreated("ana@orion.mx")); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if sender.sent != 1 {
		t.Fatalf("expected inline send, sent %d", sender.sent)
	}
}

func TestHandleQuotationCreatedSkipsWithoutEmail(t *testing.T) {
	enq := &fakeEnqueuer{}
	sender := &recordingSender{}
	m := NewModule(enq, sender, logger.New("development"))

	if err := m.Handle(context.Background(), quotationCreated("")); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(enq.payloads) != 0 || sender.sent != 0 {
		t.Fatalf("expected no notification, enqueued %d sent %d", len(enq.payloads), sender.sent)
	}
}

func quotationStatusChanged(clientEmail, status string) events.QuotationStatusChanged {
	return events.QuotationStatusChanged{
		BaseEvent:       events.NewBaseEvent(),
		QuotationID:     uuid.New(),
		QuotationNumber: "COT-2026-0007",
		Status:          status,
		ClientName:      "Ana Torres",
		ClientEmail:     clientEmail,
	}
}

func TestHandleStatusChangedEnqueuesTask(t *testing.T) {
	enq := &fakeEnqueuer{}
	sender := &recordingSender{}
	m := NewModule(enq, sender, logger.New("development"))

	if err := m.Handle(context.Background(), quotationStatusChanged("ana@orion.mx", "accepted")); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(enq.statusPayloads) != 1 {
		t.Fatalf("expected 1 enqueued status payload, got %d", len(enq.statusPayloads))
	}
	p := enq.statusPayloads[0]
	if p.QuotationNumber != "COT-2026-0007" {
		t.Errorf("quotation number = %q", p.QuotationNumber)
	}
	if p.Status != "accepted" {
		t.Errorf("status = %q", p.Status)
	}
	if sender.statusSent != 0 {
		t.Errorf("sender should not be used when the queue is available, sent %d", sender.statusSent)
	}
}

func TestHandleStatusChangedSendsInlineWithoutQueue(t *testing.T) {
	sender := &recordingSender{}
	m := NewModule(nil, sender, logger.New("development"))

	if err := m.Handle(context.Background(), quotationStatusChanged("ana@orion.mx", "rejected")); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if sender.statusSent != 1 {
		t.Fatalf("expected inline status send, sent %d", sender.statusSent)
	}
}

func TestHandleStatusChangedSkipsWithoutEmail(t *testing.T) {
	enq := &fakeEnqueuer{}
	sender := &recordingSender{}
	m := NewModule(enq, sender, logger.New("development"))

	if err := m.Handle(context.Background(), quotationStatusChanged("", "accepted")); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(enq.statusPayloads) != 0 || sender.statusSent != 0 {
		t.Fatalf("expected no notification, enqueued %d sent %d", len(enq.statusPayloads), sender.statusSent)
	}
}

func TestHandleIgnoresUnrelatedEvents(t *testing.T) {
	enq := &fakeEnqueuer{}
	m := NewModule(enq, &recordingSender{}, logger.New("development"))

	err := m.Handle(context.Background(), events.QuotationDeleted{
		BaseEvent:   events.NewBaseEvent(),
		QuotationID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(enq.payloads) != 0 {
		t.Fatalf("unexpected enqueue for unrelated event")
	}
}
