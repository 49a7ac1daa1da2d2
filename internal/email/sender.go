package email

import (
	"context"

	"labportal_backend/platform/config"
)

type Sender interface {
	SendQuotationCreatedEmail(ctx context.Context, toEmail, clientName, quotationNumber, totalFormatted string, itemCount int) error
	SendQuotationStatusEmail(ctx context.Context, toEmail, clientName, quotationNumber, status string) error
}

// NoopSender is used when email delivery is disabled. All sends succeed silently.
type NoopSender struct{}

func (NoopSender) SendQuotationCreatedEmail(ctx context.Context, toEmail, clientName, quotationNumber, totalFormatted string, itemCount int) error {
	return nil
}

func (NoopSender) SendQuotationStatusEmail(ctx context.Context, toEmail, clientName, quotationNumber, status string) error {
	return nil
}

// NewSender returns an SMTP-backed sender when email is enabled, otherwise a NoopSender.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
