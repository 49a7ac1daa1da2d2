package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers rendered HTML emails via a direct SMTP connection using go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendQuotationCreatedEmail(ctx context.Context, toEmail, clientName, quotationNumber, totalFormatted string, itemCount int) error {
	content, err := renderEmailTemplate("quotation_created.html", quotationCreatedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Nueva cotización",
			Heading: fmt.Sprintf("Cotización %s", quotationNumber),
		},
		ClientName:      clientName,
		QuotationNumber: quotationNumber,
		TotalFormatted:  totalFormatted,
		ItemCount:       itemCount,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectQuotationCreatedFmt, quotationNumber), content)
}

func (s *SMTPSender) SendQuotationStatusEmail(ctx context.Context, toEmail, clientName, quotationNumber, status string) error {
	content, err := renderEmailTemplate("quotation_status.html", quotationStatusEmailData{
		baseEmailData: baseEmailData{
			Title:   "Actualización de cotización",
			Heading: fmt.Sprintf("Cotización %s", quotationNumber),
		},
		ClientName:      clientName,
		QuotationNumber: quotationNumber,
		StatusLabel:     statusLabel(status),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectQuotationStatusFmt, quotationNumber), content)
}
