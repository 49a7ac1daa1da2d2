package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskQuotationEmail = "quotes.email_notification"

// QuotationEmailPayload carries everything the worker needs to send the
// quotation-created notification without hitting the database.
type QuotationEmailPayload struct {
	QuotationID     string `json:"quotationId"`
	QuotationNumber string `json:"quotationNumber"`
	ClientName      string `json:"clientName"`
	ClientEmail     string `json:"clientEmail"`
	TotalFormatted  string `json:"totalFormatted"`
	ItemCount       int    `json:"itemCount"`
}

func NewQuotationEmailTask(payload QuotationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuotationEmail, data), nil
}

func ParseQuotationEmailPayload(task *asynq.Task) (QuotationEmailPayload, error) {
	var payload QuotationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuotationEmailPayload{}, err
	}
	return payload, nil
}

const TaskQuotationStatusEmail = "quotes.status_email_notification"

// QuotationStatusEmailPayload carries the status-change notification data.
type QuotationStatusEmailPayload struct {
	QuotationID     string `json:"quotationId"`
	QuotationNumber string `json:"quotationNumber"`
	ClientName      string `json:"clientName"`
	ClientEmail     string `json:"clientEmail"`
	Status          string `json:"status"`
}

func NewQuotationStatusEmailTask(payload QuotationStatusEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuotationStatusEmail, data), nil
}

func ParseQuotationStatusEmailPayload(task *asynq.Task) (QuotationStatusEmailPayload, error) {
	var payload QuotationStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuotationStatusEmailPayload{}, err
	}
	return payload, nil
}
