package email

const (
	subjectQuotationCreatedFmt = "Cotización %s generada"
	subjectQuotationStatusFmt  = "Actualización de la cotización %s"
)

// statusLabel maps a quotation status code to the label used in email bodies.
func statusLabel(status string) string {
	switch status {
	case "pending":
		return "Pendiente"
	case "sent":
		return "Enviada"
	case "accepted":
		return "Aceptada"
	case "rejected":
		return "Rechazada"
	default:
		return status
	}
}
