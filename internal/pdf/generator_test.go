package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"labportal_backend/internal/quotes/transport"
)

func sampleQuotation() *transport.QuotationResponse {
	price := decimal.RequireFromString("1850.00")
	return &transport.QuotationResponse{
		ID:              uuid.New(),
		QuotationNumber: "COT-2026-0042",
		Status:          "pending",
		ClientID:        uuid.New(),
		ClientName:      "Ana Torres",
		ClientCompany:   "Laboratorios Orion",
		ClientPhone:     "+525512345678",
		ClientEmail:     "ana@orion.mx",
		ClientAddress:   "Av. Insurgentes Sur 1000, CDMX",
		Total:           price.Mul(decimal.NewFromInt(2)),
		ItemCount:       1,
		CreatedAt:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Items: []transport.QuotationItemResponse{
			{
				ID:           uuid.New(),
				ProductID:    uuid.New(),
				Code:         "BAL-400",
				Name:         "Balanza analítica 220g",
				SupplierName: "Sartorius",
				UnitPrice:    price,
				Quantity:     2,
				Subtotal:     price.Mul(decimal.NewFromInt(2)),
			},
		},
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	gen := NewGenerator("LabPortal Distribución", "http://localhost:4200")

	out, err := gen.Generate(context.Background(), sampleQuotation())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty document")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

func TestFormatCurrency(t *testing.T) {
	if got := formatCurrency(decimal.RequireFromString("1234.5")); got != "$ 1234.50" {
		t.Errorf("formatCurrency = %q", got)
	}
	if got := formatCurrency(decimal.Zero); got != "$ 0.00" {
		t.Errorf("formatCurrency zero = %q", got)
	}
}

func TestTranslateStatus(t *testing.T) {
	cases := map[string]string{
		"pending":  "Pendiente",
		"sent":     "Enviada",
		"accepted": "Aceptada",
		"rejected": "Rechazada",
		"other":    "other",
	}
	for in, want := range cases {
		if got := translateStatus(in); got != want {
			t.Errorf("translateStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
