// Package pdf renders quotation documents using maroto/v2. The layout
// carries the distributor branding, the client snapshot taken at assembly
// time, the line-item table with per-line subtotals, and a QR code that
// links back to the quotation in the admin panel.
package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"labportal_backend/internal/quotes/transport"
)

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorAccent    = &props.Color{Red: 11, Green: 83, Blue: 148}   // brand blue
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249} // slate-100
	colorTableAlt  = &props.Color{Red: 249, Green: 250, Blue: 251} // gray-50
	colorGreen     = &props.Color{Red: 22, Green: 163, Blue: 74}   // green-600
	colorRed       = &props.Color{Red: 220, Green: 38, Blue: 38}   // red-600
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240} // slate-200
)

// Generator builds quotation PDFs. baseURL is the admin panel origin used
// for the QR deep link.
type Generator struct {
	companyName string
	baseURL     string
}

func NewGenerator(companyName, baseURL string) *Generator {
	return &Generator{companyName: companyName, baseURL: baseURL}
}

// Generate renders the quotation into PDF bytes.
func (g *Generator) Generate(ctx context.Context, q *transport.QuotationResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(g.buildFooter()); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(g.buildHeader(q)...)
	m.AddRows(row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	m.AddRows(row.New(6)) // spacer

	m.AddRows(buildClientBlock(q)...)
	m.AddRows(row.New(6))

	m.AddRows(buildItemsTable(q.Items)...)
	m.AddRows(row.New(4))

	m.AddRows(buildTotalBlock(q.Total)...)

	qrRows, err := g.buildQRBlock(q)
	if err != nil {
		return nil, err
	}
	m.AddRows(row.New(8))
	m.AddRows(qrRows...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func (g *Generator) buildHeader(q *transport.QuotationResponse) []core.Row {
	nameCol := col.New(5).Add(
		text.New(g.companyName, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Top:   4,
		}),
	)

	titleCol := col.New(7).Add(
		text.New("COTIZACIÓN", props.Text{
			Size:  24,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: colorAccent,
		}),
		text.New(q.QuotationNumber, props.Text{
			Size:  11,
			Align: align.Right,
			Color: colorSecondary,
			Top:   12,
		}),
	)

	return []core.Row{row.New(20).Add(nameCol, titleCol)}
}

func buildClientBlock(q *transport.QuotationResponse) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New("CLIENTE", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent})),
		col.New(6).Add(text.New("DETALLES", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent, Align: align.Right})),
	))

	dateStr := q.CreatedAt.Format("02/01/2006")
	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New(q.ClientName, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary})),
		col.New(6).Add(text.New("Fecha: "+dateStr, props.Text{Size: 8, Color: colorSecondary, Align: align.Right})),
	))

	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New(q.ClientCompany, props.Text{Size: 8, Color: colorSecondary})),
		col.New(6).Add(text.New("Estado: "+translateStatus(q.Status), props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Color: statusColor(q.Status),
			Align: align.Right,
		})),
	))

	contact := joinParts([]string{q.ClientEmail, q.ClientPhone}, "  |  ")
	if contact != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(contact, props.Text{Size: 8, Color: colorSecondary})),
		))
	}

	if q.ClientAddress != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(q.ClientAddress, props.Text{Size: 8, Color: colorSecondary})),
		))
	}

	return rows
}

func buildItemsTable(items []transport.QuotationItemResponse) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(7).Add(
		col.New(12).Add(text.New("PARTIDAS", props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Color: colorAccent,
		})),
	))

	headerStyle := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headerStyleRight := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1.5}

	rows = append(rows, row.New(7).Add(
		col.New(2).Add(text.New("Clave", headerStyle)),
		col.New(4).Add(text.New("Producto", headerStyle)),
		col.New(1).Add(text.New("Cant.", headerStyleRight)),
		col.New(2).Add(text.New("Precio unit.", headerStyleRight)),
		col.New(3).Add(text.New("Importe", headerStyleRight)),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Bottom,
		BorderColor:     colorBorder,
	}))

	for i, item := range items {
		rows = append(rows, buildItemRow(item, i))
	}

	return rows
}

func buildItemRow(item transport.QuotationItemResponse, idx int) core.Row {
	normalStyle := props.Text{Size: 8, Color: colorPrimary, Top: 1}
	rightStyle := props.Text{Size: 8, Color: colorPrimary, Align: align.Right, Top: 1}

	r := row.New(7).Add(
		col.New(2).Add(text.New(item.Code, normalStyle)),
		col.New(4).Add(text.New(item.Name, normalStyle)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", item.Quantity), rightStyle)),
		col.New(2).Add(text.New(formatCurrency(item.UnitPrice), rightStyle)),
		col.New(3).Add(text.New(formatCurrency(item.Subtotal), rightStyle)),
	)

	if idx%2 == 0 {
		r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
	}

	return r
}

func buildTotalBlock(total decimal.Decimal) []core.Row {
	return []core.Row{
		row.New(1).WithStyle(&props.Cell{
			BorderType:  border.Bottom,
			BorderColor: colorBorder,
		}),
		row.New(3),
		row.New(10).Add(
			col.New(9).Add(text.New("TOTAL", props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Color: colorPrimary,
				Align: align.Right,
				Top:   2,
			})),
			col.New(3).Add(text.New(formatCurrency(total), props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Color: colorPrimary,
				Align: align.Right,
				Top:   2,
			})),
		).WithStyle(&props.Cell{
			BackgroundColor: colorTableHead,
			BorderType:      border.Bottom,
			BorderColor:     colorBorder,
		}),
	}
}

func (g *Generator) buildQRBlock(q *transport.QuotationResponse) ([]core.Row, error) {
	link := fmt.Sprintf("%s/quotes/%s", g.baseURL, q.ID)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode QR: %w", err)
	}

	return []core.Row{
		row.New(25).Add(
			col.New(3).Add(
				image.NewFromBytes(png, extension.Png, props.Rect{
					Percent: 90,
					Center:  false,
				}),
			),
			col.New(9).Add(text.New(
				"Escanee el código para consultar esta cotización en línea.",
				props.Text{Size: 8, Color: colorSecondary, Top: 10},
			)),
		),
	}, nil
}

func (g *Generator) buildFooter() core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(g.companyName+"  ·  Precios en MXN, sujetos a cambio sin previo aviso", props.Text{
				Size:  6.5,
				Color: colorSecondary,
				Align: align.Center,
				Top:   4,
			}),
		),
	).WithStyle(&props.Cell{
		BorderType:  border.Top,
		BorderColor: colorBorder,
	})
}

func statusColor(status string) *props.Color {
	switch status {
	case "accepted":
		return colorGreen
	case "rejected":
		return colorRed
	case "sent":
		return colorAccent
	default:
		return colorSecondary
	}
}

func translateStatus(status string) string {
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

func formatCurrency(v decimal.Decimal) string {
	return "$ " + v.StringFixed(2)
}

func joinParts(parts []string, sep string) string {
	result := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if result != "" {
			result += sep
		}
		result += p
	}
	return result
}
