package handler

import (
	"context"
	"fmt"
	"net/http"

	"labportal_backend/internal/quotes/transport"
	"labportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PDFGenerator renders a quotation as a PDF document.
type PDFGenerator interface {
	Generate(ctx context.Context, quotation *transport.QuotationResponse) ([]byte, error)
}

// DownloadPDF renders the quotation on demand and streams it to the client.
func (h *Handler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if h.pdfGen == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "PDF generation is not configured", nil)
		return
	}

	quotation, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	doc, err := h.pdfGen.Generate(c.Request.Context(), quotation)
	if httpkit.HandleError(c, err) {
		return
	}

	filename := fmt.Sprintf("%s.pdf", quotation.QuotationNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", doc)
}
