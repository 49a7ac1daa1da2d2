package handler

import (
	"net/http"
	"strconv"

	"labportal_backend/internal/quotes/service"
	"labportal_backend/internal/quotes/transport"
	"labportal_backend/platform/httpkit"
	"labportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the quotation workflow.
type Handler struct {
	svc    *service.Service
	val    *validator.Validator
	pdfGen PDFGenerator
}

// New creates a new quotes handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SetPDFGenerator injects the on-demand PDF generator.
func (h *Handler) SetPDFGenerator(gen PDFGenerator) {
	h.pdfGen = gen
}

// RegisterRoutes registers the quote routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Assemble)
	rg.GET("/workspace", h.Workspace)
	rg.GET("/cart", h.GetCart)
	rg.POST("/cart/items", h.AddCartItem)
	rg.PUT("/cart/items/:index", h.UpdateCartItem)
	rg.DELETE("/cart/items/:index", h.RemoveCartItem)
	rg.DELETE("/cart", h.ClearCart)
	rg.GET("/:id", h.GetByID)
	rg.GET("/:id/pdf", h.DownloadPDF)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.DELETE("/:id", h.Delete)
}

// ── Cart ──────────────────────────────────────────────────────────────────────

func (h *Handler) GetCart(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	cart, err := h.svc.Cart(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, cart)
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req transport.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	cart, err := h.svc.AddProduct(c.Request.Context(), id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, cart)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	cart, err := h.svc.UpdateQuantity(c.Request.Context(), id.UserID(), index, req.Quantity)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, cart)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	cart, err := h.svc.RemoveItem(c.Request.Context(), id.UserID(), index)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, cart)
}

func (h *Handler) ClearCart(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	if err := h.svc.ClearCart(c.Request.Context(), id.UserID()); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": "cleared"})
}

// ── Quotations ────────────────────────────────────────────────────────────────

func (h *Handler) Assemble(c *gin.Context) {
	var req transport.AssembleQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	quotation, err := h.svc.Assemble(c.Request.Context(), id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, quotation)
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListQuotationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) Workspace(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	ws, err := h.svc.Workspace(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, ws)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	quotation, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, quotation)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateQuotationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": string(req.Status)})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": "deleted"})
}
