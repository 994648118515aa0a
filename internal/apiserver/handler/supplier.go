package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/apiserver/middleware"
	"github.com/arachchispices/spicestore/internal/common/errorx"
	"github.com/arachchispices/spicestore/internal/i18n"
)

// Supplier implements the supplier endpoints. Records carry an owner and
// only the owner or an admin may modify them.
type Supplier struct {
	store  database.Store
	logger *zap.Logger
}

// NewSupplier creates the supplier handler.
func NewSupplier(store database.Store, logger *zap.Logger) *Supplier {
	return &Supplier{store: store, logger: logger.Named("handler.supplier")}
}

type supplierRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Items   string `json:"items"`
}

// List returns suppliers, optionally filtered by ?q= over name, company and
// email.
func (h *Supplier) List(c *gin.Context) {
	suppliers, err := h.store.ListSuppliers(c.Request.Context(), c.Query("q"))
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// Get returns a single supplier.
func (h *Supplier) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	sup, err := h.store.GetSupplier(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sup)
}

// Create adds a supplier owned by the logged-in user.
func (h *Supplier) Create(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		i18n.RespondWithError(c, errorx.ErrNoSession)
		return
	}

	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	sup := &database.Supplier{
		Name:      req.Name,
		Company:   req.Company,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Items:     req.Items,
		CreatedBy: p.UserID,
	}
	if err := h.store.CreateSupplier(c.Request.Context(), sup); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logger.Info("supplier created",
		zap.Int64("supplier_id", sup.ID),
		zap.Int64("created_by", p.UserID))
	c.JSON(http.StatusCreated, sup)
}

// Update merges a JSON patch over the supplier. Owner or admin only.
func (h *Supplier) Update(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		i18n.RespondWithError(c, errorx.ErrNoSession)
		return
	}

	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	existing, err := h.store.GetSupplier(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	if !canMutate(p, existing.CreatedBy) {
		i18n.RespondWithError(c, errorx.ErrForbidden)
		return
	}

	var patch database.SupplierPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	sup, err := h.store.UpdateSupplier(c.Request.Context(), id, &patch)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sup)
}

// Delete removes a supplier. Owner or admin only.
func (h *Supplier) Delete(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		i18n.RespondWithError(c, errorx.ErrNoSession)
		return
	}

	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	existing, err := h.store.GetSupplier(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	if !canMutate(p, existing.CreatedBy) {
		i18n.RespondWithError(c, errorx.ErrForbidden)
		return
	}

	if err := h.store.DeleteSupplier(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	h.logger.Info("supplier deleted", zap.Int64("supplier_id", id), zap.Int64("by", p.UserID))
	i18n.RespondWithMessage(c, http.StatusOK, "message.deleted")
}
