package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/common/errorx"
	"github.com/arachchispices/spicestore/internal/i18n"
)

// Customer implements the customer record endpoints. All routes need a
// session.
type Customer struct {
	store  database.Store
	logger *zap.Logger
}

// NewCustomer creates the customer handler.
func NewCustomer(store database.Store, logger *zap.Logger) *Customer {
	return &Customer{store: store, logger: logger.Named("handler.customer")}
}

type customerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// List returns customers, optionally filtered by ?q= over name and email.
func (h *Customer) List(c *gin.Context) {
	customers, err := h.store.ListCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// Get returns a single customer.
func (h *Customer) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	cust, err := h.store.GetCustomer(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// Create adds a customer.
func (h *Customer) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	cust := &database.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := h.store.CreateCustomer(c.Request.Context(), cust); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logger.Info("customer created", zap.Int64("customer_id", cust.ID))
	c.JSON(http.StatusCreated, cust)
}

// Update merges a JSON patch over the customer.
func (h *Customer) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var patch database.CustomerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	cust, err := h.store.UpdateCustomer(c.Request.Context(), id, &patch)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// Delete removes a customer.
func (h *Customer) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	if err := h.store.DeleteCustomer(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	h.logger.Info("customer deleted", zap.Int64("customer_id", id))
	i18n.RespondWithMessage(c, http.StatusOK, "message.deleted")
}
