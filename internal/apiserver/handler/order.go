package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/apiserver/middleware"
	"github.com/arachchispices/spicestore/internal/common/errorx"
	"github.com/arachchispices/spicestore/internal/i18n"
)

// Order implements the order endpoints. Records carry an owner and only
// the owner or an admin may modify them.
type Order struct {
	store   database.Store
	uploads *Uploads
	logger  *zap.Logger
}

// NewOrder creates the order handler.
func NewOrder(store database.Store, uploads *Uploads, logger *zap.Logger) *Order {
	return &Order{
		store:   store,
		uploads: uploads,
		logger:  logger.Named("handler.order"),
	}
}

type orderRequest struct {
	CustomerName string               `json:"customerName"`
	Items        database.OrderItems  `json:"items"`
	Status       database.OrderStatus `json:"status"`
	Total        float64              `json:"total"`
}

func validateItems(items database.OrderItems) error {
	if len(items) == 0 {
		return errorx.ErrInvalidOrderItems
	}
	for _, item := range items {
		if item.Name == "" || item.Quantity <= 0 {
			return errorx.ErrInvalidOrderItems
		}
	}
	return nil
}

// bindOrderRequest reads the create payload from JSON or multipart form.
// In multipart form the items field carries a JSON array.
func bindOrderRequest(c *gin.Context) (*orderRequest, error) {
	ct := c.ContentType()
	if !strings.HasPrefix(ct, "multipart/") {
		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, errorx.ErrInvalidInput.WithMessage(err.Error())
		}
		return &req, nil
	}

	req := &orderRequest{
		CustomerName: c.PostForm("customerName"),
		Status:       database.OrderStatus(c.PostForm("status")),
	}
	if raw := c.PostForm("items"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Items); err != nil {
			return nil, errorx.ErrInvalidOrderItems
		}
	}
	if raw := c.PostForm("total"); raw != "" {
		total, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errorx.ErrInvalidInput.WithMessage("invalid total")
		}
		req.Total = total
	}
	return req, nil
}

// List returns all orders.
func (h *Order) List(c *gin.Context) {
	orders, err := h.store.ListOrders(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get returns a single order.
func (h *Order) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	o, err := h.store.GetOrder(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Create adds an order owned by the logged-in user. Accepts JSON or
// multipart with an optional image.
func (h *Order) Create(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		i18n.RespondWithError(c, errorx.ErrNoSession)
		return
	}

	req, err := bindOrderRequest(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	if err := validateItems(req.Items); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	image, err := h.uploads.Save(c, "image")
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	status := req.Status
	if status == "" {
		status = database.OrderPending
	}

	o := &database.Order{
		CustomerName: req.CustomerName,
		Items:        req.Items,
		Status:       status,
		Total:        req.Total,
		Image:        image,
		CreatedBy:    p.UserID,
	}
	if err := h.store.CreateOrder(c.Request.Context(), o); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logger.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.Int64("created_by", p.UserID),
		zap.Int("items", len(o.Items)))
	c.JSON(http.StatusCreated, o)
}

// Update merges a JSON patch over the order. Owner or admin only. Items,
// when present, are re-validated.
func (h *Order) Update(c *gin.Context) {
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

	existing, err := h.store.GetOrder(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	if !canMutate(p, existing.CreatedBy) {
		i18n.RespondWithError(c, errorx.ErrForbidden)
		return
	}

	var patch database.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}
	if patch.Items != nil {
		if err := validateItems(patch.Items); err != nil {
			i18n.RespondWithError(c, err)
			return
		}
	}

	o, err := h.store.UpdateOrder(c.Request.Context(), id, &patch)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Delete removes an order. Owner or admin only.
func (h *Order) Delete(c *gin.Context) {
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

	existing, err := h.store.GetOrder(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	if !canMutate(p, existing.CreatedBy) {
		i18n.RespondWithError(c, errorx.ErrForbidden)
		return
	}

	if err := h.store.DeleteOrder(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	h.logger.Info("order deleted", zap.Int64("order_id", id), zap.Int64("by", p.UserID))
	i18n.RespondWithMessage(c, http.StatusOK, "message.deleted")
}
