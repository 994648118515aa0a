package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/common/errorx"
	"github.com/arachchispices/spicestore/internal/i18n"
)

// Delivery implements the shipment endpoints. At most one delivery may
// exist per order.
type Delivery struct {
	store  database.Store
	logger *zap.Logger
}

// NewDelivery creates the delivery handler.
func NewDelivery(store database.Store, logger *zap.Logger) *Delivery {
	return &Delivery{store: store, logger: logger.Named("handler.delivery")}
}

type deliveryRequest struct {
	OrderID      int64                   `json:"orderId"`
	Address      string                  `json:"address"`
	Driver       string                  `json:"driver"`
	Status       database.DeliveryStatus `json:"status"`
	ScheduledFor time.Time               `json:"scheduledFor"`
}

type deliveryStatusRequest struct {
	Status database.DeliveryStatus `json:"status"`
}

func validDeliveryStatus(s database.DeliveryStatus) bool {
	switch s {
	case database.DeliveryScheduled, database.DeliveryInTransit,
		database.DeliveryDelivered, database.DeliveryFailed:
		return true
	}
	return false
}

// List returns all deliveries, newest first.
func (h *Delivery) List(c *gin.Context) {
	deliveries, err := h.store.ListDeliveries(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

// Get returns a single delivery.
func (h *Delivery) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	d, err := h.store.GetDelivery(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Create schedules a delivery for an existing order. A second delivery for
// the same order is rejected.
func (h *Delivery) Create(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	if _, err := h.store.GetOrder(c.Request.Context(), req.OrderID); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	status := req.Status
	if status == "" {
		status = database.DeliveryScheduled
	}
	if !validDeliveryStatus(status) {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage("invalid delivery status"))
		return
	}

	d := &database.Delivery{
		OrderID:      req.OrderID,
		Address:      req.Address,
		Driver:       req.Driver,
		Status:       status,
		ScheduledFor: req.ScheduledFor,
	}
	if err := h.store.CreateDelivery(c.Request.Context(), d); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logger.Info("delivery scheduled",
		zap.Int64("delivery_id", d.ID),
		zap.Int64("order_id", d.OrderID))
	c.JSON(http.StatusCreated, d)
}

// Update merges a JSON patch over the delivery. Status is not bindable
// here; transitions go through UpdateStatus.
func (h *Delivery) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var patch database.DeliveryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	d, err := h.store.UpdateDelivery(c.Request.Context(), id, &patch)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UpdateStatus transitions the delivery status. Admin only.
func (h *Delivery) UpdateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var req deliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}
	if !validDeliveryStatus(req.Status) {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage("invalid delivery status"))
		return
	}

	d, err := h.store.UpdateDelivery(c.Request.Context(), id, &database.DeliveryPatch{Status: &req.Status})
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	h.logger.Info("delivery status updated",
		zap.Int64("delivery_id", id),
		zap.String("status", string(req.Status)))
	c.JSON(http.StatusOK, d)
}

// Delete removes a delivery.
func (h *Delivery) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	if err := h.store.DeleteDelivery(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	h.logger.Info("delivery deleted", zap.Int64("delivery_id", id))
	i18n.RespondWithMessage(c, http.StatusOK, "message.deleted")
}
