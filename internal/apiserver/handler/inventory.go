package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/common/errorx"
	"github.com/arachchispices/spicestore/internal/i18n"
)

// Inventory implements the stock-keeping endpoints. All routes need a
// session.
type Inventory struct {
	store  database.Store
	logger *zap.Logger
}

// NewInventory creates the inventory handler.
func NewInventory(store database.Store, logger *zap.Logger) *Inventory {
	return &Inventory{store: store, logger: logger.Named("handler.inventory")}
}

type inventoryRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Quantity     int    `json:"quantity"`
	Unit         string `json:"unit"`
	ReorderLevel int    `json:"reorderLevel"`
	Location     string `json:"location"`
}

// List returns items, optionally filtered by ?q= over name, category and
// location.
func (h *Inventory) List(c *gin.Context) {
	items, err := h.store.ListInventoryItems(c.Request.Context(), c.Query("q"))
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get returns a single inventory item.
func (h *Inventory) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	item, err := h.store.GetInventoryItem(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create adds an inventory item.
func (h *Inventory) Create(c *gin.Context) {
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	item := &database.InventoryItem{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		ReorderLevel: req.ReorderLevel,
		Location:     req.Location,
	}
	if err := h.store.CreateInventoryItem(c.Request.Context(), item); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logger.Info("inventory item created", zap.Int64("item_id", item.ID), zap.String("name", item.Name))
	c.JSON(http.StatusCreated, item)
}

// Update merges a JSON patch over the item.
func (h *Inventory) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var patch database.InventoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	item, err := h.store.UpdateInventoryItem(c.Request.Context(), id, &patch)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes an inventory item.
func (h *Inventory) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	if err := h.store.DeleteInventoryItem(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	h.logger.Info("inventory item deleted", zap.Int64("item_id", id))
	i18n.RespondWithMessage(c, http.StatusOK, "message.deleted")
}
