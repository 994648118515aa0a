package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/common/errorx"
	"github.com/arachchispices/spicestore/internal/i18n"
)

// Product implements the product catalog endpoints. Reads are public,
// writes need a session.
type Product struct {
	store   database.Store
	uploads *Uploads
	logger  *zap.Logger
}

// NewProduct creates the product handler.
func NewProduct(store database.Store, uploads *Uploads, logger *zap.Logger) *Product {
	return &Product{
		store:   store,
		uploads: uploads,
		logger:  logger.Named("handler.product"),
	}
}

type productRequest struct {
	Name        string  `json:"name" form:"name"`
	Category    string  `json:"category" form:"category"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price"`
	Stock       int     `json:"stock" form:"stock"`
	Unit        string  `json:"unit" form:"unit"`
}

// List returns products, optionally filtered by ?q= over name and category.
func (h *Product) List(c *gin.Context) {
	products, err := h.store.ListProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get returns a single product.
func (h *Product) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	p, err := h.store.GetProduct(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create adds a product. Accepts JSON or multipart with an optional image.
func (h *Product) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBind(&req); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	image, err := h.uploads.Save(c, "image")
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	p := &database.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Unit:        req.Unit,
		Image:       image,
	}
	if err := h.store.CreateProduct(c.Request.Context(), p); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	c.JSON(http.StatusCreated, p)
}

// Update merges a JSON patch over the product. Absent fields are kept.
func (h *Product) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var patch database.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	p, err := h.store.UpdateProduct(c.Request.Context(), id, &patch)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete removes a product.
func (h *Product) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	if err := h.store.DeleteProduct(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	h.logger.Info("product deleted", zap.Int64("product_id", id))
	i18n.RespondWithMessage(c, http.StatusOK, "message.deleted")
}
