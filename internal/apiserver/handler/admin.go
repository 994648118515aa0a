package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/i18n"
)

// Admin implements the dashboard endpoints: record counts, the user list
// and order analytics. All routes are admin only.
type Admin struct {
	store  database.Store
	logger *zap.Logger
}

// NewAdmin creates the admin handler.
func NewAdmin(store database.Store, logger *zap.Logger) *Admin {
	return &Admin{store: store, logger: logger.Named("handler.admin")}
}

// Stats returns per-entity record totals.
func (h *Admin) Stats(c *gin.Context) {
	counts, err := h.store.Counts(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// Users returns every registered account.
func (h *Admin) Users(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type statusBreakdown struct {
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

type orderAnalytics struct {
	TotalOrders  int64                                    `json:"totalOrders"`
	TotalRevenue float64                                  `json:"totalRevenue"`
	ByStatus     map[database.OrderStatus]statusBreakdown `json:"byStatus"`
}

// OrderAnalytics aggregates totals and per-status revenue over the live
// order store, so figures always reflect current data.
func (h *Admin) OrderAnalytics(c *gin.Context) {
	orders, err := h.store.ListOrders(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	analytics := orderAnalytics{
		ByStatus: make(map[database.OrderStatus]statusBreakdown),
	}
	for _, o := range orders {
		analytics.TotalOrders++
		analytics.TotalRevenue += o.Total
		b := analytics.ByStatus[o.Status]
		b.Count++
		b.Revenue += o.Total
		analytics.ByStatus[o.Status] = b
	}
	c.JSON(http.StatusOK, analytics)
}
