package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/common/errorx"
	"github.com/arachchispices/spicestore/internal/i18n"
)

// Feedback implements the product review endpoints. Listing and submission
// are public so visitors without an account can leave reviews; moderation
// is admin only.
type Feedback struct {
	store  database.Store
	logger *zap.Logger
}

// NewFeedback creates the feedback handler.
func NewFeedback(store database.Store, logger *zap.Logger) *Feedback {
	return &Feedback{store: store, logger: logger.Named("handler.feedback")}
}

type feedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Product string `json:"product"`
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}

// List returns all feedback, newest first.
func (h *Feedback) List(c *gin.Context) {
	feedback, err := h.store.ListFeedback(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// Get returns a single feedback entry.
func (h *Feedback) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	f, err := h.store.GetFeedback(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Create submits feedback. New entries start in the pending state.
func (h *Feedback) Create(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage("rating must be between 1 and 5"))
		return
	}

	f := &database.Feedback{
		Name:    req.Name,
		Email:   req.Email,
		Product: req.Product,
		Rating:  req.Rating,
		Message: req.Message,
		Status:  database.FeedbackPending,
	}
	if err := h.store.CreateFeedback(c.Request.Context(), f); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logger.Info("feedback received",
		zap.Int64("feedback_id", f.ID),
		zap.String("product", f.Product),
		zap.Int("rating", f.Rating))
	c.JSON(http.StatusCreated, f)
}

// Approve marks a feedback entry approved.
func (h *Feedback) Approve(c *gin.Context) {
	h.setStatus(c, database.FeedbackApproved)
}

// Reject marks a feedback entry rejected.
func (h *Feedback) Reject(c *gin.Context) {
	h.setStatus(c, database.FeedbackRejected)
}

func (h *Feedback) setStatus(c *gin.Context, status database.FeedbackStatus) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	f, err := h.store.UpdateFeedback(c.Request.Context(), id, &database.FeedbackPatch{Status: &status})
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	h.logger.Info("feedback moderated",
		zap.Int64("feedback_id", id),
		zap.String("status", string(status)))
	c.JSON(http.StatusOK, f)
}

// Delete removes a feedback entry.
func (h *Feedback) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	if err := h.store.DeleteFeedback(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	h.logger.Info("feedback deleted", zap.Int64("feedback_id", id))
	i18n.RespondWithMessage(c, http.StatusOK, "message.deleted")
}
