package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/homely-bites/internal/cache"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/homely-bites/internal/infra/repository"
	"github.com/BruksfildServices01/homely-bites/internal/middleware"
	ucFeedback "github.com/BruksfildServices01/homely-bites/internal/usecase/feedback"
)

// invalidator is satisfied by *cache.Cache, including a nil one.
type invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

type FeedbackHandler struct {
	submit *ucFeedback.SubmitFeedback
	repo   *infraRepo.FeedbackGormRepository
	cache  invalidator
}

func NewFeedbackHandler(
	submit *ucFeedback.SubmitFeedback,
	repo *infraRepo.FeedbackGormRepository,
	c invalidator,
) *FeedbackHandler {
	return &FeedbackHandler{submit: submit, repo: repo, cache: c}
}

type SubmitFeedbackRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req SubmitFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	fb, err := h.submit.Execute(c.Request.Context(), ucFeedback.SubmitFeedbackInput{
		CustomerID: middleware.SubjectID(c),
		OrderID:    req.OrderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	// Listings and the profile carry the chef's rating.
	h.cache.Invalidate(c.Request.Context(), cache.ChefKeys(fb.ChefID)...)
	httpresp.Created(c, fb)
}

func (h *FeedbackHandler) Mine(c *gin.Context) {
	id := middleware.SubjectID(c)
	out, err := h.repo.List(c.Request.Context(), infraRepo.FeedbackFilter{CustomerID: &id})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}
