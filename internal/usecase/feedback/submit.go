package feedback

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	domain "github.com/BruksfildServices01/homely-bites/internal/domain/feedback"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

const maxCommentLength = 1000

type SubmitFeedbackInput struct {
	CustomerID uint
	OrderID    uint
	Rating     int
	Comment    string
}

type SubmitFeedback struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitFeedback(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SubmitFeedback {
	return &SubmitFeedback{repo: repo, audit: audit}
}

func (uc *SubmitFeedback) Execute(
	ctx context.Context,
	in SubmitFeedbackInput,
) (*models.Feedback, error) {

	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, err
	}

	comment := strings.TrimSpace(in.Comment)
	if r := []rune(comment); len(r) > maxCommentLength {
		comment = string(r[:maxCommentLength])
	}

	fb := &models.Feedback{
		OrderID:    in.OrderID,
		CustomerID: in.CustomerID,
		Rating:     in.Rating,
		Comment:    comment,
	}
	if err := uc.repo.Create(ctx, fb); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "customer",
		ActorID:   audit.ID(in.CustomerID),
		Action:    "feedback_submitted",
		Entity:    "feedback",
		EntityID:  audit.ID(fb.ID),
		Metadata:  map[string]any{"order_id": fb.OrderID, "rating": fb.Rating},
	})

	return fb, nil
}
