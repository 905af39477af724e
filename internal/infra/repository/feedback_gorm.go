package repository

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/homely-bites/internal/domain/feedback"
	orderdomain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/dto"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

type FeedbackGormRepository struct {
	db *gorm.DB
}

func NewFeedbackGormRepository(db *gorm.DB) *FeedbackGormRepository {
	return &FeedbackGormRepository{db: db}
}

func (r *FeedbackGormRepository) Create(
	ctx context.Context,
	fb *models.Feedback,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.
			Where("id = ? AND customer_id = ?", fb.OrderID, fb.CustomerID).
			First(&o).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		if o.Status != string(orderdomain.StatusDelivered) {
			return domain.ErrOrderNotDelivered
		}

		fb.ChefID = o.ChefID
		if err := tx.Create(fb).Error; err != nil {
			if httperr.IsDuplicateKey(err) {
				return domain.ErrAlreadySubmitted
			}
			return err
		}

		var avg float64
		if err := tx.Model(&models.Feedback{}).
			Where("chef_id = ?", o.ChefID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avg).Error; err != nil {
			return err
		}

		return tx.Model(&models.HomeChef{}).
			Where("id = ?", o.ChefID).
			Update("average_rating", math.Round(avg*100)/100).Error
	})
}

type FeedbackFilter struct {
	CustomerID *uint
	ChefID     *uint
}

func (r *FeedbackGormRepository) List(
	ctx context.Context,
	filter FeedbackFilter,
) ([]dto.FeedbackViewDTO, error) {

	q := r.db.WithContext(ctx).Table("feedbacks f").
		Select(`f.id AS feedback_id, f.order_id, f.chef_id, f.customer_id,
			f.rating, f.comment, f.created_at,
			hc.business_name,
			c.first_name AS customer_first_name, c.last_name AS customer_last_name,
			o.grand_total`).
		Joins("LEFT JOIN home_chefs hc ON hc.id = f.chef_id").
		Joins("LEFT JOIN customers c ON c.id = f.customer_id").
		Joins("LEFT JOIN orders o ON o.id = f.order_id")

	if filter.CustomerID != nil {
		q = q.Where("f.customer_id = ?", *filter.CustomerID)
	}
	if filter.ChefID != nil {
		q = q.Where("f.chef_id = ?", *filter.ChefID)
	}

	var out []dto.FeedbackViewDTO
	err := q.Order("f.created_at DESC, f.id DESC").Scan(&out).Error
	return out, err
}

var _ domain.Repository = (*FeedbackGormRepository)(nil)
