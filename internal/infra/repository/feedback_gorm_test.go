package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/homely-bites/internal/dbtest"
	domain "github.com/BruksfildServices01/homely-bites/internal/domain/feedback"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

func TestFeedbackCreate(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)
	repo := NewFeedbackGormRepository(db)
	ctx := context.Background()

	placed := dbtest.Order(t, db, f, "Placed", nil)
	first := dbtest.Order(t, db, f, "Delivered", nil)
	second := dbtest.Order(t, db, f, "Delivered", nil)

	t.Run("order not delivered", func(t *testing.T) {
		err := repo.Create(ctx, &models.Feedback{OrderID: placed.ID, CustomerID: f.Customer.ID, Rating: 5})
		assert.ErrorIs(t, err, domain.ErrOrderNotDelivered)
	})

	t.Run("someone else's order", func(t *testing.T) {
		err := repo.Create(ctx, &models.Feedback{OrderID: first.ID, CustomerID: f.Customer.ID + 1, Rating: 5})
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})

	t.Run("recomputes chef rating", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Feedback{OrderID: first.ID, CustomerID: f.Customer.ID, Rating: 5}))
		require.NoError(t, repo.Create(ctx, &models.Feedback{OrderID: second.ID, CustomerID: f.Customer.ID, Rating: 4}))

		var chef models.HomeChef
		require.NoError(t, db.First(&chef, f.Chef.ID).Error)
		assert.InDelta(t, 4.5, chef.AverageRating, 0.001)
	})

	t.Run("one per order", func(t *testing.T) {
		err := repo.Create(ctx, &models.Feedback{OrderID: first.ID, CustomerID: f.Customer.ID, Rating: 1})
		assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)
	})

	t.Run("store rejects out of range rating", func(t *testing.T) {
		err := db.Create(&models.Feedback{OrderID: placed.ID, CustomerID: f.Customer.ID, ChefID: f.Chef.ID, Rating: 9}).Error
		assert.Error(t, err)
	})

	t.Run("list by customer and chef", func(t *testing.T) {
		mine, err := repo.List(ctx, FeedbackFilter{CustomerID: &f.Customer.ID})
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, "Asha's Kitchen", mine[0].BusinessName)

		byChef, err := repo.List(ctx, FeedbackFilter{ChefID: &f.Chef.ID})
		require.NoError(t, err)
		assert.Len(t, byChef, 2)
	})
}
