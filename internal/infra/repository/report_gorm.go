package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/dto"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

// ReportGormRepository holds the read-only aggregates shown on dashboards.
type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *ReportGormRepository) CustomerOrderStats(
	ctx context.Context,
	customerID uint,
) (dto.OrderStatsDTO, error) {

	var out dto.OrderStatsDTO
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select(`COUNT(*) AS total_orders,
			COALESCE(SUM(CASE WHEN status NOT IN (?, ?) THEN 1 ELSE 0 END), 0) AS active_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS delivered_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS cancelled_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN grand_total ELSE 0 END), 0) AS total_spent`,
			string(domain.StatusDelivered), string(domain.StatusCancelled),
			string(domain.StatusDelivered),
			string(domain.StatusCancelled),
			string(domain.StatusDelivered),
		).
		Where("customer_id = ?", customerID).
		Scan(&out).Error
	return out, err
}

// FavoriteChefs ranks the chefs a customer ordered from most.
func (r *ReportGormRepository) FavoriteChefs(
	ctx context.Context,
	customerID uint,
	limit int,
) ([]dto.FavoriteChefDTO, error) {

	var out []dto.FavoriteChefDTO
	err := r.db.WithContext(ctx).Table("orders o").
		Select(`hc.id AS chef_id, hc.business_name, hc.average_rating,
			COUNT(o.id) AS order_count`).
		Joins("JOIN home_chefs hc ON hc.id = o.chef_id").
		Where("o.customer_id = ?", customerID).
		Group("hc.id, hc.business_name, hc.average_rating").
		Order("order_count DESC, hc.id ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// --------------------------------------------------
// Chef
// --------------------------------------------------

// ChefEarnings sums delivered orders. The boundaries are computed by the
// caller in the business timezone.
func (r *ReportGormRepository) ChefEarnings(
	ctx context.Context,
	chefID uint,
	dayStart, weekStart, monthStart time.Time,
) (dto.EarningsDTO, error) {

	var out dto.EarningsDTO
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select(`COALESCE(SUM(grand_total), 0) AS total_earnings,
			COALESCE(SUM(CASE WHEN delivered_at >= ? THEN grand_total ELSE 0 END), 0) AS today_earnings,
			COALESCE(SUM(CASE WHEN delivered_at >= ? THEN grand_total ELSE 0 END), 0) AS week_earnings,
			COALESCE(SUM(CASE WHEN delivered_at >= ? THEN grand_total ELSE 0 END), 0) AS month_earnings,
			COUNT(*) AS delivered_orders`,
			dayStart, weekStart, monthStart,
		).
		Where("chef_id = ? AND status = ?", chefID, string(domain.StatusDelivered)).
		Scan(&out).Error
	return out, err
}

// --------------------------------------------------
// Courier
// --------------------------------------------------

func (r *ReportGormRepository) CourierStats(
	ctx context.Context,
	driverID uint,
) (dto.CourierStatsDTO, error) {

	var out dto.CourierStatsDTO
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select(`COUNT(*) AS total_deliveries,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed_deliveries,
			COALESCE(SUM(CASE WHEN status <> ? THEN 1 ELSE 0 END), 0) AS pending_deliveries,
			COALESCE(SUM(CASE WHEN status = ? THEN grand_total ELSE 0 END), 0) AS total_amount`,
			string(domain.StatusDelivered),
			string(domain.StatusDelivered),
			string(domain.StatusDelivered),
		).
		Where("delivery_person_id = ?", driverID).
		Scan(&out).Error
	if err != nil {
		return out, err
	}

	err = r.db.WithContext(ctx).Table("feedbacks f").
		Joins("JOIN orders o ON o.id = f.order_id").
		Where("o.delivery_person_id = ?", driverID).
		Select("COALESCE(AVG(f.rating), 0)").
		Scan(&out.AverageRating).Error
	return out, err
}

// --------------------------------------------------
// Catalog feed
// --------------------------------------------------

// FeaturedChefs lists active chefs by rating. An empty pincode lists every
// active chef, otherwise only those serving it.
func (r *ReportGormRepository) FeaturedChefs(
	ctx context.Context,
	pincode string,
	limit int,
) ([]dto.ChefCardDTO, error) {

	q := r.db.WithContext(ctx).Table("home_chefs hc").
		Where("hc.is_active = ?", true)

	if pincode != "" {
		q = q.Select(`hc.id AS chef_id, hc.business_name, hc.description, hc.profile_image,
			hc.average_rating, sa.delivery_fee,
			(SELECT COUNT(*) FROM orders o WHERE o.chef_id = hc.id) AS total_orders`).
			Joins("JOIN service_areas sa ON sa.chef_id = hc.id AND sa.pincode = ?", pincode)
	} else {
		q = q.Select(`hc.id AS chef_id, hc.business_name, hc.description, hc.profile_image,
			hc.average_rating,
			(SELECT COUNT(*) FROM orders o WHERE o.chef_id = hc.id) AS total_orders`)
	}

	q = q.Order("hc.average_rating DESC, hc.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []dto.ChefCardDTO
	err := q.Scan(&out).Error
	return out, err
}

// PopularItems ranks available items of the given chefs by units ordered.
func (r *ReportGormRepository) PopularItems(
	ctx context.Context,
	chefIDs []uint,
	limit int,
) ([]dto.PopularItemDTO, error) {

	var out []dto.PopularItemDTO
	if len(chefIDs) == 0 {
		return out, nil
	}

	q := r.db.WithContext(ctx).Table("menu_items mi").
		Select(`mi.id AS item_id, mi.name, mi.base_price, mi.description, mi.image_url,
			mi.chef_id, hc.business_name,
			(SELECT COALESCE(SUM(oi.quantity), 0) FROM order_items oi WHERE oi.item_id = mi.id) AS order_count`).
		Joins("JOIN home_chefs hc ON hc.id = mi.chef_id").
		Where("mi.chef_id IN ? AND mi.is_available = ? AND hc.is_active = ?", chefIDs, true, true).
		Order("order_count DESC, mi.base_price ASC, mi.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	err := q.Scan(&out).Error
	return out, err
}
