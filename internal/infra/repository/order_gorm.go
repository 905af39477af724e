package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/dto"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *OrderGormRepository) GetActiveChef(
	ctx context.Context,
	chefID uint,
) (*models.HomeChef, error) {

	var chef models.HomeChef
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", chefID, true).
		First(&chef).Error; err != nil {
		return nil, err
	}
	return &chef, nil
}

func (r *OrderGormRepository) GetOwnedAddress(
	ctx context.Context,
	owner models.OwnerRef,
	addressID uint,
) (*models.Address, error) {

	var addr models.Address
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope).
		Where("id = ?", addressID).
		First(&addr).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *OrderGormRepository) GetServiceArea(
	ctx context.Context,
	chefID uint,
	pincode string,
) (*models.ServiceArea, error) {

	var area models.ServiceArea
	if err := r.db.WithContext(ctx).
		Where("chef_id = ? AND pincode = ?", chefID, pincode).
		First(&area).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *OrderGormRepository) GetCourier(
	ctx context.Context,
	driverID uint,
) (*models.DeliveryPerson, error) {

	var d models.DeliveryPerson
	if err := r.db.WithContext(ctx).First(&d, driverID).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *OrderGormRepository) ListChefItems(
	ctx context.Context,
	chefID uint,
	itemIDs []uint,
) ([]models.MenuItem, error) {

	var items []models.MenuItem
	if len(itemIDs) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Where("chef_id = ? AND id IN ?", chefID, itemIDs).
		Find(&items).Error
	return items, err
}

// --------------------------------------------------
// Order (create / read)
// --------------------------------------------------

// CreateOrder writes the header, every line and the first status log entry
// in one transaction.
func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	o *models.Order,
	actor domain.Actor,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := o.Items
		if err := tx.Omit("Items").Create(o).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = o.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		o.Items = items

		return tx.Create(&models.OrderStatusLog{
			OrderID:   o.ID,
			ToStatus:  o.Status,
			ActorRole: string(actor.Role),
			ActorID:   actor.ID,
			CreatedAt: o.OrderTime,
		}).Error
	})
}

func (r *OrderGormRepository) GetOrder(
	ctx context.Context,
	orderID uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderFor only finds the order when actor owns it. Admins see every order.
func (r *OrderGormRepository) GetOrderFor(
	ctx context.Context,
	orderID uint,
	actor domain.Actor,
) (*models.Order, error) {

	q, err := ownedBy(r.db.WithContext(ctx), actor)
	if err != nil {
		return nil, err
	}

	var o models.Order
	if err := q.Preload("Items").
		Where("id = ?", orderID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) ListOrders(
	ctx context.Context,
	filter domain.ListFilter,
) ([]dto.OrderListDTO, int64, error) {

	q := r.db.WithContext(ctx).Table("orders o")
	if filter.CustomerID != nil {
		q = q.Where("o.customer_id = ?", *filter.CustomerID)
	}
	if filter.ChefID != nil {
		q = q.Where("o.chef_id = ?", *filter.ChefID)
	}
	if filter.DeliveryPersonID != nil {
		q = q.Where("o.delivery_person_id = ?", *filter.DeliveryPersonID)
	}
	if filter.Status != nil {
		q = q.Where("o.status = ?", string(*filter.Status))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = withListColumns(q).Order("o.order_time DESC, o.id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var out []dto.OrderListDTO
	if err := q.Scan(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListClaimable returns the pool of ready orders no courier has taken yet.
func (r *OrderGormRepository) ListClaimable(
	ctx context.Context,
) ([]dto.OrderListDTO, error) {

	statuses := make([]string, 0, len(domain.Claimable()))
	for _, s := range domain.Claimable() {
		statuses = append(statuses, string(s))
	}

	var out []dto.OrderListDTO
	err := withListColumns(r.db.WithContext(ctx).Table("orders o")).
		Where("o.delivery_person_id IS NULL AND o.status IN ?", statuses).
		Order("o.order_time ASC, o.id ASC").
		Scan(&out).Error
	return out, err
}

// --------------------------------------------------
// Order (state change)
// --------------------------------------------------

// Transition applies t only if the order is still in t.From and owned by
// t.Actor. It reports false when nothing matched.
func (r *OrderGormRepository) Transition(
	ctx context.Context,
	t domain.Transition,
) (bool, error) {

	updates := map[string]any{
		"status":     string(t.To),
		"updated_at": t.At,
	}
	switch t.To {
	case domain.StatusDelivered:
		updates["delivered_at"] = t.At
	case domain.StatusCancelled:
		updates["cancelled_at"] = t.At
	}

	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := ownedBy(tx.Model(&models.Order{}), t.Actor)
		if err != nil {
			return err
		}

		res := q.Where("id = ? AND status = ?", t.OrderID, string(t.From)).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		applied = true
		return tx.Create(statusLog(t)).Error
	})
	return applied, err
}

// Claim assigns the courier only while the order is still unassigned and in
// t.From. Two couriers racing on the same order cannot both match.
func (r *OrderGormRepository) Claim(
	ctx context.Context,
	t domain.Transition,
) (bool, error) {

	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND delivery_person_id IS NULL AND status = ?", t.OrderID, string(t.From)).
			Where("EXISTS (SELECT 1 FROM delivery_personnel dp WHERE dp.id = ?)", t.Actor.ID).
			Updates(map[string]any{
				"delivery_person_id": t.Actor.ID,
				"status":             string(t.To),
				"assigned_at":        t.At,
				"updated_at":         t.At,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		applied = true
		return tx.Create(statusLog(t)).Error
	})
	return applied, err
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func ownedBy(q *gorm.DB, actor domain.Actor) (*gorm.DB, error) {
	switch actor.Role {
	case domain.ActorCustomer:
		return q.Where("customer_id = ?", actor.ID), nil
	case domain.ActorChef:
		return q.Where("chef_id = ?", actor.ID), nil
	case domain.ActorCourier:
		return q.Where("delivery_person_id = ?", actor.ID), nil
	case domain.ActorAdmin:
		return q, nil
	}
	return nil, domain.ErrOrderNotFound
}

func withListColumns(q *gorm.DB) *gorm.DB {
	return q.Select(`o.id AS order_id, o.customer_id, o.chef_id, o.delivery_person_id,
		o.status, o.subtotal, o.delivery_fee, o.grand_total, o.order_time,
		hc.business_name,
		c.first_name AS customer_first_name, c.last_name AS customer_last_name,
		c.phone_number AS customer_phone,
		a.street, a.city, a.pincode,
		(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id) AS item_count`).
		Joins("LEFT JOIN home_chefs hc ON hc.id = o.chef_id").
		Joins("LEFT JOIN customers c ON c.id = o.customer_id").
		Joins("LEFT JOIN addresses a ON a.id = o.delivery_address_id")
}

func statusLog(t domain.Transition) *models.OrderStatusLog {
	return &models.OrderStatusLog{
		OrderID:    t.OrderID,
		FromStatus: string(t.From),
		ToStatus:   string(t.To),
		ActorRole:  string(t.Actor.Role),
		ActorID:    t.Actor.ID,
		CreatedAt:  t.At,
	}
}

var _ domain.Repository = (*OrderGormRepository)(nil)
