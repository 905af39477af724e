package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/auth"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/homely-bites/internal/infra/repository"
	"github.com/BruksfildServices01/homely-bites/internal/media"
	"github.com/BruksfildServices01/homely-bites/internal/middleware"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

const (
	featuredChefLimit  = 10
	popularItemLimit   = 20
	favoriteChefsLimit = 5
)

var (
	errCustomerNotFound = httperr.NotFound("customer_not_found", "Customer not found")
	errWrongPassword    = httperr.Validation("wrong_password", "Current password is incorrect")
	errBadPincode       = httperr.Validation("invalid_pincode", "Pincode must be 6 digits")
)

type CustomerHandler struct {
	db      *gorm.DB
	hasher  auth.Hasher
	reports *infraRepo.ReportGormRepository
	baseURL string
}

func NewCustomerHandler(
	db *gorm.DB,
	hasher auth.Hasher,
	reports *infraRepo.ReportGormRepository,
	baseURL string,
) *CustomerHandler {
	return &CustomerHandler{
		db:      db,
		hasher:  hasher,
		reports: reports,
		baseURL: baseURL,
	}
}

// --------- Requests ---------

type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone_number" binding:"omitempty,len=10,number"`
}

type AddressRequest struct {
	Label     string   `json:"label"`
	HouseNo   string   `json:"house_no"`
	Street    string   `json:"street" binding:"required"`
	City      string   `json:"city" binding:"required"`
	Pincode   string   `json:"pincode" binding:"required,len=6,number"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ======================================================
// PROFILE
// ======================================================

func (h *CustomerHandler) Profile(c *gin.Context) {
	customer, err := h.load(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, customerView(*customer))
}

func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	var req UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}
	if v := trimmed(req.FirstName); v != nil {
		if *v == "" {
			httperr.Write(c, errInvalidRequest)
			return
		}
		updates["first_name"] = *v
	}
	if v := trimmed(req.LastName); v != nil {
		updates["last_name"] = *v
	}
	if v := trimmed(req.Phone); v != nil {
		updates["phone_number"] = *v
	}

	id := middleware.SubjectID(c)
	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(&models.Customer{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	h.Profile(c)
}

func (h *CustomerHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		httperr.Write(c, errShortPassword)
		return
	}

	customer, err := h.load(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !h.hasher.Compare(customer.PasswordHash, req.CurrentPassword) {
		httperr.Write(c, errWrongPassword)
		return
	}

	hash, err := h.hasher.Hash(req.NewPassword)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := h.db.WithContext(c.Request.Context()).
		Model(customer).
		Update("password_hash", hash).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Password changed successfully"})
}

// ======================================================
// ADDRESSES
// ======================================================

func (h *CustomerHandler) AddAddress(c *gin.Context) {
	var req AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	addr := addressFrom(req)
	addr.SetOwner(models.CustomerOwner(middleware.SubjectID(c)))

	if err := h.db.WithContext(c.Request.Context()).Create(&addr).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, addr)
}

func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	addressID, ok := paramID(c, "address_id")
	if !ok {
		return
	}

	var req AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	owner := models.CustomerOwner(middleware.SubjectID(c))

	var addr models.Address
	if err := h.db.WithContext(ctx).
		Scopes(owner.Scope).
		Where("id = ?", addressID).
		First(&addr).Error; err != nil {
		httperr.Respond(c, notFound(err, errNotFoundAddr))
		return
	}

	next := addressFrom(req)
	if err := h.db.WithContext(ctx).
		Model(&addr).
		Updates(map[string]any{
			"label":     next.Label,
			"house_no":  next.HouseNo,
			"street":    next.Street,
			"city":      next.City,
			"pincode":   next.Pincode,
			"latitude":  next.Latitude,
			"longitude": next.Longitude,
		}).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(ctx).First(&addr, addr.ID).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, addr)
}

func (h *CustomerHandler) DeleteAddress(c *gin.Context) {
	addressID, ok := paramID(c, "address_id")
	if !ok {
		return
	}

	owner := models.CustomerOwner(middleware.SubjectID(c))
	res := h.db.WithContext(c.Request.Context()).
		Scopes(owner.Scope).
		Where("id = ?", addressID).
		Delete(&models.Address{})
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Write(c, errNotFoundAddr)
		return
	}
	httpresp.OK(c, gin.H{"address_id": addressID})
}

// ======================================================
// DASHBOARD
// ======================================================

// Home lists featured chefs serving the customer's first saved pincode and
// their most ordered items.
func (h *CustomerHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	pincode, err := customerPincode(ctx, h.db, middleware.SubjectID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	chefs, err := h.reports.FeaturedChefs(ctx, pincode, featuredChefLimit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ids := make([]uint, 0, len(chefs))
	for i := range chefs {
		ids = append(ids, chefs[i].ChefID)
		chefs[i].ProfileImage = media.ResolveURL(h.baseURL, chefs[i].ProfileImage)
	}

	items, err := h.reports.PopularItems(ctx, ids, popularItemLimit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	for i := range items {
		items[i].ImageURL = media.ResolveURL(h.baseURL, items[i].ImageURL)
	}

	httpresp.OK(c, gin.H{
		"pincode":       pincode,
		"featuredChefs": nonNil(chefs),
		"popularItems":  nonNil(items),
	})
}

func (h *CustomerHandler) Cart(c *gin.Context) {
	addrs, err := h.addresses(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"addresses": addrs})
}

func (h *CustomerHandler) Stats(c *gin.Context) {
	stats, err := h.reports.CustomerOrderStats(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, stats)
}

func (h *CustomerHandler) Settings(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.SubjectID(c)

	customer, err := h.load(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	addrs, err := h.addresses(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"customer":  customerView(*customer),
		"addresses": addrs,
	})
}

func (h *CustomerHandler) Preferences(c *gin.Context) {
	favs, err := h.reports.FavoriteChefs(c.Request.Context(), middleware.SubjectID(c), favoriteChefsLimit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"favoriteChefs": nonNil(favs)})
}

// ======================================================
// HELPERS
// ======================================================

func (h *CustomerHandler) load(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := h.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, notFound(err, errCustomerNotFound)
	}
	return &customer, nil
}

func (h *CustomerHandler) addresses(ctx context.Context, id uint) ([]models.Address, error) {
	addrs := []models.Address{}
	err := h.db.WithContext(ctx).
		Scopes(models.CustomerOwner(id).Scope).
		Order("id ASC").
		Find(&addrs).Error
	return addrs, err
}

// customerPincode is empty when the customer has no saved address.
func customerPincode(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var addr models.Address
	err := db.WithContext(ctx).
		Scopes(models.CustomerOwner(id).Scope).
		Order("id ASC").
		First(&addr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return addr.Pincode, err
}

func addressFrom(req AddressRequest) models.Address {
	return models.Address{
		Label:     strings.TrimSpace(req.Label),
		HouseNo:   strings.TrimSpace(req.HouseNo),
		Street:    strings.TrimSpace(req.Street),
		City:      strings.TrimSpace(req.City),
		Pincode:   strings.TrimSpace(req.Pincode),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
