package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	"github.com/BruksfildServices01/homely-bites/internal/auth"
	"github.com/BruksfildServices01/homely-bites/internal/cache"
	"github.com/BruksfildServices01/homely-bites/internal/domain/courier"
	orderDomain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/homely-bites/internal/infra/repository"
	"github.com/BruksfildServices01/homely-bites/internal/middleware"
	"github.com/BruksfildServices01/homely-bites/internal/models"
	"github.com/BruksfildServices01/homely-bites/internal/validators"
)

var errCourierBusy = httperr.Conflict("courier_has_active_orders", "Delivery person has active orders")

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db        *gorm.DB
	hasher    auth.Hasher
	feedbacks *infraRepo.FeedbackGormRepository
	cache     *cache.Cache
	audit     *audit.Dispatcher
}

func NewAdminHandler(
	db *gorm.DB,
	hasher auth.Hasher,
	feedbacks *infraRepo.FeedbackGormRepository,
	c *cache.Cache,
	audit *audit.Dispatcher,
) *AdminHandler {
	return &AdminHandler{
		db:        db,
		hasher:    hasher,
		feedbacks: feedbacks,
		cache:     c,
		audit:     audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AdminServiceAreaRequest struct {
	ChefID uint `json:"chef_id" binding:"required"`
	ServiceAreaRequest
}

type CreateCourierRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone_number" binding:"required,len=10,number"`
	Email         string `json:"email" binding:"omitempty,email"`
	VehicleType   string `json:"vehicle_type"`
	VehicleNumber string `json:"vehicle_number"`
	Password      string `json:"password"`
}

type SetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ======================================================
// CHEFS
// ======================================================

func (h *AdminHandler) Chefs(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("id ASC")
	switch strings.ToLower(c.Query("active")) {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}

	var chefs []models.HomeChef
	if err := q.Find(&chefs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]gin.H, 0, len(chefs))
	for _, ch := range chefs {
		out = append(out, chefView(ch))
	}
	httpresp.OK(c, out)
}

func (h *AdminHandler) ApproveChef(c *gin.Context) {
	h.setChefActive(c, true)
}

func (h *AdminHandler) BlockChef(c *gin.Context) {
	h.setChefActive(c, false)
}

// setChefActive is idempotent. Unknown chefs are a 404.
func (h *AdminHandler) setChefActive(c *gin.Context, active bool) {
	chefID, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var chef models.HomeChef
	if err := h.db.WithContext(ctx).First(&chef, chefID).Error; err != nil {
		httperr.Respond(c, notFound(err, errNotFoundChef))
		return
	}

	if chef.IsActive != active {
		if err := h.db.WithContext(ctx).
			Model(&chef).
			Update("is_active", active).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}
	h.cache.Invalidate(ctx, cache.ChefKeys(chefID)...)

	action := "chef_blocked"
	if active {
		action = "chef_approved"
	}
	h.dispatch(c, action, "home_chef", chefID, gin.H{"was_active": chef.IsActive})

	chef.IsActive = active
	httpresp.OK(c, chefView(chef))
}

func (h *AdminHandler) ChefFeedbacks(c *gin.Context) {
	chefID, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := h.feedbacks.List(c.Request.Context(), infraRepo.FeedbackFilter{ChefID: &chefID})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AdminHandler) AddServiceArea(c *gin.Context) {
	var req AdminServiceAreaRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	var chef models.HomeChef
	if err := h.db.WithContext(ctx).First(&chef, req.ChefID).Error; err != nil {
		httperr.Respond(c, notFound(err, errNotFoundChef))
		return
	}

	area, err := createServiceArea(ctx, h.db, chef.ID, req.ServiceAreaRequest)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.dispatch(c, "service_area_added", "service_area", area.ID, gin.H{
		"chef_id": area.ChefID,
		"pincode": area.Pincode,
	})
	httpresp.Created(c, area)
}

// ======================================================
// CUSTOMERS / FEEDBACK
// ======================================================

func (h *AdminHandler) Customers(c *gin.Context) {
	var customers []models.Customer
	if err := h.db.WithContext(c.Request.Context()).
		Order("id ASC").
		Find(&customers).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]gin.H, 0, len(customers))
	for _, cu := range customers {
		out = append(out, customerView(cu))
	}
	httpresp.OK(c, out)
}

func (h *AdminHandler) Feedbacks(c *gin.Context) {
	out, err := h.feedbacks.List(c.Request.Context(), infraRepo.FeedbackFilter{})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// DELIVERY PERSONNEL
// ======================================================

func (h *AdminHandler) Couriers(c *gin.Context) {
	var list []models.DeliveryPerson
	if err := h.db.WithContext(c.Request.Context()).
		Order("id ASC").
		Find(&list).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, d := range list {
		out = append(out, courierView(d))
	}
	httpresp.OK(c, out)
}

// CreateCourier provisions an account. Without a password the courier
// cannot sign in until one is set.
func (h *AdminHandler) CreateCourier(c *gin.Context) {
	var req CreateCourierRequest
	if !bindJSON(c, &req) {
		return
	}

	d := models.DeliveryPerson{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Phone:         req.Phone,
		Email:         validators.NormalizeEmail(req.Email),
		VehicleType:   strings.TrimSpace(req.VehicleType),
		VehicleNumber: strings.TrimSpace(req.VehicleNumber),
		Status:        string(courier.InitialStatus()),
	}

	if req.Password != "" {
		if len(req.Password) < minPasswordLength {
			httperr.Write(c, errShortPassword)
			return
		}
		hash, err := h.hasher.Hash(req.Password)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		d.PasswordHash = &hash
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&d).Error; err != nil {
		if httperr.IsDuplicateKey(err) {
			httperr.Write(c, errPhoneRegistered)
			return
		}
		httperr.Respond(c, err)
		return
	}

	h.dispatch(c, "courier_created", "delivery_person", d.ID, nil)
	httpresp.Created(c, courierView(d))
}

func (h *AdminHandler) DeleteCourier(c *gin.Context) {
	driverID, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var active int64
	if err := h.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("delivery_person_id = ? AND status IN ?", driverID, orderDomain.ActiveNames()).
		Count(&active).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if active > 0 {
		httperr.Write(c, errCourierBusy)
		return
	}

	res := h.db.WithContext(ctx).Delete(&models.DeliveryPerson{}, driverID)
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Write(c, errCourierNotFound)
		return
	}

	h.dispatch(c, "courier_deleted", "delivery_person", driverID, nil)
	httpresp.OK(c, gin.H{"driver_id": driverID})
}

func (h *AdminHandler) SetCourierPassword(c *gin.Context) {
	driverID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req SetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.Password) < minPasswordLength {
		httperr.Write(c, errShortPassword)
		return
	}
	ctx := c.Request.Context()

	var d models.DeliveryPerson
	if err := h.db.WithContext(ctx).First(&d, driverID).Error; err != nil {
		httperr.Respond(c, notFound(err, errCourierNotFound))
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := h.db.WithContext(ctx).
		Model(&d).
		Update("password_hash", hash).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.dispatch(c, "courier_password_set", "delivery_person", driverID, nil)
	httpresp.OK(c, gin.H{"driver_id": driverID, "message": "Password updated successfully"})
}

// ======================================================
// HELPERS
// ======================================================

func (h *AdminHandler) dispatch(c *gin.Context, action, entity string, entityID uint, meta any) {
	var actorID *uint
	if id := middleware.SubjectID(c); id != 0 {
		actorID = audit.ID(id)
	}

	h.audit.Dispatch(audit.Event{
		ActorRole: string(auth.RoleAdmin),
		ActorID:   actorID,
		Action:    action,
		Entity:    entity,
		EntityID:  audit.ID(entityID),
		Metadata:  meta,
	})
}
