package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	"github.com/BruksfildServices01/homely-bites/internal/auth"
	"github.com/BruksfildServices01/homely-bites/internal/cache"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/homely-bites/internal/infra/repository"
	"github.com/BruksfildServices01/homely-bites/internal/media"
	"github.com/BruksfildServices01/homely-bites/internal/middleware"
	"github.com/BruksfildServices01/homely-bites/internal/models"
	"github.com/BruksfildServices01/homely-bites/internal/timezone"
)

var (
	errAreaExists   = httperr.Conflict("service_area_exists", "Service area already exists for this pincode")
	errAreaNotFound = httperr.NotFound("service_area_not_found", "Service area not found")
	errBadFee       = httperr.Validation("invalid_delivery_fee", "Delivery fee cannot be negative")
)

type ChefHandler struct {
	db        *gorm.DB
	reports   *infraRepo.ReportGormRepository
	feedbacks *infraRepo.FeedbackGormRepository
	cache     *cache.Cache
	audit     *audit.Dispatcher
	timezone  string
	baseURL   string
}

func NewChefHandler(
	db *gorm.DB,
	reports *infraRepo.ReportGormRepository,
	feedbacks *infraRepo.FeedbackGormRepository,
	c *cache.Cache,
	audit *audit.Dispatcher,
	tz string,
	baseURL string,
) *ChefHandler {
	return &ChefHandler{
		db:        db,
		reports:   reports,
		feedbacks: feedbacks,
		cache:     c,
		audit:     audit,
		timezone:  tz,
		baseURL:   baseURL,
	}
}

// --------- Requests ---------

type UpdateChefRequest struct {
	BusinessName *string `json:"business_name"`
	ContactName  *string `json:"contact_name"`
	Phone        *string `json:"phone_number" binding:"omitempty,len=10,number"`
	Description  *string `json:"description"`
}

type ServiceAreaRequest struct {
	Pincode     string   `json:"pincode" binding:"required,len=6,number"`
	DeliveryFee *float64 `json:"delivery_fee" binding:"required"`
}

// ======================================================
// PROFILE
// ======================================================

func (h *ChefHandler) Profile(c *gin.Context) {
	var chef models.HomeChef
	if err := h.db.WithContext(c.Request.Context()).
		First(&chef, middleware.SubjectID(c)).Error; err != nil {
		httperr.Respond(c, notFound(err, errNotFoundChef))
		return
	}

	view := chefView(chef)
	view["profile_image"] = media.ResolveURL(h.baseURL, chef.ProfileImage)
	httpresp.OK(c, view)
}

func (h *ChefHandler) UpdateProfile(c *gin.Context) {
	var req UpdateChefRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}
	if v := trimmed(req.BusinessName); v != nil {
		if *v == "" {
			httperr.Write(c, errInvalidRequest)
			return
		}
		updates["business_name"] = *v
	}
	if v := trimmed(req.ContactName); v != nil {
		updates["contact_name"] = *v
	}
	if v := trimmed(req.Phone); v != nil {
		updates["phone_number"] = *v
	}
	if v := trimmed(req.Description); v != nil {
		updates["description"] = *v
	}

	chefID := middleware.SubjectID(c)
	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(&models.HomeChef{}).
			Where("id = ?", chefID).
			Updates(updates).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
		h.cache.Invalidate(c.Request.Context(), cache.ChefKeys(chefID)...)
	}

	h.Profile(c)
}

// ======================================================
// SERVICE AREAS
// ======================================================

func (h *ChefHandler) ServiceAreas(c *gin.Context) {
	areas := []models.ServiceArea{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("chef_id = ?", middleware.SubjectID(c)).
		Order("pincode ASC").
		Find(&areas).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, areas)
}

func (h *ChefHandler) AddServiceArea(c *gin.Context) {
	var req ServiceAreaRequest
	if !bindJSON(c, &req) {
		return
	}

	area, err := createServiceArea(c.Request.Context(), h.db, middleware.SubjectID(c), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorRole: string(auth.RoleChef),
		ActorID:   audit.ID(area.ChefID),
		Action:    "service_area_added",
		Entity:    "service_area",
		EntityID:  audit.ID(area.ID),
		Metadata:  gin.H{"pincode": area.Pincode, "delivery_fee": area.DeliveryFee},
	})
	httpresp.Created(c, area)
}

func (h *ChefHandler) DeleteServiceArea(c *gin.Context) {
	areaID, ok := paramID(c, "area_id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND chef_id = ?", areaID, middleware.SubjectID(c)).
		Delete(&models.ServiceArea{})
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Write(c, errAreaNotFound)
		return
	}
	httpresp.OK(c, gin.H{"area_id": areaID})
}

// createServiceArea is shared with the admin route.
func createServiceArea(ctx context.Context, db *gorm.DB, chefID uint, req ServiceAreaRequest) (*models.ServiceArea, error) {
	if *req.DeliveryFee < 0 {
		return nil, errBadFee
	}

	area := models.ServiceArea{
		ChefID:      chefID,
		Pincode:     req.Pincode,
		DeliveryFee: *req.DeliveryFee,
	}
	if err := db.WithContext(ctx).Create(&area).Error; err != nil {
		if httperr.IsDuplicateKey(err) {
			return nil, errAreaExists
		}
		return nil, err
	}
	return &area, nil
}

// ======================================================
// REPORTS
// ======================================================

// Earnings buckets delivered orders by day, week and month in the business
// timezone.
func (h *ChefHandler) Earnings(c *gin.Context) {
	now := timezone.NowIn(h.timezone)

	out, err := h.reports.ChefEarnings(
		c.Request.Context(),
		middleware.SubjectID(c),
		timezone.StartOfDay(now).UTC(),
		timezone.StartOfWeek(now).UTC(),
		timezone.StartOfMonth(now).UTC(),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ChefHandler) Feedbacks(c *gin.Context) {
	chefID := middleware.SubjectID(c)
	out, err := h.feedbacks.List(c.Request.Context(), infraRepo.FeedbackFilter{ChefID: &chefID})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}
