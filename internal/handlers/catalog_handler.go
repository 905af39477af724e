package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/cache"
	"github.com/BruksfildServices01/homely-bites/internal/dto"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/homely-bites/internal/infra/repository"
	"github.com/BruksfildServices01/homely-bites/internal/media"
	"github.com/BruksfildServices01/homely-bites/internal/middleware"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

var errSearchQuery = httperr.Validation("search_query_required", "Search query is required")

// CatalogHandler serves chef and menu reads. Only active chefs and
// available items are ever listed.
type CatalogHandler struct {
	db      *gorm.DB
	reports *infraRepo.ReportGormRepository
	cache   *cache.Cache
	baseURL string
}

func NewCatalogHandler(
	db *gorm.DB,
	reports *infraRepo.ReportGormRepository,
	c *cache.Cache,
	baseURL string,
) *CatalogHandler {
	return &CatalogHandler{
		db:      db,
		reports: reports,
		cache:   c,
		baseURL: baseURL,
	}
}

// ======================================================
// PUBLIC
// ======================================================

func (h *CatalogHandler) AllChefs(c *gin.Context) {
	chefs, err := cache.Remember(c.Request.Context(), h.cache, cache.ChefListKey(),
		func(ctx context.Context) ([]dto.ChefCardDTO, error) {
			return h.reports.FeaturedChefs(ctx, "", 0)
		})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, h.resolveChefs(chefs))
}

func (h *CatalogHandler) Search(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	if query == "" {
		httperr.Write(c, errSearchQuery)
		return
	}

	var chefs []models.HomeChef
	if err := h.db.WithContext(c.Request.Context()).
		Where("is_active = ? AND LOWER(business_name) LIKE ?", true, "%"+query+"%").
		Order("average_rating DESC, id ASC").
		Find(&chefs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]gin.H, 0, len(chefs))
	for _, ch := range chefs {
		out = append(out, h.publicChef(ch))
	}
	httpresp.OK(c, out)
}

func (h *CatalogHandler) ChefProfile(c *gin.Context) {
	chefID, ok := paramID(c, "chef_id")
	if !ok {
		return
	}

	chef, err := cache.Remember(c.Request.Context(), h.cache, cache.ChefProfileKey(chefID),
		func(ctx context.Context) (models.HomeChef, error) {
			return h.activeChef(ctx, chefID)
		})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, h.publicChef(chef))
}

func (h *CatalogHandler) ChefMenu(c *gin.Context) {
	chefID, ok := paramID(c, "chef_id")
	if !ok {
		return
	}

	items, err := h.menu(c.Request.Context(), chefID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, items)
}

// ======================================================
// CUSTOMER BROWSE
// ======================================================

// BrowseChefs lists the active chefs serving the customer's pincode, or every
// active chef when the customer has no address yet.
func (h *CatalogHandler) BrowseChefs(c *gin.Context) {
	ctx := c.Request.Context()

	pincode, err := customerPincode(ctx, h.db, middleware.SubjectID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	chefs, err := h.reports.FeaturedChefs(ctx, pincode, 0)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, h.resolveChefs(chefs))
}

func (h *CatalogHandler) ChefDetail(c *gin.Context) {
	chefID, ok := paramID(c, "chef_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	chef, err := h.activeChef(ctx, chefID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	items, err := h.menu(ctx, chefID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"chef":  h.publicChef(chef),
		"items": items,
	})
}

// ======================================================
// HELPERS
// ======================================================

func (h *CatalogHandler) activeChef(ctx context.Context, chefID uint) (models.HomeChef, error) {
	var chef models.HomeChef
	err := h.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", chefID, true).
		First(&chef).Error
	return chef, notFound(err, errNotFoundChef)
}

// menu fails with not found for unknown or inactive chefs.
func (h *CatalogHandler) menu(ctx context.Context, chefID uint) ([]models.MenuItem, error) {
	items, err := cache.Remember(ctx, h.cache, cache.ChefMenuKey(chefID),
		func(ctx context.Context) ([]models.MenuItem, error) {
			if _, err := h.activeChef(ctx, chefID); err != nil {
				return nil, err
			}
			items := []models.MenuItem{}
			err := h.db.WithContext(ctx).
				Where("chef_id = ? AND is_available = ?", chefID, true).
				Order("name ASC").
				Find(&items).Error
			return items, err
		})
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].ImageURL = media.ResolveURL(h.baseURL, items[i].ImageURL)
	}
	return nonNil(items), nil
}

func (h *CatalogHandler) publicChef(ch models.HomeChef) gin.H {
	return gin.H{
		"chef_id":        ch.ID,
		"business_name":  ch.BusinessName,
		"description":    ch.Description,
		"phone_number":   ch.Phone,
		"profile_image":  media.ResolveURL(h.baseURL, ch.ProfileImage),
		"average_rating": ch.AverageRating,
	}
}

func (h *CatalogHandler) resolveChefs(chefs []dto.ChefCardDTO) []dto.ChefCardDTO {
	for i := range chefs {
		chefs[i].ProfileImage = media.ResolveURL(h.baseURL, chefs[i].ProfileImage)
	}
	return chefs
}
