package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/cache"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
	"github.com/BruksfildServices01/homely-bites/internal/media"
	"github.com/BruksfildServices01/homely-bites/internal/middleware"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

var (
	errNameAndPrice     = httperr.Validation("name_and_price_required", "Name and price are required")
	errMenuItemNotFound = httperr.NotFound("menu_item_not_found", "Menu item not found")
)

const imageField = "image"

// MenuHandler is the owning chef's view of their menu. Unavailable items
// are included.
type MenuHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
	cache    *cache.Cache
	baseURL  string
}

func NewMenuHandler(
	db *gorm.DB,
	uploader *media.Uploader,
	c *cache.Cache,
	baseURL string,
) *MenuHandler {
	return &MenuHandler{
		db:       db,
		uploader: uploader,
		cache:    c,
		baseURL:  baseURL,
	}
}

// --------- Requests ---------

// MenuItemRequest binds from JSON or from a multipart form carrying an
// optional image file.
type MenuItemRequest struct {
	Name        *string  `json:"name" form:"name"`
	BasePrice   *float64 `json:"base_price" form:"base_price"`
	Description *string  `json:"description" form:"description"`
	Category    *string  `json:"category" form:"category"`
	IsVeg       *bool    `json:"is_veg" form:"is_veg"`
	IsAvailable *bool    `json:"is_available" form:"is_available"`
}

// --------- Handlers ---------

func (h *MenuHandler) List(c *gin.Context) {
	items := []models.MenuItem{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("chef_id = ?", middleware.SubjectID(c)).
		Order("id ASC").
		Find(&items).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	for i := range items {
		items[i].ImageURL = media.ResolveURL(h.baseURL, items[i].ImageURL)
	}
	httpresp.OK(c, items)
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.Write(c, errNameAndPrice)
		return
	}

	name := trimmed(req.Name)
	if name == nil || *name == "" || req.BasePrice == nil || *req.BasePrice <= 0 {
		httperr.Write(c, errNameAndPrice)
		return
	}

	imageURL, err := h.upload(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	chefID := middleware.SubjectID(c)
	item := models.MenuItem{
		ChefID:      chefID,
		Name:        *name,
		BasePrice:   *req.BasePrice,
		ImageURL:    imageURL,
		IsAvailable: true,
	}
	if v := trimmed(req.Description); v != nil {
		item.Description = *v
	}
	if v := trimmed(req.Category); v != nil {
		item.Category = *v
	}
	if req.IsVeg != nil {
		item.IsVeg = *req.IsVeg
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.ChefMenuKey(chefID))

	item.ImageURL = media.ResolveURL(h.baseURL, item.ImageURL)
	httpresp.Created(c, item)
}

func (h *MenuHandler) Update(c *gin.Context) {
	itemID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.Write(c, errInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	chefID := middleware.SubjectID(c)

	var item models.MenuItem
	if err := h.db.WithContext(ctx).
		Where("id = ? AND chef_id = ?", itemID, chefID).
		First(&item).Error; err != nil {
		httperr.Respond(c, notFound(err, errMenuItemNotFound))
		return
	}

	updates := map[string]any{}
	if v := trimmed(req.Name); v != nil {
		if *v == "" {
			httperr.Write(c, errNameAndPrice)
			return
		}
		updates["name"] = *v
	}
	if req.BasePrice != nil {
		if *req.BasePrice <= 0 {
			httperr.Write(c, errNameAndPrice)
			return
		}
		updates["base_price"] = *req.BasePrice
	}
	if v := trimmed(req.Description); v != nil {
		updates["description"] = *v
	}
	if v := trimmed(req.Category); v != nil {
		updates["category"] = *v
	}
	if req.IsVeg != nil {
		updates["is_veg"] = *req.IsVeg
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	imageURL, err := h.upload(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if imageURL != "" {
		updates["image_url"] = imageURL
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(&item).Updates(updates).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
		h.cache.Invalidate(ctx, cache.ChefMenuKey(chefID))
	}

	if err := h.db.WithContext(ctx).First(&item, item.ID).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	item.ImageURL = media.ResolveURL(h.baseURL, item.ImageURL)
	httpresp.OK(c, item)
}

// upload stores the optional image part. JSON requests never carry one.
func (h *MenuHandler) upload(c *gin.Context) (string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return "", nil
	}

	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", media.ErrUnreadable
	}
	return h.uploader.Upload(c.Request.Context(), fh)
}
