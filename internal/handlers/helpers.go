package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

var (
	errInvalidRequest = httperr.Validation("invalid_request", "Missing required fields")
	errInvalidID      = httperr.Validation("invalid_id", "Invalid id")
	errNotFoundChef   = httperr.NotFound("chef_not_found", "Chef not found")
	errNotFoundAddr   = httperr.NotFound("address_not_found", "Address not found")
)

// formatErrors names the error reported when a present field fails its
// format tag. Missing fields stay errInvalidRequest.
var formatErrors = map[string]*httperr.Error{
	"Email":   errBadEmail,
	"Phone":   errBadPhone,
	"Pincode": errBadPincode,
}

// bindJSON writes a 400 and returns false when the body does not bind.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.Write(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) *httperr.Error {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return errInvalidRequest
	}
	for _, fe := range fields {
		if fe.Tag() == "required" {
			return errInvalidRequest
		}
	}
	for _, fe := range fields {
		if e, ok := formatErrors[fe.Field()]; ok {
			return e
		}
	}
	return errInvalidRequest
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.Write(c, errInvalidID)
		return 0, false
	}
	return uint(id), true
}

// pageParams reads page and limit, clamping limit to maxPageLimit.
func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit, (page - 1) * limit
}

// notFound swaps a missing-row error for a domain error.
func notFound(err error, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// --------------------------------------------------
// views
// --------------------------------------------------

func customerView(c models.Customer) gin.H {
	return gin.H{
		"customer_id":  c.ID,
		"name":         c.FullName(),
		"first_name":   c.FirstName,
		"last_name":    c.LastName,
		"email":        c.Email,
		"phone_number": c.Phone,
		"created_at":   c.CreatedAt,
	}
}

func chefView(ch models.HomeChef) gin.H {
	return gin.H{
		"chef_id":        ch.ID,
		"business_name":  ch.BusinessName,
		"contact_name":   ch.ContactName,
		"email":          ch.Email,
		"phone_number":   ch.Phone,
		"description":    ch.Description,
		"profile_image":  ch.ProfileImage,
		"average_rating": ch.AverageRating,
		"is_active":      ch.IsActive,
		"created_at":     ch.CreatedAt,
	}
}

func courierView(d models.DeliveryPerson) gin.H {
	return gin.H{
		"driver_id":      d.ID,
		"first_name":     d.FirstName,
		"last_name":      d.LastName,
		"phone_number":   d.Phone,
		"email":          d.Email,
		"vehicle_type":   d.VehicleType,
		"vehicle_number": d.VehicleNumber,
		"status":         d.Status,
		"has_password":   d.PasswordHash != nil,
		"created_at":     d.CreatedAt,
	}
}
