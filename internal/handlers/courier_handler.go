package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/domain/courier"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/homely-bites/internal/infra/repository"
	"github.com/BruksfildServices01/homely-bites/internal/middleware"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

var errCourierNotFound = httperr.NotFound("courier_not_found", "Delivery person not found")

type CourierHandler struct {
	db      *gorm.DB
	reports *infraRepo.ReportGormRepository
}

func NewCourierHandler(db *gorm.DB, reports *infraRepo.ReportGormRepository) *CourierHandler {
	return &CourierHandler{db: db, reports: reports}
}

type CourierStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *CourierHandler) Profile(c *gin.Context) {
	var d models.DeliveryPerson
	if err := h.db.WithContext(c.Request.Context()).
		First(&d, middleware.SubjectID(c)).Error; err != nil {
		httperr.Respond(c, notFound(err, errCourierNotFound))
		return
	}
	httpresp.OK(c, courierView(d))
}

func (h *CourierHandler) Statistics(c *gin.Context) {
	stats, err := h.reports.CourierStats(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, stats)
}

// SetStatus stores whatever the courier reports. It is not checked against
// the courier's active orders.
func (h *CourierHandler) SetStatus(c *gin.Context) {
	var req CourierStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := courier.Parse(req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	driverID := middleware.SubjectID(c)
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.DeliveryPerson{}).
		Where("id = ?", driverID).
		Update("status", string(status)).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"driver_id": driverID,
		"status":    status,
	})
}
