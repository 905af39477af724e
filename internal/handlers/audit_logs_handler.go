package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit, offset := pageParams(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if v := c.Query("action"); v != "" {
		q = q.Where("action = ?", v)
	}
	if v := c.Query("entity"); v != "" {
		q = q.Where("entity = ?", v)
	}
	if v := c.Query("actor_role"); v != "" {
		q = q.Where("actor_role = ?", v)
	}
	if v := c.Query("from"); v != "" {
		if from, err := time.Parse(time.DateOnly, v); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := time.Parse(time.DateOnly, v); err == nil {
			q = q.Where("created_at < ?", to.Add(24*time.Hour))
		}
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	// --------------------------------------------------
	// Page
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}
