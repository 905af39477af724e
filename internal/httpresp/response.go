package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the shape of every response body.
type Envelope struct {
	Status    string `json:"status"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

type PageResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Status: StatusSuccess, Data: data})
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	OK(c, data)
}

func Page[T any](c *gin.Context, data []T, total int64, page, limit int) {
	if data == nil {
		data = []T{}
	}
	OK(c, PageResponse[T]{Items: data, Total: total, Page: page, Limit: limit})
}

func Fail(c *gin.Context, status int, message, code string, retryable bool) {
	c.AbortWithStatusJSON(status, Envelope{
		Status:    StatusError,
		Error:     message,
		ErrorCode: code,
		Retryable: retryable,
	})
}
