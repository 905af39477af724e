package httperr

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	genericInternalError = "Something went wrong, please try again"
)

var (
	ErrTokenMissing = Unauthorized("token_missing", "Token is Missing")
	ErrTokenInvalid = Unauthorized("token_invalid", "Invalid Token")
	ErrForbidden    = Forbidden("forbidden", "Unauthorized")
	ErrInternal     = New(KindInternal, "internal_error", genericInternalError)
	ErrUnavailable  = New(KindUnavailable, "store_unavailable", "Service temporarily unavailable, please retry")
)

// IsDuplicateKey reports unique constraint violations from any supported driver.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	return false
}

// Normalize maps any error onto the closed Kind set.
func Normalize(err error) *Error {
	var e *Error
	switch {
	case errors.As(err, &e):
		return e
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("not_found", "Record not found")
	case IsDuplicateKey(err):
		return Conflict("duplicate", "Record already exists")
	case isConnectionError(err):
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

func isConnectionError(err error) bool {
	var pgErr *pgconn.ConnectError
	if errors.As(err, &pgErr) {
		return true
	}
	return errors.Is(err, mysql.ErrInvalidConn)
}

// Respond writes err as an error envelope. Raw internal errors are logged
// and replaced with a generic message.
func Respond(c *gin.Context, err error) {
	e := Normalize(err)
	if e.Kind == KindInternal || e.Kind == KindUnavailable {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"error", err,
		)
	}
	Write(c, e)
}

func Write(c *gin.Context, e *Error) {
	httpresp.Fail(c, e.Kind.Status(), e.Message, e.Code, e.Kind.Retryable())
}
