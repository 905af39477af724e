package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/homely-bites/internal/auth"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
)

const (
	ContextPrincipal = "principal"

	tokenHeader = "token"
)

// AuthMiddleware resolves the request token to a principal. The token is read
// from the "token" header first, then from "Authorization: Bearer".
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			httperr.Write(c, httperr.ErrTokenMissing)
			return
		}

		p, err := issuer.Verify(raw)
		if err != nil {
			httperr.Write(c, httperr.ErrTokenInvalid)
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if t := strings.TrimSpace(c.GetHeader(tokenHeader)); t != "" {
		return t
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			httperr.Write(c, httperr.ErrTokenMissing)
			return
		}
		if !p.Role.Valid() {
			httperr.Write(c, httperr.ErrTokenInvalid)
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		httperr.Write(c, httperr.ErrForbidden)
	}
}

// RequireSelf rejects requests whose path id differs from the principal.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			httperr.Write(c, httperr.ErrTokenMissing)
			return
		}
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil || uint(id) != p.SubjectID {
			httperr.Write(c, httperr.ErrForbidden)
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// SubjectID is the caller's id. Only valid behind AuthMiddleware.
func SubjectID(c *gin.Context) uint {
	p, _ := PrincipalFrom(c)
	return p.SubjectID
}
