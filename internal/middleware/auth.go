package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/jwt"
	"github.com/tourdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

const contextKeyCaller = "caller"

// Caller is the authenticated admin identity resolved from the bearer token.
// Operations that need identity take it as an explicit parameter; it is never
// read from ambient state outside the handler layer.
type Caller struct {
	ID    string
	Email string
	Role  string
}

// Auth returns a middleware that enforces bearer-token authentication. The
// admin row is re-read so a deactivated account or a changed role takes
// effect immediately, whatever the token still claims.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := resolveCaller(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(contextKeyCaller, caller)
		c.Next()
	}
}

// RequireRole returns a middleware that rejects authenticated callers whose
// role differs. Chain after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CurrentCaller(c)
		if !ok {
			response.Unauthorized(c)
			return
		}
		if caller.Role != role {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the caller if a valid token is present, but does not
// block the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller, err := resolveCaller(db, extractToken(c)); err == nil {
			c.Set(contextKeyCaller, caller)
		}
		c.Next()
	}
}

// CurrentCaller extracts the authenticated caller from the gin context.
func CurrentCaller(c *gin.Context) (Caller, bool) {
	v, exists := c.Get(contextKeyCaller)
	if !exists {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}

// IsAuthenticated reports whether the request carries a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := CurrentCaller(c)
	return ok
}

func resolveCaller(db *gorm.DB, rawToken string) (Caller, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return Caller{}, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return Caller{}, err
	}

	var admin models.AdminModel
	if err := db.Select("id, email, role, is_active").
		First(&admin, "id = ?", claims.AdminID).Error; err != nil {
		return Caller{}, err
	}
	if !admin.IsActive {
		return Caller{}, errors.New("account deactivated")
	}
	return Caller{ID: admin.ID, Email: admin.Email, Role: admin.Role}, nil
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips the optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
