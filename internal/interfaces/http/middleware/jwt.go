// Package middleware contains the Gin middleware for the API.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/infrastructure/auth"
	"github.com/management360/backend/internal/infrastructure/logger"
	"github.com/management360/backend/internal/interfaces/http/dto"
)

const (
	// ClaimsContextKey is the gin context key under which the validated
	// JWT claims are stored.
	ClaimsContextKey = "jwt_claims"

	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

// JWTAuth validates the Authorization header and stores the claims in the
// request context. Requests without a valid token are rejected with 401.
func JWTAuth(jwtService *auth.JWTService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			abortUnauthorized(c, "Authorization token required")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			log.Debug("Token validation failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			abortUnauthorized(c, authErrorMessage(err))
			return
		}

		c.Set(ClaimsContextKey, claims)

		// Enrich the request context so downstream logs carry the tenant
		// and user identity. The base logger already carries the request ID
		// when RequestID ran earlier in the chain.
		ctx := c.Request.Context()
		ctx, reqLogger := logger.WithApartmentCode(ctx, logger.FromContext(ctx), claims.ApartmentCode)
		ctx, _ = logger.WithUserID(ctx, reqLogger, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin
// role. It must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetJWTClaims(c)
		if !ok {
			abortUnauthorized(c, "Authorization token required")
			return
		}
		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("Admin privileges required"))
			return
		}
		c.Next()
	}
}

// GetJWTClaims returns the validated claims stored by JWTAuth
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ClaimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func extractBearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(authorizationHeader)
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "Token not yet valid"
	default:
		return "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}
