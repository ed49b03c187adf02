package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/infrastructure/auth"
	"github.com/management360/backend/internal/infrastructure/config"
	"github.com/management360/backend/internal/infrastructure/logger"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-middleware",
		Expiration: time.Hour,
		Issuer:     "management360-test",
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generates an identifier and enriches the request context", func(t *testing.T) {
		var ctxRequestID string
		engine := gin.New()
		engine.Use(RequestID(zap.NewNop()))
		engine.GET("/ping", func(c *gin.Context) {
			ctxRequestID = logger.GetRequestID(c.Request.Context())
			c.Status(http.StatusOK)
		})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/ping", nil)
		engine.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		headerID := recorder.Header().Get("X-Request-ID")
		assert.NotEmpty(t, headerID)
		assert.Equal(t, headerID, ctxRequestID)
	})

	t.Run("keeps a caller-supplied identifier", func(t *testing.T) {
		var ctxRequestID string
		engine := gin.New()
		engine.Use(RequestID(zap.NewNop()))
		engine.GET("/ping", func(c *gin.Context) {
			ctxRequestID = logger.GetRequestID(c.Request.Context())
			c.Status(http.StatusOK)
		})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/ping", nil)
		request.Header.Set("X-Request-ID", "upstream-id-42")
		engine.ServeHTTP(recorder, request)

		assert.Equal(t, "upstream-id-42", recorder.Header().Get("X-Request-ID"))
		assert.Equal(t, "upstream-id-42", ctxRequestID)
	})
}

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newTestJWTService()

	newEngine := func(handler gin.HandlerFunc) *gin.Engine {
		engine := gin.New()
		engine.Use(RequestID(zap.NewNop()))
		engine.Use(JWTAuth(jwtService, zap.NewNop()))
		engine.GET("/me", handler)
		return engine
	}

	t.Run("stores claims and tenant identity for a valid token", func(t *testing.T) {
		userID := uuid.New()
		issued, err := jwtService.GenerateToken(auth.GenerateTokenInput{
			UserID:        userID,
			Email:         "resident@example.com",
			Role:          "resident",
			ApartmentCode: "APT123456",
		})
		require.NoError(t, err)

		var gotApartment, gotUser string
		var gotClaims *auth.Claims
		engine := newEngine(func(c *gin.Context) {
			gotClaims, _ = GetJWTClaims(c)
			gotApartment = logger.GetApartmentCode(c.Request.Context())
			gotUser = logger.GetUserID(c.Request.Context())
			c.Status(http.StatusOK)
		})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/me", nil)
		request.Header.Set("Authorization", "Bearer "+issued.Token)
		engine.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, "APT123456", gotClaims.ApartmentCode)
		assert.Equal(t, "APT123456", gotApartment)
		assert.Equal(t, userID.String(), gotUser)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		engine := newEngine(func(c *gin.Context) { c.Status(http.StatusOK) })

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/me", nil)
		engine.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("rejects a malformed token", func(t *testing.T) {
		engine := newEngine(func(c *gin.Context) { c.Status(http.StatusOK) })

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/me", nil)
		request.Header.Set("Authorization", "Bearer not-a-token")
		engine.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newTestJWTService()

	newEngine := func() *gin.Engine {
		engine := gin.New()
		engine.Use(JWTAuth(jwtService, zap.NewNop()))
		engine.Use(RequireAdmin())
		engine.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })
		return engine
	}

	issueToken := func(t *testing.T, role string) string {
		t.Helper()
		issued, err := jwtService.GenerateToken(auth.GenerateTokenInput{
			UserID:        uuid.New(),
			Email:         role + "@example.com",
			Role:          role,
			ApartmentCode: "APT123456",
		})
		require.NoError(t, err)
		return issued.Token
	}

	t.Run("admits an admin", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/admin", nil)
		request.Header.Set("Authorization", "Bearer "+issueToken(t, "admin"))
		newEngine().ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("forbids a resident", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/admin", nil)
		request.Header.Set("Authorization", "Bearer "+issueToken(t, "resident"))
		newEngine().ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
