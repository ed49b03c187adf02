// Package handler contains the HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/shared"
	"github.com/management360/backend/internal/interfaces/http/dto"
	"github.com/management360/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides shared response helpers for all handlers.
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{logger: logger}
}

// Success sends a 200 response with the given message and data
func (h *BaseHandler) Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(message, data))
}

// Created sends a 201 response with the given message and data
func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(message, data))
}

// Error sends an error response with the given status and message
func (h *BaseHandler) Error(c *gin.Context, status int, message string) {
	c.JSON(status, dto.NewErrorResponse(message))
}

// BadRequest sends a 400 response, typically for binding failures
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, message)
}

// HandleError maps a domain error to the proper HTTP status and envelope.
// Non-domain errors are logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Message)
		return
	}

	h.logger.Error("Unhandled error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	h.Error(c, http.StatusInternalServerError, "Internal server error")
}

// CurrentUserID returns the authenticated user's ID from the request context
func (h *BaseHandler) CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := claims.GetUserUUID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// CurrentApartmentCode returns the authenticated user's apartment code
func (h *BaseHandler) CurrentApartmentCode(c *gin.Context) (string, bool) {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return "", false
	}
	return claims.ApartmentCode, true
}

// IsAdmin reports whether the authenticated caller has the admin role
func (h *BaseHandler) IsAdmin(c *gin.Context) bool {
	claims, ok := middleware.GetJWTClaims(c)
	return ok && claims.IsAdmin()
}

// ParseUUIDParam parses a UUID path parameter, answering 400 on failure.
// The boolean result reports whether the handler should continue.
func (h *BaseHandler) ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}
