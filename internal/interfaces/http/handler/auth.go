package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/application/identity"
	"github.com/management360/backend/internal/interfaces/http/middleware"
)

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role" binding:"required,oneof=admin resident"`

	// Admin registration
	FlatCount int `json:"flatCount"`

	// Resident registration
	ApartmentCode string `json:"apartmentCode"`
	FlatNumber    string `json:"flatNumber"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler handles registration, login and session introspection.
type AuthHandler struct {
	*BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Register creates an admin or resident account depending on the role
// field. Admins bootstrap a new apartment; residents join an existing one.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid registration payload: "+err.Error())
		return
	}

	var (
		result *identity.AuthResult
		err    error
	)
	if req.Role == "admin" {
		result, err = h.authService.RegisterAdmin(c.Request.Context(), identity.RegisterAdminInput{
			Email:       req.Email,
			Password:    req.Password,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			PhoneNumber: req.PhoneNumber,
			FlatCount:   req.FlatCount,
		})
	} else {
		result, err = h.authService.RegisterResident(c.Request.Context(), identity.RegisterResidentInput{
			Email:         req.Email,
			Password:      req.Password,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			PhoneNumber:   req.PhoneNumber,
			ApartmentCode: req.ApartmentCode,
			FlatNumber:    req.FlatNumber,
		})
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Registration successful", result)
}

// Login authenticates a user and issues a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Email and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Login successful", result)
}

// Logout acknowledges the logout. Tokens are stateless, so the client
// simply discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Success(c, "Logged out", nil)
}

// Profile returns the authenticated user's account details
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "Authorization token required")
		return
	}

	profile, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Profile retrieved", profile)
}

// Verify confirms the presented token is still valid
func (h *AuthHandler) Verify(c *gin.Context) {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "Authorization token required")
		return
	}

	h.Success(c, "Token is valid", gin.H{
		"userId":        claims.UserID,
		"email":         claims.Email,
		"role":          claims.Role,
		"apartmentCode": claims.ApartmentCode,
	})
}
