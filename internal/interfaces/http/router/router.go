// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/infrastructure/auth"
	"github.com/management360/backend/internal/infrastructure/logger"
	"github.com/management360/backend/internal/interfaces/http/handler"
	"github.com/management360/backend/internal/interfaces/http/middleware"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Flat         *handler.FlatHandler
	Fee          *handler.FeeHandler
	Finance      *handler.FinanceHandler
	Announcement *handler.AnnouncementHandler
	Message      *handler.MessageHandler
	Parking      *handler.ParkingHandler
	Plate        *handler.PlateHandler
}

// New builds the gin engine with all middleware and routes mounted.
func New(handlers Handlers, jwtService *auth.JWTService, maxBodySize int64, log *zap.Logger) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodySizeLimit(maxBodySize))

	engine.GET("/health", handlers.Health.Check)

	api := engine.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", handlers.Auth.Register)
		authRoutes.POST("/login", handlers.Auth.Login)
		authRoutes.POST("/logout", handlers.Auth.Logout)
	}

	authenticated := api.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService, log))
	admin := middleware.RequireAdmin()

	authenticated.GET("/auth/profile", handlers.Auth.Profile)
	authenticated.GET("/auth/verify", handlers.Auth.Verify)

	flats := authenticated.Group("/flats")
	{
		flats.GET("", handlers.Flat.List)
		flats.GET("/:id", handlers.Flat.Get)
		flats.POST("", admin, handlers.Flat.Create)
		flats.POST("/generate", admin, handlers.Flat.Generate)
		flats.PUT("/:id", admin, handlers.Flat.Update)
		flats.DELETE("/:id", admin, handlers.Flat.Delete)
	}

	fees := authenticated.Group("/fees")
	{
		fees.GET("", handlers.Fee.List)
		fees.GET("/summary", handlers.Fee.Summary)
		fees.GET("/debtors", handlers.Fee.Debtors)
		fees.GET("/debt/:flatId", handlers.Fee.Debt)
		fees.GET("/:id", handlers.Fee.Get)
		fees.POST("/period", admin, handlers.Fee.CreateDuesPeriod)
		fees.POST("", admin, handlers.Fee.Create)
		fees.PUT("/:id/status", admin, handlers.Fee.UpdateStatus)
		fees.DELETE("/:id", admin, handlers.Fee.Delete)
	}

	finance := authenticated.Group("/finance", admin)
	{
		finance.POST("", handlers.Finance.Create)
		finance.GET("", handlers.Finance.List)
		finance.GET("/summary", handlers.Finance.Summary)
		finance.GET("/report/detailed", handlers.Finance.DetailedReport)
		finance.GET("/report/monthly", handlers.Finance.MonthlyReport)
		finance.GET("/:id", handlers.Finance.Get)
		finance.PUT("/:id", handlers.Finance.Update)
		finance.DELETE("/:id", handlers.Finance.Delete)
	}

	announcements := authenticated.Group("/announcements")
	{
		announcements.GET("", handlers.Announcement.List)
		announcements.GET("/:id", handlers.Announcement.Get)
		announcements.POST("", admin, handlers.Announcement.Create)
		announcements.PUT("/:id", admin, handlers.Announcement.Update)
		announcements.DELETE("/:id", admin, handlers.Announcement.Delete)
	}

	messages := authenticated.Group("/messages")
	{
		messages.POST("", handlers.Message.Send)
		messages.GET("/inbox", handlers.Message.Inbox)
		messages.GET("/sent", handlers.Message.Sent)
		messages.GET("/users", handlers.Message.ListUsers)
		messages.GET("/conversation/:userId", handlers.Message.Conversation)
		messages.GET("/:id", handlers.Message.Get)
		messages.PUT("/:id/read", handlers.Message.MarkRead)
		messages.DELETE("/:id", handlers.Message.Delete)
	}

	parking := authenticated.Group("/parking")
	{
		parking.GET("", handlers.Parking.List)
		parking.GET("/occupied", handlers.Parking.ListOccupied)
		parking.GET("/available", handlers.Parking.ListAvailable)
		parking.GET("/:id", handlers.Parking.Get)
		parking.POST("", admin, handlers.Parking.Create)
		parking.PUT("/:id/assign", admin, handlers.Parking.Assign)
		parking.PUT("/:id/remove", admin, handlers.Parking.Remove)
		parking.PUT("/:id/toggle", admin, handlers.Parking.Toggle)
		parking.DELETE("/:id", admin, handlers.Parking.Delete)
	}

	plates := authenticated.Group("/plates")
	{
		plates.GET("", handlers.Plate.List)
		plates.GET("/:id", handlers.Plate.Get)
		plates.POST("", admin, handlers.Plate.Create)
		plates.PUT("/:id", admin, handlers.Plate.Update)
		plates.DELETE("/:id", admin, handlers.Plate.Delete)
	}

	return engine
}
