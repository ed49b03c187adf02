package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcommunity "github.com/management360/backend/internal/application/community"
	appdues "github.com/management360/backend/internal/application/dues"
	appidentity "github.com/management360/backend/internal/application/identity"
	appledger "github.com/management360/backend/internal/application/ledger"
	appparking "github.com/management360/backend/internal/application/parking"
	appregistry "github.com/management360/backend/internal/application/registry"
	"github.com/management360/backend/internal/infrastructure/auth"
	"github.com/management360/backend/internal/infrastructure/config"
	"github.com/management360/backend/internal/infrastructure/logger"
	"github.com/management360/backend/internal/infrastructure/persistence"
	"github.com/management360/backend/internal/interfaces/http/handler"
	"github.com/management360/backend/internal/interfaces/http/router"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	jwtService := auth.NewJWTService(cfg.JWT)

	flatRepo := persistence.NewGormFlatRepository(db.DB)
	feeRepo := persistence.NewGormFeeRepository(db.DB)
	recordRepo := persistence.NewGormFinanceRecordRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	announcementRepo := persistence.NewGormAnnouncementRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	slotRepo := persistence.NewGormSlotRepository(db.DB)
	plateRepo := persistence.NewGormPlateRepository(db.DB)

	authService := appidentity.NewAuthService(userRepo, flatRepo, slotRepo, jwtService, log)
	flatService := appregistry.NewFlatService(flatRepo, log)
	feeService := appdues.NewFeeService(feeRepo, flatRepo, log)
	financeService := appledger.NewFinanceService(recordRepo, log)
	announcementService := appcommunity.NewAnnouncementService(announcementRepo, log)
	messageService := appcommunity.NewMessageService(messageRepo, userRepo, log)
	parkingService := appparking.NewParkingService(slotRepo, plateRepo, flatRepo, log)
	plateService := appparking.NewPlateService(plateRepo, flatRepo, log)

	handlers := router.Handlers{
		Health:       handler.NewHealthHandler(db, version, log),
		Auth:         handler.NewAuthHandler(authService, log),
		Flat:         handler.NewFlatHandler(flatService, log),
		Fee:          handler.NewFeeHandler(feeService, log),
		Finance:      handler.NewFinanceHandler(financeService, log),
		Announcement: handler.NewAnnouncementHandler(announcementService, log),
		Message:      handler.NewMessageHandler(messageService, log),
		Parking:      handler.NewParkingHandler(parkingService, log),
		Plate:        handler.NewPlateHandler(plateService, log),
	}

	engine := router.New(handlers, jwtService, cfg.HTTP.MaxBodySize, log)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("version", version),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
