package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"juniorpass/internal/cache"
	"juniorpass/internal/config"
	"juniorpass/internal/database"
	"juniorpass/internal/middleware"
	"juniorpass/internal/modules/auth"
	"juniorpass/internal/modules/booking"
	"juniorpass/internal/modules/catalog"
	"juniorpass/internal/modules/notification"
	"juniorpass/internal/modules/payment"
	"juniorpass/internal/modules/wallet"
	jwtsvc "juniorpass/internal/pkg/jwt"
	"juniorpass/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migrate failed", zap.Error(err))
	}

	var store cache.Store = cache.Nop{}
	if cfg.RedisAddr != "" {
		store = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info("redis cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	userRepo := repository.NewUserRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	childRepo := repository.NewChildRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRequestRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	sugar := logger.Sugar()

	notifService := notification.NewService(db, logger)
	notifHandler := notification.NewHandler(notifService)

	authService := auth.NewService(userRepo, childRepo, j, store)
	authHandler := auth.NewHandler(authService)

	walletService := wallet.NewService(db)
	walletHandler := wallet.NewHandler(walletService)

	catalogService := catalog.NewService(listingRepo, partnerRepo, store, cfg.CacheTTL)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(db, listingRepo, userRepo, childRepo, bookingRepo, notifService)
	bookingHandler := booking.NewHandler(bookingService)

	gateway := payment.NewHitPayClient(cfg.HitPayBaseURL, cfg.HitPayAPIKey, cfg.HitPaySalt, cfg.GatewayTimeout)
	paymentService := payment.NewService(db, paymentRepo, userRepo, gateway, notifService, sugar.Infof, cfg.HitPayWebhookURL, cfg.HitPayExpiry)
	paymentHandler := payment.NewHandler(paymentService, sugar.Infof)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j, authService))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			walletHandler.RegisterRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			notifHandler.RegisterRoutes(protected)
		}
	}

	logger.Info("starting api", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
