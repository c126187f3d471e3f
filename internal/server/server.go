package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"anoa.com/bloodconnect/internal/config"
	"anoa.com/bloodconnect/internal/middleware"
	"anoa.com/bloodconnect/pkg/ratelimit"
	"anoa.com/bloodconnect/pkg/storage"
	"anoa.com/bloodconnect/pkg/validator"

	adminHttp "anoa.com/bloodconnect/internal/modules/admin/delivery/http"
	adminRepo "anoa.com/bloodconnect/internal/modules/admin/repository"
	adminService "anoa.com/bloodconnect/internal/modules/admin/service"

	authHttp "anoa.com/bloodconnect/internal/modules/auth/delivery/http"
	authRepo "anoa.com/bloodconnect/internal/modules/auth/repository"
	authService "anoa.com/bloodconnect/internal/modules/auth/service"

	donationHttp "anoa.com/bloodconnect/internal/modules/donation/delivery/http"
	donationRepo "anoa.com/bloodconnect/internal/modules/donation/repository"
	donationService "anoa.com/bloodconnect/internal/modules/donation/service"

	donorHttp "anoa.com/bloodconnect/internal/modules/donor/delivery/http"
	donorRepo "anoa.com/bloodconnect/internal/modules/donor/repository"
	donorService "anoa.com/bloodconnect/internal/modules/donor/service"

	hospitalHttp "anoa.com/bloodconnect/internal/modules/hospital/delivery/http"
	hospitalRepo "anoa.com/bloodconnect/internal/modules/hospital/repository"
	hospitalService "anoa.com/bloodconnect/internal/modules/hospital/service"

	identityRepo "anoa.com/bloodconnect/internal/modules/identity/repository"
	identityService "anoa.com/bloodconnect/internal/modules/identity/service"

	notifHttp "anoa.com/bloodconnect/internal/modules/notification/delivery/http"
	notifService "anoa.com/bloodconnect/internal/modules/notification/service"

	searchService "anoa.com/bloodconnect/internal/modules/search/service"

	stockHttp "anoa.com/bloodconnect/internal/modules/stock/delivery/http"
	stockRepo "anoa.com/bloodconnect/internal/modules/stock/repository"
	stockService "anoa.com/bloodconnect/internal/modules/stock/service"

	willingnessHttp "anoa.com/bloodconnect/internal/modules/willingness/delivery/http"
	willingnessRepo "anoa.com/bloodconnect/internal/modules/willingness/repository"
	willingnessService "anoa.com/bloodconnect/internal/modules/willingness/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	engine    *gin.Engine
	http      *http.Server
	reindexer *searchService.Reindexer
	hub       *notifService.Hub
	log       *zap.Logger
}

// NewServer wires every module. redisClient may be nil, in which case events
// stay in-process and the willingness cooldown is disabled.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *zap.Logger) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validator.RegisterCustomValidations(); err != nil {
		return nil, err
	}

	var imageStorage storage.ImageStorage
	cld, err := storage.NewCloudinaryStorage(storage.CloudinaryOptions{
		CloudName:  cfg.CloudinaryCloudName,
		APIKey:     cfg.CloudinaryAPIKey,
		APISecret:  cfg.CloudinaryAPISecret,
		RootFolder: cfg.CloudinaryUploadFolder,
	})
	if err != nil {
		log.Warn("cloudinary not configured, avatar uploads disabled", zap.Error(err))
	} else {
		imageStorage = cld
	}

	var index searchService.HospitalIndex
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		index = searchService.NewMeiliHospitalIndex(meiliClient, log)
	} else {
		log.Warn("MEILISEARCH_HOST not set, hospital directory uses database search")
	}

	s := &Server{log: log}

	var broadcaster notifService.Broadcaster
	if redisClient != nil {
		broadcaster = notifService.NewRedisBroadcaster(redisClient, log)
	} else {
		s.hub = notifService.NewHub(log)
		broadcaster = s.hub
	}

	identityResolver := identityService.NewResolver(identityRepo.NewIdentityRepository(db), log)
	authMiddleware := middleware.NewAuthMiddleware(identityResolver, cfg.JWTSecret)

	authSvc := authService.NewAuthService(
		authRepo.NewAccountRepository(db),
		identityResolver,
		imageStorage,
		index,
		authService.Options{Secret: cfg.JWTSecret, TokenTTL: cfg.JWTTTL},
		log,
	)
	authHandler := authHttp.NewAuthHandler(authSvc)

	donorSvc := donorService.NewDonorService(donorRepo.NewDonorRepository(db), imageStorage, log)
	donorHandler := donorHttp.NewDonorHandler(donorSvc)

	hospitalRepository := hospitalRepo.NewHospitalRepository(db)
	hospitalSvc := hospitalService.NewHospitalService(hospitalRepository, index, log)
	hospitalHandler := hospitalHttp.NewHospitalHandler(hospitalSvc)

	stockSvc := stockService.NewStockService(stockRepo.NewStockRepository(db), index, log)
	stockHandler := stockHttp.NewStockHandler(stockSvc)

	notificationSvc := notifService.NewNotificationService(broadcaster, log)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, cfg.AllowedOrigins, log)

	limiter := ratelimit.New(redisClient, "willingness", cfg.RateLimitWillingness)
	willingnessSvc := willingnessService.NewWillingnessService(willingnessRepo.NewWillingnessRepository(db), notificationSvc, limiter, log)
	willingnessHandler := willingnessHttp.NewWillingnessHandler(willingnessSvc)

	donationSvc := donationService.NewDonationService(donationRepo.NewDonationRepository(db))
	donationHandler := donationHttp.NewDonationHandler(donationSvc)

	adminSvc := adminService.NewAdminService(adminRepo.NewAdminRepository(db), index, imageStorage, log)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	if index != nil {
		s.reindexer = searchService.NewReindexer(hospitalRepository, index, log)
		if err := s.reindexer.Schedule(cfg.SearchReindexCron); err != nil {
			return nil, err
		}
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/hospital/notifications/ws"},
	}))

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/donor/register", authHandler.RegisterDonor)
		auth.POST("/hospital/register", authHandler.RegisterHospital)
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		donor := protected.Group("/donor")
		donor.Use(authMiddleware.RequireRole(identityService.RoleDonor))
		{
			donor.GET("/profile", donorHandler.GetProfile)
			donor.PUT("/profile", donorHandler.UpdateProfile)
			donor.GET("/hospitals", hospitalHandler.Directory)
			donor.POST("/willingness", willingnessHandler.Create)
			donor.GET("/willingness", willingnessHandler.ListMine)
			donor.GET("/donations", donationHandler.History)
			donor.GET("/donations/:id/certificate", donationHandler.Certificate)
		}

		hospital := protected.Group("/hospital")
		hospital.Use(authMiddleware.RequireRole(identityService.RoleHospital))
		{
			hospital.GET("/me", hospitalHandler.Me)
			hospital.GET("/stock", stockHandler.ListStock)
			hospital.PUT("/stock", stockHandler.SetStock)
			hospital.GET("/requests", willingnessHandler.ListForHospital)
			hospital.POST("/requests/:id/respond", willingnessHandler.Respond)
			hospital.POST("/requests/clear", willingnessHandler.ClearHistory)
			hospital.GET("/notifications/ws", notificationHandler.HandleWebSocket)
		}

		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireRole(identityService.RoleAdmin))
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/hospitals", adminHandler.ListHospitals)
			admin.DELETE("/hospitals/:id", adminHandler.DeleteHospital)
			admin.GET("/donors", adminHandler.ListDonors)
			admin.DELETE("/donors/:id", adminHandler.DeleteDonor)
			admin.GET("/requests", adminHandler.ListRequests)
		}
	}

	s.engine = router
	s.http = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	if s.reindexer != nil {
		s.reindexer.Start()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if _, err := s.reindexer.RunOnce(ctx); err != nil {
				s.log.Warn("initial hospital reindex failed", zap.Error(err))
			}
		}()
	}

	s.http.Addr = addr
	s.log.Info("http server listening", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP connections and stops background jobs.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.reindexer != nil {
		s.reindexer.Stop()
	}
	if s.hub != nil {
		s.hub.Close()
	}
	return s.http.Shutdown(ctx)
}

func setupCORS(router *gin.Engine, origins []string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
