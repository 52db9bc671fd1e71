package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wardrobe/internal/config"
	"wardrobe/internal/database"
	custommiddleware "wardrobe/internal/middleware"
	"wardrobe/internal/repository"
	"wardrobe/internal/service"
	"wardrobe/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService *database.Service) *Server {
	db := dbService.DB()

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env != "production"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(dbService.Health())
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	typeRepo := repository.NewProductTypeRepository(db)
	colorRepo := repository.NewColorRepository(db)
	groupRepo := repository.NewProductGroupRepository(db)
	productRepo := repository.NewProductRepository(db)

	// Initialize services
	validator := service.NewCatalogValidator(categoryRepo, typeRepo, colorRepo)
	catalogService := service.NewCatalogService(validator, productRepo, groupRepo, categoryRepo, typeRepo, colorRepo)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	productHandler := transport.NewProductHandler(catalogService, logger)

	// Auth and role middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)

	// Rate limit credential endpoints through redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	rateLimiter := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.Requests,
		Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		KeyPrefix:         "rate_limit:auth",
	}, logger)

	// Register routes
	authHandler.RegisterRoutes(router, rateLimiter)
	productHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
