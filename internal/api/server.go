package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"spadmin/internal/api/handlers"
	"spadmin/internal/api/middleware"
	"spadmin/internal/config"
	"spadmin/internal/database"
	"spadmin/internal/events"
	"spadmin/internal/importer"
	"spadmin/internal/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config    *config.Config
	logger    *logger.Logger
	db        *database.Database
	router    *gin.Engine
	server    *http.Server
	watcher   *importer.Watcher
	publisher *events.Publisher
}

func New(cfg *config.Config, log *logger.Logger, db *database.Database) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	imp := importer.New(db.DB, log)
	watcher := importer.NewWatcher(imp, log)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(db.Products(), publisher, log, cfg.IsDevelopment())
	autoImportHandler := handlers.NewAutoImportHandler(imp, watcher, db.DB, publisher, log, cfg.IsDevelopment())

	// Routes
	apiGroup := router.Group("/api")
	{
		products := apiGroup.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		autoImport := apiGroup.Group("/auto-import")
		{
			autoImport.POST("/import", autoImportHandler.Import)
			autoImport.GET("/status", autoImportHandler.Status)
			autoImport.POST("/sync", autoImportHandler.Sync)
			autoImport.GET("/collections", autoImportHandler.Collections)
			autoImport.GET("/data/:collection", autoImportHandler.Data)
		}

		apiGroup.GET("/health", handlers.Health)
	}

	router.GET("/", handlers.Index)
	router.NoRoute(handlers.NotFound)

	return &Server{
		config:    cfg,
		logger:    log,
		db:        db,
		router:    router,
		watcher:   watcher,
		publisher: publisher,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server on %s", addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down server...")
	s.watcher.StopAll()
	if err := s.publisher.Close(); err != nil {
		s.logger.Error("failed to close event publisher: %v", err)
	}
	return s.server.Shutdown(ctx)
}

// GetRouter returns the Gin router for the serverless entrypoint.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
