package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/gin-swagger/swaggerFiles"
	"go.elastic.co/apm/module/apmgin"

	_ "github.com/wikid/wikid/docs"
	documentController "github.com/wikid/wikid/internal/api/controllers/document"
	"github.com/wikid/wikid/internal/config"
	domainDocument "github.com/wikid/wikid/internal/domain/document"
	"github.com/wikid/wikid/internal/infra/apm/tracing"
	"github.com/wikid/wikid/internal/infra/cron/refresh"
	esCommon "github.com/wikid/wikid/internal/infra/elasticsearch/common"
	esDocument "github.com/wikid/wikid/internal/infra/elasticsearch/document"
	"github.com/wikid/wikid/internal/infra/server/binding/validation"
	"github.com/wikid/wikid/internal/infra/server/routing"
)

// Components holds the wired-together bits of the app server
type Components struct {
	conf config.App

	ginEngine *gin.Engine

	documentsService domainDocument.Service

	refreshScheduler refresh.Scheduler

	setup Setup
}

// NewComponents initialises the Elasticsearch-backed services, the gin engine
// with its routes, and the index refresh scheduler, returning them bundled up
// and ready to Run
func NewComponents(conf *config.App) (*Components, error) {
	esClient, err := esCommon.NewClient(conf.Elasticsearch)
	if err != nil {
		return nil, err
	}

	documentsService := esDocument.NewService(esClient, conf.Documents.Defaults)

	setup := NewSetup(esClient)

	refreshScheduler := refresh.NewScheduler(
		documentsService,
		conf.Documents.IndexRefresh.RunInterval,
		tracing.NewTracer(),
	)

	ginEngine := gin.New()
	// Slugs can contain slashes; they travel URL-escaped as single path
	// segments, so params need to come from the raw path
	ginEngine.UseRawPath = true
	ginEngine.Use(logger.SetLogger(), gzip.Gzip(gzip.DefaultCompression), apmgin.Middleware(ginEngine), gin.Recovery())
	ginEngine.NoRoute(routing.NoRoute)
	ginEngine.NoMethod(routing.NoMethod)

	validation.SetUpValidators()

	routesHandler := routing.DocumentsRoutesHandler{
		AuthSettings: conf.Auth,
		Controller:   documentController.New(documentsService, conf.Documents),
	}
	routesHandler.RegisterRoutes(ginEngine)

	ginEngine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Components{
		conf:             *conf,
		ginEngine:        ginEngine,
		documentsService: documentsService,
		refreshScheduler: refreshScheduler,
		setup:            setup,
	}, nil
}

// Run checks that setup has been performed, starts the background refresh
// scheduler and serves the API, blocking until interrupted, at which point it
// shuts everything down gracefully
func (c *Components) Run() {
	if err := c.setup.Check(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Setup check failed; please run the setup command")
	}

	c.refreshScheduler.Start()

	httpServer := &http.Server{
		Addr:    c.conf.BindAddress,
		Handler: c.ginEngine,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to listen")
		}
	}()
	log.Info().Str("bind_address", c.conf.BindAddress).Msg("Serving requests")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	c.refreshScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), c.conf.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
