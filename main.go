package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edunomics/superintendent/internal/controllers/healthz"
	v1 "github.com/edunomics/superintendent/internal/controllers/v1"
	"github.com/edunomics/superintendent/internal/game"
	"github.com/edunomics/superintendent/internal/models"
	"github.com/edunomics/superintendent/internal/opendata"
	"github.com/edunomics/superintendent/internal/oracle"
	"github.com/edunomics/superintendent/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		log.Fatal().Msg("environment variable API_URL must be set")
	}

	url, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Err(err).Msg("API_URL is not a valid URL")
	}

	if err := models.ConnectFromEnv(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	board, err := oracle.NewGemini(ctx, os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	var o oracle.Oracle = board
	if err != nil {
		log.Warn().Err(err).Msg("no model is available, the board uses its fallback answers")
		o = oracle.Disabled{}
	}

	service, err := game.NewService(game.Config{
		DB:         models.DB,
		Oracle:     o,
		OpenData:   opendata.New(&http.Client{Timeout: 30 * time.Second}, os.Getenv("CENSUS_API_URL"), os.Getenv("SOCRATA_API_URL")),
		Registerer: prometheus.DefaultRegisterer,
	})
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(url)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(router.Controllers{
		V1:      v1.Controller{Service: service},
		Healthz: healthz.Controller{DB: models.DB},
	}, r.Group("/"))

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdown); err != nil {
		log.Error().Err(err).Msg("Server shutdown")
	}
	service.Close()

	sqlDB, err := models.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}
