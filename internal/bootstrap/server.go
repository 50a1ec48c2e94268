package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/tripavista/api"
	"github.com/Domenick1991/tripavista/config"
	"github.com/Domenick1991/tripavista/internal/middleware"
	"github.com/Domenick1991/tripavista/internal/service/auth"
	"github.com/Domenick1991/tripavista/internal/service/booking"
	"github.com/Domenick1991/tripavista/internal/service/contact"
	"github.com/Domenick1991/tripavista/internal/service/search"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const specFile = "travel.swagger.json"

// Checker is a dependency the health endpoint checks.
type Checker interface {
	Ping(ctx context.Context) error
}

type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error { return f(ctx) }

type Services struct {
	Search  search.SearchUseCase
	Booking booking.BookingUseCase
	Auth    auth.AuthUseCase
	Contact contact.ContactUseCase
	Checks  map[string]Checker
}

// Run serves HTTP until ctx is canceled or the server fails, then shuts
// down gracefully.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger, services Services) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewHandler(cfg, log, services),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeoutSec)*time.Second)
		defer cancel()
		log.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewHandler builds the gin engine with every route, wrapped in CORS.
func NewHandler(cfg *config.Config, log *slog.Logger, services Services) http.Handler {
	router := gin.New()
	router.Use(
		middleware.TraceID(),
		middleware.RequestLogger(log),
		gin.Recovery(),
		middleware.Session(services.Auth),
	)

	router.GET("/health", health(services.Checks))

	api.NewDestinationHandler(services.Search).Register(router)
	api.NewBookingHandler(services.Booking).Register(router)
	api.NewAuthHandler(services.Auth).Register(router)
	api.NewContactHandler(services.Contact).Register(router)

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/swagger/"+specFile, cfg.HTTP.SwaggerDir+"/"+specFile)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/"+specFile),
		)))
	}

	return middleware.CORS(cfg.HTTP.CORSOrigins)(router)
}

func health(checks map[string]Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check.Ping(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{"status": state, "checks": results})
	}
}
