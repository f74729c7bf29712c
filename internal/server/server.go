package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"health-dashboard-be/internal/config"
	"health-dashboard-be/internal/controllers"
	"health-dashboard-be/internal/middleware"
)

const maxBodyBytes = 1 << 20

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to HealthChecker.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Dependencies struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Identity *middleware.Identity

	Auth     *controllers.AuthController
	Health   *controllers.HealthController
	Chat     *controllers.ChatController
	Risk     *controllers.RiskController
	Report   *controllers.ReportController
	Realtime *controllers.RealtimeController

	Store HealthChecker
	Cache HealthChecker // optional
}

// SetupRouter wires every route. The returned function stops the rate
// limiters' background cleanup.
func SetupRouter(d Dependencies) (*gin.Engine, func()) {
	cfg := d.Config

	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	aiRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAIRPS), cfg.RateLimitAIBurst)
	stop := func() {
		generalRateLimiter.Stop()
		authRateLimiter.Stop()
		aiRateLimiter.Stop()
	}

	router := gin.New()
	router.Use(
		middleware.RequestLogger(d.Logger),
		gin.Recovery(),
		middleware.LimitBodySize(maxBodyBytes),
		cors.New(corsConfig(cfg.CORSOrigins)),
	)

	// Probes (no rate limiting)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", readiness(d.Store, d.Cache))

	api := router.Group("/api")
	api.Use(d.Identity.Resolve(), generalRateLimiter.LimitMiddleware())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authRateLimiter.LimitMiddleware(), d.Auth.Register)
			auth.POST("/login", authRateLimiter.LimitMiddleware(), d.Auth.Login)
			auth.GET("/me", d.Identity.Required(), d.Auth.Me)
		}

		// Anonymous chat is allowed
		api.POST("/chat", d.Identity.Optional(), aiRateLimiter.LimitMiddleware(), d.Chat.Chat)

		protected := api.Group("")
		protected.Use(d.Identity.Required())
		{
			protected.GET("/health", d.Health.List)
			protected.POST("/health", d.Health.Save)
			protected.GET("/health/dummy", d.Health.Dummy)
			protected.GET("/health/stats", d.Health.Stats)

			protected.GET("/chat/history", d.Chat.History)

			protected.GET("/risk", d.Risk.Current)
			protected.POST("/risk/analyze", aiRateLimiter.LimitMiddleware(), d.Risk.Analyze)

			protected.GET("/report/pdf", aiRateLimiter.LimitMiddleware(), d.Report.PDF)
			protected.GET("/report/csv", d.Report.CSV)

			protected.GET("/alerts/ws", d.Realtime.AlertsWS)
		}
	}

	return router, stop
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-User-ID", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Disposition", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

func readiness(store, cache HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "db": err.Error()})
			return
		}
		resp := gin.H{"status": "ok", "db": "ok", "cache": "disabled"}
		if cache != nil {
			resp["cache"] = "ok"
			if err := cache.Ping(ctx); err != nil {
				// The cache is optional; report it without failing readiness.
				resp["cache"] = err.Error()
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// Run serves handler on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
