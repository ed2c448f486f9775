package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"flightai/api"
	"flightai/config"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails. The chat handler is optional; without it only the REST
// surface is served.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, flightHandler *api.FlightHandler, bookingHandler *api.BookingHandler, chatHandler *api.ChatHandler) error {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	flightHandler.Register(v1.Group("/flights"))
	bookingHandler.Register(v1.Group("/bookings"))
	if chatHandler != nil {
		chatHandler.Register(v1.Group("/chat"))
	}

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/flightai.swagger.json"),
		)))
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("http server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
