// Package server exposes a plctag.Stub over HTTP so client code running in
// another process can exercise the tag contract.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/plcstub/internal/auth"
	"github.com/danmuck/plcstub/internal/observability"
	"github.com/danmuck/plcstub/internal/plctag"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Name     string
	Addr     string
	Appeared time.Time
	Stub     *plctag.Stub

	// Validator guards mutating routes when set before RegisterRoutes.
	Validator auth.Validator

	router  *gin.Engine
	watches *watchSet
}

// Appear builds a server around stub with the standard middleware chain.
// A nil stub gets a fresh empty one.
func Appear(name, addr string, corsOrigins []string, stub *plctag.Stub) *Server {
	observability.RegisterMetrics()
	if stub == nil {
		stub = plctag.New()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestID())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type", observability.HeaderRequestID},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		Name:     name,
		Addr:     addr,
		Appeared: time.Now(),
		Stub:     stub,
		router:   r,
		watches:  newWatchSet(defaultWatchDepth),
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.RegisterRoutes()
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("name", s.Name).Str("addr", s.Addr).Msg("server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Str("name", s.Name).Msg("server stopped")
	return nil
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
