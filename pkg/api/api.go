// Package api exposes the statistics object over HTTP.
//
//	GET    /7          object description
//	GET    /7/0/:rid   read
//	PUT    /7/0/:rid   write, body {"value": n}
//	POST   /7/0/:rid   execute
//	DELETE /7/0        instance reset
//	GET    /health     liveness
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/irctrakz/connstats/pkg/dm"
	"github.com/irctrakz/connstats/pkg/host"
	"github.com/irctrakz/connstats/pkg/logging"
)

// Config contains configuration for the HTTP surface.
type Config struct {
	// Enabled turns the HTTP server on.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Bind is the listen address, e.g. ":8080".
	Bind string `json:"bind" yaml:"bind"`
}

// Server serves the data-model routes for one host.
type Server struct {
	cfg    Config
	engine *gin.Engine
	srv    *http.Server
}

// New builds the router. extra handlers (e.g. /metrics) are mounted with Handle.
func New(cfg Config, h *host.Host) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	attachPublic(engine.Group("/"))
	attachObject(engine.Group("/"+strconv.Itoa(int(dm.ObjectID))), h)

	return &Server{cfg: cfg, engine: engine}
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Handle mounts an additional GET handler.
func (s *Server) Handle(path string, handler http.Handler) {
	s.engine.GET(path, gin.WrapH(handler))
}

// Start listens in the background. Listener errors other than a clean
// shutdown are logged.
func (s *Server) Start() {
	log := logging.For("api")
	if !s.cfg.Enabled {
		log.Info("API disabled")
		return
	}
	s.srv = &http.Server{Addr: s.cfg.Bind, Handler: s.engine}
	log.Infof("Starting API on %s", s.cfg.Bind)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("API server: %v", err)
		}
	}()
}

// Stop shuts the server down, waiting up to timeout for in-flight requests.
func (s *Server) Stop(timeout time.Duration) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func attachPublic(app *gin.RouterGroup) {
	app.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
}

func requestLogger() gin.HandlerFunc {
	log := logging.For("api")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("code", c.Writer.Status()).
			WithField("took", time.Since(start).String()).
			Debug("request")
	}
}
