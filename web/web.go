// Package web provides the HTTP server of the blogd content API: router
// assembly, middleware wiring and background job scheduling.
package web

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"

	"blogd/config"
	"blogd/logger"
	"blogd/util/common"
	"blogd/web/controller"
	"blogd/web/job"
	"blogd/web/middleware"
	"blogd/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server is the blogd API server: a gin engine behind an http.Server, plus a
// cron scheduler for background jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	tokenService *service.TokenService

	auth  *controller.AuthController
	posts *controller.PostController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	s.tokenService = service.NewTokenService()
	authLimiter := middleware.NewAuthLimiter()

	api := engine.Group("/api")
	{
		s.auth = controller.NewAuthController(api, s.tokenService, authLimiter)
		s.posts = controller.NewPostController(api, s.tokenService)
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	// The limiter grows one entry per client and window; drop stale ones.
	s.cron.AddFunc("@every 5m", authLimiter.Purge)

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@every 1h", job.NewContentStatsJob()); err != nil {
		logger.Warning("add content stats job failed:", err)
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		defer common.Recover("web server serve")
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return errors.Join(err1, err2)
}
