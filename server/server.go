package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/feedwatch/pkg/domain"
	"github.com/umputun/feedwatch/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	scheduler Scheduler
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for server operations
type Database interface {
	CreateFeed(ctx context.Context, feed *domain.Feed) error
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	GetFeeds(ctx context.Context, activeOnly bool) ([]domain.Feed, error)
	DeleteFeed(ctx context.Context, id int64) error
	SetFeedActive(ctx context.Context, id int64, active bool) error

	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	GetItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	SetItemUnread(ctx context.Context, id int64, unread bool) error
}

// Scheduler interface for on-demand updates
type Scheduler interface {
	ForceUpdate(ctx context.Context, feedID int64) (scheduler.IngestResult, error)
	ForceUpdateAll(ctx context.Context) (scheduler.TickReport, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, sched Scheduler, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		db:        db,
		scheduler: sched,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		// force updates fetch remote feeds synchronously
		WriteTimeout: 2 * timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedwatch", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds/follow", s.followHandler)
		r.HandleFunc("POST /feeds/update", s.updateAllHandler)
		r.HandleFunc("GET /feeds/{id}", s.getFeedHandler)
		r.HandleFunc("GET /feeds/{id}/items", s.feedItemsHandler)
		r.HandleFunc("POST /feeds/{id}/unfollow", s.unfollowHandler)
		r.HandleFunc("POST /feeds/{id}/set_active", s.setActiveHandler(true))
		r.HandleFunc("POST /feeds/{id}/set_inactive", s.setActiveHandler(false))
		r.HandleFunc("POST /feeds/{id}/update", s.updateFeedHandler)

		r.HandleFunc("GET /items", s.listItemsHandler)
		r.HandleFunc("GET /items/{id}", s.getItemHandler)
		r.HandleFunc("PATCH /items/{id}", s.patchItemHandler)
	})
}
