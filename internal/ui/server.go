package ui

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tdhoang/github-user-scraper/api"
	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/pkg/db"
	"github.com/tdhoang/github-user-scraper/pkg/log"
)

// Server serves the scraped dataset stored in the MySQL mirror and lets
// a client start a new scrape run.
type Server struct {
	Logger log.Logger
	Config *cfg.Config
	MySQL  *db.Mysql
	API    *api.ScraperAPI
	server *http.Server
	port   int
}

// NewServer creates a new dataset server
func NewServer(logger log.Logger, config *cfg.Config, mysql *db.Mysql, scraperAPI *api.ScraperAPI, port int) (*Server, error) {
	return &Server{
		Logger: logger,
		Config: config,
		MySQL:  mysql,
		API:    scraperAPI,
		port:   port,
	}, nil
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	handler, err := NewHandler(s.Logger, s.Config, s.MySQL, s.API)
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.Logger.Info(context.Background(), "Starting dataset server on port %d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		s.Logger.Info(ctx, "Shutting down dataset server")
		return s.server.Shutdown(ctx)
	}
	return nil
}
