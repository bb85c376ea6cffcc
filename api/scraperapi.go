// Package api exposes a small programmatic surface over the scraper so
// other processes (the dataset HTTP server in particular) can start runs
// and watch their progress.
package api

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/internal/githubapi"
	"github.com/tdhoang/github-user-scraper/internal/limiter"
	"github.com/tdhoang/github-user-scraper/internal/model"
	"github.com/tdhoang/github-user-scraper/internal/scraper"
	"github.com/tdhoang/github-user-scraper/pkg/csv"
	"github.com/tdhoang/github-user-scraper/pkg/db"
	"github.com/tdhoang/github-user-scraper/pkg/log"
)

// ScrapeStats is the progress snapshot served to clients.
type ScrapeStats struct {
	IsRunning      bool      `json:"isRunning"`
	StartTime      time.Time `json:"startTime"`
	Duration       string    `json:"duration"`
	UsersCollected int       `json:"usersCollected"`
	ReposCollected int       `json:"reposCollected"`
	UsersSkipped   int       `json:"usersSkipped"`
	PagesFetched   int       `json:"pagesFetched"`
	HitCeiling     bool      `json:"hitCeiling"`
	LastError      string    `json:"lastError"`
}

// ScraperAPI wires config, logging, storage and the scraper together.
type ScraperAPI struct {
	ctx      context.Context
	config   *cfg.Config
	logger   log.Logger
	mysql    *db.Mysql
	scraping bool
	statsMu  sync.RWMutex
	stats    *ScrapeStats
}

func NewScraperAPI() *ScraperAPI {
	return &ScraperAPI{
		stats: &ScrapeStats{},
	}
}

// Initialize loads configuration and prepares the MySQL mirror when it
// is enabled.
func (a *ScraperAPI) Initialize(ctx context.Context) error {
	a.ctx = ctx

	var err error

	loader, _ := cfg.NewViperLoader()
	a.config, err = loader.Load()
	if err != nil {
		return err
	}

	a.logger, err = log.NewCslLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	if a.config.Storage.MysqlEnabled {
		a.mysql, err = db.NewMysql(a.config)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := a.migrateDatabase(); err != nil {
			return err
		}
	}

	return nil
}

// migrateDatabase makes sure the mirror tables exist.
func (a *ScraperAPI) migrateDatabase() error {
	if a.mysql == nil {
		return errors.New("database connection not initialized")
	}

	userMd, err := model.NewUser(a.config, a.logger, a.mysql)
	if err != nil {
		return fmt.Errorf("failed to create user model: %w", err)
	}

	repoMd, err := model.NewRepo(a.config, a.logger, a.mysql)
	if err != nil {
		return fmt.Errorf("failed to create repo model: %w", err)
	}

	return a.mysql.Migrate(userMd, repoMd)
}

// StartScraping kicks off one run in the background. A second call while
// a run is active is a no-op.
func (a *ScraperAPI) StartScraping() (string, error) {
	// Check-and-set under one lock: concurrent starts must not both
	// get past the guard and truncate the same output files.
	a.statsMu.Lock()
	if a.scraping {
		a.statsMu.Unlock()
		return "Scraping is already in progress", nil
	}
	a.scraping = true
	a.stats = &ScrapeStats{
		IsRunning: true,
		StartTime: time.Now(),
	}
	a.statsMu.Unlock()

	release := func() {
		a.statsMu.Lock()
		a.scraping = false
		a.stats.IsRunning = false
		a.statsMu.Unlock()
	}

	lim := limiter.NewRateLimiter(a.config.GithubApi.RequestsPerSecond)
	caller, err := githubapi.NewCaller(a.logger, a.config, lim)
	if err != nil {
		release()
		return "", err
	}

	usersCSV, err := csv.NewWriter(filepath.Join(a.config.Output.Dir, a.config.Output.UsersFile), model.UserHeader())
	if err != nil {
		release()
		return "", err
	}
	reposCSV, err := csv.NewWriter(filepath.Join(a.config.Output.Dir, a.config.Output.ReposFile), model.RepoHeader())
	if err != nil {
		usersCSV.Close()
		release()
		return "", err
	}

	s, err := scraper.NewScraper(a.logger, a.config, caller, usersCSV, reposCSV)
	if err != nil {
		usersCSV.Close()
		reposCSV.Close()
		release()
		return "", err
	}

	if a.config.Storage.MysqlEnabled && a.mysql != nil {
		userMd, _ := model.NewUser(a.config, a.logger, a.mysql)
		repoMd, _ := model.NewRepo(a.config, a.logger, a.mysql)
		s.AttachMysql(userMd, repoMd)
	}

	go func() {
		stats, runErr := s.Run(a.ctx)
		usersCSV.Close()
		reposCSV.Close()

		a.updateStats(func(st *ScrapeStats) {
			st.IsRunning = false
			st.UsersCollected = stats.UsersCollected
			st.ReposCollected = stats.ReposCollected
			st.UsersSkipped = stats.UsersSkipped
			st.PagesFetched = stats.PagesFetched
			st.HitCeiling = stats.HitCeiling
			st.Duration = time.Since(st.StartTime).String()
			if runErr != nil {
				st.LastError = runErr.Error()
			}
		})

		a.statsMu.Lock()
		a.scraping = false
		a.statsMu.Unlock()
	}()

	return "Started scraping", nil
}

// GetStats returns a copy of the progress snapshot.
func (a *ScraperAPI) GetStats() (*ScrapeStats, error) {
	a.statsMu.RLock()
	defer a.statsMu.RUnlock()

	if a.stats == nil {
		return &ScrapeStats{}, nil
	}

	stats := *a.stats
	if stats.IsRunning {
		stats.Duration = time.Since(stats.StartTime).String()
	}

	return &stats, nil
}

func (a *ScraperAPI) updateStats(updateFn func(*ScrapeStats)) {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()

	if a.stats == nil {
		a.stats = &ScrapeStats{}
	}

	updateFn(a.stats)
}

// GetDatabaseStatus reports the mirror connection state.
func (a *ScraperAPI) GetDatabaseStatus() (string, error) {
	if a.mysql == nil {
		return "Database not initialized", nil
	}

	if err := a.mysql.Ping(); err != nil {
		return "Database not connected: " + err.Error(), err
	}

	return "Database connected", nil
}
