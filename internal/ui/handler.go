package ui

import (
	"encoding/json"
	"net/http"

	"github.com/tdhoang/github-user-scraper/api"
	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/internal/model"
	"github.com/tdhoang/github-user-scraper/pkg/db"
	"github.com/tdhoang/github-user-scraper/pkg/log"
	"gorm.io/gorm"
)

// Handler manages HTTP requests for the dataset API
type Handler struct {
	Logger log.Logger
	Config *cfg.Config
	MySQL  *db.Mysql
	API    *api.ScraperAPI
	db     *gorm.DB
}

// NewHandler creates a new dataset handler
func NewHandler(logger log.Logger, config *cfg.Config, mysql *db.Mysql, scraperAPI *api.ScraperAPI) (*Handler, error) {
	db, err := mysql.Db()
	if err != nil {
		return nil, err
	}

	return &Handler{
		Logger: logger,
		Config: config,
		MySQL:  mysql,
		API:    scraperAPI,
		db:     db,
	}, nil
}

// RegisterRoutes attaches all endpoints to the mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/users", h.getUsers)
	mux.HandleFunc("/api/repos", h.getRepos)
	mux.HandleFunc("/api/stats", h.getStats)
	mux.HandleFunc("/api/scrape/start", h.startScrape)
	mux.HandleFunc("/api/scrape/stats", h.getScrapeStats)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error(r.Context(), "Failed to encode JSON response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// getStats reports dataset counts from the mirror.
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	var userCount, repoCount int64
	if err := h.db.Model(&model.User{}).Count(&userCount).Error; err != nil {
		h.Logger.Error(r.Context(), "Failed to count users: %v", err)
		http.Error(w, "Failed to count users", http.StatusInternalServerError)
		return
	}
	if err := h.db.Model(&model.Repo{}).Count(&repoCount).Error; err != nil {
		h.Logger.Error(r.Context(), "Failed to count repositories: %v", err)
		http.Error(w, "Failed to count repositories", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, r, map[string]interface{}{
		"users": userCount,
		"repos": repoCount,
	})
}

// startScrape launches a scrape run through the api facade.
func (h *Handler) startScrape(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.API == nil {
		http.Error(w, "Scraper is not available", http.StatusServiceUnavailable)
		return
	}

	msg, err := h.API.StartScraping()
	if err != nil {
		h.Logger.Error(r.Context(), "Failed to start scraping: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, r, map[string]string{"message": msg})
}

// getScrapeStats reports progress of the current or last run.
func (h *Handler) getScrapeStats(w http.ResponseWriter, r *http.Request) {
	if h.API == nil {
		http.Error(w, "Scraper is not available", http.StatusServiceUnavailable)
		return
	}

	stats, err := h.API.GetStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, r, stats)
}
