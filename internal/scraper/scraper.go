// The scraper walks the user search results for the configured location
// and thresholds, fetches each candidate's full profile and repository
// list, and appends every collected record to the CSV outputs. Runs are
// single threaded: one request at a time, and the only waits are the
// rate-limit and throttle sleeps inside the API caller.

package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/internal/githubapi"
	"github.com/tdhoang/github-user-scraper/internal/model"
	"github.com/tdhoang/github-user-scraper/pkg/csv"
	"github.com/tdhoang/github-user-scraper/pkg/kafka"
	"github.com/tdhoang/github-user-scraper/pkg/log"
)

// Stats summarizes one finished (or aborted) run.
type Stats struct {
	UsersCollected int       `json:"users_collected"`
	UsersSkipped   int       `json:"users_skipped"`
	ReposCollected int       `json:"repos_collected"`
	PagesFetched   int       `json:"pages_fetched"`
	HitCeiling     bool      `json:"hit_ceiling"`
	StartTime      time.Time `json:"start_time"`
	Duration       string    `json:"duration"`
}

type Scraper struct {
	Logger log.Logger
	Config *cfg.Config
	Caller *githubapi.Caller

	usersCSV *csv.Writer
	reposCSV *csv.Writer

	// Optional sinks, attached when the MySQL mirror or the Kafka
	// pipeline is enabled in the config.
	userMd       *model.User
	repoMd       *model.Repo
	userProducer *kafka.Producer
	repoProducer *kafka.Producer

	seen map[string]bool
}

func NewScraper(logger log.Logger, config *cfg.Config, caller *githubapi.Caller, usersCSV, reposCSV *csv.Writer) (*Scraper, error) {
	if config.Search.Location == "" {
		return nil, fmt.Errorf("search location is required")
	}

	return &Scraper{
		Logger:   logger,
		Config:   config,
		Caller:   caller,
		usersCSV: usersCSV,
		reposCSV: reposCSV,
		seen:     make(map[string]bool, 1024),
	}, nil
}

// AttachMysql enables the MySQL mirror sink.
func (s *Scraper) AttachMysql(userMd *model.User, repoMd *model.Repo) {
	s.userMd = userMd
	s.repoMd = repoMd
}

// AttachKafka enables the Kafka pipeline sink.
func (s *Scraper) AttachKafka(userProducer, repoProducer *kafka.Producer) {
	s.userProducer = userProducer
	s.repoProducer = repoProducer
}

// buildQuery assembles the search qualifier string from the criteria,
// e.g. "location:Sydney followers:>=100 repos:>=10".
func (s *Scraper) buildQuery() string {
	parts := []string{
		fmt.Sprintf("location:%s", s.Config.Search.Location),
		fmt.Sprintf("followers:>=%d", s.Config.Search.MinFollowers),
	}
	if s.Config.Search.MinRepos > 0 {
		parts = append(parts, fmt.Sprintf("repos:>=%d", s.Config.Search.MinRepos))
	}
	return strings.Join(parts, " ")
}

// Run executes the whole scrape and returns its stats. Per-record
// failures (vanished users, undecodable single records) are logged and
// skipped; credential and exhausted-retry errors abort the run.
func (s *Scraper) Run(ctx context.Context) (Stats, error) {
	stats := Stats{StartTime: time.Now()}
	query := s.buildQuery()

	perPage := s.Config.Search.PerPage
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}
	maxUsers := s.Config.Search.MaxUsers
	if maxUsers <= 0 {
		maxUsers = githubapi.SearchResultCeiling
	}

	s.Logger.Info(ctx, "Starting scrape: %q (max %d users)", query, maxUsers)

	page := 1
	for stats.UsersCollected < maxUsers {
		// GitHub search stops serving results past the ceiling no
		// matter how many users actually match; a page reaching past
		// it comes back 422. Any page that would cross the boundary
		// is therefore never requested. Reaching it is a normal end
		// of the run, logged apart from "no more pages".
		if page*perPage > githubapi.SearchResultCeiling {
			stats.HitCeiling = true
			s.Logger.Warn(ctx, "Reached the %d-result search ceiling, stopping pagination", githubapi.SearchResultCeiling)
			break
		}

		resp, err := s.Caller.SearchUsers(ctx, query, page, perPage)
		if err != nil {
			return stats, fmt.Errorf("user search failed on page %d: %w", page, err)
		}
		stats.PagesFetched++

		if len(resp.Items) == 0 {
			s.Logger.Info(ctx, "No more pages after page %d", page-1)
			break
		}

		for i := range resp.Items {
			if stats.UsersCollected >= maxUsers {
				break
			}

			login := resp.Items[i].Login
			// Result sets can shift while a long query pages through
			// them, so the same login may appear twice.
			if s.seen[login] {
				continue
			}
			s.seen[login] = true

			if err := s.processUser(ctx, login, &stats); err != nil {
				return stats, err
			}
		}

		if len(resp.Items) < perPage {
			s.Logger.Info(ctx, "Short page (%d items), search exhausted", len(resp.Items))
			break
		}
		page++
	}

	stats.Duration = time.Since(stats.StartTime).String()
	s.Logger.Info(ctx, "Scrape finished: %d users, %d repos, %d skipped, %d pages in %s",
		stats.UsersCollected, stats.ReposCollected, stats.UsersSkipped, stats.PagesFetched, stats.Duration)

	return stats, nil
}
