package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/internal/githubapi"
	"github.com/tdhoang/github-user-scraper/internal/limiter"
	"github.com/tdhoang/github-user-scraper/internal/model"
	"github.com/tdhoang/github-user-scraper/internal/scraper"
	"github.com/tdhoang/github-user-scraper/pkg/csv"
	"github.com/tdhoang/github-user-scraper/pkg/db"
	"github.com/tdhoang/github-user-scraper/pkg/kafka"
	"github.com/tdhoang/github-user-scraper/pkg/log"
)

func main() {
	ctx := context.Background()
	logger, _ := log.NewCslLogger()

	// loader, _ := cfg.NewMockLoader()
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		logger.Critical(ctx, "Failed to load config: %v", err)
		os.Exit(1)
	}

	// A missing credential fails the run before anything is written.
	lim := limiter.NewRateLimiter(config.GithubApi.RequestsPerSecond)
	caller, err := githubapi.NewCaller(logger, config, lim)
	if err != nil {
		logger.Critical(ctx, "Cannot start: %v", err)
		os.Exit(1)
	}

	usersCSV, err := csv.NewWriter(filepath.Join(config.Output.Dir, config.Output.UsersFile), model.UserHeader())
	if err != nil {
		logger.Critical(ctx, "Cannot open users output: %v", err)
		os.Exit(1)
	}
	reposCSV, err := csv.NewWriter(filepath.Join(config.Output.Dir, config.Output.ReposFile), model.RepoHeader())
	if err != nil {
		logger.Critical(ctx, "Cannot open repositories output: %v", err)
		os.Exit(1)
	}

	s, err := scraper.NewScraper(logger, config, caller, usersCSV, reposCSV)
	if err != nil {
		logger.Critical(ctx, "Cannot create scraper: %v", err)
		os.Exit(1)
	}

	// Mirror to MySQL when enabled
	if config.Storage.MysqlEnabled {
		mysql, _ := db.NewMysql(config)
		userMd, _ := model.NewUser(config, logger, mysql)
		repoMd, _ := model.NewRepo(config, logger, mysql)
		if err := mysql.Migrate(userMd, repoMd); err != nil {
			logger.Critical(ctx, "Failed to migrate database: %v", err)
			os.Exit(1)
		}
		s.AttachMysql(userMd, repoMd)
	}

	// Publish records to Kafka when enabled
	if config.Kafka.Enabled {
		userProducer := kafka.NewProducer(config, logger, config.Kafka.TopicUser)
		repoProducer := kafka.NewProducer(config, logger, config.Kafka.TopicRepo)
		defer userProducer.Close()
		defer repoProducer.Close()
		s.AttachKafka(userProducer, repoProducer)
	}

	logger.Info(ctx, "Starting GitHub user scraper")
	stats, runErr := s.Run(ctx)

	if err := usersCSV.Close(); err != nil {
		logger.Error(ctx, "Failed to close users output: %v", err)
	}
	if err := reposCSV.Close(); err != nil {
		logger.Error(ctx, "Failed to close repositories output: %v", err)
	}

	if runErr != nil {
		logger.Error(ctx, "Scrape failed: %v", runErr)
		os.Exit(1)
	}

	logger.Info(ctx, "==== SCRAPE RESULT ====")
	logger.Info(ctx, "Users collected: %d", stats.UsersCollected)
	logger.Info(ctx, "Users skipped: %d", stats.UsersSkipped)
	logger.Info(ctx, "Repositories collected: %d", stats.ReposCollected)
	logger.Info(ctx, "Search pages fetched: %d", stats.PagesFetched)
	logger.Info(ctx, "Total duration: %s", stats.Duration)
	logger.Info(ctx, "Output: %s, %s", usersCSV.Path(), reposCSV.Path())
}
