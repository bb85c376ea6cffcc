package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/internal/model"
	"github.com/tdhoang/github-user-scraper/pkg/db"
	"github.com/tdhoang/github-user-scraper/pkg/kafka"
	"github.com/tdhoang/github-user-scraper/pkg/log"
)

const (
	batchSize    = 100
	batchTimeout = 5 * time.Second
)

func main() {
	consumerType := flag.String("type", "", "Type of consumer to run (user, repo)")
	flag.Parse()

	if *consumerType == "" {
		fmt.Println("Please specify a consumer type: -type=[user|repo]")
		os.Exit(1)
	}

	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, _ := log.NewCslLogger()
	mysql, _ := db.NewMysql(config)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userModel, _ := model.NewUser(config, logger, mysql)
	repoModel, _ := model.NewRepo(config, logger, mysql)

	if err := mysql.Migrate(userModel, repoModel); err != nil {
		logger.Error(ctx, "Failed to migrate database: %v", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	switch *consumerType {
	case "user":
		startUserConsumer(ctx, config, logger, userModel)
	case "repo":
		startRepoConsumer(ctx, config, logger, repoModel)
	default:
		logger.Error(ctx, "Unknown consumer type: %s", *consumerType)
		os.Exit(1)
	}

	<-sigCh
	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")
	cancel()
}

func startUserConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, userModel *model.User) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.TopicUser, "user-consumer-group")

	messages := make(chan model.UserMessage, batchSize*2)
	go processBatchedUsers(ctx, messages, logger, userModel)

	consumer.RegisterHandler("user", func(data []byte) error {
		var userMsg model.UserMessage
		if err := json.Unmarshal(data, &userMsg); err != nil {
			return fmt.Errorf("failed to unmarshal user message: %w", err)
		}

		select {
		case messages <- userMsg:
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	})

	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "User consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "User consumer started successfully")
}

func processBatchedUsers(ctx context.Context, messages <-chan model.UserMessage, logger log.Logger, userModel *model.User) {
	batch := make([]model.UserMessage, 0, batchSize)
	timer := time.NewTimer(batchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := userModel.CreateBatch(batch); err != nil {
			logger.Error(ctx, "Failed to insert user batch: %v", err)
		} else {
			logger.Info(ctx, "Inserted batch of %d users", len(batch))
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case msg := <-messages:
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				timer.Reset(batchTimeout)
			}
		case <-timer.C:
			flush()
			timer.Reset(batchTimeout)
		}
	}
}

func startRepoConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, repoModel *model.Repo) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.TopicRepo, "repo-consumer-group")

	messages := make(chan model.RepoMessage, batchSize*2)
	go processBatchedRepos(ctx, messages, logger, repoModel)

	consumer.RegisterHandler("repo", func(data []byte) error {
		var repoMsg model.RepoMessage
		if err := json.Unmarshal(data, &repoMsg); err != nil {
			return fmt.Errorf("failed to unmarshal repo message: %w", err)
		}

		select {
		case messages <- repoMsg:
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	})

	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Repo consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Repository consumer started successfully")
}

func processBatchedRepos(ctx context.Context, messages <-chan model.RepoMessage, logger log.Logger, repoModel *model.Repo) {
	batch := make([]model.RepoMessage, 0, batchSize)
	timer := time.NewTimer(batchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := repoModel.CreateBatch(batch); err != nil {
			logger.Error(ctx, "Failed to insert repo batch: %v", err)
		} else {
			logger.Info(ctx, "Inserted batch of %d repositories", len(batch))
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case msg := <-messages:
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				timer.Reset(batchTimeout)
			}
		case <-timer.C:
			flush()
			timer.Reset(batchTimeout)
		}
	}
}
