package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tdhoang/github-user-scraper/api"
	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/internal/ui"
	"github.com/tdhoang/github-user-scraper/pkg/db"
	applog "github.com/tdhoang/github-user-scraper/pkg/log"
)

func main() {
	port := flag.Int("port", 8080, "Port for the dataset server to listen on")
	flag.Parse()

	ctx := context.Background()
	loader, _ := cfg.NewViperLoader()
	config, _ := loader.Load()
	mysql, _ := db.NewMysql(config)
	logger, _ := applog.NewCslLogger()

	scraperAPI := api.NewScraperAPI()
	if err := scraperAPI.Initialize(ctx); err != nil {
		logger.Error(ctx, "Failed to initialize scraper API: %v", err)
		// The dataset endpoints still work without it
	}

	server, err := ui.NewServer(logger, config, mysql, scraperAPI, *port)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Error(ctx, "Server failed to start: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error(ctx, "Error during server shutdown: %v", err)
	}

	logger.Info(ctx, "Server shut down gracefully")
}
