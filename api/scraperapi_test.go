package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/pkg/log"
)

func newTestAPI(t *testing.T, apiURL string) *ScraperAPI {
	t.Helper()

	loader, _ := cfg.NewMockLoader()
	config, _ := loader.Load()
	config.GithubApi.AccessToken = "test-token"
	config.GithubApi.ApiUrl = apiURL
	config.GithubApi.RequestsPerSecond = 1000
	config.GithubApi.RateLimitResetMin = 0
	config.Output.Dir = t.TempDir()

	logger, _ := log.NewNopLogger()

	a := NewScraperAPI()
	a.ctx = context.Background()
	a.config = config
	a.logger = logger
	return a
}

func waitForIdle(t *testing.T, a *ScraperAPI) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		stats, err := a.GetStats()
		require.NoError(t, err)
		if !stats.IsRunning {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("scrape run did not finish in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestScraperAPI_StartScrapingSingleFlight(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Keep the run alive long enough for every competing start to
		// hit the guard while it is busy.
		time.Sleep(100 * time.Millisecond)
		fmt.Fprint(w, `{"total_count":0,"incomplete_results":false,"items":[]}`)
	}))
	defer server.Close()

	a := newTestAPI(t, server.URL)

	const starters = 5
	var started int32
	var wg sync.WaitGroup
	for i := 0; i < starters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg, err := a.StartScraping()
			assert.NoError(t, err)
			if msg == "Started scraping" {
				atomic.AddInt32(&started, 1)
			} else {
				assert.Equal(t, "Scraping is already in progress", msg)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&started), "exactly one concurrent start may win")
	waitForIdle(t, a)

	// The guard releases once the run finishes.
	msg, err := a.StartScraping()
	require.NoError(t, err)
	assert.Equal(t, "Started scraping", msg)
	waitForIdle(t, a)
}

func TestScraperAPI_StartScrapingReleasesOnSetupFailure(t *testing.T) {
	a := newTestAPI(t, "http://127.0.0.1:0")
	a.config.GithubApi.AccessToken = ""

	_, err := a.StartScraping()
	require.Error(t, err)

	stats, err := a.GetStats()
	require.NoError(t, err)
	assert.False(t, stats.IsRunning, "a failed start must not leave the run flag set")
}
