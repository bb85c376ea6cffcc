package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/internal/limiter"
	"github.com/tdhoang/github-user-scraper/pkg/log"
	"golang.org/x/oauth2"
)

const (
	// SearchResultCeiling is the hard cap GitHub places on retrievable
	// search results, regardless of the true match count. Reaching it is
	// a normal stop condition, not an error.
	SearchResultCeiling = 1000

	requestTimeout = 30 * time.Second
)

// Caller performs authenticated requests against the GitHub API and owns
// the recovery policy: sleep-and-retry on quota exhaustion, bounded
// retries with backoff on transient network failures, immediate failure
// on bad credentials.
type Caller struct {
	Logger  log.Logger
	Config  *cfg.Config
	Limiter *limiter.RateLimiter
	client  *http.Client
	baseURL string
}

func NewCaller(logger log.Logger, config *cfg.Config, lim *limiter.RateLimiter) (*Caller, error) {
	if config.GithubApi.AccessToken == "" {
		return nil, ErrMissingToken
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.GithubApi.AccessToken})
	client := oauth2.NewClient(context.Background(), ts)
	client.Timeout = requestTimeout

	return &Caller{
		Logger:  logger,
		Config:  config,
		Limiter: lim,
		client:  client,
		baseURL: config.GithubApi.ApiUrl,
	}, nil
}

// SearchUsers requests one page of /search/users for the given query.
func (c *Caller) SearchUsers(ctx context.Context, query string, page, perPage int) (*SearchUsersResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))

	result := &SearchUsersResponse{}
	if err := c.get(ctx, "/search/users", params, result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetUser fetches the full profile for one login.
func (c *Caller) GetUser(ctx context.Context, login string) (*UserResponse, error) {
	result := &UserResponse{}
	if err := c.get(ctx, "/users/"+url.PathEscape(login), nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListRepos requests one page of the user's repositories, most recently
// pushed first.
func (c *Caller) ListRepos(ctx context.Context, login string, page, perPage int) ([]RepoResponse, error) {
	params := url.Values{}
	params.Set("sort", "pushed")
	params.Set("direction", "desc")
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))

	var result []RepoResponse
	if err := c.get(ctx, "/users/"+url.PathEscape(login)+"/repos", params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// get runs one GET against the API and decodes the body into out.
// Rate-limit responses are absorbed here: the call sleeps until the
// reported reset time and reissues the request, as many times as it
// takes. Transient failures get at most MaxRetries extra attempts.
func (c *Caller) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	netAttempts := 0
	for {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("cannot build request: %w", err)
		}
		req.Header.Set("Accept", "application/vnd.github.v3+json")

		c.Logger.Debug(ctx, "Calling GitHub API: %s", endpoint)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			netAttempts++
			if netAttempts > c.Config.GithubApi.MaxRetries {
				return fmt.Errorf("request failed after %d attempts: %w", netAttempts, err)
			}
			c.Logger.Warn(ctx, "Request failed (%v), retry %d/%d", err, netAttempts, c.Config.GithubApi.MaxRetries)
			if err := c.sleep(ctx, c.retryDelay(netAttempts)); err != nil {
				return err
			}
			continue
		}

		c.Limiter.UpdateFromResponse(resp)

		if rateErr := c.checkRateLimit(resp); rateErr != nil {
			resp.Body.Close()
			wait := time.Until(rateErr.ResetAt)
			if wait <= 0 {
				wait = time.Duration(c.Config.GithubApi.RateLimitResetMin) * time.Minute
			}
			c.Logger.Warn(ctx, "Rate limit hit, waiting %v until %s", wait.Round(time.Second), rateErr.ResetAt.Format(time.RFC3339))
			if err := c.sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			netAttempts++
			if netAttempts > c.Config.GithubApi.MaxRetries {
				return &APIError{StatusCode: resp.StatusCode, Message: resp.Status, URL: endpoint}
			}
			c.Logger.Warn(ctx, "Server error %s, retry %d/%d", resp.Status, netAttempts, c.Config.GithubApi.MaxRetries)
			if err := c.sleep(ctx, c.retryDelay(netAttempts)); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return &APIError{StatusCode: resp.StatusCode, Message: resp.Status, URL: endpoint}
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return &MalformedError{URL: endpoint, Err: err}
		}

		c.Logger.Debug(ctx, "Rate limit remaining: %d", c.Limiter.Remaining())
		return nil
	}
}

// checkRateLimit inspects a response for quota exhaustion: a 429, or a
// 403 whose remaining-quota header has reached zero.
func (c *Caller) checkRateLimit(resp *http.Response) *RateLimitError {
	remaining := resp.Header.Get(limiter.HeaderRateRemaining)
	limited := resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && remaining == "0")
	if !limited {
		return nil
	}

	resetAt := time.Now().Add(time.Duration(c.Config.GithubApi.RateLimitResetMin) * time.Minute)
	if resetStr := resp.Header.Get(limiter.HeaderRateReset); resetStr != "" {
		if resetUnix, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
			resetAt = time.Unix(resetUnix, 0)
		}
	}

	return &RateLimitError{ResetAt: resetAt, Remaining: 0}
}

func (c *Caller) retryDelay(attempt int) time.Duration {
	return time.Duration(attempt*c.Config.GithubApi.RetryDelayMs) * time.Millisecond
}

func (c *Caller) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
