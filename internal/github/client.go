// Package github fetches GitHub profile data and turns it into the card's
// GitHub snapshot.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/devcardhq/devcard-companion/internal/stats"
	"github.com/devcardhq/devcard-companion/internal/storage/models"
)

const (
	defaultBaseURL = "https://api.github.com"
	rateLimitDelay = 100 * time.Millisecond
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// ErrUserNotFound indicates the requested GitHub account does not exist.
var ErrUserNotFound = errors.New("github user not found")

// Fetcher is the GitHub data collaborator consumed by the facades. It
// allows mocking the client in tests.
type Fetcher interface {
	FetchUserData(ctx context.Context, username string) (*models.GitHubData, error)
}

// Config holds client configuration.
type Config struct {
	// BaseURL overrides the GitHub API endpoint, e.g. to point at the
	// local passthrough proxy or a test server. Defaults to the public API.
	BaseURL string

	// Token is an optional bearer credential attached to every request.
	Token string
}

// Client is a rate-limited GitHub REST client with retry and backoff.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	token       string
	userAgent   string
}

// NewClient creates a new GitHub API client.
func NewClient(config *Config) *Client {
	baseURL := defaultBaseURL
	token := ""
	if config != nil {
		if config.BaseURL != "" {
			baseURL = config.BaseURL
		}
		token = config.Token
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// 10 req/sec keeps well inside GitHub's secondary rate limits
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		baseURL:     baseURL,
		token:       token,
		userAgent:   "DevCard-Companion/1.0",
	}
}

// FetchUserData fetches a user's profile, repositories and recent public
// activity and aggregates them into a GitHubData snapshot. An unknown
// account yields ErrUserNotFound and never a partial snapshot.
func (c *Client) FetchUserData(ctx context.Context, username string) (*models.GitHubData, error) {
	var user userResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s/users/%s", c.baseURL, username), &user); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("failed to fetch user %s: %w", username, ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", username, err)
	}

	var repos []repoResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", c.baseURL, username), &repos); err != nil {
		return nil, fmt.Errorf("failed to fetch repos for %s: %w", username, err)
	}

	var events []eventResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s/users/%s/events/public?per_page=100", c.baseURL, username), &events); err != nil {
		return nil, fmt.Errorf("failed to fetch events for %s: %w", username, err)
	}

	statsRepos := make([]stats.Repo, 0, len(repos))
	for _, repo := range repos {
		statsRepos = append(statsRepos, stats.Repo{Stars: repo.StargazersCount, Language: repo.Language})
	}
	statsEvents := make([]stats.Event, 0, len(events))
	for _, event := range events {
		statsEvents = append(statsEvents, stats.Event{Type: event.Type, CreatedAt: event.CreatedAt})
	}

	data := stats.Aggregate(stats.User{
		Login:       user.Login,
		AvatarURL:   user.AvatarURL,
		PublicRepos: user.PublicRepos,
	}, statsRepos, statsEvents)

	return &data, nil
}

// doRequest performs a GET with rate limiting and retry on transient
// failures. 404 responses map to ErrUserNotFound and are not retried.
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/vnd.github.v3+json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("failed to read response body: %w", readErr)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to parse JSON response: %w", err)
			}
			return nil

		case http.StatusNotFound:
			return ErrUserNotFound

		case http.StatusForbidden, http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP %d)", resp.StatusCode)
			if attempt < maxRetries {
				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if duration, err := time.ParseDuration(retryAfter + "s"); err == nil {
						time.Sleep(duration)
					} else {
						time.Sleep(backoff)
					}
				} else {
					time.Sleep(backoff)
				}
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		default:
			lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
			if resp.StatusCode >= 500 && attempt < maxRetries {
				time.Sleep(backoff)
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}
	}

	return lastErr
}
