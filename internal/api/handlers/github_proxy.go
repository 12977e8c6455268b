package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devcardhq/devcard-companion/internal/api/response"
)

const (
	githubProxyCacheTTL   = 5 * time.Minute
	githubProxyMaxEntries = 512
	githubProxyMaxBody    = 10 << 20 // 10 MiB safety cap on API payloads
)

// GitHubProxyHandler forwards read-only requests to the GitHub API,
// attaching the server-side token so it never reaches the browser.
type GitHubProxyHandler struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *proxyCache
}

// GitHubProxyConfig configures the GitHub proxy.
type GitHubProxyConfig struct {
	BaseURL string // Defaults to https://api.github.com
	Token   string // Optional; attached as a bearer token upstream
}

// NewGitHubProxyHandler creates a new GitHubProxyHandler.
func NewGitHubProxyHandler(cfg GitHubProxyConfig) *GitHubProxyHandler {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &GitHubProxyHandler{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      newProxyCache(githubProxyCacheTTL, githubProxyMaxEntries),
	}
}

// Proxy handles GET /proxy/github?path=users/octocat. Only GET is
// forwarded; responses are cached briefly to stay inside upstream rate
// limits.
func (h *GitHubProxyHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	path := r.URL.Query().Get("path")
	if path == "" {
		response.BadRequest(w, errors.New("path parameter is required"))
		return
	}

	target, err := h.resolveTarget(path)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	if cached, ok := h.cache.get(target); ok {
		writeProxied(w, cached, githubProxyCacheTTL)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to build upstream request: %w", err))
		return
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "DevCard-Companion/1.0")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		response.BadGateway(w, fmt.Errorf("github request failed: %w", err))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, githubProxyMaxBody))
	if err != nil {
		response.BadGateway(w, fmt.Errorf("failed to read github response: %w", err))
		return
	}

	entry := cachedResponse{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        body,
	}
	if resp.StatusCode == http.StatusOK {
		h.cache.put(target, entry)
	}
	writeProxied(w, entry, githubProxyCacheTTL)
}

// resolveTarget joins the requested path onto the GitHub API base and
// rejects anything that would escape it.
func (h *GitHubProxyHandler) resolveTarget(path string) (string, error) {
	trimmed := strings.TrimLeft(path, "/")
	if trimmed == "" {
		return "", errors.New("path parameter is required")
	}
	if strings.Contains(trimmed, "://") || strings.HasPrefix(trimmed, "//") {
		return "", errors.New("path must be relative to the GitHub API")
	}

	target := h.baseURL + "/" + trimmed
	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	base, err := url.Parse(h.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if parsed.Host != base.Host || parsed.Scheme != base.Scheme {
		return "", errors.New("path must be relative to the GitHub API")
	}
	return target, nil
}

func writeProxied(w http.ResponseWriter, entry cachedResponse, maxAge time.Duration) {
	if entry.contentType != "" {
		w.Header().Set("Content-Type", entry.contentType)
	}
	if entry.status == http.StatusOK {
		seconds := int(maxAge / time.Second)
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, s-maxage=%d", seconds, seconds))
	}
	w.WriteHeader(entry.status)
	_, _ = w.Write(entry.body)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
}
