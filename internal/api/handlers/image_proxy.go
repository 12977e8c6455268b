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
	imageProxyCacheTTL   = time.Hour
	imageProxyMaxEntries = 256
	imageProxyMaxBytes   = 5 << 20 // 5 MiB
)

// defaultImageHosts are the upstream hosts the image proxy will fetch
// from. Subdomains of each entry are allowed too.
var defaultImageHosts = []string{
	"skillicons.dev",
	"avatars.githubusercontent.com",
	"github.com",
	"raw.githubusercontent.com",
}

// ImageProxyHandler fetches remote card assets (avatars, skill icons)
// on behalf of the browser so they render without CORS trouble.
type ImageProxyHandler struct {
	allowedHosts []string
	httpClient   *http.Client
	cache        *proxyCache
}

// NewImageProxyHandler creates a new ImageProxyHandler. extraHosts
// extends the built-in allow-list.
func NewImageProxyHandler(extraHosts []string) *ImageProxyHandler {
	hosts := make([]string, 0, len(defaultImageHosts)+len(extraHosts))
	hosts = append(hosts, defaultImageHosts...)
	hosts = append(hosts, extraHosts...)
	return &ImageProxyHandler{
		allowedHosts: hosts,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		cache:        newProxyCache(imageProxyCacheTTL, imageProxyMaxEntries),
	}
}

// Proxy handles GET /proxy/image?url=https://... Only hosts on the
// allow-list are fetched; oversized images are rejected rather than
// streamed through.
func (h *ImageProxyHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		response.BadRequest(w, errors.New("url parameter is required"))
		return
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		response.BadRequest(w, errors.New("url must be an absolute http or https URL"))
		return
	}
	if !h.hostAllowed(parsed.Hostname()) {
		response.Forbidden(w, fmt.Errorf("host not allowed: %s", parsed.Hostname()))
		return
	}

	if cached, ok := h.cache.get(rawURL); ok {
		writeProxied(w, cached, imageProxyCacheTTL)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to build upstream request: %w", err))
		return
	}
	req.Header.Set("User-Agent", "DevCard-Companion/1.0")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		response.BadGateway(w, fmt.Errorf("image request failed: %w", err))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		response.BadGateway(w, fmt.Errorf("upstream returned status %d", resp.StatusCode))
		return
	}
	if resp.ContentLength > imageProxyMaxBytes {
		response.PayloadTooLarge(w, fmt.Errorf("image exceeds %d byte limit", imageProxyMaxBytes))
		return
	}

	// Read one byte past the cap to detect oversized bodies that did
	// not declare a Content-Length.
	body, err := io.ReadAll(io.LimitReader(resp.Body, imageProxyMaxBytes+1))
	if err != nil {
		response.BadGateway(w, fmt.Errorf("failed to read image: %w", err))
		return
	}
	if len(body) > imageProxyMaxBytes {
		response.PayloadTooLarge(w, fmt.Errorf("image exceeds %d byte limit", imageProxyMaxBytes))
		return
	}

	entry := cachedResponse{
		status:      http.StatusOK,
		contentType: resp.Header.Get("Content-Type"),
		body:        body,
	}
	h.cache.put(rawURL, entry)
	writeProxied(w, entry, imageProxyCacheTTL)
}

// hostAllowed reports whether host is on the allow-list or a subdomain
// of an allowed host.
func (h *ImageProxyHandler) hostAllowed(host string) bool {
	host = strings.ToLower(host)
	for _, allowed := range h.allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}
