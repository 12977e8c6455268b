package handlers

import (
	"fmt"
	"net/http"

	"github.com/devcardhq/devcard-companion/internal/api/response"
	"github.com/devcardhq/devcard-companion/internal/app"
)

// StatsHandler handles collection-wide statistics requests.
type StatsHandler struct {
	facade *app.StatsFacade
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(facade *app.StatsFacade) *StatsHandler {
	return &StatsHandler{facade: facade}
}

// GetRarityDistribution returns project counts per rarity tier.
func (h *StatsHandler) GetRarityDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.facade.RarityDistribution(r.Context())
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to get rarity distribution: %w", err))
		return
	}
	response.Success(w, dist)
}

// GetLanguageDistribution returns tech stack usage across all projects.
func (h *StatsHandler) GetLanguageDistribution(w http.ResponseWriter, r *http.Request) {
	langs, err := h.facade.LanguageDistribution(r.Context())
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to get language distribution: %w", err))
		return
	}
	response.Success(w, langs)
}
