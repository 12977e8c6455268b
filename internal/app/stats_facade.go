package app

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/devcardhq/devcard-companion/internal/charts"
	"github.com/devcardhq/devcard-companion/internal/storage/models"
)

// StatsFacade provides aggregate views across the whole project
// collection: rarity distribution, language popularity, and rendered
// dashboard files.
type StatsFacade struct {
	services *Services
}

// NewStatsFacade creates a new StatsFacade with the given services.
func NewStatsFacade(services *Services) *StatsFacade {
	return &StatsFacade{services: services}
}

// RarityDistribution returns the number of projects at each rarity tier.
func (f *StatsFacade) RarityDistribution(ctx context.Context) (map[models.Rarity]int, error) {
	projects, err := f.services.Projects.List(ctx)
	if err != nil {
		return nil, &AppError{Message: "Failed to load projects", Err: err}
	}

	dist := make(map[models.Rarity]int)
	for _, p := range projects {
		dist[p.Rarity]++
	}
	return dist, nil
}

// LanguageCount pairs a tech stack entry with how many projects use it.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// LanguageDistribution counts tech stack entries across all projects,
// most used first. Ties keep first-seen order across the collection.
func (f *StatsFacade) LanguageDistribution(ctx context.Context) ([]LanguageCount, error) {
	projects, err := f.services.Projects.List(ctx)
	if err != nil {
		return nil, &AppError{Message: "Failed to load projects", Err: err}
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range projects {
		for _, tech := range p.Config.TechStack {
			if counts[tech] == 0 {
				order = append(order, tech)
			}
			counts[tech]++
		}
	}

	ranked := make([]LanguageCount, 0, len(order))
	for _, tech := range order {
		ranked = append(ranked, LanguageCount{Language: tech, Count: counts[tech]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked, nil
}

// RenderDashboard writes rarity and language charts as HTML files into
// outputDir and returns the paths written.
func (f *StatsFacade) RenderDashboard(ctx context.Context, outputDir string) ([]string, error) {
	dist, err := f.RarityDistribution(ctx)
	if err != nil {
		return nil, err
	}
	langs, err := f.LanguageDistribution(ctx)
	if err != nil {
		return nil, err
	}

	var written []string

	rarityData := make([]charts.DataPoint, 0, len(dist))
	for _, tier := range []models.Rarity{models.RarityCommon, models.RarityRare, models.RarityEpic, models.RarityLegendary} {
		if n, ok := dist[tier]; ok {
			rarityData = append(rarityData, charts.DataPoint{Label: string(tier), Value: float64(n)})
		}
	}
	if len(rarityData) > 0 {
		cfg := charts.DefaultChartConfig()
		cfg.Title = "Projects by Rarity"
		path := filepath.Join(outputDir, "rarity_distribution.html")
		if err := charts.RenderPieChart(rarityData, cfg, path); err != nil {
			return written, &AppError{Message: "Failed to render rarity chart", Err: err}
		}
		written = append(written, path)
	}

	langData := make([]charts.DataPoint, 0, len(langs))
	for _, lc := range langs {
		langData = append(langData, charts.DataPoint{Label: lc.Language, Value: float64(lc.Count)})
	}
	if len(langData) > 0 {
		cfg := charts.DefaultChartConfig()
		cfg.Title = "Tech Stack Popularity"
		cfg.Subtitle = "Entries across all project cards"
		path := filepath.Join(outputDir, "tech_popularity.html")
		if err := charts.RenderBarChart(langData, cfg, path); err != nil {
			return written, &AppError{Message: "Failed to render tech chart", Err: err}
		}
		written = append(written, path)
	}

	return written, nil
}
