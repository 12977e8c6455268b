// Package rarity derives the rarity tier of a card configuration.
package rarity

import (
	"github.com/devcardhq/devcard-companion/internal/storage/models"
)

// Tier thresholds, evaluated highest-first.
const (
	legendaryThreshold = 55
	epicThreshold      = 40
	rareThreshold      = 25
)

// Score computes the rarity tier for a card configuration. The function is
// pure: identical configs always yield identical tiers, and adding skills,
// GitHub activity, badges, or tech entries never lowers the tier.
func Score(config models.CardConfig) models.Rarity {
	score := statScore(config)

	if config.Github != nil {
		score += min(float64(config.Github.RepoCount)/10, 10)
		score += min(float64(config.Github.Stars)/50, 10)
		score += min(float64(config.Github.ContributionStreak)/30, 10)
	}

	score += float64(len(config.SelectedBadges)) * 5

	score += min(float64(len(config.TechStack))*1.5, 10)

	switch {
	case score >= legendaryThreshold:
		return models.RarityLegendary
	case score >= epicThreshold:
		return models.RarityEpic
	case score >= rareThreshold:
		return models.RarityRare
	default:
		return models.RarityCommon
	}
}

// statScore contributes up to 20 points from whichever stat block the
// card displays.
func statScore(config models.CardConfig) float64 {
	if config.StatsMode == models.StatsModeXP {
		return min(float64(config.XPStats.Level)/5, 4) * 5
	}

	skills := config.SkillStats
	sum := skills.ProblemSolving + skills.Backend + skills.Frontend + skills.Debugging
	avg := float64(sum) / 4
	return avg * 4
}
