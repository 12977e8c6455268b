package rarity

import (
	"testing"
	"time"

	"github.com/devcardhq/devcard-companion/internal/storage/models"
)

func baseConfig() models.CardConfig {
	config := models.DefaultCardConfig()
	config.TechStack = nil
	config.SelectedBadges = nil
	config.Github = nil
	config.SkillStats = models.SkillStats{}
	return config
}

func TestScore_Tiers(t *testing.T) {
	tests := []struct {
		name   string
		config func() models.CardConfig
		want   models.Rarity
	}{
		{
			name:   "Empty config is common",
			config: baseConfig,
			want:   models.RarityCommon,
		},
		{
			name: "Max skills with four tech entries is rare",
			config: func() models.CardConfig {
				config := baseConfig()
				config.StatsMode = models.StatsModeStars
				config.SkillStats = models.SkillStats{ProblemSolving: 5, Backend: 5, Frontend: 5, Debugging: 5}
				config.TechStack = []string{"go", "rust", "ts", "python"}
				// 20 + 0 + 0 + 6 = 26
				return config
			},
			want: models.RarityRare,
		},
		{
			name: "Max skills plus full badges is epic",
			config: func() models.CardConfig {
				config := baseConfig()
				config.SkillStats = models.SkillStats{ProblemSolving: 5, Backend: 5, Frontend: 5, Debugging: 5}
				config.SelectedBadges = []string{"opensource", "streak", "startup"}
				config.TechStack = []string{"go", "rust", "ts", "python"}
				// 20 + 15 + 6 = 41
				return config
			},
			want: models.RarityEpic,
		},
		{
			name: "Everything maxed is legendary",
			config: func() models.CardConfig {
				config := baseConfig()
				config.SkillStats = models.SkillStats{ProblemSolving: 5, Backend: 5, Frontend: 5, Debugging: 5}
				config.SelectedBadges = []string{"opensource", "streak", "startup"}
				config.TechStack = []string{"go", "rust", "ts", "python", "js", "react", "vue"}
				config.Github = &models.GitHubData{RepoCount: 100, Stars: 500, ContributionStreak: 300}
				return config
			},
			want: models.RarityLegendary,
		},
		{
			name: "XP mode scores only the level",
			config: func() models.CardConfig {
				config := baseConfig()
				config.StatsMode = models.StatsModeXP
				config.XPStats = models.XPStats{Level: 100, XP: 0, MaxXP: 1000, YearsExperience: 0}
				// min(100/5, 4) * 5 = 20
				config.TechStack = []string{"go", "rust", "ts", "python"}
				// 20 + 6 = 26
				return config
			},
			want: models.RarityRare,
		},
		{
			name: "XP and maxXp never contribute",
			config: func() models.CardConfig {
				config := baseConfig()
				config.StatsMode = models.StatsModeXP
				config.XPStats = models.XPStats{Level: 1, XP: 999999, MaxXP: 999999, YearsExperience: 30}
				return config
			},
			want: models.RarityCommon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.config()); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_GitHubContributionCaps(t *testing.T) {
	config := baseConfig()
	config.Github = &models.GitHubData{
		RepoCount:          40,
		Stars:              200,
		ContributionStreak: 30,
		Username:           "ada",
		LastSynced:         time.Now(),
	}
	// GitHub: 4 + 4 + 1 = 9, everything else zero -> common
	if got := Score(config); got != models.RarityCommon {
		t.Errorf("Score() = %v, want common", got)
	}

	config.Github.RepoCount = 1000
	config.Github.Stars = 100000
	config.Github.ContributionStreak = 365
	// Capped at 10 + 10 + 10 = 30 -> rare
	if got := Score(config); got != models.RarityRare {
		t.Errorf("Score() = %v, want rare with capped github contribution", got)
	}
}

func TestScore_Deterministic(t *testing.T) {
	config := models.DefaultCardConfig()
	config.Github = &models.GitHubData{RepoCount: 12, Stars: 120, ContributionStreak: 14}

	first := Score(config)
	for i := 0; i < 100; i++ {
		if got := Score(config); got != first {
			t.Fatalf("Score() not deterministic: got %v then %v", first, got)
		}
	}
}

// tierRank orders tiers for monotonicity checks.
func tierRank(r models.Rarity) int {
	switch r {
	case models.RarityCommon:
		return 0
	case models.RarityRare:
		return 1
	case models.RarityEpic:
		return 2
	case models.RarityLegendary:
		return 3
	}
	return -1
}

func TestScore_MonotonicInEachFactor(t *testing.T) {
	config := baseConfig()
	config.SkillStats = models.SkillStats{ProblemSolving: 3, Backend: 3, Frontend: 3, Debugging: 3}
	config.TechStack = []string{"go", "rust"}

	// Adding badges never lowers the tier, all else equal
	prev := Score(config)
	badges := []string{"opensource", "streak", "startup"}
	for i := range badges {
		config.SelectedBadges = badges[:i+1]
		got := Score(config)
		if tierRank(got) < tierRank(prev) {
			t.Errorf("Adding badge lowered tier from %v to %v", prev, got)
		}
		prev = got
	}

	// Growing the tech stack never lowers the tier
	config = baseConfig()
	config.SkillStats = models.SkillStats{ProblemSolving: 4, Backend: 4, Frontend: 4, Debugging: 4}
	prev = Score(config)
	for i := 1; i <= models.MaxTechStack; i++ {
		config.TechStack = models.AvailableTech[:i]
		got := Score(config)
		if tierRank(got) < tierRank(prev) {
			t.Errorf("Adding tech entry lowered tier from %v to %v", prev, got)
		}
		prev = got
	}

	// Growing GitHub activity never lowers the tier
	config = baseConfig()
	config.Github = &models.GitHubData{}
	prev = Score(config)
	for stars := 0; stars <= 1000; stars += 100 {
		config.Github.Stars = stars
		got := Score(config)
		if tierRank(got) < tierRank(prev) {
			t.Errorf("Adding stars lowered tier from %v to %v", prev, got)
		}
		prev = got
	}
}
