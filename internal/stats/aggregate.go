// Package stats aggregates raw GitHub activity records into the summary
// statistics shown on a dev card.
package stats

import (
	"time"

	"github.com/devcardhq/devcard-companion/internal/storage/models"
)

// User is a raw GitHub user profile record.
type User struct {
	Login       string
	AvatarURL   string
	PublicRepos int
}

// Repo is a raw GitHub repository record. Language is empty when GitHub
// reports no primary language.
type Repo struct {
	Stars    int
	Language string
}

// TotalStars sums star counts across all repositories.
func TotalStars(repos []Repo) int {
	total := 0
	for _, repo := range repos {
		total += repo.Stars
	}
	return total
}

// TopLanguages returns the up-to-3 languages with the highest repository
// count, descending by count. Ties keep first-seen order in the input
// sequence; repositories without a language are excluded.
func TopLanguages(repos []Repo) []string {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		if _, ok := counts[repo.Language]; !ok {
			order = append(order, repo.Language)
		}
		counts[repo.Language]++
	}

	// Stable insertion sort keeps first-seen order on equal counts.
	ranked := make([]string, len(order))
	copy(ranked, order)
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && counts[ranked[j]] > counts[ranked[j-1]]; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if len(ranked) > models.MaxTopLanguages {
		ranked = ranked[:models.MaxTopLanguages]
	}
	return ranked
}

// Aggregate builds a GitHubData snapshot from raw profile, repository and
// activity records. LastSynced is the time of computation.
func Aggregate(user User, repos []Repo, events []Event) models.GitHubData {
	return models.GitHubData{
		Username:           user.Login,
		Avatar:             user.AvatarURL,
		RepoCount:          user.PublicRepos,
		Stars:              TotalStars(repos),
		TopLanguages:       TopLanguages(repos),
		ContributionStreak: ContributionStreak(events),
		LastSynced:         time.Now(),
	}
}
