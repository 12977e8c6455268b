// Package benchmarks measures the hot paths of the collection layer:
// whole-collection JSON round trips (the persistence unit) and rarity
// scoring.
//
// To run:
//
//	go test -bench=. -benchmem ./benchmarks/...
package benchmarks

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/devcardhq/devcard-companion/internal/rarity"
	"github.com/devcardhq/devcard-companion/internal/stats"
	"github.com/devcardhq/devcard-companion/internal/storage/models"
)

// makeCollection builds a synthetic project collection of the given size.
func makeCollection(n int) []models.DevCardProject {
	now := time.Now()
	projects := make([]models.DevCardProject, 0, n)
	for i := 0; i < n; i++ {
		config := models.DefaultCardConfig()
		config.Name = fmt.Sprintf("dev-%d", i)
		config.SelectedBadges = []string{"early-adopter", "open-source"}
		config.Github = &models.GitHubData{
			Username:           config.Name,
			RepoCount:          40 + i%60,
			Stars:              i * 3,
			ContributionStreak: i % 365,
			TopLanguages:       []string{"Go", "TypeScript", "Python"},
			LastSynced:         now,
		}
		projects = append(projects, models.DevCardProject{
			ID:         fmt.Sprintf("dc_%08d", i),
			Name:       fmt.Sprintf("Card %d", i),
			Config:     config,
			Rarity:     rarity.Score(config),
			CreatedAt:  now,
			LastEdited: now,
		})
	}
	return projects
}

// BenchmarkCollectionMarshal measures serializing the whole collection,
// which happens on every write.
func BenchmarkCollectionMarshal(b *testing.B) {
	for _, size := range []int{1, 10, 100, 1000} {
		b.Run(fmt.Sprintf("projects-%d", size), func(b *testing.B) {
			collection := makeCollection(size)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := json.Marshal(collection); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkCollectionUnmarshal measures deserializing the whole
// collection, which happens on every read.
func BenchmarkCollectionUnmarshal(b *testing.B) {
	for _, size := range []int{1, 10, 100, 1000} {
		b.Run(fmt.Sprintf("projects-%d", size), func(b *testing.B) {
			payload, err := json.Marshal(makeCollection(size))
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var out []models.DevCardProject
				if err := json.Unmarshal(payload, &out); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkRarityScore measures the scorer, which runs on every config
// update.
func BenchmarkRarityScore(b *testing.B) {
	config := makeCollection(1)[0].Config
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = rarity.Score(config)
	}
}

// BenchmarkContributionStreak measures streak derivation over a full
// page of events.
func BenchmarkContributionStreak(b *testing.B) {
	now := time.Now()
	events := make([]stats.Event, 0, 100)
	for i := 0; i < 100; i++ {
		events = append(events, stats.Event{
			Type:      stats.EventPush,
			CreatedAt: now.Add(-time.Duration(i) * 18 * time.Hour),
		})
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = stats.ContributionStreak(events)
	}
}
