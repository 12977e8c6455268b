// Package models defines the persisted data model for dev card projects.
package models

import (
	"strings"
	"time"
)

// Rarity is the derived classification of a card configuration.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Theme selects the card color scheme.
type Theme string

const (
	ThemeHacker    Theme = "hacker"
	ThemeCyberpunk Theme = "cyberpunk"
	ThemeMinimal   Theme = "minimal"
	ThemeRetro     Theme = "retro"
)

// StatsMode selects which stat block the card displays.
type StatsMode string

const (
	StatsModeStars StatsMode = "stars"
	StatsModeXP    StatsMode = "xp"
)

// CardShape selects the card outline style.
type CardShape string

const (
	CardShapeRounded CardShape = "rounded"
	CardShapeSharp   CardShape = "sharp"
	CardShapeGlass   CardShape = "glass"
)

// FontStyle selects the card typeface.
type FontStyle string

const (
	FontStyleMono       FontStyle = "mono"
	FontStyleFuturistic FontStyle = "futuristic"
)

const (
	// MaxSelectedBadges is the cap on badges shown on a card.
	MaxSelectedBadges = 3

	// MaxTechStack is the cap on tech stack entries shown on a card.
	MaxTechStack = 12

	// MaxTopLanguages is the cap on languages kept in a GitHub snapshot.
	MaxTopLanguages = 3

	// MaxContributionStreak is the cap on the reported streak, in days.
	MaxContributionStreak = 365
)

// SkillStats holds the four 0-5 skill ratings shown in "stars" mode.
type SkillStats struct {
	ProblemSolving int `json:"problemSolving"`
	Backend        int `json:"backend"`
	Frontend       int `json:"frontend"`
	Debugging      int `json:"debugging"`
}

// XPStats holds the experience block shown in "xp" mode.
// Only Level contributes to rarity scoring; the remaining fields are
// collected for display.
type XPStats struct {
	Level           int `json:"level"`
	XP              int `json:"xp"`
	MaxXP           int `json:"maxXp"`
	YearsExperience int `json:"yearsExperience"`
}

// GitHubData is a snapshot of a remote GitHub profile at sync time.
// It is immutable once fetched and replaced wholesale on re-sync.
type GitHubData struct {
	Username           string    `json:"username"`
	Avatar             string    `json:"avatar"`
	RepoCount          int       `json:"repoCount"`
	Stars              int       `json:"stars"`
	TopLanguages       []string  `json:"topLanguages"`
	ContributionStreak int       `json:"contributionStreak"`
	LastSynced         time.Time `json:"lastSynced"`
}

// CustomColors optionally overrides theme colors. Not used by scoring.
type CustomColors struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Accent    string `json:"accent,omitempty"`
}

// CardConfig is the full set of user-editable fields describing a
// developer profile.
type CardConfig struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Tagline string `json:"tagline"`
	Avatar  string `json:"avatar"`

	TechStack []string `json:"techStack"`

	StatsMode  StatsMode  `json:"statsMode"`
	SkillStats SkillStats `json:"skillStats"`
	XPStats    XPStats    `json:"xpStats"`

	SelectedBadges []string `json:"selectedBadges"`

	Github *GitHubData `json:"github"`

	Theme        Theme        `json:"theme"`
	CardShape    CardShape    `json:"cardShape"`
	CustomColors CustomColors `json:"customColors"`
	FontStyle    FontStyle    `json:"fontStyle"`
}

// DevCardProject is the persisted unit: one card project in the collection.
// Rarity always equals the score of the current Config; every write path
// that changes Config recomputes Rarity in the same operation.
type DevCardProject struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastEdited time.Time  `json:"lastEdited"`
	Config     CardConfig `json:"config"`
	Rarity     Rarity     `json:"rarity"`
}

// Badge describes an earnable badge shown on a card.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// AvailableBadges is the fixed badge catalog.
var AvailableBadges = []Badge{
	{ID: "opensource", Name: "Open Source Contributor", Icon: "GitBranch", Description: "Active open source contributor"},
	{ID: "streak", Name: "100-Day Streak", Icon: "Flame", Description: "Maintained 100+ day coding streak"},
	{ID: "startup", Name: "Startup Builder", Icon: "Rocket", Description: "Built and launched a startup"},
	{ID: "hackathon", Name: "Hackathon Winner", Icon: "Trophy", Description: "Won a hackathon competition"},
	{ID: "algorithm", Name: "Algorithm Addict", Icon: "Brain", Description: "DSA enthusiast and problem solver"},
}

// AvailableTech is the fixed catalog of known tech stack identifiers.
var AvailableTech = []string{
	"js", "ts", "react", "nextjs", "vue", "angular", "svelte", "nodejs",
	"python", "django", "flask", "java", "spring", "kotlin", "go", "rust",
	"cpp", "cs", "dotnet", "php", "laravel", "ruby", "rails", "swift",
	"flutter", "dart", "mongodb", "postgres", "mysql", "redis", "graphql",
	"docker", "kubernetes", "aws", "gcp", "azure", "vercel", "netlify",
	"git", "github", "gitlab", "figma", "tailwind", "sass", "webpack",
	"vite", "prisma", "supabase", "firebase", "tensorflow", "pytorch",
}

// DefaultCardConfig returns the fixed default template for new projects.
func DefaultCardConfig() CardConfig {
	return CardConfig{
		Name:      "Developer",
		Title:     "Full Stack Developer",
		Tagline:   "Building the future, one commit at a time",
		Avatar:    "",
		TechStack: []string{"js", "ts", "react", "nodejs"},
		StatsMode: StatsModeStars,
		SkillStats: SkillStats{
			ProblemSolving: 4,
			Backend:        3,
			Frontend:       4,
			Debugging:      3,
		},
		XPStats: XPStats{
			Level:           15,
			XP:              7500,
			MaxXP:           10000,
			YearsExperience: 3,
		},
		SelectedBadges: []string{},
		Github:         nil,
		Theme:          ThemeHacker,
		CardShape:      CardShapeRounded,
		CustomColors:   CustomColors{},
		FontStyle:      FontStyleMono,
	}
}

// NormalizeTechStack lower-cases entries and drops duplicates while
// preserving first-seen order.
func NormalizeTechStack(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	normalized := make([]string, 0, len(entries))
	for _, entry := range entries {
		lower := strings.ToLower(strings.TrimSpace(entry))
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		normalized = append(normalized, lower)
	}
	return normalized
}

// copyStrings copies a string slice, preserving nil-ness.
func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Clone returns a deep copy of the snapshot.
func (g GitHubData) Clone() GitHubData {
	clone := g
	clone.TopLanguages = copyStrings(g.TopLanguages)
	return clone
}

// Clone returns a deep copy of the config. Slices and the GitHub snapshot
// are copied so mutations on the clone never alias the original.
func (c CardConfig) Clone() CardConfig {
	clone := c
	clone.TechStack = copyStrings(c.TechStack)
	clone.SelectedBadges = copyStrings(c.SelectedBadges)
	if c.Github != nil {
		github := c.Github.Clone()
		clone.Github = &github
	}
	return clone
}

// Clone returns a deep copy of the project.
func (p DevCardProject) Clone() DevCardProject {
	clone := p
	clone.Config = p.Config.Clone()
	return clone
}
