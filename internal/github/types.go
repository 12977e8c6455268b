package github

import "time"

// userResponse is the GitHub REST user profile payload.
type userResponse struct {
	Login       string `json:"login"`
	AvatarURL   string `json:"avatar_url"`
	PublicRepos int    `json:"public_repos"`
}

// repoResponse is a single repository in the GitHub REST repos payload.
type repoResponse struct {
	StargazersCount int    `json:"stargazers_count"`
	Language        string `json:"language"`
}

// eventResponse is a single public activity event.
type eventResponse struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
