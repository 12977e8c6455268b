package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func newMockGitHub(t *testing.T, user map[string]interface{}, repos []map[string]interface{}, events []map[string]interface{}) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/ada":
			_ = json.NewEncoder(w).Encode(user)
		case "/users/ada/repos":
			if r.URL.Query().Get("per_page") != "100" {
				t.Errorf("Expected per_page=100, got %s", r.URL.Query().Get("per_page"))
			}
			_ = json.NewEncoder(w).Encode(repos)
		case "/users/ada/events/public":
			_ = json.NewEncoder(w).Encode(events)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		}
	}))
}

func TestFetchUserData_Success(t *testing.T) {
	user := map[string]interface{}{
		"login":        "ada",
		"avatar_url":   "https://avatars.githubusercontent.com/u/1",
		"public_repos": 40,
	}
	repos := []map[string]interface{}{
		{"stargazers_count": 150, "language": "Python"},
		{"stargazers_count": 50, "language": "Python"},
		{"stargazers_count": 0, "language": nil},
	}
	events := []map[string]interface{}{
		{"type": "PushEvent", "created_at": "2024-01-05T10:00:00Z"},
		{"type": "PushEvent", "created_at": "2024-01-04T10:00:00Z"},
		{"type": "WatchEvent", "created_at": "2024-01-03T10:00:00Z"},
	}

	server := newMockGitHub(t, user, repos, events)
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})
	data, err := client.FetchUserData(context.Background(), "ada")
	if err != nil {
		t.Fatalf("Failed to fetch user data: %v", err)
	}

	if data.Username != "ada" {
		t.Errorf("Expected username 'ada', got '%s'", data.Username)
	}
	if data.RepoCount != 40 {
		t.Errorf("Expected repo count 40, got %d", data.RepoCount)
	}
	if data.Stars != 200 {
		t.Errorf("Expected 200 stars, got %d", data.Stars)
	}
	if !reflect.DeepEqual(data.TopLanguages, []string{"Python"}) {
		t.Errorf("Expected top languages [Python], got %v", data.TopLanguages)
	}
	if data.ContributionStreak != 2 {
		t.Errorf("Expected streak 2, got %d", data.ContributionStreak)
	}
	if data.LastSynced.IsZero() {
		t.Error("Expected lastSynced set")
	}
}

func TestFetchUserData_UserNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})
	data, err := client.FetchUserData(context.Background(), "ghost-user-does-not-exist")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got: %v", err)
	}
	if data != nil {
		t.Errorf("Expected no partial snapshot on failure, got %+v", data)
	}
}

func TestFetchUserData_TokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch {
		case r.URL.Path == "/users/ada":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"login": "ada"})
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "ghp_test"})
	if _, err := client.FetchUserData(context.Background(), "ada"); err != nil {
		t.Fatalf("Failed to fetch user data: %v", err)
	}
	if gotAuth != "Bearer ghp_test" {
		t.Errorf("Expected bearer token header, got '%s'", gotAuth)
	}
}

func TestFetchUserData_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/ada" {
			attempts++
			if attempts == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"login": "ada"})
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})
	if _, err := client.FetchUserData(context.Background(), "ada"); err != nil {
		t.Fatalf("Expected retry to recover, got: %v", err)
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts on the user endpoint, got %d", attempts)
	}
}
