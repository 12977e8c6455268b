package stats

import (
	"testing"
	"time"
)

func day(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestContributionStreak(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   int
	}{
		{
			name:   "No events",
			events: []Event{},
			want:   0,
		},
		{
			name: "Only non-contribution events",
			events: []Event{
				{Type: "WatchEvent", CreatedAt: day("2024-01-05T10:00:00Z")},
				{Type: "ForkEvent", CreatedAt: day("2024-01-04T10:00:00Z")},
			},
			want: 0,
		},
		{
			name: "Single push event",
			events: []Event{
				{Type: EventPush, CreatedAt: day("2024-01-05T10:00:00Z")},
			},
			want: 1,
		},
		{
			name: "Three consecutive days plus isolated day",
			events: []Event{
				{Type: EventPush, CreatedAt: day("2024-01-05T10:00:00Z")},
				{Type: EventPush, CreatedAt: day("2024-01-04T09:00:00Z")},
				{Type: EventPush, CreatedAt: day("2024-01-03T22:00:00Z")},
				{Type: EventPush, CreatedAt: day("2024-01-01T12:00:00Z")},
			},
			want: 3,
		},
		{
			name: "Multiple events on the same day collapse",
			events: []Event{
				{Type: EventPush, CreatedAt: day("2024-01-05T10:00:00Z")},
				{Type: EventCreate, CreatedAt: day("2024-01-05T08:00:00Z")},
				{Type: EventPullRequest, CreatedAt: day("2024-01-04T10:00:00Z")},
			},
			want: 2,
		},
		{
			name: "Non-contribution events do not extend a run",
			events: []Event{
				{Type: EventPush, CreatedAt: day("2024-01-05T10:00:00Z")},
				{Type: "WatchEvent", CreatedAt: day("2024-01-04T10:00:00Z")},
				{Type: EventPush, CreatedAt: day("2024-01-03T10:00:00Z")},
			},
			want: 1,
		},
		{
			name: "Longest run wins over the most recent run",
			events: []Event{
				{Type: EventPush, CreatedAt: day("2024-02-10T10:00:00Z")},
				{Type: EventPush, CreatedAt: day("2024-02-09T10:00:00Z")},
				{Type: EventPush, CreatedAt: day("2024-01-05T10:00:00Z")},
				{Type: EventPush, CreatedAt: day("2024-01-04T10:00:00Z")},
				{Type: EventPush, CreatedAt: day("2024-01-03T10:00:00Z")},
				{Type: EventPush, CreatedAt: day("2024-01-02T10:00:00Z")},
			},
			want: 4,
		},
		{
			name: "Create and pull request events count",
			events: []Event{
				{Type: EventCreate, CreatedAt: day("2024-01-03T10:00:00Z")},
				{Type: EventPullRequest, CreatedAt: day("2024-01-02T10:00:00Z")},
				{Type: EventPush, CreatedAt: day("2024-01-01T10:00:00Z")},
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContributionStreak(tt.events); got != tt.want {
				t.Errorf("ContributionStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestContributionStreak_CappedAt365(t *testing.T) {
	start := day("2024-12-31T12:00:00Z")
	events := make([]Event, 0, 400)
	for i := 0; i < 400; i++ {
		events = append(events, Event{Type: EventPush, CreatedAt: start.AddDate(0, 0, -i)})
	}

	if got := ContributionStreak(events); got != 365 {
		t.Errorf("ContributionStreak() = %d, want capped 365", got)
	}
}

func TestContributionStreak_DayTruncationUsesOwnTimezone(t *testing.T) {
	// 23:30-05:00 and 01:30+02:00 the next day read as consecutive
	// calendar dates in their own timezones.
	est := time.FixedZone("EST", -5*3600)
	eet := time.FixedZone("EET", 2*3600)
	events := []Event{
		{Type: EventPush, CreatedAt: time.Date(2024, 3, 11, 1, 30, 0, 0, eet)},
		{Type: EventPush, CreatedAt: time.Date(2024, 3, 10, 23, 30, 0, 0, est)},
	}

	if got := ContributionStreak(events); got != 2 {
		t.Errorf("ContributionStreak() = %d, want 2", got)
	}
}
