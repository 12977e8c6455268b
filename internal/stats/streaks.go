package stats

import "time"

// Event types that count as a contribution.
const (
	EventPush        = "PushEvent"
	EventCreate      = "CreateEvent"
	EventPullRequest = "PullRequestEvent"
)

// maxStreakDays caps the reported streak length.
const maxStreakDays = 365

// Event is a single public activity event from a GitHub timeline,
// delivered newest-first.
type Event struct {
	Type      string
	CreatedAt time.Time
}

// ContributionStreak calculates the longest run of consecutive calendar
// days with at least one contribution event. Events are expected in their
// delivered (newest-first) order; each event timestamp is truncated to a
// calendar day in its own timezone. Returns 0 when no contribution events
// are present, and never more than 365.
func ContributionStreak(events []Event) int {
	days := contributionDays(events)
	if len(days) == 0 {
		return 0
	}

	streak := 1
	maxStreak := 1

	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			streak++
			if streak > maxStreak {
				maxStreak = streak
			}
		} else {
			streak = 1
		}
	}

	return min(maxStreak, maxStreakDays)
}

// contributionDays collapses contribution events to distinct calendar days,
// preserving the delivered order.
func contributionDays(events []Event) []time.Time {
	seen := make(map[time.Time]bool, len(events))
	days := make([]time.Time, 0, len(events))

	for _, event := range events {
		if !isContribution(event.Type) {
			continue
		}
		day := truncateToDay(event.CreatedAt)
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}

	return days
}

// isContribution reports whether the event type indicates a contribution.
func isContribution(eventType string) bool {
	switch eventType {
	case EventPush, EventCreate, EventPullRequest:
		return true
	}
	return false
}

// truncateToDay drops the time-of-day component, keeping the calendar date
// as it reads in the timestamp's own timezone.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
