package models

// CardConfigPatch is a partial update to a CardConfig. Each non-nil field
// fully replaces the corresponding config field; nested objects such as
// SkillStats must be supplied whole, they are never deep-merged.
type CardConfigPatch struct {
	Name    *string `json:"name,omitempty"`
	Title   *string `json:"title,omitempty"`
	Tagline *string `json:"tagline,omitempty"`
	Avatar  *string `json:"avatar,omitempty"`

	TechStack *[]string `json:"techStack,omitempty"`

	StatsMode  *StatsMode  `json:"statsMode,omitempty"`
	SkillStats *SkillStats `json:"skillStats,omitempty"`
	XPStats    *XPStats    `json:"xpStats,omitempty"`

	SelectedBadges *[]string `json:"selectedBadges,omitempty"`

	Github **GitHubData `json:"github,omitempty"`

	Theme        *Theme        `json:"theme,omitempty"`
	CardShape    *CardShape    `json:"cardShape,omitempty"`
	CustomColors *CustomColors `json:"customColors,omitempty"`
	FontStyle    *FontStyle    `json:"fontStyle,omitempty"`
}

// Apply overlays the patch onto config and returns the merged result.
// Field replacement is shallow and explicit: only the fields enumerated
// here are replaceable. Additions that would break a cap (more than
// MaxSelectedBadges badges, more than MaxTechStack tech entries) are
// rejected as a no-op for that field, leaving the previous value intact.
func (p CardConfigPatch) Apply(config CardConfig) CardConfig {
	merged := config.Clone()

	if p.Name != nil {
		merged.Name = *p.Name
	}
	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Tagline != nil {
		merged.Tagline = *p.Tagline
	}
	if p.Avatar != nil {
		merged.Avatar = *p.Avatar
	}
	if p.TechStack != nil {
		stack := NormalizeTechStack(*p.TechStack)
		if len(stack) <= MaxTechStack {
			merged.TechStack = stack
		}
	}
	if p.StatsMode != nil {
		merged.StatsMode = *p.StatsMode
	}
	if p.SkillStats != nil {
		merged.SkillStats = *p.SkillStats
	}
	if p.XPStats != nil {
		merged.XPStats = *p.XPStats
	}
	if p.SelectedBadges != nil {
		badges := dedupeBadges(*p.SelectedBadges)
		if len(badges) <= MaxSelectedBadges {
			merged.SelectedBadges = badges
		}
	}
	if p.Github != nil {
		if *p.Github == nil {
			merged.Github = nil
		} else {
			snapshot := (*p.Github).Clone()
			merged.Github = &snapshot
		}
	}
	if p.Theme != nil {
		merged.Theme = *p.Theme
	}
	if p.CardShape != nil {
		merged.CardShape = *p.CardShape
	}
	if p.CustomColors != nil {
		merged.CustomColors = *p.CustomColors
	}
	if p.FontStyle != nil {
		merged.FontStyle = *p.FontStyle
	}

	return merged
}

// dedupeBadges drops duplicate badge identifiers, preserving order.
func dedupeBadges(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	deduped := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	return deduped
}
