package models

// TargetedDataBundle aggregates whatever the orchestrator managed to fetch for
// one question. Every field is optional: nil means the category was not
// requested or its fetch failed, which is distinct from an empty real value.
type TargetedDataBundle struct {
	HomeForm   *TeamForm         `json:"home_form,omitempty"`
	AwayForm   *TeamForm         `json:"away_form,omitempty"`
	HeadToHead []HeadToHeadMatch `json:"head_to_head,omitempty"`
	Standings  []Standing        `json:"standings,omitempty"`
	HomeStats  *TeamSeasonStats  `json:"home_stats,omitempty"`
	AwayStats  *TeamSeasonStats  `json:"away_stats,omitempty"`
	Injuries   []InjuryRecord    `json:"injuries,omitempty"`
	Lineups    []LineupRecord    `json:"lineups,omitempty"`
	Events     []MatchEvent      `json:"events,omitempty"`
	Live       *FixtureState     `json:"live,omitempty"`
	HomeSquad  []SquadPlayer     `json:"home_squad,omitempty"`
	AwaySquad  []SquadPlayer     `json:"away_squad,omitempty"`
}

// Empty reports whether nothing at all was fetched.
func (b *TargetedDataBundle) Empty() bool {
	if b == nil {
		return true
	}
	return b.HomeForm == nil && b.AwayForm == nil &&
		len(b.HeadToHead) == 0 && len(b.Standings) == 0 &&
		b.HomeStats == nil && b.AwayStats == nil &&
		len(b.Injuries) == 0 && len(b.Lineups) == 0 &&
		len(b.Events) == 0 && b.Live == nil &&
		len(b.HomeSquad) == 0 && len(b.AwaySquad) == 0
}
