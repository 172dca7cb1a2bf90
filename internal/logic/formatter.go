package logic

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fanarena/analyst-api/internal/models"
)

const (
	maxInjuriesPerSide = 5
	maxSquadPerSide    = 5
	maxStandingRows    = 5
	maxH2HRows         = 5
)

// section drop order when the blob exceeds the character budget. Lower
// numbers go first; live state and events are never dropped or truncated.
const (
	dropNever = iota
	dropLast
	dropStats
	dropSquad
)

type section struct {
	text string
	drop int
}

// FormatContext turns a fetched bundle into a bounded, prioritized prompt
// blob. Sections are independently omittable: data that was not fetched
// never produces a section. Deterministic for a given bundle.
func FormatContext(match models.MatchContext, bundle *models.TargetedDataBundle, charBudget int) string {
	if charBudget <= 0 {
		charBudget = 4000
	}
	if bundle == nil {
		return ""
	}

	sections := []section{
		{formatLive(match, bundle.Live), dropNever},
		{formatEvents(bundle.Events), dropNever},
		{formatLineups(bundle.Lineups), dropLast},
		{formatInjuries(match, bundle.Injuries), dropLast},
		{formatSquads(match, bundle.HomeSquad, bundle.AwaySquad), dropSquad},
		{formatStats(bundle.HomeStats, bundle.AwayStats), dropStats},
		{formatForm(bundle.HomeForm), dropLast},
		{formatForm(bundle.AwayForm), dropLast},
		{formatStandings(match, bundle.Standings), dropLast},
		{formatHeadToHead(bundle.HeadToHead), dropLast},
	}

	assemble := func(minDrop int) string {
		var sb strings.Builder
		for _, s := range sections {
			if s.text == "" || s.drop >= minDrop {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(s.text)
		}
		return sb.String()
	}

	// Drop lowest-priority sections first, then fall back to a hard cut that
	// can only ever shorten droppable text, never live state or events.
	for _, minDrop := range []int{dropSquad + 1, dropSquad, dropStats} {
		if out := assemble(minDrop); len(out) <= charBudget {
			return out
		}
	}

	out := assemble(dropStats)
	if len(out) <= charBudget {
		return out
	}
	protected := assemble(dropLast)
	if len(protected) >= charBudget {
		return protected
	}
	// The cut may land inside a multi-byte rune in a player or team name;
	// back up to the nearest boundary.
	cut := charBudget
	for cut > 0 && !utf8.RuneStart(out[cut]) {
		cut--
	}
	return out[:cut]
}

func formatLive(match models.MatchContext, live *models.FixtureState) string {
	if live == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("LIVE STATE:\n")
	fmt.Fprintf(&sb, "%s %d-%d %s", match.HomeTeam, live.HomeGoals, live.AwayGoals, match.AwayTeam)
	if live.Elapsed > 0 {
		fmt.Fprintf(&sb, " (%d')", live.Elapsed)
	}
	if live.StatusText != "" {
		fmt.Fprintf(&sb, " - %s", live.StatusText)
	}
	return sb.String()
}

func formatEvents(events []models.MatchEvent) string {
	var lines []string
	for _, ev := range events {
		// Substitutions are noise for analysis; goals and cards only.
		switch ev.Type {
		case "Goal":
			line := fmt.Sprintf("%d' GOAL %s - %s", ev.Minute, ev.TeamName, ev.PlayerName)
			if ev.AssistName != "" {
				line += fmt.Sprintf(" (assist %s)", ev.AssistName)
			}
			lines = append(lines, line)
		case "Card":
			lines = append(lines, fmt.Sprintf("%d' %s %s - %s", ev.Minute, ev.Detail, ev.TeamName, ev.PlayerName))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "MATCH EVENTS:\n" + strings.Join(lines, "\n")
}

func formatLineups(lineups []models.LineupRecord) string {
	if len(lineups) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("LINEUPS:")
	for _, lu := range lineups {
		fmt.Fprintf(&sb, "\n%s (%s): %s", lu.TeamName, lu.Formation, strings.Join(lu.StartingXI, ", "))
	}
	return sb.String()
}

func formatInjuries(match models.MatchContext, injuries []models.InjuryRecord) string {
	if len(injuries) == 0 {
		return ""
	}
	perTeam := map[string][]string{}
	for _, inj := range injuries {
		if len(perTeam[inj.TeamName]) >= maxInjuriesPerSide {
			continue
		}
		entry := inj.PlayerName
		if inj.Reason != "" {
			entry += " (" + inj.Reason + ")"
		}
		perTeam[inj.TeamName] = append(perTeam[inj.TeamName], entry)
	}

	var sb strings.Builder
	sb.WriteString("INJURIES/ABSENCES:")
	for _, team := range []string{match.HomeTeam, match.AwayTeam} {
		if names, ok := perTeam[team]; ok {
			fmt.Fprintf(&sb, "\n%s: %s", team, strings.Join(names, ", "))
		}
	}
	// Provider team names do not always match the room's names exactly.
	for team, names := range perTeam {
		if team != match.HomeTeam && team != match.AwayTeam {
			fmt.Fprintf(&sb, "\n%s: %s", team, strings.Join(names, ", "))
		}
	}
	return sb.String()
}

func formatSquads(match models.MatchContext, home, away []models.SquadPlayer) string {
	if len(home) == 0 && len(away) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("KEY PLAYERS:")
	writeSide := func(team string, squad []models.SquadPlayer) {
		if len(squad) == 0 {
			return
		}
		names := make([]string, 0, maxSquadPerSide)
		for _, p := range keyPlayers(squad, maxSquadPerSide) {
			names = append(names, fmt.Sprintf("%s (%s)", p.Name, p.Position))
		}
		fmt.Fprintf(&sb, "\n%s: %s", team, strings.Join(names, ", "))
	}
	writeSide(match.HomeTeam, home)
	writeSide(match.AwayTeam, away)
	return sb.String()
}

// keyPlayers prefers attacking positions, keeping provider order within a
// position group.
func keyPlayers(squad []models.SquadPlayer, limit int) []models.SquadPlayer {
	var out []models.SquadPlayer
	for _, pos := range []string{"Attacker", "Midfielder", "Defender", "Goalkeeper"} {
		for _, p := range squad {
			if p.Position == pos && len(out) < limit {
				out = append(out, p)
			}
		}
	}
	for _, p := range squad {
		if len(out) >= limit {
			break
		}
		if !containsPlayer(out, p.Name) {
			out = append(out, p)
		}
	}
	return out
}

func containsPlayer(list []models.SquadPlayer, name string) bool {
	for _, p := range list {
		if p.Name == name {
			return true
		}
	}
	return false
}

func formatStats(home, away *models.TeamSeasonStats) string {
	if home == nil && away == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("SEASON STATS:")
	for _, stats := range []*models.TeamSeasonStats{home, away} {
		if stats == nil {
			continue
		}
		fmt.Fprintf(&sb, "\n%s: P%d W%d D%d L%d, %.2f goals/game, win rate %.2f%%, %d clean sheets",
			stats.TeamName, stats.Played, stats.Wins, stats.Draws, stats.Losses,
			stats.AvgGoalsScored, stats.WinRate, stats.CleanSheets)
	}
	return sb.String()
}

func formatForm(form *models.TeamForm) string {
	if form == nil || len(form.Results) == 0 {
		return ""
	}
	letters := make([]string, 0, len(form.Results))
	for _, r := range form.Results {
		letters = append(letters, r.Outcome)
	}
	out := fmt.Sprintf("FORM %s: %s (score %.2f/100)", form.TeamName, strings.Join(letters, ""), form.FormScore)
	if form.WinStreak >= 2 {
		out += fmt.Sprintf(", %d-game win streak", form.WinStreak)
	} else if form.UnbeatenStreak >= 3 {
		out += fmt.Sprintf(", unbeaten in %d", form.UnbeatenStreak)
	}
	return out
}

func formatStandings(match models.MatchContext, standings []models.Standing) string {
	if len(standings) == 0 {
		return ""
	}
	var lines []string
	included := map[int]bool{}
	for _, row := range standings {
		if row.Rank > maxStandingRows {
			break
		}
		lines = append(lines, standingLine(row))
		included[row.TeamID] = true
	}
	// Both teams always appear, even from mid-table.
	for _, row := range standings {
		if included[row.TeamID] {
			continue
		}
		if row.TeamName == match.HomeTeam || row.TeamName == match.AwayTeam ||
			row.TeamID == match.HomeTeamID || row.TeamID == match.AwayTeamID {
			lines = append(lines, standingLine(row))
		}
	}
	return "STANDINGS:\n" + strings.Join(lines, "\n")
}

func standingLine(row models.Standing) string {
	return fmt.Sprintf("%d. %s - %d pts (P%d W%d D%d L%d, GD %+d)",
		row.Rank, row.TeamName, row.Points, row.Played, row.Won, row.Drawn, row.Lost,
		row.GoalsFor-row.GoalsAgainst)
}

func formatHeadToHead(h2h []models.HeadToHeadMatch) string {
	if len(h2h) == 0 {
		return ""
	}
	var lines []string
	for i, m := range h2h {
		if i >= maxH2HRows {
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %s %d-%d %s", m.Date, m.HomeTeam, m.HomeGoals, m.AwayGoals, m.AwayTeam))
	}
	return "HEAD TO HEAD (most recent):\n" + strings.Join(lines, "\n")
}
