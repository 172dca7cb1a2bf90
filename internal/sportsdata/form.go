package sportsdata

import "github.com/fanarena/analyst-api/internal/models"

// deriveForm turns a most-recent-first fixture list into a TeamForm from the
// given team's perspective. Fixtures without a final score contribute nothing.
func deriveForm(teamID int, fixtures []fixtureItem) *models.TeamForm {
	form := &models.TeamForm{TeamID: teamID}

	points := 0
	goalsFor := 0
	streakBroken := false
	unbeatenBroken := false

	for _, item := range fixtures {
		home := item.Teams.Home.ID == teamID
		if home {
			form.TeamName = item.Teams.Home.Name
		} else {
			form.TeamName = item.Teams.Away.Name
		}

		res := models.FormResult{Home: home}
		if home {
			res.GoalsFor = item.Goals.Home
			res.GoalsAgainst = item.Goals.Away
			res.Opponent = item.Teams.Away.Name
		} else {
			res.GoalsFor = item.Goals.Away
			res.GoalsAgainst = item.Goals.Home
			res.Opponent = item.Teams.Home.Name
		}

		switch {
		case res.GoalsFor > res.GoalsAgainst:
			res.Outcome = "W"
			points += 3
		case res.GoalsFor == res.GoalsAgainst:
			res.Outcome = "D"
			points++
		default:
			res.Outcome = "L"
		}

		// Streaks count consecutive results from the most recent match.
		if res.Outcome == "W" && !streakBroken {
			form.WinStreak++
		} else {
			streakBroken = true
		}
		if res.Outcome != "L" && !unbeatenBroken {
			form.UnbeatenStreak++
		} else {
			unbeatenBroken = true
		}

		goalsFor += res.GoalsFor
		if res.GoalsAgainst == 0 {
			form.CleanSheets++
		}
		form.Results = append(form.Results, res)
	}

	if n := len(form.Results); n > 0 {
		form.FormScore = round2(float64(points) / float64(3*n) * 100)
		form.GoalsPerGame = round2(float64(goalsFor) / float64(n))
	}
	return form
}
