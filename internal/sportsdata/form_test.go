package sportsdata

import (
	"testing"
)

// fixture builds a most-recent-first entry from team 42's perspective.
func fixture(homeID int, homeName string, awayID int, awayName string, homeGoals, awayGoals int) fixtureItem {
	var item fixtureItem
	item.Teams.Home.ID = homeID
	item.Teams.Home.Name = homeName
	item.Teams.Away.ID = awayID
	item.Teams.Away.Name = awayName
	item.Goals.Home = homeGoals
	item.Goals.Away = awayGoals
	return item
}

func TestDeriveForm(t *testing.T) {
	fixtures := []fixtureItem{
		fixture(42, "Arsenal", 49, "Chelsea", 2, 0), // W, clean sheet
		fixture(33, "United", 42, "Arsenal", 1, 3),  // W away
		fixture(42, "Arsenal", 47, "Spurs", 1, 1),   // D
		fixture(40, "Liverpool", 42, "Arsenal", 2, 0), // L away
		fixture(42, "Arsenal", 34, "Newcastle", 3, 1), // W
	}

	form := deriveForm(42, fixtures)

	if form.TeamName != "Arsenal" {
		t.Errorf("team name = %q", form.TeamName)
	}
	if len(form.Results) != 5 {
		t.Fatalf("got %d results, want 5", len(form.Results))
	}

	wantOutcomes := []string{"W", "W", "D", "L", "W"}
	for i, want := range wantOutcomes {
		if form.Results[i].Outcome != want {
			t.Errorf("result %d = %q, want %q", i, form.Results[i].Outcome, want)
		}
	}

	// 3+3+1+0+3 points of 15.
	if form.FormScore != 66.67 {
		t.Errorf("form score = %v, want 66.67", form.FormScore)
	}
	if form.WinStreak != 2 {
		t.Errorf("win streak = %d, want 2", form.WinStreak)
	}
	if form.UnbeatenStreak != 3 {
		t.Errorf("unbeaten streak = %d, want 3", form.UnbeatenStreak)
	}
	// 2+3+1+0+3 goals over 5 games.
	if form.GoalsPerGame != 1.8 {
		t.Errorf("goals per game = %v, want 1.8", form.GoalsPerGame)
	}
	if form.CleanSheets != 1 {
		t.Errorf("clean sheets = %d, want 1", form.CleanSheets)
	}

	if got := form.Results[1]; !(!got.Home && got.Opponent == "United" && got.GoalsFor == 3) {
		t.Errorf("away perspective wrong: %+v", got)
	}
}

func TestDeriveFormPerfectAndWinless(t *testing.T) {
	perfect := deriveForm(42, []fixtureItem{
		fixture(42, "Arsenal", 1, "A", 1, 0),
		fixture(42, "Arsenal", 2, "B", 2, 0),
	})
	if perfect.FormScore != 100 {
		t.Errorf("perfect form score = %v", perfect.FormScore)
	}
	if perfect.WinStreak != 2 || perfect.UnbeatenStreak != 2 {
		t.Errorf("streaks = %d/%d, want 2/2", perfect.WinStreak, perfect.UnbeatenStreak)
	}

	winless := deriveForm(42, []fixtureItem{
		fixture(42, "Arsenal", 1, "A", 0, 1),
		fixture(42, "Arsenal", 2, "B", 0, 3),
	})
	if winless.FormScore != 0 {
		t.Errorf("winless form score = %v", winless.FormScore)
	}
	if winless.WinStreak != 0 || winless.UnbeatenStreak != 0 {
		t.Errorf("streaks = %d/%d, want 0/0", winless.WinStreak, winless.UnbeatenStreak)
	}
}

func TestDeriveFormStreakBreaks(t *testing.T) {
	// Most recent is a draw: win streak 0, unbeaten streak runs until the loss.
	form := deriveForm(42, []fixtureItem{
		fixture(42, "Arsenal", 1, "A", 1, 1),
		fixture(42, "Arsenal", 2, "B", 2, 0),
		fixture(42, "Arsenal", 3, "C", 0, 1),
		fixture(42, "Arsenal", 4, "D", 2, 1),
	})
	if form.WinStreak != 0 {
		t.Errorf("win streak = %d, want 0", form.WinStreak)
	}
	if form.UnbeatenStreak != 2 {
		t.Errorf("unbeaten streak = %d, want 2", form.UnbeatenStreak)
	}
}

func TestDeriveFormEmpty(t *testing.T) {
	form := deriveForm(42, nil)
	if form == nil {
		t.Fatal("nil form")
	}
	if form.FormScore != 0 || len(form.Results) != 0 {
		t.Errorf("empty input should derive a zero form, got %+v", form)
	}
}
