package logic

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/fanarena/analyst-api/internal/models"
)

// Tuning constants for the deterministic outcome estimator.
const (
	defaultFormScore   = 50.0
	winStreakBonus     = 8.0  // win streak of 3 or more
	unbeatenBonus      = 5.0  // unbeaten in 5 or more
	homeAdvantageBonus = 10.0
	rankDiffScale      = 1.5 // per standings rank of difference
	drawSlack          = 35.0

	homeWinFloor = 15
	homeWinCeil  = 70
	awayWinFloor = 10
	awayWinCeil  = 60

	strongFormThreshold = 70.0
	weakFormThreshold   = 30.0
)

// PredictOptions carries the inputs the engine works from. Zero values mean
// "unknown" and fall back to neutral defaults.
type PredictOptions struct {
	HomeForm *models.TeamForm
	AwayForm *models.TeamForm
	HomeRank int
	AwayRank int

	// Jitter nudges the predicted scoreline within a bounded range so
	// similar inputs do not always produce the identical score. Off by
	// default to keep the engine fully deterministic.
	Jitter bool
}

// Predict estimates the outcome of a fixture without any external calls.
// The three probabilities always sum to exactly 100.
func Predict(match models.MatchContext, opts PredictOptions) *models.MatchPrediction {
	homeScore := defaultFormScore
	awayScore := defaultFormScore
	if opts.HomeForm != nil {
		homeScore = clampFloat(opts.HomeForm.FormScore, 0, 100)
	}
	if opts.AwayForm != nil {
		awayScore = clampFloat(opts.AwayForm.FormScore, 0, 100)
	}

	homeStrength := homeScore + homeAdvantageBonus
	awayStrength := awayScore

	factors := []string{"Home advantage"}

	if opts.HomeForm != nil {
		homeStrength += streakBonus(opts.HomeForm)
	}
	if opts.AwayForm != nil {
		awayStrength += streakBonus(opts.AwayForm)
	}

	// A better league position (lower rank) adds strength.
	if opts.HomeRank > 0 && opts.AwayRank > 0 && opts.HomeRank != opts.AwayRank {
		diff := float64(opts.AwayRank-opts.HomeRank) * rankDiffScale
		homeStrength += diff
		if diff > 0 {
			factors = append(factors, fmt.Sprintf("%s sit %s higher in the table", match.HomeTeam, placesText(opts.AwayRank-opts.HomeRank)))
		} else {
			factors = append(factors, fmt.Sprintf("%s sit %s higher in the table", match.AwayTeam, placesText(opts.HomeRank-opts.AwayRank)))
		}
	}

	switch {
	case homeScore >= strongFormThreshold:
		factors = append(factors, fmt.Sprintf("%s in strong recent form", match.HomeTeam))
	case homeScore <= weakFormThreshold:
		factors = append(factors, fmt.Sprintf("%s struggling for form", match.HomeTeam))
	}
	switch {
	case awayScore >= strongFormThreshold:
		factors = append(factors, fmt.Sprintf("%s in strong recent form", match.AwayTeam))
	case awayScore <= weakFormThreshold:
		factors = append(factors, fmt.Sprintf("%s struggling for form", match.AwayTeam))
	}

	// Probabilities against total strength plus a fixed draw slack so draws
	// stay plausible even between mismatched sides.
	total := homeStrength + awayStrength + drawSlack
	homeWin := clampInt(int(math.Round(homeStrength/total*100)), homeWinFloor, homeWinCeil)
	awayWin := clampInt(int(math.Round(awayStrength/total*100)), awayWinFloor, awayWinCeil)
	draw := 100 - homeWin - awayWin

	prediction := &models.MatchPrediction{
		HomeTeam:       match.HomeTeam,
		AwayTeam:       match.AwayTeam,
		HomeWinPct:     homeWin,
		DrawPct:        draw,
		AwayWinPct:     awayWin,
		PredictedScore: predictScore(homeWin, awayWin, opts.Jitter),
		Confidence:     clampFloat(50+math.Abs(homeScore-awayScore)/2, 0, 100),
		Factors:        factors,
	}
	return prediction
}

func placesText(n int) string {
	if n == 1 {
		return "1 place"
	}
	return fmt.Sprintf("%d places", n)
}

func streakBonus(form *models.TeamForm) float64 {
	bonus := 0.0
	if form.WinStreak >= 3 {
		bonus += winStreakBonus
	}
	if form.UnbeatenStreak >= 5 {
		bonus += unbeatenBonus
	}
	return bonus
}

// predictScore scales each side's win probability fraction into a small
// bounded goal range: 0-5 for the home side, 0-4 away.
func predictScore(homeWin, awayWin int, jitter bool) models.PredictedScore {
	home := int(math.Round(float64(homeWin) / 100 * 5))
	away := int(math.Round(float64(awayWin) / 100 * 4))
	if jitter {
		home += rand.Intn(2)
		if away > 0 {
			away += rand.Intn(3) - 1
		} else {
			away += rand.Intn(2)
		}
	}
	return models.PredictedScore{
		Home: clampInt(home, 0, 5),
		Away: clampInt(away, 0, 4),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
