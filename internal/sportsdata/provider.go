// Package sportsdata talks to the external football data provider.
// Every call can fail or time out independently; callers treat a failed
// category as absent, never as an empty real value.
package sportsdata

import (
	"context"
	"errors"

	"github.com/fanarena/analyst-api/internal/models"
)

// ErrTeamNotFound is returned when a name search yields no team.
var ErrTeamNotFound = errors.New("sportsdata: team not found")

// Provider is the sports data collaborator consumed by the analyst pipeline.
type Provider interface {
	SearchTeam(ctx context.Context, name string) (int, error)
	TeamForm(ctx context.Context, teamID int) (*models.TeamForm, error)
	Standings(ctx context.Context, leagueID, season int) ([]models.Standing, error)
	TeamStats(ctx context.Context, teamID, leagueID, season int) (*models.TeamSeasonStats, error)
	Injuries(ctx context.Context, teamID, season int) ([]models.InjuryRecord, error)
	Lineups(ctx context.Context, fixtureID int) ([]models.LineupRecord, error)
	Events(ctx context.Context, fixtureID int) ([]models.MatchEvent, error)
	Fixture(ctx context.Context, fixtureID int) (*models.FixtureState, error)
	Squad(ctx context.Context, teamID int) ([]models.SquadPlayer, error)
	HeadToHead(ctx context.Context, homeID, awayID, last int) ([]models.HeadToHeadMatch, error)
}
