package logic

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fanarena/analyst-api/internal/models"
	"github.com/fanarena/analyst-api/internal/sportsdata"
)

// Orchestrator resolves team identifiers and fans out the data fetches a
// question needs. The join is all-settled: a single category failing or
// timing out is logged, counted and omitted, and never cancels siblings.
type Orchestrator struct {
	provider     sportsdata.Provider
	logger       *zap.SugaredLogger
	fetchTimeout time.Duration
	h2hSize      int
}

func NewOrchestrator(provider sportsdata.Provider, fetchTimeout time.Duration, logger *zap.Logger) *Orchestrator {
	if fetchTimeout <= 0 {
		fetchTimeout = 8 * time.Second
	}
	return &Orchestrator{
		provider:     provider,
		logger:       logger.Sugar(),
		fetchTimeout: fetchTimeout,
		h2hSize:      5,
	}
}

// FetchBundle returns whatever data could be gathered for the question.
// If either team id cannot be resolved it returns an empty bundle and no
// error; callers must have a no-context path.
func (o *Orchestrator) FetchBundle(ctx context.Context, match models.MatchContext, tags []Need) *models.TargetedDataBundle {
	bundle := &models.TargetedDataBundle{}

	homeID, awayID, ok := o.resolveTeams(ctx, match)
	if !ok {
		resolutionFailures.Inc()
		return bundle
	}

	// Baseline categories are fetched for every question because most
	// answer templates reference them. Per-tag categories follow only when
	// their preconditions hold.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(o.settled(gctx, "home_form", func(ctx context.Context) error {
		form, err := o.provider.TeamForm(ctx, homeID)
		if err != nil {
			return err
		}
		bundle.HomeForm = form
		return nil
	}))
	g.Go(o.settled(gctx, "away_form", func(ctx context.Context) error {
		form, err := o.provider.TeamForm(ctx, awayID)
		if err != nil {
			return err
		}
		bundle.AwayForm = form
		return nil
	}))
	g.Go(o.settled(gctx, "h2h", func(ctx context.Context) error {
		h2h, err := o.provider.HeadToHead(ctx, homeID, awayID, o.h2hSize)
		if err != nil {
			return err
		}
		bundle.HeadToHead = h2h
		return nil
	}))
	g.Go(o.settled(gctx, "injuries", func(ctx context.Context) error {
		var all []models.InjuryRecord
		for _, teamID := range []int{homeID, awayID} {
			recs, err := o.provider.Injuries(ctx, teamID, match.Season)
			if err != nil {
				return err
			}
			all = append(all, recs...)
		}
		bundle.Injuries = all
		return nil
	}))
	if match.LeagueID > 0 {
		g.Go(o.settled(gctx, "standings", func(ctx context.Context) error {
			rows, err := o.provider.Standings(ctx, match.LeagueID, match.Season)
			if err != nil {
				return err
			}
			bundle.Standings = rows
			return nil
		}))
		g.Go(o.settled(gctx, "home_stats", func(ctx context.Context) error {
			stats, err := o.provider.TeamStats(ctx, homeID, match.LeagueID, match.Season)
			if err != nil {
				return err
			}
			bundle.HomeStats = stats
			return nil
		}))
		g.Go(o.settled(gctx, "away_stats", func(ctx context.Context) error {
			stats, err := o.provider.TeamStats(ctx, awayID, match.LeagueID, match.Season)
			if err != nil {
				return err
			}
			bundle.AwayStats = stats
			return nil
		}))
	}

	// Additional categories, gated on tags and preconditions.
	if match.FixtureID > 0 && (HasNeed(tags, NeedLineups) || match.Mode != models.ModePreMatch) {
		g.Go(o.settled(gctx, "lineups", func(ctx context.Context) error {
			lineups, err := o.provider.Lineups(ctx, match.FixtureID)
			if err != nil {
				return err
			}
			bundle.Lineups = lineups
			return nil
		}))
	}
	if match.FixtureID > 0 && (HasNeed(tags, NeedLive) || match.Mode == models.ModeLive || match.Mode == models.ModePostMatch) {
		g.Go(o.settled(gctx, "events", func(ctx context.Context) error {
			events, err := o.provider.Events(ctx, match.FixtureID)
			if err != nil {
				return err
			}
			bundle.Events = events
			return nil
		}))
		g.Go(o.settled(gctx, "live", func(ctx context.Context) error {
			state, err := o.provider.Fixture(ctx, match.FixtureID)
			if err != nil {
				return err
			}
			bundle.Live = state
			return nil
		}))
	}
	if HasNeed(tags, NeedSquad) {
		g.Go(o.settled(gctx, "home_squad", func(ctx context.Context) error {
			squad, err := o.provider.Squad(ctx, homeID)
			if err != nil {
				return err
			}
			bundle.HomeSquad = squad
			return nil
		}))
		g.Go(o.settled(gctx, "away_squad", func(ctx context.Context) error {
			squad, err := o.provider.Squad(ctx, awayID)
			if err != nil {
				return err
			}
			bundle.AwaySquad = squad
			return nil
		}))
	}

	// Tasks never return errors, so Wait only joins.
	_ = g.Wait()

	return bundle
}

// settled wraps a fetch so that its failure is contained: logged, counted,
// and reported as nil to the errgroup so sibling fetches keep running.
func (o *Orchestrator) settled(ctx context.Context, category string, fetch func(ctx context.Context) error) func() error {
	return func() error {
		callCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
		defer cancel()

		if err := fetch(callCtx); err != nil {
			categoryFetchFailures.WithLabelValues(category).Inc()
			o.logger.Warnw("Data category fetch failed", "category", category, "error", err)
		}
		return nil
	}
}

// resolveTeams fills in any missing team ids via one name search per
// unresolved side. Resolution failure is not an error condition.
func (o *Orchestrator) resolveTeams(ctx context.Context, match models.MatchContext) (int, int, bool) {
	homeID := match.HomeTeamID
	awayID := match.AwayTeamID

	if homeID <= 0 {
		callCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
		id, err := o.provider.SearchTeam(callCtx, match.HomeTeam)
		cancel()
		if err != nil {
			o.logger.Warnw("Team resolution failed", "team", match.HomeTeam, "error", err)
			return 0, 0, false
		}
		homeID = id
	}
	if awayID <= 0 {
		callCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
		id, err := o.provider.SearchTeam(callCtx, match.AwayTeam)
		cancel()
		if err != nil {
			o.logger.Warnw("Team resolution failed", "team", match.AwayTeam, "error", err)
			return 0, 0, false
		}
		awayID = id
	}
	return homeID, awayID, true
}
