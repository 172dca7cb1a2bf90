package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fanarena/analyst-api/internal/models"
)

const maxResponseBytes = 4 << 20

// ClientConfig configures the HTTP provider client.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	FormSize   int
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client is an HTTP implementation of Provider against an
// API-Football-compatible v3 endpoint.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	formSize int
	logger   *zap.SugaredLogger
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	formSize := cfg.FormSize
	if formSize <= 0 {
		formSize = 5
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:     httpClient,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		formSize: formSize,
		logger:   logger.Sugar(),
	}
}

func (c *Client) SearchTeam(ctx context.Context, name string) (int, error) {
	var env teamSearchEnvelope
	params := url.Values{"search": {strings.TrimSpace(name)}}
	if err := c.getJSON(ctx, "/teams", params, &env); err != nil {
		return 0, err
	}
	if len(env.Response) == 0 || env.Response[0].Team.ID <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrTeamNotFound, name)
	}
	return env.Response[0].Team.ID, nil
}

func (c *Client) TeamForm(ctx context.Context, teamID int) (*models.TeamForm, error) {
	var env fixturesEnvelope
	params := url.Values{
		"team": {strconv.Itoa(teamID)},
		"last": {strconv.Itoa(c.formSize)},
	}
	if err := c.getJSON(ctx, "/fixtures", params, &env); err != nil {
		return nil, err
	}
	return deriveForm(teamID, env.Response), nil
}

func (c *Client) Standings(ctx context.Context, leagueID, season int) ([]models.Standing, error) {
	var env standingsEnvelope
	params := url.Values{
		"league": {strconv.Itoa(leagueID)},
		"season": {strconv.Itoa(season)},
	}
	if err := c.getJSON(ctx, "/standings", params, &env); err != nil {
		return nil, err
	}

	var out []models.Standing
	for _, item := range env.Response {
		for _, group := range item.League.Standings {
			for _, row := range group {
				out = append(out, models.Standing{
					Rank:         row.Rank,
					TeamID:       row.Team.ID,
					TeamName:     row.Team.Name,
					Played:       row.All.Played,
					Won:          row.All.Win,
					Drawn:        row.All.Draw,
					Lost:         row.All.Lose,
					GoalsFor:     row.All.Goals.For,
					GoalsAgainst: row.All.Goals.Against,
					Points:       row.Points,
					Form:         row.Form,
				})
			}
		}
	}
	return out, nil
}

func (c *Client) TeamStats(ctx context.Context, teamID, leagueID, season int) (*models.TeamSeasonStats, error) {
	var env teamStatsEnvelope
	params := url.Values{
		"team":   {strconv.Itoa(teamID)},
		"league": {strconv.Itoa(leagueID)},
		"season": {strconv.Itoa(season)},
	}
	if err := c.getJSON(ctx, "/teams/statistics", params, &env); err != nil {
		return nil, err
	}

	r := env.Response
	stats := &models.TeamSeasonStats{
		TeamID:        r.Team.ID,
		TeamName:      r.Team.Name,
		Played:        r.Fixtures.Played.Total,
		Wins:          r.Fixtures.Wins.Total,
		Draws:         r.Fixtures.Draws.Total,
		Losses:        r.Fixtures.Loses.Total,
		GoalsScored:   r.Goals.For.Total.Total,
		GoalsConceded: r.Goals.Against.Total.Total,
		CleanSheets:   r.CleanSheet.Total,
	}
	if stats.Played > 0 {
		stats.AvgGoalsScored = round2(float64(stats.GoalsScored) / float64(stats.Played))
		stats.WinRate = round2(float64(stats.Wins) / float64(stats.Played) * 100)
	}
	return stats, nil
}

func (c *Client) Injuries(ctx context.Context, teamID, season int) ([]models.InjuryRecord, error) {
	var env injuriesEnvelope
	params := url.Values{
		"team":   {strconv.Itoa(teamID)},
		"season": {strconv.Itoa(season)},
	}
	if err := c.getJSON(ctx, "/injuries", params, &env); err != nil {
		return nil, err
	}

	out := make([]models.InjuryRecord, 0, len(env.Response))
	for _, item := range env.Response {
		out = append(out, models.InjuryRecord{
			TeamID:     item.Team.ID,
			TeamName:   item.Team.Name,
			PlayerName: item.Player.Name,
			Reason:     item.Player.Reason,
			Status:     item.Player.Type,
		})
	}
	return out, nil
}

func (c *Client) Lineups(ctx context.Context, fixtureID int) ([]models.LineupRecord, error) {
	var env lineupsEnvelope
	params := url.Values{"fixture": {strconv.Itoa(fixtureID)}}
	if err := c.getJSON(ctx, "/fixtures/lineups", params, &env); err != nil {
		return nil, err
	}

	out := make([]models.LineupRecord, 0, len(env.Response))
	for _, item := range env.Response {
		rec := models.LineupRecord{
			TeamID:    item.Team.ID,
			TeamName:  item.Team.Name,
			Formation: item.Formation,
			Coach:     item.Coach.Name,
		}
		for _, p := range item.StartXI {
			if p.Player.Name != "" {
				rec.StartingXI = append(rec.StartingXI, p.Player.Name)
			}
		}
		for _, p := range item.Substitutes {
			if p.Player.Name != "" {
				rec.Bench = append(rec.Bench, p.Player.Name)
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) Events(ctx context.Context, fixtureID int) ([]models.MatchEvent, error) {
	var env eventsEnvelope
	params := url.Values{"fixture": {strconv.Itoa(fixtureID)}}
	if err := c.getJSON(ctx, "/fixtures/events", params, &env); err != nil {
		return nil, err
	}

	out := make([]models.MatchEvent, 0, len(env.Response))
	for _, item := range env.Response {
		out = append(out, models.MatchEvent{
			Minute:     item.Time.Elapsed,
			ExtraTime:  item.Time.Extra,
			TeamName:   item.Team.Name,
			PlayerName: item.Player.Name,
			AssistName: item.Assist.Name,
			Type:       item.Type,
			Detail:     item.Detail,
		})
	}
	return out, nil
}

func (c *Client) Fixture(ctx context.Context, fixtureID int) (*models.FixtureState, error) {
	var env fixturesEnvelope
	params := url.Values{"id": {strconv.Itoa(fixtureID)}}
	if err := c.getJSON(ctx, "/fixtures", params, &env); err != nil {
		return nil, err
	}
	if len(env.Response) == 0 {
		return nil, fmt.Errorf("fixture %d not found", fixtureID)
	}

	item := env.Response[0]
	return &models.FixtureState{
		FixtureID:  item.Fixture.ID,
		Status:     item.Fixture.Status.Short,
		StatusText: item.Fixture.Status.Long,
		Elapsed:    item.Fixture.Status.Elapsed,
		HomeGoals:  item.Goals.Home,
		AwayGoals:  item.Goals.Away,
	}, nil
}

func (c *Client) Squad(ctx context.Context, teamID int) ([]models.SquadPlayer, error) {
	var env squadEnvelope
	params := url.Values{"team": {strconv.Itoa(teamID)}}
	if err := c.getJSON(ctx, "/players/squads", params, &env); err != nil {
		return nil, err
	}

	var out []models.SquadPlayer
	for _, item := range env.Response {
		for _, p := range item.Players {
			out = append(out, models.SquadPlayer{
				Name:     p.Name,
				Position: p.Position,
				Age:      p.Age,
				Number:   p.Number,
			})
		}
	}
	return out, nil
}

func (c *Client) HeadToHead(ctx context.Context, homeID, awayID, last int) ([]models.HeadToHeadMatch, error) {
	if last <= 0 {
		last = 5
	}
	var env fixturesEnvelope
	params := url.Values{
		"h2h":  {fmt.Sprintf("%d-%d", homeID, awayID)},
		"last": {strconv.Itoa(last)},
	}
	if err := c.getJSON(ctx, "/fixtures/headtohead", params, &env); err != nil {
		return nil, err
	}

	out := make([]models.HeadToHeadMatch, 0, len(env.Response))
	for _, item := range env.Response {
		out = append(out, models.HeadToHeadMatch{
			FixtureID: item.Fixture.ID,
			Date:      shortDate(item.Fixture.Date),
			HomeTeam:  item.Teams.Home.Name,
			AwayTeam:  item.Teams.Away.Name,
			HomeGoals: item.Goals.Home,
			AwayGoals: item.Goals.Away,
		})
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-apisports-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("provider request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read provider response %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provider status %d on %s", resp.StatusCode, path)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode provider response %s: %w", path, err)
	}
	return nil
}

func shortDate(raw string) string {
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
