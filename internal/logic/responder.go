package logic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fanarena/analyst-api/internal/gateway"
	"github.com/fanarena/analyst-api/internal/models"
)

// Responder composes the model prompt and produces the answer text. When
// the gateway fails, times out, or returns nothing usable it falls through
// to the deterministic template generator; fallback answers are first-class
// conversation turns, not errors.
type Responder struct {
	gateway     gateway.Gateway
	logger      *zap.SugaredLogger
	maxTokens   int
	temperature float64
}

func NewResponder(gw gateway.Gateway, maxTokens int, temperature float64, logger *zap.Logger) *Responder {
	if maxTokens <= 0 {
		maxTokens = 600
	}
	if temperature <= 0 {
		temperature = 0.7
	}
	return &Responder{
		gateway:     gw,
		logger:      logger.Sugar(),
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Generate returns the answer text and whether the fallback path produced it.
// The returned text is never empty.
func (r *Responder) Generate(ctx context.Context, question string, match models.MatchContext,
	bundle *models.TargetedDataBundle, contextText string, history []models.ConversationTurn) (string, bool) {

	messages := buildMessages(question, match, contextText, history)

	start := time.Now()
	answer, err := r.gateway.Complete(ctx, gateway.ChatRequest{
		Messages:    messages,
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
	})
	gatewayLatency.Observe(time.Since(start).Seconds())

	if err == nil && strings.TrimSpace(answer) != "" {
		return strings.TrimSpace(answer), false
	}
	if err != nil {
		r.logger.Warnw("Model gateway unavailable, using fallback", "error", err)
	}

	fallbackAnswers.Inc()
	return r.Fallback(question, match, bundle, contextText), true
}

func buildMessages(question string, match models.MatchContext, contextText string,
	history []models.ConversationTurn) []gateway.Message {

	messages := make([]gateway.Message, 0, len(history)+3)
	messages = append(messages, gateway.Message{Role: "system", Content: systemPrompt(match.Mode)})

	var ctxMsg strings.Builder
	fmt.Fprintf(&ctxMsg, "Fixture: %s vs %s (%s)", match.HomeTeam, match.AwayTeam, match.Mode)
	if match.Venue != "" {
		fmt.Fprintf(&ctxMsg, " at %s", match.Venue)
	}
	if match.Mode != models.ModePreMatch {
		fmt.Fprintf(&ctxMsg, ". Score: %d-%d", match.HomeScore, match.AwayScore)
	}
	if contextText != "" {
		ctxMsg.WriteString("\n\n")
		ctxMsg.WriteString(contextText)
	}
	messages = append(messages, gateway.Message{Role: "user", Content: ctxMsg.String()})

	for _, turn := range history {
		role := turn.Role
		if role != models.RoleAssistant {
			role = models.RoleUser
		}
		messages = append(messages, gateway.Message{Role: role, Content: turn.Content})
	}

	messages = append(messages, gateway.Message{Role: "user", Content: question})
	return messages
}

func systemPrompt(mode models.MatchMode) string {
	base := "You are Alex, the resident match analyst of a football fan community. " +
		"Answer fan questions with sharp, grounded analysis in a conversational tone. " +
		"Rely only on the match data provided; when data is missing, say so rather than inventing numbers. " +
		"Keep answers under three paragraphs."
	switch mode {
	case models.ModeLive:
		return base + " The match is in progress: lead with what is happening on the pitch right now."
	case models.ModePostMatch:
		return base + " The match has finished: analyse what decided it."
	default:
		return base + " The match has not kicked off yet: focus on expectations, form and selection."
	}
}

// Fallback answers the question from canned analysis templates, interpolating
// whatever context was fetched and degrading to team names alone when the
// bundle is empty.
func (r *Responder) Fallback(question string, match models.MatchContext,
	bundle *models.TargetedDataBundle, contextText string) string {

	tags := DetectNeeds(question)
	for _, pick := range []struct {
		tag      Need
		template func(models.MatchContext, *models.TargetedDataBundle, string) string
	}{
		{NeedPrediction, r.predictionTemplate},
		{NeedLineups, teamNewsTemplate},
		{NeedInjuries, teamNewsTemplate},
		{NeedForm, tacticsTemplate},
		{NeedStats, tacticsTemplate},
		{NeedH2H, tacticsTemplate},
		{NeedStandings, tacticsTemplate},
	} {
		if HasNeed(tags, pick.tag) {
			return pick.template(match, bundle, contextText)
		}
	}
	return genericTemplate(match, bundle, contextText)
}

func (r *Responder) predictionTemplate(match models.MatchContext, bundle *models.TargetedDataBundle, _ string) string {
	opts := PredictOptions{}
	if bundle != nil {
		opts.HomeForm = bundle.HomeForm
		opts.AwayForm = bundle.AwayForm
		opts.HomeRank = StandingRank(match.HomeTeamID, match.HomeTeam, bundle.Standings)
		opts.AwayRank = StandingRank(match.AwayTeamID, match.AwayTeam, bundle.Standings)
	}
	p := Predict(match, opts)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's my call on %s vs %s: %d%% home win, %d%% draw, %d%% away win. ",
		match.HomeTeam, match.AwayTeam, p.HomeWinPct, p.DrawPct, p.AwayWinPct)
	fmt.Fprintf(&sb, "My predicted scoreline is %d-%d.", p.PredictedScore.Home, p.PredictedScore.Away)
	if len(p.Factors) > 0 {
		fmt.Fprintf(&sb, " Key factors: %s.", strings.Join(p.Factors, "; "))
	}
	return sb.String()
}

func teamNewsTemplate(match models.MatchContext, bundle *models.TargetedDataBundle, _ string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Team news for %s vs %s. ", match.HomeTeam, match.AwayTeam)

	wrote := false
	if bundle != nil {
		for _, lu := range bundle.Lineups {
			fmt.Fprintf(&sb, "%s line up in a %s: %s. ", lu.TeamName, lu.Formation, strings.Join(lu.StartingXI, ", "))
			wrote = true
		}
		if len(bundle.Injuries) > 0 {
			names := make([]string, 0, len(bundle.Injuries))
			for _, inj := range bundle.Injuries {
				names = append(names, fmt.Sprintf("%s (%s)", inj.PlayerName, inj.TeamName))
			}
			fmt.Fprintf(&sb, "On the treatment table: %s. ", strings.Join(names, ", "))
			wrote = true
		}
	}
	if !wrote {
		sb.WriteString("Official lineups haven't been confirmed yet - they usually drop about an hour before kickoff. Check back closer to the match.")
	}
	return strings.TrimSpace(sb.String())
}

func tacticsTemplate(match models.MatchContext, bundle *models.TargetedDataBundle, _ string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Looking at %s vs %s. ", match.HomeTeam, match.AwayTeam)

	wrote := false
	if bundle != nil {
		for _, form := range []*models.TeamForm{bundle.HomeForm, bundle.AwayForm} {
			if form == nil || len(form.Results) == 0 {
				continue
			}
			letters := make([]string, 0, len(form.Results))
			for _, res := range form.Results {
				letters = append(letters, res.Outcome)
			}
			fmt.Fprintf(&sb, "%s come into this on %s form (%.0f/100). ",
				form.TeamName, strings.Join(letters, ""), form.FormScore)
			wrote = true
		}
		if len(bundle.HeadToHead) > 0 {
			last := bundle.HeadToHead[0]
			fmt.Fprintf(&sb, "Last meeting: %s %d-%d %s. ", last.HomeTeam, last.HomeGoals, last.AwayGoals, last.AwayTeam)
			wrote = true
		}
		if gap, ok := standingsPointGap(match, bundle.Standings); ok {
			fmt.Fprintf(&sb, "The table has %d points between them. ", gap)
			wrote = true
		}
	}
	if !wrote {
		fmt.Fprintf(&sb, "I don't have fresh numbers on this one yet, but %s at home against %s is always worth watching - home sides in this fixture historically edge it.",
			match.HomeTeam, match.AwayTeam)
	}
	return strings.TrimSpace(sb.String())
}

func genericTemplate(match models.MatchContext, bundle *models.TargetedDataBundle, contextText string) string {
	if bundle != nil && !bundle.Empty() && contextText != "" {
		return fmt.Sprintf("Here's where %s vs %s stands right now:\n\n%s",
			match.HomeTeam, match.AwayTeam, contextText)
	}
	return fmt.Sprintf("Good question! %s vs %s should be a compelling matchup. "+
		"Ask me about form, injuries, lineups or a prediction and I'll dig into the numbers for you.",
		match.HomeTeam, match.AwayTeam)
}
