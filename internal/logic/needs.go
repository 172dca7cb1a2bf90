package logic

import (
	"sort"
	"strings"
)

// Need is a topic tag describing what category of data a question requires.
type Need string

const (
	NeedLineups    Need = "lineups"
	NeedInjuries   Need = "injuries"
	NeedLive       Need = "live"
	NeedForm       Need = "form"
	NeedH2H        Need = "h2h"
	NeedStandings  Need = "standings"
	NeedStats      Need = "stats"
	NeedSquad      Need = "squad"
	NeedPrediction Need = "prediction"
)

// needKeywords maps each tag to the phrases that trigger it. Matching is
// plain substring containment over the lower-cased question, no stemming.
var needKeywords = map[Need][]string{
	NeedLineups:    {"lineup", "line-up", "line up", "starting", "formation", "who's playing", "who is playing", "xi"},
	NeedInjuries:   {"injur", "injured", "fit", "fitness", "missing", "out for", "suspended", "suspension", "available"},
	NeedLive:       {"score now", "current score", "live", "right now", "what's the score", "whats the score", "minute"},
	NeedForm:       {"form", "recent", "streak", "last game", "last match", "last few", "how are they doing", "momentum"},
	NeedH2H:        {"head to head", "head-to-head", "h2h", "previous meeting", "last time they", "history between", "record against"},
	NeedStandings:  {"standing", "table", "position", "rank", "league place", "top of the", "relegation"},
	NeedStats:      {"stats", "statistic", "goals per", "average", "possession", "clean sheet", "scoring record"},
	NeedSquad:      {"squad", "roster", "key player", "best player", "star player", "who plays"},
	NeedPrediction: {"predict", "prediction", "who will win", "who wins", "outcome", "forecast", "odds", "chances"},
}

// DetectNeeds classifies a free-text fan question into the set of data
// categories it requires. Case-insensitive and deterministic; an empty
// result routes callers to the generic answer path.
func DetectNeeds(question string) []Need {
	text := strings.ToLower(question)

	var tags []Need
	for need, keywords := range needKeywords {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, need)
				break
			}
		}
	}

	// Map iteration order is random; keep output stable for callers and logs.
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// HasNeed reports whether tag is in the detected set.
func HasNeed(tags []Need, tag Need) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NeedStrings converts tags for logging and analytics rows.
func NeedStrings(tags []Need) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
