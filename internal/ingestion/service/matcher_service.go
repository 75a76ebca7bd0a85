package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/dto"
	"github.com/0xquinto/parlay-picker/pkg/teams"

	"github.com/google/uuid"
)

// RejectReason names why a pick or article was rejected by the matcher.
type RejectReason string

const (
	RejectUnresolvedTeam  RejectReason = "unresolved_team"
	RejectUnmatchedGame   RejectReason = "unmatched_game"
	RejectNoRelevantGames RejectReason = "no_relevant_games"
)

// RejectionError is a matcher rejection. Callers skip the rejected unit and
// continue; a rejection is never fatal to the run.
type RejectionError struct {
	Reason RejectReason
	Detail string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("pick rejected (%s): %s", e.Reason, e.Detail)
}

// Matcher turns extraction output into persistable predictions by resolving
// team text and locating the game the pick refers to.
type Matcher struct{}

// NewMatcher creates a new Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// RelevantGames pre-filters the week's games to those the article plausibly
// discusses: a game qualifies only when the text mentions at least one alias
// of the home team and at least one alias of the away team. Articles that
// match zero games are rejected wholesale so no extraction call is wasted on
// off-topic content.
func (m *Matcher) RelevantGames(articleText string, games []entity.Game) []entity.Game {
	lowered := strings.ToLower(articleText)

	var relevant []entity.Game
	for _, game := range games {
		if mentionsTeam(lowered, teams.Code(game.HomeTeam)) && mentionsTeam(lowered, teams.Code(game.AwayTeam)) {
			relevant = append(relevant, game)
		}
	}
	return relevant
}

func mentionsTeam(loweredText string, code teams.Code) bool {
	for _, alias := range teams.Aliases(code) {
		if containsWord(loweredText, strings.ToLower(alias)) {
			return true
		}
	}
	return false
}

// containsWord reports whether needle occurs in haystack on word boundaries,
// so short team codes do not match inside unrelated words.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(haystack[start:], needle)
		if i == -1 {
			return false
		}
		i += start
		before := i == 0 || !isWordByte(haystack[i-1])
		after := i+len(needle) == len(haystack) || !isWordByte(haystack[i+len(needle)])
		if before && after {
			return true
		}
		start = i + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// canonicalPairKey builds an order-independent key for a pair of team codes.
func canonicalPairKey(a, b teams.Code) string {
	pair := []string{string(a), string(b)}
	sort.Strings(pair)
	return pair[0] + "-" + pair[1]
}

// Match resolves an extracted pick against the known games and builds the
// prediction to persist. The recorded line falls back to the matched game's
// stored spread or total when the extraction omitted one; confidence defaults
// to a neutral 0.5.
func (m *Matcher) Match(pick dto.ExtractedPick, games []entity.Game, sourceID uuid.UUID, season, week int, articleURL string, extractedAt time.Time) (*entity.Prediction, error) {
	homeCode, ok := teams.Resolve(pick.Game.HomeTeam)
	if !ok {
		return nil, &RejectionError{Reason: RejectUnresolvedTeam, Detail: fmt.Sprintf("home team %q", pick.Game.HomeTeam)}
	}
	awayCode, ok := teams.Resolve(pick.Game.AwayTeam)
	if !ok {
		return nil, &RejectionError{Reason: RejectUnresolvedTeam, Detail: fmt.Sprintf("away team %q", pick.Game.AwayTeam)}
	}

	key := canonicalPairKey(homeCode, awayCode)
	var matched *entity.Game
	for i := range games {
		if canonicalPairKey(teams.Code(games[i].HomeTeam), teams.Code(games[i].AwayTeam)) == key {
			matched = &games[i]
			break
		}
	}
	if matched == nil {
		return nil, &RejectionError{Reason: RejectUnmatchedGame, Detail: fmt.Sprintf("%s vs %s not on the slate", homeCode, awayCode)}
	}

	line := 0.0
	switch {
	case pick.Line != nil:
		line = *pick.Line
	case pick.PickType == entity.PickTypeTotal && matched.TotalLine != nil:
		line = *matched.TotalLine
	case pick.PickType == entity.PickTypeSpread && matched.SpreadLine != nil:
		line = *matched.SpreadLine
	}

	confidence := 0.5
	if pick.Confidence != nil {
		confidence = *pick.Confidence
	}

	return &entity.Prediction{
		SourceID:             sourceID,
		GameID:               matched.ID,
		Season:               season,
		Week:                 week,
		PickType:             pick.PickType,
		PickSide:             pick.PickSide,
		LineAtPick:           line,
		ExtractionMethod:     entity.ExtractionMethodLLM,
		ExtractionConfidence: confidence,
		ExtractedAt:          extractedAt,
		ArticleURL:           articleURL,
		RawQuote:             pick.Quote,
	}, nil
}
