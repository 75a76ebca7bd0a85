package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/0xquinto/parlay-picker/internal/entity"
)

// ExtractedGameRef identifies the game a pick refers to using the team text
// the model emitted; both sides still go through team resolution before the
// pick is accepted.
type ExtractedGameRef struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	Week     int    `json:"week"`
	Season   int    `json:"season"`
}

// ExtractedPick is one structured pick from the extraction service.
type ExtractedPick struct {
	Game       ExtractedGameRef `json:"game"`
	PickType   entity.PickType  `json:"pickType"`
	PickSide   entity.PickSide  `json:"pickSide"`
	Line       *float64         `json:"line,omitempty"`
	Confidence *float64         `json:"confidence,omitempty"`
	Quote      *string          `json:"quote,omitempty"`
}

// BatchValidationError names the reason an extraction batch was rejected.
// The whole batch is dropped on any schema failure; there is no per-item
// salvage.
type BatchValidationError struct {
	Reason string
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("extraction batch rejected: %s", e.Reason)
}

// DecodePickBatch parses raw model output into a validated pick batch. The
// output is sliced to the outermost JSON array before decoding; any malformed
// item fails the whole batch.
func DecodePickBatch(raw string) ([]ExtractedPick, error) {
	trimmed := strings.TrimSpace(raw)
	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start == -1 || end == -1 || end < start {
		return nil, &BatchValidationError{Reason: "no JSON array found in model output"}
	}

	var picks []ExtractedPick
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &picks); err != nil {
		return nil, &BatchValidationError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	for i, pick := range picks {
		if pick.Game.HomeTeam == "" || pick.Game.AwayTeam == "" {
			return nil, &BatchValidationError{Reason: fmt.Sprintf("pick %d missing team reference", i)}
		}
		if pick.PickType != entity.PickTypeSpread && pick.PickType != entity.PickTypeTotal {
			return nil, &BatchValidationError{Reason: fmt.Sprintf("pick %d has unknown pick type %q", i, pick.PickType)}
		}
		if !entity.ValidSide(pick.PickType, pick.PickSide) {
			return nil, &BatchValidationError{Reason: fmt.Sprintf("pick %d side %q is invalid for type %q", i, pick.PickSide, pick.PickType)}
		}
		if pick.Confidence != nil && (*pick.Confidence < 0 || *pick.Confidence > 1) {
			return nil, &BatchValidationError{Reason: fmt.Sprintf("pick %d confidence %v out of range", i, *pick.Confidence)}
		}
	}

	return picks, nil
}

// OpenRouterRequest is the chat-completions request body.
type OpenRouterRequest struct {
	Model       string              `json:"model"`
	Messages    []OpenRouterMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
}

// OpenRouterMessage is one chat message.
type OpenRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenRouterResponse is the chat-completions response body.
type OpenRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
