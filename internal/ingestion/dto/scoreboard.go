package dto

// ScoreboardResponse mirrors the schedule source's scoreboard payload.
type ScoreboardResponse struct {
	Events []ScoreboardEvent `json:"events"`
}

// ScoreboardEvent is one event wrapper; only the first competition is used.
type ScoreboardEvent struct {
	Competitions []Competition `json:"competitions"`
}

// Competition describes one matchup with its competitors and odds.
type Competition struct {
	Date        string       `json:"date"`
	Competitors []Competitor `json:"competitors"`
	Odds        []Odds       `json:"odds"`
	Status      *struct {
		Type *struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"status"`
}

// Competitor is one side of a matchup.
type Competitor struct {
	HomeAway string `json:"homeAway"`
	Team     struct {
		DisplayName  string `json:"displayName"`
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

// Odds carries the market lines attached to a competition. Details is free
// text; a numeric spread is derived from it when Spread is absent.
type Odds struct {
	Details   string   `json:"details"`
	OverUnder *float64 `json:"overUnder"`
	Spread    *float64 `json:"spread"`
}
