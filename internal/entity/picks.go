package entity

// PickType is the betting market a prediction concerns.
type PickType string

const (
	PickTypeSpread PickType = "spread"
	PickTypeTotal  PickType = "total"
)

// PickSide is the side chosen within a pick type's vocabulary. Spread picks
// use home/away, total picks use over/under.
type PickSide string

const (
	PickSideHome  PickSide = "home"
	PickSideAway  PickSide = "away"
	PickSideOver  PickSide = "over"
	PickSideUnder PickSide = "under"
)

// ExtractionMethod records how a prediction was obtained.
type ExtractionMethod string

const (
	ExtractionMethodLLM       ExtractionMethod = "llm"
	ExtractionMethodHeuristic ExtractionMethod = "heuristic"
	ExtractionMethodManual    ExtractionMethod = "manual"
)

// SidesForType returns the valid side vocabulary for a pick type, first-listed
// side first. Ties in consensus tallies resolve toward the first side.
func SidesForType(pickType PickType) []PickSide {
	if pickType == PickTypeTotal {
		return []PickSide{PickSideOver, PickSideUnder}
	}
	return []PickSide{PickSideHome, PickSideAway}
}

// ValidSide reports whether side belongs to the vocabulary of pickType.
func ValidSide(pickType PickType, side PickSide) bool {
	for _, s := range SidesForType(pickType) {
		if s == side {
			return true
		}
	}
	return false
}
