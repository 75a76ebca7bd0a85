package utils

import (
	"math"
	"time"
)

const maxRegularSeasonWeek = 18

// CurrentSeason returns the season year for a point in time.
func CurrentSeason(now time.Time) int {
	return now.Year()
}

// CurrentWeek derives the NFL regular-season week for a point in time,
// anchored to the first of September and clamped to [1, 18].
func CurrentWeek(now time.Time) int {
	seasonStart := time.Date(now.Year(), time.September, 1, 0, 0, 0, 0, now.Location())
	diffDays := math.Floor(now.Sub(seasonStart).Hours() / 24)
	week := int(math.Ceil(diffDays / 7))
	if week < 1 {
		return 1
	}
	if week > maxRegularSeasonWeek {
		return maxRegularSeasonWeek
	}
	return week
}
