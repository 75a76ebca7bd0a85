// Package teams maps free-text NFL team references to canonical team codes.
package teams

import (
	"sort"
	"strings"
)

// Code is a canonical team identifier, e.g. "KC" or "BUF".
type Code string

// Codes is the fixed set of canonical team codes.
var Codes = []Code{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE",
	"DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
	"LV", "LAC", "LAR", "MIA", "MIN", "NE", "NO", "NYG",
	"NYJ", "PHI", "PIT", "SEA", "SF", "TB", "TEN", "WAS",
}

var aliasToCode = map[string]Code{
	"arizona cardinals":       "ARI",
	"cardinals":               "ARI",
	"cards":                   "ARI",
	"atlanta falcons":         "ATL",
	"falcons":                 "ATL",
	"baltimore ravens":        "BAL",
	"ravens":                  "BAL",
	"buffalo bills":           "BUF",
	"bills":                   "BUF",
	"carolina panthers":       "CAR",
	"panthers":                "CAR",
	"chicago bears":           "CHI",
	"bears":                   "CHI",
	"cincinnati bengals":      "CIN",
	"bengals":                 "CIN",
	"cleveland browns":        "CLE",
	"browns":                  "CLE",
	"dallas cowboys":          "DAL",
	"cowboys":                 "DAL",
	"denver broncos":          "DEN",
	"broncos":                 "DEN",
	"detroit lions":           "DET",
	"lions":                   "DET",
	"green bay packers":       "GB",
	"packers":                 "GB",
	"houston texans":          "HOU",
	"texans":                  "HOU",
	"indianapolis colts":      "IND",
	"colts":                   "IND",
	"jacksonville jaguars":    "JAX",
	"jaguars":                 "JAX",
	"jags":                    "JAX",
	"kansas city chiefs":      "KC",
	"chiefs":                  "KC",
	"las vegas raiders":       "LV",
	"raiders":                 "LV",
	"los angeles chargers":    "LAC",
	"chargers":                "LAC",
	"la chargers":             "LAC",
	"los angeles rams":        "LAR",
	"rams":                    "LAR",
	"la rams":                 "LAR",
	"miami dolphins":          "MIA",
	"dolphins":                "MIA",
	"fins":                    "MIA",
	"minnesota vikings":       "MIN",
	"vikings":                 "MIN",
	"vikes":                   "MIN",
	"new england patriots":    "NE",
	"patriots":                "NE",
	"pats":                    "NE",
	"new orleans saints":      "NO",
	"saints":                  "NO",
	"new york giants":         "NYG",
	"giants":                  "NYG",
	"gmen":                    "NYG",
	"new york jets":           "NYJ",
	"jets":                    "NYJ",
	"philadelphia eagles":     "PHI",
	"eagles":                  "PHI",
	"pittsburgh steelers":     "PIT",
	"steelers":                "PIT",
	"seattle seahawks":        "SEA",
	"seahawks":                "SEA",
	"hawks":                   "SEA",
	"san francisco 49ers":     "SF",
	"san francisco":           "SF",
	"niners":                  "SF",
	"tampa bay buccaneers":    "TB",
	"buccaneers":              "TB",
	"bucs":                    "TB",
	"tennessee titans":        "TEN",
	"titans":                  "TEN",
	"washington commanders":   "WAS",
	"washington football team": "WAS",
	"commanders":              "WAS",
	"football team":           "WAS",
}

var codeToName = map[Code]string{
	"ARI": "Arizona Cardinals",
	"ATL": "Atlanta Falcons",
	"BAL": "Baltimore Ravens",
	"BUF": "Buffalo Bills",
	"CAR": "Carolina Panthers",
	"CHI": "Chicago Bears",
	"CIN": "Cincinnati Bengals",
	"CLE": "Cleveland Browns",
	"DAL": "Dallas Cowboys",
	"DEN": "Denver Broncos",
	"DET": "Detroit Lions",
	"GB":  "Green Bay Packers",
	"HOU": "Houston Texans",
	"IND": "Indianapolis Colts",
	"JAX": "Jacksonville Jaguars",
	"KC":  "Kansas City Chiefs",
	"LV":  "Las Vegas Raiders",
	"LAC": "Los Angeles Chargers",
	"LAR": "Los Angeles Rams",
	"MIA": "Miami Dolphins",
	"MIN": "Minnesota Vikings",
	"NE":  "New England Patriots",
	"NO":  "New Orleans Saints",
	"NYG": "New York Giants",
	"NYJ": "New York Jets",
	"PHI": "Philadelphia Eagles",
	"PIT": "Pittsburgh Steelers",
	"SEA": "Seattle Seahawks",
	"SF":  "San Francisco 49ers",
	"TB":  "Tampa Bay Buccaneers",
	"TEN": "Tennessee Titans",
	"WAS": "Washington Commanders",
}

// sortedAliases keeps the substring pass deterministic.
var sortedAliases = func() []string {
	aliases := make([]string, 0, len(aliasToCode))
	for alias := range aliasToCode {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}()

// IsValid reports whether code is one of the canonical team codes.
func IsValid(code Code) bool {
	_, ok := codeToName[code]
	return ok
}

// Resolve maps a free-text team reference to its canonical code. Resolution
// order: exact alias match, exact code match, then substring match in either
// direction. The second return value is false when nothing matched; callers
// treat that as a skip condition, not an error.
func Resolve(raw string) (Code, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return "", false
	}

	if code, ok := aliasToCode[cleaned]; ok {
		return code, true
	}

	upper := Code(strings.ToUpper(strings.TrimSpace(raw)))
	if IsValid(upper) {
		return upper, true
	}

	for _, alias := range sortedAliases {
		if strings.Contains(cleaned, alias) || strings.Contains(alias, cleaned) {
			return aliasToCode[alias], true
		}
	}

	return "", false
}

// Name returns the full display name for a canonical code, or "" when the
// code is unknown.
func Name(code Code) string {
	return codeToName[Code(strings.ToUpper(string(code)))]
}

// Aliases returns every textual form known for a team: the code itself in
// lower and upper case, the display name and its lowered form, and all
// nicknames and abbreviations that resolve to it. Used to test whether free
// text mentions a team.
func Aliases(code Code) []string {
	out := []string{
		strings.ToLower(string(code)),
		strings.ToUpper(string(code)),
	}
	if name := Name(code); name != "" {
		out = append(out, name, strings.ToLower(name))
	}
	for _, alias := range sortedAliases {
		if aliasToCode[alias] == code {
			out = append(out, alias)
		}
	}
	return out
}
