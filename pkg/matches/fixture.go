package matches

import (
	"slices"
	"strconv"
)

// Fixture is one match as returned by the fixtures endpoint.
type Fixture struct {
	Fixture FixtureInfo `json:"fixture"`
	League  League      `json:"league"`
	Teams   Teams       `json:"teams"`
	Goals   Goals       `json:"goals"`
}

type FixtureInfo struct {
	ID     int64  `json:"id"`
	Status Status `json:"status"`
}

type Status struct {
	Long  string `json:"long"`
	Short string `json:"short"`
}

type League struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type Team struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type Teams struct {
	Home Team `json:"home"`
	Away Team `json:"away"`
}

// Goals are nil before kick-off.
type Goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// liveStatuses are the short codes for a match in play.
var liveStatuses = []string{"1H", "HT", "2H", "ET", "BT", "P", "SUSP", "INT", "LIVE"}

// IsLive reports whether the match is in play.
func (f Fixture) IsLive() bool {
	return slices.Contains(liveStatuses, f.Fixture.Status.Short)
}

// Score formats the goals as "2 - 1", with "-" for unknown sides.
func (f Fixture) Score() string {
	return goals(f.Goals.Home) + " - " + goals(f.Goals.Away)
}

func goals(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
