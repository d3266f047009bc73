// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Result is the full-time outcome from the home team's perspective.
type Result uint8

const (
	// ResultUnknown marks a code that could not be parsed.
	ResultUnknown Result = iota
	ResultHome
	ResultDraw
	ResultAway
)

// ParseResult converts a source code (H, D, A) into a Result.
func ParseResult(code string) (Result, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "H":
		return ResultHome, nil
	case "D":
		return ResultDraw, nil
	case "A":
		return ResultAway, nil
	}
	return ResultUnknown, fmt.Errorf("%w: %q", ErrInvalidResult, code)
}

// String returns the single-letter source code.
func (r Result) String() string {
	switch r {
	case ResultHome:
		return "H"
	case ResultDraw:
		return "D"
	case ResultAway:
		return "A"
	default:
		return "?"
	}
}

// Match is one row of the historical match table.
type Match struct {
	HomeTeam      string
	AwayTeam      string
	Result        Result
	SeasonEndYear int // e.g. 2000 for the 1999-2000 season
}

// Involves reports whether team played in the match.
func (m Match) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// Outcome classifies the match for team. The zero Outcome means team did not play.
func (m Match) Outcome(team string) Outcome {
	switch {
	case m.HomeTeam == team:
		switch m.Result {
		case ResultHome:
			return OutcomeWin
		case ResultAway:
			return OutcomeLoss
		case ResultDraw:
			return OutcomeDraw
		}
	case m.AwayTeam == team:
		switch m.Result {
		case ResultAway:
			return OutcomeWin
		case ResultHome:
			return OutcomeLoss
		case ResultDraw:
			return OutcomeDraw
		}
	}
	return OutcomeNone
}

// Outcome is a match result seen from one team's side.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeDraw
	OutcomeLoss
)

// SeasonWins is the number of wins a team recorded in one season.
type SeasonWins struct {
	Year int `json:"year"`
	Wins int `json:"wins"`
}

// SeasonStats holds a team's result counts for one season. All counts are
// concrete; categories with no matches are zero.
type SeasonStats struct {
	Year   int `json:"year"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// Played returns the number of matches the counts account for.
func (s SeasonStats) Played() int {
	return s.Wins + s.Draws + s.Losses
}

// Totals sums a team's results across all seasons.
type Totals struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}
