// Package aggregate turns the flat match table into per-team, per-season
// result counts.
//
// All functions are pure over a Source and never fail: an unknown team or a
// sparse history is represented by missing rows, not by an error.
package aggregate

import (
	"sort"

	"github.com/okian/eplhistory/internal/domain/model"
)

// Source provides the matches a team took part in.
type Source interface {
	// TeamMatches returns every match team played, home or away.
	TeamMatches(team string) []model.Match
}

// Table adapts a plain slice of matches to Source by scanning it.
type Table []model.Match

// TeamMatches implements Source.
func (t Table) TeamMatches(team string) []model.Match {
	var out []model.Match
	for _, m := range t {
		if m.Involves(team) {
			out = append(out, m)
		}
	}
	return out
}

// WinsBySeason counts team's wins per season, ascending by year.
// Seasons where the team recorded no win produce no row.
func WinsBySeason(src Source, team string) []model.SeasonWins {
	counts := make(map[int]int)
	for _, m := range src.TeamMatches(team) {
		if m.Outcome(team) == model.OutcomeWin {
			counts[m.SeasonEndYear]++
		}
	}

	out := make([]model.SeasonWins, 0, len(counts))
	for year, wins := range counts {
		out = append(out, model.SeasonWins{Year: year, Wins: wins})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// StatsBySeason counts team's wins, draws and losses per season, ascending by
// year. A season appears when the team has at least one result of any kind
// in it; categories without matches are zero, never missing.
func StatsBySeason(src Source, team string) []model.SeasonStats {
	bySeason := make(map[int]*model.SeasonStats)
	for _, m := range src.TeamMatches(team) {
		outcome := m.Outcome(team)
		if outcome == model.OutcomeNone {
			continue
		}
		s, ok := bySeason[m.SeasonEndYear]
		if !ok {
			s = &model.SeasonStats{Year: m.SeasonEndYear}
			bySeason[m.SeasonEndYear] = s
		}
		switch outcome {
		case model.OutcomeWin:
			s.Wins++
		case model.OutcomeDraw:
			s.Draws++
		case model.OutcomeLoss:
			s.Losses++
		}
	}

	out := make([]model.SeasonStats, 0, len(bySeason))
	for _, s := range bySeason {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Totals sums each result category over all seasons.
func Totals(stats []model.SeasonStats) model.Totals {
	var t model.Totals
	for _, s := range stats {
		t.Wins += s.Wins
		t.Draws += s.Draws
		t.Losses += s.Losses
	}
	return t
}

// WinsFromStats projects season stats onto the wins series, dropping seasons
// without a win so the result matches WinsBySeason.
func WinsFromStats(stats []model.SeasonStats) []model.SeasonWins {
	out := make([]model.SeasonWins, 0, len(stats))
	for _, s := range stats {
		if s.Wins > 0 {
			out = append(out, model.SeasonWins{Year: s.Year, Wins: s.Wins})
		}
	}
	return out
}
