package aggregate

import (
	"sort"

	"github.com/okian/eplhistory/internal/domain/model"
)

// WinsMatrix is a season-indexed table of win counts with one column per
// team. A nil cell means the team has no win recorded for that season,
// either because it did not play or because it won nothing.
type WinsMatrix struct {
	Years []int             `json:"years"`
	Teams []string          `json:"teams"`
	Wins  map[string][]*int `json:"wins"`
}

// Column returns team's cells aligned with Years.
func (m WinsMatrix) Column(team string) ([]*int, bool) {
	col, ok := m.Wins[team]
	return col, ok
}

// MaxWins returns the largest cell value in the matrix.
func (m WinsMatrix) MaxWins() int {
	best := 0
	for _, col := range m.Wins {
		for _, cell := range col {
			if cell != nil && *cell > best {
				best = *cell
			}
		}
	}
	return best
}

// BuildWinsMatrix outer-joins WinsBySeason for every team on year. The year
// index is the union of seasons in which any team won at least once.
func BuildWinsMatrix(src Source, teams []string) WinsMatrix {
	series := make(map[string][]model.SeasonWins, len(teams))
	yearSet := make(map[int]struct{})
	for _, team := range teams {
		wins := WinsBySeason(src, team)
		series[team] = wins
		for _, w := range wins {
			yearSet[w.Year] = struct{}{}
		}
	}
	return joinWins(teams, series, yearSet)
}

// BuildWinsMatrixFrom builds the matrix from precomputed per-team series.
// Teams missing from series get an all-nil column.
func BuildWinsMatrixFrom(teams []string, series map[string][]model.SeasonWins) WinsMatrix {
	yearSet := make(map[int]struct{})
	for _, team := range teams {
		for _, w := range series[team] {
			yearSet[w.Year] = struct{}{}
		}
	}
	return joinWins(teams, series, yearSet)
}

func joinWins(teams []string, series map[string][]model.SeasonWins, yearSet map[int]struct{}) WinsMatrix {
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	index := make(map[int]int, len(years))
	for i, y := range years {
		index[y] = i
	}

	m := WinsMatrix{
		Years: years,
		Teams: append([]string(nil), teams...),
		Wins:  make(map[string][]*int, len(teams)),
	}
	for _, team := range teams {
		col := make([]*int, len(years))
		for _, w := range series[team] {
			n := w.Wins
			col[index[w.Year]] = &n
		}
		m.Wins[team] = col
	}
	return m
}
