// Package report prints the club history as terminal tables.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/okian/eplhistory/internal/domain/aggregate"
	"github.com/okian/eplhistory/internal/domain/model"
)

// ErrUnknownTeam is returned when a requested matrix column does not exist.
var ErrUnknownTeam = errors.New("unknown team")

const missingCell = "-"

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// Teams prints the team universe, marking the default team.
func Teams(w io.Writer, teams []string, defaultTeam string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Team", ""})
	for i, team := range teams {
		mark := ""
		if team == defaultTeam {
			mark = "default"
		}
		t.AppendRow(table.Row{i + 1, team, mark})
	}
	t.AppendFooter(table.Row{"", len(teams), ""})
	t.Render()
}

// Stats prints one row per season followed by the all-time totals.
func Stats(w io.Writer, team string, stats []model.SeasonStats, totals model.Totals) {
	t := newTable(w)
	t.SetTitle(team)
	t.AppendHeader(table.Row{"Season", "Wins", "Draws", "Losses", "Played"})
	for _, s := range stats {
		t.AppendRow(table.Row{s.Year, s.Wins, s.Draws, s.Losses, s.Wins + s.Draws + s.Losses})
	}
	t.AppendFooter(table.Row{"Total", totals.Wins, totals.Draws, totals.Losses, totals.Wins + totals.Draws + totals.Losses})
	t.SetColumnConfigs(numericColumns(2, 5))
	t.Render()
}

// Matrix prints the wins matrix with one column per team in teams, or every
// team in the matrix when teams is empty.
func Matrix(w io.Writer, m aggregate.WinsMatrix, teams []string) error {
	if len(teams) == 0 {
		teams = m.Teams
	}
	cols := make([][]*int, len(teams))
	for i, team := range teams {
		col, ok := m.Column(team)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTeam, team)
		}
		cols[i] = col
	}

	t := newTable(w)
	header := table.Row{"Season"}
	for _, team := range teams {
		header = append(header, team)
	}
	t.AppendHeader(header)

	for y, year := range m.Years {
		row := table.Row{year}
		for _, col := range cols {
			row = append(row, cell(col[y]))
		}
		t.AppendRow(row)
	}
	t.SetColumnConfigs(numericColumns(2, len(teams)+1))
	t.Render()
	return nil
}

func cell(v *int) string {
	if v == nil {
		return missingCell
	}
	return strconv.Itoa(*v)
}

func numericColumns(from, to int) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, 0, to-from+1)
	for n := from; n <= to; n++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	return cfgs
}
