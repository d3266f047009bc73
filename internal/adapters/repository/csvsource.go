package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/okian/eplhistory/internal/domain/model"
)

// Required CSV header names, matched case-insensitively.
const (
	ColumnHome   = "Home"
	ColumnAway   = "Away"
	ColumnResult = "FTR"
	ColumnYear   = "Season_End_Year"
)

// ctxCheckEvery bounds how many rows are read between cancellation checks.
const ctxCheckEvery = 1024

// CSVSource loads matches from a delimited file with a header row.
type CSVSource struct {
	path string
}

// NewCSVSource creates a loader for the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load reads and parses the file.
func (c *CSVSource) Load(ctx context.Context) (*Store, LoadReport, error) {
	source := "csv:" + c.path
	f, err := os.Open(c.path)
	if err != nil {
		return nil, LoadReport{Source: source}, fmt.Errorf("%w: %w", ErrOpenSource, err)
	}
	defer func() { _ = f.Close() }()

	return LoadCSV(ctx, source, f)
}

// LoadCSV parses a match table from r. Rows with an empty team, an unknown
// result code or a non-numeric year are skipped and reported; a missing
// header, a missing required column or a broken CSV structure is fatal.
func LoadCSV(ctx context.Context, source string, r io.Reader) (*Store, LoadReport, error) {
	start := time.Now()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, LoadReport{Source: source}, ErrMissingHeader
	}
	if err != nil {
		return nil, LoadReport{Source: source}, fmt.Errorf("%w: %w", ErrMalformedFile, err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, LoadReport{Source: source}, err
	}

	var (
		matches []model.Match
		skipped []RowError
	)
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, LoadReport{Source: source}, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, LoadReport{Source: source}, fmt.Errorf("%w: %w", ErrMalformedFile, err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) <= cols.max {
			skipped = append(skipped, RowError{Line: line, Err: fmt.Errorf("%w: got %d fields", ErrMalformedFile, len(rec))})
			continue
		}
		m, err := parseRow(rec[cols.home], rec[cols.away], rec[cols.result], rec[cols.year])
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Err: err})
			continue
		}
		matches = append(matches, m)
	}

	return finish(source, matches, skipped, start)
}

type columnIndex struct {
	home, away, result, year int
	max                      int
}

func resolveColumns(header []string) (columnIndex, error) {
	idx := map[string]int{}
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	find := func(name string) (int, error) {
		i, ok := idx[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		return i, nil
	}

	var (
		c   columnIndex
		err error
	)
	if c.home, err = find(ColumnHome); err != nil {
		return c, err
	}
	if c.away, err = find(ColumnAway); err != nil {
		return c, err
	}
	if c.result, err = find(ColumnResult); err != nil {
		return c, err
	}
	if c.year, err = find(ColumnYear); err != nil {
		return c, err
	}
	c.max = max(c.home, c.away, c.result, c.year)
	return c, nil
}
