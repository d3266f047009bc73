package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/okian/eplhistory/internal/domain/model"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// OpenSQL opens a database handle and verifies it early.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrOpenSource, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: pinging database: %w", ErrOpenSource, err)
	}
	return db, nil
}

// SQLSource loads matches from a table with the columns
// home, away, ftr and season_end_year.
type SQLSource struct {
	db    *sql.DB
	table string
}

// NewSQLSource creates a loader reading from table through db.
func NewSQLSource(db *sql.DB, table string) *SQLSource {
	return &SQLSource{db: db, table: table}
}

// Load queries the full table. Rows with NULL or invalid values are skipped
// and reported like malformed CSV rows.
func (s *SQLSource) Load(ctx context.Context) (*Store, LoadReport, error) {
	start := time.Now()
	source := "sql:" + s.table
	if !tableName.MatchString(s.table) {
		return nil, LoadReport{Source: source}, fmt.Errorf("%w: %q", ErrInvalidTable, s.table)
	}

	query := "SELECT home, away, ftr, season_end_year FROM " + s.table
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, LoadReport{Source: source}, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var (
		matches []model.Match
		skipped []RowError
	)
	for n := 1; rows.Next(); n++ {
		var home, away, ftr sql.NullString
		var year sql.NullInt64
		if err := rows.Scan(&home, &away, &ftr, &year); err != nil {
			skipped = append(skipped, RowError{Line: n, Err: err})
			continue
		}
		if !year.Valid {
			skipped = append(skipped, RowError{Line: n, Err: fmt.Errorf("%w: NULL", ErrInvalidYear)})
			continue
		}
		m, err := parseRow(home.String, away.String, ftr.String, fmt.Sprint(year.Int64))
		if err != nil {
			skipped = append(skipped, RowError{Line: n, Err: err})
			continue
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, LoadReport{Source: source}, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	return finish(source, matches, skipped, start)
}
