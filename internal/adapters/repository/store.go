// Package repository holds the immutable match table and the sources it is
// loaded from.
package repository

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/eplhistory/internal/domain/model"
)

// Universe selects which clubs count as the league's teams.
type Universe string

const (
	// UniverseHome takes the distinct home-team names only. A club that
	// only ever appears away is left out.
	UniverseHome Universe = "home"
	// UniverseAll takes the union of home and away names.
	UniverseAll Universe = "all"
)

// ParseUniverse validates a configured universe name.
func ParseUniverse(s string) (Universe, error) {
	switch Universe(strings.ToLower(strings.TrimSpace(s))) {
	case UniverseHome:
		return UniverseHome, nil
	case UniverseAll, "":
		return UniverseAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUniverse, s)
}

// Store is the in-memory match table. It is built once and never mutated,
// so every method is safe for concurrent use without locking.
type Store struct {
	matches []model.Match
	byTeam  map[string][]model.Match
	home    []string
	all     []string
	seasons []int
	skipped int
	source  string
}

// NewStore indexes matches by team. The slice is copied.
func NewStore(matches []model.Match, opts ...Option) *Store {
	s := &Store{
		matches: append([]model.Match(nil), matches...),
		byTeam:  make(map[string][]model.Match),
		source:  "memory",
	}
	for _, opt := range opts {
		opt(s)
	}

	homeSet := make(map[string]struct{})
	allSet := make(map[string]struct{})
	seasonSet := make(map[int]struct{})
	for _, m := range s.matches {
		s.byTeam[m.HomeTeam] = append(s.byTeam[m.HomeTeam], m)
		if m.AwayTeam != m.HomeTeam {
			s.byTeam[m.AwayTeam] = append(s.byTeam[m.AwayTeam], m)
		}
		homeSet[m.HomeTeam] = struct{}{}
		allSet[m.HomeTeam] = struct{}{}
		allSet[m.AwayTeam] = struct{}{}
		seasonSet[m.SeasonEndYear] = struct{}{}
	}

	s.home = sortedKeys(homeSet)
	s.all = sortedKeys(allSet)
	s.seasons = make([]int, 0, len(seasonSet))
	for y := range seasonSet {
		s.seasons = append(s.seasons, y)
	}
	sort.Ints(s.seasons)
	return s
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// TeamMatches returns every match team played, in load order.
// The returned slice is shared and must not be modified.
func (s *Store) TeamMatches(team string) []model.Match {
	return s.byTeam[team]
}

// Matches returns a copy of the full table.
func (s *Store) Matches() []model.Match {
	return append([]model.Match(nil), s.matches...)
}

// Len returns the number of matches.
func (s *Store) Len() int { return len(s.matches) }

// Teams returns the sorted team universe.
func (s *Store) Teams(u Universe) []string {
	if u == UniverseHome {
		return append([]string(nil), s.home...)
	}
	return append([]string(nil), s.all...)
}

// HasTeam reports whether team appears in either column.
func (s *Store) HasTeam(team string) bool {
	_, ok := s.byTeam[team]
	return ok
}

// Seasons returns the distinct season-end years, ascending.
func (s *Store) Seasons() []int {
	return append([]int(nil), s.seasons...)
}

// Skipped returns how many source rows were rejected during load.
func (s *Store) Skipped() int { return s.skipped }

// Source describes where the table was loaded from.
func (s *Store) Source() string { return s.source }
