// Package stats accumulates per-player results across rounds of a
// session: rounds played, rounds won, and score distribution.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// PlayerStats tracks one player's results across recorded rounds.
type PlayerStats struct {
	Rounds   int
	Wins     int
	Sum      float64
	SumSq    float64
	Best     int
	hasScore bool
}

// Mean returns the arithmetic mean of the player's final scores.
func (p *PlayerStats) Mean() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return p.Sum / float64(p.Rounds)
}

// StdDev returns the sample standard deviation of the player's final
// scores, zero with fewer than two rounds.
func (p *PlayerStats) StdDev() float64 {
	if p.Rounds < 2 {
		return 0
	}
	mean := p.Mean()
	variance := (p.SumSq - float64(p.Rounds)*mean*mean) / float64(p.Rounds-1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// WinRate returns the fraction of recorded rounds the player won.
func (p *PlayerStats) WinRate() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Rounds)
}

// Session accumulates round results for the lifetime of one process.
type Session struct {
	players map[string]*PlayerStats
	rounds  int
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{players: make(map[string]*PlayerStats)}
}

// Rounds returns the number of recorded rounds.
func (s *Session) Rounds() int { return s.rounds }

// Record adds one finished round: every participant's final score plus
// the set of winners (ties count a win for each).
func (s *Session) Record(scores map[string]int, winners []string) {
	if len(scores) == 0 {
		return
	}
	s.rounds++
	won := make(map[string]bool, len(winners))
	for _, id := range winners {
		won[id] = true
	}
	for id, score := range scores {
		p := s.players[id]
		if p == nil {
			p = &PlayerStats{}
			s.players[id] = p
		}
		p.Rounds++
		p.Sum += float64(score)
		p.SumSq += float64(score) * float64(score)
		if !p.hasScore || score > p.Best {
			p.Best = score
			p.hasScore = true
		}
		if won[id] {
			p.Wins++
		}
	}
}

// Player returns the stats recorded for one player, nil if unseen.
func (s *Session) Player(id string) *PlayerStats {
	return s.players[id]
}

// String renders a session table ordered by wins, then mean score, then
// id.
func (s *Session) String() string {
	if s.rounds == 0 {
		return "no rounds recorded"
	}
	type row struct {
		id string
		st *PlayerStats
	}
	rows := make([]row, 0, len(s.players))
	for id, st := range s.players {
		rows = append(rows, row{id, st})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.st.Wins != b.st.Wins {
			return a.st.Wins > b.st.Wins
		}
		if a.st.Mean() != b.st.Mean() {
			return a.st.Mean() > b.st.Mean()
		}
		return a.id < b.id
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%d round(s) recorded\n", s.rounds)
	for _, r := range rows {
		fmt.Fprintf(&b, "%-14s  wins %d/%d  mean %.1f  best %d  sd %.1f\n",
			r.id, r.st.Wins, r.st.Rounds, r.st.Mean(), r.st.Best, r.st.StdDev())
	}
	return strings.TrimRight(b.String(), "\n")
}
