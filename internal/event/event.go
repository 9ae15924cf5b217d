// Package event implements the random per-turn event source. Each turn
// the game rolls once against the configured probability; a hit picks
// one event and applies it to the player manager's turn configuration
// or directly to player scores.
package event

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/questbet/internal/game"
)

type eventDef struct {
	name  string
	apply func(m *game.PlayerManager)
}

var events = []eventDef{
	{
		name: "double reward",
		apply: func(m *game.PlayerManager) {
			m.SetDoubleReward(true)
		},
	},
	{
		name: "safe bets",
		apply: func(m *game.PlayerManager) {
			m.SetBetFailedDecrease(false)
		},
	},
	{
		name: "gentle targets",
		apply: func(m *game.PlayerManager) {
			m.SetBettedDecrease(false)
		},
	},
	{
		name: "high stakes",
		apply: func(m *game.PlayerManager) {
			m.SetForceMaxStake(true)
		},
	},
	{
		name: "underdog bonus",
		apply: func(m *game.PlayerManager) {
			players := m.Players()
			if len(players) == 0 {
				return
			}
			minScore := players[0].Score
			for _, p := range players[1:] {
				if p.Score < minScore {
					minScore = p.Score
				}
			}
			for _, p := range players {
				if p.Score == minScore {
					p.Score++
				}
			}
		},
	},
}

// Source rolls and applies random events.
type Source struct {
	rng         *rand.Rand
	probability float64
	logger      *log.Logger
}

// New creates a source firing with the given probability per turn.
func New(rng *rand.Rand, probability float64, logger *log.Logger) *Source {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Source{rng: rng, probability: probability, logger: logger}
}

// Draw rolls once; on a hit it applies one random event to the manager.
func (s *Source) Draw(m *game.PlayerManager) {
	if s.rng.Float64() >= s.probability {
		s.logger.Info("no event this turn")
		return
	}
	ev := events[s.rng.IntN(len(events))]
	ev.apply(m)
	s.logger.Info("event drawn", "event", ev.name)
}
