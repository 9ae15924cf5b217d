// Package card implements the random-card source: a small deck of
// effect bundles, a pending purchase queue, and the draw that decides
// which buyer gets which card. Every effect is expressed as one of the
// five pipeline hook slots on game.Card.
package card

import (
	"io"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/questbet/internal/game"
)

// Source owns the card deck and the pending purchase queue.
type Source struct {
	rng     *rand.Rand
	logger  *log.Logger
	players []*game.Player
	pending []*game.Player
}

// NewSource creates a card source drawing from rng.
func NewSource(rng *rand.Rand, logger *log.Logger) *Source {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Source{rng: rng, logger: logger}
}

// Default returns the no-op card installed at the start of every turn.
func (s *Source) Default() *game.Card {
	return &game.Card{Description: "no card"}
}

// SetPlayerList hands the source the current player list. The game
// calls this at start and after every completed turn.
func (s *Source) SetPlayerList(players []*game.Player) {
	s.players = players
}

// AddPending queues a player for the next card decision.
func (s *Source) AddPending(p *game.Player) {
	s.pending = append(s.pending, p)
}

// Draw picks one queued buyer at random, rolls a card for them, and
// clears the queue. The returned card carries the full buyer list so
// the manager can charge everyone who queued.
func (s *Source) Draw() (*game.Card, error) {
	if len(s.pending) == 0 {
		return nil, game.Errorf("no pending card purchases")
	}
	user := s.pending[s.rng.IntN(len(s.pending))]
	deducted := s.pending
	s.pending = nil

	def := deck[s.rng.IntN(len(deck))]
	c := def.build(s, user)
	c.User = user.ID
	c.Deducted = deducted
	s.logger.Info("card drawn", "user", user.ID, "card", c.Description)
	return c, nil
}

type cardDef struct {
	build func(s *Source, user *game.Player) *game.Card
}

var deck = []cardDef{
	{build: handicap},
	{build: reversal},
	{build: shuffle},
	{build: taxCollector},
	{build: windfall},
}

// handicap halves the current leader's playing score before ranking.
func handicap(s *Source, user *game.Player) *game.Card {
	return &game.Card{
		Description: "Handicap: the current leader's result is halved before ranking",
		PlayingScorePreprocess: func(players []*game.Player) []*game.Player {
			if len(players) == 0 {
				return players
			}
			leader := players[0]
			for _, p := range players[1:] {
				if p.Score > leader.Score {
					leader = p
				}
			}
			leader.PlayingScore /= 2
			return players
		},
	}
}

// reversal ranks the worst result first.
func reversal(s *Source, user *game.Player) *game.Card {
	return &game.Card{
		Description: "Reversal: worst result ranks first",
		ScoreRankCmp: func(a, b *game.Player) int {
			if a.PlayingScore != b.PlayingScore {
				return a.PlayingScore - b.PlayingScore
			}
			return strings.Compare(a.ID, b.ID)
		},
	}
}

// shuffle rotates bet targets among the betting players. The smallest
// rotation that leaves nobody betting on themself is used; when every
// rotation would, the targets stay put.
func shuffle(s *Source, user *game.Player) *game.Card {
	return &game.Card{
		Description: "Shuffle: bet targets rotate among bettors",
		TargetRearrange: func(players []*game.Player) []*game.Player {
			var bettors []*game.Player
			for _, p := range players {
				if p.BetID != "" {
					bettors = append(bettors, p)
				}
			}
			n := len(bettors)
			if n < 2 {
				return players
			}
			targets := make([]string, n)
			for i, p := range bettors {
				targets[i] = p.BetID
			}
			for shift := 1; shift < n; shift++ {
				ok := true
				for i, p := range bettors {
					if targets[(i+shift)%n] == p.ID {
						ok = false
						break
					}
				}
				if !ok {
					continue
				}
				for i, p := range bettors {
					p.BetID = targets[(i+shift)%n]
				}
				break
			}
			return players
		},
	}
}

// taxCollector charges every bet target one point per bet placed on
// them, recording the count for display.
func taxCollector(s *Source, user *game.Player) *game.Card {
	return &game.Card{
		Description: "Tax Collector: bet targets lose 1 per bet placed on them",
		BetDeduct: func(players []*game.Player) []*game.Player {
			counts := make(map[string]int)
			for _, p := range players {
				if p.BetID != "" {
					counts[p.BetID]++
				}
			}
			for _, p := range players {
				if n, ok := counts[p.ID]; ok {
					betted := n
					p.Betted = &betted
					p.Score -= n
				}
			}
			return players
		},
	}
}

// windfall pays the card owner half the table size after bets settle.
func windfall(s *Source, user *game.Player) *game.Card {
	return &game.Card{
		Description: "Windfall: the card owner gains half the table size after bets settle",
		BetScorePostprocess: func(players []*game.Player) []*game.Player {
			bonus := (len(players) + 1) / 2
			user.Score += bonus
			reward := bonus
			user.CardReward = &reward
			return players
		},
	}
}
