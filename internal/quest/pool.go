// Package quest implements the random-draw quest pool.
package quest

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/questbet/internal/game"
)

// Quest is one song/difficulty target.
type Quest struct {
	song       string
	difficulty string
}

// New creates a quest.
func New(song, difficulty string) *Quest {
	return &Quest{song: song, difficulty: difficulty}
}

// Song returns the song title.
func (q *Quest) Song() string { return q.song }

// Difficulty returns the difficulty tag.
func (q *Quest) Difficulty() string { return q.difficulty }

// Description renders the quest for display and logs.
func (q *Quest) Description() string {
	return fmt.Sprintf("%s [%s]", q.song, q.difficulty)
}

// Pool draws quests at random. A drawn quest stays in the pool until
// Remove is called (the redraw path removes the rejected quest so it
// cannot come straight back).
type Pool struct {
	rng    *rand.Rand
	quests []game.Quest
}

// NewPool creates an empty pool drawing from rng.
func NewPool(rng *rand.Rand) *Pool {
	return &Pool{rng: rng}
}

// Set replaces the pool's contents.
func (p *Pool) Set(list []game.Quest) {
	p.quests = append(p.quests[:0], list...)
}

// Len returns the number of quests remaining.
func (p *Pool) Len() int { return len(p.quests) }

// Draw picks a random quest without removing it.
func (p *Pool) Draw() (game.Quest, error) {
	if len(p.quests) == 0 {
		return nil, game.Errorf("quest pool is empty")
	}
	return p.quests[p.rng.IntN(len(p.quests))], nil
}

// Remove deletes a previously drawn quest from the pool.
func (p *Pool) Remove(q game.Quest) {
	for i, cur := range p.quests {
		if cur == q {
			p.quests = append(p.quests[:i], p.quests[i+1:]...)
			return
		}
	}
}
