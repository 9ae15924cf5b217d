package game

import "fmt"

// Player is a per-participant record. Score persists across turns within
// a round; every other field is transient and cleared by ResetTurn. The
// optional pointer fields stay nil until the pipeline stage that owns
// them has run.
type Player struct {
	ID    string
	Score int

	// Betting phase
	TookBet    bool
	CardQueued bool
	BetID      string // empty when the player passed
	Stake      int

	// Play phase
	Played       bool
	PlayingScore int

	// Evaluation results
	Rank       int // -1 until ranked, 0 = best
	CurPt      *int
	Betted     *int
	BetReward  *int
	CardSpent  *int
	CardReward *int
}

// NewPlayer creates a player with a zero score.
func NewPlayer(id string) *Player {
	p := &Player{ID: id}
	p.ResetTurn()
	return p
}

// ResetRound clears the score and all transient state.
func (p *Player) ResetRound() {
	p.Score = 0
	p.ResetTurn()
}

// ResetTurn clears the transient per-turn fields.
func (p *Player) ResetTurn() {
	p.TookBet = false
	p.CardQueued = false
	p.BetID = ""
	p.Stake = 0
	p.Played = false
	p.PlayingScore = 0
	p.Rank = -1
	p.CurPt = nil
	p.Betted = nil
	p.BetReward = nil
	p.CardSpent = nil
	p.CardReward = nil
}

// String renders the player with an explanation of how the score changed
// this turn, reconstructing the prior score from the recorded deltas.
// Purely presentational; never mutates state.
func (p *Player) String() string {
	switch {
	case p.BetReward != nil && p.CardReward != nil:
		prior := p.Score - *p.BetReward - *p.CardReward
		return fmt.Sprintf("%s (%d%s%s=%d)", p.ID, prior, signed(*p.BetReward), signed(*p.CardReward), p.Score)
	case p.BetReward != nil:
		prior := p.Score - *p.BetReward
		return fmt.Sprintf("%s (%d%s=%d)", p.ID, prior, signed(*p.BetReward), p.Score)
	case p.Betted != nil:
		pt := 0
		if p.CurPt != nil {
			pt = *p.CurPt
		}
		prior := p.Score + *p.Betted - pt
		return fmt.Sprintf("%s (%d+%d-%d=%d)", p.ID, prior, pt, *p.Betted, p.Score)
	case p.CurPt != nil:
		return fmt.Sprintf("%s (%d+%d=%d)", p.ID, p.Score-*p.CurPt, *p.CurPt, p.Score)
	case p.CardSpent != nil:
		return fmt.Sprintf("%s (%d-%d=%d)", p.ID, p.Score+*p.CardSpent, *p.CardSpent, p.Score)
	default:
		return fmt.Sprintf("%s (%d)", p.ID, p.Score)
	}
}

func signed(n int) string {
	if n < 0 {
		return fmt.Sprintf("-%d", -n)
	}
	return fmt.Sprintf("+%d", n)
}
