package game

import (
	"sort"
	"strings"

	"github.com/lox/questbet/internal/trie"
)

// PlayerManager owns the ordered player list and the prefix index, and
// runs the per-turn evaluation pipeline. Hook slots and payout flags are
// per-turn configuration rebuilt by ResetTurn, so a card or event can
// only ever influence the turn it was drawn in.
type PlayerManager struct {
	players []*Player
	index   *trie.Index[*Player]

	// Per-turn configuration, rebuilt by ResetTurn.
	bettedDecrease    bool
	betFailedDecrease bool
	doubleReward      bool
	forceMaxStake     bool
	setScore          SetScoreFunc
	rankingCmp        CompareFunc
	rankToScore       RankToScoreFunc
}

// NewPlayerManager creates an empty manager with default hooks installed.
func NewPlayerManager() *PlayerManager {
	m := &PlayerManager{index: trie.New[*Player]()}
	m.ResetTurn()
	return m
}

// Players returns the ordered player list. The slice is shared; callers
// must not retain it across pipeline stages.
func (m *PlayerManager) Players() []*Player {
	return m.players
}

// PlayerCount returns the number of enrolled players.
func (m *PlayerManager) PlayerCount() int {
	return len(m.players)
}

// ResetRound zeroes every score and re-enters ResetTurn.
func (m *PlayerManager) ResetRound() {
	for _, p := range m.players {
		p.ResetRound()
	}
	m.ResetTurn()
}

// ResetTurn clears every player's transient fields and reinstalls the
// default hooks and payout flags.
func (m *PlayerManager) ResetTurn() {
	for _, p := range m.players {
		p.ResetTurn()
	}
	m.bettedDecrease = true
	m.betFailedDecrease = true
	m.doubleReward = false
	m.forceMaxStake = false
	m.setScore = defaultSetScore
	m.rankingCmp = defaultRankingCmp
	m.rankToScore = m.defaultRankToScore
}

// AddPlayer enrolls a new player. The id is trimmed of surrounding
// whitespace and must be unique, non-empty, and at most trie.MaxIDLen
// characters.
func (m *PlayerManager) AddPlayer(id string) error {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > trie.MaxIDLen {
		return Errorf("player id must be 1-%d characters", trie.MaxIDLen)
	}
	p := NewPlayer(id)
	if err := m.index.Insert(id, p); err != nil {
		return wrapf(err, "cannot enroll %q", id)
	}
	m.players = append(m.players, p)
	return nil
}

// RemovePlayer removes the player the id or unambiguous prefix resolves
// to and returns the removed id.
func (m *PlayerManager) RemovePlayer(id string) (string, error) {
	removed, err := m.index.Delete(strings.TrimSpace(id))
	if err != nil {
		return "", wrapf(err, "cannot remove %q", id)
	}
	for i, p := range m.players {
		if p.ID == removed {
			m.players = append(m.players[:i], m.players[i+1:]...)
			break
		}
	}
	return removed, nil
}

// FindPlayer resolves an id or unambiguous prefix to a player.
func (m *PlayerManager) FindPlayer(id string) (*Player, error) {
	p, err := m.index.Find(strings.TrimSpace(id))
	if err != nil {
		return nil, wrapf(err, "cannot resolve player %q", id)
	}
	return p, nil
}

// SetDoubleReward toggles doubled payouts for successful bets this turn.
func (m *PlayerManager) SetDoubleReward(v bool) { m.doubleReward = v }

// SetBetFailedDecrease toggles whether failed bets lose their stake.
func (m *PlayerManager) SetBetFailedDecrease(v bool) { m.betFailedDecrease = v }

// SetBettedDecrease toggles target-side deductions for the bet-deduct
// stage. The flag only shapes card-supplied deduct hooks; the manager
// itself applies no deduction.
func (m *PlayerManager) SetBettedDecrease(v bool) { m.bettedDecrease = v }

// BettedDecrease reports whether target-side deductions apply this turn.
func (m *PlayerManager) BettedDecrease() bool { return m.bettedDecrease }

// SetForceMaxStake toggles high-stakes mode: every bet placed this turn
// is staked at the clamp ceiling regardless of the requested amount.
func (m *PlayerManager) SetForceMaxStake(v bool) { m.forceMaxStake = v }

// ForceMaxStake reports whether high-stakes mode is on this turn.
func (m *PlayerManager) ForceMaxStake() bool { return m.forceMaxStake }

// SetScore records a raw play result through the active set-score hook.
func (m *PlayerManager) SetScore(p *Player, score int) error {
	return m.setScore(p, score)
}

// SetSetScoreHook overrides the set-score hook for this turn.
func (m *PlayerManager) SetSetScoreHook(fn SetScoreFunc) {
	if fn != nil {
		m.setScore = fn
	}
}

// SetRankToScoreHook overrides the rank-to-score mapper for this turn.
func (m *PlayerManager) SetRankToScoreHook(fn RankToScoreFunc) {
	if fn != nil {
		m.rankToScore = fn
	}
}

func defaultSetScore(p *Player, score int) error {
	p.PlayingScore = score
	return nil
}

// defaultRankingCmp orders players best-first: by existing rank when both
// are ranked and differ, then higher playing score, then higher total
// score, then id. The id fallback is a full lexicographic compare so the
// order is deterministic under any sort algorithm.
func defaultRankingCmp(a, b *Player) int {
	if a.Rank >= 0 && b.Rank >= 0 && a.Rank != b.Rank {
		return a.Rank - b.Rank
	}
	if a.PlayingScore != b.PlayingScore {
		return b.PlayingScore - a.PlayingScore
	}
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	return strings.Compare(a.ID, b.ID)
}

// defaultRankToScore awards ceil(n/2) points to rank 0, one less per
// subsequent position, floored at zero. Position, not score, drives the
// decrement: tied results still receive strictly decreasing points.
func (m *PlayerManager) defaultRankToScore(sorted []*Player) {
	pt := (len(sorted) + 1) / 2
	for i, p := range sorted {
		cur := pt
		p.Rank = i
		p.CurPt = &cur
		p.Score += cur
		if pt > 0 {
			pt--
		}
	}
}

// defaultBetEvaluate settles bets against the turn's best final score.
// A bet on a player holding the maximum score pays the stake (doubled
// under double reward); any other bet loses the stake when failed bets
// decrease, and pays nothing otherwise.
func (m *PlayerManager) defaultBetEvaluate(players []*Player) []*Player {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})
	if len(players) == 0 {
		return players
	}
	maxScore := players[0].Score

	rewards := make([]int, len(players))
	for i, p := range players {
		if p.BetID == "" {
			continue
		}
		target, err := m.FindPlayer(p.BetID)
		if err != nil {
			continue // target removed mid-turn
		}
		switch {
		case target.Score == maxScore && m.doubleReward:
			rewards[i] = p.Stake * 2
		case target.Score == maxScore:
			rewards[i] = p.Stake
		case m.betFailedDecrease:
			rewards[i] = -p.Stake
		}
	}
	for i, p := range players {
		if p.BetID == "" {
			continue
		}
		r := rewards[i]
		p.BetReward = &r
		p.Score += r
	}
	return players
}

// CardBoughtDeduct charges every queued card buyer the buy-in of
// ceil(n/2) points.
func (m *PlayerManager) CardBoughtDeduct(deducted []*Player) {
	if len(deducted) == 0 {
		return
	}
	half := (len(m.players) + 1) / 2
	for _, p := range deducted {
		p.Score -= half
		spent := half
		p.CardSpent = &spent
	}
}

// PreprocessPlayingScore lets the active card rewrite or reorder players
// before ranking.
func (m *PlayerManager) PreprocessPlayingScore(fn PreprocessFunc) {
	m.applyPreprocess(fn)
}

// EvaluatePlayingScore stable-sorts players best-first by cmp (the
// turn's ranking comparator when cmp is nil) and maps the resulting
// positions to rank points.
func (m *PlayerManager) EvaluatePlayingScore(cmp CompareFunc) {
	if cmp == nil {
		cmp = m.rankingCmp
	}
	sort.SliceStable(m.players, func(i, j int) bool {
		return cmp(m.players[i], m.players[j]) < 0
	})
	m.rankToScore(m.players)
}

// PreprocessBetTarget lets the active card rearrange bet targets before
// deduction.
func (m *PlayerManager) PreprocessBetTarget(fn PreprocessFunc) {
	m.applyPreprocess(fn)
}

// EvaluateBetDeduct applies the card-supplied target-side deduction.
// There is no built-in behavior; a nil hook passes the list through,
// and the turn's betted-decrease flag gates the hook entirely.
func (m *PlayerManager) EvaluateBetDeduct(fn PreprocessFunc) {
	if !m.bettedDecrease {
		return
	}
	m.applyPreprocess(fn)
}

// PreprocessBetScore runs the card hook ahead of bet settlement.
func (m *PlayerManager) PreprocessBetScore(fn PreprocessFunc) {
	m.applyPreprocess(fn)
}

// EvaluateBetScore settles bets, using the built-in evaluation when fn
// is nil.
func (m *PlayerManager) EvaluateBetScore(fn EvaluateFunc) {
	if fn == nil {
		fn = m.defaultBetEvaluate
	}
	m.players = fn(m.players)
}

// PostprocessBetScore runs the final card hook, then re-sorts players
// descending by final score for a stable end-of-turn ordering.
func (m *PlayerManager) PostprocessBetScore(fn PreprocessFunc) {
	m.applyPreprocess(fn)
	sort.SliceStable(m.players, func(i, j int) bool {
		return m.players[i].Score > m.players[j].Score
	})
}

func (m *PlayerManager) applyPreprocess(fn PreprocessFunc) {
	if fn == nil {
		return
	}
	m.players = fn(m.players)
}
