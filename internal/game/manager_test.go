package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, ids ...string) *PlayerManager {
	t.Helper()
	m := NewPlayerManager()
	for _, id := range ids {
		require.NoError(t, m.AddPlayer(id))
	}
	return m
}

func totalScore(players []*Player) int {
	sum := 0
	for _, p := range players {
		sum += p.Score
	}
	return sum
}

func TestAddPlayerValidation(t *testing.T) {
	m := NewPlayerManager()

	require.NoError(t, m.AddPlayer("  alice  "))
	p, err := m.FindPlayer("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.ID)

	var gpErr *GameplayError
	assert.ErrorAs(t, m.AddPlayer("   "), &gpErr)
	assert.ErrorAs(t, m.AddPlayer(strings.Repeat("x", 15)), &gpErr)
	require.NoError(t, m.AddPlayer(strings.Repeat("x", 14)))

	assert.ErrorAs(t, m.AddPlayer("alice"), &gpErr)
	assert.Equal(t, 2, m.PlayerCount())
}

func TestRemovePlayerByPrefix(t *testing.T) {
	m := newTestManager(t, "aaa", "aab", "abb", "bcc")

	removed, err := m.RemovePlayer("aaa")
	require.NoError(t, err)
	assert.Equal(t, "aaa", removed)
	assert.Equal(t, 3, m.PlayerCount())

	removed, err = m.RemovePlayer("aa")
	require.NoError(t, err)
	assert.Equal(t, "aab", removed)

	p, err := m.FindPlayer("ab")
	require.NoError(t, err)
	assert.Equal(t, "abb", p.ID)

	_, err = m.FindPlayer("aa")
	var gpErr *GameplayError
	assert.ErrorAs(t, err, &gpErr)
}

func TestRankToScoreAwardsAndConservation(t *testing.T) {
	m := newTestManager(t, "a", "b", "c", "d")
	scores := map[string]int{"a": 40, "b": 30, "c": 20, "d": 10}
	for _, p := range m.Players() {
		p.Played = true
		p.PlayingScore = scores[p.ID]
	}

	before := totalScore(m.Players())
	m.EvaluatePlayingScore(nil)

	// ceil(4/2) = 2 for rank 0, decrementing, floored at 0.
	expected := map[string]int{"a": 2, "b": 1, "c": 0, "d": 0}
	awarded := 0
	for _, p := range m.Players() {
		require.NotNil(t, p.CurPt, p.ID)
		assert.Equal(t, expected[p.ID], *p.CurPt, p.ID)
		assert.Equal(t, expected[p.ID], p.Score, p.ID)
		awarded += *p.CurPt
	}
	assert.Equal(t, before+awarded, totalScore(m.Players()))

	// Best playing score holds rank 0.
	ranks := map[string]int{}
	for _, p := range m.Players() {
		ranks[p.ID] = p.Rank
	}
	assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}, ranks)
}

func TestRankToScoreTiesDecrementByPosition(t *testing.T) {
	m := newTestManager(t, "a", "b", "c")
	for _, p := range m.Players() {
		p.Played = true
		p.PlayingScore = 100 // everyone tied
	}
	m.EvaluatePlayingScore(nil)

	// Position, not score, drives the decrement: 2,1,0 despite the tie.
	pts := make([]int, 0, 3)
	for _, p := range m.Players() {
		pts = append(pts, *p.CurPt)
	}
	assert.Equal(t, []int{2, 1, 0}, pts)
}

func TestDefaultRankingCmp(t *testing.T) {
	a := &Player{ID: "a", Rank: -1}
	b := &Player{ID: "b", Rank: -1}

	a.PlayingScore, b.PlayingScore = 10, 20
	assert.Positive(t, defaultRankingCmp(a, b), "higher playing score ranks ahead")

	a.PlayingScore = 20
	a.Score, b.Score = 1, 5
	assert.Positive(t, defaultRankingCmp(a, b), "higher total score breaks playing-score ties")

	a.Score = 5
	assert.Negative(t, defaultRankingCmp(a, b), "id compare is the final tiebreak")
	assert.Positive(t, defaultRankingCmp(b, a))

	// Pre-assigned ranks dominate everything else.
	a.Rank, b.Rank = 3, 1
	assert.Positive(t, defaultRankingCmp(a, b))
}

func TestBetEvaluationPayouts(t *testing.T) {
	tests := []struct {
		name              string
		doubleReward      bool
		betFailedDecrease bool
		wantWin           int // reward for a 2-stake bet on the leader
		wantLose          int // reward for a 2-stake bet on a loser
	}{
		{"default", false, true, 2, -2},
		{"double reward", true, true, 4, -2},
		{"no loss on failure", false, false, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t, "top", "mid", "low")
			byID := map[string]*Player{}
			for _, p := range m.Players() {
				byID[p.ID] = p
			}
			byID["top"].Score = 10
			byID["mid"].Score = 5
			byID["low"].Score = 0

			byID["mid"].BetID = "top"
			byID["mid"].Stake = 2
			byID["low"].BetID = "mid"
			byID["low"].Stake = 2

			m.SetDoubleReward(tt.doubleReward)
			m.SetBetFailedDecrease(tt.betFailedDecrease)
			m.EvaluateBetScore(nil)

			require.NotNil(t, byID["mid"].BetReward)
			assert.Equal(t, tt.wantWin, *byID["mid"].BetReward)
			assert.Equal(t, 5+tt.wantWin, byID["mid"].Score)

			require.NotNil(t, byID["low"].BetReward)
			assert.Equal(t, tt.wantLose, *byID["low"].BetReward)
			assert.Equal(t, tt.wantLose, byID["low"].Score)

			assert.Nil(t, byID["top"].BetReward, "non-bettors record no reward")
		})
	}
}

func TestBetEvaluationIsolatedFromTargetGains(t *testing.T) {
	// Rewards are computed against the scores at settlement time, read
	// before any reward is applied.
	m := newTestManager(t, "a", "b")
	byID := map[string]*Player{}
	for _, p := range m.Players() {
		byID[p.ID] = p
	}
	byID["a"].Score = 3
	byID["b"].Score = 3
	byID["a"].BetID = "b"
	byID["a"].Stake = 1
	byID["b"].BetID = "a"
	byID["b"].Stake = 1

	m.EvaluateBetScore(nil)

	// Both targets held the max score, so both bets pay out.
	assert.Equal(t, 4, byID["a"].Score)
	assert.Equal(t, 4, byID["b"].Score)
}

func TestCardBoughtDeduct(t *testing.T) {
	m := newTestManager(t, "a", "b", "c")
	buyer, err := m.FindPlayer("a")
	require.NoError(t, err)
	buyer.Score = 5

	m.CardBoughtDeduct([]*Player{buyer})

	// ceil(3/2) = 2
	assert.Equal(t, 3, buyer.Score)
	require.NotNil(t, buyer.CardSpent)
	assert.Equal(t, 2, *buyer.CardSpent)
}

func TestBetDeductGatedByBettedDecrease(t *testing.T) {
	m := newTestManager(t, "a", "b")
	called := false
	hook := func(players []*Player) []*Player {
		called = true
		return players
	}

	m.SetBettedDecrease(false)
	m.EvaluateBetDeduct(hook)
	assert.False(t, called)

	m.SetBettedDecrease(true)
	m.EvaluateBetDeduct(hook)
	assert.True(t, called)
}

func TestResetTurnRestoresDefaults(t *testing.T) {
	m := newTestManager(t, "a", "b")
	m.SetDoubleReward(true)
	m.SetBetFailedDecrease(false)
	m.SetBettedDecrease(false)
	m.SetSetScoreHook(func(p *Player, score int) error { return Errorf("boom") })
	m.SetRankToScoreHook(func(sorted []*Player) {})

	p, err := m.FindPlayer("a")
	require.NoError(t, err)
	p.TookBet = true
	p.BetID = "b"
	p.Stake = 2
	p.Played = true
	p.PlayingScore = 99
	p.Score = 7

	m.ResetTurn()

	assert.False(t, m.doubleReward)
	assert.True(t, m.betFailedDecrease)
	assert.True(t, m.bettedDecrease)
	require.NoError(t, m.SetScore(p, 5))
	assert.Equal(t, 5, p.PlayingScore)

	assert.False(t, p.TookBet)
	assert.Empty(t, p.BetID)
	assert.Zero(t, p.Stake)
	assert.False(t, p.Played)
	assert.Equal(t, -1, p.Rank)
	assert.Equal(t, 7, p.Score, "score persists across turns")

	m.ResetRound()
	assert.Zero(t, p.Score, "score clears at round start")
}

func TestPostprocessSortsByFinalScore(t *testing.T) {
	m := newTestManager(t, "a", "b", "c")
	byID := map[string]*Player{}
	for _, p := range m.Players() {
		byID[p.ID] = p
	}
	byID["a"].Score = 1
	byID["b"].Score = 9
	byID["c"].Score = 4

	m.PostprocessBetScore(nil)

	order := []string{}
	for _, p := range m.Players() {
		order = append(order, p.ID)
	}
	assert.Equal(t, []string{"b", "c", "a"}, order)
}
