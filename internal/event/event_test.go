package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/questbet/internal/game"
	"github.com/lox/questbet/internal/randutil"
)

func newManager(t *testing.T, ids ...string) *game.PlayerManager {
	t.Helper()
	m := game.NewPlayerManager()
	for _, id := range ids {
		require.NoError(t, m.AddPlayer(id))
	}
	return m
}

func TestZeroProbabilityNeverFires(t *testing.T) {
	m := newManager(t, "a", "b")
	s := New(randutil.New(7), 0, nil)

	for i := 0; i < 50; i++ {
		s.Draw(m)
	}
	assert.True(t, m.BettedDecrease(), "flags untouched")
	for _, p := range m.Players() {
		assert.Zero(t, p.Score)
	}
}

func TestFullProbabilityAlwaysFires(t *testing.T) {
	m := newManager(t, "a", "b", "c")
	s := New(randutil.New(7), 1, nil)

	// With a certain hit every draw, some event applies each turn. Run
	// enough draws that each of the four must have fired at least once
	// and check their observable effects.
	flagged := map[string]bool{}
	for i := 0; i < 200; i++ {
		m.ResetTurn()
		total := 0
		for _, p := range m.Players() {
			total += p.Score
		}
		s.Draw(m)

		after := 0
		for _, p := range m.Players() {
			after += p.Score
		}
		switch {
		case after > total:
			flagged["underdog"] = true
		case !m.BettedDecrease():
			flagged["gentle"] = true
		case m.ForceMaxStake():
			flagged["stakes"] = true
		default:
			flagged["reward"] = true
		}
	}
	assert.Len(t, flagged, 4, "all observable effect classes seen")
}

func TestUnderdogBonusLiftsEveryTiedMinimum(t *testing.T) {
	m := newManager(t, "a", "b", "c")
	m.Players()[0].Score = 5
	// b and c tied at zero.

	for _, ev := range events {
		if ev.name == "underdog bonus" {
			ev.apply(m)
		}
	}
	assert.Equal(t, 5, m.Players()[0].Score)
	assert.Equal(t, 1, m.Players()[1].Score)
	assert.Equal(t, 1, m.Players()[2].Score)
}

func TestHighStakesSetsTurnFlag(t *testing.T) {
	m := newManager(t, "a", "b")
	require.False(t, m.ForceMaxStake())

	for _, ev := range events {
		if ev.name == "high stakes" {
			ev.apply(m)
		}
	}
	assert.True(t, m.ForceMaxStake())
}

func TestEventEffectsAreTurnScoped(t *testing.T) {
	m := newManager(t, "a", "b")
	for _, ev := range events {
		ev.apply(m)
	}
	assert.False(t, m.BettedDecrease())
	assert.True(t, m.ForceMaxStake())

	m.ResetTurn()
	assert.True(t, m.BettedDecrease())
	assert.False(t, m.ForceMaxStake())
}

func TestDrawIsDeterministicPerSeed(t *testing.T) {
	run := func(seed int64) []int {
		m := newManager(t, "a", "b")
		s := New(randutil.New(seed), 0.5, nil)
		var scores []int
		for i := 0; i < 20; i++ {
			s.Draw(m)
			scores = append(scores, m.Players()[0].Score, m.Players()[1].Score)
		}
		return scores
	}
	assert.Equal(t, run(99), run(99))
}
