package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/questbet/internal/game"
	"github.com/lox/questbet/internal/randutil"
)

func newPlayers(ids ...string) []*game.Player {
	out := make([]*game.Player, len(ids))
	for i, id := range ids {
		out[i] = game.NewPlayer(id)
	}
	return out
}

func TestDrawRequiresPendingBuyers(t *testing.T) {
	s := NewSource(randutil.New(1), nil)

	_, err := s.Draw()
	var gpErr *game.GameplayError
	require.ErrorAs(t, err, &gpErr)
	assert.Contains(t, err.Error(), "no pending card purchases")
}

func TestDrawChargesEveryBuyerAndClearsQueue(t *testing.T) {
	players := newPlayers("a", "b", "c")
	s := NewSource(randutil.New(1), nil)
	s.SetPlayerList(players)
	s.AddPending(players[0])
	s.AddPending(players[2])

	c, err := s.Draw()
	require.NoError(t, err)
	assert.Contains(t, []string{"a", "c"}, c.User)
	assert.Equal(t, []*game.Player{players[0], players[2]}, c.Deducted)

	_, err = s.Draw()
	require.Error(t, err, "queue cleared after a draw")
}

func TestDefaultCardIsInert(t *testing.T) {
	s := NewSource(randutil.New(1), nil)
	c := s.Default()
	assert.Equal(t, "no card", c.Description)
	assert.Nil(t, c.PlayingScorePreprocess)
	assert.Nil(t, c.ScoreRankCmp)
	assert.Nil(t, c.TargetRearrange)
	assert.Nil(t, c.BetDeduct)
	assert.Nil(t, c.BetScorePreprocess)
	assert.Nil(t, c.BetScoreEvaluate)
	assert.Nil(t, c.BetScorePostprocess)
}

func TestHandicapHalvesLeaderResult(t *testing.T) {
	players := newPlayers("a", "b", "c")
	players[0].Score = 3 // leader going into the turn
	players[0].PlayingScore = 100
	players[1].PlayingScore = 90
	players[2].PlayingScore = 80

	c := handicap(nil, players[0])
	c.PlayingScorePreprocess(players)

	assert.Equal(t, 50, players[0].PlayingScore)
	assert.Equal(t, 90, players[1].PlayingScore)
}

func TestReversalRanksWorstFirst(t *testing.T) {
	a, b := game.NewPlayer("a"), game.NewPlayer("b")
	a.PlayingScore = 100
	b.PlayingScore = 50

	c := reversal(nil, a)
	assert.Positive(t, c.ScoreRankCmp(a, b), "higher result sorts later")
	assert.Negative(t, c.ScoreRankCmp(b, a))

	b.PlayingScore = 100
	assert.Negative(t, c.ScoreRankCmp(a, b), "ties fall back to id order")
}

func TestShuffleRotatesBetTargets(t *testing.T) {
	players := newPlayers("a", "b", "c", "d")
	players[0].BetID = "b"
	players[1].BetID = "c"
	players[3].BetID = "a"
	// c passed and must keep an empty target.

	c := shuffle(nil, players[0])
	c.TargetRearrange(players)

	assert.Equal(t, "c", players[0].BetID)
	assert.Equal(t, "a", players[1].BetID)
	assert.Empty(t, players[2].BetID)
	assert.Equal(t, "b", players[3].BetID)
}

func TestShuffleNeverAssignsSelfBets(t *testing.T) {
	// Mutual bettors: every rotation of {b, a} over (a, b) would leave
	// both betting on themselves, so the targets must stay put.
	players := newPlayers("a", "b")
	players[0].BetID = "b"
	players[1].BetID = "a"

	c := shuffle(nil, players[0])
	c.TargetRearrange(players)

	assert.Equal(t, "b", players[0].BetID)
	assert.Equal(t, "a", players[1].BetID)
}

func TestShuffleSkipsRotationsWithSelfBets(t *testing.T) {
	// A one-step rotation would hand a its own id; the two-step one is
	// self-free and wins.
	players := newPlayers("a", "b", "c", "d")
	players[0].BetID = "b"
	players[1].BetID = "a"
	players[2].BetID = "d"
	players[3].BetID = "c"

	c := shuffle(nil, players[0])
	c.TargetRearrange(players)

	for _, p := range players {
		assert.NotEqual(t, p.ID, p.BetID)
	}
	assert.Equal(t, "d", players[0].BetID)
	assert.Equal(t, "c", players[1].BetID)
	assert.Equal(t, "b", players[2].BetID)
	assert.Equal(t, "a", players[3].BetID)
}

func TestShuffleNoOpWithOneBettor(t *testing.T) {
	players := newPlayers("a", "b")
	players[0].BetID = "b"

	c := shuffle(nil, players[0])
	c.TargetRearrange(players)
	assert.Equal(t, "b", players[0].BetID)
}

func TestTaxCollectorChargesPerBet(t *testing.T) {
	players := newPlayers("a", "b", "c")
	players[0].BetID = "c"
	players[1].BetID = "c"

	c := taxCollector(nil, players[0])
	c.BetDeduct(players)

	assert.Equal(t, -2, players[2].Score)
	require.NotNil(t, players[2].Betted)
	assert.Equal(t, 2, *players[2].Betted)
	assert.Nil(t, players[0].Betted)
	assert.Zero(t, players[0].Score)
}

func TestWindfallPaysOwnerHalfTableSize(t *testing.T) {
	players := newPlayers("a", "b", "c")
	owner := players[1]

	c := windfall(nil, owner)
	c.BetScorePostprocess(players)

	assert.Equal(t, 2, owner.Score)
	require.NotNil(t, owner.CardReward)
	assert.Equal(t, 2, *owner.CardReward)
	assert.Zero(t, players[0].Score)
}

func TestDeckDrawsCarryOwnerAndDescription(t *testing.T) {
	players := newPlayers("a", "b")
	s := NewSource(randutil.New(3), nil)
	s.SetPlayerList(players)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s.AddPending(players[0])
		c, err := s.Draw()
		require.NoError(t, err)
		assert.Equal(t, "a", c.User)
		require.NotEmpty(t, c.Description)
		seen[c.Description] = true
	}
	assert.Len(t, seen, len(deck), "every card in the deck can come up")
}
