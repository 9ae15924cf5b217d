package game

// The evaluation pipeline is parameterized by plain functions over the
// player collection. The active card supplies non-default behavior; a
// nil hook always means "use the default" (identity for the preprocess
// slots, the manager's built-in logic for the evaluate slots).

// PreprocessFunc rewrites or reorders the player list between stages.
type PreprocessFunc func(players []*Player) []*Player

// CompareFunc is a three-way ordering over two players. Negative means
// a ranks ahead of b.
type CompareFunc func(a, b *Player) int

// SetScoreFunc records a submitted raw result on a player.
type SetScoreFunc func(p *Player, score int) error

// RankToScoreFunc assigns ranks and rank points over the sorted list.
type RankToScoreFunc func(sorted []*Player)

// EvaluateFunc settles bets over the player list.
type EvaluateFunc func(players []*Player) []*Player

// Card is a data-only effect bundle: up to five pipeline hook overrides
// plus the bookkeeping needed to charge and display the purchase. The
// zero value is the no-op card.
type Card struct {
	User        string
	Description string
	Deducted    []*Player // buyers charged when the card was proposed

	PlayingScorePreprocess PreprocessFunc
	ScoreRankCmp           CompareFunc
	TargetRearrange        PreprocessFunc
	BetDeduct              PreprocessFunc
	BetScorePreprocess     PreprocessFunc
	BetScoreEvaluate       EvaluateFunc
	BetScorePostprocess    PreprocessFunc
}

// Quest is a drawn song/difficulty target. The core consumes only the
// description; the catalog filters on song and difficulty.
type Quest interface {
	Song() string
	Difficulty() string
	Description() string
}

// QuestSource is the random-draw pool the game pulls quests from.
type QuestSource interface {
	Set(list []Quest)
	Len() int
	Draw() (Quest, error)
	Remove(q Quest)
}

// EventSource applies a random per-turn event to the player manager.
type EventSource interface {
	Draw(m *PlayerManager)
}

// CardSource owns the random-card content and the pending purchase
// queue. Default returns the no-op card installed at the start of every
// turn; Draw decides the pending purchases and proposes one card.
type CardSource interface {
	Default() *Card
	AddPending(p *Player)
	Draw() (*Card, error)
	SetPlayerList(players []*Player)
}

// SongCatalog filters quest candidates by enabled packages and
// difficulties.
type SongCatalog interface {
	Enable(pkg string) error
	Disable(pkg string) error
	EnableAllPackages()
	DisableAllPackages()
	EnableAllDifficulties()
	DisableAllDifficulties()
	Filter(quests []Quest) []Quest
}
