package game

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Status is the state-machine tag. It is the sole authority for which
// operations are currently legal.
type Status int

const (
	StatusUnavailable Status = iota
	StatusDrawEvent
	StatusDrawQuest
	StatusBet
	StatusPlay
	StatusCardDecide // transient, display-only
	StatusEvaluateScore
	StatusBetDeduct
	StatusEvaluateBet
	StatusEvaluateCard
	StatusFinished
)

var statusNames = map[Status]string{
	StatusUnavailable:   "unavailable",
	StatusDrawEvent:     "draw-event",
	StatusDrawQuest:     "draw-quest",
	StatusBet:           "bet",
	StatusPlay:          "play",
	StatusCardDecide:    "card-decide",
	StatusEvaluateScore: "evaluate-score",
	StatusBetDeduct:     "bet-deduct",
	StatusEvaluateBet:   "evaluate-bet",
	StatusEvaluateCard:  "evaluate-card",
	StatusFinished:      "finished",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// DefaultTurns is the round length when no option overrides it.
const DefaultTurns = 5

// Game sequences one round of the betting game: draw-event → draw-quest
// → bet → play → evaluate-score → evaluate-bet, repeated until the turn
// counter is exhausted. It owns the player manager and delegates quest,
// event, and card content to the configured sources.
type Game struct {
	logger  *log.Logger
	manager *PlayerManager
	quests  QuestSource
	events  EventSource
	cards   CardSource
	songs   SongCatalog

	roundTurns int // configured round length
	turns      int // turns remaining
	status     Status
	quest      Quest
	card       *Card // active card this turn, never nil
	proposed   *Card // candidate awaiting ApplyCard
	playerNum  int   // captured at Start
	winner     string
	hasWinner  bool
}

// Option configures a Game at construction time.
type Option func(*Game)

// WithTurns sets the round length.
func WithTurns(n int) Option {
	return func(g *Game) { g.roundTurns = n }
}

// WithQuestSource installs the quest pool.
func WithQuestSource(qs QuestSource) Option {
	return func(g *Game) { g.quests = qs }
}

// WithEventSource installs the random-event source.
func WithEventSource(es EventSource) Option {
	return func(g *Game) { g.events = es }
}

// WithCardSource installs the random-card source.
func WithCardSource(cs CardSource) Option {
	return func(g *Game) { g.cards = cs }
}

// WithSongCatalog installs the song/package catalog used to filter
// quest candidates.
func WithSongCatalog(sc SongCatalog) Option {
	return func(g *Game) { g.songs = sc }
}

// New creates a game in the unavailable state. A nil logger discards
// all output.
func New(logger *log.Logger, opts ...Option) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		logger:     logger,
		manager:    NewPlayerManager(),
		roundTurns: DefaultTurns,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.ResetRound(g.roundTurns)
	return g
}

// Manager returns the player manager.
func (g *Game) Manager() *PlayerManager { return g.manager }

// SetLogger swaps the game's logger, so a driver can tag each round's
// log lines. A nil logger is ignored.
func (g *Game) SetLogger(logger *log.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Status returns the current state-machine tag.
func (g *Game) Status() Status { return g.status }

// TurnsLeft returns the number of turns remaining in the round.
func (g *Game) TurnsLeft() int { return g.turns }

// CurrentQuest returns the quest drawn for this turn, nil before the
// draw.
func (g *Game) CurrentQuest() Quest { return g.quest }

// ActiveCard returns the card whose hooks drive this turn's pipeline.
func (g *Game) ActiveCard() *Card { return g.card }

// Finished reports whether the round is over.
func (g *Game) Finished() bool { return g.status == StatusFinished }

// Winner returns the comma-joined ids of every player tied for the
// maximum score, empty before the round finishes. The value is computed
// once and memoized.
func (g *Game) Winner() string {
	if g.hasWinner {
		return g.winner
	}
	if g.status != StatusFinished {
		return ""
	}
	maxScore := 0
	for i, p := range g.manager.Players() {
		if i == 0 || p.Score > maxScore {
			maxScore = p.Score
		}
	}
	var ids []string
	for _, p := range g.manager.Players() {
		if p.Score == maxScore {
			ids = append(ids, p.ID)
		}
	}
	g.winner = strings.Join(ids, ", ")
	g.hasWinner = true
	return g.winner
}

// ResetRound begins a new round of the given length: all scores are
// cleared and the game returns to the unavailable state awaiting Start.
func (g *Game) ResetRound(turns int) {
	g.roundTurns = turns
	g.turns = turns
	g.winner = ""
	g.hasWinner = false
	g.status = StatusUnavailable
	g.manager.ResetRound()
	g.resetTurn()
}

// resetTurn clears per-turn state and reinstalls the default card.
func (g *Game) resetTurn() {
	g.manager.ResetTurn()
	g.quest = nil
	g.proposed = nil
	g.card = g.defaultCard()
}

func (g *Game) defaultCard() *Card {
	if g.cards != nil {
		return g.cards.Default()
	}
	return &Card{}
}

func (g *Game) checkStatus(want Status) error {
	if g.status != want {
		return Errorf("invalid operation: status is %s, requires %s", g.status, want)
	}
	return nil
}

// betSlots counts consumed bet slots. A player contributes one slot for
// betting or passing and one more for queueing a card purchase, however
// many times either was repeated.
func (g *Game) betSlots() int {
	n := 0
	for _, p := range g.manager.Players() {
		if p.TookBet {
			n++
		}
		if p.CardQueued {
			n++
		}
	}
	return n
}

func (g *Game) playSlots() int {
	n := 0
	for _, p := range g.manager.Players() {
		if p.Played {
			n++
		}
	}
	return n
}

// Phase counters reaching the captured player count are the sole
// auto-advance signal, recomputed after every mutation.
func (g *Game) advanceAfterBet() {
	if g.betSlots() >= g.playerNum {
		g.status = StatusPlay
	}
}

func (g *Game) advanceAfterPlay() {
	if g.playSlots() >= g.playerNum {
		g.status = StatusEvaluateScore
	} else {
		g.status = StatusPlay
	}
}

// Enroll adds a player. Ids are trimmed, unique, and at most 14
// characters.
func (g *Game) Enroll(id string) error {
	if err := g.manager.AddPlayer(id); err != nil {
		return err
	}
	g.logger.Info("player enrolled", "id", strings.TrimSpace(id))
	return nil
}

// Remove removes the player the id resolves to. Removing mid-turn is
// the driver's responsibility.
func (g *Game) Remove(id string) error {
	removed, err := g.manager.RemovePlayer(id)
	if err != nil {
		return err
	}
	g.logger.Info("player removed", "id", removed)
	return nil
}

// AddQuests filters the quest candidates through the song catalog and
// replaces the quest pool's contents.
func (g *Game) AddQuests(list []Quest) error {
	if g.quests == nil {
		return Errorf("no quest pool configured")
	}
	if g.songs != nil {
		list = g.songs.Filter(list)
	}
	if len(list) == 0 {
		return Errorf("no quests left after catalog filtering")
	}
	g.quests.Set(list)
	g.logger.Info("quest pool loaded", "quests", len(list))
	return nil
}

// Enable enables a song package.
func (g *Game) Enable(pkg string) error {
	if g.songs == nil {
		return Errorf("no song catalog configured")
	}
	return g.songs.Enable(pkg)
}

// Disable disables a song package.
func (g *Game) Disable(pkg string) error {
	if g.songs == nil {
		return Errorf("no song catalog configured")
	}
	return g.songs.Disable(pkg)
}

// EnableAll enables all packages and/or difficulties.
func (g *Game) EnableAll(packages, difficulties bool) {
	if g.songs == nil {
		return
	}
	if packages {
		g.songs.EnableAllPackages()
	}
	if difficulties {
		g.songs.EnableAllDifficulties()
	}
}

// DisableAll disables all packages and/or difficulties.
func (g *Game) DisableAll(packages, difficulties bool) {
	if g.songs == nil {
		return
	}
	if packages {
		g.songs.DisableAllPackages()
	}
	if difficulties {
		g.songs.DisableAllDifficulties()
	}
}

// Start captures the player count and enters the first turn.
func (g *Game) Start() error {
	if g.manager.PlayerCount() == 0 {
		return Errorf("cannot start: no players enrolled")
	}
	g.playerNum = g.manager.PlayerCount()
	if g.cards != nil {
		g.cards.SetPlayerList(g.manager.Players())
	}
	g.status = StatusDrawEvent
	g.logger.Info("starting game", "turns", g.turns, "players", g.playerNum)
	return nil
}

// DrawEvent delegates to the random-event source and advances to the
// quest draw.
func (g *Game) DrawEvent() error {
	if err := g.checkStatus(StatusDrawEvent); err != nil {
		return err
	}
	if g.events != nil {
		g.events.Draw(g.manager)
	}
	g.status = StatusDrawQuest
	return nil
}

// DrawQuest draws the turn's quest. Calling it again during betting
// redraws, removing the previous quest from the pool first; the redraw
// window closes as soon as any bet slot is consumed.
func (g *Game) DrawQuest() error {
	if g.quests == nil {
		return Errorf("no quest pool configured")
	}
	redraw := false
	switch g.status {
	case StatusBet:
		if g.betSlots() > 0 {
			return Errorf("cannot redraw quest: some players have already bet")
		}
		if g.quests.Len() <= 1 {
			return Errorf("cannot redraw quest: pool is exhausted")
		}
		redraw = true
	case StatusDrawQuest:
	default:
		return g.checkStatus(StatusDrawQuest)
	}

	if redraw {
		g.quests.Remove(g.quest)
	}
	q, err := g.quests.Draw()
	if err != nil {
		return err
	}
	g.quest = q
	g.status = StatusBet
	if redraw {
		g.logger.Info("redrawing quest", "quest", q.Description())
	} else {
		g.logger.Info("drawing quest", "turnsLeft", g.turns, "quest", q.Description())
	}
	return nil
}

// checkBetWindow guards operations legal during betting or in the
// re-bet window at the start of the play phase.
func (g *Game) checkBetWindow(verb string) error {
	switch g.status {
	case StatusBet:
		return nil
	case StatusPlay:
		if g.playSlots() != 0 {
			return Errorf("cannot %s: some players have already played", verb)
		}
		return nil
	default:
		return g.checkStatus(StatusBet)
	}
}

// Bet places or edits a player's bet. An empty target passes. The first
// call from a player consumes a bet slot; later calls only overwrite the
// target and stake. The stake is clamped to [1, player count].
func (g *Game) Bet(playerID, targetID string, stake int) error {
	if err := g.checkBetWindow("re-bet"); err != nil {
		return err
	}
	p, err := g.manager.FindPlayer(playerID)
	if err != nil {
		return err
	}
	var target *Player
	if targetID != "" {
		target, err = g.manager.FindPlayer(targetID)
		if err != nil {
			return err
		}
		if target == p {
			return Errorf("player %s cannot bet on themself", p.ID)
		}
	}

	p.TookBet = true
	if target != nil {
		p.BetID = target.ID
		if g.manager.ForceMaxStake() {
			p.Stake = g.playerNum
		} else {
			p.Stake = clamp(stake, 1, g.playerNum)
		}
		g.logger.Info("bet placed", "player", p.ID, "target", target.ID, "stake", p.Stake)
	} else {
		p.BetID = ""
		p.Stake = 0
		g.logger.Info("bet passed", "player", p.ID)
	}
	g.advanceAfterBet()
	return nil
}

// DrawCard queues a player for a pending random-card purchase. The
// purchase consumes a bet slot (once per player per turn) and follows
// the same window as Bet.
func (g *Game) DrawCard(playerID string) error {
	if err := g.checkBetWindow("buy a card"); err != nil {
		return err
	}
	if g.cards == nil {
		return Errorf("random cards are not available")
	}
	p, err := g.manager.FindPlayer(playerID)
	if err != nil {
		return err
	}
	if !p.CardQueued {
		p.CardQueued = true
		g.cards.AddPending(p)
		g.logger.Info("card purchase queued", "player", p.ID)
	}
	g.advanceAfterBet()
	return nil
}

// ShowCard decides the pending random card, charges the buyers, and
// proposes the card to the driver. The game suspends in the card-decide
// state until ApplyCard answers.
func (g *Game) ShowCard() (*Card, error) {
	if g.status != StatusEvaluateScore {
		if err := g.checkStatus(StatusPlay); err != nil {
			return nil, err
		}
	}
	if g.cards == nil {
		return nil, Errorf("random cards are not available")
	}
	card, err := g.cards.Draw()
	if err != nil {
		return nil, err
	}
	g.manager.CardBoughtDeduct(card.Deducted)
	g.proposed = card
	g.status = StatusCardDecide
	g.logger.Info("card proposed", "user", card.User, "card", card.Description)
	return card, nil
}

// ApplyCard accepts or rejects the proposed card and returns to the
// play phase.
func (g *Game) ApplyCard(accept bool) error {
	if err := g.checkStatus(StatusCardDecide); err != nil {
		return err
	}
	if accept {
		g.card = g.proposed
		g.logger.Info("card accepted", "card", g.card.Description)
	} else {
		g.logger.Info("card rejected", "card", g.proposed.Description)
	}
	g.proposed = nil
	g.advanceAfterPlay()
	return nil
}

// Play submits a player's raw result through the active set-score hook.
// The first submission per player consumes a play slot; resubmission
// overwrites.
func (g *Game) Play(playerID string, score int) error {
	if g.status != StatusEvaluateScore {
		if err := g.checkStatus(StatusPlay); err != nil {
			return err
		}
	}
	p, err := g.manager.FindPlayer(playerID)
	if err != nil {
		return err
	}
	if err := g.manager.SetScore(p, score); err != nil {
		return err
	}
	p.Played = true
	g.logger.Info("play submitted", "player", p.ID, "score", score)
	g.advanceAfterPlay()
	return nil
}

// EvaluateScore runs the ranking stages of the pipeline.
func (g *Game) EvaluateScore() error {
	if err := g.checkStatus(StatusEvaluateScore); err != nil {
		return err
	}
	g.manager.PreprocessPlayingScore(g.card.PlayingScorePreprocess)
	g.manager.EvaluatePlayingScore(g.card.ScoreRankCmp)
	g.status = StatusBetDeduct
	g.logger.Debug("scores evaluated", "quest", g.questDescription())
	return nil
}

// EvaluateBet runs the bet stages of the pipeline, closes the turn, and
// either loops back to the event draw or finishes the round.
func (g *Game) EvaluateBet() error {
	if err := g.checkStatus(StatusBetDeduct); err != nil {
		return err
	}
	g.manager.PreprocessBetTarget(g.card.TargetRearrange)
	g.manager.EvaluateBetDeduct(g.card.BetDeduct)

	g.status = StatusEvaluateBet
	g.manager.PreprocessBetScore(g.card.BetScorePreprocess)
	g.manager.EvaluateBetScore(g.card.BetScoreEvaluate)

	g.status = StatusEvaluateCard
	g.manager.PostprocessBetScore(g.card.BetScorePostprocess)

	g.turns--
	if g.cards != nil {
		g.cards.SetPlayerList(g.manager.Players())
	}
	g.resetTurn()
	if g.turns <= 0 {
		g.status = StatusFinished
		g.logger.Info("round finished", "winner", g.Winner())
	} else {
		g.status = StatusDrawEvent
		g.logger.Info("turn complete", "turnsLeft", g.turns)
	}
	return nil
}

func (g *Game) questDescription() string {
	if g.quest == nil {
		return ""
	}
	return g.quest.Description()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
