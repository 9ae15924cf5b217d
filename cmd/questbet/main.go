package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/questbet/internal/card"
	"github.com/lox/questbet/internal/config"
	"github.com/lox/questbet/internal/display"
	"github.com/lox/questbet/internal/event"
	"github.com/lox/questbet/internal/fileutil"
	"github.com/lox/questbet/internal/game"
	"github.com/lox/questbet/internal/quest"
	"github.com/lox/questbet/internal/randutil"
	"github.com/lox/questbet/internal/roundid"
	"github.com/lox/questbet/internal/song"
	"github.com/lox/questbet/internal/stats"
)

type CLI struct {
	Config string `short:"c" help:"Path to HCL config file" default:"questbet.hcl"`
	Game   string `short:"g" help:"Game catalog (arcaea or phigros), overrides config"`
	Turns  int    `short:"t" help:"Turns per round, overrides config"`
	Seed   int64  `short:"s" help:"Random seed (0 = time-based)"`
	Debug  bool   `short:"d" help:"Enable debug logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	fmt.Print(display.TitleStyle.Render(" ♪ QuestBet ♪ "))
	fmt.Println()
	fmt.Println()

	if err := run(cli); err != nil {
		log.Fatal("Failed to run game", "error", err)
	}
	ctx.Exit(0)
}

func run(cli CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if cli.Game != "" {
		cfg.Game.Type = cli.Game
	}
	if cli.Turns > 0 {
		cfg.Game.Turns = cli.Turns
	}
	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Log to a file so the prompt stays clean.
	logFile, err := os.OpenFile(cfg.Game.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	level := log.InfoLevel
	if cli.Debug || cfg.Game.LogLevel == "debug" {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "GAME",
	})
	logger.Info("starting questbet", "type", cfg.Game.Type, "turns", cfg.Game.Turns, "seed", seed)

	catalog, err := song.NewCatalog(cfg.Game.Type)
	if err != nil {
		return err
	}
	for _, pkg := range cfg.Packages {
		var songs []song.Song
		for _, s := range pkg.Songs {
			songs = append(songs, song.Song{Title: s.Title, Difficulties: s.Difficulties})
		}
		catalog.AddPackage(pkg.Name, songs)
	}

	rng := randutil.New(seed)
	pool := quest.NewPool(rng)

	opts := []game.Option{
		game.WithTurns(cfg.Game.Turns),
		game.WithQuestSource(pool),
		game.WithSongCatalog(catalog),
		game.WithEventSource(event.New(rng, *cfg.Game.EventProbability, logger)),
	}
	if cfg.Game.RandomCard {
		opts = append(opts, game.WithCardSource(card.NewSource(rng, logger)))
	}
	g := game.New(logger, opts...)

	var quests []game.Quest
	for _, q := range cfg.Quests {
		quests = append(quests, quest.New(q.Song, q.Difficulty))
	}
	if len(quests) > 0 {
		if err := g.AddQuests(quests); err != nil {
			fmt.Println(display.ErrorStyle.Render(err.Error()))
		}
	}

	a := &app{
		g:       g,
		catalog: catalog,
		session: stats.NewSession(),
		ids:     roundid.NewGenerator(rng),
		logger:  logger,
		turns:   cfg.Game.Turns,
	}
	return a.repl()
}

// app holds the REPL's session state: the game, the catalog, and the
// cross-round statistics.
type app struct {
	g        *game.Game
	catalog  *song.Catalog
	session  *stats.Session
	ids      *roundid.Generator
	logger   *log.Logger
	turns    int
	recorded bool
}

func (a *app) repl() error {
	fmt.Println(display.InfoStyle.Render("Type 'help' for commands."))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := a.dispatch(cmd, args); err != nil {
			fmt.Println(display.ErrorStyle.Render(err.Error()))
		}
		if a.g.Finished() {
			if !a.recorded {
				a.recordRound()
			}
			fmt.Println(display.SuccessStyle.Render("Winner: " + a.g.Winner()))
		}
	}
}

// recordRound feeds the finished round into the session statistics.
func (a *app) recordRound() {
	scores := make(map[string]int)
	for _, p := range a.g.Manager().Players() {
		scores[p.ID] = p.Score
	}
	a.session.Record(scores, strings.Split(a.g.Winner(), ", "))
	a.recorded = true
}

// exportStandings writes the standings as plain text, atomically so a
// watcher never reads a half-written file.
func (a *app) exportStandings(path string) error {
	var b strings.Builder
	players := a.g.Manager().Players()
	for i, p := range players {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("export standings: %w", err)
	}
	fmt.Println(display.InfoStyle.Render("standings written to " + path))
	return nil
}

func (a *app) dispatch(cmd string, args []string) error {
	g, catalog := a.g, a.catalog
	switch cmd {
	case "help":
		printHelp()
	case "enroll":
		if len(args) != 1 {
			return fmt.Errorf("usage: enroll <id>")
		}
		return g.Enroll(args[0])
	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("usage: remove <id>")
		}
		return g.Remove(args[0])
	case "packages":
		for _, name := range catalog.Packages() {
			fmt.Println(display.PlayerStyle.Render(name))
		}
	case "enable":
		if len(args) < 1 {
			return fmt.Errorf("usage: enable <package>")
		}
		return g.Enable(strings.Join(args, " "))
	case "disable":
		if len(args) < 1 {
			return fmt.Errorf("usage: disable <package>")
		}
		return g.Disable(strings.Join(args, " "))
	case "enable-all":
		g.EnableAll(true, true)
	case "disable-all":
		g.DisableAll(true, true)
	case "start":
		rid := a.ids.New()
		g.SetLogger(a.logger.With("round", rid))
		if err := g.Start(); err != nil {
			return err
		}
		fmt.Println(display.TurnSummary(g))
	case "again":
		turns := a.turns
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("usage: again [turns]")
			}
			turns = n
		}
		g.ResetRound(turns)
		a.recorded = false
		fmt.Println(display.InfoStyle.Render("new round ready, 'start' when set"))
	case "stats":
		fmt.Println(display.InfoStyle.Render(a.session.String()))
	case "export":
		if len(args) != 1 {
			return fmt.Errorf("usage: export <file>")
		}
		return a.exportStandings(args[0])
	case "event":
		if err := g.DrawEvent(); err != nil {
			return err
		}
		fmt.Println(display.TurnSummary(g))
	case "quest":
		if err := g.DrawQuest(); err != nil {
			return err
		}
		fmt.Println(display.TurnSummary(g))
	case "bet":
		if len(args) != 3 {
			return fmt.Errorf("usage: bet <player> <target> <stake>")
		}
		stake, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("stake must be an integer: %w", err)
		}
		return g.Bet(args[0], args[1], stake)
	case "pass":
		if len(args) != 1 {
			return fmt.Errorf("usage: pass <player>")
		}
		return g.Bet(args[0], "", 0)
	case "card":
		if len(args) != 1 {
			return fmt.Errorf("usage: card <player>")
		}
		return g.DrawCard(args[0])
	case "show":
		proposed, err := g.ShowCard()
		if err != nil {
			return err
		}
		fmt.Println(display.Card(proposed))
		accept, err := display.Confirm("Use this card?")
		if err != nil {
			return err
		}
		return g.ApplyCard(accept)
	case "play":
		if len(args) != 2 {
			return fmt.Errorf("usage: play <player> <score>")
		}
		score, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("score must be an integer: %w", err)
		}
		return g.Play(args[0], score)
	case "eval":
		if err := g.EvaluateScore(); err != nil {
			return err
		}
		fmt.Println(display.Standings(g.Manager().Players()))
	case "settle":
		if err := g.EvaluateBet(); err != nil {
			return err
		}
		fmt.Println(display.Standings(g.Manager().Players()))
	case "standings":
		fmt.Println(display.Standings(g.Manager().Players()))
	case "status":
		fmt.Println(display.TurnSummary(g))
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
	return nil
}

func printHelp() {
	help := []string{
		"enroll <id>            add a player (max 14 characters)",
		"remove <id>            remove a player (prefix ok)",
		"packages               list song packages",
		"enable <package>       enable a song package",
		"disable <package>      disable a song package",
		"enable-all             enable all packages and difficulties",
		"disable-all            disable all packages and difficulties",
		"start                  start the round",
		"event                  draw the turn's random event",
		"quest                  draw (or redraw) the turn's quest",
		"bet <p> <target> <n>   bet n points on target",
		"pass <p>               take no bet this turn",
		"card <p>               queue a random-card purchase",
		"show                   decide and confirm the pending card",
		"play <p> <score>       submit a play result",
		"eval                   evaluate play scores",
		"settle                 settle bets and close the turn",
		"standings              show the standings",
		"status                 show phase and quest",
		"again [turns]          reset scores and ready a new round",
		"stats                  show cross-round session statistics",
		"export <file>          write the standings to a file",
		"quit                   leave",
	}
	for _, line := range help {
		fmt.Println(display.InfoStyle.Render(line))
	}
}
