// Package display renders game state for the CLI driver and hosts the
// card accept/reject prompt. It is purely presentational and never
// mutates game state.
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/questbet/internal/game"
)

// Standings renders the player list best-first with the per-turn delta
// explanation baked into each player's String.
func Standings(players []*game.Player) string {
	ordered := make([]*game.Player, len(players))
	copy(ordered, players)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	var b strings.Builder
	b.WriteString(StandingsHeaderStyle.Render("Standings"))
	b.WriteByte('\n')
	for i, p := range ordered {
		line := fmt.Sprintf("%d. %s", i+1, p)
		if i == 0 {
			b.WriteString(LeaderStyle.Render(line))
		} else {
			b.WriteString(PlayerStyle.Render(line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// TurnSummary renders the current phase, turns left, and drawn quest.
func TurnSummary(g *game.Game) string {
	var b strings.Builder
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%d turn(s) left, phase: %s", g.TurnsLeft(), g.Status())))
	if q := g.CurrentQuest(); q != nil {
		b.WriteByte('\n')
		b.WriteString(QuestStyle.Render("Quest: " + q.Description()))
	}
	return b.String()
}

// Card renders a proposed or active card with its buyer list.
func Card(c *game.Card) string {
	var b strings.Builder
	if c.User != "" {
		b.WriteString(CardStyle.Render(fmt.Sprintf("%s gets card: %s", c.User, c.Description)))
	} else {
		b.WriteString(CardStyle.Render(c.Description))
	}
	for _, p := range c.Deducted {
		b.WriteByte('\n')
		b.WriteString(InfoStyle.Render("  charged: " + p.String()))
	}
	return b.String()
}
