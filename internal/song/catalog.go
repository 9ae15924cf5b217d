// Package song provides the song/package catalog and its enable/disable
// filtering. The catalog decides which quest candidates are playable;
// the quest pool only ever sees the filtered list.
package song

import (
	"strings"

	"github.com/lox/questbet/internal/game"
)

// Song is a catalog entry: a title, the package it ships in, and the
// difficulty tags it can be played at.
type Song struct {
	Title        string
	Package      string
	Difficulties []string
}

// Catalog holds packages of songs with per-package and per-difficulty
// enable switches. New packages are enabled by default.
type Catalog struct {
	gameType     string
	songs        map[string]Song // title -> entry
	packages     map[string][]string
	difficulties []string
	enabledPkg   map[string]bool
	enabledDiff  map[string]bool
}

// NewCatalog builds the built-in catalog for a game type ("arcaea" or
// "phigros") with everything enabled.
func NewCatalog(gameType string) (*Catalog, error) {
	var entries []Song
	var diffs []string
	switch strings.ToLower(gameType) {
	case "arcaea":
		entries, diffs = arcaeaSongs, arcaeaDifficulties
	case "phigros":
		entries, diffs = phigrosSongs, phigrosDifficulties
	default:
		return nil, game.Errorf("unsupported game type %q: only arcaea and phigros are supported", gameType)
	}
	c := &Catalog{
		gameType:     strings.ToLower(gameType),
		songs:        make(map[string]Song),
		packages:     make(map[string][]string),
		difficulties: diffs,
		enabledPkg:   make(map[string]bool),
		enabledDiff:  make(map[string]bool),
	}
	for _, d := range diffs {
		c.enabledDiff[d] = true
	}
	for _, s := range entries {
		c.add(s)
	}
	return c, nil
}

// GameType returns the catalog's game type.
func (c *Catalog) GameType() string { return c.gameType }

// AddPackage registers (or extends) a package of songs, enabled by
// default. Config-supplied packages come through here.
func (c *Catalog) AddPackage(name string, songs []Song) {
	for _, s := range songs {
		s.Package = name
		c.add(s)
	}
}

func (c *Catalog) add(s Song) {
	if len(s.Difficulties) == 0 {
		s.Difficulties = c.difficulties
	}
	c.songs[s.Title] = s
	c.packages[s.Package] = append(c.packages[s.Package], s.Title)
	if _, ok := c.enabledPkg[s.Package]; !ok {
		c.enabledPkg[s.Package] = true
	}
	for _, d := range s.Difficulties {
		if _, ok := c.enabledDiff[d]; !ok {
			c.enabledDiff[d] = true
		}
	}
}

// Packages lists the known package names.
func (c *Catalog) Packages() []string {
	names := make([]string, 0, len(c.packages))
	for name := range c.packages {
		names = append(names, name)
	}
	return names
}

// Enable enables one package.
func (c *Catalog) Enable(pkg string) error {
	if _, ok := c.packages[pkg]; !ok {
		return game.Errorf("unknown package %q", pkg)
	}
	c.enabledPkg[pkg] = true
	return nil
}

// Disable disables one package.
func (c *Catalog) Disable(pkg string) error {
	if _, ok := c.packages[pkg]; !ok {
		return game.Errorf("unknown package %q", pkg)
	}
	c.enabledPkg[pkg] = false
	return nil
}

// EnableDifficulty enables one difficulty tag.
func (c *Catalog) EnableDifficulty(d string) error {
	if _, ok := c.enabledDiff[d]; !ok {
		return game.Errorf("unknown difficulty %q", d)
	}
	c.enabledDiff[d] = true
	return nil
}

// DisableDifficulty disables one difficulty tag.
func (c *Catalog) DisableDifficulty(d string) error {
	if _, ok := c.enabledDiff[d]; !ok {
		return game.Errorf("unknown difficulty %q", d)
	}
	c.enabledDiff[d] = false
	return nil
}

// EnableAllPackages enables every package.
func (c *Catalog) EnableAllPackages() { c.setAllPkg(true) }

// DisableAllPackages disables every package.
func (c *Catalog) DisableAllPackages() { c.setAllPkg(false) }

// EnableAllDifficulties enables every difficulty.
func (c *Catalog) EnableAllDifficulties() { c.setAllDiff(true) }

// DisableAllDifficulties disables every difficulty.
func (c *Catalog) DisableAllDifficulties() { c.setAllDiff(false) }

func (c *Catalog) setAllPkg(v bool) {
	for name := range c.enabledPkg {
		c.enabledPkg[name] = v
	}
}

func (c *Catalog) setAllDiff(v bool) {
	for name := range c.enabledDiff {
		c.enabledDiff[name] = v
	}
}

// Filter keeps only quests whose song is in an enabled package, whose
// difficulty is enabled, and which the song actually offers. Unknown
// songs are dropped.
func (c *Catalog) Filter(quests []game.Quest) []game.Quest {
	var out []game.Quest
	for _, q := range quests {
		s, ok := c.songs[q.Song()]
		if !ok || !c.enabledPkg[s.Package] || !c.enabledDiff[q.Difficulty()] {
			continue
		}
		offered := false
		for _, d := range s.Difficulties {
			if d == q.Difficulty() {
				offered = true
				break
			}
		}
		if offered {
			out = append(out, q)
		}
	}
	return out
}
