// Package config loads the questbet HCL configuration: game settings,
// extra song packages, and the quest list.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete configuration file.
type Config struct {
	Game     GameSettings    `hcl:"game,block"`
	Packages []PackageConfig `hcl:"package,block"`
	Quests   []QuestConfig   `hcl:"quest,block"`
}

// GameSettings contains game-level configuration. EventProbability is a
// pointer because zero is a meaningful setting (events off) and must be
// distinguishable from the attribute being absent.
type GameSettings struct {
	Type             string   `hcl:"type,optional"`
	Turns            int      `hcl:"turns,optional"`
	EventProbability *float64 `hcl:"event_probability,optional"`
	RandomCard       bool     `hcl:"random_card,optional"`
	LogLevel         string   `hcl:"log_level,optional"`
	LogFile          string   `hcl:"log_file,optional"`
}

// PackageConfig adds a song package to the built-in catalog.
type PackageConfig struct {
	Name  string       `hcl:"name,label"`
	Songs []SongConfig `hcl:"song,block"`
}

// SongConfig is one song in a config-supplied package.
type SongConfig struct {
	Title        string   `hcl:"title,label"`
	Difficulties []string `hcl:"difficulties,optional"`
}

// QuestConfig is one quest candidate for the pool.
type QuestConfig struct {
	Song       string `hcl:"song,label"`
	Difficulty string `hcl:"difficulty"`
}

// Default returns the default configuration: a five-turn arcaea game
// with events every other turn, cards on, and a starter quest list over
// the built-in base package.
func Default() *Config {
	prob := 0.5
	return &Config{
		Game: GameSettings{
			Type:             "arcaea",
			Turns:            5,
			EventProbability: &prob,
			RandomCard:       true,
			LogLevel:         "info",
			LogFile:          "questbet.log",
		},
		Quests: []QuestConfig{
			{Song: "Sayonara Hatsukoi", Difficulty: "FTR"},
			{Song: "Fairytale", Difficulty: "FTR"},
			{Song: "Grimheart", Difficulty: "FTR"},
			{Song: "Lost Civilization", Difficulty: "FTR"},
			{Song: "Tempestissimo", Difficulty: "FTR"},
			{Song: "Dantalion", Difficulty: "FTR"},
			{Song: "Fracture Ray", Difficulty: "FTR"},
			{Song: "Grievous Lady", Difficulty: "FTR"},
			{Song: "Singularity", Difficulty: "FTR"},
			{Song: "Cyanine", Difficulty: "FTR"},
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; a present file is decoded and backfilled with defaults for
// unset game settings.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.Game.Type == "" {
		cfg.Game.Type = def.Game.Type
	}
	if cfg.Game.Turns == 0 {
		cfg.Game.Turns = def.Game.Turns
	}
	if cfg.Game.EventProbability == nil {
		cfg.Game.EventProbability = def.Game.EventProbability
	}
	if cfg.Game.LogLevel == "" {
		cfg.Game.LogLevel = def.Game.LogLevel
	}
	if cfg.Game.LogFile == "" {
		cfg.Game.LogFile = def.Game.LogFile
	}
	if len(cfg.Quests) == 0 && cfg.Game.Type == def.Game.Type {
		cfg.Quests = def.Quests
	}
	return &cfg, nil
}
