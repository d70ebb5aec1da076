package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/turn-timer/internal/models"
)

// PlayerConfig is one seat of the starting roster.
type PlayerConfig struct {
	Name    string `yaml:"name"`
	Color   string `yaml:"color"`
	Faction string `yaml:"faction"`
}

// Roster is the YAML file describing the table.
type Roster struct {
	Rounds  int            `yaml:"rounds"`
	Players []PlayerConfig `yaml:"players"`
}

// Config holds the application configuration.
type Config struct {
	Rounds   int
	Players  []PlayerConfig
	LogLevel logrus.Level
	LogFile  string
}

// DefaultPlayers is the roster used when no roster file is given.
var DefaultPlayers = []PlayerConfig{
	{Name: "Sean", Color: "gray"},
	{Name: "Ryan", Color: "red"},
	{Name: "Alan", Color: "blue"},
}

// LoadConfig loads the configuration from a .env file (if present), the
// environment and the roster file named by TIMER_ROSTER.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given variable lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Rounds:   models.DefaultRoundLimit,
		Players:  DefaultPlayers,
		LogLevel: logrus.InfoLevel,
		LogFile:  strings.TrimSpace(getenv("TIMER_LOG_FILE")),
	}

	if path := strings.TrimSpace(getenv("TIMER_ROSTER")); path != "" {
		roster, err := LoadRoster(path)
		if err != nil {
			return nil, err
		}
		if roster.Rounds != 0 {
			cfg.Rounds = roster.Rounds
		}
		if len(roster.Players) > 0 {
			cfg.Players = roster.Players
		}
	}

	if v := strings.TrimSpace(getenv("TIMER_ROUNDS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("TIMER_ROUNDS must be a non-negative integer, got %q", v)
		}
		cfg.Rounds = n
	}

	if v := strings.TrimSpace(getenv("TIMER_LOG_LEVEL")); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("TIMER_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

// LoadRoster reads and validates a roster file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return ParseRoster(data)
}

// ParseRoster decodes and validates roster YAML.
func ParseRoster(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	if r.Rounds < 0 {
		return nil, fmt.Errorf("roster: rounds must not be negative, got %d", r.Rounds)
	}
	for i, p := range r.Players {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("roster: player %d has no name", i+1)
		}
		if p.Faction == "" {
			continue
		}
		f, ok := models.FactionByID(p.Faction)
		if !ok {
			return nil, fmt.Errorf("roster: player %q has unknown faction %q", p.Name, p.Faction)
		}
		if p.Color == "" {
			r.Players[i].Color = f.Color
		}
	}
	return &r, nil
}
