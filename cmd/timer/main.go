package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tatianab/turn-timer/internal/config"
	"github.com/tatianab/turn-timer/internal/engine"
	"github.com/tatianab/turn-timer/internal/models"
	"github.com/tatianab/turn-timer/internal/tui"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	eng := engine.New(cfg.Rounds)
	session := engine.NewSession(eng, logger, engine.WithInitialState(seat(eng, cfg.Players)))
	logger.WithFields(logrus.Fields{
		"players": len(cfg.Players),
		"rounds":  cfg.Rounds,
	}).Info("session ready")

	if err := tui.Run(session); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// newLogger returns a logger writing to the configured file. The terminal
// belongs to the TUI, so without a file the output is discarded.
func newLogger(cfg *config.Config) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.LogFile == "" {
		logger.SetOutput(io.Discard)
		return logger, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(f)
	return logger, func() { f.Close() }, nil
}

// seat builds the starting state outside of the undo history, so the roster
// itself cannot be undone. Players join at the front of the first round's
// order, hence the reverse walk.
func seat(eng *engine.Engine, players []config.PlayerConfig) *models.State {
	s := eng.DefaultState()
	for i := len(players) - 1; i >= 0; i-- {
		p := players[i]
		s = eng.Reduce(s, engine.AddPlayer{Name: p.Name, Color: p.Color, Faction: p.Faction})
	}
	return s
}
