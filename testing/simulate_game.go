package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tatianab/turn-timer/internal/config"
	"github.com/tatianab/turn-timer/internal/engine"
	"github.com/tatianab/turn-timer/internal/models"
)

// maxSteps bounds a run in case a seed never reaches game over.
const maxSteps = 10000

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	passRate := flag.Float64("pass", 0.3, "chance that a player passes instead of acting")
	undoRate := flag.Float64("undo", 0.05, "chance of an undo after each step")
	verbose := flag.Bool("v", false, "log every transition to stderr")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Rounds == 0 {
		log.Fatalf("The simulation needs a round limit; set TIMER_ROUNDS")
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	rng := rand.New(rand.NewSource(*seed))
	eng := engine.New(cfg.Rounds)
	session := engine.NewSession(eng, logger)
	for i := len(cfg.Players) - 1; i >= 0; i-- {
		p := cfg.Players[i]
		session.Dispatch(engine.AddPlayer{Name: p.Name, Color: p.Color, Faction: p.Faction})
	}

	fmt.Printf("--- Simulating %d rounds with %d players (seed %d) ---\n", cfg.Rounds, len(cfg.Players), *seed)

	clock := time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)
	undos := 0
	for step := 0; step < maxSteps && !engine.IsGameOver(session.State()); step++ {
		clock = clock.Add(time.Duration(5+rng.Intn(120)) * time.Second)
		state := session.State()

		if _, ok := engine.ActiveTurn(state); !ok {
			session.Dispatch(engine.StartRound{At: clock})
			printRoundStart(session.State())
			continue
		}

		kind := engine.SuggestedEndKind(state)
		if rng.Float64() < *passRate {
			kind = models.TurnPass
		}
		session.Dispatch(engine.EndPlayerTurn{At: clock, Kind: kind})

		if rng.Float64() < *undoRate && session.CanUndo() {
			session.Dispatch(engine.Undo{})
			undos++
		}
	}

	state := session.State()
	for _, p := range state.Players {
		session.Dispatch(engine.UpdatePlayerScore{PlayerID: p.ID, Category: "vp", Value: rng.Intn(20)})
	}

	fmt.Printf("\n--- Final standings (%d turns, %d undos) ---\n", len(state.Turns), undos)
	for i, st := range engine.Standings(session.State(), clock) {
		fmt.Printf("%d. %-10s %3d pts  %s\n", i+1, st.Player.Name, st.Points, st.TotalTime)
	}
	if !engine.IsGameOver(state) {
		fmt.Printf("\nStopped after %d steps without reaching game over.\n", maxSteps)
	}
}

func printRoundStart(s *models.State) {
	round, ok := engine.ActiveRound(s)
	if !ok {
		return
	}
	names := make([]string, 0, len(round.PlayerOrder))
	for _, id := range round.PlayerOrder {
		if p, ok := engine.PlayerByID(s, id); ok {
			names = append(names, p.Name)
		}
	}
	fmt.Printf("Round %d: %s\n", s.ActiveRoundIndex+1, strings.Join(names, " → "))
}
