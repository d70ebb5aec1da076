// Package engine implements the turn and round state machine.
//
// Engine.Reduce is a pure transition function over *models.State: it never
// reads the clock, never panics and never mutates its input. When an action's
// preconditions do not hold (no open turn, unknown player, game over, ...)
// the input state is returned as is, so callers can detect no-ops by pointer
// comparison.
package engine

import (
	"github.com/google/uuid"

	"github.com/tatianab/turn-timer/internal/models"
)

// Engine holds the parameters of the state machine.
type Engine struct {
	roundLimit int
	newID      func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator replaces the uuid generator used for new players.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// New returns an Engine for games of roundLimit rounds (0 = unlimited).
func New(roundLimit int, opts ...Option) *Engine {
	e := &Engine{
		roundLimit: roundLimit,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultState returns the empty state for this engine.
func (e *Engine) DefaultState() *models.State {
	return models.NewState(e.roundLimit)
}

// Reduce applies a to s.
func (e *Engine) Reduce(s *models.State, a Action) *models.State {
	switch a := a.(type) {
	case StartRound:
		return startRound(s, a)
	case EndPlayerTurn:
		return endPlayerTurn(s, a)
	case AddPlayer:
		return e.addPlayer(s, a)
	case UpdatePlayerScore:
		return updatePlayerScore(s, a)
	case FocusPlayer:
		return focusPlayer(s, a)
	case BlurPlayer:
		if s.FocusedPlayerID == "" {
			return s
		}
		next := s.Clone()
		next.FocusedPlayerID = ""
		return next
	case Reset:
		return models.NewState(s.RoundLimit)
	}
	return s
}

func startRound(s *models.State, a StartRound) *models.State {
	if _, open := ActiveTurn(s); open {
		return s
	}
	switch CurrentPhase(s) {
	case PhaseNotStarted, PhaseRoundEnded:
	default:
		return s
	}
	pending, ok := NextRound(s)
	if !ok {
		return s
	}
	// Players who never passed last round act after everyone who did.
	if prev, ok := ActiveRound(s); ok {
		for _, id := range prev.PlayerOrder {
			if !containsID(pending.PlayerOrder, id) {
				pending.PlayerOrder = appendID(pending.PlayerOrder, id)
			}
		}
	}
	if len(pending.PlayerOrder) == 0 {
		return s
	}
	idx := len(s.Rounds) - 1
	pending.StartTime = a.At

	next := s.Clone()
	next.Rounds = make([]models.Round, 0, len(s.Rounds)+1)
	next.Rounds = append(next.Rounds, s.Rounds[:idx]...)
	next.Rounds = append(next.Rounds, pending, models.Round{})
	next.Turns = appendTurn(s.Turns, models.Turn{
		StartTime:  a.At,
		RoundIndex: idx,
		PlayerID:   pending.PlayerOrder[0],
	})
	next.ActiveRoundIndex = idx
	next.ActivePlayerIndex = 0
	return next
}

func endPlayerTurn(s *models.State, a EndPlayerTurn) *models.State {
	turn, ok := ActiveTurn(s)
	if !ok || !a.Kind.Valid() || a.At.Before(turn.StartTime) {
		return s
	}
	active, ok := ActivePlayer(s)
	if !ok {
		return s
	}
	nextIdx, ok := NextPlayerIndex(s)
	if !ok {
		return s
	}
	nextPlayer, ok := NextPlayer(s)
	if !ok {
		return s
	}

	firstPass := a.Kind == models.TurnPass && !HasPlayerPassed(s, active.ID)

	next := s.Clone()
	next.Turns = append([]models.Turn(nil), s.Turns...)
	closed := &next.Turns[len(next.Turns)-1]
	closed.EndTime = a.At
	closed.Kind = a.Kind

	next.Rounds = append([]models.Round(nil), s.Rounds...)
	pendingIdx := len(next.Rounds) - 1
	if firstPass {
		pending := next.Rounds[pendingIdx]
		pending.PlayerOrder = appendID(pending.PlayerOrder, active.ID)
		next.Rounds[pendingIdx] = pending
	}

	if firstPass && len(next.Rounds[pendingIdx].PlayerOrder) >= len(s.Players)-1 {
		round := next.Rounds[s.ActiveRoundIndex]
		round.EndTime = a.At
		next.Rounds[s.ActiveRoundIndex] = round
		next.ActivePlayerIndex = 0
		return next
	}

	next.Turns = append(next.Turns, models.Turn{
		StartTime:  a.At,
		RoundIndex: s.ActiveRoundIndex,
		PlayerID:   nextPlayer.ID,
	})
	next.ActivePlayerIndex = nextIdx
	return next
}

func (e *Engine) addPlayer(s *models.State, a AddPlayer) *models.State {
	if CurrentPhase(s) != PhaseNotStarted || len(s.Rounds) == 0 {
		return s
	}
	id := a.ID
	if id == "" {
		id = e.newID()
	}
	if _, exists := PlayerByID(s, id); exists {
		return s
	}

	next := s.Clone()
	next.Players = append(append([]models.Player(nil), s.Players...), models.Player{
		ID:      id,
		Name:    a.Name,
		Color:   a.Color,
		Faction: a.Faction,
		Score:   map[string]int{},
	})
	next.Rounds = append([]models.Round(nil), s.Rounds...)
	first := next.Rounds[0]
	first.PlayerOrder = append([]string{id}, first.PlayerOrder...)
	next.Rounds[0] = first
	return next
}

func updatePlayerScore(s *models.State, a UpdatePlayerScore) *models.State {
	for i, p := range s.Players {
		if p.ID != a.PlayerID {
			continue
		}
		if v, ok := p.Score[a.Category]; ok && v == a.Value {
			return s
		}
		score := make(map[string]int, len(p.Score)+1)
		for k, v := range p.Score {
			score[k] = v
		}
		score[a.Category] = a.Value
		p.Score = score

		next := s.Clone()
		next.Players = append([]models.Player(nil), s.Players...)
		next.Players[i] = p
		return next
	}
	return s
}

func focusPlayer(s *models.State, a FocusPlayer) *models.State {
	if s.FocusedPlayerID == a.PlayerID {
		return s
	}
	if _, ok := PlayerByID(s, a.PlayerID); !ok {
		return s
	}
	next := s.Clone()
	next.FocusedPlayerID = a.PlayerID
	return next
}

func appendTurn(turns []models.Turn, t models.Turn) []models.Turn {
	out := make([]models.Turn, 0, len(turns)+1)
	out = append(out, turns...)
	return append(out, t)
}

// appendID copies ids so the result never shares a backing array with a
// previous state.
func appendID(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
