package models

import "time"

// NoRound marks ActiveRoundIndex before the first round has started.
const NoRound = -1

// DefaultRoundLimit is the number of playable rounds in a standard game.
const DefaultRoundLimit = 8

// TurnKind describes how a turn ended.
type TurnKind string

const (
	TurnAction   TurnKind = "action"
	TurnReaction TurnKind = "reaction"
	TurnPass     TurnKind = "pass"
)

// Valid reports whether k is one of the known turn kinds.
func (k TurnKind) Valid() bool {
	switch k {
	case TurnAction, TurnReaction, TurnPass:
		return true
	}
	return false
}

// Player is a participant. Score maps a scoring category to its value.
type Player struct {
	ID      string
	Name    string
	Color   string
	Faction string // optional, see Factions
	Score   map[string]int
}

// Round is one slot of the game. The zero StartTime means the round has not
// started; the zero EndTime means it has not ended. PlayerOrder is filled in
// while the previous round is being played, in pass order.
type Round struct {
	StartTime   time.Time
	EndTime     time.Time
	PlayerOrder []string
}

// Started reports whether the round has a start time.
func (r Round) Started() bool { return !r.StartTime.IsZero() }

// Ended reports whether the round has an end time.
func (r Round) Ended() bool { return !r.EndTime.IsZero() }

// Turn is one player's time slice. Kind is set when the turn ends.
type Turn struct {
	StartTime  time.Time
	EndTime    time.Time
	RoundIndex int
	PlayerID   string
	Kind       TurnKind
}

// Open reports whether the turn is still running.
func (t Turn) Open() bool { return t.EndTime.IsZero() }

// State is the whole session. States are treated as immutable: transitions
// build a new *State and never write through an existing one.
type State struct {
	Turns             []Turn
	Rounds            []Round
	Players           []Player
	ActiveRoundIndex  int
	ActivePlayerIndex int
	FocusedPlayerID   string
	RoundLimit        int // 0 means unlimited
}

// NewState returns the empty state: no players, no turns and a single
// not-yet-started round.
func NewState(roundLimit int) *State {
	return &State{
		Rounds:           []Round{{}},
		ActiveRoundIndex: NoRound,
		RoundLimit:       roundLimit,
	}
}

// Clone returns a shallow copy of s whose slices may be replaced without
// affecting s. Slice elements are shared until rewritten.
func (s *State) Clone() *State {
	c := *s
	return &c
}
