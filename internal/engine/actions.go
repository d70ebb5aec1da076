package engine

import (
	"time"

	"github.com/tatianab/turn-timer/internal/models"
)

// Action is a state transition request. The set of actions is closed; every
// implementation lives in this file.
type Action interface {
	isAction()
}

// StartRound starts the pending round at At.
type StartRound struct {
	At time.Time
}

// EndPlayerTurn closes the open turn at At with the given kind.
type EndPlayerTurn struct {
	At   time.Time
	Kind models.TurnKind
}

// AddPlayer registers a player before the first round. An empty ID asks the
// engine to generate one.
type AddPlayer struct {
	ID      string
	Name    string
	Color   string
	Faction string
}

// UpdatePlayerScore sets one scoring category of a player.
type UpdatePlayerScore struct {
	PlayerID string
	Category string
	Value    int
}

// FocusPlayer marks a player as selected in the UI.
type FocusPlayer struct {
	PlayerID string
}

// BlurPlayer clears the UI selection.
type BlurPlayer struct{}

// Reset returns to the empty state.
type Reset struct{}

// Undo and Redo are handled by the Session history, never by the reducer.
type (
	Undo struct{}
	Redo struct{}
)

func (StartRound) isAction()        {}
func (EndPlayerTurn) isAction()     {}
func (AddPlayer) isAction()         {}
func (UpdatePlayerScore) isAction() {}
func (FocusPlayer) isAction()       {}
func (BlurPlayer) isAction()        {}
func (Reset) isAction()             {}
func (Undo) isAction()              {}
func (Redo) isAction()              {}

// ActionName returns a short upper-case name for logging.
func ActionName(a Action) string {
	switch a.(type) {
	case StartRound:
		return "START_ROUND"
	case EndPlayerTurn:
		return "END_PLAYER_TURN"
	case AddPlayer:
		return "ADD_PLAYER"
	case UpdatePlayerScore:
		return "UPDATE_PLAYER_SCORE"
	case FocusPlayer:
		return "FOCUS_PLAYER"
	case BlurPlayer:
		return "BLUR_PLAYER"
	case Reset:
		return "RESET"
	case Undo:
		return "UNDO"
	case Redo:
		return "REDO"
	}
	return "UNKNOWN"
}

// isViewOnly reports actions that only touch UI bookkeeping and are kept out
// of the undo history.
func isViewOnly(a Action) bool {
	switch a.(type) {
	case FocusPlayer, BlurPlayer:
		return true
	}
	return false
}
