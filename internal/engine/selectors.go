package engine

import (
	"sort"
	"time"

	"github.com/tatianab/turn-timer/internal/models"
)

// Phase is the coarse state of the game.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRoundInProgress
	PhaseRoundEnded
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseRoundInProgress:
		return "round in progress"
	case PhaseRoundEnded:
		return "round ended"
	case PhaseGameOver:
		return "game over"
	}
	return "unknown"
}

// ActiveRound returns the round at ActiveRoundIndex.
func ActiveRound(s *models.State) (models.Round, bool) {
	if s.ActiveRoundIndex < 0 || s.ActiveRoundIndex >= len(s.Rounds) {
		return models.Round{}, false
	}
	return s.Rounds[s.ActiveRoundIndex], true
}

// NextRound returns the trailing round that collects the next player order.
func NextRound(s *models.State) (models.Round, bool) {
	if len(s.Rounds) == 0 {
		return models.Round{}, false
	}
	return s.Rounds[len(s.Rounds)-1], true
}

// NextRoundIndex is the index the next START_ROUND will activate.
func NextRoundIndex(s *models.State) int {
	if s.ActiveRoundIndex == models.NoRound {
		return 0
	}
	return s.ActiveRoundIndex + 1
}

// ActiveTurn returns the open turn of the active round, if any.
func ActiveTurn(s *models.State) (models.Turn, bool) {
	if len(s.Turns) == 0 {
		return models.Turn{}, false
	}
	t := s.Turns[len(s.Turns)-1]
	if !t.Open() || t.RoundIndex != s.ActiveRoundIndex {
		return models.Turn{}, false
	}
	return t, true
}

// PlayerByID resolves a player.
func PlayerByID(s *models.State, id string) (models.Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

func playerAt(s *models.State, idx int) (models.Player, bool) {
	r, ok := ActiveRound(s)
	if !ok || idx < 0 || idx >= len(r.PlayerOrder) {
		return models.Player{}, false
	}
	return PlayerByID(s, r.PlayerOrder[idx])
}

// ActivePlayer returns the player whose turn it is in the active round.
func ActivePlayer(s *models.State) (models.Player, bool) {
	return playerAt(s, s.ActivePlayerIndex)
}

// NextPlayerIndex is the order position acting after the active player.
// Passed players are not skipped.
func NextPlayerIndex(s *models.State) (int, bool) {
	r, ok := ActiveRound(s)
	if !ok || len(r.PlayerOrder) == 0 {
		return 0, false
	}
	return (s.ActivePlayerIndex + 1) % len(r.PlayerOrder), true
}

// NextPlayer returns the player at NextPlayerIndex.
func NextPlayer(s *models.State) (models.Player, bool) {
	idx, ok := NextPlayerIndex(s)
	if !ok {
		return models.Player{}, false
	}
	return playerAt(s, idx)
}

// HasPlayerPassed reports whether the player passed in the active round.
func HasPlayerPassed(s *models.State, playerID string) bool {
	for _, t := range s.Turns {
		if t.RoundIndex == s.ActiveRoundIndex && t.PlayerID == playerID && t.Kind == models.TurnPass {
			return true
		}
	}
	return false
}

// HasActivePlayerPassed reports whether the active player passed this round.
func HasActivePlayerPassed(s *models.State) bool {
	p, ok := ActivePlayer(s)
	if !ok {
		return false
	}
	return HasPlayerPassed(s, p.ID)
}

// SuggestedEndKind is the kind a plain "done" ends the turn with: a reaction
// once the player has passed, an action before.
func SuggestedEndKind(s *models.State) models.TurnKind {
	if HasActivePlayerPassed(s) {
		return models.TurnReaction
	}
	return models.TurnAction
}

// TurnElapsed is the length of t, measured up to now while it is open.
func TurnElapsed(t models.Turn, now time.Time) time.Duration {
	end := t.EndTime
	if t.Open() {
		end = now
	}
	return end.Sub(t.StartTime)
}

// TotalPlayerTime sums the player's turns over the whole game.
func TotalPlayerTime(s *models.State, playerID string, now time.Time) time.Duration {
	var total time.Duration
	for _, t := range s.Turns {
		if t.PlayerID == playerID {
			total += TurnElapsed(t, now)
		}
	}
	return total
}

// RoundTurns returns the turns played in the given round, in order.
func RoundTurns(s *models.State, roundIndex int) []models.Turn {
	var turns []models.Turn
	for _, t := range s.Turns {
		if t.RoundIndex == roundIndex {
			turns = append(turns, t)
		}
	}
	return turns
}

// CurrentPhase derives the coarse game state.
func CurrentPhase(s *models.State) Phase {
	r, ok := ActiveRound(s)
	switch {
	case !ok:
		return PhaseNotStarted
	case !r.Ended():
		return PhaseRoundInProgress
	case s.RoundLimit > 0 && s.ActiveRoundIndex >= s.RoundLimit-1:
		return PhaseGameOver
	}
	return PhaseRoundEnded
}

// IsGameOver reports whether the last playable round has been resolved.
func IsGameOver(s *models.State) bool {
	return CurrentPhase(s) == PhaseGameOver
}

// Standing is one line of the end-of-game summary.
type Standing struct {
	Player    models.Player
	TotalTime time.Duration
	Points    int
}

// Standings lists every player with their time and score total, highest
// score first. Ties keep the player order.
func Standings(s *models.State, now time.Time) []Standing {
	out := make([]Standing, 0, len(s.Players))
	for _, p := range s.Players {
		points := 0
		for _, v := range p.Score {
			points += v
		}
		out = append(out, Standing{
			Player:    p,
			TotalTime: TotalPlayerTime(s, p.ID, now),
			Points:    points,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	return out
}
