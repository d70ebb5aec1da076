package engine

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tatianab/turn-timer/internal/history"
	"github.com/tatianab/turn-timer/internal/models"
)

// Session owns the history-wrapped state of one game. It is not safe for
// concurrent use; the frontend serialises dispatches.
type Session struct {
	history *history.History[*models.State, Action]
	log     logrus.FieldLogger
}

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	initial      *models.State
	historyLimit int
}

// WithInitialState starts the session from s instead of the engine default.
func WithInitialState(s *models.State) SessionOption {
	return func(c *sessionConfig) { c.initial = s }
}

// WithHistoryLimit caps the number of undo steps kept.
func WithHistoryLimit(n int) SessionOption {
	return func(c *sessionConfig) { c.historyLimit = n }
}

// NewSession starts a session on eng. A nil logger discards log output.
func NewSession(eng *Engine, logger logrus.FieldLogger, opts ...SessionOption) *Session {
	cfg := sessionConfig{initial: eng.DefaultState()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Session{
		history: history.New(history.Reducer[*models.State, Action](eng.Reduce), cfg.initial, history.Options[Action]{
			Skip:  isViewOnly,
			Limit: cfg.historyLimit,
		}),
		log: logger,
	}
}

// State returns the present state.
func (s *Session) State() *models.State { return s.history.Present() }

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Dispatch applies a and returns the resulting present state.
func (s *Session) Dispatch(a Action) *models.State {
	name := ActionName(a)
	switch a.(type) {
	case Undo:
		if !s.history.Undo() {
			s.log.WithField("action", name).Debug("nothing to undo")
		}
		return s.State()
	case Redo:
		if !s.history.Redo() {
			s.log.WithField("action", name).Debug("nothing to redo")
		}
		return s.State()
	}

	before := s.State()
	after := s.history.Dispatch(a)
	if after == before {
		s.log.WithFields(logrus.Fields{
			"action": name,
			"phase":  CurrentPhase(before).String(),
		}).Debug("action ignored")
		return after
	}
	s.logTransition(name, before, after)
	return after
}

func (s *Session) logTransition(name string, before, after *models.State) {
	entry := s.log.WithField("action", name)
	switch {
	case CurrentPhase(after) == PhaseNotStarted && CurrentPhase(before) != PhaseNotStarted:
		entry.Info("session reset")
	case after.ActiveRoundIndex != before.ActiveRoundIndex:
		entry.WithField("round", after.ActiveRoundIndex+1).Info("round started")
	case CurrentPhase(after) != CurrentPhase(before):
		phase := CurrentPhase(after)
		entry = entry.WithField("round", after.ActiveRoundIndex+1)
		if phase == PhaseGameOver {
			entry.Info("game over")
		} else {
			entry.WithField("phase", phase.String()).Info("phase changed")
		}
	default:
		if p, ok := ActivePlayer(after); ok {
			entry = entry.WithField("player", p.Name)
		}
		entry.Debug("state updated")
	}
}
