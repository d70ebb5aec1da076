// Package history wraps a reducer with undo/redo stacks.
//
// States are compared by identity (==), so a reducer signals a no-op by
// returning its input unchanged. With pointer states this is a pointer
// comparison and no-op dispatches never reach the undo stack.
package history

// Reducer computes the next state from the current state and an action.
type Reducer[S comparable, A any] func(S, A) S

// Options tunes a History.
type Options[A any] struct {
	// Skip marks actions whose result replaces the present state without
	// being recorded. Undo and redo move past such changes.
	Skip func(A) bool
	// Limit caps the number of past states kept. Zero keeps everything.
	Limit int
}

// History holds past, present and future states around a reducer.
// It is not safe for concurrent use.
type History[S comparable, A any] struct {
	reduce  Reducer[S, A]
	opts    Options[A]
	past    []S // oldest first
	present S
	future  []S // nearest first
}

// New returns a History whose present state is initial.
func New[S comparable, A any](reduce Reducer[S, A], initial S, opts Options[A]) *History[S, A] {
	return &History[S, A]{
		reduce:  reduce,
		opts:    opts,
		present: initial,
	}
}

// Dispatch applies a to the present state and returns the new present.
func (h *History[S, A]) Dispatch(a A) S {
	next := h.reduce(h.present, a)
	if next == h.present {
		return h.present
	}
	if h.opts.Skip != nil && h.opts.Skip(a) {
		h.present = next
		return h.present
	}
	h.past = append(h.past, h.present)
	if h.opts.Limit > 0 && len(h.past) > h.opts.Limit {
		h.past = h.past[len(h.past)-h.opts.Limit:]
	}
	h.present = next
	h.future = nil
	return h.present
}

// Undo moves the newest past state into the present. It reports false when
// there is nothing to undo.
func (h *History[S, A]) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]S{h.present}, h.future...)
	h.present = prev
	return true
}

// Redo moves the nearest future state into the present. It reports false
// when there is nothing to redo.
func (h *History[S, A]) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
	return true
}

// Present returns the current state.
func (h *History[S, A]) Present() S { return h.present }

// Past returns a copy of the past states, oldest first.
func (h *History[S, A]) Past() []S { return append([]S(nil), h.past...) }

// Future returns a copy of the future states, nearest first.
func (h *History[S, A]) Future() []S { return append([]S(nil), h.future...) }

func (h *History[S, A]) CanUndo() bool { return len(h.past) > 0 }
func (h *History[S, A]) CanRedo() bool { return len(h.future) > 0 }

// Reset drops past and future and makes s the present state.
func (h *History[S, A]) Reset(s S) {
	h.past = nil
	h.future = nil
	h.present = s
}
