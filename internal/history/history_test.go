package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n int }

type op string

// step increments for "inc", decrements for "dec", touches nothing for "noop"
// and adds ten for "view" (a skip action in some tests).
func step(s *counter, a op) *counter {
	switch a {
	case "inc":
		return &counter{n: s.n + 1}
	case "dec":
		return &counter{n: s.n - 1}
	case "view":
		return &counter{n: s.n + 10}
	}
	return s
}

func newCounter(opts Options[op]) *History[*counter, op] {
	return New(Reducer[*counter, op](step), &counter{}, opts)
}

func TestDispatchRecordsPast(t *testing.T) {
	h := newCounter(Options[op]{})
	initial := h.Present()

	got := h.Dispatch("inc")
	assert.Equal(t, 1, got.n)
	assert.Same(t, got, h.Present())
	require.Len(t, h.Past(), 1)
	assert.Same(t, initial, h.Past()[0])
	assert.Empty(t, h.Future())
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestDispatchNoopNotRecorded(t *testing.T) {
	h := newCounter(Options[op]{})
	h.Dispatch("inc")
	before := h.Present()

	got := h.Dispatch("noop")
	assert.Same(t, before, got)
	assert.Len(t, h.Past(), 1)
}

func TestUndoRedo(t *testing.T) {
	h := newCounter(Options[op]{})
	s0 := h.Present()
	s1 := h.Dispatch("inc")
	s2 := h.Dispatch("inc")

	require.True(t, h.Undo())
	assert.Same(t, s1, h.Present())
	assert.Equal(t, []*counter{s2}, h.Future())

	require.True(t, h.Undo())
	assert.Same(t, s0, h.Present())
	assert.Equal(t, []*counter{s1, s2}, h.Future(), "future is nearest first")
	assert.False(t, h.Undo())

	require.True(t, h.Redo())
	assert.Same(t, s1, h.Present())
	require.True(t, h.Redo())
	assert.Same(t, s2, h.Present())
	assert.False(t, h.Redo())
	assert.Equal(t, []*counter{s0, s1}, h.Past())
}

func TestDispatchClearsFuture(t *testing.T) {
	h := newCounter(Options[op]{})
	h.Dispatch("inc")
	h.Dispatch("inc")
	h.Undo()
	require.True(t, h.CanRedo())

	h.Dispatch("dec")
	assert.False(t, h.CanRedo())
	assert.Equal(t, 0, h.Present().n)
}

func TestNoopKeepsFuture(t *testing.T) {
	h := newCounter(Options[op]{})
	h.Dispatch("inc")
	h.Undo()

	h.Dispatch("noop")
	assert.True(t, h.CanRedo(), "a no-op dispatch must not drop redo history")
}

func TestSkipActions(t *testing.T) {
	h := newCounter(Options[op]{Skip: func(a op) bool { return a == "view" }})
	h.Dispatch("inc")
	h.Dispatch("inc")
	h.Undo()
	require.True(t, h.CanRedo())

	got := h.Dispatch("view")
	assert.Equal(t, 11, got.n)
	assert.Len(t, h.Past(), 1)
	assert.True(t, h.CanRedo(), "skip actions leave the stacks alone")
}

func TestLimit(t *testing.T) {
	h := newCounter(Options[op]{Limit: 2})
	for i := 0; i < 5; i++ {
		h.Dispatch("inc")
	}
	past := h.Past()
	require.Len(t, past, 2)
	assert.Equal(t, 3, past[0].n)
	assert.Equal(t, 4, past[1].n)
}

func TestInverseLaw(t *testing.T) {
	h := newCounter(Options[op]{})
	s0 := h.Present()
	actions := []op{"inc", "inc", "dec", "inc", "inc"}
	for _, a := range actions {
		h.Dispatch(a)
	}
	sn := h.Present()

	for range actions {
		require.True(t, h.Undo())
	}
	assert.Same(t, s0, h.Present())
	for range actions {
		require.True(t, h.Redo())
	}
	assert.Same(t, sn, h.Present())
}

func TestReset(t *testing.T) {
	h := newCounter(Options[op]{})
	h.Dispatch("inc")
	h.Dispatch("inc")
	h.Undo()

	fresh := &counter{}
	h.Reset(fresh)
	assert.Same(t, fresh, h.Present())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
