package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	s := NewState(DefaultRoundLimit)

	require.Len(t, s.Rounds, 1)
	assert.False(t, s.Rounds[0].Started())
	assert.Empty(t, s.Rounds[0].PlayerOrder)
	assert.Empty(t, s.Players)
	assert.Empty(t, s.Turns)
	assert.Equal(t, NoRound, s.ActiveRoundIndex)
	assert.Equal(t, 0, s.ActivePlayerIndex)
	assert.Equal(t, DefaultRoundLimit, s.RoundLimit)
}

func TestStateClone(t *testing.T) {
	s := NewState(0)
	c := s.Clone()
	require.NotSame(t, s, c)

	c.Rounds = append([]Round{}, c.Rounds...)
	c.Rounds[0].StartTime = time.Unix(10, 0)
	c.ActivePlayerIndex = 2

	assert.False(t, s.Rounds[0].Started(), "clone must not write through to the original")
	assert.Equal(t, 0, s.ActivePlayerIndex)
}

func TestTurnKindValid(t *testing.T) {
	for _, k := range []TurnKind{TurnAction, TurnReaction, TurnPass} {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, TurnKind("").Valid())
	assert.False(t, TurnKind("skip").Valid())
}

func TestTurnAndRoundFlags(t *testing.T) {
	turn := Turn{StartTime: time.Unix(0, 0)}
	assert.True(t, turn.Open())
	turn.EndTime = time.Unix(5, 0)
	assert.False(t, turn.Open())

	var r Round
	assert.False(t, r.Started())
	assert.False(t, r.Ended())
	r.StartTime = time.Unix(1, 0)
	r.EndTime = time.Unix(2, 0)
	assert.True(t, r.Started())
	assert.True(t, r.Ended())
}

func TestFactionByID(t *testing.T) {
	f, ok := FactionByID("blue-alien")
	require.True(t, ok)
	assert.Equal(t, "Hydran Progress", f.Name)
	assert.Equal(t, "#477B9F", f.Color)

	_, ok = FactionByID("purple-alien")
	assert.False(t, ok)

	seen := make(map[string]bool)
	for _, f := range Factions {
		assert.False(t, seen[f.ID], "duplicate faction id %s", f.ID)
		seen[f.ID] = true
	}
}
