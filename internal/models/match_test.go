package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchKey_Names(t *testing.T) {
	k := NewMatchKey("basic", "a_basic", 3)

	assert.Equal(t, "basic-3-vs-a_basic-3", k.Name())
	assert.Equal(t, "basic-3-vs-a_basic-3.txt", k.FileName())
	assert.Equal(t, "a_basic-3-vs-basic-3", k.Swapped().Name())
	assert.Equal(t, Player{Heuristic: "a_basic", Depth: 3}, k.Player(SideBlack))
}

func TestParseMatchKey(t *testing.T) {
	k, err := ParseMatchKey("board_aware-8-vs-a_basic-7.txt")
	require.NoError(t, err)
	assert.Equal(t, MatchKey{
		White: Player{Heuristic: "board_aware", Depth: 8},
		Black: Player{Heuristic: "a_basic", Depth: 7},
	}, k)

	k, err = ParseMatchKey("basic-1-vs-board_aware-1")
	require.NoError(t, err)
	assert.Equal(t, NewMatchKey("basic", "board_aware", 1), k)

	_, err = ParseMatchKey("notes.txt")
	assert.Error(t, err)
}

func TestOutcome_Winner(t *testing.T) {
	side, ok := OutcomeWhiteWon.Winner()
	assert.True(t, ok)
	assert.Equal(t, SideWhite, side)

	side, ok = OutcomeBlackWon.Winner()
	assert.True(t, ok)
	assert.Equal(t, SideBlack, side)

	for _, o := range []Outcome{OutcomeTie, "", "playing", "White_Won"} {
		_, ok := o.Winner()
		assert.False(t, ok, "outcome %q must not credit a win", o)
	}
}

func TestUniverse_Pairs(t *testing.T) {
	u := Universe{Heuristics: []string{"basic", "a_basic", "board_aware"}, Depths: []int{3, 1, 2, 3}}

	assert.Equal(t, [][2]string{
		{"basic", "a_basic"},
		{"basic", "board_aware"},
		{"a_basic", "board_aware"},
	}, u.Pairs())
	assert.Equal(t, []int{1, 2, 3}, u.SortedDepths())
	assert.NoError(t, u.Validate())
}

func TestUniverse_Validate(t *testing.T) {
	assert.Error(t, Universe{Heuristics: []string{"basic"}, Depths: []int{1}}.Validate())
	assert.Error(t, Universe{Heuristics: []string{"basic", "basic"}, Depths: []int{1}}.Validate())
	assert.Error(t, Universe{Heuristics: []string{"basic", "a_basic"}}.Validate())
	assert.Error(t, Universe{Heuristics: []string{"basic", "a_basic"}, Depths: []int{0}}.Validate())
}

func TestErrors_Unwrap(t *testing.T) {
	var err error = &MissingResultError{Key: NewMatchKey("basic", "a_basic", 4), Report: "basic vs a_basic"}
	assert.True(t, errors.Is(err, ErrMissingResult))
	assert.Contains(t, err.Error(), "basic-4-vs-a_basic-4.txt")
	assert.Contains(t, err.Error(), "depth 4")

	err = &MalformedLogError{Path: "x.txt", Line: 3, Reason: "bad duration"}
	assert.True(t, errors.Is(err, ErrMalformedLog))
	assert.Equal(t, "x.txt:3: malformed game log: bad duration", err.Error())

	err = &NoMovesError{Side: SideBlack}
	assert.True(t, errors.Is(err, ErrNoMovesRecorded))
}
