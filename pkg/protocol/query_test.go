package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayerLookups(t *testing.T) {
	s := newTestSnapshot(3)
	s.LeaderIndex = 1
	s.ActivePlayerIndex = 2

	require.Same(t, &s.Players[1], s.Leader())
	require.Same(t, &s.Players[2], s.ActivePlayer())
	require.Same(t, &s.Players[2], s.LegionaryPlayer())
	require.Same(t, &s.Players[0], s.ArgPlayer(PlayerArg(0)))
	require.Nil(t, s.ArgPlayer(RoleArg(RolePatron)))

	// Out of range indexes are kept as decoded and resolve to nil.
	s.ActivePlayerIndex = 0xEE
	require.Nil(t, s.ActivePlayer())
}

func TestFrames(t *testing.T) {
	s := newTestSnapshot(2)
	frames := s.Frames()
	require.Len(t, frames, 3)
	require.Equal(t, FunctionAdvanceTurn, frames[0].Function)
	require.Equal(t, FunctionAwaitAction, frames[2].Function)

	s.CurrentFrame = nil
	require.Len(t, s.Frames(), 2)
}

func TestPendingRoleActions(t *testing.T) {
	s := newTestSnapshot(3)
	laborer := func(player int, executed bool) Frame {
		return Frame{
			Function: FunctionPerformRoleAction,
			Executed: executed,
			Args:     []FrameArg{PlayerArg(player), RoleArg(RoleLaborer)},
		}
	}
	s.Stack = []Frame{
		laborer(1, false),
		laborer(1, false),
		laborer(1, true),
		laborer(2, false),
		{Function: FunctionPerformClienteleAction, Args: []FrameArg{PlayerArg(1), RoleArg(RoleLaborer)}},
		{Function: FunctionPerformClienteleAction, Executed: true, Args: []FrameArg{PlayerArg(1), RoleArg(RoleLaborer)}},
		{Function: FunctionPerformPatronAction, Args: []FrameArg{PlayerArg(1), RoleArg(RoleLaborer)}},
	}
	current := laborer(1, false)
	s.CurrentFrame = &current

	require.Equal(t, 4, s.PendingRoleActions(1, RoleLaborer))
	require.Equal(t, 1, s.PendingRoleActions(2, RoleLaborer))
	require.Equal(t, 0, s.PendingRoleActions(1, RoleCraftsman))
	require.Equal(t, 0, s.PendingRoleActions(0, RoleLaborer))

	// Survives the wire.
	received, err := Decode(mustEncode(s))
	require.NoError(t, err)
	require.Equal(t, 4, received.PendingRoleActions(1, RoleLaborer))
}
