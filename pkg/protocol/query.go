package protocol

func (s *Snapshot) player(index int) *Player {
	if index < 0 || index >= len(s.Players) {
		return nil
	}
	return &s.Players[index]
}

func (s *Snapshot) ActivePlayer() *Player {
	return s.player(s.ActivePlayerIndex)
}

func (s *Snapshot) Leader() *Player {
	return s.player(s.LeaderIndex)
}

// LegionaryPlayer returns the player whose legionary demand is being
// resolved, or nil.
func (s *Snapshot) LegionaryPlayer() *Player {
	if s.LegionaryPlayerIndex == nil {
		return nil
	}
	return s.player(*s.LegionaryPlayerIndex)
}

// ArgPlayer resolves a player argument. It returns nil for other kinds.
func (s *Snapshot) ArgPlayer(arg FrameArg) *Player {
	if arg.Kind != ArgPlayer {
		return nil
	}
	return s.player(arg.Player)
}

func (s *Snapshot) playerIndex(p *Player) int {
	if p == nil {
		return -1
	}
	for i := range s.Players {
		if &s.Players[i] == p {
			return i
		}
	}
	for i := range s.Players {
		if s.Players[i].UID == p.UID && s.Players[i].Name == p.Name {
			return i
		}
	}
	return -1
}

func (s *Snapshot) IsWinner(index int) bool {
	if s.player(index) == nil {
		return false
	}
	for _, winner := range s.Winners {
		if s.playerIndex(winner) == index {
			return true
		}
	}
	return false
}

// Frames returns the stack followed by the current frame, if any.
func (s *Snapshot) Frames() []Frame {
	frames := make([]Frame, 0, len(s.Stack)+1)
	frames = append(frames, s.Stack...)
	if s.CurrentFrame != nil {
		frames = append(frames, *s.CurrentFrame)
	}
	return frames
}

// PendingRoleActions counts the role actions of the given role that the
// player still has to perform: unexecuted perform_role_action and
// perform_clientele_action frames on the stack or in the current frame.
// A clientele frame pushes its role action once executed, so each action
// is counted once. This is how a client knows, for example, how many
// Laborer actions remain before the next prompt.
func (s *Snapshot) PendingRoleActions(player int, role Role) int {
	n := 0
	for _, frame := range s.Frames() {
		if frame.Executed {
			continue
		}
		if frame.Function != FunctionPerformRoleAction && frame.Function != FunctionPerformClienteleAction {
			continue
		}
		if frame.Player() == player && frame.Role() == role {
			n++
		}
	}
	return n
}
