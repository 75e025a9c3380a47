package matchers

import (
	"fmt"
)

// SnapshotMatcher matches payloads of one particular game at one particular action.
type SnapshotMatcher struct {
	PayloadMatcher
	gameID       uint32
	actionNumber uint32
}

func NewSnapshotMatcher(gameID uint32, actionNumber uint32) *SnapshotMatcher {
	return &SnapshotMatcher{
		gameID:       gameID,
		actionNumber: actionNumber,
	}
}

func (m *SnapshotMatcher) Matches(x interface{}) bool {
	if !m.PayloadMatcher.Matches(x) {
		return false
	}
	return m.snapshot.GameID == m.gameID && m.snapshot.ActionNumber == m.actionNumber
}

func (m *SnapshotMatcher) String() string {
	return fmt.Sprintf("is a snapshot of game %d at action %d", m.gameID, m.actionNumber)
}
