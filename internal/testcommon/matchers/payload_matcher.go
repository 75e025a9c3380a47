package matchers

import (
	"github.com/six78/gtrsnap/pkg/protocol"
)

// PayloadMatcher matches byte slices that decode to a valid snapshot.
type PayloadMatcher struct {
	payload  []byte
	snapshot *protocol.Snapshot
}

func NewPayloadMatcher() *PayloadMatcher {
	return &PayloadMatcher{}
}

func (m *PayloadMatcher) Matches(x interface{}) bool {
	m.snapshot = nil
	payload, ok := x.([]byte)
	if !ok || payload == nil {
		return false
	}
	m.payload = payload

	snapshot, err := protocol.Decode(payload)
	if err != nil {
		return false
	}

	m.snapshot = snapshot
	return true
}

func (m *PayloadMatcher) String() string {
	return "is a snapshot payload"
}

func (m *PayloadMatcher) Payload() []byte {
	return m.payload
}

func (m *PayloadMatcher) Snapshot() *protocol.Snapshot {
	return m.snapshot
}
