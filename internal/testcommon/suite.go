package testcommon

import (
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/six78/gtrsnap/internal/config"
	"github.com/six78/gtrsnap/pkg/protocol"
)

type Suite struct {
	suite.Suite
	Logger *zap.Logger
}

func (s *Suite) SetupSuite() {
	s.Logger = SetupConfigLogger(s.T())
}

func (s *Suite) TearDownSuite() {
	_ = config.Logger.Sync()
}

// FakePayload returns a random snapshot together with its encoding.
func (s *Suite) FakePayload() (*protocol.Snapshot, []byte) {
	snapshot := FakeSnapshot()
	payload, err := protocol.Encode(snapshot)
	s.Require().NoError(err)
	return snapshot, payload
}
