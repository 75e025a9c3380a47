package export

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/six78/gtrsnap/internal/testcommon"
	"github.com/six78/gtrsnap/pkg/protocol"
)

func TestExport(t *testing.T) {
	suite.Run(t, new(Suite))
}

type Suite struct {
	testcommon.Suite
	snapshot *protocol.Snapshot
}

func (s *Suite) SetupTest() {
	s.snapshot = testcommon.FakeSnapshot()
	s.snapshot.RoleLed = protocol.RoleArchitect
	s.snapshot.InTownSites = []protocol.Material{protocol.MaterialMarble, protocol.MaterialStone}
	s.snapshot.Winners = []*protocol.Player{&s.snapshot.Players[1]}
}

func (s *Suite) checkDocument(document map[string]any) {
	s.Require().Equal("Architect", document["roleLed"])
	s.Require().EqualValues(s.snapshot.GameID, document["gameId"])
	s.Require().Equal([]any{"Marble", "Stone"}, document["inTownSites"])
	s.Require().Len(document["winners"], 1)
	s.Require().EqualValues(1, document["winners"].([]any)[0])

	players := document["players"].([]any)
	s.Require().Len(players, len(s.snapshot.Players))
	first := players[0].(map[string]any)
	s.Require().Equal(s.snapshot.Players[0].Name, first["name"])

	stack := document["stack"].([]any)
	s.Require().Len(stack, len(s.snapshot.Stack))
	frame := stack[0].(map[string]any)
	s.Require().Equal(s.snapshot.Stack[0].Function.String(), frame["function"])
}

func (s *Suite) TestJSON() {
	data, err := Marshal(s.snapshot, FormatJSON)
	s.Require().NoError(err)

	var document map[string]any
	s.Require().NoError(json.Unmarshal(data, &document))
	s.checkDocument(document)
	s.Require().NotContains(document, "Winners")
}

func (s *Suite) TestYAML() {
	data, err := Marshal(s.snapshot, FormatYAML)
	s.Require().NoError(err)

	var document map[string]any
	s.Require().NoError(yaml.Unmarshal(data, &document))
	s.checkDocument(document)
}

func (s *Suite) TestCBOR() {
	data, err := Marshal(s.snapshot, FormatCBOR)
	s.Require().NoError(err)

	again, err := Marshal(s.snapshot, FormatCBOR)
	s.Require().NoError(err)
	s.Require().Equal(data, again)

	decMode, err := cbor.DecOptions{DefaultMapType: mapType}.DecMode()
	s.Require().NoError(err)

	var document map[string]any
	s.Require().NoError(decMode.Unmarshal(data, &document))
	s.checkDocument(document)
}

func (s *Suite) TestHiddenCards() {
	s.snapshot.Library = protocol.Zone{protocol.HiddenCard, protocol.CardOf(12)}

	data, err := Marshal(s.snapshot, FormatJSON)
	s.Require().NoError(err)

	var document map[string]any
	s.Require().NoError(json.Unmarshal(data, &document))
	s.Require().Equal([]any{"hidden", "12"}, document["library"])
}

func (s *Suite) TestUnknownFormat() {
	_, err := Marshal(s.snapshot, Format("xml"))
	s.Require().ErrorIs(err, ErrUnknownFormat)

	_, err = ParseFormat("xml")
	s.Require().ErrorIs(err, ErrUnknownFormat)

	format, err := ParseFormat("yaml")
	s.Require().NoError(err)
	s.Require().Equal(FormatYAML, format)
}

var mapType = reflect.TypeOf(map[string]any(nil))
