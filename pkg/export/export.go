package export

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/six78/gtrsnap/pkg/protocol"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

var Formats = []Format{FormatJSON, FormatYAML, FormatCBOR}

var ErrUnknownFormat = errors.New("unknown export format")

// Core Deterministic Encoding: the same snapshot always exports to the same bytes.
var cborMode cbor.EncMode

func init() {
	options := cbor.CoreDetEncOptions()
	// Cards and enums carry unexported fields or raw codes; export their names instead.
	options.TextMarshaler = cbor.TextMarshalerTextString
	var err error
	cborMode, err = options.EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
}

// Document is the exported form of a snapshot. Winners, which point
// into Players in memory, are exported as player indexes.
type Document struct {
	protocol.Snapshot `yaml:",inline"`

	Winners []int `json:"winners" yaml:"winners"`
}

func NewDocument(s *protocol.Snapshot) Document {
	winners := make([]int, 0, len(s.Winners))
	for i := range s.Players {
		if s.IsWinner(i) {
			winners = append(winners, i)
		}
	}
	return Document{
		Snapshot: *s,
		Winners:  winners,
	}
}

func ParseFormat(input string) (Format, error) {
	for _, format := range Formats {
		if string(format) == input {
			return format, nil
		}
	}
	return "", errors.Wrap(ErrUnknownFormat, input)
}

func Marshal(s *protocol.Snapshot, format Format) ([]byte, error) {
	document := NewDocument(s)

	switch format {
	case FormatJSON:
		return json.MarshalIndent(document, "", "  ")
	case FormatYAML:
		return yaml.Marshal(document)
	case FormatCBOR:
		return cborMode.Marshal(document)
	default:
		return nil, errors.Wrap(ErrUnknownFormat, string(format))
	}
}
