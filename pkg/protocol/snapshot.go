package protocol

import (
	"hash/crc32"

	"github.com/pkg/errors"
)

const (
	SnapshotMagic   uint32 = 0x89477452
	SnapshotVersion uint32 = 1

	headerLength     = 12
	winnerFlagsCount = 5
)

type Header struct {
	Magic    uint32 `json:"magic" yaml:"magic"`
	Version  uint32 `json:"version" yaml:"version"`
	Checksum uint32 `json:"crc32" yaml:"crc32"` // IEEE CRC32 of everything after the header
}

// Snapshot is the whole game state as sent to one viewer.
type Snapshot struct {
	Header Header `json:"header" yaml:"header"`

	GameID           uint32 `json:"gameId" yaml:"gameId"`
	TurnNumber       uint32 `json:"turnNumber" yaml:"turnNumber"`
	ActionNumber     uint32 `json:"actionNumber" yaml:"actionNumber"`
	Host             string `json:"host" yaml:"host"`
	LegionaryCount   uint8  `json:"legionaryCount" yaml:"legionaryCount"`
	UsedOutOfTown    bool   `json:"usedOutOfTown" yaml:"usedOutOfTown"`
	OutOfTownAllowed bool   `json:"outOfTownAllowed" yaml:"outOfTownAllowed"`
	RoleLed          Role   `json:"roleLed" yaml:"roleLed"`
	ExpectedAction   Action `json:"expectedAction" yaml:"expectedAction"`

	// LegionaryPlayerIndex is nil unless a legionary demand is being resolved.
	LegionaryPlayerIndex *int   `json:"legionaryPlayerIndex" yaml:"legionaryPlayerIndex"`
	LeaderIndex          int    `json:"leaderIndex" yaml:"leaderIndex"`
	ActivePlayerIndex    int    `json:"activePlayerIndex" yaml:"activePlayerIndex"`
	LogLength            uint32 `json:"logLength" yaml:"logLength"`

	InTownSites    []Material `json:"inTownSites" yaml:"inTownSites"`
	OutOfTownSites []Material `json:"outOfTownSites" yaml:"outOfTownSites"`

	// Winners point into Players.
	Winners []*Player `json:"-" yaml:"-"`

	Jacks   Zone     `json:"jacks" yaml:"jacks"`
	Library Zone     `json:"library" yaml:"library"`
	Pool    Zone     `json:"pool" yaml:"pool"`
	Players []Player `json:"players" yaml:"players"`

	// CurrentFrame is nil between turns.
	CurrentFrame *Frame `json:"currentFrame" yaml:"currentFrame"`
	// Stack lists pending frames, outermost first.
	Stack []Frame `json:"stack" yaml:"stack"`
}

// Decode parses a binary snapshot. It either returns a complete
// snapshot or an error; errors unwrap to one of the Err* kinds and
// errors.As finds the *DecodeError with the failing offset.
func Decode(data []byte) (*Snapshot, error) {
	c := NewCursor(data)

	header, err := readHeader(c, data)
	if err != nil {
		return nil, errors.Wrap(err, "header")
	}

	s, err := readGame(c)
	if err != nil {
		return nil, err
	}
	s.Header = header

	if c.Remaining() != 0 {
		return nil, newDecodeError(ErrTrailingData, c.Offset(), "%d bytes left", c.Remaining())
	}
	return s, nil
}

// ReadHeader validates the header of a payload without decoding the game.
func ReadHeader(data []byte) (Header, error) {
	return readHeader(NewCursor(data), data)
}

func readHeader(c *Cursor, data []byte) (Header, error) {
	var h Header
	var err error

	if h.Magic, err = c.U32(); err != nil {
		return Header{}, err
	}
	if h.Magic != SnapshotMagic {
		return Header{}, newDecodeError(ErrMagicMismatch, 0,
			"got 0x%08X, expected 0x%08X", h.Magic, SnapshotMagic)
	}

	if h.Version, err = c.U32(); err != nil {
		return Header{}, err
	}
	if h.Version != SnapshotVersion {
		return Header{}, newDecodeError(ErrVersionMismatch, 4,
			"got %d, expected %d", h.Version, SnapshotVersion)
	}

	if h.Checksum, err = c.U32(); err != nil {
		return Header{}, err
	}
	if computed := crc32.ChecksumIEEE(data[headerLength:]); computed != h.Checksum {
		return Header{}, newDecodeError(ErrChecksumMismatch, 8,
			"header says 0x%08X, payload is 0x%08X", h.Checksum, computed)
	}

	return h, nil
}

func readGame(c *Cursor) (*Snapshot, error) {
	s := &Snapshot{}
	var err error

	scalars := []struct {
		name string
		read func() error
	}{
		{"game id", func() (err error) { s.GameID, err = c.U32(); return }},
		{"turn number", func() (err error) { s.TurnNumber, err = c.U32(); return }},
		{"action number", func() (err error) { s.ActionNumber, err = c.U32(); return }},
		{"host", func() (err error) { s.Host, err = readName(c); return }},
		{"legionary count", func() (err error) { s.LegionaryCount, err = c.U8(); return }},
		{"used out of town", func() (err error) { s.UsedOutOfTown, err = c.Bool(); return }},
		{"out of town allowed", func() (err error) { s.OutOfTownAllowed, err = c.Bool(); return }},
		{"role led", func() error { return readRole(c, &s.RoleLed) }},
		{"expected action", func() error {
			v, err := c.U8()
			s.ExpectedAction = Action(v)
			return err
		}},
		{"legionary player", func() error {
			v, err := c.U8()
			if err == nil && v != noneByte {
				index := int(v)
				s.LegionaryPlayerIndex = &index
			}
			return err
		}},
		{"leader", func() error {
			v, err := c.U8()
			s.LeaderIndex = int(v)
			return err
		}},
		{"active player", func() error {
			v, err := c.U8()
			s.ActivePlayerIndex = int(v)
			return err
		}},
		{"log length", func() (err error) { s.LogLength, err = c.U32(); return }},
		{"in town sites", func() (err error) { s.InTownSites, err = readSiteCounts(c); return }},
		{"out of town sites", func() (err error) { s.OutOfTownSites, err = readSiteCounts(c); return }},
	}
	for _, field := range scalars {
		if err = field.read(); err != nil {
			return nil, errors.Wrap(err, field.name)
		}
	}

	// Interpreted once the players are known.
	flags, err := c.Bytes(winnerFlagsCount)
	if err != nil {
		return nil, errors.Wrap(err, "winners")
	}

	if s.Jacks, err = ReadZone(c); err != nil {
		return nil, errors.Wrap(err, "jacks")
	}
	if s.Library, err = ReadZone(c); err != nil {
		return nil, errors.Wrap(err, "library")
	}
	if s.Pool, err = ReadZone(c); err != nil {
		return nil, errors.Wrap(err, "pool")
	}

	count, err := c.U8()
	if err != nil {
		return nil, errors.Wrap(err, "player count")
	}
	s.Players = make([]Player, 0, count)
	for i := 0; i < int(count); i++ {
		player, err := ReadPlayer(c)
		if err != nil {
			return nil, errors.Wrapf(err, "player %d", i)
		}
		s.Players = append(s.Players, player)
	}

	if s.CurrentFrame, err = ReadFrame(c, len(s.Players)); err != nil {
		return nil, errors.Wrap(err, "current frame")
	}

	if s.Stack, err = readStack(c, len(s.Players)); err != nil {
		return nil, err
	}

	s.Winners = make([]*Player, 0, len(s.Players))
	for i, flag := range flags {
		if flag != 0 && i < len(s.Players) {
			s.Winners = append(s.Winners, &s.Players[i])
		}
	}

	return s, nil
}

func readRole(c *Cursor, role *Role) error {
	offset := c.Offset()
	v, err := c.U8()
	if err != nil {
		return err
	}
	r, ok := roleFromWire(v)
	if !ok {
		return enumError(TableRole, int(v), offset)
	}
	*role = r
	return nil
}

func readStack(c *Cursor, players int) ([]Frame, error) {
	count, err := c.U8()
	if err != nil {
		return nil, errors.Wrap(err, "stack size")
	}
	stack := make([]Frame, 0, count)
	for i := 0; i < int(count); i++ {
		start := c.Offset()
		frame, err := ReadFrame(c, players)
		if err != nil {
			return nil, errors.Wrapf(err, "stack frame %d", i)
		}
		if frame == nil {
			return nil, errors.Wrapf(newDecodeError(ErrInvalidRecordLength, start, "empty frame"),
				"stack frame %d", i)
		}
		stack = append(stack, *frame)
	}
	return stack, nil
}
