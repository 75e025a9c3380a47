package protocol

import (
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"

	"github.com/pkg/errors"
)

// Encode serializes a snapshot. Decode(Encode(s)) reproduces s, with
// two normalizations: site and influence lists come back in canonical
// material order, and hand cards come back as orders followed by jacks.
// The Header of s is ignored; a fresh one is computed.
func Encode(s *Snapshot) ([]byte, error) {
	w := NewWriter(512)
	w.U32(SnapshotMagic)
	w.U32(SnapshotVersion)
	w.U32(0) // checksum, patched below

	if err := writeGame(w, s); err != nil {
		return nil, err
	}

	data := w.Bytes()
	checksum := crc32.ChecksumIEEE(data[headerLength:])
	binary.BigEndian.PutUint32(data[8:headerLength], checksum)
	return data, nil
}

func writeGame(w *Writer, s *Snapshot) error {
	w.U32(s.GameID)
	w.U32(s.TurnNumber)
	w.U32(s.ActionNumber)
	if err := writeName(w, s.Host); err != nil {
		return errors.Wrap(err, "host")
	}
	w.U8(s.LegionaryCount)
	w.Bool(s.UsedOutOfTown)
	w.Bool(s.OutOfTownAllowed)

	role, ok := roleToWire(s.RoleLed)
	if !ok {
		return invalidValue("role led %s", s.RoleLed)
	}
	w.U8(role)
	w.U8(uint8(s.ExpectedAction))

	if s.LegionaryPlayerIndex == nil {
		w.U8(noneByte)
	} else {
		index := *s.LegionaryPlayerIndex
		if index < 0 || index >= int(noneByte) {
			return invalidValue("legionary player index %d", index)
		}
		w.U8(uint8(index))
	}

	for _, index := range []int{s.LeaderIndex, s.ActivePlayerIndex} {
		if index < 0 || index > 0xFF {
			return invalidValue("player index %d", index)
		}
		w.U8(uint8(index))
	}
	w.U32(s.LogLength)

	if err := writeSiteCounts(w, s.InTownSites); err != nil {
		return errors.Wrap(err, "in town sites")
	}
	if err := writeSiteCounts(w, s.OutOfTownSites); err != nil {
		return errors.Wrap(err, "out of town sites")
	}

	flags, err := winnerFlags(s)
	if err != nil {
		return err
	}
	w.Write(flags)

	for _, z := range []struct {
		name string
		zone Zone
	}{{"jacks", s.Jacks}, {"library", s.Library}, {"pool", s.Pool}} {
		if err := WriteZone(w, z.zone); err != nil {
			return errors.Wrap(err, z.name)
		}
	}

	if len(s.Players) > 0xFF {
		return invalidValue("%d players", len(s.Players))
	}
	w.U8(uint8(len(s.Players)))
	for i, player := range s.Players {
		if err := WritePlayer(w, player); err != nil {
			return errors.Wrapf(err, "player %d", i)
		}
	}

	if err := WriteFrame(w, s.CurrentFrame); err != nil {
		return errors.Wrap(err, "current frame")
	}

	if len(s.Stack) > 0xFF {
		return invalidValue("%d stack frames", len(s.Stack))
	}
	w.U8(uint8(len(s.Stack)))
	for i := range s.Stack {
		if err := WriteFrame(w, &s.Stack[i]); err != nil {
			return errors.Wrapf(err, "stack frame %d", i)
		}
	}
	return nil
}

// winnerFlags finds each winner among the players, by identity first
// and by UID when the winner is a copy.
func winnerFlags(s *Snapshot) ([]byte, error) {
	flags := make([]byte, winnerFlagsCount)
	for _, winner := range s.Winners {
		index := s.playerIndex(winner)
		if index < 0 {
			return nil, invalidValue("winner %q is not a player", winner.Name)
		}
		if index >= winnerFlagsCount {
			return nil, invalidValue("winner index %d has no flag slot", index)
		}
		flags[index] = 1
	}
	return flags, nil
}

// DecodeString decodes the base64 form servers push to clients.
func DecodeString(s string) (*Snapshot, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64")
	}
	return Decode(data)
}

func EncodeToString(s *Snapshot) (string, error) {
	data, err := Encode(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
