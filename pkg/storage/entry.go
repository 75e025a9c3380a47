package storage

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

const entryIDLength = 16

// EntryID is the base58 form of the first 16 bytes of the payload's BLAKE3 digest.
type EntryID string

func NewEntryID(payload []byte) EntryID {
	digest := blake3.Sum256(payload)
	return EntryID(base58.Encode(digest[:entryIDLength]))
}

func ParseEntryID(input string) (EntryID, error) {
	decoded, err := base58.Decode(input)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode entry id")
	}
	if len(decoded) != entryIDLength {
		return "", errors.Errorf("entry id must be %d bytes, got %d", entryIDLength, len(decoded))
	}
	return EntryID(input), nil
}

func (id EntryID) String() string {
	return string(id)
}

func (id EntryID) Empty() bool {
	return id == ""
}

// Matches reports whether payload hashes to this id.
func (id EntryID) Matches(payload []byte) bool {
	return NewEntryID(payload) == id
}
