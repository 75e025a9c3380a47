package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"

	"github.com/six78/gtrsnap/internal/testcommon"
	"github.com/six78/gtrsnap/pkg/protocol"
)

func TestLocalStorage(t *testing.T) {
	suite.Run(t, &Suite{})
}

type Suite struct {
	testcommon.Suite
	storage  *LocalStorage
	tempPath string
}

func (s *Suite) SetupTest() {
	s.tempPath = s.T().TempDir()
	s.storage = NewLocalStorage(s.tempPath)
	s.Require().NotNil(s.storage)
	err := s.storage.Initialize()
	s.Require().NoError(err)
}

func (s *Suite) TestLocalPath() {
	s.Require().NotNil(s.storage.folder)
	s.Require().Equal(s.tempPath, s.storage.folder.Path)
	s.Require().DirExists(filepath.Join(s.tempPath, snapshotsDirectory))
}

func (s *Suite) TestSaveLoad() {
	_, payload := s.FakePayload()

	id, err := s.storage.Save(payload)
	s.Require().NoError(err)
	s.Require().False(id.Empty())
	s.Require().Equal(NewEntryID(payload), id)
	s.Require().FileExists(filepath.Join(s.tempPath, entryFilePath(id)))

	loaded, err := s.storage.Load(id)
	s.Require().NoError(err)
	s.Require().Equal(payload, loaded)

	_, err = protocol.Decode(loaded)
	s.Require().NoError(err)
}

func (s *Suite) TestSaveTwice() {
	_, payload := s.FakePayload()

	first, err := s.storage.Save(payload)
	s.Require().NoError(err)
	second, err := s.storage.Save(payload)
	s.Require().NoError(err)
	s.Require().Equal(first, second)

	ids, err := s.storage.List()
	s.Require().NoError(err)
	s.Require().Equal([]EntryID{first}, ids)
}

func (s *Suite) TestSaveInvalid() {
	_, payload := s.FakePayload()
	payload[0] ^= 0x01

	id, err := s.storage.Save(payload)
	s.Require().ErrorIs(err, protocol.ErrMagicMismatch)
	s.Require().True(id.Empty())

	ids, err := s.storage.List()
	s.Require().NoError(err)
	s.Require().Empty(ids)
}

func (s *Suite) TestLoadMissing() {
	id := NewEntryID([]byte(gofakeit.LetterN(10)))
	_, err := s.storage.Load(id)
	s.Require().True(errors.Is(err, ErrNotFound))
}

func (s *Suite) TestLoadCorrupted() {
	_, first := s.FakePayload()
	_, second := s.FakePayload()

	id, err := s.storage.Save(first)
	s.Require().NoError(err)
	otherID, err := s.storage.Save(second)
	s.Require().NoError(err)

	// Swap the files so each decompresses fine but hashes to the other id.
	path := filepath.Join(s.tempPath, entryFilePath(id))
	otherPath := filepath.Join(s.tempPath, entryFilePath(otherID))
	s.Require().NoError(os.Rename(path, path+".tmp"))
	s.Require().NoError(os.Rename(otherPath, path))
	s.Require().NoError(os.Rename(path+".tmp", otherPath))

	_, err = s.storage.Load(id)
	s.Require().ErrorContains(err, "corrupted")
}

func (s *Suite) TestList() {
	expected := make([]EntryID, 0, 3)
	for i := 0; i < 3; i++ {
		_, payload := s.FakePayload()
		id, err := s.storage.Save(payload)
		s.Require().NoError(err)
		expected = append(expected, id)
	}

	// Unrelated files are ignored.
	err := os.WriteFile(filepath.Join(s.tempPath, snapshotsDirectory, "notes.txt"), []byte("x"), 0644)
	s.Require().NoError(err)

	ids, err := s.storage.List()
	s.Require().NoError(err)
	s.Require().ElementsMatch(expected, ids)
	s.Require().IsIncreasing(ids)
}
