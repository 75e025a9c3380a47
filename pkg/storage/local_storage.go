package storage

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/six78/gtrsnap/internal/config"
	"github.com/six78/gtrsnap/pkg/protocol"
)

const (
	snapshotsDirectory = "snapshots"
	snapshotExtension  = ".gtr.zst"
)

var ErrNotFound = errors.New("snapshot not found")

// zstd.Encoder and zstd.Decoder are safe for concurrent use with EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("storage: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("storage: zstd decoder initialization failed: " + err.Error())
	}
}

type LocalStorage struct {
	logger    *zap.Logger
	localPath string
	folder    *configdir.Config
	mutex     *sync.RWMutex
}

// NewLocalStorage keeps payloads under localPath, or under the global
// user config folder when localPath is empty.
func NewLocalStorage(localPath string) *LocalStorage {
	return &LocalStorage{
		logger:    config.Logger.Named("storage"),
		localPath: localPath,
		mutex:     &sync.RWMutex{},
	}
}

func (s *LocalStorage) Initialize() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.localPath != "" {
		s.folder = &configdir.Config{
			Path: s.localPath,
			Type: configdir.Local,
		}
	} else {
		configDirs := configdir.New(config.VendorName, config.ApplicationName)
		folders := configDirs.QueryFolders(configdir.Global)
		if len(folders) == 0 {
			return errors.New("no config folder available")
		}
		s.folder = folders[0]
	}

	err := os.MkdirAll(filepath.Join(s.folder.Path, snapshotsDirectory), 0770)
	s.logger.Info("storage initialized",
		zap.String("path", s.folder.Path),
		zap.Error(err),
	)
	return errors.Wrap(err, "failed to create storage folder")
}

// Save stores the payload and returns its id. Payloads with a bad
// header are rejected. Saving the same payload twice is a no-op.
func (s *LocalStorage) Save(payload []byte) (EntryID, error) {
	header, err := protocol.ReadHeader(payload)
	if err != nil {
		return "", errors.Wrap(err, "refusing to store invalid snapshot")
	}

	id := NewEntryID(payload)
	filePath := entryFilePath(id)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.folder.Exists(filePath) {
		s.logger.Debug("snapshot already stored", zap.Stringer("id", id))
		return id, nil
	}

	compressed := zstdEncoder.EncodeAll(payload, make([]byte, 0, len(payload)))
	err = s.folder.WriteFile(filePath, compressed)
	if err != nil {
		return "", errors.Wrap(err, "failed to write snapshot")
	}

	s.logger.Info("snapshot stored",
		zap.Stringer("id", id),
		zap.Uint32("checksum", header.Checksum),
		zap.Int("size", len(payload)),
		zap.Int("compressed", len(compressed)),
	)
	return id, nil
}

func (s *LocalStorage) Load(id EntryID) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	filePath := entryFilePath(id)
	if !s.folder.Exists(filePath) {
		return nil, errors.Wrap(ErrNotFound, id.String())
	}

	compressed, err := s.folder.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read snapshot")
	}

	payload, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress snapshot")
	}

	if !id.Matches(payload) {
		return nil, errors.Errorf("stored snapshot %s is corrupted", id)
	}

	return payload, nil
}

// List returns stored ids in lexical order.
func (s *LocalStorage) List() ([]EntryID, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.folder.Path, snapshotsDirectory))
	if os.IsNotExist(err) {
		return []EntryID{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list snapshots")
	}

	ids := make([]EntryID, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, snapshotExtension) {
			continue
		}
		ids = append(ids, EntryID(strings.TrimSuffix(name, snapshotExtension)))
	}
	slices.Sort(ids)
	return ids, nil
}

func entryFilePath(id EntryID) string {
	return path.Join(snapshotsDirectory, id.String()+snapshotExtension)
}
