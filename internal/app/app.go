package app

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/six78/gtrsnap/internal/config"
	"github.com/six78/gtrsnap/internal/view"
	"github.com/six78/gtrsnap/pkg/export"
	"github.com/six78/gtrsnap/pkg/protocol"
	"github.com/six78/gtrsnap/pkg/storage"
)

var ErrNoStorage = errors.New("archive is not available")

type Options struct {
	Input   string // file path, stdin when empty
	Base64  bool
	Format  string
	Archive bool
	Load    string
	List    bool
	NoColor bool
}

func OptionsFromConfig() Options {
	return Options{
		Input:   config.Input(),
		Base64:  config.Base64Input(),
		Format:  config.Format(),
		Archive: config.Archive(),
		Load:    config.Load(),
		List:    config.List(),
		NoColor: config.NoColor(),
	}
}

// NeedsStorage reports whether running with these options touches the archive.
func (o Options) NeedsStorage() bool {
	return o.Archive || o.List || o.Load != ""
}

type App struct {
	logger  *zap.Logger
	storage storage.Service
	stdin   io.Reader
	stdout  io.Writer
}

// New creates an app. storage may be nil when the options don't need it.
func New(storage storage.Service, stdin io.Reader, stdout io.Writer) *App {
	return &App{
		logger:  config.Logger.Named("app"),
		storage: storage,
		stdin:   stdin,
		stdout:  stdout,
	}
}

func (a *App) Run(options Options) error {
	if options.NeedsStorage() && a.storage == nil {
		return ErrNoStorage
	}

	if options.List {
		return a.list()
	}

	payload, err := a.readPayload(options)
	if err != nil {
		return err
	}

	snapshot, err := protocol.Decode(payload)
	if err != nil {
		a.logDecodeError(err)
		return errors.Wrap(err, "failed to decode snapshot")
	}

	a.logger.Info("snapshot decoded",
		zap.Uint32("gameId", snapshot.GameID),
		zap.Uint32("turn", snapshot.TurnNumber),
		zap.Uint32("action", snapshot.ActionNumber),
		zap.Int("players", len(snapshot.Players)),
		zap.Int("stack", len(snapshot.Stack)),
	)

	var id storage.EntryID
	if options.Archive && options.Load == "" {
		id, err = a.storage.Save(payload)
		if err != nil {
			return errors.Wrap(err, "failed to archive snapshot")
		}
	}

	if err = a.write(snapshot, options); err != nil {
		return err
	}

	if !id.Empty() && options.Format == config.FormatText {
		_, err = fmt.Fprintf(a.stdout, "archived as %s\n", id)
	}
	return err
}

func (a *App) list() error {
	ids, err := a.storage.List()
	if err != nil {
		return errors.Wrap(err, "failed to list archive")
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(a.stdout, id); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) readPayload(options Options) ([]byte, error) {
	if options.Load != "" {
		id, err := storage.ParseEntryID(options.Load)
		if err != nil {
			return nil, err
		}
		return a.storage.Load(id)
	}

	var data []byte
	var err error
	if options.Input == "" {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(options.Input)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}

	if !options.Base64 {
		return data, nil
	}

	text := bytes.TrimSpace(data)
	payload := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(payload, text)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64 input")
	}
	return payload[:n], nil
}

func (a *App) write(snapshot *protocol.Snapshot, options Options) error {
	if options.Format == config.FormatText {
		renderer := view.New(a.stdout, options.NoColor)
		_, err := fmt.Fprintln(a.stdout, renderer.Render(snapshot))
		return err
	}

	format, err := export.ParseFormat(options.Format)
	if err != nil {
		return err
	}
	data, err := export.Marshal(snapshot, format)
	if err != nil {
		return errors.Wrap(err, "failed to export snapshot")
	}
	_, err = a.stdout.Write(data)
	return err
}

func (a *App) logDecodeError(err error) {
	var decodeErr *protocol.DecodeError
	if !errors.As(err, &decodeErr) {
		a.logger.Error("failed to decode snapshot", zap.Error(err))
		return
	}
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("offset", decodeErr.Offset),
	}
	if decodeErr.Table != "" {
		fields = append(fields,
			zap.String("table", decodeErr.Table),
			zap.Int("index", decodeErr.Index),
		)
	}
	a.logger.Error("failed to decode snapshot", fields...)
}
