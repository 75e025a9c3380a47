package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/six78/gtrsnap/internal/app"
	"github.com/six78/gtrsnap/internal/config"
	"github.com/six78/gtrsnap/internal/version"
	"github.com/six78/gtrsnap/pkg/storage"
)

func main() {
	config.ParseArguments()

	if config.ShowVersion() {
		fmt.Println(version.Version())
		return
	}

	config.SetupLogger()
	defer func() { _ = config.Logger.Sync() }()

	config.Logger.Info("starting",
		zap.String("version", version.Version()),
		zap.Bool("debug", config.Debug()),
	)

	options := app.OptionsFromConfig()

	var service storage.Service
	if options.NeedsStorage() {
		local := storage.NewLocalStorage(config.StoragePath())
		if err := local.Initialize(); err != nil {
			fail(err)
		}
		service = local
	}

	a := app.New(service, os.Stdin, os.Stdout)
	if err := a.Run(options); err != nil {
		fail(err)
	}
}

func fail(err error) {
	config.Logger.Error("failed", zap.Error(err))
	_ = config.Logger.Sync()
	_, _ = fmt.Fprintln(os.Stderr, "error:", err)
	if config.LogFilePath != "" {
		_, _ = fmt.Fprintln(os.Stderr, "log:", config.LogFilePath)
	}
	os.Exit(1)
}
