package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shibukawa/configdir"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const logsDirectory = "logs"

const VendorName = "six78"
const ApplicationName = "gtrsnap"

// FormatText selects the terminal summary. Every other format is an export format.
const FormatText = "text"

const UserColor = lipgloss.Color("#7D56F4")
const ForegroundShadeColor = lipgloss.Color("#555555")
const WinnerColor = lipgloss.Color("#E0B040")
const HiddenCardColor = lipgloss.Color("#3A3A3A")

var input string
var base64Input bool
var format string
var archive bool
var load string
var list bool
var storagePath string
var debug bool
var noColor bool
var showVersion bool
var logToStderr bool

var Logger *zap.Logger
var LogFilePath string

func SetupLogger() {
	var c zap.Config
	if debug {
		c = zap.NewDevelopmentConfig()
	} else {
		c = zap.NewProductionConfig()
	}

	if logToStderr {
		c.OutputPaths = []string{"stderr"}
	} else {
		LogFilePath = createLogFile()
		c.OutputPaths = []string{LogFilePath}
	}
	c.Development = false
	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	Logger = logger
}

func createLogFile() string {
	name := fmt.Sprintf("gtrsnap-%s.log", time.Now().UTC().Format(time.RFC3339))
	name = strings.Replace(name, ":", "-", -1)

	configDirs := configdir.New(VendorName, ApplicationName)
	folders := configDirs.QueryFolders(configdir.Global)
	path := filepath.Join(folders[0].Path, logsDirectory, name)

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		panic(err)
	}

	if _, err := os.Create(path); err != nil {
		panic(err)
	}

	return path
}

func ParseArguments() {
	parseArguments(pflag.CommandLine, os.Args[1:])
}

func parseArguments(flags *pflag.FlagSet, args []string) {
	flags.StringVarP(&input, "input", "i", "", "Snapshot file to decode (default: stdin)")
	flags.BoolVar(&base64Input, "base64", false, "Input is base64 text as pushed by the server")
	flags.StringVarP(&format, "format", "f", FormatText, "Output format: text, json, yaml or cbor")
	flags.BoolVar(&archive, "archive", false, "Store the decoded payload in the local archive")
	flags.StringVar(&load, "load", "", "Decode an archived payload by id instead of reading input")
	flags.BoolVar(&list, "list", false, "List archived payload ids and quit")
	flags.StringVar(&storagePath, "storage", "", "Archive folder (default: user config folder)")
	flags.BoolVar(&debug, "debug", false, "Show debug info")
	flags.BoolVar(&noColor, "no-color", false, "Disable colors in text output")
	flags.BoolVar(&showVersion, "version", false, "Print version and quit")
	flags.BoolVar(&logToStderr, "log-stderr", false, "Write logs to stderr instead of a log file")
	_ = flags.Parse(args)

	if input == "" && flags.NArg() > 0 {
		input = flags.Arg(0)
	}
}

func Input() string {
	return input
}

func Base64Input() bool {
	return base64Input
}

func Format() string {
	return format
}

func Archive() bool {
	return archive
}

func Load() string {
	return load
}

func List() bool {
	return list
}

func StoragePath() string {
	return storagePath
}

func Debug() bool {
	return debug
}

func NoColor() bool {
	return noColor
}

func ShowVersion() bool {
	return showVersion
}
