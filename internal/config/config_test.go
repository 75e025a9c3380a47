package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestParseArguments(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	parseArguments(flags, []string{"-f", "yaml", "--base64", "--archive", "--storage", "/tmp/archive", "dump.b64"})

	require.Equal(t, "yaml", Format())
	require.True(t, Base64Input())
	require.True(t, Archive())
	require.Equal(t, "/tmp/archive", StoragePath())
	require.Equal(t, "dump.b64", Input())
	require.False(t, List())
	require.Empty(t, Load())
}

func TestParseArgumentsDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	parseArguments(flags, []string{})

	require.Equal(t, FormatText, Format())
	require.Empty(t, Input())
	require.False(t, NoColor())
	require.False(t, Debug())
	require.False(t, ShowVersion())
}
