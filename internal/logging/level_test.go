package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDebugLevelRoundTrip(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	for l := DebugNone; l <= DebugSpew; l++ {
		require.Equal(t, l, SetDebugLevel(l))
		require.Equal(t, l, GetDebugLevel(), "level %s", l)
	}
}

func TestSetDebugLevelClamps(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	require.Equal(t, DebugSpew, SetDebugLevel(42))
	require.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
	require.Equal(t, DebugNone, SetDebugLevel(-3))
	require.Equal(t, zerolog.Disabled, zerolog.GlobalLevel())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"spew":    zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"off":     zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := parseLevel(raw)
		require.True(t, ok, raw)
		require.Equal(t, want, got, raw)
	}
	_, ok := parseLevel("loud")
	require.False(t, ok)
	_, ok = parseLevel("")
	require.False(t, ok)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "true")

	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	require.Equal(t, zerolog.ErrorLevel, cfg.Level)
	require.False(t, cfg.Timestamp)
	require.True(t, cfg.NoColor)
}
