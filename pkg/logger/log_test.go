package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

func TestInit_Verbosity(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	tests := []struct {
		verbosity int
		want      logrus.Level
	}{
		{0, logrus.InfoLevel},
		{1, logrus.DebugLevel},
		{2, logrus.TraceLevel},
		{5, logrus.TraceLevel},
	}

	for _, tt := range tests {
		require.NoError(t, Init("", tt.verbosity))
		assert.Equal(t, tt.want, logrus.GetLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestInit_ConsoleOnStderr(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	require.NoError(t, Init("", 0))

	out := logrus.StandardLogger().Out
	assert.NotEqual(t, os.Stdout, out)

	formatter, ok := logrus.StandardLogger().Formatter.(*prefixed.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, isTerminal(os.Stderr), formatter.ForceColors)
	assert.NotEqual(t, formatter.ForceColors, formatter.DisableColors)
}

func TestRotateFileHook_WritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.log")

	hook, err := NewRotateFileHook(RotateFileConfig{
		Filename:  path,
		MaxSize:   1,
		Level:     logrus.DebugLevel,
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
	})
	require.NoError(t, err)

	assert.Len(t, hook.Levels(), int(logrus.DebugLevel)+1)

	entry := logrus.NewEntry(logrus.New()).WithField("prefix", "engine")
	entry.Message = "prepared patterns"
	entry.Level = logrus.InfoLevel
	require.NoError(t, hook.Fire(entry))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "prepared patterns")
	assert.Contains(t, string(b), "prefix=engine")
}

func TestGetLogger_Prefix(t *testing.T) {
	log := GetLogger("matcher")
	assert.Equal(t, "matcher", log.Data["prefix"])
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.NotPanics(t, func() {
		log.Error("not written anywhere")
	})
}
