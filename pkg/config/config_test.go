package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInit(t *testing.T) {
	path := writeConfig(t, `
engine:
  match_timeout: 250ms
  max_patterns: 100
  prefilter: false
patterns:
  - id: 1
    pattern: "^a+$"
  - id: 2
    pattern: "(?i)error"
    case_sensitive: true
sources:
  - name: blocklist
    path: ./patterns.txt
    case_sensitive: true
rules:
  suspicious: "MatchedAny(1, 2) && !Matched(3)"
scan:
  output: json
`)

	require.NoError(t, Init(path))

	assert.Equal(t, EngineConfig{MatchTimeout: 250 * time.Millisecond, MaxPatterns: 100}, Config.Engine)
	assert.Equal(t, []PatternConfig{
		{ID: 1, Pattern: "^a+$"},
		{ID: 2, Pattern: "(?i)error", CaseSensitive: true},
	}, Config.Patterns)
	assert.Equal(t, []SourceConfig{{Name: "blocklist", Path: "./patterns.txt", CaseSensitive: true}}, Config.Sources)
	assert.Equal(t, map[string]string{"suspicious": "MatchedAny(1, 2) && !Matched(3)"}, Config.Rules)
	assert.Equal(t, ScanConfig{Output: "json"}, Config.Scan)
	assert.Len(t, Config.Engine.Options(), 3)
}

func TestInit_Defaults(t *testing.T) {
	require.NoError(t, Init(""))

	assert.True(t, Config.Engine.Prefilter)
	assert.Zero(t, Config.Engine.MatchTimeout)
	assert.Equal(t, "text", Config.Scan.Output)
	assert.Empty(t, Config.Patterns)
	assert.Len(t, Config.Engine.Options(), 1)
}

func TestInit_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "scan:\n  output: yaml\n")

	t.Setenv("REGEXMATCHER__SCAN__OUTPUT", "json")
	t.Setenv("REGEXMATCHER__ENGINE__MATCH_TIMEOUT", "2s")

	require.NoError(t, Init(path))
	assert.Equal(t, "json", Config.Scan.Output)
	assert.Equal(t, 2*time.Second, Config.Engine.MatchTimeout)
}

func TestInit_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad_output", "scan:\n  output: xml\n"},
		{"negative_timeout", "engine:\n  match_timeout: -1s\n"},
		{"source_without_location", "sources:\n  - name: a\n"},
		{"source_with_both_locations", "sources:\n  - name: a\n    path: x\n    url: http://x\n"},
		{"duplicate_source", "sources:\n  - name: a\n    path: x\n  - name: a\n    path: y\n"},
		{"empty_rule", "rules:\n  blank: \" \"\n"},
		{"malformed_yaml", "engine: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Init(writeConfig(t, tt.content)))
		})
	}
}

func TestInit_MissingFile(t *testing.T) {
	assert.Error(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))
}
