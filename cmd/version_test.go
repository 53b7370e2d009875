package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   string
		want string
	}{
		{"unix_seconds", "1709985600", "2024-03-09T12:00:00Z (1 day ago)"},
		{"unset", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildTime(tt.ts, now))
		})
	}
}

func TestWriteVersion(t *testing.T) {
	var buf bytes.Buffer
	writeVersion(&buf, time.Now())

	assert.Contains(t, buf.String(), "regexmatcher 0.0.0-dev (unknown)")
	assert.Contains(t, buf.String(), "timeout:  none")
}
