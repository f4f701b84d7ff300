package core

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestLogErrorReturns(t *testing.T) {
	var buf bytes.Buffer
	getLogger().SetOutput(&buf)
	defer getLogger().SetOutput(os.Stderr)

	LogError("Game render failed, shutting down: %s", errors.New("draw cube: gl error 0x502"))

	if out := buf.String(); !strings.Contains(out, "draw cube: gl error 0x502") {
		t.Errorf("log output %q does not carry the error", out)
	}
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{level: "debug"},
		{level: "error"},
		{level: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if err := SetLogLevel(tt.level); (err != nil) != tt.wantErr {
				t.Errorf("SetLogLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
		})
	}
	if err := SetLogLevel("debug"); err != nil {
		t.Fatal(err)
	}
}
