package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: VerbosityUser},
		{name: "Console output mode", jsonOutput: false, verbosity: VerbosityDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			if err := Initialize(tt.jsonOutput, tt.verbosity); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Error("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}

			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestLevelName(t *testing.T) {
	if got := LevelName(VerbosityInfo); got != "Info (-v)" {
		t.Errorf("LevelName(1) = %q", got)
	}
	if got := LevelName(7); got != "Trace (-vvv+)" {
		t.Errorf("LevelName(7) = %q", got)
	}
	if got := LevelName(-2); got != "Unknown" {
		t.Errorf("LevelName(-2) = %q", got)
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core).Sugar()

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithComponent(ctx, "wikibase")

	FromContext(ctx, base).Infow("exchange", FieldAction, "wbgetentities")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields[FieldRequestID] != "req-1" {
		t.Errorf("request_id = %v", fields[FieldRequestID])
	}
	if fields[FieldComponent] != "wikibase" {
		t.Errorf("component = %v", fields[FieldComponent])
	}
	if fields[FieldAction] != "wbgetentities" {
		t.Errorf("action = %v", fields[FieldAction])
	}
}

func TestFromContext_NoFields(t *testing.T) {
	base := zap.NewNop().Sugar()
	if got := FromContext(context.Background(), base); got != base {
		t.Error("expected base logger to be returned unchanged")
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("expected empty request id")
	}
}
