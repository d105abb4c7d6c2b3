package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Str("account_id", "42").Msg("test message")

	out := buf.String()
	if !strings.Contains(out, "test message") || !strings.Contains(out, `"account_id":"42"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"warn":  zerolog.WarnLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf).Level(ParseLevel("warn"))

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info line should be filtered: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn line missing: %s", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	fromCtx := FromContext(ctx, zerolog.Nop())
	fromCtx.Info().Msg("from ctx")
	if buf.Len() == 0 {
		t.Error("expected output from the context logger")
	}

	buf.Reset()
	fallback := FromContext(context.Background(), NewWithWriter(buf))
	fallback.Info().Msg("fallback")
	if !strings.Contains(buf.String(), "fallback") {
		t.Error("expected the fallback logger to be used")
	}
}
