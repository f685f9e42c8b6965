package pkg

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{"trace": TraceLevel, "debug": slog.LevelDebug, "warn": slog.LevelWarn, "bogus": slog.LevelInfo} {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v", in, got)
		}
	}
}

func TestMultiLogHandlerFollowsParent(t *testing.T) {
	var first, second bytes.Buffer
	h1 := slog.NewTextHandler(&first, &slog.HandlerOptions{Level: TraceLevel})
	multi := NewMultiLogHandler(slog.LevelDebug, h1)
	logger := slog.New(multi).With("device", "virtual")

	h2 := slog.NewTextHandler(&second, &slog.HandlerOptions{Level: TraceLevel})
	multi.Add(h2)
	logger.Info("added")
	if !strings.Contains(second.String(), "device=virtual") {
		t.Fatalf("child did not pick up new handler: %q", second.String())
	}

	multi.Remove(h2)
	second.Reset()
	logger.Info("removed")
	if second.Len() != 0 {
		t.Errorf("removed handler still written: %q", second.String())
	}
	if strings.Count(first.String(), "device=virtual") != 2 {
		t.Errorf("first = %q", first.String())
	}

	logger.Log(context.Background(), TraceLevel, "hidden")
	if strings.Contains(first.String(), "hidden") {
		t.Error("record below level passed")
	}

	multi.SetLevel(TraceLevel)
	logger.Log(context.Background(), TraceLevel, "shown")
	if !strings.Contains(first.String(), "shown") {
		t.Error("child ignored the new level")
	}
}
