package util

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestSafeClose(t *testing.T) {
	var buf strings.Builder
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	SafeClose(nil, "nothing")

	closed := false
	SafeCloseFunc(closerFunc(func() error { closed = true; return nil }), "report")()
	if !closed {
		t.Error("SafeCloseFunc did not close the resource")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}

	SafeClose(closerFunc(func() error { return errors.New("disk full") }), "audio file")
	if out := buf.String(); !strings.Contains(out, "resource=\"audio file\"") || !strings.Contains(out, "disk full") {
		t.Errorf("close failure not logged: %s", out)
	}
}
