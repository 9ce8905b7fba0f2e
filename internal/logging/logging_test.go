package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogsAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Info("optimization started", "algorithm", "greedy_forward", "task_count", 12)

	out := buf.String()
	if !strings.Contains(out, "optimization started") {
		t.Errorf("expected log output to contain message, got %q", out)
	}
	if !strings.Contains(out, "greedy_forward") {
		t.Errorf("expected log output to contain key-value arg, got %q", out)
	}
}

func TestWithAttachesContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug")
	scoped := l.With("request_id", "abc123")

	scoped.Warn("low ledger capacity")

	out := buf.String()
	if !strings.Contains(out, "abc123") {
		t.Errorf("expected scoped logger output to contain bound field, got %q", out)
	}
}

func TestNoopDoesNotPanic(t *testing.T) {
	l := Noop()
	l.Info("anything")
	l.Error("anything", "k", "v")
}
