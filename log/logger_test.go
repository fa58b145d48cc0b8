package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)

	logger := New("test")

	SetLevel(Notice)
	logger.Info("hidden")
	logger.Notice("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info message to be filtered; got %q", out)
	}
	if !strings.Contains(out, "[test] [NOTICE] shown") {
		t.Fatalf("expected notice message in output; got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("depth %d", 3)
	if !strings.Contains(buf.String(), "depth 3") {
		t.Fatalf("expected debug message in output; got %q", buf.String())
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	SetLevel(Debug)
	defer SetLevel(Notice)

	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)

	New("test").Debug("still verbose")
	if !strings.Contains(buf.String(), "still verbose") {
		t.Fatalf("expected debug message after switching sinks; got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	specs := map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		"":        Notice,
		"warn":    Warning,
		"error":   Error,
		" notice": Notice,
	}
	for name, exp := range specs {
		lvl, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", name, err)
		}
		if lvl != exp {
			t.Fatalf("expected level for %q to be %d; got %d", name, exp, lvl)
		}
	}

	expError := `log: unknown level "verbose"`
	if _, err := ParseLevel("verbose"); err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}
}
