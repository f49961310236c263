package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestConfigureJSON(t *testing.T) {
	l := log.New()
	var buf bytes.Buffer
	if err := configure(l, &buf, "warn", "json", false); err != nil {
		t.Fatalf("configure: %v", err)
	}
	l.Info("hidden")
	l.WithField("rows", 3).Warn("shown")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if m["msg"] != "shown" || m["rows"].(float64) != 3 {
		t.Fatalf("unexpected entry: %v", m)
	}
}

func TestConfigureDebugOverridesLevel(t *testing.T) {
	l := log.New()
	if err := configure(l, &bytes.Buffer{}, "error", "text", true); err != nil {
		t.Fatal(err)
	}
	if l.GetLevel() != log.DebugLevel {
		t.Fatalf("level = %s", l.GetLevel())
	}
}

func TestConfigureRejectsBadInput(t *testing.T) {
	if err := configure(log.New(), &bytes.Buffer{}, "loud", "text", false); err == nil {
		t.Fatalf("expected level error")
	}
	if err := configure(log.New(), &bytes.Buffer{}, "info", "xml", false); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestValidateLeavesStandardLoggerAlone(t *testing.T) {
	before := log.GetLevel()
	if err := Validate("trace", "json"); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if log.GetLevel() != before {
		t.Fatalf("standard logger level changed")
	}
}
