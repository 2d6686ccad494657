package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("") != Info || ParseLevel("nope") != Info {
		t.Fatalf("unexpected level parsing")
	}
	if ParseFormat(" JSON ") != FormatJSON || ParseFormat("logfmt") != FormatLogfmt || ParseFormat("x") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}

func TestLogger_JSONWithFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "pet-record-guardian", Output: &buf})

	log.Debug("hidden", nil)
	log.With(map[string]any{"pet_id": "pet-1"}).Warn("skipped record", map[string]any{"reason": "bad date", "": "ignored"})

	lines := readLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %v", len(lines), lines)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("json: %v line=%s", err, lines[0])
	}
	if entry["msg"] != "skipped record" {
		t.Fatalf("unexpected msg %v", entry["msg"])
	}
	if entry["level"] != "warn" {
		t.Fatalf("unexpected level %v", entry["level"])
	}
	if entry["app"] != "pet-record-guardian" || entry["pet_id"] != "pet-1" || entry["reason"] != "bad date" {
		t.Fatalf("missing fields: %v", entry)
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop().With(map[string]any{"k": "v"})
	l.Error("boom", map[string]any{"err": "x"})
}

func readLines(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	out := make([]string, 0)
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out
}
