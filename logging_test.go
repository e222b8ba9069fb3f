package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"towerwitch/config"
)

func TestLogFileNameForDate(t *testing.T) {
	when := time.Date(2026, time.January, 22, 12, 0, 0, 0, time.UTC)
	if got := logFileNameForDate(when); got != "22-Jan-2026.log" {
		t.Fatalf("expected log filename to be 22-Jan-2026.log, got %q", got)
	}
}

func TestParseLogFileDate(t *testing.T) {
	parsed, ok := parseLogFileDate("22-Jan-2026.log")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if parsed.Year() != 2026 || parsed.Month() != time.January || parsed.Day() != 22 {
		t.Fatalf("unexpected parsed date: %s", parsed.Format(time.RFC3339))
	}
	if _, ok := parseLogFileDate("notes.txt"); ok {
		t.Fatalf("expected non-log file to be rejected")
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"20-Jan-2026.log",
		"21-Jan-2026.log",
		"22-Jan-2026.log",
		"notes.txt",
	}
	for _, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	now := time.Date(2026, time.January, 22, 12, 0, 0, 0, time.UTC)
	if err := cleanupOldLogs(dir, now, 2); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "20-Jan-2026.log")); err == nil {
		t.Fatalf("expected 20-Jan-2026.log to be removed")
	} else if !os.IsNotExist(err) {
		t.Fatalf("stat: %v", err)
	}
	expectPresent := []string{"21-Jan-2026.log", "22-Jan-2026.log", "notes.txt"}
	for _, name := range expectPresent {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to remain: %v", name, err)
		}
	}
}

func TestDailyFileSinkRotates(t *testing.T) {
	dir := t.TempDir()
	sink, err := newDailyFileSink(dir, 7)
	if err != nil {
		t.Fatalf("newDailyFileSink: %v", err)
	}
	defer sink.Close()

	day1 := time.Date(2026, time.January, 22, 12, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	sink.WriteLine("first", day1)
	sink.WriteLine("second", day2)

	for name, want := range map[string]string{
		"22-Jan-2026.log": "first",
		"23-Jan-2026.log": "second",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %s to contain %q, got %q", name, want, data)
		}
	}
}

func TestFanoutSplitsLines(t *testing.T) {
	var console strings.Builder
	fanout := newLogFanout(&ioLineSink{w: &console}, nil)

	if _, err := fanout.Write([]byte("one\ntwo\npartial")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := console.String(); got != "one\ntwo\n" {
		t.Fatalf("expected complete lines only, got %q", got)
	}
	if _, err := fanout.Write([]byte(" line\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(console.String(), "partial line\n") {
		t.Fatalf("expected buffered fragment to complete, got %q", console.String())
	}
}

func TestFanoutFileOnlyLine(t *testing.T) {
	dir := t.TempDir()
	var console strings.Builder
	fanout, err := setupLogging(config.LoggingConfig{Enabled: true, Dir: dir, RetentionDays: 7}, &console)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	defer fanout.Close()

	now := time.Date(2026, time.January, 22, 12, 0, 0, 0, time.UTC)
	fanout.WriteFileOnlyLine("Status: testing", now)

	data, err := os.ReadFile(filepath.Join(dir, "22-Jan-2026.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "Status: testing") {
		t.Fatalf("expected status line in file, got %q", data)
	}
	if console.Len() != 0 {
		t.Fatalf("expected nothing on console, got %q", console.String())
	}
}

func TestSetConsoleSinkSwap(t *testing.T) {
	var first, second strings.Builder
	fanout := newLogFanout(&ioLineSink{w: &first}, nil)

	fanout.Write([]byte("before\n"))
	fanout.SetConsoleSink(&second, false)
	fanout.Write([]byte("after\n"))
	fanout.SetConsoleSink(nil, false)
	fanout.Write([]byte("dropped\n"))

	if got := first.String(); got != "before\n" {
		t.Fatalf("first sink got %q", got)
	}
	if got := second.String(); got != "after\n" {
		t.Fatalf("second sink got %q", got)
	}
}
