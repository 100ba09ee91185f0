package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LogEntry is one decoded log line. Attributes other than the ones the
// viewer filters on are kept in Attrs.
type LogEntry struct {
	Timestamp time.Time      `json:"time"`
	Level     string         `json:"level"`
	Message   string         `json:"msg"`
	Operation string         `json:"operation,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	SessionID int            `json:"session_id,omitempty"`
	Attrs     map[string]any `json:"-"`
}

// entryFields are the JSON keys decoded into LogEntry fields.
var entryFields = map[string]bool{
	"time": true, "level": true, "msg": true,
	KeyOperation: true, KeyRequest: true, KeySession: true,
}

// maxLineSize bounds a single log line. Prompts and analyses can be long.
const maxLineSize = 1024 * 1024

// ReadLogs reads and parses all log entries from {dir}/rfpdesk.log.
// Lines that are not valid JSON are skipped. Entries are returned sorted
// by timestamp in ascending order.
func ReadLogs(dir string) ([]LogEntry, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no log file found in %s: %w", dir, err)
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := decodeEntries(f)
	if err != nil {
		return nil, fmt.Errorf("error reading log file: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func decodeEntries(r io.Reader) ([]LogEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var entries []LogEntry
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if entry, err := ParseEntry(line); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, scanner.Err()
}

// ParseEntry parses a single JSON log line into a LogEntry.
func ParseEntry(line string) (LogEntry, error) {
	var entry LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return LogEntry{}, fmt.Errorf("invalid log line: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return LogEntry{}, fmt.Errorf("invalid log line: %w", err)
	}

	entry.Attrs = make(map[string]any, len(raw))
	for k, v := range raw {
		if !entryFields[k] {
			entry.Attrs[k] = v
		}
	}
	return entry, nil
}

// LogFilter defines criteria for filtering log entries. Zero values
// disable the corresponding criterion; set criteria are combined with AND.
type LogFilter struct {
	// Level keeps entries at or above this level (DEBUG < INFO < WARN < ERROR).
	Level string

	StartTime time.Time
	EndTime   time.Time

	Operation string
	RequestID string
	SessionID int

	MessageContains string
}

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Match reports whether e satisfies every criterion that is set.
func (f LogFilter) Match(e LogEntry) bool {
	if f.Level != "" {
		want, wantOK := levelRank[strings.ToUpper(f.Level)]
		got, gotOK := levelRank[e.Level]
		if wantOK && gotOK && got < want {
			return false
		}
	}
	switch {
	case !f.StartTime.IsZero() && e.Timestamp.Before(f.StartTime):
		return false
	case !f.EndTime.IsZero() && e.Timestamp.After(f.EndTime):
		return false
	case f.Operation != "" && e.Operation != f.Operation:
		return false
	case f.RequestID != "" && e.RequestID != f.RequestID:
		return false
	case f.SessionID != 0 && e.SessionID != f.SessionID:
		return false
	case f.MessageContains != "" && !strings.Contains(e.Message, f.MessageContains):
		return false
	}
	return true
}

// FilterLogs returns the entries that match filter, in order.
func FilterLogs(entries []LogEntry, filter LogFilter) []LogEntry {
	if filter == (LogFilter{}) {
		return entries
	}
	var out []LogEntry
	for _, e := range entries {
		if filter.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Tail returns the last n entries. n <= 0 returns all of them.
func Tail(entries []LogEntry, n int) []LogEntry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}

// FormatEntry renders an entry as a single line:
//
//	2026-03-04 09:30:00.120 WARN  [upload_rfp] request failed kind=transport status=502 request_id=...
func FormatEntry(e LogEntry) string {
	parts := []string{e.Timestamp.Format("2006-01-02 15:04:05.000"), fmt.Sprintf("%-5s", e.Level)}
	if e.Operation != "" {
		parts = append(parts, "["+e.Operation+"]")
	}
	parts = append(parts, e.Message)

	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Attrs[k]))
	}
	if e.SessionID != 0 {
		parts = append(parts, fmt.Sprintf("%s=%d", KeySession, e.SessionID))
	}
	if e.RequestID != "" {
		parts = append(parts, KeyRequest+"="+e.RequestID)
	}
	return strings.Join(parts, " ")
}
