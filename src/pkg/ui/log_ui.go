package ui

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var levelStyles = map[string]lipgloss.Style{
	"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

var (
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("201"))
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
)

// LogEntry is one decoded JSON log line.
type LogEntry map[string]interface{}

// ParseLogEntry decodes a JSON log line.
func ParseLogEntry(line string) (LogEntry, error) {
	var entry LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return nil, fmt.Errorf("failed to parse log entry: %w", err)
	}
	return entry, nil
}

// LogEntryFormat renders an entry as a compact header line followed by one indented line per field.
func (u *UI) LogEntryFormat(entry LogEntry) string {
	timestamp, _ := entry["time"].(string)
	level, _ := entry["level"].(string)
	msg, _ := entry["msg"].(string)

	level = strings.ToUpper(level)
	levelStyle, ok := levelStyles[level]
	if !ok {
		levelStyle = lipgloss.NewStyle()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s",
		u.style(formatTimestamp(timestamp), timeStyle),
		u.style(fmt.Sprintf("%-5s", level), levelStyle),
		msg)

	keys := make([]string, 0, len(entry))
	for key := range entry {
		if key != "time" && key != "level" && key != "msg" {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, "\n    %s %v", u.style(key+":", keyStyle), entry[key])
	}
	return b.String()
}

func formatTimestamp(timestamp string) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format("06-01-02 15:04:05.000000")
}
