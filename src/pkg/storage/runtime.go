package storage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"filmscape/local-app/src/pkg/model"
)

const displayDateLayout = "January 02, 2006"

var (
	hoursMinutesPattern = regexp.MustCompile(`^(?:(\d+)\s*h(?:ours?|rs?)?)?\s*(?:(\d+)\s*m(?:in(?:utes?|s)?)?)?$`)
	timedeltaPattern    = regexp.MustCompile(`^(\d+)\s+days?\s+(\d{1,2}):(\d{2}):(\d{2})(?:\.\d+)?$`)
)

// ConvertRuntime parses runtime text into a duration. Accepted forms are
// "H h M min", "H h", "M min", a bare minute count, a Go duration such as
// "1h38m" and a timedelta such as "0 days 01:38:00".
func ConvertRuntime(text string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, &model.RuntimeFormatError{Input: text}
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, &model.RuntimeFormatError{Input: text}
		}
		return time.Duration(n) * time.Minute, nil
	}

	if m := timedeltaPattern.FindStringSubmatch(s); m != nil {
		days, _ := strconv.Atoi(m[1])
		hours, _ := strconv.Atoi(m[2])
		minutes, _ := strconv.Atoi(m[3])
		seconds, _ := strconv.Atoi(m[4])
		if minutes > 59 || seconds > 59 {
			return 0, &model.RuntimeFormatError{Input: text}
		}
		return time.Duration(days)*24*time.Hour + time.Duration(hours)*time.Hour +
			time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, nil
	}

	if m := hoursMinutesPattern.FindStringSubmatch(s); m != nil && (m[1] != "" || m[2] != "") {
		var d time.Duration
		if m[1] != "" {
			hours, _ := strconv.Atoi(m[1])
			d += time.Duration(hours) * time.Hour
		}
		if m[2] != "" {
			minutes, _ := strconv.Atoi(m[2])
			d += time.Duration(minutes) * time.Minute
		}
		return d, nil
	}

	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d, nil
	}

	return 0, &model.RuntimeFormatError{Input: text}
}

// FormatRuntime renders a duration as "H h M min".
func FormatRuntime(d time.Duration) string {
	total := int(d.Round(time.Minute) / time.Minute)
	return fmt.Sprintf("%d h %d min", total/60, total%60)
}

// FormatDate renders a release date as "January 02, 2006".
func FormatDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

// ParseDate parses an ISO date. A trailing "00:00:00" time part is tolerated.
func ParseDate(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	for _, layout := range []string{time.DateOnly, time.DateTime, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date '%s': expected YYYY-MM-DD", text)
}
