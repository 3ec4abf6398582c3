package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Storage layouts for Event.Date and Event.Time.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	time24Re = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)
	time12Re = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)
)

// NormalizeDate parses a free-form date ("2026-03-11", "March 11, 2026", "03/11/2026",
// RFC 3339, ...) and returns the UTC calendar date as YYYY-MM-DD. Inputs without a zone
// are read as UTC.
func NormalizeDate(input string) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", newValidationError("date", "event date is required")
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return "", newValidationError("date", "invalid date format: expected a parseable date")
	}
	return t.UTC().Format(DateLayout), nil
}

// NormalizeTime accepts 24-hour "H:mm"/"HH:mm" or 12-hour "h:mm AM/PM" (meridiem is
// case-insensitive, space optional) and returns zero-padded 24-hour HH:mm.
func NormalizeTime(input string) (string, error) {
	raw := strings.TrimSpace(input)

	if m := time24Re.FindStringSubmatch(raw); m != nil {
		h, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if h > 23 || minute > 59 {
			return "", newValidationError("time", "invalid time value: expected hour 0-23 and minute 0-59")
		}
		return formatHHmm(h, minute), nil
	}

	if m := time12Re.FindStringSubmatch(raw); m != nil {
		h, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if h < 1 || h > 12 || minute > 59 {
			return "", newValidationError("time", "invalid time value: expected hour 1-12 and minute 0-59 for AM/PM times")
		}
		switch strings.ToLower(m[3]) {
		case "pm":
			if h != 12 {
				h += 12
			}
		case "am":
			if h == 12 {
				h = 0
			}
		}
		return formatHHmm(h, minute), nil
	}

	return "", newValidationError("time", "invalid time format: expected HH:mm or h:mm AM/PM")
}

func formatHHmm(h, m int) string {
	return fmt.Sprintf("%02d:%02d", h, m)
}
