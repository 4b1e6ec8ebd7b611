package services

import (
	"strings"
	"time"
)

// WIB is the fixed civil timezone (+07:00) used for all displayed timestamps,
// independent of server locale.
var WIB = time.FixedZone("WIB", 7*60*60)

const timeLayout = "02-01-2006 15:04:05"

// Stored formats from earlier versions of the schema that must still render.
var legacyLayouts = []string{
	"2006-01-02 15:04:05",
	"02-01-2006 15:04:05",
}

// NowWIB returns the current time rendered in the canonical stored form.
func NowWIB() string {
	return time.Now().In(WIB).Format(timeLayout) + " WIB"
}

// FormatWIB re-renders a stored timestamp in the canonical form. Values that
// are already canonical pass through, legacy and ISO forms are reparsed, and
// anything unparseable is returned verbatim rather than failing: display is
// best-effort.
func FormatWIB(value string) string {
	if value == "" {
		return ""
	}
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, "WIB") {
		return value
	}

	raw := strings.Replace(value, "Z", "+00:00", 1)
	parsed, err := parseISO(raw)
	if err != nil {
		for _, layout := range legacyLayouts {
			if p, perr := time.Parse(layout, value); perr == nil {
				parsed = p
				err = nil
				break
			}
		}
		if err != nil {
			return value
		}
	}

	// time.Parse treats zoneless layouts as UTC, which matches how naive
	// legacy values were written.
	return parsed.In(WIB).Format(timeLayout) + " WIB"
}

func parseISO(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
