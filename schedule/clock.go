package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// InvalidTimeFormatError reports a trigger time the registry cannot parse.
// No job is registered when this is returned.
type InvalidTimeFormatError struct {
	Input string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format %q: use 'H AM/PM' or 'H:MM AM/PM'", e.Input)
}

var clockPattern = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s?(AM|PM)$`)

// ParseClock converts a human time-of-day like "6 PM" or "6:30 am" into
// 24-hour "HH:MM" form. Hours run 1-12; "13 PM" is rejected.
func ParseClock(input string) (string, error) {
	match := clockPattern.FindStringSubmatch(strings.TrimSpace(input))
	if match == nil {
		return "", &InvalidTimeFormatError{Input: input}
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil || hour < 1 || hour > 12 {
		return "", &InvalidTimeFormatError{Input: input}
	}

	minute := 0
	if match[2] != "" {
		minute, err = strconv.Atoi(match[2])
		if err != nil || minute > 59 {
			return "", &InvalidTimeFormatError{Input: input}
		}
	}

	// 12 AM is midnight, 12 PM is noon
	hour = hour % 12
	if strings.EqualFold(match[3], "PM") {
		hour += 12
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
