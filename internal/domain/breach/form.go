package breach

import (
	"fmt"
	"strconv"
	"strings"

	"pdpconsole/internal/domain/records"
)

// SetField stores raw form input. Affected users take the leading integer of
// the input ("12abc" is 12, "3.5" is 3); input without one becomes 0.
func SetField(d *Draft, name, raw string) error {
	switch name {
	case FieldType:
		d.Type = raw
	case FieldSeverity:
		d.Severity = raw
	case FieldDescription:
		d.Description = raw
	case FieldAffectedUsers:
		d.AffectedUsers = parseCount(raw)
	default:
		return fmt.Errorf("%w: %s", records.ErrUnknownField, name)
	}
	return nil
}

func parseCount(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return n
}
