package records

import "fmt"

// Choice is one entry of a static enumeration offered by a form select.
type Choice struct {
	Value string
	Label string
}

func LabelFor(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

func Contains(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// ValidateChoices reports duplicate or empty values, and a default that is not
// part of the table.
func ValidateChoices(name string, choices []Choice, def string) error {
	if len(choices) == 0 {
		return fmt.Errorf("%s: table is empty", name)
	}
	seen := make(map[string]struct{}, len(choices))
	for _, c := range choices {
		if c.Value == "" {
			return fmt.Errorf("%s: empty value", name)
		}
		if _, dup := seen[c.Value]; dup {
			return fmt.Errorf("%s: duplicate value %q", name, c.Value)
		}
		seen[c.Value] = struct{}{}
	}
	if _, ok := seen[def]; !ok {
		return fmt.Errorf("%s: default %q is not in table", name, def)
	}
	return nil
}
