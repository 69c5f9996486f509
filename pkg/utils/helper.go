package utils

import (
	"strconv"
)

// ParseOptionalInt parses an optional integer query value; ok is false when value is empty.
func ParseOptionalInt(value string) (n int, ok bool, err error) {
	if value == "" {
		return 0, false, nil
	}

	n, err = strconv.Atoi(value)
	if err != nil {
		return 0, true, err
	}

	return n, true, nil
}
