package model

import (
	"regexp"
	"strconv"
)

var (
	intLiteral   = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$`)
	floatLiteral = regexp.MustCompile(`^[+-]?(([0-9]+\.[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?|[0-9]+[eE][+-]?[0-9]+)$`)
)

// ParseLiteral interprets user text as an integer, then a float, then a
// boolean. Integers beyond the int range become floats. Anything else,
// including text that only looks numeric, is kept as the original string.
// It never fails.
func ParseLiteral(s string) any {
	if intLiteral.MatchString(s) {
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		// too large for int: same as a decoded JSON number
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	}
	if floatLiteral.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	}
	switch s {
	case "True", "true":
		return true
	case "False", "false":
		return false
	}
	return s
}
