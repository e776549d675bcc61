package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// String renders the record as "[Class] (id) {'attr': value, ...}".
// Bookkeeping attributes come first, the rest sorted by name. Attributes
// whose name starts with an underscore are private and left out.
func (r *Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] (%s) {", r.Class, r.ID)
	b.WriteString(formatPair(AttrID, r.ID))
	b.WriteString(", ")
	b.WriteString(formatPair(AttrCreatedAt, FormatTime(r.CreatedAt)))
	b.WriteString(", ")
	b.WriteString(formatPair(AttrUpdatedAt, FormatTime(r.UpdatedAt)))

	names := make([]string, 0, len(r.Attributes))
	for name := range r.Attributes {
		if strings.HasPrefix(name, "_") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(", ")
		b.WriteString(formatPair(name, r.Attributes[name]))
	}
	b.WriteString("}")
	return b.String()
}

func formatPair(name string, value any) string {
	return quoteString(name) + ": " + FormatValue(value)
}

// FormatValue renders a single attribute value the way the console prints
// it: quoted strings, plain integers, floats that always carry a decimal
// point and True/False booleans.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case string:
		return quoteString(t)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = formatPair(k, t[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(t)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// quoteString prefers single quotes and switches to double quotes when the
// text holds a single quote but no double quote.
func quoteString(s string) string {
	q := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
