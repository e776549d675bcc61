package console

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/aboiyar/AirBnB-clone/internal/model"
)

// token is one whitespace separated argument with its quotes removed. end is
// the byte offset just past the token in the scanned text.
type token struct {
	text string
	end  int
}

// scanArgs splits input on whitespace. Single or double quotes group text
// containing spaces; the quotes themselves are dropped. An unterminated
// quote runs to the end of the input.
func scanArgs(input string) []token {
	var (
		tokens  []token
		current strings.Builder
		quote   rune
		inToken bool
	)
	for i, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, token{text: current.String(), end: i})
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, token{text: current.String(), end: len(input)})
	}

	// an explicit "" is still a missing argument
	out := tokens[:0]
	for _, t := range tokens {
		if t.text != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseArgs returns the plain text of every argument in input.
func ParseArgs(input string) []string {
	tokens := scanArgs(input)
	args := make([]string, len(tokens))
	for i, t := range tokens {
		args[i] = t.text
	}
	return args
}

// splitVerb separates the first word of a line from the rest.
func splitVerb(line string) (verb, rest string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

var callPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\((.*)\)$`)

// rewriteDotted turns "Class.method(args)" into a canonical verb and
// argument string.
func rewriteDotted(line string) (verb, arg string, err error) {
	class, call, _ := strings.Cut(line, ".")
	class = strings.TrimSpace(class)
	if class == "" {
		return "", "", ErrClassMissing
	}
	if !model.IsKnownClass(class) {
		return "", "", ErrClassUnknown
	}

	m := callPattern.FindStringSubmatch(strings.TrimSpace(call))
	if m == nil {
		return "", "", ErrInvalidCommand
	}
	method := m[1]
	args, err := splitCallArgs(m[2])
	if err != nil {
		return "", "", err
	}

	switch method {
	case cmdAll, cmdCount:
		if len(args) != 0 {
			return "", "", ErrInvalidCommand
		}
		return method, class, nil
	case cmdShow, cmdDestroy:
		if len(args) != 1 {
			return "", "", ErrInvalidCommand
		}
		return method, joinArgs(class, quoteArg(unquote(args[0]))), nil
	case cmdUpdate:
		switch {
		case len(args) == 2 && strings.HasPrefix(args[1], "{"):
			return method, joinArgs(class, quoteArg(unquote(args[0])), args[1]), nil
		case len(args) == 3:
			value := args[2]
			if u := unquote(value); u != value {
				value = quoteArg(u)
			}
			return method, joinArgs(class, quoteArg(unquote(args[0])), quoteArg(unquote(args[1])), value), nil
		}
		return "", "", ErrInvalidCommand
	default:
		return "", "", ErrInvalidCommand
	}
}

// splitCallArgs splits the text between the parentheses of a dotted call
// on commas that sit outside quotes and braces.
func splitCallArgs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var (
		args  []string
		start int
		depth int
		quote rune
	)
	for i, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case isQuote(r):
			quote = closingQuote(r)
		case r == '{' || r == '[':
			depth++
		case r == '}' || r == ']':
			depth--
		case r == ',' && depth == 0:
			args = append(args, strings.TrimSpace(raw[start:i]))
			start = i + 1
		}
	}
	if quote != 0 || depth != 0 {
		return nil, ErrInvalidCommand
	}
	args = append(args, strings.TrimSpace(raw[start:]))
	for _, a := range args {
		if a == "" {
			return nil, ErrInvalidCommand
		}
	}
	return args, nil
}

func isQuote(r rune) bool {
	switch r {
	case '"', '\'', '‘', '’', '“', '”':
		return true
	}
	return false
}

func closingQuote(r rune) rune {
	switch r {
	case '‘':
		return '’'
	case '“':
		return '”'
	}
	return r
}

// unquote strips one pair of matching quotes.
func unquote(s string) string {
	r := []rune(s)
	if len(r) >= 2 && isQuote(r[0]) && r[len(r)-1] == closingQuote(r[0]) {
		return string(r[1 : len(r)-1])
	}
	return s
}

// quoteArg quotes s when scanArgs would otherwise split it.
func quoteArg(s string) string {
	if s != "" && !strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '\''
	}) {
		return s
	}
	if strings.Contains(s, `"`) {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}

func joinArgs(args ...string) string {
	return strings.Join(args, " ")
}
