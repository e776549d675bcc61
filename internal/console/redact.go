package console

import "regexp"

// passwordValue matches the value that follows a password attribute name
// in canonical, dict and dotted-call form.
var passwordValue = regexp.MustCompile(
	`(password["'‘’“”]?(?:\s*[:,]\s*|\s+))("[^"]*"?|'[^']*'?|“[^”]*”?|‘[^’]*’?|[^\s,})]+)`)

// redact hides password values so command lines can be logged.
func redact(line string) string {
	return passwordValue.ReplaceAllString(line, "${1}***")
}
