// Package ui writes console output, colouring it only when the output is a
// terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type Color string

const (
	ColorDefault   Color = "\033[0m"
	ColorGray      Color = "\033[38;2;150;150;150m"
	ColorLightRed  Color = "\033[38;2;255;150;150m"
	ColorLightBlue Color = "\033[38;2;150;150;255m"
)

type UI struct {
	writer   io.Writer
	useColor bool
}

func NewUI(w io.Writer, useColor bool) *UI {
	return &UI{writer: w, useColor: useColor}
}

// NewTerminalUI colours output only when f is attached to a terminal.
func NewTerminalUI(f *os.File) *UI {
	return NewUI(f, IsTerminal(f))
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (u *UI) colorize(message string, color Color) string {
	if !u.useColor || color == ColorDefault {
		return message
	}
	return fmt.Sprintf("%s%s%s", color, message, ColorDefault)
}

func (u *UI) Print(message string) {
	fmt.Fprint(u.writer, message)
}

func (u *UI) Printf(format string, args ...interface{}) {
	fmt.Fprintf(u.writer, format, args...)
}

func (u *UI) Println(message string) {
	fmt.Fprintln(u.writer, message)
}

func (u *UI) PrintlnColored(message string, color Color) {
	fmt.Fprintln(u.writer, u.colorize(message, color))
}

// Error prints an error line unchanged apart from colour.
func (u *UI) Error(message string) {
	u.PrintlnColored(message, ColorLightRed)
}

func (u *UI) Info(message string) {
	u.PrintlnColored(message, ColorGray)
}

// PromptString colours the prompt text, leaving trailing spaces plain.
func (u *UI) PromptString(prompt string) string {
	trimmed := strings.TrimRight(prompt, " ")
	return u.colorize(trimmed, ColorLightBlue) + prompt[len(trimmed):]
}
