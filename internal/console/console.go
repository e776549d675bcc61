// Package console implements the hbnb command interpreter: it reads one
// line at a time, resolves canonical or dotted-call syntax and applies the
// result to the record store.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/aboiyar/AirBnB-clone/internal/event"
	"github.com/aboiyar/AirBnB-clone/internal/log"
	"github.com/aboiyar/AirBnB-clone/internal/storage"
	"github.com/aboiyar/AirBnB-clone/internal/ui"
)

// LineReader supplies input lines. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Console is one interpreter session over a store.
type Console struct {
	store         storage.Storage
	ui            *ui.UI
	logger        *log.Logger
	events        *event.EventManager
	hashPasswords bool
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sends every command and failure to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Console) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUI replaces the plain writer passed to New.
func WithUI(u *ui.UI) Option {
	return func(c *Console) {
		if u != nil {
			c.ui = u
		}
	}
}

// WithEvents publishes a record event after every saved create, update or
// destroy.
func WithEvents(em *event.EventManager) Option {
	return func(c *Console) {
		c.events = em
	}
}

// WithPasswordHashing stores User passwords as bcrypt hashes.
func WithPasswordHashing(enabled bool) Option {
	return func(c *Console) {
		c.hashPasswords = enabled
	}
}

// New creates a Console writing uncoloured output to out.
func New(store storage.Storage, out io.Writer, opts ...Option) *Console {
	c := &Console{
		store:  store,
		ui:     ui.NewUI(out, false),
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs one input line and reports whether the session should end.
func (c *Console) Execute(line string) (exit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	ctx := context.Background()
	c.logger.Command(ctx, redact(line), nil)

	verb, arg := splitVerb(line)
	if _, known := handlers[verb]; !known && !isExitVerb(verb) && strings.Contains(line, ".") {
		var err error
		verb, arg, err = rewriteDotted(line)
		if err != nil {
			c.report(ctx, line, err)
			return false
		}
		c.logger.Debug(ctx, "Rewrote dotted call", log.Fields{"line": redact(line), "verb": verb, "args": redact(arg)})
	}

	switch verb {
	case cmdQuit:
		return true
	case cmdEOF:
		c.ui.Println("")
		return true
	}

	handler, ok := handlers[verb]
	if !ok {
		c.report(ctx, line, ErrInvalidCommand)
		return false
	}
	if err := handler(c, arg); err != nil {
		c.report(ctx, line, err)
	}
	return false
}

// Run reads lines from r until quit, EOF or end of input.
func (c *Console) Run(r LineReader) error {
	for {
		line, err := r.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				c.ui.Info("Use 'quit' or Ctrl-D to exit.")
			}
			continue
		case errors.Is(err, io.EOF):
			c.Execute(cmdEOF)
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if c.Execute(line) {
			return nil
		}
	}
}

// ExecuteScript runs every line of the file at path. Blank lines and lines
// starting with # are skipped. It reports whether the script ended the
// session.
func (c *Console) ExecuteScript(path string) (exit bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open script file: %w", err)
	}
	defer file.Close()

	c.logger.Info(context.Background(), "Executing script", log.Fields{"path": path})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if c.Execute(line) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read script file: %w", err)
	}
	return false, nil
}

// report prints err. Fixed user errors are printed as they are; anything
// else is logged and wrapped in the same ** ** markers.
func (c *Console) report(ctx context.Context, line string, err error) {
	if isUserError(err) {
		c.ui.Error(err.Error())
		return
	}
	c.logger.Error(ctx, "Command failed", log.Fields{"command": redact(line), "error": err})
	c.ui.Error(fmt.Sprintf("** %s **", err))
}

func (c *Console) publish(t event.EventType, key string, attrs []string) {
	if c.events == nil {
		return
	}
	c.events.Publish(event.Event{Type: t, Key: key, Attrs: attrs})
}

func isExitVerb(verb string) bool {
	return verb == cmdQuit || verb == cmdEOF
}
