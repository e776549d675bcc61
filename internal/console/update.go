package console

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/aboiyar/AirBnB-clone/internal/event"
	"github.com/aboiyar/AirBnB-clone/internal/model"
)

var quoteReplacer = strings.NewReplacer("'", `"`, "‘", `"`, "’", `"`, "“", `"`, "”", `"`)

// doUpdate handles
//
//	update <Class> <id> <attribute> <value>
//	update <Class> <id> {<attribute>: <value>, ...}
func (c *Console) doUpdate(arg string) error {
	tokens := scanArgs(arg)
	args := make([]string, len(tokens))
	for i, t := range tokens {
		args[i] = t.text
	}

	rec, err := c.requireKey(args)
	if err != nil {
		return err
	}

	rest := strings.TrimSpace(arg[tokens[1].end:])
	if rest == "" {
		return ErrAttributeMissing
	}

	var assignments map[string]any
	if strings.HasPrefix(rest, "{") {
		if assignments, err = parseDict(rest); err != nil {
			return err
		}
	} else {
		pair := ParseArgs(rest)
		switch len(pair) {
		case 0:
			return ErrAttributeMissing
		case 1:
			return ErrValueMissing
		case 2:
			var value any = pair[1]
			if !c.hashesPassword(rec.Class, pair[0]) {
				value = model.ParseLiteral(pair[1])
			}
			assignments = map[string]any{pair[0]: value}
		default:
			return ErrInvalidUpdate
		}
	}

	var written []string
	err = c.store.Update(rec.Key(), func(r *model.Record) (bool, error) {
		names, changed, err := c.assign(r, assignments)
		written = names
		return changed, err
	})
	if err != nil {
		return err
	}
	if len(written) > 0 {
		c.publish(event.RecordUpdated, rec.Key(), written)
	}
	return nil
}

// assign applies every assignment to r, skipping identity and bookkeeping
// attributes. It returns the sorted names written and whether anything was.
func (c *Console) assign(r *model.Record, assignments map[string]any) ([]string, bool, error) {
	var written []string
	for name, value := range assignments {
		if model.IsProtected(name) {
			continue
		}
		value, err := c.prepareValue(r, name, value)
		if err != nil {
			return nil, false, err
		}
		if r.Set(name, value) {
			written = append(written, name)
		}
	}
	if len(written) == 0 {
		return nil, false, nil
	}
	sort.Strings(written)
	r.Touch()
	return written, true, nil
}

func (c *Console) hashesPassword(class, name string) bool {
	return c.hashPasswords && class == model.ClassUser && name == model.AttrPassword
}

// prepareValue hashes a User password, whatever literal type it was given
// as. A value that is already a bcrypt hash is stored unchanged.
func (c *Console) prepareValue(r *model.Record, name string, value any) (any, error) {
	if !c.hashesPassword(r.Class, name) {
		return value, nil
	}
	var plain string
	switch v := value.(type) {
	case string:
		if model.IsPasswordHash(v) {
			return v, nil
		}
		plain = v
	case json.Number:
		plain = v.String()
	default:
		plain = model.FormatValue(v)
	}
	return model.HashPassword(plain)
}

// parseDict reads a dictionary literal after turning every single or curly
// quote into a double quote. Anything but exactly one JSON object is an
// invalid update.
func parseDict(s string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(quoteReplacer.Replace(s))))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return nil, ErrInvalidUpdate
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrInvalidUpdate
	}
	return m, nil
}
