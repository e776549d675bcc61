package console

import (
	"strconv"
	"strings"

	"github.com/aboiyar/AirBnB-clone/internal/event"
	"github.com/aboiyar/AirBnB-clone/internal/model"
	"github.com/aboiyar/AirBnB-clone/internal/storage"
)

const (
	cmdCreate  = "create"
	cmdShow    = "show"
	cmdDestroy = "destroy"
	cmdAll     = "all"
	cmdCount   = "count"
	cmdUpdate  = "update"
	cmdHelp    = "help"
	cmdQuit    = "quit"
	cmdEOF     = "EOF"
)

type handlerFunc func(c *Console, arg string) error

var handlers map[string]handlerFunc

func init() {
	handlers = map[string]handlerFunc{
		cmdCreate:  (*Console).doCreate,
		cmdShow:    (*Console).doShow,
		cmdDestroy: (*Console).doDestroy,
		cmdAll:     (*Console).doAll,
		cmdCount:   (*Console).doCount,
		cmdUpdate:  (*Console).doUpdate,
		cmdHelp:    (*Console).doHelp,
	}
}

// requireClass validates the first argument as an entity type name.
func requireClass(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrClassMissing
	}
	if !model.IsKnownClass(args[0]) {
		return "", ErrClassUnknown
	}
	return args[0], nil
}

// requireKey runs the class, id and existence checks shared by show,
// destroy and update.
func (c *Console) requireKey(args []string) (*model.Record, error) {
	class, err := requireClass(args)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, ErrIDMissing
	}
	rec, ok := c.store.Get(model.Key(class, args[1]))
	if !ok {
		return nil, ErrNoInstance
	}
	return rec, nil
}

func (c *Console) doCreate(arg string) error {
	class, err := requireClass(ParseArgs(arg))
	if err != nil {
		return err
	}

	rec := model.NewRecord(class)
	if err := c.store.New(rec); err != nil {
		return err
	}
	if err := c.store.Save(); err != nil {
		c.store.Delete(rec.Key())
		return err
	}
	c.publish(event.RecordCreated, rec.Key(), nil)
	c.ui.Println(rec.ID)
	return nil
}

func (c *Console) doShow(arg string) error {
	rec, err := c.requireKey(ParseArgs(arg))
	if err != nil {
		return err
	}
	c.ui.Println(rec.String())
	return nil
}

func (c *Console) doDestroy(arg string) error {
	rec, err := c.requireKey(ParseArgs(arg))
	if err != nil {
		return err
	}
	if err := c.store.Destroy(rec.Key()); err != nil {
		if storage.IsNotFound(err) {
			return ErrNoInstance
		}
		return err
	}
	c.publish(event.RecordDestroyed, rec.Key(), nil)
	return nil
}

func (c *Console) doAll(arg string) error {
	args := ParseArgs(arg)
	class := ""
	if len(args) > 0 {
		var err error
		if class, err = requireClass(args); err != nil {
			return err
		}
	}

	list := []any{}
	for _, rec := range c.store.All() {
		if class == "" || rec.Class == class {
			list = append(list, rec.String())
		}
	}
	c.ui.Println(model.FormatValue(list))
	return nil
}

func (c *Console) doCount(arg string) error {
	class, err := requireClass(ParseArgs(arg))
	if err != nil {
		return err
	}

	n := 0
	prefix := class + "."
	for _, rec := range c.store.All() {
		if strings.HasPrefix(rec.Key(), prefix) {
			n++
		}
	}
	c.ui.Println(strconv.Itoa(n))
	return nil
}
