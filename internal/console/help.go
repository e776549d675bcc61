package console

import (
	"fmt"
	"strings"
)

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Command   string
	ShortDesc string
	LongDesc  string
	Syntax    []string
	Examples  []string
}

// commandHelps holds help information for all commands, in display order.
var commandHelps = []CommandHelp{
	{
		Command:   cmdCreate,
		ShortDesc: "Create a new instance and print its id",
		LongDesc:  "Creates a new instance of the given class, saves it and prints the generated id.",
		Syntax:    []string{"create <class>"},
		Examples:  []string{"create User"},
	},
	{
		Command:   cmdShow,
		ShortDesc: "Print an instance",
		LongDesc:  "Prints the string representation of the instance with the given class and id.",
		Syntax:    []string{"show <class> <id>", "<class>.show(\"<id>\")"},
		Examples:  []string{"show User 1234-1234-1234", "User.show(\"1234-1234-1234\")"},
	},
	{
		Command:   cmdDestroy,
		ShortDesc: "Delete an instance",
		LongDesc:  "Deletes the instance with the given class and id and saves the change.",
		Syntax:    []string{"destroy <class> <id>", "<class>.destroy(\"<id>\")"},
		Examples:  []string{"destroy User 1234-1234-1234"},
	},
	{
		Command:   cmdAll,
		ShortDesc: "List all instances, optionally of one class",
		LongDesc:  "Prints the string representation of every instance, or of every instance of the given class.",
		Syntax:    []string{"all [<class>]", "<class>.all()"},
		Examples:  []string{"all", "all Place", "Place.all()"},
	},
	{
		Command:   cmdCount,
		ShortDesc: "Count the instances of a class",
		LongDesc:  "Prints the number of stored instances of the given class.",
		Syntax:    []string{"count <class>", "<class>.count()"},
		Examples:  []string{"count City", "City.count()"},
	},
	{
		Command:   cmdUpdate,
		ShortDesc: "Set attributes on an instance",
		LongDesc: "Sets one attribute, or every pair of a dictionary, on the instance and saves it. " +
			"Values that read as integers, floats or booleans are stored as such. " +
			"id, created_at and updated_at are never changed.",
		Syntax: []string{
			"update <class> <id> <attribute> <value>",
			"update <class> <id> {<attribute>: <value>, ...}",
			"<class>.update(\"<id>\", \"<attribute>\", <value>)",
			"<class>.update(\"<id>\", {<attribute>: <value>, ...})",
		},
		Examples: []string{
			"update User 1234-1234-1234 email \"aibnb@mail.com\"",
			"User.update(\"1234-1234-1234\", {\"first_name\": \"John\", \"age\": 89})",
		},
	},
	{
		Command:   cmdHelp,
		ShortDesc: "Show help",
		LongDesc:  "Lists the commands, or describes one command.",
		Syntax:    []string{"help [<command>]"},
		Examples:  []string{"help update"},
	},
	{
		Command:   cmdQuit,
		ShortDesc: "Exit the console",
		LongDesc:  "Ends the session. End of input (Ctrl-D) does the same.",
		Syntax:    []string{"quit", "EOF"},
	},
}

func (c *Console) doHelp(arg string) error {
	args := ParseArgs(arg)
	if len(args) == 0 {
		c.showGeneralHelp()
		return nil
	}
	for _, h := range commandHelps {
		if h.Command == args[0] {
			c.showCommandHelp(h)
			return nil
		}
	}
	if args[0] == cmdEOF {
		c.showCommandHelp(commandHelps[len(commandHelps)-1])
		return nil
	}
	c.ui.Error(fmt.Sprintf("** no help on %s **", args[0]))
	return nil
}

// showGeneralHelp displays an overview of all available commands.
func (c *Console) showGeneralHelp() {
	c.ui.Println("Documented commands (type help <command>):")
	for _, h := range commandHelps {
		c.ui.Printf("  %-15s %s\n", h.Command, h.ShortDesc)
	}
}

func (c *Console) showCommandHelp(h CommandHelp) {
	c.ui.Printf("Syntax:\n  %s\n", strings.Join(h.Syntax, "\n  "))
	c.ui.Printf("Description:\n  %s\n", h.LongDesc)
	if len(h.Examples) > 0 {
		c.ui.Printf("Examples:\n  %s\n", strings.Join(h.Examples, "\n  "))
	}
}
