package console

import "errors"

// User-facing errors. Their text is printed verbatim.
var (
	ErrClassMissing     = errors.New("** class name missing **")
	ErrClassUnknown     = errors.New("** class doesn't exist **")
	ErrIDMissing        = errors.New("** instance id missing **")
	ErrNoInstance       = errors.New("** no instance found **")
	ErrAttributeMissing = errors.New("** attribute name missing **")
	ErrValueMissing     = errors.New("** value missing **")
	ErrInvalidUpdate    = errors.New("** invalid update format **")
	ErrInvalidCommand   = errors.New("** invalid command **")
)

var userErrors = []error{
	ErrClassMissing,
	ErrClassUnknown,
	ErrIDMissing,
	ErrNoInstance,
	ErrAttributeMissing,
	ErrValueMissing,
	ErrInvalidUpdate,
	ErrInvalidCommand,
}

func isUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
