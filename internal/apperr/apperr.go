package apperr

import (
	"errors"
	"fmt"
)

/* Dois tipos de erro bastam para o domínio da livraria.
 * A camada HTTP decide o status code com errors.Is, sem conhecer os pacotes de negócio.
 */

var (
	// ErrValidation marks a rejected input or a violated business rule.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced entity that does not exist in storage.
	ErrNotFound = errors.New("not found")
)

// Error carries a human readable message and the kind it belongs to.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Validation builds a validation error with the given message.
func Validation(format string, args ...any) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found error with the given message.
func NotFound(format string, args ...any) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Detail refines an existing error with a more specific message; the result still matches base.
func Detail(base error, format string, args ...any) error {
	return &Error{kind: base, msg: fmt.Sprintf(format, args...)}
}

// Message returns the text of the outermost Error in the chain, dropping the
// "doing x:" prefixes added while the error travelled up. Other errors keep their text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return err.Error()
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
