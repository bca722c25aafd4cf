// Package apperr holds the errors gateways hand back to callers. Storage
// causes are logged where they happen; callers only see the operation that
// failed.
package apperr

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("registro não encontrado")

// OpError is "Falha ao <op> <entidade>", optionally wrapping a cause that
// callers may test with errors.Is.
type OpError struct {
	Op       string
	Entidade string
	Err      error
}

func (e *OpError) Error() string {
	msg := fmt.Sprintf("Falha ao %s %s", e.Op, e.Entidade)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OpError) Unwrap() error { return e.Err }

// Falha is the generic error for a failed local operation, e.g.
// Falha("criar", "planta") -> "Falha ao criar planta".
func Falha(op, entidade string) error {
	return &OpError{Op: op, Entidade: entidade}
}

// NaoEncontrado reports an update or lookup on a missing record.
func NaoEncontrado(op, entidade string) error {
	return &OpError{Op: op, Entidade: entidade, Err: ErrNotFound}
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
