package errs

import (
	"errors"
	"fmt"
)

// Failure classes of the generate and run pipeline. A run whose tests fail
// is not one of them: it is a normal outcome with Success=false.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrRender       = errors.New("render failed")
	ErrGeneration   = errors.New("generation failed")
	ErrValidation   = errors.New("generated script failed validation")
	ErrIO           = errors.New("artifact io failed")
	ErrSpawn        = errors.New("could not start test run")
	ErrNotFound     = errors.New("not found")
)

// Error ties a failure class to the operation and cause that produced it.
// errors.Is matches both Kind and the wrapped cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func RenderError(op string, err error) error     { return newError(ErrRender, op, err) }
func GenerationError(op string, err error) error { return newError(ErrGeneration, op, err) }
func ValidationError(op string, err error) error { return newError(ErrValidation, op, err) }
func IOError(op string, err error) error         { return newError(ErrIO, op, err) }
func SpawnError(op string, err error) error      { return newError(ErrSpawn, op, err) }
func NotFound(op string, err error) error        { return newError(ErrNotFound, op, err) }
func InvalidInput(op string, err error) error    { return newError(ErrInvalidInput, op, err) }

// Attempted reports whether err comes from a stage that ran against the target
// (render, generation, validation) as opposed to local plumbing failures.
func Attempted(err error) bool {
	return errors.Is(err, ErrRender) || errors.Is(err, ErrGeneration) || errors.Is(err, ErrValidation)
}
