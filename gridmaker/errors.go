package gridmaker

import (
	"errors"
	"fmt"

	"github.com/atomraster/gridmaker/tensor"
)

// Sentinel errors. All gridmaker failures are programmer errors —
// precondition violations on shapes or type encodings — never runtime
// errors, matching spec.md 4.3.6.
var (
	ErrShapeMismatch       = errors.New("gridmaker: shape mismatch")
	ErrTypeEncodingMissing = errors.New("gridmaker: required type encoding missing")
	ErrOutOfRange          = errors.New("gridmaker: batch leading dimension out of range")
)

// ShapeError details a shape mismatch: which call (Context) expected what
// shape and got what instead. Unwraps to ErrShapeMismatch.
type ShapeError struct {
	Context  string
	Expected tensor.Shape
	Got      tensor.Shape
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("gridmaker: %s: expected shape %v, got %v", e.Context, e.Expected, e.Got)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// TypeEncodingError details which operation needed a type encoding the
// coordinate set didn't carry. Unwraps to ErrTypeEncodingMissing.
type TypeEncodingError struct {
	Context string
	Need    string
}

func (e *TypeEncodingError) Error() string {
	return fmt.Sprintf("gridmaker: %s: requires %s", e.Context, e.Need)
}

func (e *TypeEncodingError) Unwrap() error {
	return ErrTypeEncodingMissing
}
