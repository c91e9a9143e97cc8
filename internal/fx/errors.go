package fx

import "errors"

// Domain errors for effect fields.
var (
	// ErrNoSurface indicates the host could not provide a drawing surface.
	ErrNoSurface = errors.New("fx: no drawing surface")

	// ErrNoRand indicates a field was built without a random source.
	ErrNoRand = errors.New("fx: nil random source")
)

// FieldError wraps a construction error with the name of the field.
type FieldError struct {
	Field   string
	Wrapped error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Wrapped.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}
