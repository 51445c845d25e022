package mrb

import "fmt"

// CastError is the single error kind raised by the inbound converters:
// the value's discriminant did not match the variant the converter
// expects. It names only the expected variant, never the actual one, so
// callers may report it but must not branch on its content.
//
// Cast failures are always locally recoverable. Conversions are pure
// and idempotent; re-attempting has no side effects.
type CastError struct {
	Expected string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cast failed: expected %s", e.Expected)
}

func castError(expected string) error {
	return &CastError{Expected: expected}
}
