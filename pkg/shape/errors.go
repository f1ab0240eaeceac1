package shape

import "fmt"

// UnsupportedValueKindError reports a runtime value kind the normalizer does
// not recognize. Values that truly originate from parsed JSON never trigger
// it; it exists so a hand-built input fails fast instead of mis-rendering.
type UnsupportedValueKindError struct {
	Origin string
	Value  any
}

func (e *UnsupportedValueKindError) Error() string {
	return fmt.Sprintf("unsupported value kind %T at %s", e.Value, e.Origin)
}

// DuplicateRegistrationError reports an insert of a structural hash that is
// already registered. Callers must route through the normalizer's reuse path,
// so hitting this is a programming error, not a recoverable condition.
type DuplicateRegistrationError struct {
	Hash string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("duplicate registration for structural hash %s", e.Hash)
}
