package pricing

import "fmt"

// InvalidInputError reports a job parameter the engine refuses to price.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// outOfRange reports weight or print time large enough to overflow the cost
// or price arithmetic.
func outOfRange() error {
	return invalid("weightGrams|printTimeHours", "result out of range")
}
