package evaluation

import "fmt"

// ValidationError is a blocking, field-scoped input error. The cli layer
// renders these inline under the offending field and aborts submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
