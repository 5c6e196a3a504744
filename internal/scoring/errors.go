// internal/scoring/errors.go
package scoring

import (
	"errors"
	"fmt"
)

// ErrZeroImportanceSignal means the aggregated corpus carried no usable
// importance signal at all: every allocation would divide by zero. This is
// a precondition violation of the allocation stage, never defaulted.
var ErrZeroImportanceSignal = errors.New("total average importance weight is zero")

// MissingDataError reports a nested institution attribute that a stage
// required but could not find. Stage and Factor identify where the lookup
// originated; Path is the attribute path that failed.
type MissingDataError struct {
	Stage       string
	Factor      string
	Institution string
	Path        string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing data in %s: institution %q has no %q (factor %s)",
		e.Stage, e.Institution, e.Path, e.Factor)
}

// IsMissingData reports whether err wraps a MissingDataError.
func IsMissingData(err error) bool {
	var mde *MissingDataError
	return errors.As(err, &mde)
}
