package batch

import (
	"errors"
	"fmt"
)

// ErrOverwriteDeclined is returned by Run when existing output files
// were found and the confirmation port declined to overwrite them.
// Nothing has been read or written when this is returned.
var ErrOverwriteDeclined = errors.New("overwrite of existing output files declined")

// CountMismatchError is returned by Run when the reference and target
// lists differ in length. It is fatal and detected before any I/O.
type CountMismatchError struct {
	References int
	Targets    int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("mismatch: %d reference images vs %d target images", e.References, e.Targets)
}
