package ledger

import "errors"

// ErrInvalidArgument is returned when a caller passes structurally invalid input.
// Unknown ids are not errors: those operations are silent no-ops.
var ErrInvalidArgument = errors.New("invalid argument")
