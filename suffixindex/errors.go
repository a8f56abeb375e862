package suffixindex

import "errors"

// ErrCapacity indicates a table's pre-sized entry pool was exhausted.
// Every table is created with capacity equal to the exact number of
// inserts it will ever see, so reaching this is a programmer error in
// sizing, not a runtime condition to recover from.
var ErrCapacity = errors.New("suffixindex: entry pool exhausted")
