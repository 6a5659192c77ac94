package catalog

import "errors"

// ErrSuperseded is returned to a suggestion request that a newer keystroke
// from the same session replaced before its delay ran out.
var ErrSuperseded = errors.New("suggestion request superseded")
