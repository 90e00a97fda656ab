package domain

import "errors"

// ErrDuplicateEvent signals that an insert hit the (channel, raw_text)
// uniqueness guarantee. The saver counts it as a skip, not an error.
var ErrDuplicateEvent = errors.New("event already stored for channel and raw text")
