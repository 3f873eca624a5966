package target

import "errors"

// ErrZeroArea is returned when a target is sized with a zero or negative
// width or height. A window that is minimized, or not yet laid out, commonly
// reports a zero-area drawable momentarily; callers should wait for a
// valid size before configuring a target again.
var ErrZeroArea = errors.New("target: zero width or height")
