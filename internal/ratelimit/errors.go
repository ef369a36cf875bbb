package ratelimit

import "errors"

// ErrLockTimeout is returned when a bucket lock could not be taken in time
var ErrLockTimeout = errors.New(ErrMsgLockTimeout)
