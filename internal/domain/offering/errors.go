package offering

import "errors"

var (
	ErrNotFound    = errors.New("offering not found")
	ErrNotOwner    = errors.New("offering belongs to another provider")
	ErrInactive    = errors.New("offering is not active")
	ErrInvalidSlot = errors.New("time slot does not match session duration")
)
