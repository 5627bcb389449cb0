package schema

import "errors"

var (
	// ErrUnknownStatus indicates a status column value outside Active/Deleted/Updated.
	ErrUnknownStatus = errors.New("unknown program status")
	// ErrInvalidWBS indicates a WBS element that matches neither known shape.
	ErrInvalidWBS = errors.New("invalid wbs element")
)
