package block

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownBlockType is matched (via errors.Is) by every lookup, create or
	// render failure caused by an unregistered type.
	ErrUnknownBlockType = errors.New("block: unknown block type")
	// ErrInvalidParent reports a node placed under a parent type its
	// definition does not accept.
	ErrInvalidParent = errors.New("block: invalid parent type")
	// ErrNodeNotFound reports a NodeID that is not part of the document.
	ErrNodeNotFound = errors.New("block: node not found")
	// ErrDuplicateType reports a second registration for the same type.
	ErrDuplicateType = errors.New("block: type already registered")
)

// UnknownTypeError names the unregistered type.
type UnknownTypeError struct {
	Type Type
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("block: unknown block type %q", e.Type)
}

// Is matches ErrUnknownBlockType.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownBlockType
}
