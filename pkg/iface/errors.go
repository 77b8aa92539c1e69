package iface

import (
	"errors"
	"fmt"
)

// Errors reported while building, decoding, and dispatching
// descriptors. Decode failures wrap one of the malformed sentinels;
// lookup misses and registration conflicts carry the offending name in
// their message.
var (
	ErrMalformedBuffer   = errors.New("iface: malformed descriptor buffer")
	ErrMalformedRecord   = errors.New("iface: malformed descriptor record")
	ErrDuplicateClass    = errors.New("iface: duplicate class name")
	ErrDuplicateMethod   = errors.New("iface: duplicate method name")
	ErrClassNotFound     = errors.New("iface: class not found")
	ErrMethodNotFound    = errors.New("iface: method not found")
	ErrHandleNotResolved = errors.New("iface: method handle not resolved")
)

func isDecodeSentinel(err error) bool {
	return errors.Is(err, ErrMalformedBuffer) ||
		errors.Is(err, ErrMalformedRecord) ||
		errors.Is(err, ErrDuplicateClass) ||
		errors.Is(err, ErrDuplicateMethod)
}

// coerce folds low-level read failures into sentinel while letting
// already-classified decode errors pass through unchanged.
func coerce(err error, sentinel error) error {
	switch {
	case err == nil:
		return nil
	case isDecodeSentinel(err):
		return err
	default:
		return fmt.Errorf("%w: %v", sentinel, err)
	}
}
