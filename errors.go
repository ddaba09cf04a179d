package balance

import (
	"errors"
	"fmt"
)

// Error kinds used across the package. Callers match them with errors.Is;
// every returned error wraps exactly one of these (or none, for plain
// contextual errors inside a FieldError).
var (
	// ErrInvalidDecimal reports a text value that is not a base-10 decimal literal.
	ErrInvalidDecimal = errors.New("invalid decimal")
	// ErrInvalidTimestamp reports a text value that is not an ISO-8601 timestamp.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrInvalidEmoji reports a category emoji that is not exactly one display character.
	ErrInvalidEmoji = errors.New("invalid emoji")
	// ErrSerialization reports an encode failure or a whole-document decode
	// failure, e.g. a cache file whose top level is not a JSON array. It
	// indicates a data or model bug rather than an environment problem.
	ErrSerialization = errors.New("serialization error")
	// ErrFileRead and ErrFileWrite report I/O failures, kept distinct from
	// ErrSerialization for diagnosability.
	ErrFileRead  = errors.New("file read error")
	ErrFileWrite = errors.New("file write error")
	// ErrNotFound reports a record id absent from the cache.
	ErrNotFound = errors.New("not found")
)

// FieldError locates a decode failure within a transaction tree, e.g.
// "account.balance". It wraps the underlying cause so error kinds remain
// matchable through it.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string { return fmt.Sprintf("field %q: %v", e.Path, e.Err) }

func (e *FieldError) Unwrap() error { return e.Err }

// joinPath appends a key to a dotted field path.
func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
