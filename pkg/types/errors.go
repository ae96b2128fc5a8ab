// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrUnsupportedExtension is returned when a source file is neither
// .novx nor .mdnov. No output is written.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// MalformedDocumentError reports a source document that does not
// parse into the expected tree shape. Nothing is written.
type MalformedDocumentError struct {
	Format string
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed %s document: %s", e.Format, e.Reason)
}

// SerializationError reports a model that lacks data the target
// format requires. The caller aborts instead of emitting a partial
// file.
type SerializationError struct {
	Format string
	Reason string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("cannot serialize %s document: %s", e.Format, e.Reason)
}
