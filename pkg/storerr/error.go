// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

// Package storerr defines the error taxonomy shared by all object store
// backends. Callers classify failures with errors.Is against the exported
// sentinels; backend diagnostics stay reachable through Unwrap.
package storerr

import (
	"errors"
	"strings"
)

// Sentinel errors for the four failure classes.
var (
	ErrInvalidReference = errors.New("invalid object reference")
	ErrInvalidPattern   = errors.New("invalid match pattern")
	ErrNotFound         = errors.New("object not found")
	ErrTransport        = errors.New("transport failure")
)

// Error ties one of the taxonomy sentinels to the resource an operation
// touched and, where available, the underlying backend error.
type Error struct {
	Kind     error  // one of the sentinels above
	Resource string // URI, key, or pattern the operation was given
	Detail   string // optional human-readable context
	Err      error  // underlying backend error, may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Resource != "" {
		b.WriteString(": ")
		b.WriteString(e.Resource)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Err }

// InvalidReference reports a malformed or unsupported object reference.
func InvalidReference(resource, detail string) error {
	return &Error{Kind: ErrInvalidReference, Resource: resource, Detail: detail}
}

// InvalidPattern reports a malformed match pattern.
func InvalidPattern(pattern, detail string) error {
	return &Error{Kind: ErrInvalidPattern, Resource: pattern, Detail: detail}
}

// NotFound reports that no object exists at the given resource.
func NotFound(resource string) error {
	return &Error{Kind: ErrNotFound, Resource: resource}
}

// Transport wraps a network or storage-backend failure. It is a thin
// passthrough: nothing here retries.
func Transport(resource string, err error) error {
	return &Error{Kind: ErrTransport, Resource: resource, Err: err}
}
