// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

// Package objref parses and formats object store references of the form
// scheme://bucket/key.
package objref

import (
	"strings"

	"github.com/objprobe/objprobe/pkg/storerr"
)

// Ref identifies a single object (or prefix) in a remote object store.
// Immutable once constructed.
type Ref struct {
	Scheme string
	Bucket string
	Key    string
}

// Parse splits uri into scheme, bucket, and key. The key may be empty,
// in which case the reference names the bucket itself. A missing scheme
// separator or an empty bucket fails with storerr.ErrInvalidReference.
func Parse(uri string) (Ref, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok || scheme == "" {
		return Ref{}, storerr.InvalidReference(uri, "missing scheme")
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Ref{}, storerr.InvalidReference(uri, "empty bucket")
	}
	return Ref{Scheme: scheme, Bucket: bucket, Key: key}, nil
}

// String formats the reference back into its URI form.
func (r Ref) String() string {
	if r.Key == "" {
		return r.Scheme + "://" + r.Bucket
	}
	return r.Scheme + "://" + r.Bucket + "/" + r.Key
}

// IsBucketRoot reports whether the reference names the bucket itself
// rather than an object within it.
func (r Ref) IsBucketRoot() bool {
	return r.Key == ""
}
