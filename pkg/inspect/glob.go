// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/objprobe/objprobe/pkg/objref"
	"github.com/objprobe/objprobe/pkg/storerr"
)

const wildcards = "*?["

// Glob returns every reference whose key matches pattern, a URI whose key
// part may contain *, ?, and [...] wildcards. Wildcards never cross a
// path separator and the bucket part must be literal. The result is fully
// materialized; zero matches is an empty slice, not an error. Ordering is
// whatever the backend returns.
func (in *Inspector) Glob(ctx context.Context, pattern string) (refs []objref.Ref, err error) {
	defer observe("glob", time.Now())(&err)

	if pattern == "" {
		return nil, storerr.InvalidPattern(pattern, "empty pattern")
	}

	ref, err := objref.Parse(pattern)
	if err != nil {
		return nil, storerr.InvalidPattern(pattern, "malformed object reference")
	}
	if strings.ContainsAny(ref.Bucket, wildcards) {
		return nil, storerr.InvalidPattern(pattern, "bucket must not contain wildcards")
	}
	if ref.Scheme != in.scheme || ref.Bucket != in.bucket {
		return nil, storerr.InvalidPattern(pattern, "outside this client's namespace")
	}
	if err := validatePattern(ref.Key); err != nil {
		return nil, err
	}

	infos, err := in.store.List(ctx, fixedPrefix(ref.Key))
	if err != nil {
		return nil, err
	}

	refs = make([]objref.Ref, 0, len(infos))
	for _, info := range infos {
		// path.Match is a full match and its wildcards stop at "/",
		// matching the segment-wise glob semantics of object paths.
		ok, _ := path.Match(ref.Key, info.Key)
		if ok {
			refs = append(refs, objref.Ref{Scheme: in.scheme, Bucket: in.bucket, Key: info.Key})
		}
	}
	return refs, nil
}

// validatePattern rejects syntactically malformed patterns (e.g. an
// unterminated character class) before any network call. Matching the
// pattern against itself forces a full syntax scan.
func validatePattern(pattern string) error {
	if _, err := path.Match(pattern, pattern); err != nil {
		return storerr.InvalidPattern(pattern, err.Error())
	}
	return nil
}

// fixedPrefix returns the longest wildcard-free prefix of pattern, cut at
// the last path separator so the listing never starts inside a wildcard
// segment.
func fixedPrefix(pattern string) string {
	i := strings.IndexAny(pattern, wildcards)
	if i < 0 {
		return pattern
	}
	j := strings.LastIndex(pattern[:i], "/")
	if j < 0 {
		return ""
	}
	return pattern[:j+1]
}
