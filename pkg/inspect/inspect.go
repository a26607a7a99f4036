// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

// Package inspect implements object inspection and wildcard enumeration
// over a single object store backend. Every operation is a stateless,
// single-shot request: no retries, no caching, no cursors exposed.
package inspect

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/objprobe/objprobe/pkg/objref"
	"github.com/objprobe/objprobe/pkg/store"
	"github.com/objprobe/objprobe/pkg/storerr"
)

// Inspector answers metadata and enumeration queries for one bucket
// namespace. Construct it once and pass it to every operation; there is
// no hidden global client state.
type Inspector struct {
	store  store.Store
	scheme string
	bucket string
}

// New creates an Inspector over st serving references of the form
// scheme://bucket/...
func New(st store.Store, scheme, bucket string) *Inspector {
	return &Inspector{store: st, scheme: scheme, bucket: bucket}
}

// resolve parses uri and rejects references outside this inspector's
// namespace before any network call is made.
func (in *Inspector) resolve(uri string) (objref.Ref, error) {
	ref, err := objref.Parse(uri)
	if err != nil {
		return objref.Ref{}, err
	}
	if ref.Scheme != in.scheme {
		return objref.Ref{}, storerr.InvalidReference(uri, "unsupported scheme "+ref.Scheme)
	}
	if ref.Bucket != in.bucket {
		return objref.Ref{}, storerr.InvalidReference(uri, "bucket not served by this client")
	}
	return ref, nil
}

// Stat returns metadata for the object at uri. An object that does not
// exist as a key but has keys beneath it is reported as a zero-length
// directory; the bucket root is always a directory. Only when both
// probes miss does Stat fail with storerr.ErrNotFound.
func (in *Inspector) Stat(ctx context.Context, uri string) (info store.ObjectInfo, err error) {
	defer observe("stat", time.Now())(&err)

	ref, err := in.resolve(uri)
	if err != nil {
		return store.ObjectInfo{}, err
	}

	if ref.IsBucketRoot() {
		return store.ObjectInfo{IsDir: true}, nil
	}

	info, err = in.store.Stat(ctx, ref.Key)
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, storerr.ErrNotFound) {
		return store.ObjectInfo{}, err
	}

	dir, derr := in.statDirectory(ctx, ref.Key)
	if derr != nil {
		return store.ObjectInfo{}, derr
	}
	if dir {
		return store.ObjectInfo{Key: ref.Key, IsDir: true}, nil
	}
	return store.ObjectInfo{}, storerr.NotFound(uri)
}

// statDirectory reports whether any key exists under key + "/".
func (in *Inspector) statDirectory(ctx context.Context, key string) (bool, error) {
	prefix := key
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	if prober, ok := in.store.(store.PrefixProber); ok {
		return prober.HasPrefix(ctx, prefix)
	}
	under, err := in.store.List(ctx, prefix)
	if err != nil {
		return false, err
	}
	return len(under) > 0, nil
}

// FileExists reports whether uri resolves to an object or a directory.
func (in *Inspector) FileExists(ctx context.Context, uri string) (bool, error) {
	_, err := in.Stat(ctx, uri)
	if err != nil {
		if errors.Is(err, storerr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetFileSize returns the byte length of the object at uri. Directories
// report zero.
func (in *Inspector) GetFileSize(ctx context.Context, uri string) (int64, error) {
	info, err := in.Stat(ctx, uri)
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

// Children returns the immediate children of the directory at uri:
// object names and subdirectory names relative to the prefix, without
// trailing slashes.
func (in *Inspector) Children(ctx context.Context, uri string) (children []string, err error) {
	defer observe("children", time.Now())(&err)

	ref, err := in.resolve(uri)
	if err != nil {
		return nil, err
	}

	prefix := ref.Key
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	infos, err := in.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	children = make([]string, 0, len(infos))
	for _, info := range infos {
		rest := strings.TrimPrefix(info.Key, prefix)
		if rest == "" {
			continue
		}
		name, _, _ := strings.Cut(rest, "/")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		children = append(children, name)
	}
	return children, nil
}
