// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/objprobe/objprobe/pkg/storerr"
)

func init() {
	Register(TypeLocal, NewLocal)
}

// Local implements Store over a directory tree. Object keys map to
// slash-separated paths below the root.
type Local struct {
	root string
}

// NewLocal creates a local store rooted at cfg.Path. The root must exist.
func NewLocal(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path required for local store")
	}
	info, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("local store root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("local store root %s is not a directory", cfg.Path)
	}
	return &Local{root: cfg.Path}, nil
}

func (l *Local) Type() Type {
	return TypeLocal
}

// resolve maps a key onto the filesystem, rejecting escapes from the root.
func (l *Local) resolve(key string) (string, error) {
	path := filepath.Join(l.root, filepath.FromSlash(key))
	if path != l.root && !strings.HasPrefix(path, l.root+string(filepath.Separator)) {
		return "", storerr.InvalidReference(key, "escapes store root")
	}
	return path, nil
}

func (l *Local) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	path, err := l.resolve(key)
	if err != nil {
		return ObjectInfo{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ObjectInfo{}, storerr.NotFound(key)
		}
		return ObjectInfo{}, storerr.Transport(key, err)
	}
	if info.IsDir() {
		return ObjectInfo{Key: key, IsDir: true, ModTime: info.ModTime()}, nil
	}
	return ObjectInfo{Key: key, Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (l *Local) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var infos []ObjectInfo

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		infos = append(infos, ObjectInfo{Key: key, Size: fi.Size(), ModTime: fi.ModTime()})
		return nil
	})
	if err != nil {
		return nil, storerr.Transport(prefix, err)
	}
	return infos, nil
}

func (l *Local) Exists(ctx context.Context, key string) (bool, error) {
	info, err := l.Stat(ctx, key)
	if err != nil {
		if errors.Is(err, storerr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	// Directories are not objects.
	return !info.IsDir, nil
}

func (l *Local) Close() error {
	return nil
}
