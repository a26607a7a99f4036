// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/objprobe/objprobe/pkg/inspect"
	"github.com/objprobe/objprobe/pkg/objref"
	"github.com/objprobe/objprobe/pkg/store"
	"github.com/objprobe/objprobe/pkg/storerr"
	"github.com/objprobe/objprobe/pkg/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SchemeFile maps onto the local filesystem store; SchemeS3 onto
// S3-compatible stores.
const (
	SchemeS3   = "s3"
	SchemeFile = "file"
)

var storeManager = store.NewManager()

// newInspector builds an explicitly configured inspector for the bucket
// the URI names. The store configuration comes from a named backend
// profile in the config file when --backend is set, otherwise from the
// URI scheme plus the connection flags.
func newInspector(cmd *cobra.Command, uri string) (*inspect.Inspector, objref.Ref, error) {
	ref, err := objref.Parse(uri)
	if err != nil {
		return nil, objref.Ref{}, err
	}

	cfg, err := storeConfig(cmd, ref)
	if err != nil {
		return nil, ref, err
	}

	id := ref.Scheme + "://" + ref.Bucket
	if err := storeManager.Add(id, cfg); err != nil {
		return nil, ref, err
	}
	st, _ := storeManager.Get(id)

	return inspect.New(st, ref.Scheme, ref.Bucket), ref, nil
}

func storeConfig(cmd *cobra.Command, ref objref.Ref) (store.Config, error) {
	fl := NewFlagLoader(cmd)

	if name := fl.String("backend"); name != "" {
		var cfg store.Config
		if err := viper.UnmarshalKey("backends."+name, &cfg); err != nil {
			return store.Config{}, fmt.Errorf("backend profile %q: %w", name, err)
		}
		if cfg.Type == "" {
			return store.Config{}, fmt.Errorf("backend profile %q not found in config", name)
		}
		// The profile carries connection details; the URI still names
		// the bucket unless the profile pins one.
		if cfg.Bucket == "" {
			cfg.Bucket = ref.Bucket
		}
		return cfg, nil
	}

	switch ref.Scheme {
	case SchemeS3:
		return store.Config{
			Type:      store.TypeS3,
			Bucket:    ref.Bucket,
			Endpoint:  fl.String("endpoint"),
			Region:    fl.String("region"),
			AccessKey: fl.String("access_key"),
			SecretKey: fl.String("secret_key"),
			PathStyle: fl.Bool("path_style"),
		}, nil
	case SchemeFile:
		root := utils.ResolvePath(fl.String("root_dir"))
		return store.Config{
			Type: store.TypeLocal,
			Path: filepath.Join(root, ref.Bucket),
		}, nil
	default:
		return store.Config{}, storerr.InvalidReference(ref.String(), "unsupported scheme "+ref.Scheme)
	}
}
