// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package fsutil provides filesystem helpers for the btswitch config directory.
// Config files are replaced atomically so that a concurrent reader sees either
// the previous document or the new one, never a partial write.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirPerm is the permission mode for newly created config directories.
const DirPerm os.FileMode = 0755

// FilePerm is the permission mode for newly created config files.
const FilePerm os.FileMode = 0644

// MkdirAll creates a directory and all parents with DirPerm.
// Existing directories are left untouched.
func MkdirAll(path string) error {
	return os.MkdirAll(path, DirPerm)
}

// WriteFileAtomic writes data to a temporary file in the same directory as path
// and renames it over path. An existing file keeps its permission bits;
// a new file gets FilePerm.
func WriteFileAtomic(path string, data []byte) (err error) {
	perm := FilePerm
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return statErr
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
