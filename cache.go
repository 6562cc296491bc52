/*
Copyright © 2019 the Icecore authors.
This file is part of Icecore.

Icecore is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Icecore is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Icecore.  If not, see <http://www.gnu.org/licenses/>.
*/

package icecore

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// CacheExtension is appended to dataset identifiers to make up the
// names of cache files on disk.
const CacheExtension = ".cache"

// DefaultCacheDir returns the per-user cache directory for this
// package. Callers that need an isolated cache (tests, batch jobs)
// should set CacheStore.Root themselves instead.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "icecore")
}

// A CacheStore reads and writes serialized tables under a single root
// directory, one file per dataset identifier. Entries are never
// expired: a cached table is returned as-is until a caller refetches
// with writing enabled. The store owns the directory layout; callers
// should not write to it directly.
type CacheStore struct {
	Root string
}

// Path returns the location of the cache entry for the given dataset
// identifier. The same identifier always maps to the same path.
func (c *CacheStore) Path(id string) string {
	return filepath.Join(c.Root, id+CacheExtension)
}

// Read returns the cached table for the given dataset identifier, or
// nil with no error when no entry exists. A cache entry that exists
// but cannot be decoded is an error; no integrity checking or
// automatic refetching happens here.
func (c *CacheStore) Read(id string) (*Table, error) {
	f, err := os.Open(c.Path(id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("icecore: opening cache entry %s: %v", id, err)
	}
	defer f.Close()
	t := new(Table)
	if err := gob.NewDecoder(f).Decode(t); err != nil {
		return nil, fmt.Errorf("icecore: decoding cache entry %s: %v", id, err)
	}
	return t, nil
}

// Write serializes t to the cache entry for the given dataset
// identifier, creating the root directory if needed and overwriting
// any existing entry.
func (c *CacheStore) Write(id string, t *Table) error {
	if err := os.MkdirAll(c.Root, os.ModePerm); err != nil {
		return fmt.Errorf("icecore: creating cache directory: %v", err)
	}
	f, err := os.Create(c.Path(id))
	if err != nil {
		return fmt.Errorf("icecore: creating cache entry %s: %v", id, err)
	}
	if err := gob.NewEncoder(f).Encode(t); err != nil {
		f.Close()
		return fmt.Errorf("icecore: encoding cache entry %s: %v", id, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("icecore: writing cache entry %s: %v", id, err)
	}
	return nil
}
