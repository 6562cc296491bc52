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
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Version gives the version number.
const Version = "0.1.0"

// FetchOptions controls cache interaction during a fetch. UseCache
// enables returning a previously cached table without touching the
// network; WriteCache enables saving a freshly fetched table.
type FetchOptions struct {
	UseCache   bool
	WriteCache bool
}

// DefaultFetchOptions reads from the cache but does not write to it,
// matching interactive use where caching is opted into explicitly.
var DefaultFetchOptions = FetchOptions{UseCache: true}

// A Dataset ties together the remote sources of one climate record,
// the join key and value columns that normalize them, and the cache
// store holding previously fetched results.
type Dataset struct {
	// ID is the dataset identifier, used as the cache key.
	ID string

	// Key names the column shared by all sources, which the raw
	// tables are joined on.
	Key string

	// Columns are the value columns kept after the join; they become
	// the series labels of the normalized table.
	Columns []string

	Sources []Source

	// Cache is the store for normalized tables. If nil, a store
	// rooted at DefaultCacheDir() is used.
	Cache *CacheStore

	// Log receives informational messages. If nil, the standard
	// logger is used.
	Log logrus.FieldLogger

	fetcher     *Fetcher
	fetcherOnce sync.Once
}

func (d *Dataset) store() *CacheStore {
	if d.Cache != nil {
		return d.Cache
	}
	return &CacheStore{Root: DefaultCacheDir()}
}

// Fetch returns the normalized table for the dataset. When cache
// reading is enabled and an entry exists, the cached table is
// returned without any network activity. Otherwise each source is
// probed, downloaded, and parsed; the raw tables are full-outer
// joined on the dataset key, projected down to the value columns, and
// melted into long form. When the first unreachable source is
// encountered, Fetch logs an informational message and returns nil
// with no error, and nothing is written to the cache. Every other
// failure is returned as an error.
func (d *Dataset) Fetch(ctx context.Context, o FetchOptions) (*Table, error) {
	if o.UseCache {
		t, err := d.store().Read(d.ID)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, nil
		}
	}
	d.fetcherOnce.Do(func() {
		d.fetcher = &Fetcher{Sources: d.Sources, Log: d.Log}
	})
	raw, err := d.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if raw == nil { // No connectivity.
		return nil, nil
	}
	wide, err := Join(d.Key, raw...)
	if err != nil {
		return nil, err
	}
	proj, err := wide.Project(append([]string{d.Key}, d.Columns...)...)
	if err != nil {
		return nil, err
	}
	long, err := Melt(proj, d.Key)
	if err != nil {
		return nil, err
	}
	if o.WriteCache {
		if err := d.store().Write(d.ID, long); err != nil {
			return nil, err
		}
	}
	return long, nil
}
