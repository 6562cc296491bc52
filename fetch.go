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
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/ctessum/requestcache"
	"github.com/sirupsen/logrus"
)

// A Source describes one remote file belonging to a dataset: where to
// get it, how many leading non-data lines to skip, and the names to
// assign positionally to its whitespace-delimited columns. The
// archive files carry no headers of their own, so Names is the schema
// contract: a parsed line whose field count differs from len(Names)
// is a fatal error.
type Source struct {
	URL   string
	Skip  int
	Names []string
}

// A Fetcher downloads and parses the raw files of one dataset, in
// source order. Downloads within a process go through an in-memory
// cache keyed by URL, so each source file is retrieved from the
// network at most once per Fetcher.
type Fetcher struct {
	Sources []Source

	// Log receives the informational message emitted when a source is
	// unreachable. If nil, the standard logger is used.
	Log logrus.FieldLogger

	cache     *requestcache.Cache
	cacheOnce sync.Once
}

func (f *Fetcher) logger() logrus.FieldLogger {
	if f.Log != nil {
		return f.Log
	}
	return logrus.StandardLogger()
}

// download retrieves the raw contents of rawurl, consulting the
// in-memory cache first. Duplicate in-flight requests for the same
// URL are coalesced.
func (f *Fetcher) download(ctx context.Context, rawurl string) ([]byte, error) {
	f.cacheOnce.Do(func() {
		f.cache = requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			return fetchURL(ctx, req.(string))
		}, 1, requestcache.Deduplicate(), requestcache.Memory(100))
	})
	r := f.cache.NewRequest(ctx, rawurl, rawurl)
	d, err := r.Result()
	if err != nil {
		return nil, err
	}
	return d.([]byte), nil
}

// Fetch probes, downloads, and parses every source of the dataset,
// returning one RawTable per source in source order. If any source is
// unreachable the whole fetch is abandoned: Fetch logs an
// informational message and returns nil with no error, since missing
// connectivity is an expected condition rather than a failure. All
// other problems (download errors, schema mismatches) are returned as
// errors.
func (f *Fetcher) Fetch(ctx context.Context) ([]*RawTable, error) {
	tables := make([]*RawTable, len(f.Sources))
	for i, src := range f.Sources {
		if !Reachable(src.URL) {
			f.logger().Infof("icecore: %s is unreachable; check your network connection", src.URL)
			return nil, nil
		}
		b, err := f.download(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		t, err := parseTable(b, src)
		if err != nil {
			return nil, err
		}
		tables[i] = t
	}
	return tables, nil
}

// parseTable parses a whitespace-delimited archive file, dropping the
// configured number of leading lines and naming the columns
// positionally. Blank lines are skipped. Cells that do not parse as
// numbers become NaN; no further validation is applied.
func parseTable(b []byte, src Source) (*RawTable, error) {
	t := &RawTable{Names: src.Names}
	s := bufio.NewScanner(bytes.NewReader(b))
	line := 0
	for s.Scan() {
		line++
		if line <= src.Skip {
			continue
		}
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(src.Names) {
			return nil, fmt.Errorf("icecore: parsing %s line %d: have %d columns, want %d",
				src.URL, line, len(fields), len(src.Names))
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				v = math.NaN()
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("icecore: parsing %s: %v", src.URL, err)
	}
	return t, nil
}
