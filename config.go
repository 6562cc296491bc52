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
	"fmt"

	"github.com/BurntSushi/toml"
)

// datasetConfig is the TOML form of a dataset descriptor file:
//
//	[[dataset]]
//	id = "lawdome"
//	key = "age"
//	columns = ["co2"]
//
//	  [[dataset.source]]
//	  url = "https://example.org/lawdome.smoothed.yr20"
//	  skip = 6
//	  names = ["age", "co2"]
type datasetConfig struct {
	Dataset []struct {
		ID      string
		Key     string
		Columns []string
		Source  []struct {
			URL   string
			Skip  int
			Names []string
		}
	}
}

// LoadDatasets reads dataset descriptors from the TOML file at
// filename, so records beyond the built-in ones can be fetched
// without code changes. Every descriptor is given the same cache
// store, which may be nil for the default cache directory.
func LoadDatasets(filename string, cache *CacheStore) ([]*Dataset, error) {
	var cfg datasetConfig
	if _, err := toml.DecodeFile(filename, &cfg); err != nil {
		return nil, fmt.Errorf("icecore: reading dataset descriptors from %s: %v", filename, err)
	}
	if len(cfg.Dataset) == 0 {
		return nil, fmt.Errorf("icecore: %s: no datasets defined", filename)
	}
	out := make([]*Dataset, 0, len(cfg.Dataset))
	for _, dc := range cfg.Dataset {
		if dc.ID == "" {
			return nil, fmt.Errorf("icecore: %s: dataset with no id", filename)
		}
		if dc.Key == "" {
			return nil, fmt.Errorf("icecore: %s: dataset %s has no key", filename, dc.ID)
		}
		if len(dc.Columns) == 0 {
			return nil, fmt.Errorf("icecore: %s: dataset %s has no columns", filename, dc.ID)
		}
		if len(dc.Source) == 0 {
			return nil, fmt.Errorf("icecore: %s: dataset %s has no sources", filename, dc.ID)
		}
		d := &Dataset{
			ID:      dc.ID,
			Key:     dc.Key,
			Columns: dc.Columns,
			Cache:   cache,
		}
		for i, sc := range dc.Source {
			if sc.URL == "" {
				return nil, fmt.Errorf("icecore: %s: dataset %s source %d has no url", filename, dc.ID, i)
			}
			if len(sc.Names) == 0 {
				return nil, fmt.Errorf("icecore: %s: dataset %s source %d has no column names", filename, dc.ID, i)
			}
			if sc.Skip < 0 {
				return nil, fmt.Errorf("icecore: %s: dataset %s source %d has negative skip", filename, dc.ID, i)
			}
			d.Sources = append(d.Sources, Source{URL: sc.URL, Skip: sc.Skip, Names: sc.Names})
		}
		out = append(out, d)
	}
	return out, nil
}
