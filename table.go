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

// Package icecore downloads public climate datasets—currently the
// Antarctic Vostok ice-core CO2 and temperature records—from their
// archives, caches them locally, and reshapes them into a tidy
// long-format table suitable for charting.
package icecore

import (
	"fmt"
	"math"
	"sort"
)

// A RawTable holds numeric data parsed positionally from an archive
// file. Column names are assigned externally; the files themselves
// carry none. Missing or non-numeric cells are NaN.
type RawTable struct {
	Names []string
	Rows  [][]float64
}

// columnIndex returns the index of the named column. Asking for a name
// that appears more than once is an error; the Vostok records, for
// example, both carry a "depth" column that survives a join.
func (t *RawTable) columnIndex(name string) (int, error) {
	i := -1
	for j, n := range t.Names {
		if n != name {
			continue
		}
		if i != -1 {
			return 0, fmt.Errorf("icecore: ambiguous column %s", name)
		}
		i = j
	}
	if i == -1 {
		return 0, fmt.Errorf("icecore: no column %s", name)
	}
	return i, nil
}

// A Record is one observation in a long-format table: the value of one
// series at one key (for the ice cores, an ice age in years BP).
type Record struct {
	Key    float64
	Series string
	Value  float64
}

// A Table is a normalized long-format dataset. Rows are ordered by
// series, in the order the series columns were projected, and by
// ascending key within each series. No row holds a NaN value.
type Table struct {
	// KeyName names the shared join key (e.g. "age_ice").
	KeyName string
	Rows    []Record
}

// Series returns the distinct series labels in t, in row order.
func (t *Table) Series() []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range t.Rows {
		if !seen[r.Series] {
			seen[r.Series] = true
			out = append(out, r.Series)
		}
	}
	return out
}

// SeriesData returns the keys and values of the named series, in row
// order.
func (t *Table) SeriesData(name string) (keys, values []float64) {
	for _, r := range t.Rows {
		if r.Series == name {
			keys = append(keys, r.Key)
			values = append(values, r.Value)
		}
	}
	return keys, values
}

// Join performs a full outer join of the given tables on the named key
// column: every key present in any table is retained, and cells on the
// absent side become NaN. Keys in the result are in ascending order.
// If a key appears more than once within one table, the first
// occurrence wins.
func Join(key string, tables ...*RawTable) (*RawTable, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("icecore: joining tables: no tables given")
	}
	keyIdx := make([]int, len(tables))
	for i, t := range tables {
		j, err := t.columnIndex(key)
		if err != nil {
			return nil, fmt.Errorf("icecore: joining tables: %v", err)
		}
		keyIdx[i] = j
	}

	seen := make(map[float64]bool)
	var keys []float64
	rowIdx := make([]map[float64][]float64, len(tables))
	for i, t := range tables {
		rowIdx[i] = make(map[float64][]float64, len(t.Rows))
		for _, row := range t.Rows {
			k := row[keyIdx[i]]
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
			if _, ok := rowIdx[i][k]; !ok {
				rowIdx[i][k] = row
			}
		}
	}
	sort.Float64s(keys)

	out := &RawTable{Names: []string{key}}
	for i, t := range tables {
		for j, n := range t.Names {
			if j != keyIdx[i] {
				out.Names = append(out.Names, n)
			}
		}
	}
	for _, k := range keys {
		row := make([]float64, 1, len(out.Names))
		row[0] = k
		for i, t := range tables {
			src, ok := rowIdx[i][k]
			for j := range t.Names {
				if j == keyIdx[i] {
					continue
				}
				if ok {
					row = append(row, src[j])
				} else {
					row = append(row, math.NaN())
				}
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// Project returns a copy of t holding only the named columns, in the
// given order.
func (t *RawTable) Project(names ...string) (*RawTable, error) {
	cols := make([]int, len(names))
	for i, n := range names {
		j, err := t.columnIndex(n)
		if err != nil {
			return nil, fmt.Errorf("icecore: projecting table: %v", err)
		}
		cols[i] = j
	}
	out := &RawTable{Names: append([]string{}, names...)}
	for _, row := range t.Rows {
		r := make([]float64, len(cols))
		for i, j := range cols {
			r[i] = row[j]
		}
		out.Rows = append(out.Rows, r)
	}
	return out, nil
}

// Melt reshapes a wide table into long form: one Record per non-key
// column per row, skipping NaN values. Output rows are grouped by
// series in column order; within each series the key order of the
// wide table is preserved.
func Melt(wide *RawTable, key string) (*Table, error) {
	ki, err := wide.columnIndex(key)
	if err != nil {
		return nil, fmt.Errorf("icecore: reshaping table: %v", err)
	}
	long := &Table{KeyName: key}
	for j, name := range wide.Names {
		if j == ki {
			continue
		}
		for _, row := range wide.Rows {
			if math.IsNaN(row[j]) {
				continue
			}
			long.Rows = append(long.Rows, Record{Key: row[ki], Series: name, Value: row[j]})
		}
	}
	return long, nil
}
