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
	"math"
	"reflect"
	"testing"
)

func TestJoin(t *testing.T) {
	t.Parallel()

	a := &RawTable{
		Names: []string{"k", "x"},
		Rows:  [][]float64{{1, 10}, {3, 30}},
	}
	b := &RawTable{
		Names: []string{"k", "y"},
		Rows:  [][]float64{{1, 100}, {2, 200}},
	}
	wide, err := Join("k", a, b)
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"k", "x", "y"}
	if !reflect.DeepEqual(wide.Names, wantNames) {
		t.Errorf("names: have %v, want %v", wide.Names, wantNames)
	}
	if len(wide.Rows) != 3 {
		t.Fatalf("rows: have %d, want 3", len(wide.Rows))
	}
	// Keys are ascending; unmatched cells are NaN.
	wantKeys := []float64{1, 2, 3}
	for i, row := range wide.Rows {
		if row[0] != wantKeys[i] {
			t.Errorf("row %d key: have %g, want %g", i, row[0], wantKeys[i])
		}
	}
	if wide.Rows[0][1] != 10 || wide.Rows[0][2] != 100 {
		t.Errorf("row 0: have %v, want [1 10 100]", wide.Rows[0])
	}
	if !math.IsNaN(wide.Rows[1][1]) || wide.Rows[1][2] != 200 {
		t.Errorf("row 1: have %v, want [2 NaN 200]", wide.Rows[1])
	}
	if wide.Rows[2][1] != 30 || !math.IsNaN(wide.Rows[2][2]) {
		t.Errorf("row 2: have %v, want [3 30 NaN]", wide.Rows[2])
	}
}

func TestJoinMissingKey(t *testing.T) {
	t.Parallel()

	a := &RawTable{Names: []string{"k", "x"}}
	b := &RawTable{Names: []string{"j", "y"}}
	if _, err := Join("k", a, b); err == nil {
		t.Error("joining on a key absent from one table: have nil error, want error")
	}
	if _, err := Join("k"); err == nil {
		t.Error("joining no tables: have nil error, want error")
	}
}

func TestProject(t *testing.T) {
	t.Parallel()

	w := &RawTable{
		Names: []string{"k", "a", "b"},
		Rows:  [][]float64{{1, 2, 3}, {4, 5, 6}},
	}
	p, err := w.Project("k", "b")
	if err != nil {
		t.Fatal(err)
	}
	want := &RawTable{
		Names: []string{"k", "b"},
		Rows:  [][]float64{{1, 3}, {4, 6}},
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("have %v, want %v", p, want)
	}
	if _, err := w.Project("k", "missing"); err == nil {
		t.Error("projecting a missing column: have nil error, want error")
	}
}

func TestProjectAmbiguous(t *testing.T) {
	t.Parallel()

	// Both Vostok files carry a depth column, so a join produces
	// duplicate names; asking for one must be an error rather than a
	// silent pick.
	w := &RawTable{
		Names: []string{"k", "depth", "depth"},
		Rows:  [][]float64{{1, 2, 3}},
	}
	if _, err := w.Project("depth"); err == nil {
		t.Error("projecting an ambiguous column: have nil error, want error")
	}
}

// TestMeltDropsMissing checks that joining and reshaping drops rows
// whose value is missing while keeping keys unique to either table.
func TestMeltDropsMissing(t *testing.T) {
	t.Parallel()

	a := &RawTable{
		Names: []string{"k", "x"},
		Rows:  [][]float64{{1, 10}},
	}
	b := &RawTable{
		Names: []string{"k", "y"},
		Rows:  [][]float64{{1, math.NaN()}, {2, 20}},
	}
	wide, err := Join("k", a, b)
	if err != nil {
		t.Fatal(err)
	}
	long, err := Melt(wide, "k")
	if err != nil {
		t.Fatal(err)
	}
	want := &Table{
		KeyName: "k",
		Rows: []Record{
			{Key: 1, Series: "x", Value: 10},
			{Key: 2, Series: "y", Value: 20},
		},
	}
	if !reflect.DeepEqual(long, want) {
		t.Errorf("have %v, want %v", long, want)
	}
}

func TestTableSeries(t *testing.T) {
	t.Parallel()

	tab := &Table{
		KeyName: "k",
		Rows: []Record{
			{Key: 1, Series: "co2", Value: 280},
			{Key: 2, Series: "co2", Value: 285},
			{Key: 1, Series: "temp", Value: -1.5},
		},
	}
	wantSeries := []string{"co2", "temp"}
	if !reflect.DeepEqual(tab.Series(), wantSeries) {
		t.Errorf("series: have %v, want %v", tab.Series(), wantSeries)
	}
	keys, values := tab.SeriesData("co2")
	if !reflect.DeepEqual(keys, []float64{1, 2}) || !reflect.DeepEqual(values, []float64{280, 285}) {
		t.Errorf("co2 data: have %v %v, want [1 2] [280 285]", keys, values)
	}
}
