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

package icecoreutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spatialclim/icecore"
	"github.com/tealeg/xlsx"
)

func TestExportXLSX(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "icecoretest")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	fname := filepath.Join(dir, "paleo.xlsx")

	tab := &icecore.Table{
		KeyName: "age_ice",
		Rows: []icecore.Record{
			{Key: 5679, Series: "co2", Value: 284.7},
			{Key: 17, Series: "temp", Value: -0.08},
		},
	}
	if err := ExportXLSX(tab, fname); err != nil {
		t.Fatal(err)
	}

	f, err := xlsx.OpenFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	sheet, ok := f.Sheet["data"]
	if !ok {
		t.Fatal("no sheet named data")
	}
	if len(sheet.Rows) != 3 {
		t.Fatalf("rows: have %d, want 3", len(sheet.Rows))
	}
	header := sheet.Rows[0]
	for i, want := range []string{"age_ice", "series", "value"} {
		if have := header.Cells[i].Value; have != want {
			t.Errorf("header cell %d: have %s, want %s", i, have, want)
		}
	}
	if have := sheet.Rows[1].Cells[1].Value; have != "co2" {
		t.Errorf("row 1 series: have %s, want co2", have)
	}
	v, err := sheet.Rows[1].Cells[2].Float()
	if err != nil {
		t.Fatal(err)
	}
	if v != 284.7 {
		t.Errorf("row 1 value: have %g, want 284.7", v)
	}
}

// TestExportXLSXNil checks that exporting a fetch that found no
// connectivity writes nothing.
func TestExportXLSXNil(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "icecoretest")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	fname := filepath.Join(dir, "none.xlsx")
	if err := ExportXLSX(nil, fname); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(fname); !os.IsNotExist(err) {
		t.Error("file exists after exporting a nil table")
	}
}
