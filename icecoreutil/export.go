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
	"fmt"

	"github.com/spatialclim/icecore"
	"github.com/tealeg/xlsx"
)

// ExportXLSX writes the long-format table t to a spreadsheet at
// filename: a header row naming the key, series, and value columns,
// then one row per record. A nil table writes nothing.
func ExportXLSX(t *icecore.Table, filename string) error {
	if t == nil {
		return nil
	}
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("data")
	if err != nil {
		return fmt.Errorf("icecoreutil: creating spreadsheet sheet: %v", err)
	}
	header := sheet.AddRow()
	for _, name := range []string{t.KeyName, "series", "value"} {
		header.AddCell().SetString(name)
	}
	for _, r := range t.Rows {
		row := sheet.AddRow()
		row.AddCell().SetFloat(r.Key)
		row.AddCell().SetString(r.Series)
		row.AddCell().SetFloat(r.Value)
	}
	if err := f.Save(filename); err != nil {
		return fmt.Errorf("icecoreutil: saving spreadsheet %s: %v", filename, err)
	}
	return nil
}
