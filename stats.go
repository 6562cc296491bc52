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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A SeriesSummary holds descriptive statistics for one series of a
// normalized table.
type SeriesSummary struct {
	Series         string
	N              int
	Min, Max       float64
	Mean, StdDev   float64
	KeyMin, KeyMax float64
}

// Summary returns descriptive statistics for each series in t, in
// series order.
func Summary(t *Table) []SeriesSummary {
	var out []SeriesSummary
	for _, s := range t.Series() {
		keys, values := t.SeriesData(s)
		mean, std := stat.MeanStdDev(values, nil)
		out = append(out, SeriesSummary{
			Series: s,
			N:      len(values),
			Min:    floats.Min(values),
			Max:    floats.Max(values),
			Mean:   mean,
			StdDev: std,
			KeyMin: floats.Min(keys),
			KeyMax: floats.Max(keys),
		})
	}
	return out
}

// Correlation returns the Pearson correlation between series a and b
// of t, computed over the keys present in both series. At least two
// shared keys are required.
func Correlation(t *Table, a, b string) (float64, error) {
	keysA, valuesA := t.SeriesData(a)
	keysB, valuesB := t.SeriesData(b)
	if len(keysA) == 0 || len(keysB) == 0 {
		return 0, fmt.Errorf("icecore: correlating %s and %s: missing series", a, b)
	}
	bByKey := make(map[float64]float64, len(keysB))
	for i, k := range keysB {
		if _, ok := bByKey[k]; !ok {
			bByKey[k] = valuesB[i]
		}
	}
	var x, y []float64
	for i, k := range keysA {
		if v, ok := bByKey[k]; ok {
			x = append(x, valuesA[i])
			y = append(y, v)
		}
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("icecore: correlating %s and %s: only %d shared keys", a, b, len(x))
	}
	return stat.Correlation(x, y, nil), nil
}
