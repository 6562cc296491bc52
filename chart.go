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
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// seriesLabels maps series names to axis labels for the chart.
var seriesLabels = map[string]string{
	"co2":  "CO2 (ppmv)",
	"temp": "Temperature anomaly (°C)",
}

// Chart renders the standard figure for a normalized dataset as a
// PNG: one panel per series, stacked vertically, sharing a reversed
// key axis so that the present is at the right. A nil table renders
// nothing and returns nil, so a fetch that found no connectivity can
// be piped here directly.
func Chart(t *Table, w io.Writer, width, height vg.Length) error {
	if t == nil {
		return nil
	}
	series := t.Series()
	if len(series) == 0 {
		return fmt.Errorf("icecore: charting table: no series")
	}
	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(96))
	dc := draw.New(c)
	panelHeight := height / vg.Length(len(series))
	for i, s := range series {
		p, err := plot.New()
		if err != nil {
			return fmt.Errorf("icecore: creating chart panel: %v", err)
		}
		p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
		p.X.Label.Text = t.KeyName + " (yr BP)"
		if label, ok := seriesLabels[s]; ok {
			p.Y.Label.Text = label
		} else {
			p.Y.Label.Text = s
		}
		keys, values := t.SeriesData(s)
		xys := make(plotter.XYs, len(keys))
		for j := range keys {
			xys[j].X = keys[j]
			xys[j].Y = values[j]
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("icecore: creating chart line: %v", err)
		}
		l.Color = plotutil.Color(i)
		p.Add(l)
		panel := draw.Crop(dc, 0, 0,
			height-vg.Length(i+1)*panelHeight, -vg.Length(i)*panelHeight)
		p.Draw(panel)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("icecore: writing chart: %v", err)
	}
	return nil
}
