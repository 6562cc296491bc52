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

// Archive locations for the Vostok ice core records. The CO2 record
// is Barnola et al.'s CDIAC compilation; the deuterium-derived
// temperature record is Petit et al.'s, held by the NOAA
// paleoclimatology archive.
const (
	VostokCO2URL        = "https://cdiac.ess-dive.lbl.gov/ftp/trends/co2/vostok.icecore.co2"
	VostokDeuteriumURL  = "https://www.ncei.noaa.gov/pub/data/paleo/icecore/antarctica/vostok/deutnat.txt"
	vostokCO2Skip       = 21
	vostokDeuteriumSkip = 111
)

// Vostok returns the "paleo" dataset: 420,000 years of atmospheric
// CO2 concentration and temperature anomaly from the Vostok ice core.
// The two archive files are joined on the age of the ice and melted
// to the series "co2" (ppmv) and "temp" (°C relative to the modern
// mean); the depth and gas-age columns used only for alignment are
// discarded. cache may be nil to use the default cache directory.
func Vostok(cache *CacheStore) *Dataset {
	return &Dataset{
		ID:      "paleo",
		Key:     "age_ice",
		Columns: []string{"co2", "temp"},
		Sources: []Source{
			{
				URL:   VostokCO2URL,
				Skip:  vostokCO2Skip,
				Names: []string{"depth", "age_ice", "age_air", "co2"},
			},
			{
				URL:   VostokDeuteriumURL,
				Skip:  vostokDeuteriumSkip,
				Names: []string{"depth", "age_ice", "deuterium", "temp"},
			},
		},
		Cache: cache,
	}
}
