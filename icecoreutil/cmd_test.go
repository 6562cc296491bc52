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
)

func TestDatasetResolution(t *testing.T) {
	d, err := dataset(nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.ID != "paleo" {
		t.Errorf("default dataset: have %s, want paleo", d.ID)
	}
	if _, err := dataset([]string{"nosuch"}); err == nil {
		t.Error("unknown dataset: have nil error, want error")
	}
}

func TestDatasetResolutionFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "icecoretest")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	fname := filepath.Join(dir, "datasets.toml")
	err = ioutil.WriteFile(fname, []byte(`
[[dataset]]
id = "lawdome"
key = "age"
columns = ["co2"]

  [[dataset.source]]
  url = "https://example.org/lawdome.smoothed.yr20"
  skip = 6
  names = ["age", "co2"]
`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	Cfg.Set("datasets", fname)
	defer Cfg.Set("datasets", "")

	d, err := dataset([]string{"lawdome"})
	if err != nil {
		t.Fatal(err)
	}
	if d.ID != "lawdome" || len(d.Sources) != 1 {
		t.Errorf("have %+v", d)
	}
	// The built-in dataset is still reachable when the file does not
	// override it.
	if _, err := dataset(nil); err != nil {
		t.Fatal(err)
	}
}

func TestOutputFile(t *testing.T) {
	d, err := dataset(nil)
	if err != nil {
		t.Fatal(err)
	}
	if have := outputFile(d, ".png"); have != "paleo.png" {
		t.Errorf("have %s, want paleo.png", have)
	}
	Cfg.Set("output", "custom.png")
	defer Cfg.Set("output", "")
	if have := outputFile(d, ".png"); have != "custom.png" {
		t.Errorf("have %s, want custom.png", have)
	}
}
