/*
Copyright © 2019 the trigrid authors.
This file is part of trigrid.

trigrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

trigrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with trigrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package trigrid

import (
	"bytes"
	"strings"
	"testing"
)

func TestSaveLoad(t *testing.T) {
	buf := bytes.NewBuffer([]byte{})

	_, b := sideBySide(t)
	g := NewGrid()
	err := g.Apply(
		Regular(3, 3, [2]float64{0, 2}, [2]float64{0, 2}),
		MergeGrids(OneSidedBisection{Eps: DefaultEps}, b),
		Save(buf),
	)
	if err != nil {
		t.Fatal(err)
	}

	g2 := NewGrid()
	if err := g2.Apply(Load(buf)); err != nil {
		t.Fatal(err)
	}
	if g.Hash() != g2.Hash() {
		t.Errorf("loaded grid differs from saved grid")
	}
	if err := g2.Check(DefaultEps); err != nil {
		t.Error(err)
	}
}

func TestLoadGarbage(t *testing.T) {
	g := NewGrid()
	if err := g.Apply(Load(strings.NewReader("not a grid"))); err == nil {
		t.Errorf("want error")
	}
}
