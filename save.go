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
	"encoding/gob"
	"fmt"
	"io"
)

// GridManipulator is a function that operates on a grid.
type GridManipulator func(g *Grid) error

// Apply runs each of fs on g in order, stopping at the first error.
func (g *Grid) Apply(fs ...GridManipulator) error {
	for _, f := range fs {
		if err := f(g); err != nil {
			return err
		}
	}
	return nil
}

// Regular returns a function that fills a grid with an xn by yn
// triangulated grid. See Grid.Init.
func Regular(xn, yn int, x, y [2]float64) GridManipulator {
	return func(g *Grid) error {
		return g.Init(xn, yn, x, y)
	}
}

// MergeGrids returns a function that merges others into a grid using m.
// See Grid.Merge.
func MergeGrids(m NodeMerger, others ...*Grid) GridManipulator {
	return func(g *Grid) error {
		return g.Merge(m, others...)
	}
}

// gridData is the saved form of a Grid.
type gridData struct {
	Nodes []*Node
	Edges []*Edge
	Faces []*Face
	Zones []*Zone
}

// Save returns a function that saves the data in a grid to a gob file
// (format description at https://golang.org/pkg/encoding/gob/).
func Save(w io.Writer) GridManipulator {
	return func(g *Grid) error {
		e := gob.NewEncoder(w)
		data := gridData{Nodes: g.Nodes, Edges: g.Edges, Faces: g.Faces, Zones: g.Zones}
		if err := e.Encode(data); err != nil {
			return fmt.Errorf("trigrid.Grid.Save: %v", err)
		}
		return nil
	}
}

// Load returns a function that loads the data from a previously Saved file
// into a grid.
func Load(r io.Reader) GridManipulator {
	return func(g *Grid) error {
		dec := gob.NewDecoder(r)
		var data gridData
		if err := dec.Decode(&data); err != nil {
			return fmt.Errorf("trigrid.Grid.Load: %v", err)
		}
		g.Nodes, g.Edges, g.Faces, g.Zones = data.Nodes, data.Edges, data.Faces, data.Zones
		g.AssignIDs()
		return nil
	}
}
