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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
)

// faceRecord is a row in the face shapefile.
type faceRecord struct {
	geom.Polygon
	ID   int
	Zone int
}

// WriteShapefile writes the faces of g to a polygon shapefile, with
// the face ID and the index of the zone the face belongs to (-1 if
// none) as attributes. Any extension on fileName is
// replaced with ".shp".
func (g *Grid) WriteShapefile(fileName string) error {
	zoneOf := make([]int, len(g.Faces))
	for i := range zoneOf {
		zoneOf[i] = -1
	}
	for zi, z := range g.Zones {
		for _, f := range z.Faces {
			if zoneOf[f] < 0 {
				zoneOf[f] = zi
			}
		}
	}

	fileName = strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ".shp"
	e, err := shp.NewEncoder(fileName, faceRecord{})
	if err != nil {
		return fmt.Errorf("trigrid: creating face shapefile: %v", err)
	}
	defer e.Close()
	for i := range g.Faces {
		rec := faceRecord{
			Polygon: g.FacePolygon(i),
			ID:      i,
			Zone:    zoneOf[i],
		}
		if err := e.Encode(rec); err != nil {
			return fmt.Errorf("trigrid: writing face %d to shapefile: %v", i, err)
		}
	}
	return nil
}
