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

package trigridutil

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/trigrid"
)

// Layout lists the zones of a multi-zone grid. In TOML it is written as
// one [[Zone]] table per zone:
//
//	[[Zone]]
//	Name = "left"
//	Nx = 3
//	Ny = 3
//	X = [0.0, 2.0]
//	Y = [0.0, 2.0]
type Layout struct {
	Zone []ZoneLayout
}

// ZoneLayout holds the arguments for one regular grid.
type ZoneLayout struct {
	// Name is the zone title. It defaults to "ZONE n", where n is the
	// 1-based position of the zone in the layout.
	Name string

	// Nx and Ny are the number of points in each direction.
	Nx, Ny int

	// X and Y are the lower and upper bounds in each direction.
	X, Y [2]float64
}

// ReadLayout decodes a TOML layout from r.
func ReadLayout(r io.Reader) (*Layout, error) {
	l := new(Layout)
	md, err := toml.DecodeReader(r, l)
	if err != nil {
		return nil, fmt.Errorf("trigrid: reading layout: %v", err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, fmt.Errorf("trigrid: unknown layout keys %v", u)
	}
	return l, nil
}

// Grid creates a grid for each zone in l and merges them with m.
func (l *Layout) Grid(m trigrid.NodeMerger) (*trigrid.Grid, error) {
	if len(l.Zone) == 0 {
		return nil, fmt.Errorf("trigrid: layout has no zones")
	}
	grids := make([]*trigrid.Grid, len(l.Zone))
	for i, z := range l.Zone {
		name := z.Name
		if name == "" {
			name = trigrid.ZoneName(i)
		}
		g, err := trigrid.NewNamed(name, z.Nx, z.Ny, z.X, z.Y)
		if err != nil {
			return nil, fmt.Errorf("trigrid: layout zone %d: %v", i+1, err)
		}
		grids[i] = g
	}
	g := grids[0]
	if err := g.Merge(m, grids[1:]...); err != nil {
		return nil, err
	}
	return g, nil
}
