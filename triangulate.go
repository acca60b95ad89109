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

// link is a pending call to one of the Grid.Link* methods.
type link struct {
	fn   func(a, b int) error
	a, b int
}

// triangulate links the nodes, edges and faces of an xn by yn grid
// whose element arrays have already been allocated. Each rectangular
// cell is split along its nur-ndl diagonal:
//
//	       nul    eu     nur
//	        *-------------*
//	        |fu          /|
//	        |          /  |
//	      el|    ec  /    |er
//	        |      /      |
//	        |    /        |
//	        |  /        fd|
//	        *-------------*
//	       ndl    ed     ndr
//
// Edges are stored in three bands: horizontal, then vertical, then
// diagonal.
func (g *Grid) triangulate(xn, yn int) error {
	sx := xn - 1
	sy := yn - 1

	ehn := sx * yn // number of horizontal edges
	evn := sy * xn // number of vertical edges

	for i := 0; i < sy; i++ {
		for j := 0; j < sx; j++ {
			fu := 2 * (j + i*sx)
			fd := fu + 1

			nul := i*xn + j
			nur := nul + 1
			ndl := (i+1)*xn + j
			ndr := ndl + 1

			eu := i*sx + j
			ed := (i+1)*sx + j
			el := ehn + i*xn + j
			er := el + 1
			ec := ehn + evn + i*sx + j

			links := []link{
				{g.LinkFaceAndNode, fu, nul},
				{g.LinkFaceAndNode, fu, ndl},
				{g.LinkFaceAndNode, fu, nur},

				{g.LinkFaceAndNode, fd, ndr},
				{g.LinkFaceAndNode, fd, nur},
				{g.LinkFaceAndNode, fd, ndl},

				{g.LinkNodeAndEdge, nul, eu},
				{g.LinkNodeAndEdge, nur, eu},
				{g.LinkNodeAndEdge, nul, el},
				{g.LinkNodeAndEdge, ndl, el},
				{g.LinkNodeAndEdge, nur, ec},
				{g.LinkNodeAndEdge, ndl, ec},

				{g.LinkFaceAndEdge, fu, el},
				{g.LinkFaceAndEdge, fu, ec},
				{g.LinkFaceAndEdge, fu, eu},

				{g.LinkFaceAndEdge, fd, er},
				{g.LinkFaceAndEdge, fd, ec},
				{g.LinkFaceAndEdge, fd, ed},
			}
			// The bottom and right edges are the top and left edges of
			// the neighboring cells, except in the last row and column.
			if i == sy-1 {
				links = append(links, link{g.LinkNodeAndEdge, ndl, ed}, link{g.LinkNodeAndEdge, ndr, ed})
			}
			if j == sx-1 {
				links = append(links, link{g.LinkNodeAndEdge, nur, er}, link{g.LinkNodeAndEdge, ndr, er})
			}
			for _, l := range links {
				if err := l.fn(l.a, l.b); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
