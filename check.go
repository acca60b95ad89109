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
	"sort"

	"github.com/spatialmodel/trigrid/internal/hash"
)

// Hash returns a fingerprint of the nodes, edges, faces and zones of
// g. Grids built the same way have the same hash.
func (g *Grid) Hash() string {
	return hash.Hash(gridData{Nodes: g.Nodes, Edges: g.Edges, Faces: g.Faces, Zones: g.Zones})
}

// Check returns an error describing the first problem it finds with the
// structure of g: IDs that do not match positions, faces without exactly
// three nodes and edges, edges without exactly two nodes or with other
// than one or two faces, one-sided links, or, if eps >= 0, two nodes
// within eps of each other.
func (g *Grid) Check(eps float64) error {
	for i, n := range g.Nodes {
		if n.ID != i {
			return fmt.Errorf("trigrid: node at position %d has ID %d", i, n.ID)
		}
		for _, f := range n.Faces {
			if !contains(g.Faces[f].Nodes, i) {
				return fmt.Errorf("trigrid: node %d lists face %d but the face does not list the node", i, f)
			}
		}
		for _, e := range n.Edges {
			if !contains(g.Edges[e].Nodes, i) {
				return fmt.Errorf("trigrid: node %d lists edge %d but the edge does not list the node", i, e)
			}
		}
	}
	for i, e := range g.Edges {
		if e.ID != i {
			return fmt.Errorf("trigrid: edge at position %d has ID %d", i, e.ID)
		}
		if len(e.Nodes) != maxEdgeNodes {
			return fmt.Errorf("trigrid: edge %d has %d nodes", i, len(e.Nodes))
		}
		if len(e.Faces) < 1 || len(e.Faces) > maxEdgeFaces {
			return fmt.Errorf("trigrid: edge %d has %d faces", i, len(e.Faces))
		}
		for _, n := range e.Nodes {
			if !contains(g.Nodes[n].Edges, i) {
				return fmt.Errorf("trigrid: edge %d lists node %d but the node does not list the edge", i, n)
			}
		}
		for _, f := range e.Faces {
			if !contains(g.Faces[f].Edges, i) {
				return fmt.Errorf("trigrid: edge %d lists face %d but the face does not list the edge", i, f)
			}
		}
	}
	for i, f := range g.Faces {
		if f.ID != i {
			return fmt.Errorf("trigrid: face at position %d has ID %d", i, f.ID)
		}
		if len(f.Nodes) != maxFaceNodes || len(f.Edges) != maxFaceEdges {
			return fmt.Errorf("trigrid: face %d has %d nodes and %d edges", i, len(f.Nodes), len(f.Edges))
		}
		for _, n := range f.Nodes {
			if !contains(g.Nodes[n].Faces, i) {
				return fmt.Errorf("trigrid: face %d lists node %d but the node does not list the face", i, n)
			}
		}
		for _, e := range f.Edges {
			if !contains(g.Edges[e].Faces, i) {
				return fmt.Errorf("trigrid: face %d lists edge %d but the edge does not list the face", i, e)
			}
			for _, n := range g.Edges[e].Nodes {
				if !contains(f.Nodes, n) {
					return fmt.Errorf("trigrid: face %d has edge %d whose node %d is not a face node", i, e, n)
				}
			}
		}
	}
	if eps >= 0 {
		if i, j, ok := g.closeNodes(eps); ok {
			return fmt.Errorf("trigrid: nodes %d and %d are within %g of each other", i, j, eps)
		}
	}
	return nil
}

// closeNodes returns a pair of distinct nodes that are within eps of each
// other, if there is one.
func (g *Grid) closeNodes(eps float64) (int, int, bool) {
	order := make([]int, len(g.Nodes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return g.Nodes[order[a]].X < g.Nodes[order[b]].X
	})
	for a, i := range order {
		for _, j := range order[a+1:] {
			if g.Nodes[j].X-g.Nodes[i].X > eps {
				break
			}
			if same(g.Nodes[i], g.Nodes[j], eps) {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
