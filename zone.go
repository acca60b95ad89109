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

	"github.com/sirupsen/logrus"
)

// zoneData is a zone that has not been added to a grid yet. Faces
// index into nodes.
type zoneData struct {
	name  string
	nodes []*Node
	faces [][3]int
}

// copyZones returns detached copies of the zones of g, holding only
// node coordinates and face corners.
func (g *Grid) copyZones() ([]*zoneData, error) {
	out := make([]*zoneData, len(g.Zones))
	for zi, z := range g.Zones {
		zd := &zoneData{name: z.Name, nodes: make([]*Node, len(z.Nodes))}
		local := make(map[int]int, len(z.Nodes))
		for i, n := range z.Nodes {
			nn := newNode()
			nn.Point = g.Nodes[n].Point
			zd.nodes[i] = nn
			local[n] = i
		}
		for _, f := range z.Faces {
			face := g.Faces[f]
			if len(face.Nodes) != maxFaceNodes {
				return nil, fmt.Errorf("trigrid: zone %q face %d has %d nodes", z.Name, f, len(face.Nodes))
			}
			var t [3]int
			for k, n := range face.Nodes {
				i, ok := local[n]
				if !ok {
					return nil, fmt.Errorf("trigrid: zone %q face %d uses node %d which is not in the zone", z.Name, f, n)
				}
				t[k] = i
			}
			zd.faces = append(zd.faces, t)
		}
		out[zi] = zd
	}
	return out, nil
}

// Merge combines g with the other grids. The nodes of every zone of g
// and of others are merged by m, so nodes shared between zones appear
// once in the result. Faces and edges are then rebuilt against the
// merged nodes, with edges along zone seams shared between the faces on
// either side. The zones of the result are those of g followed by
// those of others, in order. The other grids are not modified.
func (g *Grid) Merge(m NodeMerger, others ...*Grid) error {
	zones, err := g.copyZones()
	if err != nil {
		return err
	}
	for _, o := range others {
		oz, err := o.copyZones()
		if err != nil {
			return err
		}
		zones = append(zones, oz...)
	}
	return g.build(m, zones)
}

// build replaces the contents of g with the given zones. If m is nil
// the zone nodes are used as they are, which is only correct for a
// single zone. g is left unchanged if build fails.
func (g *Grid) build(m NodeMerger, zones []*zoneData) error {
	log := g.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	ng := &Grid{Log: log}

	for _, z := range zones {
		if m == nil {
			ng.Nodes = append(ng.Nodes, z.nodes...)
			continue
		}
		appended, err := m.MergeNodes(ng, z.nodes)
		if err != nil {
			return fmt.Errorf("trigrid: merging zone %q: %v", z.name, err)
		}
		ng.Log.WithFields(logrus.Fields{
			"zone":       z.name,
			"incoming":   len(z.nodes),
			"appended":   appended,
			"duplicates": len(z.nodes) - appended,
		}).Debug("trigrid: merged zone nodes")
	}

	// Node positions are final now.
	pos := make(map[*Node]int, len(ng.Nodes))
	for i, n := range ng.Nodes {
		n.Faces, n.Edges = nil, nil
		pos[n] = i
	}

	for _, z := range zones {
		zone := &Zone{Name: z.name}
		seen := make(map[int]bool, len(z.nodes))
		for _, n := range z.nodes {
			i := pos[n]
			if !seen[i] {
				seen[i] = true
				zone.Nodes = append(zone.Nodes, i)
			}
		}
		for fi, t := range z.faces {
			var corners [3]int
			for k, ni := range t {
				if ni < 0 || ni >= len(z.nodes) {
					return fmt.Errorf("trigrid: zone %q face %d: node index %d out of range", z.name, fi, ni)
				}
				corners[k] = pos[z.nodes[ni]]
			}
			f, err := ng.addFace(corners)
			if err != nil {
				return fmt.Errorf("trigrid: zone %q face %d: %v", z.name, fi, err)
			}
			zone.Faces = append(zone.Faces, f)
		}
		ng.Zones = append(ng.Zones, zone)
	}
	ng.AssignIDs()
	*g = *ng
	return nil
}

// addFace appends a face with the given corner nodes, creating the
// edges between consecutive corners unless they already exist, and
// returns the index of the new face. If a face with the same corners
// already exists, for example where two zones overlap, its index is
// returned instead.
func (g *Grid) addFace(corners [3]int) (int, error) {
	if corners[0] == corners[1] || corners[1] == corners[2] || corners[0] == corners[2] {
		return -1, fmt.Errorf("degenerate face with nodes %v", corners)
	}
	if f, ok := g.findFace(corners); ok {
		return f, nil
	}
	f := len(g.Faces)
	g.Faces = append(g.Faces, &Face{ID: -1})
	for _, n := range corners {
		if err := g.LinkFaceAndNode(f, n); err != nil {
			return -1, err
		}
	}
	for k := range corners {
		n1, n2 := corners[k], corners[(k+1)%3]
		e, ok := g.IsEdgePresent(n1, n2)
		if !ok {
			e = len(g.Edges)
			g.Edges = append(g.Edges, &Edge{ID: -1})
			if err := g.LinkNodeAndEdge(n1, e); err != nil {
				return -1, err
			}
			if err := g.LinkNodeAndEdge(n2, e); err != nil {
				return -1, err
			}
		}
		if err := g.LinkFaceAndEdge(f, e); err != nil {
			return -1, err
		}
	}
	return f, nil
}

// findFace returns the face whose nodes are the given corners, in any
// order.
func (g *Grid) findFace(corners [3]int) (int, bool) {
	for _, f := range g.Nodes[corners[0]].Faces {
		nodes := g.Faces[f].Nodes
		match := 0
		for _, c := range corners {
			for _, n := range nodes {
				if n == c {
					match++
					break
				}
			}
		}
		if match == len(corners) {
			return f, true
		}
	}
	return -1, false
}
