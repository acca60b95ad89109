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

// Package trigrid builds structured triangular grids over rectangular
// domains, merges grids (zones) that share nodes, and reads and writes
// grids in the Tecplot FETRIANGLE text format.
package trigrid

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// Version gives the version number.
const Version = "1.0.0"

// Maximum number of links each element can hold.
const (
	maxFaceNodes = 3
	maxFaceEdges = 3
	maxEdgeNodes = 2
	maxEdgeFaces = 2
)

// Node is a grid vertex. Faces and Edges hold indices into the owning
// Grid's Faces and Edges arrays in the order the links were made.
type Node struct {
	geom.Point
	ID    int
	Faces []int
	Edges []int
}

// newNode returns a node whose coordinates have not been set yet.
func newNode() *Node {
	return &Node{Point: geom.Point{X: math.NaN(), Y: math.NaN()}, ID: -1}
}

// Edge is a grid edge. It has two end nodes and one (boundary) or two
// (interior) faces.
type Edge struct {
	ID    int
	Nodes []int
	Faces []int
}

// Boundary returns whether e lies on the edge of the grid.
func (e *Edge) Boundary() bool { return len(e.Faces) == 1 }

// Face is a triangle. Nodes are stored clockwise; Edges[k] joins
// Nodes[k] and Nodes[(k+1)%3] for faces built by this package.
type Face struct {
	ID    int
	Nodes []int
	Edges []int
}

// Zone is a named group of nodes and faces from one source grid.
// It is kept for provenance only and plays no part in connectivity.
type Zone struct {
	Name  string
	Nodes []int
	Faces []int
}

// Grid owns the nodes, edges, faces and zones of a triangular mesh.
// The position of an element in its array is its ID once AssignIDs
// has been called.
type Grid struct {
	Nodes []*Node
	Edges []*Edge
	Faces []*Face
	Zones []*Zone

	// Log receives progress messages. It defaults to the standard
	// logrus logger.
	Log logrus.FieldLogger
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{Log: logrus.StandardLogger()}
}

// New creates a grid of xn by yn points spread uniformly over the
// rectangle x[0] <= X <= x[1], y[0] <= Y <= y[1] and triangulates it.
func New(xn, yn int, x, y [2]float64) (*Grid, error) {
	return NewNamed(ZoneName(0), xn, yn, x, y)
}

// NewNamed is like New but gives the grid's zone the title name.
func NewNamed(name string, xn, yn int, x, y [2]float64) (*Grid, error) {
	g := NewGrid()
	if err := g.InitNamed(name, xn, yn, x, y); err != nil {
		return nil, err
	}
	return g, nil
}

// CapacityError is returned when a link would exceed the number of
// nodes, edges or faces an element can hold.
type CapacityError struct {
	Element string // "face" or "edge"
	Index   int
	Linking string // "node", "edge" or "face"
	Max     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("trigrid: %s %d is already linked to the maximum number of %ss (%d)",
		e.Element, e.Index, e.Linking, e.Max)
}

// NumberOfNodes returns the number of nodes in an xn by yn grid.
func NumberOfNodes(xn, yn int) int { return xn * yn }

// NumberOfEdges returns the number of edges in an xn by yn grid:
// horizontal, vertical and one diagonal per cell.
func NumberOfEdges(xn, yn int) int {
	return (xn-1)*yn + (yn-1)*xn + (xn-1)*(yn-1)
}

// NumberOfFaces returns the number of faces in an xn by yn grid.
func NumberOfFaces(xn, yn int) int { return 2 * (xn - 1) * (yn - 1) }

// Init fills g with an xn by yn triangulated grid covering the
// rectangle given by x and y. The arguments are checked before g is
// modified, so a failed Init leaves g as it was.
//
//	             +--------o (x[1], y[1])
//	             |        |
//	             |        |
//	(x[0], y[0]) o--------+
func (g *Grid) Init(xn, yn int, x, y [2]float64) error {
	return g.InitNamed(ZoneName(0), xn, yn, x, y)
}

// InitNamed is like Init but gives the grid's zone the title name.
func (g *Grid) InitNamed(name string, xn, yn int, x, y [2]float64) error {
	if xn <= 1 || yn <= 1 {
		return fmt.Errorf("trigrid: the number of points in each direction must be more than one; have xn=%d, yn=%d", xn, yn)
	}
	if !(x[0] < x[1]) {
		return fmt.Errorf("trigrid: x range must satisfy x1 < x2; have (%g, %g)", x[0], x[1])
	}
	if !(y[0] < y[1]) {
		return fmt.Errorf("trigrid: y range must satisfy y1 < y2; have (%g, %g)", y[0], y[1])
	}
	if g.Log == nil {
		g.Log = logrus.StandardLogger()
	}

	g.initElementArrays(NumberOfNodes(xn, yn), NumberOfEdges(xn, yn), NumberOfFaces(xn, yn))
	g.initZone(name)
	g.initCoordinates(xn, yn, x, y)
	if err := g.triangulate(xn, yn); err != nil {
		return err
	}
	g.AssignIDs()
	g.Log.WithFields(logrus.Fields{
		"nodes": len(g.Nodes),
		"edges": len(g.Edges),
		"faces": len(g.Faces),
	}).Debug("trigrid: initialized grid")
	return nil
}

// initElementArrays replaces the element arrays of g with empty shells.
func (g *Grid) initElementArrays(nodes, edges, faces int) {
	g.Nodes = make([]*Node, nodes)
	for i := range g.Nodes {
		g.Nodes[i] = newNode()
	}
	g.Edges = make([]*Edge, edges)
	for i := range g.Edges {
		g.Edges[i] = &Edge{ID: -1}
	}
	g.Faces = make([]*Face, faces)
	for i := range g.Faces {
		g.Faces[i] = &Face{ID: -1}
	}
	g.Zones = nil
}

// initZone makes every node and face belong to a single zone.
func (g *Grid) initZone(name string) {
	z := &Zone{
		Name:  name,
		Nodes: make([]int, len(g.Nodes)),
		Faces: make([]int, len(g.Faces)),
	}
	for i := range z.Nodes {
		z.Nodes[i] = i
	}
	for i := range z.Faces {
		z.Faces[i] = i
	}
	g.Zones = append(g.Zones, z)
}

// ZoneName returns the default title of the i'th zone, counting from
// zero.
func ZoneName(i int) string { return fmt.Sprintf("ZONE %d", i+1) }

// initCoordinates spaces the nodes evenly over the rectangle, row by
// row.
func (g *Grid) initCoordinates(xn, yn int, x, y [2]float64) {
	dx := (x[1] - x[0]) / float64(xn-1)
	dy := (y[1] - y[0]) / float64(yn-1)
	for j := 0; j < yn; j++ {
		for i := 0; i < xn; i++ {
			n := g.Nodes[j*xn+i]
			n.X = x[0] + float64(i)*dx
			n.Y = y[0] + float64(j)*dy
		}
	}
}

// AssignIDs numbers every element by its position in its array. It
// must be called after all elements are in their final positions.
func (g *Grid) AssignIDs() {
	for i, n := range g.Nodes {
		n.ID = i
	}
	for i, e := range g.Edges {
		e.ID = i
	}
	for i, f := range g.Faces {
		f.ID = i
	}
}

func (g *Grid) checkIndex(kind string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("trigrid: %s index %d out of range [0, %d)", kind, i, n)
	}
	return nil
}

// LinkFaceAndNode links face f and node n.
func (g *Grid) LinkFaceAndNode(f, n int) error {
	if err := g.checkIndex("face", f, len(g.Faces)); err != nil {
		return err
	}
	if err := g.checkIndex("node", n, len(g.Nodes)); err != nil {
		return err
	}
	face := g.Faces[f]
	if len(face.Nodes) >= maxFaceNodes {
		return &CapacityError{Element: "face", Index: f, Linking: "node", Max: maxFaceNodes}
	}
	node := g.Nodes[n]
	node.Faces = append(node.Faces, f)
	face.Nodes = append(face.Nodes, n)
	return nil
}

// LinkNodeAndEdge links node n and edge e.
func (g *Grid) LinkNodeAndEdge(n, e int) error {
	if err := g.checkIndex("node", n, len(g.Nodes)); err != nil {
		return err
	}
	if err := g.checkIndex("edge", e, len(g.Edges)); err != nil {
		return err
	}
	edge := g.Edges[e]
	if len(edge.Nodes) >= maxEdgeNodes {
		return &CapacityError{Element: "edge", Index: e, Linking: "node", Max: maxEdgeNodes}
	}
	node := g.Nodes[n]
	node.Edges = append(node.Edges, e)
	edge.Nodes = append(edge.Nodes, n)
	return nil
}

// LinkFaceAndEdge links face f and edge e.
func (g *Grid) LinkFaceAndEdge(f, e int) error {
	if err := g.checkIndex("face", f, len(g.Faces)); err != nil {
		return err
	}
	if err := g.checkIndex("edge", e, len(g.Edges)); err != nil {
		return err
	}
	edge := g.Edges[e]
	if len(edge.Faces) >= maxEdgeFaces {
		return &CapacityError{Element: "edge", Index: e, Linking: "face", Max: maxEdgeFaces}
	}
	face := g.Faces[f]
	if len(face.Edges) >= maxFaceEdges {
		return &CapacityError{Element: "face", Index: f, Linking: "edge", Max: maxFaceEdges}
	}
	face.Edges = append(face.Edges, e)
	edge.Faces = append(edge.Faces, f)
	return nil
}

// IsEdgePresent returns the edge shared by nodes n1 and n2, if there
// is one. Node indices out of range share no edge.
func (g *Grid) IsEdgePresent(n1, n2 int) (int, bool) {
	if g.checkIndex("node", n1, len(g.Nodes)) != nil || g.checkIndex("node", n2, len(g.Nodes)) != nil {
		return -1, false
	}
	for _, e1 := range g.Nodes[n1].Edges {
		for _, e2 := range g.Nodes[n2].Edges {
			if e1 == e2 {
				return e1, true
			}
		}
	}
	return -1, false
}

// Bounds returns the bounding box of the grid's nodes.
func (g *Grid) Bounds() *geom.Bounds {
	b := geom.NewBounds()
	for _, n := range g.Nodes {
		b.Extend(n.Point.Bounds())
	}
	return b
}

// FacePolygon returns the triangle of face f as a closed polygon ring.
// It returns nil if f is out of range.
func (g *Grid) FacePolygon(f int) geom.Polygon {
	if g.checkIndex("face", f, len(g.Faces)) != nil {
		return nil
	}
	face := g.Faces[f]
	ring := make([]geom.Point, 0, len(face.Nodes)+1)
	for _, n := range face.Nodes {
		ring = append(ring, g.Nodes[n].Point)
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return geom.Polygon{ring}
}
