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
	"reflect"
	"testing"

	"github.com/ctessum/geom"
	"github.com/kr/pretty"
	"gonum.org/v1/gonum/floats"
)

func TestNumberOf(t *testing.T) {
	for _, test := range []struct {
		xn, yn              int
		nodes, edges, faces int
	}{
		{xn: 2, yn: 2, nodes: 4, edges: 5, faces: 2},
		{xn: 3, yn: 2, nodes: 6, edges: 9, faces: 4},
		{xn: 3, yn: 3, nodes: 9, edges: 16, faces: 8},
		{xn: 5, yn: 3, nodes: 15, edges: 30, faces: 16},
		{xn: 4, yn: 5, nodes: 20, edges: 43, faces: 24},
	} {
		if have := NumberOfNodes(test.xn, test.yn); have != test.nodes {
			t.Errorf("%dx%d nodes: want %d but have %d", test.xn, test.yn, test.nodes, have)
		}
		if have := NumberOfEdges(test.xn, test.yn); have != test.edges {
			t.Errorf("%dx%d edges: want %d but have %d", test.xn, test.yn, test.edges, have)
		}
		if have := NumberOfFaces(test.xn, test.yn); have != test.faces {
			t.Errorf("%dx%d faces: want %d but have %d", test.xn, test.yn, test.faces, have)
		}
	}
}

func TestNew2x2(t *testing.T) {
	g, err := New(2, 2, [2]float64{0, 1}, [2]float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}

	wantPoints := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	havePoints := make([]geom.Point, len(g.Nodes))
	for i, n := range g.Nodes {
		havePoints[i] = n.Point
	}
	if !reflect.DeepEqual(wantPoints, havePoints) {
		t.Errorf("points: want %v but have %v", wantPoints, havePoints)
	}
	if len(g.Edges) != 5 {
		t.Errorf("edges: want 5 but have %d", len(g.Edges))
	}

	wantFaces := []*Face{
		{ID: 0, Nodes: []int{0, 2, 1}, Edges: []int{2, 4, 0}},
		{ID: 1, Nodes: []int{3, 1, 2}, Edges: []int{3, 4, 1}},
	}
	if !reflect.DeepEqual(wantFaces, g.Faces) {
		t.Errorf("faces: %v", pretty.Diff(wantFaces, g.Faces))
	}

	wantEdgeNodes := [][]int{{0, 1}, {2, 3}, {0, 2}, {1, 3}, {1, 2}}
	for i, e := range g.Edges {
		if !reflect.DeepEqual(wantEdgeNodes[i], e.Nodes) {
			t.Errorf("edge %d nodes: want %v but have %v", i, wantEdgeNodes[i], e.Nodes)
		}
	}
	if len(g.Zones) != 1 || len(g.Zones[0].Nodes) != 4 || len(g.Zones[0].Faces) != 2 {
		t.Errorf("zones: %# v", pretty.Formatter(g.Zones))
	}
}

func TestNewStructure(t *testing.T) {
	for _, dims := range [][2]int{{2, 2}, {3, 2}, {2, 3}, {4, 4}, {7, 3}, {10, 12}} {
		xn, yn := dims[0], dims[1]
		g, err := New(xn, yn, [2]float64{-1, 3}, [2]float64{10, 20})
		if err != nil {
			t.Fatal(err)
		}
		if len(g.Nodes) != NumberOfNodes(xn, yn) || len(g.Edges) != NumberOfEdges(xn, yn) ||
			len(g.Faces) != NumberOfFaces(xn, yn) {
			t.Errorf("%dx%d: have %d nodes, %d edges, %d faces", xn, yn, len(g.Nodes), len(g.Edges), len(g.Faces))
		}
		if err := g.Check(DefaultEps); err != nil {
			t.Errorf("%dx%d: %v", xn, yn, err)
		}
		var boundary int
		for _, e := range g.Edges {
			if e.Boundary() {
				boundary++
			}
		}
		if want := 2 * ((xn - 1) + (yn - 1)); boundary != want {
			t.Errorf("%dx%d boundary edges: want %d but have %d", xn, yn, want, boundary)
		}
		b := g.Bounds()
		if b.Min.X != -1 || b.Min.Y != 10 || !floats.EqualWithinAbs(b.Max.X, 3, 1e-12) ||
			!floats.EqualWithinAbs(b.Max.Y, 20, 1e-12) {
			t.Errorf("%dx%d bounds: want {{-1 10} {3 20}} but have %v", xn, yn, b)
		}
	}
}

func TestNewDeterministic(t *testing.T) {
	g1, err := New(6, 4, [2]float64{0, 5}, [2]float64{0, 3})
	if err != nil {
		t.Fatal(err)
	}
	g2, err := New(6, 4, [2]float64{0, 5}, [2]float64{0, 3})
	if err != nil {
		t.Fatal(err)
	}
	if g1.Hash() != g2.Hash() {
		t.Errorf("grids built the same way have different hashes")
	}
	g3, err := New(4, 6, [2]float64{0, 5}, [2]float64{0, 3})
	if err != nil {
		t.Fatal(err)
	}
	if g1.Hash() == g3.Hash() {
		t.Errorf("different grids have the same hash")
	}
}

func TestInitPreconditions(t *testing.T) {
	g, err := New(3, 3, [2]float64{0, 1}, [2]float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	before := g.Hash()
	for _, test := range []struct {
		name   string
		xn, yn int
		x, y   [2]float64
	}{
		{name: "xn", xn: 1, yn: 3, x: [2]float64{0, 1}, y: [2]float64{0, 1}},
		{name: "yn", xn: 3, yn: 0, x: [2]float64{0, 1}, y: [2]float64{0, 1}},
		{name: "x order", xn: 3, yn: 3, x: [2]float64{1, 0}, y: [2]float64{0, 1}},
		{name: "x equal", xn: 3, yn: 3, x: [2]float64{1, 1}, y: [2]float64{0, 1}},
		{name: "y order", xn: 3, yn: 3, x: [2]float64{0, 1}, y: [2]float64{2, 1}},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.xn, test.yn, test.x, test.y); err == nil {
				t.Errorf("New: want error")
			}
			if err := g.Init(test.xn, test.yn, test.x, test.y); err == nil {
				t.Errorf("Init: want error")
			}
			if g.Hash() != before {
				t.Errorf("failed Init modified the grid")
			}
		})
	}
}

func TestLinkCapacity(t *testing.T) {
	g := NewGrid()
	g.initElementArrays(4, 1, 3)
	g.AssignIDs()

	for n := 0; n < 3; n++ {
		if err := g.LinkFaceAndNode(0, n); err != nil {
			t.Fatal(err)
		}
	}
	err := g.LinkFaceAndNode(0, 3)
	if ce, ok := err.(*CapacityError); !ok || ce.Element != "face" || ce.Linking != "node" || ce.Max != 3 {
		t.Errorf("face nodes: want face/node capacity error but have %v", err)
	}
	if len(g.Nodes[3].Faces) != 0 {
		t.Errorf("rejected link was half made")
	}

	for n := 0; n < 2; n++ {
		if err := g.LinkNodeAndEdge(n, 0); err != nil {
			t.Fatal(err)
		}
	}
	err = g.LinkNodeAndEdge(2, 0)
	if ce, ok := err.(*CapacityError); !ok || ce.Element != "edge" || ce.Linking != "node" || ce.Max != 2 {
		t.Errorf("edge nodes: want edge/node capacity error but have %v", err)
	}

	for f := 0; f < 2; f++ {
		if err := g.LinkFaceAndEdge(f, 0); err != nil {
			t.Fatal(err)
		}
	}
	err = g.LinkFaceAndEdge(2, 0)
	if ce, ok := err.(*CapacityError); !ok || ce.Element != "edge" || ce.Linking != "face" || ce.Max != 2 {
		t.Errorf("edge faces: want edge/face capacity error but have %v", err)
	}
	if len(g.Faces[2].Edges) != 0 {
		t.Errorf("rejected link was half made")
	}

	if err := g.LinkFaceAndNode(5, 0); err == nil {
		t.Errorf("out of range face: want error")
	}
	if err := g.LinkNodeAndEdge(0, -1); err == nil {
		t.Errorf("out of range edge: want error")
	}
}

func TestLinkFaceEdgeCapacity(t *testing.T) {
	g := NewGrid()
	g.initElementArrays(0, 4, 1)
	for e := 0; e < 3; e++ {
		if err := g.LinkFaceAndEdge(0, e); err != nil {
			t.Fatal(err)
		}
	}
	err := g.LinkFaceAndEdge(0, 3)
	if ce, ok := err.(*CapacityError); !ok || ce.Element != "face" || ce.Linking != "edge" {
		t.Errorf("want face/edge capacity error but have %v", err)
	}
}

func TestIsEdgePresent(t *testing.T) {
	g, err := New(2, 2, [2]float64{0, 1}, [2]float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		n1, n2 int
		e      int
		ok     bool
	}{
		{n1: 1, n2: 2, e: 4, ok: true},
		{n1: 2, n2: 1, e: 4, ok: true},
		{n1: 0, n2: 1, e: 0, ok: true},
		{n1: 3, n2: 1, e: 3, ok: true},
		{n1: 0, n2: 3, e: -1, ok: false},
	} {
		e, ok := g.IsEdgePresent(test.n1, test.n2)
		if e != test.e || ok != test.ok {
			t.Errorf("(%d, %d): want %d, %v but have %d, %v", test.n1, test.n2, test.e, test.ok, e, ok)
		}
	}
}

func TestFacePolygon(t *testing.T) {
	g, err := New(3, 3, [2]float64{0, 2}, [2]float64{0, 4})
	if err != nil {
		t.Fatal(err)
	}
	for i := range g.Faces {
		p := g.FacePolygon(i)
		if len(p) != 1 || len(p[0]) != 4 {
			t.Fatalf("face %d: want one closed ring of 4 points but have %v", i, p)
		}
		if a := p.Area(); a != 1 {
			t.Errorf("face %d area: want 1 but have %g", i, a)
		}
	}
}

func TestNewIDs(t *testing.T) {
	g, err := New(4, 3, [2]float64{0, 3}, [2]float64{0, 2})
	if err != nil {
		t.Fatal(err)
	}
	for i, n := range g.Nodes {
		if n.ID != i {
			t.Errorf("node %d: want ID %d but have %d", i, i, n.ID)
		}
	}
	for i, e := range g.Edges {
		if e.ID != i {
			t.Errorf("edge %d: want ID %d but have %d", i, i, e.ID)
		}
	}
	for i, f := range g.Faces {
		if f.ID != i {
			t.Errorf("face %d: want ID %d but have %d", i, i, f.ID)
		}
	}
}

func TestNewNamed(t *testing.T) {
	g, err := NewNamed("left", 2, 2, [2]float64{0, 1}, [2]float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Zones) != 1 || g.Zones[0].Name != "left" {
		t.Errorf("want one zone named left but have %# v", pretty.Formatter(g.Zones))
	}
	if want := "ZONE 3"; ZoneName(2) != want {
		t.Errorf("want %q but have %q", want, ZoneName(2))
	}
}

func TestOutOfRange(t *testing.T) {
	g, err := New(2, 2, [2]float64{0, 1}, [2]float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, nodes := range [][2]int{{-1, 0}, {0, 4}, {7, 9}} {
		if e, ok := g.IsEdgePresent(nodes[0], nodes[1]); ok || e != -1 {
			t.Errorf("nodes %v: want (-1, false) but have (%d, %v)", nodes, e, ok)
		}
	}
	for _, f := range []int{-1, 2} {
		if p := g.FacePolygon(f); p != nil {
			t.Errorf("face %d: want nil polygon but have %v", f, p)
		}
	}
}
