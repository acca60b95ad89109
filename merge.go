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
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultEps is the default tolerance for deciding that two nodes are
// at the same location.
const DefaultEps = 1e-5

// ErrUnsorted is returned by the bisection mergers when the grid's nodes
// are not sorted by X.
var ErrUnsorted = errors.New("trigrid: grid nodes are not sorted by x coordinate")

// NodeMerger merges the nodes of a zone into a grid. Two nodes are the
// same if both of their coordinates differ by no more than the merger's
// tolerance. Each entry of nodes that duplicates a node already in g is
// replaced in place by the node from g; all other entries are added to
// g.Nodes in the order they appear in nodes. MergeNodes returns the
// number of nodes added to g.
type NodeMerger interface {
	MergeNodes(g *Grid, nodes []*Node) (appended int, err error)
}

// NewNodeMerger returns the merger with the given name: "quadratic",
// "onesided" or "twosided".
func NewNodeMerger(name string, eps float64) (NodeMerger, error) {
	if !(eps >= 0) {
		return nil, fmt.Errorf("trigrid: merge tolerance must be >= 0 but is %g", eps)
	}
	switch name {
	case "quadratic":
		return Quadratic{Eps: eps}, nil
	case "onesided":
		return OneSidedBisection{Eps: eps}, nil
	case "twosided":
		return TwoSidedBisection{Eps: eps}, nil
	default:
		return nil, fmt.Errorf("trigrid: invalid node merge algorithm %q; "+
			"options are 'quadratic', 'onesided', and 'twosided'", name)
	}
}

// same returns whether a and b are within eps of each other in both
// directions.
func same(a, b *Node, eps float64) bool {
	return floats.EqualWithinAbs(a.X, b.X, eps) && floats.EqualWithinAbs(a.Y, b.Y, eps)
}

// Quadratic compares every incoming node with every node in the grid.
// It makes no assumption about node order and appends new nodes to the
// end of the grid. It takes O(len(g.Nodes)*len(nodes)) time.
type Quadratic struct {
	Eps float64
}

// MergeNodes implements NodeMerger.
func (q Quadratic) MergeNodes(g *Grid, nodes []*Node) (int, error) {
	var appended int
	for i, n := range nodes {
		found := false
		for _, gn := range g.Nodes {
			if same(gn, n, q.Eps) {
				nodes[i] = gn
				found = true
				break
			}
		}
		if !found {
			g.Nodes = append(g.Nodes, n)
			appended++
		}
	}
	return appended, nil
}

// OneSidedBisection requires g.Nodes to be sorted by X. For each
// incoming node it finds the first grid node whose X matches by binary
// search and then checks Y for each node in the run of matching X
// values going forward. New nodes are inserted so the grid stays
// sorted. It is the better choice when many nodes share X values.
type OneSidedBisection struct {
	Eps float64
}

// MergeNodes implements NodeMerger.
func (o OneSidedBisection) MergeNodes(g *Grid, nodes []*Node) (int, error) {
	if !sortedByX(g.Nodes) {
		return 0, ErrUnsorted
	}
	var appended int
	for i, n := range nodes {
		// First position whose X is not below the matching range.
		first := sort.Search(len(g.Nodes), func(k int) bool {
			return n.X-g.Nodes[k].X <= o.Eps
		})
		found := false
		for c := first; c < len(g.Nodes) && g.Nodes[c].X-n.X <= o.Eps; c++ {
			if floats.EqualWithinAbs(g.Nodes[c].Y, n.Y, o.Eps) {
				nodes[i] = g.Nodes[c]
				found = true
				break
			}
		}
		if !found {
			g.insertNode(n)
			appended++
		}
	}
	return appended, nil
}

// TwoSidedBisection requires g.Nodes to be sorted by X. For each
// incoming node it bisects until it lands on any grid node with a
// matching X and then checks Y for the matching run going backward and
// then forward from there. New nodes are inserted so the grid stays
// sorted. It is the better choice when few nodes share X values.
type TwoSidedBisection struct {
	Eps float64
}

// MergeNodes implements NodeMerger.
func (t TwoSidedBisection) MergeNodes(g *Grid, nodes []*Node) (int, error) {
	if !sortedByX(g.Nodes) {
		return 0, ErrUnsorted
	}
	var appended int
	for i, n := range nodes {
		if m := t.find(g.Nodes, n); m >= 0 {
			nodes[i] = g.Nodes[m]
			continue
		}
		g.insertNode(n)
		appended++
	}
	return appended, nil
}

// find returns the index of the node in sorted that is the same as n,
// or -1 if there is none.
func (t TwoSidedBisection) find(sorted []*Node, n *Node) int {
	a, b := 0, len(sorted)-1
	for a <= b {
		m := (a + b) / 2
		mx := sorted[m].X
		if floats.EqualWithinAbs(mx, n.X, t.Eps) {
			for c := m; c >= 0 && floats.EqualWithinAbs(sorted[c].X, n.X, t.Eps); c-- {
				if floats.EqualWithinAbs(sorted[c].Y, n.Y, t.Eps) {
					return c
				}
			}
			for c := m + 1; c < len(sorted) && floats.EqualWithinAbs(sorted[c].X, n.X, t.Eps); c++ {
				if floats.EqualWithinAbs(sorted[c].Y, n.Y, t.Eps) {
					return c
				}
			}
			// The whole run of matching X values has been checked.
			return -1
		}
		if mx > n.X {
			b = m - 1
		} else {
			a = m + 1
		}
	}
	return -1
}

// insertNode inserts n into g.Nodes after every node whose X is not
// greater than n.X.
func (g *Grid) insertNode(n *Node) {
	i := sort.Search(len(g.Nodes), func(k int) bool {
		return g.Nodes[k].X > n.X
	})
	g.Nodes = append(g.Nodes, nil)
	copy(g.Nodes[i+1:], g.Nodes[i:])
	g.Nodes[i] = n
}

// sortedByX returns whether nodes are in non-decreasing order of X.
func sortedByX(nodes []*Node) bool {
	return sort.SliceIsSorted(nodes, func(i, j int) bool {
		return nodes[i].X < nodes[j].X
	})
}
