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

package hash

import "testing"

type point struct {
	X, Y float64
}

type tri struct {
	Nodes []int
	Edges []int
}

// holder cannot be gob encoded because point is not registered.
type holder struct {
	V interface{}
}

func TestHash(t *testing.T) {
	a := []tri{{Nodes: []int{0, 2, 1}, Edges: []int{2, 4, 0}}}
	b := []tri{{Nodes: []int{0, 2, 1}, Edges: []int{2, 4, 0}}}
	c := []tri{{Nodes: []int{0, 1, 2}, Edges: []int{2, 4, 0}}}
	if Hash(a) != Hash(b) {
		t.Errorf("equal values have different hashes")
	}
	if Hash(a) == Hash(c) {
		t.Errorf("different values have the same hash")
	}
	if have := len(Hash(a)); have != 32 {
		t.Errorf("want 32 hex digits but have %d", have)
	}
}

func TestHashFallback(t *testing.T) {
	h1 := Hash(holder{V: point{X: 1, Y: 2}})
	h2 := Hash(holder{V: point{X: 1, Y: 2}})
	h3 := Hash(holder{V: point{X: 2, Y: 1}})
	if h1 != h2 {
		t.Errorf("equal values have different hashes")
	}
	if h1 == h3 {
		t.Errorf("different values have the same hash")
	}
}
