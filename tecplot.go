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
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Literal lines and prefixes of the Tecplot format.
const (
	tecTitle       = `TITLE = "GRID"`
	tecVariables   = `VARIABLES = "X", "Y"`
	tecZone        = `ZONE T = `
	tecNodes       = `NODES = `
	tecElements    = `ELEMENTS = `
	tecDataPacking = `DATAPACKING = BLOCK`
	tecZoneType    = `ZONETYPE = FETRIANGLE`

	// zoneHeaderLines is the number of lines in a zone block before
	// the connectivity list: five header lines, the x line and the y
	// line.
	zoneHeaderLines = 7
)

// ParseError reports a problem in a Tecplot file.
type ParseError struct {
	Line int // 1-based line number
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trigrid: tecplot line %d: %s", e.Line, e.Msg)
}

// WriteTecplot writes g to w in Tecplot FETRIANGLE format with one
// zone block per zone of g. Node numbers in each block are local to
// the zone.
func WriteTecplot(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	writeTecplotHeader(bw)
	for _, z := range g.Zones {
		local := make(map[int]int, len(z.Nodes))
		for i, n := range z.Nodes {
			local[n] = i
		}
		faces := make([][3]int, len(z.Faces))
		for i, f := range z.Faces {
			t, err := faceCorners(g, f)
			if err != nil {
				return err
			}
			for k, n := range t {
				li, ok := local[n]
				if !ok {
					return fmt.Errorf("trigrid: zone %q face %d uses node %d which is not in the zone", z.Name, f, n)
				}
				faces[i][k] = li
			}
		}
		writeTecplotZone(bw, z.Name, g.Nodes, z.Nodes, faces)
	}
	return bw.Flush()
}

// WriteMergedTecplot writes all of g to w as a single zone with the
// given name.
func WriteMergedTecplot(w io.Writer, g *Grid, name string) error {
	bw := bufio.NewWriter(w)
	writeTecplotHeader(bw)
	nodes := make([]int, len(g.Nodes))
	for i := range nodes {
		nodes[i] = i
	}
	faces := make([][3]int, len(g.Faces))
	for i := range g.Faces {
		t, err := faceCorners(g, i)
		if err != nil {
			return err
		}
		faces[i] = t
	}
	writeTecplotZone(bw, name, g.Nodes, nodes, faces)
	return bw.Flush()
}

func faceCorners(g *Grid, f int) ([3]int, error) {
	var t [3]int
	if len(g.Faces[f].Nodes) != maxFaceNodes {
		return t, fmt.Errorf("trigrid: face %d has %d nodes", f, len(g.Faces[f].Nodes))
	}
	copy(t[:], g.Faces[f].Nodes)
	return t, nil
}

func writeTecplotHeader(w *bufio.Writer) {
	fmt.Fprintln(w, tecTitle)
	fmt.Fprintln(w, tecVariables)
}

// writeTecplotZone writes one zone block. nodes selects the zone's
// nodes from all; faces index into nodes.
func writeTecplotZone(w *bufio.Writer, name string, all []*Node, nodes []int, faces [][3]int) {
	fmt.Fprintf(w, "%s%q\n", tecZone, name)
	fmt.Fprintf(w, "%s%d\n", tecNodes, len(nodes))
	fmt.Fprintf(w, "%s%d\n", tecElements, len(faces))
	fmt.Fprintln(w, tecDataPacking)
	fmt.Fprintln(w, tecZoneType)

	for i, n := range nodes {
		if i != 0 {
			w.WriteByte(' ')
		}
		w.WriteString(strconv.FormatFloat(all[n].X, 'g', -1, 64))
	}
	w.WriteByte('\n')
	for i, n := range nodes {
		if i != 0 {
			w.WriteByte(' ')
		}
		w.WriteString(strconv.FormatFloat(all[n].Y, 'g', -1, 64))
	}
	w.WriteByte('\n')

	for _, t := range faces {
		fmt.Fprintf(w, "%d %d %d\n", t[0]+1, t[1]+1, t[2]+1)
	}
}

// ReadTecplot reads a single-zone Tecplot file. It is an error for the
// file to hold more than one zone.
func ReadTecplot(r io.Reader) (*Grid, error) {
	zones, err := readTecplotZones(r)
	if err != nil {
		return nil, err
	}
	if len(zones) != 1 {
		return nil, fmt.Errorf("trigrid: expected one zone in tecplot file but found %d; "+
			"use ReadMultiZoneTecplot to read multi-zone files", len(zones))
	}
	g := NewGrid()
	if err := g.build(nil, zones); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadMultiZoneTecplot reads a Tecplot file with one or more zones and
// merges the nodes the zones share using m.
func ReadMultiZoneTecplot(r io.Reader, m NodeMerger) (*Grid, error) {
	if m == nil {
		return nil, fmt.Errorf("trigrid: ReadMultiZoneTecplot needs a NodeMerger")
	}
	zones, err := readTecplotZones(r)
	if err != nil {
		return nil, err
	}
	g := NewGrid()
	if err := g.build(m, zones); err != nil {
		return nil, err
	}
	return g, nil
}

// readLines returns the lines of r without line endings.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func readTecplotZones(r io.Reader) ([]*zoneData, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("trigrid: reading tecplot file: %v", err)
	}
	// Blank lines at the end of the file are allowed.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, &ParseError{Line: len(lines) + 1, Msg: "missing file header"}
	}
	if err := expectLine(lines, 0, tecTitle); err != nil {
		return nil, err
	}
	if err := expectLine(lines, 1, tecVariables); err != nil {
		return nil, err
	}

	var zones []*zoneData
	for off := 2; off < len(lines); {
		z, next, err := readTecplotZone(lines, off)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
		off = next
	}
	if len(zones) == 0 {
		return nil, &ParseError{Line: 3, Msg: "no zones in file"}
	}
	return zones, nil
}

// readTecplotZone parses the zone block starting at line index off and
// returns it along with the index of the line after the block.
func readTecplotZone(lines []string, off int) (*zoneData, int, error) {
	if off+zoneHeaderLines > len(lines) {
		return nil, 0, &ParseError{Line: len(lines) + 1, Msg: "unexpected end of file in zone header"}
	}
	name, err := zoneTitle(lines, off)
	if err != nil {
		return nil, 0, err
	}
	nNodes, err := headerCount(lines, off+1, tecNodes)
	if err != nil {
		return nil, 0, err
	}
	nFaces, err := headerCount(lines, off+2, tecElements)
	if err != nil {
		return nil, 0, err
	}
	if err := expectLine(lines, off+3, tecDataPacking); err != nil {
		return nil, 0, err
	}
	if err := expectLine(lines, off+4, tecZoneType); err != nil {
		return nil, 0, err
	}
	next := off + zoneHeaderLines + nFaces
	if next > len(lines) {
		return nil, 0, &ParseError{Line: len(lines) + 1,
			Msg: fmt.Sprintf("zone %q should have %d elements but the file ends after %d", name, nFaces, len(lines)-off-zoneHeaderLines)}
	}

	xs, err := parseFloats(lines, off+5, nNodes)
	if err != nil {
		return nil, 0, err
	}
	ys, err := parseFloats(lines, off+6, nNodes)
	if err != nil {
		return nil, 0, err
	}
	z := &zoneData{name: name, nodes: make([]*Node, nNodes), faces: make([][3]int, nFaces)}
	for i := range z.nodes {
		n := newNode()
		n.X, n.Y = xs[i], ys[i]
		z.nodes[i] = n
	}
	for i := range z.faces {
		li := off + zoneHeaderLines + i
		fields := strings.Fields(lines[li])
		if len(fields) != maxFaceNodes {
			return nil, 0, &ParseError{Line: li + 1, Msg: fmt.Sprintf("want %d node numbers but have %d", maxFaceNodes, len(fields))}
		}
		for k, s := range fields {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, 0, &ParseError{Line: li + 1, Msg: err.Error()}
			}
			if v < 1 || v > nNodes {
				return nil, 0, &ParseError{Line: li + 1, Msg: fmt.Sprintf("node number %d out of range [1, %d]", v, nNodes)}
			}
			z.faces[i][k] = v - 1
		}
	}
	return z, next, nil
}

func expectLine(lines []string, i int, want string) error {
	if strings.TrimSpace(lines[i]) != want {
		return &ParseError{Line: i + 1, Msg: fmt.Sprintf("want %q but have %q", want, lines[i])}
	}
	return nil
}

func zoneTitle(lines []string, i int) (string, error) {
	line := strings.TrimSpace(lines[i])
	if !strings.HasPrefix(line, tecZone) {
		return "", &ParseError{Line: i + 1, Msg: fmt.Sprintf("want zone title but have %q", lines[i])}
	}
	name := strings.TrimSpace(strings.TrimPrefix(line, tecZone))
	if unq, err := strconv.Unquote(name); err == nil {
		return unq, nil
	}
	return strings.Trim(name, `"`), nil
}

func headerCount(lines []string, i int, prefix string) (int, error) {
	line := strings.TrimSpace(lines[i])
	if !strings.HasPrefix(line, prefix) {
		return 0, &ParseError{Line: i + 1, Msg: fmt.Sprintf("want %q but have %q", strings.TrimSpace(prefix), lines[i])}
	}
	v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, prefix)))
	if err != nil {
		return 0, &ParseError{Line: i + 1, Msg: err.Error()}
	}
	if v < 0 {
		return 0, &ParseError{Line: i + 1, Msg: fmt.Sprintf("negative count %d", v)}
	}
	return v, nil
}

func parseFloats(lines []string, i, n int) ([]float64, error) {
	fields := strings.Fields(lines[i])
	if len(fields) != n {
		return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("want %d values but have %d", n, len(fields))}
	}
	out := make([]float64, n)
	for j, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Msg: err.Error()}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("non-finite value %q", s)}
		}
		out[j] = v
	}
	return out, nil
}
