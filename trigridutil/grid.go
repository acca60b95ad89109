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
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/trigrid"
)

// mergedZoneName is the zone title used when a grid is written as a
// single zone.
const mergedZoneName = "MERGED"

// Generate creates an xn by yn grid over the rectangle given by x and y
// and writes it to outputFile.
func Generate(xn, yn int, x, y [2]float64, outputFile string, merged bool) error {
	g := trigrid.NewGrid()
	if err := g.Apply(trigrid.Regular(xn, yn, x, y)); err != nil {
		return err
	}
	return writeGrid(g, outputFile, merged)
}

// Build creates the grid described by the layout in layoutFile, merging
// the zones with m, and writes it to outputFile.
func Build(layoutFile, outputFile string, m trigrid.NodeMerger, merged bool) error {
	if layoutFile == "" {
		return fmt.Errorf("trigrid: you need to specify a layout file")
	}
	f, err := os.Open(layoutFile)
	if err != nil {
		return fmt.Errorf("trigrid: opening layout file: %v", err)
	}
	defer f.Close()
	l, err := ReadLayout(f)
	if err != nil {
		return err
	}
	g, err := l.Grid(m)
	if err != nil {
		return err
	}
	return writeGrid(g, outputFile, merged)
}

// Merge reads the grids in inputFiles, merges them with m, and writes the
// result to outputFile.
func Merge(inputFiles []string, outputFile string, m trigrid.NodeMerger, merged bool) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("trigrid: no input files to merge")
	}
	grids := make([]*trigrid.Grid, len(inputFiles))
	for i, name := range inputFiles {
		g, err := readGrid(name, m)
		if err != nil {
			return err
		}
		grids[i] = g
	}
	g := grids[0]
	if err := g.Apply(trigrid.MergeGrids(m, grids[1:]...)); err != nil {
		return err
	}
	return writeGrid(g, outputFile, merged)
}

// Check reads inputFile, using m to merge its zones, and returns an
// error describing the first structural problem in the grid.
func Check(inputFile string, m trigrid.NodeMerger, eps float64) error {
	g, err := readGrid(inputFile, m)
	if err != nil {
		return err
	}
	if err := g.Check(eps); err != nil {
		return fmt.Errorf("%s: %v", inputFile, err)
	}
	logrus.WithFields(logrus.Fields{
		"file": inputFile,
		"hash": g.Hash(),
	}).Info("trigrid: grid is valid")
	return nil
}

// Shapefile reads inputFile, using m to merge its zones, and writes its
// faces to the shapefile outputFile.
func Shapefile(inputFile, outputFile string, m trigrid.NodeMerger) error {
	g, err := readGrid(inputFile, m)
	if err != nil {
		return err
	}
	return g.WriteShapefile(outputFile)
}

// isGob returns whether fileName holds a saved grid rather than a
// Tecplot file.
func isGob(fileName string) bool {
	return strings.ToLower(filepath.Ext(fileName)) == ".gob"
}

// readGrid reads a saved grid or a Tecplot file, using m to merge the
// Tecplot zones.
func readGrid(fileName string, m trigrid.NodeMerger) (*trigrid.Grid, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("trigrid: opening grid file: %v", err)
	}
	defer f.Close()

	var g *trigrid.Grid
	if isGob(fileName) {
		g = trigrid.NewGrid()
		err = g.Apply(trigrid.Load(f))
	} else {
		g, err = trigrid.ReadMultiZoneTecplot(f, m)
	}
	if err != nil {
		return nil, fmt.Errorf("trigrid: reading %s: %v", fileName, err)
	}
	logFields(g, fileName).Info("trigrid: read grid")
	return g, nil
}

// writeGrid writes g to fileName as a saved grid or a Tecplot file.
func writeGrid(g *trigrid.Grid, fileName string, merged bool) error {
	if fileName == "" {
		return fmt.Errorf(`trigrid: you need to specify an output file (for example: output="grid.dat")`)
	}
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("trigrid: creating output file: %v", err)
	}
	switch {
	case isGob(fileName):
		err = g.Apply(trigrid.Save(f))
	case merged:
		err = trigrid.WriteMergedTecplot(f, g, mergedZoneName)
	default:
		err = trigrid.WriteTecplot(f, g)
	}
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("trigrid: closing output file: %v", err)
	}
	logFields(g, fileName).Info("trigrid: wrote grid")
	return nil
}

func logFields(g *trigrid.Grid, fileName string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"file":  fileName,
		"zones": len(g.Zones),
		"nodes": len(g.Nodes),
		"edges": len(g.Edges),
		"faces": len(g.Faces),
	})
}
