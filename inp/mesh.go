// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `yaml:"id"`  // id
	Tag int       `yaml:"tag"` // tag
	C   []float64 `yaml:"c"`   // coordinates (size==ndim)

	// derived
	SharedBy []int `yaml:"-"` // cells sharing this vertex
}

// Cell holds cell data
type Cell struct {
	Id     int    `yaml:"id"`     // id
	Tag    int    `yaml:"tag"`    // tag; selects element data
	Region int    `yaml:"region"` // region id
	Type   string `yaml:"type"`   // geometry type; e.g. "lin2", "qua4"
	Verts  []int  `yaml:"verts"`  // vertices
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from input
	Verts []*Vert `yaml:"verts"` // vertices
	Cells []*Cell `yaml:"cells"` // cells

	// derived
	FnamePath  string  `yaml:"-"` // complete filename path (empty if inlined)
	Ndim       int     `yaml:"-"` // space dimension
	Xmin, Xmax float64 `yaml:"-"` // min and max x-coordinate
	Ymin, Ymax float64 `yaml:"-"` // min and max y-coordinate
	Zmin, Zmax float64 `yaml:"-"` // min and max z-coordinate

	// derived: maps
	CellTag2cells map[int][]*Cell `yaml:"-"` // cell tag => set of cells
	Reg2cells     map[int][]*Cell `yaml:"-"` // region id => set of cells
	Regions       []int           `yaml:"-"` // region ids in ascending order
}

// ReadMsh reads a mesh file (YAML) for FE analyses
func ReadMsh(dir, fn string, ndim int) (o *Mesh, err error) {
	o = new(Mesh)
	o.FnamePath = filepath.Join(dir, fn)
	b, err := os.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q: %v", o.FnamePath, err)
	}
	err = yaml.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q: %v", o.FnamePath, err)
	}
	err = o.Init(ndim)
	return
}

// Init checks the mesh and computes derived data
func (o *Mesh) Init(ndim int) (err error) {

	// check
	if ndim < 1 || ndim > 3 {
		return chk.Err("space dimension must be 1, 2 or 3; ndim = %d is invalid", ndim)
	}
	if len(o.Verts) < 2 {
		return chk.Err("mesh must have at least 2 vertices; got %d", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh must have at least 1 cell")
	}
	o.Ndim = ndim

	// vertices
	o.Xmin, o.Ymin, o.Zmin = o.coord(0, 0), o.coord(0, 1), o.coord(0, 2)
	o.Xmax, o.Ymax, o.Zmax = o.Xmin, o.Ymin, o.Zmin
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertices ids must be sequential; vertex %d has id = %d", i, v.Id)
		}
		if len(v.C) != ndim {
			return chk.Err("vertex %d must have %d coordinates; got %d", i, ndim, len(v.C))
		}
		v.SharedBy = nil
		o.Xmin, o.Xmax = min(o.Xmin, o.coord(i, 0)), max(o.Xmax, o.coord(i, 0))
		o.Ymin, o.Ymax = min(o.Ymin, o.coord(i, 1)), max(o.Ymax, o.coord(i, 1))
		o.Zmin, o.Zmax = min(o.Zmin, o.coord(i, 2)), max(o.Zmax, o.coord(i, 2))
	}

	// cells
	o.CellTag2cells = make(map[int][]*Cell)
	o.Reg2cells = make(map[int][]*Cell)
	o.Regions = nil
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cells ids must be sequential; cell %d has id = %d", i, c.Id)
		}
		if c.Tag >= 0 {
			return chk.Err("cell tags must be negative; cell %d has tag = %d", i, c.Tag)
		}
		if c.Region < 0 {
			return chk.Err("region ids must be non-negative; cell %d has region = %d", i, c.Region)
		}
		if len(c.Verts) == 0 {
			return chk.Err("cell %d has no vertices", i)
		}
		for _, vid := range c.Verts {
			if vid < 0 || vid >= len(o.Verts) {
				return chk.Err("cell %d refers to nonexistent vertex %d", i, vid)
			}
			o.Verts[vid].SharedBy = append(o.Verts[vid].SharedBy, c.Id)
		}
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
		if _, ok := o.Reg2cells[c.Region]; !ok {
			o.Regions = append(o.Regions, c.Region)
		}
		o.Reg2cells[c.Region] = append(o.Reg2cells[c.Region], c)
	}
	sort.Ints(o.Regions)
	return
}

// ExtractCellCoords returns the coordinates matrix x[ndim][nverts] of a cell
func (o *Mesh) ExtractCellCoords(cid int) (x [][]float64) {
	c := o.Cells[cid]
	x = make([][]float64, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		x[i] = make([]float64, len(c.Verts))
		for j, v := range c.Verts {
			x[i][j] = o.Verts[v].C[i]
		}
	}
	return
}

// coord returns coordinate i of vertex vid or zero if i >= ndim
func (o *Mesh) coord(vid, i int) float64 {
	if i < len(o.Verts[vid].C) {
		return o.Verts[vid].C[i]
	}
	return 0
}
