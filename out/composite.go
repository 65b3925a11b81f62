// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/femvtk/ele"
	"github.com/cpmech/femvtk/inp"
	"github.com/cpmech/gosl/chk"
)

// block holds the output of a composite element placed in a piece
type block struct {
	c     *ele.Caps          // element
	dat   *ele.CompositeData // points, sub-cells and values
	first int                // index of the first point of this block in the piece
}

// newBlock gets the output of a composite element and checks it
func newBlock(c *ele.Caps, req *inp.ExportData, first int, sol *ele.Solution) (o *block, err error) {
	dat, err := c.Comp.CompositeData(req.PrimVars, req.Vars, req.CellVars, sol)
	if err != nil {
		return nil, chk.Err("cannot get composite data of element %d:\n%v", c.Cell.Id, err)
	}
	if dat == nil {
		return nil, chk.Err("composite element %d returned no data", c.Cell.Id)
	}
	np, nc := c.Comp.NumSubPoints(), c.Comp.NumSubCells()
	if len(dat.X) != np {
		return nil, chk.Err("composite element %d returned %d points; %d were announced", c.Cell.Id, len(dat.X), np)
	}
	if len(dat.Cells) != nc || len(dat.Types) != nc {
		return nil, chk.Err("composite element %d returned %d cells and %d types; %d were announced", c.Cell.Id, len(dat.Cells), len(dat.Types), nc)
	}
	for _, verts := range dat.Cells {
		for _, v := range verts {
			if v < 0 || v >= np {
				return nil, chk.Err("composite element %d: sub-cell refers to point %d; there are %d points", c.Cell.Id, v, np)
			}
		}
	}
	return &block{c, dat, first}, nil
}

// addCells appends the sub-cells with shifted indices
func (o *block) addCells(p *Piece) {
	for i, verts := range o.dat.Cells {
		shifted := make([]int, len(verts))
		for j, v := range verts {
			shifted[j] = o.first + v
		}
		p.AddCell(o.c.Cell.Id, o.dat.Types[i], shifted)
	}
}

// pointVals appends the values at points; zeros if key is missing
func (o *block) pointVals(a *DataArray, key string, vt ele.ValueType) {
	vals := o.dat.PointVals[key]
	for i := range o.dat.X {
		if i < len(vals) {
			a.Append(MakeFullForm(vals[i], vt, o.dat.RedIndx[key]))
		} else {
			a.Append(nil)
		}
	}
}

// cellVals appends the values at sub-cells; zeros if key is missing
func (o *block) cellVals(a *DataArray, key string, vt ele.ValueType) {
	vals := o.dat.CellVals[key]
	for i := range o.dat.Cells {
		if i < len(vals) {
			a.Append(MakeFullForm(vals[i], vt, o.dat.RedIndx[key]))
		} else {
			a.Append(nil)
		}
	}
}
