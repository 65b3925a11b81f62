// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import "github.com/cpmech/gosl/chk"

// DataArray holds the values of a field at points or cells
type DataArray struct {
	Name  string    // name of field; e.g. "sig"
	Ncomp int       // number of components: 1, 3 or 9
	Vals  []float64 // [n * Ncomp] values
}

// Append appends the values of one point or cell; missing components are set to zero
func (o *DataArray) Append(v []float64) {
	for i := 0; i < o.Ncomp; i++ {
		if i < len(v) {
			o.Vals = append(o.Vals, v[i])
		} else {
			o.Vals = append(o.Vals, 0)
		}
	}
}

// Len returns the number of points or cells with values
func (o *DataArray) Len() int { return len(o.Vals) / o.Ncomp }

// Get returns the values of point or cell i
func (o *DataArray) Get(i int) []float64 { return o.Vals[i*o.Ncomp : (i+1)*o.Ncomp] }

// Piece holds the output of one (virtual) region at one time step
type Piece struct {
	Region  int          // region id
	Vregion int          // virtual region number; 0 => whole region
	X       [][]float64  // [npoints] coordinates of points
	Conn    []int        // connectivity of all cells
	Offsets []int        // [ncells] end of each cell in Conn
	Types   []int        // [ncells] VTK cell types
	Cids    []int        // [ncells] cell id of each cell
	PData   []*DataArray // point data
	CData   []*DataArray // cell data
}

// Npoints returns the number of points
func (o *Piece) Npoints() int { return len(o.X) }

// Ncells returns the number of cells
func (o *Piece) Ncells() int { return len(o.Types) }

// AddCell appends a cell with local point indices
func (o *Piece) AddCell(cid, vtkCode int, verts []int) {
	o.Conn = append(o.Conn, verts...)
	o.Offsets = append(o.Offsets, len(o.Conn))
	o.Types = append(o.Types, vtkCode)
	o.Cids = append(o.Cids, cid)
}

// PointArray returns the point data named key; nil if not found
func (o *Piece) PointArray(key string) *DataArray { return find(o.PData, key) }

// CellArray returns the cell data named key; nil if not found
func (o *Piece) CellArray(key string) *DataArray { return find(o.CData, key) }

// Check checks the sizes of arrays
func (o *Piece) Check() (err error) {
	np, nc := o.Npoints(), o.Ncells()
	if len(o.Offsets) != nc || len(o.Cids) != nc {
		return chk.Err("piece of region %d: inconsistent number of cells", o.Region)
	}
	for _, v := range o.Conn {
		if v < 0 || v >= np {
			return chk.Err("piece of region %d: connectivity refers to point %d; there are %d points", o.Region, v, np)
		}
	}
	for _, a := range o.PData {
		if a.Len() != np {
			return chk.Err("piece of region %d: point data %q has %d values; there are %d points", o.Region, a.Name, a.Len(), np)
		}
	}
	for _, a := range o.CData {
		if a.Len() != nc {
			return chk.Err("piece of region %d: cell data %q has %d values; there are %d cells", o.Region, a.Name, a.Len(), nc)
		}
	}
	return
}

func find(arrays []*DataArray, key string) *DataArray {
	for _, a := range arrays {
		if a.Name == key {
			return a
		}
	}
	return nil
}
