// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/femvtk/inp"
	"github.com/cpmech/femvtk/shp"
)

// Caps records the optional behaviours of an element. It is resolved once, when the element is
// allocated; nil fields mean that the behaviour is not available
type Caps struct {

	// element
	Elem Element   // the element
	Cell *inp.Cell // the cell
	Ndim int       // space dimension

	// geometry
	VtkCode int // VTK cell type; -1 if the geometry cannot be exported as a single cell

	// capabilities
	Ips   CanOutputIps      // outputs integration points' values
	Avg   NodalAverager     // nodal estimates for averaging
	Patch PatchRecoverer    // takes part in patch recovery
	Cval  CellValuer        // chooses representative cell values
	Fit   PrimaryFitter     // best fit of primary variables
	Comp  CompositeExporter // exported as several cells
}

// GetCaps resolves the capabilities of an element
func GetCaps(e Element, cell *inp.Cell, ndim int) (o *Caps) {
	o = &Caps{Elem: e, Cell: cell, Ndim: ndim}
	o.VtkCode, _ = shp.GetVtkInfo(cell.Type)
	if nv := shp.VtkNverts(o.VtkCode); nv > 0 && nv != len(cell.Verts) {
		o.VtkCode = -1
	}
	o.Ips, _ = e.(CanOutputIps)
	o.Avg, _ = e.(NodalAverager)
	o.Patch, _ = e.(PatchRecoverer)
	o.Cval, _ = e.(CellValuer)
	o.Fit, _ = e.(PrimaryFitter)
	o.Comp, _ = e.(CompositeExporter)
	return
}

// Exportable tells whether the element can be written as cells
func (o *Caps) Exportable() bool {
	return o.Comp != nil || o.VtkCode >= 0
}

// Ncells returns the number of cells written for this element
func (o *Caps) Ncells() int {
	if o.Comp != nil {
		return o.Comp.NumSubCells()
	}
	if o.VtkCode < 0 {
		return 0
	}
	return 1
}

// RedIndx returns the reduced index map of a variable at this element; nil if not supported
func (o *Caps) RedIndx(key string) []int {
	if o.Ips == nil {
		return nil
	}
	return o.Ips.OutIpIndx(key)
}
