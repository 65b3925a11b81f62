// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem holds the domain: nodes, degrees of freedom and elements with their results
package fem

import (
	"github.com/cpmech/femvtk/ele"
	"github.com/cpmech/femvtk/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"go.uber.org/zap"
)

// Domain holds all Nodes and Elements in addition to the Solution at nodes
type Domain struct {

	// init: auxiliary variables
	ShowMsg bool        // show messages
	Mdl     *inp.Model  // model data
	Msh     *inp.Mesh   // mesh data
	Log     *zap.Logger // logger

	// nodes and elements
	Nodes []*Node       // all nodes. Note: indices in Nodes do NOT correspond to Ids => use Vid2node
	Elems []ele.Element // all elements (sorted by cell id)
	Caps  []*ele.Caps   // capabilities of each element in Elems

	// auxiliary maps for dofs
	F2Y map[string]string // converts f-keys to y-keys; e.g.: "fx" => "ux"

	// auxiliary maps for nodes and elements
	Vid2node []*Node     // [nverts] VertexId => node. Vertices not used by any cell are 'nil'
	Cid2caps []*ele.Caps // [ncells] CellId => capabilities of element

	// dimensions
	Ny int // total number of dofs

	// solution
	Sol *ele.Solution // solution state
}

// NewDomain allocates nodes, equation numbers and elements
func NewDomain(mdl *inp.Model, logger *zap.Logger, verbose bool) (o *Domain, err error) {

	// check
	if mdl.Msh == nil {
		return nil, chk.Err("model has no mesh")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// new domain
	o = new(Domain)
	o.ShowMsg = verbose
	o.Mdl = mdl
	o.Msh = mdl.Msh
	o.Log = logger
	o.F2Y = make(map[string]string)
	o.Vid2node = make([]*Node, len(o.Msh.Verts))
	o.Cid2caps = make([]*ele.Caps, len(o.Msh.Cells))

	// for each cell
	var eq int // current equation number => total number of equations @ end of loop
	for _, cell := range o.Msh.Cells {

		// get element info
		info, err := ele.GetInfo(cell, mdl)
		if err != nil {
			return nil, chk.Err("get element information failed:\n%v", err)
		}
		if len(info.Dofs) != len(cell.Verts) {
			return nil, chk.Err("element info of cell %d has %d dof lists but the cell has %d vertices", cell.Id, len(info.Dofs), len(cell.Verts))
		}
		for ykey, fkey := range info.Y2F {
			o.F2Y[fkey] = ykey
		}

		// loop over nodes of this element
		for j, v := range cell.Verts {

			// new or existent node
			nod := o.Vid2node[v]
			if nod == nil {
				nod = NewNode(o.Msh.Verts[v])
				o.Vid2node[v] = nod
				o.Nodes = append(o.Nodes, nod)
			}

			// set DOFs and equation numbers
			for _, ukey := range info.Dofs[j] {
				eq = nod.AddDofAndEq(ukey, eq)
			}
		}

		// new element
		e, err := ele.New(cell, mdl)
		if err != nil {
			return nil, chk.Err("new element failed:\n%v", err)
		}

		// give equation numbers to new element
		eqs := make([][]int, len(cell.Verts))
		for j, v := range cell.Verts {
			for _, ukey := range info.Dofs[j] {
				eqs[j] = append(eqs[j], o.Vid2node[v].GetEq(ukey))
			}
		}
		err = e.SetEqs(eqs)
		if err != nil {
			return nil, chk.Err("cannot set element equations:\n%v", err)
		}

		// capabilities
		caps := ele.GetCaps(e, cell, mdl.Ndim)
		o.Elems = append(o.Elems, e)
		o.Caps = append(o.Caps, caps)
		o.Cid2caps[cell.Id] = caps
	}

	// solution
	o.Ny = eq
	o.Sol = &ele.Solution{Y: make([]float64, o.Ny), Pstress: mdl.Pstress}
	if o.ShowMsg {
		io.Pf("> domain: %d nodes, %d elements and %d equations\n", len(o.Nodes), len(o.Elems), o.Ny)
	}
	o.Log.Debug("domain allocated", zap.Int("nodes", len(o.Nodes)), zap.Int("elements", len(o.Elems)), zap.Int("ny", o.Ny))
	return
}

// SetStep loads the nodal results of step idx into the solution and updates all elements
func (o *Domain) SetStep(idx int) (ts *TimeStep, err error) {

	// step data
	if idx < 0 || idx >= len(o.Mdl.Steps) {
		return nil, chk.Err("step index %d is out of range; model has %d steps", idx, len(o.Mdl.Steps))
	}
	stp := o.Mdl.Steps[idx]
	nverts := len(o.Msh.Verts)

	// nodal values
	o.Sol.Reset()
	o.Sol.T = stp.Time
	for _, nod := range o.Nodes {
		for _, dof := range nod.Dofs {
			vals, ok := stp.Dofs[dof.Key]
			if !ok {
				return nil, chk.Err("step %d has no values of %q", idx, dof.Key)
			}
			if len(vals) != nverts {
				return nil, chk.Err("step %d: %q must have %d values (one per vertex); got %d", idx, dof.Key, nverts, len(vals))
			}
			o.Sol.Y[dof.Eq] = vals[nod.Vert.Id]
		}
	}

	// elements
	for _, e := range o.Elems {
		if err = e.Update(o.Sol); err != nil {
			return nil, chk.Err("cannot update element %d:\n%v", e.Id(), err)
		}
	}
	return &TimeStep{Number: idx, T: stp.Time}, nil
}

// Nsteps returns the number of steps with results
func (o *Domain) Nsteps() int { return len(o.Mdl.Steps) }

// Ndim returns the space dimension
func (o *Domain) Ndim() int { return o.Mdl.Ndim }

// Nverts returns the number of vertices in mesh
func (o *Domain) Nverts() int { return len(o.Msh.Verts) }

// Regions returns the region ids in ascending order
func (o *Domain) Regions() []int { return o.Msh.Regions }

// RegionCaps returns the elements of a region (sorted by cell id)
func (o *Domain) RegionCaps(reg int) (caps []*ele.Caps) {
	for _, cell := range o.Msh.Reg2cells[reg] {
		caps = append(caps, o.Cid2caps[cell.Id])
	}
	return
}

// VertCoords returns the coordinates of a vertex
func (o *Domain) VertCoords(vid int) []float64 { return o.Msh.Verts[vid].C }

// Dof returns the value of a degree of freedom at a vertex
//  Note: ok == false if the vertex has no such dof
func (o *Domain) Dof(vid int, ukey string) (val float64, ok bool) {
	nod := o.Vid2node[vid]
	if nod == nil {
		return
	}
	eq := nod.GetEq(ukey)
	if eq < 0 {
		return
	}
	return o.Sol.Y[eq], true
}

// Solution returns the current solution
func (o *Domain) Solution() *ele.Solution { return o.Sol }
