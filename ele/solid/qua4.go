// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/femvtk/ele"
	"github.com/cpmech/femvtk/inp"
	"github.com/cpmech/femvtk/mdl/solid"
	"github.com/cpmech/femvtk/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Qua4 implements a 4-node quadrilateral element for plane-strain or plane-stress analyses
//
//   3-----------2
//   |  ip3  ip2 |
//   |           |
//   |  ip0  ip1 |
//   0-----------1
//
type Qua4 struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // matrix of nodal coordinates [ndim][nverts]
	Nu   int         // total number of unknowns == 2 * nverts

	// parameters and properties
	Mdl     *solid.IsoLinElast // material model
	Pstress bool               // plane-stress
	Nsig    int                // number of stress components
	RedIdx  []int              // reduced index map of stresses and strains
	Sig0    []float64          // initial stresses

	// integration points
	Sha *shp.Shape   // shape structure
	Ips []shp.Ipoint // integration points
	IpX [][]float64  // [nip][ndim] real coordinates of integration points
	Ext [][]float64  // [nverts][nip] extrapolation matrix

	// vectors and matrices
	Bs [][][]float64 // [nip][nsig][nu] strain-displacement matrices
	K  [][]float64   // [nu][nu] element K matrix

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// state @ each integration point
	States []*solid.State
}

// Qua4IpCells is a Qua4 exported as 4 sub-quadrilaterals, one around each integration point
//
//   3-----6-----2
//   |  c3 |  c2 |
//   7-----8-----5
//   |  c0 |  c1 |
//   0-----4-----1
//
type Qua4IpCells struct {
	Qua4
}

// register element
func init() {

	// information allocator
	info := func(mdl *inp.Model, cell *inp.Cell, edat *inp.ElemData) *ele.Info {
		var info ele.Info
		info.Dofs = make([][]string, len(cell.Verts))
		for m := range cell.Verts {
			info.Dofs[m] = []string{"ux", "uy"}
		}
		info.Y2F = map[string]string{"ux": "fx", "uy": "fy"}
		return &info
	}
	ele.SetInfoFunc("qua4-solid", info)
	ele.SetInfoFunc("qua4-ipcells", info)

	// element allocators
	ele.SetAllocator("qua4-solid", func(mdl *inp.Model, cell *inp.Cell, edat *inp.ElemData, x [][]float64) ele.Element {
		return newQua4(mdl, cell, edat, x)
	})
	ele.SetAllocator("qua4-ipcells", func(mdl *inp.Model, cell *inp.Cell, edat *inp.ElemData, x [][]float64) ele.Element {
		if edat.Nip != 0 && edat.Nip != 4 {
			chk.Panic("qua4-ipcells requires 4 integration points; nip = %d is invalid", edat.Nip)
		}
		return &Qua4IpCells{*newQua4(mdl, cell, edat, x)}
	})
}

// newQua4 allocates a new Qua4 element
func newQua4(mdl *inp.Model, cell *inp.Cell, edat *inp.ElemData, x [][]float64) *Qua4 {

	// check
	if cell.Type != "qua4" {
		chk.Panic("%s requires cells of type qua4; cell %d has type %q", edat.Type, cell.Id, cell.Type)
	}
	if mdl.Ndim != 2 {
		chk.Panic("%s requires ndim = 2", edat.Type)
	}

	// basic data
	var o Qua4
	o.Cell = cell
	o.X = x
	o.Nu = 8
	o.Pstress = mdl.Pstress

	// material
	m, err := mdl.GetSolidModel(edat.Mat, 2)
	if err != nil {
		chk.Panic("cannot get material for %s element {tag=%d id=%d}:\n%v", edat.Type, cell.Tag, cell.Id, err)
	}
	var ok bool
	if o.Mdl, ok = m.(*solid.IsoLinElast); !ok {
		chk.Panic("%s requires a lin-elast material; %q is not", edat.Type, edat.Mat)
	}
	o.Nsig = o.Mdl.Nsig
	o.RedIdx = solid.RedIndx(2, o.Pstress)
	o.Sig0 = make([]float64, o.Nsig)
	if mat := mdl.GetMat(edat.Mat); len(mat.Sig0) > 0 {
		if len(mat.Sig0) != o.Nsig {
			chk.Panic("initial stresses of %q must have %d components", edat.Mat, o.Nsig)
		}
		copy(o.Sig0, mat.Sig0)
	}

	// shape and integration points
	o.Sha = shp.Get(cell.Type)
	o.Ips, err = shp.GetIps(cell.Type, edat.Nip)
	if err != nil {
		chk.Panic("%v", err)
	}
	o.Ext, err = o.Sha.Extrapolator(o.Ips)
	if err != nil {
		chk.Panic("cannot compute extrapolator of %s:\n%v", edat.Type, err)
	}

	// B matrices, K matrix and states
	if err = o.Recompute(); err != nil {
		chk.Panic("%v", err)
	}
	o.States = make([]*solid.State, len(o.Ips))
	for idx := range o.Ips {
		o.States[idx], _ = o.Mdl.InitIntVars(o.Sig0)
	}
	return &o
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o *Qua4) Id() int { return o.Cell.Id }

// SetEqs set equations
func (o *Qua4) SetEqs(eqs [][]int) (err error) {
	o.Umap = make([]int, o.Nu)
	for m := 0; m < 4; m++ {
		if len(eqs[m]) != 2 {
			return chk.Err("qua4: node %d must have 2 equations; got %d", m, len(eqs[m]))
		}
		o.Umap[2*m] = eqs[m][0]
		o.Umap[2*m+1] = eqs[m][1]
	}
	return
}

// Update computes strains and stresses @ integration points for given nodal displacements
func (o *Qua4) Update(sol *ele.Solution) (err error) {
	ε := make([]float64, o.Nsig)
	for idx, B := range o.Bs {
		for i := 0; i < o.Nsig; i++ {
			ε[i] = 0
			for j, J := range o.Umap {
				ε[i] += B[i][j] * sol.Y[J]
			}
		}
		copy(o.States[idx].Sig, o.Sig0)
		err = o.Mdl.Update(o.States[idx], ε, ε, o.Id(), idx, sol.T)
		if err != nil {
			return
		}
	}
	return
}

// writer ///////////////////////////////////////////////////////////////////////////////////////////

// OutIpCoords returns the coordinates of integration points
func (o *Qua4) OutIpCoords() [][]float64 { return o.IpX }

// OutIpKeys returns the integration points' keys
func (o *Qua4) OutIpKeys() []string {
	return []string{"sig", "eps", "svm"}
}

// OutIpIndx returns the reduced index map of values
func (o *Qua4) OutIpIndx(key string) []int {
	switch key {
	case "sig", "eps":
		return o.RedIdx
	case "svm":
		return []int{0}
	}
	return nil
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *Qua4) OutIpVals(M *ele.IpsMap, sol *ele.Solution) (err error) {
	nip := len(o.Ips)
	for idx, s := range o.States {
		M.Set("sig", idx, nip, s.Sig)
		M.Set("eps", idx, nip, s.Eps)
		M.Set("svm", idx, nip, []float64{o.vonMises(s.Sig)})
	}
	return
}

// NodalValues returns values extrapolated to vertices
func (o *Qua4) NodalValues(key string, sol *ele.Solution) (vals [][]float64, err error) {
	if o.OutIpIndx(key) == nil {
		return
	}
	M := ele.NewIpsMap()
	if err = o.OutIpVals(M, sol); err != nil {
		return
	}
	return ele.Extrapolate(o.Ext, (*M)[key])
}

// PatchOrder returns the order of the polynomial fitted over patches
func (o *Qua4) PatchOrder() int { return 1 }

// CellValue returns the mean over integration points
func (o *Qua4) CellValue(key string, sol *ele.Solution) (val []float64, err error) {
	if o.OutIpIndx(key) == nil {
		return
	}
	M := ele.NewIpsMap()
	if err = o.OutIpVals(M, sol); err != nil {
		return
	}
	return ele.MeanOfIps((*M)[key]), nil
}

// composite export /////////////////////////////////////////////////////////////////////////////////

// subcells holds the connectivity of sub-quadrilaterals; sub-cell i contains integration point i
var subcells = [][]int{{0, 4, 8, 7}, {4, 1, 5, 8}, {8, 5, 2, 6}, {7, 8, 6, 3}}

// subnat holds the natural coordinates of sub-points
var subnat = [][]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {0, -1}, {1, 0}, {0, 1}, {-1, 0}, {0, 0}}

// NumSubCells returns the number of cells exported
func (o *Qua4IpCells) NumSubCells() int { return len(subcells) }

// NumSubPoints returns the number of points exported
func (o *Qua4IpCells) NumSubPoints() int { return len(subnat) }

// CompositeData returns points, sub-cells and values. Values at sub-points are the mean of the
// values of the sub-cells sharing the point
func (o *Qua4IpCells) CompositeData(prim, ivs, cells []string, sol *ele.Solution) (dat *ele.CompositeData, err error) {

	// points and cells
	npts := len(subnat)
	dat = &ele.CompositeData{
		X:         make([][]float64, npts),
		Cells:     subcells,
		Types:     []int{shp.VTK_QUAD, shp.VTK_QUAD, shp.VTK_QUAD, shp.VTK_QUAD},
		PointVals: make(map[string][][]float64),
		CellVals:  make(map[string][][]float64),
		RedIndx:   make(map[string][]int),
	}
	for p, r := range subnat {
		dat.X[p] = o.Sha.RealCoords(o.X, r)
	}

	// primary variables
	for _, key := range prim {
		if key != "u" {
			continue
		}
		vals := utl.Alloc(npts, 2)
		for p, r := range subnat {
			o.Sha.Func(o.Sha.S, o.Sha.DSdR, r, false)
			for m := 0; m < 4; m++ {
				vals[p][0] += o.Sha.S[m] * sol.Y[o.Umap[2*m]]
				vals[p][1] += o.Sha.S[m] * sol.Y[o.Umap[2*m+1]]
			}
		}
		dat.PointVals[key] = vals
	}

	// internal values
	M := ele.NewIpsMap()
	if err = o.OutIpVals(M, sol); err != nil {
		return
	}
	for _, key := range ivs {
		if o.OutIpIndx(key) == nil {
			continue
		}
		vip := (*M)[key]
		ncomp := len(vip[0])
		vals := utl.Alloc(npts, ncomp)
		cnt := make([]float64, npts)
		for c, verts := range subcells {
			for _, p := range verts {
				for k := 0; k < ncomp; k++ {
					vals[p][k] += vip[c][k]
				}
				cnt[p]++
			}
		}
		for p := range vals {
			for k := range vals[p] {
				vals[p][k] /= cnt[p]
			}
		}
		dat.PointVals[key] = vals
		dat.RedIndx[key] = o.OutIpIndx(key)
	}

	// cell values
	for _, key := range cells {
		if o.OutIpIndx(key) == nil {
			continue
		}
		dat.CellVals[key] = (*M)[key]
		dat.RedIndx[key] = o.OutIpIndx(key)
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// Recompute re-compute B and K matrices after dimensions or parameters are externally changed
func (o *Qua4) Recompute() (err error) {
	nip := len(o.Ips)
	o.IpX = make([][]float64, nip)
	o.Bs = make([][][]float64, nip)
	o.K = utl.Alloc(o.Nu, o.Nu)
	D := utl.Alloc(o.Nsig, o.Nsig)
	o.Mdl.CalcD(D, nil, true)
	ixy := o.Nsig - 1 // index of shear component
	for idx, ip := range o.Ips {
		err = o.Sha.CalcAtIp(o.X, ip, true)
		if err != nil {
			return chk.Err("qua4: element %d: %v", o.Cell.Id, err)
		}
		o.IpX[idx] = o.Sha.IpRealCoords(o.X, ip)
		G := o.Sha.G
		B := utl.Alloc(o.Nsig, o.Nu)
		for m := 0; m < 4; m++ {
			B[0][2*m] = G[m][0]
			B[1][2*m+1] = G[m][1]
			B[ixy][2*m] = G[m][1]
			B[ixy][2*m+1] = G[m][0]
		}
		o.Bs[idx] = B

		// K += Bᵀ D B w J
		coef := ip.W() * o.Sha.J
		for i := 0; i < o.Nu; i++ {
			for j := 0; j < o.Nu; j++ {
				for k := 0; k < o.Nsig; k++ {
					for l := 0; l < o.Nsig; l++ {
						o.K[i][j] += B[k][i] * D[k][l] * B[l][j] * coef
					}
				}
			}
		}
	}
	return
}

// vonMises computes the von Mises equivalent stress
func (o *Qua4) vonMises(σ []float64) float64 {
	var sx, sy, sz, sxy float64
	sx, sy, sxy = σ[0], σ[1], σ[o.Nsig-1]
	if o.Nsig == 4 {
		sz = σ[2]
	}
	return math.Sqrt(((sx-sy)*(sx-sy)+(sy-sz)*(sy-sz)+(sz-sx)*(sz-sx))/2.0 + 3.0*sxy*sxy)
}
