// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements elements for solid mechanics
package solid

import (
	"math"

	"github.com/cpmech/femvtk/ele"
	"github.com/cpmech/femvtk/inp"
	"github.com/cpmech/femvtk/mdl/solid"
	"github.com/cpmech/femvtk/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
)

// Truss3d represents a structural truss element (for axial loads only) with two end nodes and
// constant strain. Cells of type "lin3" are accepted: the third (mid) vertex only defines the
// geometry and carries no degrees of freedom
//
//   0-----------(2)-----------1 --> x' (local)
//
type Truss3d struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // matrix of nodal coordinates [ndim][nverts]
	Nu   int         // total number of unknowns == 2 * ndim
	Ndim int         // space dimension

	// parameters and properties
	Mdl  *solid.IsoLinElast // material model with: E, nu, A and rho
	Sig0 float64            // initial axial stress
	L    float64            // length of truss

	// geometry
	Lcs [][]float64  // [3][3] local coordinate system: rows are the unit vectors {x', y', z'}
	Sha *shp.Shape   // shape structure of cell
	Ips []shp.Ipoint // integration points
	Ext [][]float64  // [nverts][nip] extrapolation matrix

	// vectors and matrices
	B     []float64   // [nu] strain-displacement vector: ε = B ⋅ u
	K     [][]float64 // [nu][nu] element K matrix
	Mlump []float64   // [nu] lumped mass matrix (diagonal)

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// state @ the integration point
	State *solid.State
}

// register element
func init() {

	// information allocator
	ele.SetInfoFunc("truss3d", func(mdl *inp.Model, cell *inp.Cell, edat *inp.ElemData) *ele.Info {

		// new info
		var info ele.Info

		// solution variables
		ykeys := []string{"ux", "uy"}
		if mdl.Ndim == 3 {
			ykeys = []string{"ux", "uy", "uz"}
		}
		info.Dofs = make([][]string, len(cell.Verts))
		for m := 0; m < 2; m++ {
			info.Dofs[m] = ykeys
		}

		// maps
		info.Y2F = map[string]string{"ux": "fx", "uy": "fy", "uz": "fz"}
		return &info
	})

	// element allocator
	ele.SetAllocator("truss3d", func(mdl *inp.Model, cell *inp.Cell, edat *inp.ElemData, x [][]float64) ele.Element {

		// check
		if cell.Type != "lin2" && cell.Type != "lin3" {
			chk.Panic("truss3d requires cells of type lin2 or lin3; cell %d has type %q", cell.Id, cell.Type)
		}
		if mdl.Ndim < 2 {
			chk.Panic("truss3d requires ndim = 2 or 3")
		}

		// basic data
		var o Truss3d
		o.Cell = cell
		o.X = x
		o.Ndim = mdl.Ndim
		o.Nu = 2 * o.Ndim

		// parameters
		m, err := mdl.GetSolidModel(edat.Mat, 1)
		if err != nil {
			chk.Panic("cannot get material for truss3d element {tag=%d id=%d}:\n%v", cell.Tag, cell.Id, err)
		}
		var ok bool
		if o.Mdl, ok = m.(*solid.IsoLinElast); !ok {
			chk.Panic("truss3d requires a lin-elast material; %q is not", edat.Mat)
		}
		if o.Mdl.Sec.A <= 0 {
			chk.Panic("truss3d requires a positive cross-sectional area. A = %g is invalid", o.Mdl.Sec.A)
		}
		if mat := mdl.GetMat(edat.Mat); len(mat.Sig0) > 0 {
			o.Sig0 = mat.Sig0[0]
		}

		// shape and integration points
		o.Sha = shp.Get(cell.Type)
		o.Ips, err = shp.GetIps(cell.Type, 1)
		if err != nil {
			chk.Panic("%v", err)
		}
		o.Ext, err = o.Sha.Extrapolator(o.Ips)
		if err != nil {
			chk.Panic("cannot compute extrapolator of truss3d:\n%v", err)
		}

		// geometry and matrices
		if err = o.Recompute(); err != nil {
			chk.Panic("%v", err)
		}

		// state
		o.State, _ = o.Mdl.InitIntVars([]float64{o.Sig0})

		// return new element
		return &o
	})
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o *Truss3d) Id() int { return o.Cell.Id }

// SetEqs set equations
func (o *Truss3d) SetEqs(eqs [][]int) (err error) {
	o.Umap = make([]int, o.Nu)
	for m := 0; m < 2; m++ {
		if len(eqs[m]) != o.Ndim {
			return chk.Err("truss3d: node %d must have %d equations; got %d", m, o.Ndim, len(eqs[m]))
		}
		for i := 0; i < o.Ndim; i++ {
			r := i + m*o.Ndim
			o.Umap[r] = eqs[m][i]
		}
	}
	return
}

// Update computes the axial strain and stress for given nodal displacements
func (o *Truss3d) Update(sol *ele.Solution) (err error) {
	ε := o.CalcEps(sol)
	o.State.Sig[0] = o.Sig0
	return o.Mdl.Update(o.State, []float64{ε}, []float64{ε}, o.Id(), 0, sol.T)
}

// writer ///////////////////////////////////////////////////////////////////////////////////////////

// OutIpCoords returns the coordinates of integration points
func (o *Truss3d) OutIpCoords() (C [][]float64) {
	C = make([][]float64, len(o.Ips))
	for idx, ip := range o.Ips {
		C[idx] = o.Sha.IpRealCoords(o.X, ip)
	}
	return
}

// OutIpKeys returns the integration points' keys
func (o *Truss3d) OutIpKeys() []string {
	return []string{"sig", "eps", "n"}
}

// OutIpIndx returns the reduced index map of values: axial components only
func (o *Truss3d) OutIpIndx(key string) []int {
	switch key {
	case "sig", "eps", "n":
		return []int{0}
	}
	return nil
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *Truss3d) OutIpVals(M *ele.IpsMap, sol *ele.Solution) (err error) {
	nip := len(o.Ips)
	for idx := 0; idx < nip; idx++ {
		M.Set("sig", idx, nip, o.State.Sig)
		M.Set("eps", idx, nip, o.State.Eps)
		M.Set("n", idx, nip, []float64{o.State.Sig[0] * o.Mdl.Sec.A})
	}
	return
}

// NodalValues returns values extrapolated to vertices
func (o *Truss3d) NodalValues(key string, sol *ele.Solution) (vals [][]float64, err error) {
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
func (o *Truss3d) PatchOrder() int { return 1 }

// PrimaryAt returns the displacements at a vertex of this element. Mid vertices are interpolated
func (o *Truss3d) PrimaryAt(vid int, key string, sol *ele.Solution) (val []float64, ok bool) {
	if key != "u" {
		return
	}
	m := localVert(o.Cell.Verts, vid)
	if m < 0 {
		return
	}
	ξ := o.Sha.NatCoords[0][m]
	S0, S1 := (1.0-ξ)/2.0, (1.0+ξ)/2.0
	val = make([]float64, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		val[i] = S0*sol.Y[o.Umap[i]] + S1*sol.Y[o.Umap[o.Ndim+i]]
	}
	return val, true
}

// specific methods /////////////////////////////////////////////////////////////////////////////////

// CalcEps computes the axial strain for given nodal displacements
func (o *Truss3d) CalcEps(sol *ele.Solution) (ε float64) {
	for i, I := range o.Umap {
		ε += o.B[i] * sol.Y[I]
	}
	return
}

// AxialForce returns the current axial force
func (o *Truss3d) AxialForce() float64 {
	return o.State.Sig[0] * o.Mdl.Sec.A
}

// GlobalCoords returns the coordinates of the point with local coordinate ξ ∈ [-1, 1]
func (o *Truss3d) GlobalCoords(ξ float64) []float64 {
	return o.Sha.RealCoords(o.X, []float64{ξ})
}

// CharLength returns the characteristic length of this element
func (o *Truss3d) CharLength() float64 { return o.L }

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// Recompute re-compute geometry and matrices after dimensions or parameters are externally changed
func (o *Truss3d) Recompute() (err error) {

	// axis
	e1 := make([]float64, 3)
	for i := 0; i < o.Ndim; i++ {
		e1[i] = o.X[i][1] - o.X[i][0]
	}
	o.L = floats.Norm(e1, 2)
	if o.L < shp.MINDET {
		return chk.Err("truss3d: length of element %d is too small: L = %g", o.Cell.Id, o.L)
	}
	floats.Scale(1.0/o.L, e1)

	// local coordinate system: y' is normal to x' and to the global axis least aligned with x'
	aux := []float64{0, 0, 1}
	if math.Abs(e1[2]) > 0.9 {
		aux = []float64{0, 1, 0}
	}
	e2 := cross(aux, e1)
	floats.Scale(1.0/floats.Norm(e2, 2), e2)
	e3 := cross(e1, e2)
	o.Lcs = [][]float64{e1, e2, e3}

	// B vector
	o.B = make([]float64, o.Nu)
	for i := 0; i < o.Ndim; i++ {
		o.B[i] = -e1[i] / o.L
		o.B[o.Ndim+i] = e1[i] / o.L
	}

	// K matrix: K = E A L Bᵀ B
	α := o.Mdl.E * o.Mdl.Sec.A * o.L
	o.K = utl.Alloc(o.Nu, o.Nu)
	for i := 0; i < o.Nu; i++ {
		for j := 0; j < o.Nu; j++ {
			o.K[i][j] = α * o.B[i] * o.B[j]
		}
	}

	// lumped M matrix
	β := o.Mdl.GetRho() * o.Mdl.Sec.A * o.L / 2.0
	o.Mlump = make([]float64, o.Nu)
	for i := range o.Mlump {
		o.Mlump[i] = β
	}
	return
}

// localVert returns the local index of vertex vid in verts; -1 if not found
func localVert(verts []int, vid int) int {
	for m, v := range verts {
		if v == vid {
			return m
		}
	}
	return -1
}

// cross returns the cross product a × b of 3D vectors
func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
