// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/cpmech/femvtk/ele"
	"github.com/cpmech/femvtk/inp"
	"github.com/cpmech/femvtk/shp"
	"github.com/cpmech/gosl/chk"
)

const trussModel = `
ndim: 3
mesh:
  verts:
    - { id: 0, c: [0, 0, 0] }
    - { id: 1, c: [3, 4, 0] }
    - { id: 2, c: [1.5, 2, 0] }
  cells:
    - { id: 0, tag: -1, region: 1, type: lin2, verts: [0, 1] }
    - { id: 1, tag: -1, region: 1, type: lin3, verts: [0, 1, 2] }
elems:
  - { tag: -1, type: truss3d, mat: steel }
materials:
  - name: steel
    model: lin-elast
    sig0: [0.5]
    prms:
      - { n: E, v: 1000 }
      - { n: nu, v: 0.25 }
      - { n: A, v: 0.01 }
      - { n: rho, v: 2 }
`

const quadModel = `
ndim: 2
mesh:
  verts:
    - { id: 0, c: [0, 0] }
    - { id: 1, c: [1, 0] }
    - { id: 2, c: [1, 1] }
    - { id: 3, c: [0, 1] }
  cells:
    - { id: 0, tag: -1, region: 1, type: qua4, verts: [0, 1, 2, 3] }
    - { id: 1, tag: -2, region: 1, type: qua4, verts: [0, 1, 2, 3] }
elems:
  - { tag: -1, type: qua4-solid, mat: rock }
  - { tag: -2, type: qua4-ipcells, mat: rock }
materials:
  - name: rock
    model: lin-elast
    prms:
      - { n: E, v: 1000 }
      - { n: nu, v: 0.25 }
`

func newElem(tst *testing.T, mdl *inp.Model, cid int) ele.Element {
	cell := mdl.Msh.Cells[cid]
	e, err := ele.New(cell, mdl)
	if err != nil {
		tst.Fatalf("cannot allocate element:\n%v", err)
	}
	return e
}

func Test_truss01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("truss01")

	mdl, err := inp.ParseModel([]byte(trussModel))
	if err != nil {
		tst.Fatalf("%v", err)
	}

	// info
	info, err := ele.GetInfo(mdl.Msh.Cells[1], mdl)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	chk.IntAssert(len(info.Dofs), 3)
	chk.Strings(tst, "dofs @ 0", info.Dofs[0], []string{"ux", "uy", "uz"})
	chk.IntAssert(len(info.Dofs[2]), 0)

	// element
	e := newElem(tst, mdl, 0).(*Truss3d)
	e.SetEqs([][]int{{0, 1, 2}, {3, 4, 5}})
	chk.Ints(tst, "Umap", e.Umap, []int{0, 1, 2, 3, 4, 5})
	chk.Float64(tst, "L", 1e-15, e.CharLength(), 5)
	chk.Array(tst, "x'", 1e-15, e.Lcs[0], []float64{0.6, 0.8, 0})
	chk.Array(tst, "z'", 1e-15, e.Lcs[2], []float64{0, 0, 1})
	chk.Array(tst, "mid", 1e-15, e.GlobalCoords(0), []float64{1.5, 2, 0})
	chk.Float64(tst, "K[0][0]", 1e-13, e.K[0][0], 1000*0.01/5*0.36)
	chk.Float64(tst, "M[0]", 1e-15, e.Mlump[0], 2*0.01*5/2)

	// uniform axial strain ε = 0.001
	sol := &ele.Solution{Y: []float64{0, 0, 0, 0.003, 0.004, 0}}
	if err = e.Update(sol); err != nil {
		tst.Fatalf("%v", err)
	}
	M := ele.NewIpsMap()
	e.OutIpVals(M, sol)
	chk.Array(tst, "eps", 1e-15, M.Get("eps", 0), []float64{0.001})
	chk.Array(tst, "sig", 1e-13, M.Get("sig", 0), []float64{1.5})
	chk.Array(tst, "n", 1e-15, M.Get("n", 0), []float64{0.015})
	chk.Float64(tst, "N", 1e-15, e.AxialForce(), 0.015)
	chk.Deep2(tst, "ip coords", 1e-15, e.OutIpCoords(), [][]float64{{1.5, 2, 0}})

	// nodal values
	vals, err := e.NodalValues("sig", sol)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	chk.Deep2(tst, "sig @ nodes", 1e-13, vals, [][]float64{{1.5}, {1.5}})
	vals, _ = e.NodalValues("svm", sol)
	if vals != nil {
		tst.Errorf("svm is not available in trusses\n")
	}
	chk.Int(tst, "order", e.PatchOrder(), 1)

	// capabilities
	caps := ele.GetCaps(e, e.Cell, 3)
	chk.Int(tst, "vtk", caps.VtkCode, shp.VTK_LINE)
	chk.Int(tst, "ncells", caps.Ncells(), 1)
	if caps.Ips == nil || caps.Avg == nil || caps.Patch == nil || caps.Fit == nil {
		tst.Errorf("truss3d must output ips, nodal values, patch data and primary fits\n")
	}
	if caps.Comp != nil || caps.Cval != nil {
		tst.Errorf("truss3d is neither composite nor a cell valuer\n")
	}
}

func Test_truss02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("truss02. geometry-only mid vertex")

	mdl, err := inp.ParseModel([]byte(trussModel))
	if err != nil {
		tst.Fatalf("%v", err)
	}
	e := newElem(tst, mdl, 1).(*Truss3d)
	e.SetEqs([][]int{{0, 1, 2}, {3, 4, 5}, {}})
	sol := &ele.Solution{Y: []float64{0, 0, 0, 0.003, 0.004, 0}}
	e.Update(sol)

	u, ok := e.PrimaryAt(2, "u", sol)
	if !ok {
		tst.Fatalf("PrimaryAt failed\n")
	}
	chk.Array(tst, "u @ mid", 1e-15, u, []float64{0.0015, 0.002, 0})
	u, _ = e.PrimaryAt(1, "u", sol)
	chk.Array(tst, "u @ 1", 1e-15, u, []float64{0.003, 0.004, 0})
	if _, ok = e.PrimaryAt(7, "u", sol); ok {
		tst.Errorf("vertex 7 is not in element\n")
	}
	if _, ok = e.PrimaryAt(2, "p", sol); ok {
		tst.Errorf("p is not a variable of trusses\n")
	}

	vals, _ := e.NodalValues("sig", sol)
	chk.Deep2(tst, "sig @ nodes", 1e-13, vals, [][]float64{{1.5}, {1.5}, {1.5}})

	caps := ele.GetCaps(e, e.Cell, 3)
	chk.Int(tst, "vtk", caps.VtkCode, shp.VTK_QUADRATIC_EDGE)
}

func Test_qua4_01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qua4 01. uniform strain")

	mdl, err := inp.ParseModel([]byte(quadModel))
	if err != nil {
		tst.Fatalf("%v", err)
	}
	e := newElem(tst, mdl, 0).(*Qua4)
	e.SetEqs([][]int{{0, 1}, {2, 3}, {4, 5}, {6, 7}})

	// ux = 0.001 x  =>  εxx = 0.001 (plane-strain)
	sol := &ele.Solution{Y: []float64{0, 0, 0.001, 0, 0.001, 0, 0, 0}}
	if err = e.Update(sol); err != nil {
		tst.Fatalf("%v", err)
	}
	σ := []float64{1.2, 0.4, 0.4, 0}
	M := ele.NewIpsMap()
	e.OutIpVals(M, sol)
	for idx := 0; idx < 4; idx++ {
		chk.Array(tst, "sig", 1e-13, M.Get("sig", idx), σ)
	}
	chk.Ints(tst, "redindx", e.OutIpIndx("sig"), []int{0, 1, 2, 5})

	vals, _ := e.NodalValues("sig", sol)
	for m := 0; m < 4; m++ {
		chk.Array(tst, "sig @ node", 1e-12, vals[m], σ)
	}
	cv, _ := e.CellValue("svm", sol)
	chk.Array(tst, "svm", 1e-13, cv, []float64{0.8})
	cv, _ = e.CellValue("n", sol)
	if cv != nil {
		tst.Errorf("n is not available in qua4\n")
	}

	// stiffness: rigid body translation gives no forces
	for i := 0; i < 8; i++ {
		f := 0.0
		for j := 0; j < 8; j += 2 {
			f += e.K[i][j]
		}
		chk.Float64(tst, "K ⋅ ux", 1e-12, f, 0)
	}
}

func Test_qua4_02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qua4 02. ip-cells")

	mdl, err := inp.ParseModel([]byte(quadModel))
	if err != nil {
		tst.Fatalf("%v", err)
	}
	e := newElem(tst, mdl, 1).(*Qua4IpCells)
	e.SetEqs([][]int{{0, 1}, {2, 3}, {4, 5}, {6, 7}})
	sol := &ele.Solution{Y: []float64{0, 0, 0.001, 0, 0.001, 0, 0, 0}}
	e.Update(sol)

	caps := ele.GetCaps(e, e.Cell, 2)
	if caps.Comp == nil {
		tst.Fatalf("qua4-ipcells must be composite\n")
	}
	chk.Int(tst, "ncells", caps.Ncells(), 4)
	chk.Int(tst, "npoints", caps.Comp.NumSubPoints(), 9)

	dat, err := caps.Comp.CompositeData([]string{"u", "p"}, []string{"sig", "n"}, []string{"svm"}, sol)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	chk.Array(tst, "x @ centre", 1e-15, dat.X[8], []float64{0.5, 0.5})
	chk.Array(tst, "u @ centre", 1e-15, dat.PointVals["u"][8], []float64{0.0005, 0})
	chk.Array(tst, "u @ 5", 1e-15, dat.PointVals["u"][5], []float64{0.001, 0})
	chk.Array(tst, "sig @ 4", 1e-12, dat.PointVals["sig"][4], []float64{1.2, 0.4, 0.4, 0})
	chk.Ints(tst, "types", dat.Types, []int{9, 9, 9, 9})
	chk.Int(tst, "svm cells", len(dat.CellVals["svm"]), 4)
	chk.Ints(tst, "redindx(sig)", dat.RedIndx["sig"], []int{0, 1, 2, 5})
	if _, ok := dat.PointVals["p"]; ok {
		tst.Errorf("p is not available\n")
	}
	if _, ok := dat.PointVals["n"]; ok {
		tst.Errorf("n is not available\n")
	}
}

func Test_factory01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("factory01")

	chk.Strings(tst, "types", ele.Types(), []string{"qua4-ipcells", "qua4-solid", "truss3d"})

	mdl, err := inp.ParseModel([]byte(quadModel))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	cell := *mdl.Msh.Cells[0]
	cell.Tag = -7
	if _, err = ele.New(&cell, mdl); err == nil {
		tst.Errorf("element with unknown tag should have failed\n")
	}
	if _, err = ele.GetInfo(&cell, mdl); err == nil {
		tst.Errorf("info of element with unknown tag should have failed\n")
	}
}
