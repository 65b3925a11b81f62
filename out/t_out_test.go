// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/femvtk/ele"
	_ "github.com/cpmech/femvtk/ele/solid"
	"github.com/cpmech/femvtk/fem"
	"github.com/cpmech/femvtk/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func Test_tensor01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tensor01. symmetric expansion")

	// 3D
	full := MakeFullForm([]float64{1, 2, 3, 4, 5, 6}, ele.SymTensor, []int{0, 1, 2, 3, 4, 5})
	chk.Array(tst, "3D", 1e-17, full, []float64{
		1, 6, 5,
		6, 2, 4,
		5, 4, 3,
	})

	// plane strain: no out-of-plane shear
	full = MakeFullForm([]float64{1, 2, 3, 4}, ele.SymTensor, []int{0, 1, 2, 5})
	chk.Array(tst, "2D", 1e-17, full, []float64{
		1, 4, 0,
		4, 2, 0,
		0, 0, 3,
	})

	// 1D
	full = MakeFullForm([]float64{7}, ele.SymTensor, []int{0})
	chk.Array(tst, "1D", 1e-17, full, []float64{7, 0, 0, 0, 0, 0, 0, 0, 0})

	// symmetric and not summed
	red := []float64{-1, 0.5, 2, 3.5, -4, 8}
	full = MakeFullForm(red, ele.SymTensor, []int{0, 1, 2, 3, 4, 5})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			chk.Float64(tst, io.Sf("T[%d][%d]", i, j), 1e-17, full[i*3+j], full[j*3+i])
			chk.Float64(tst, io.Sf("T[%d][%d] == red", i, j), 1e-17, full[i*3+j], red[redToFull[i*3+j]])
		}
	}

	// missing values
	chk.Array(tst, "empty", 1e-17, MakeFullForm(nil, ele.SymTensor, nil), make([]float64, 9))

	// others
	chk.Array(tst, "scalar", 1e-17, MakeFullForm([]float64{3}, ele.Scalar, []int{0}), []float64{3})
	chk.Array(tst, "vector", 1e-17, MakeFullForm([]float64{1, 2}, ele.Vector, nil), []float64{1, 2})
	chk.Array(tst, "tensor", 1e-17, MakeFullForm([]float64{1, 2}, ele.Tensor, []int{0, 3}), []float64{1, 0, 0, 2, 0, 0, 0, 0, 0})
	chk.Ints(tst, "ncomps", []int{NumFullComps(ele.Scalar), NumFullComps(ele.Vector), NumFullComps(ele.SymTensor), NumFullComps(ele.Tensor)}, []int{1, 3, 9, 9})
}

func Test_collection01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("collection01")

	var c Collection
	require.NoError(tst, c.Add("a.0.vtu", 0))
	require.NoError(tst, c.Add("a.1.vtu", 3600))
	require.NoError(tst, c.Add("a.2.vtu", 3600))
	require.Error(tst, c.Add("a.3.vtu", 10))
	require.Len(tst, c.Entries(), 3)

	var buf bytes.Buffer
	c.Encode(&buf)
	assert.Contains(tst, buf.String(), `<VTKFile type="Collection"`)
	assert.Contains(tst, buf.String(), `<DataSet timestep="3600" group="" part="0" file="a.1.vtu"/>`)
	assert.Equal(tst, 3, strings.Count(buf.String(), "<DataSet"))
}

// newExporter allocates a domain and an exporter writing to a temporary directory
func newExporter(tst *testing.T, model string, req *inp.ExportData) (dom *fem.Domain, e *Exporter) {
	mdl, err := inp.ReadModel(model)
	require.NoError(tst, err)
	dom, err = fem.NewDomain(mdl, nil, false)
	require.NoError(tst, err)
	if req.FnKey == "" {
		req.FnKey = mdl.Key
	}
	req.DirOut = tst.TempDir()
	e = New(dom, nil)
	require.NoError(tst, e.Initialize(req))
	return
}

func newRequest(tst *testing.T) *inp.ExportData {
	req, err := inp.LoadExportData("", nil)
	require.NoError(tst, err)
	return req
}

func Test_export01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export01. truss with uniform stress")

	req := newRequest(tst)
	req.Vars = []string{"sig", "n"}
	req.CellVars = []string{"sig"}
	req.TimeScale = 3600
	dom, e := newExporter(tst, "../inp/data/bar.yaml", req)
	assert.Equal(tst, Initialized, e.State())

	// pieces @ step 0
	ts, err := dom.SetStep(0)
	require.NoError(tst, err)
	pieces, err := e.BuildPieces(dom.Sol)
	require.NoError(tst, err)
	require.Len(tst, pieces, 1)
	p := pieces[0]
	chk.Int(tst, "npoints", p.Npoints(), 2)
	chk.Int(tst, "ncells", p.Ncells(), 1)
	chk.Ints(tst, "conn", p.Conn, []int{0, 1})
	chk.Ints(tst, "types", p.Types, []int{3})
	chk.Array(tst, "u @ 1", 1e-17, p.PointArray("u").Get(1), []float64{0.003, 0.004, 0})
	sig := p.PointArray("sig")
	chk.Int(tst, "ncomp", sig.Ncomp, 9)
	for k := 0; k < 2; k++ {
		chk.Array(tst, "sig", 1e-13, sig.Get(k), []float64{1, 0, 0, 0, 0, 0, 0, 0, 0})
	}
	chk.Array(tst, "n", 1e-15, p.PointArray("n").Vals, []float64{0.01, 0.01})
	chk.Array(tst, "cell sig", 1e-13, p.CellArray("sig").Get(0), []float64{1, 0, 0, 0, 0, 0, 0, 0, 0})

	// files
	require.NoError(tst, e.DoOutput(ts))
	assert.Equal(tst, Exporting, e.State())
	ts, err = dom.SetStep(1)
	require.NoError(tst, err)
	require.NoError(tst, e.DoOutput(ts))
	require.NoError(tst, e.Terminate())
	require.NoError(tst, e.Terminate())
	assert.Equal(tst, Terminated, e.State())

	vtu, err := os.ReadFile(filepath.Join(req.DirOut, "bar.1.vtu"))
	require.NoError(tst, err)
	assert.Contains(tst, string(vtu), `<Piece NumberOfPoints="2" NumberOfCells="1">`)
	assert.Contains(tst, string(vtu), `Name="sig" NumberOfComponents="9"`)
	assert.Contains(tst, string(vtu), `Name="u" NumberOfComponents="3"`)

	pvd, err := os.ReadFile(filepath.Join(req.DirOut, "bar.pvd"))
	require.NoError(tst, err)
	assert.Contains(tst, string(pvd), `<DataSet timestep="3600" group="" part="0" file="bar.0.vtu"/>`)
	assert.Contains(tst, string(pvd), `<DataSet timestep="7200" group="" part="0" file="bar.1.vtu"/>`)

	// no temporary files left
	files, err := filepath.Glob(filepath.Join(req.DirOut, "*.tmp"))
	require.NoError(tst, err)
	assert.Empty(tst, files)

	// no more output
	require.Error(tst, e.DoOutput(ts))
}

func Test_export02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export02. virtual regions")

	req, err := inp.LoadExportData("../inp/data/export.yaml", nil)
	require.NoError(tst, err)
	dom, e := newExporter(tst, "../inp/data/twobars.yaml", req)
	ts, err := dom.SetStep(0)
	require.NoError(tst, err)

	pieces, err := e.BuildPieces(dom.Sol)
	require.NoError(tst, err)
	require.Len(tst, pieces, 2)
	for i, p := range pieces {
		chk.Int(tst, "vregion", p.Vregion, i+1)
		chk.Int(tst, "npoints", p.Npoints(), 2)
		chk.Ints(tst, "conn", p.Conn, []int{0, 1})
		chk.Ints(tst, "eid", p.Cids, []int{i})
		chk.Array(tst, "sig @ 0", 1e-13, p.PointArray("sig").Get(0)[:1], []float64{2})
		chk.Array(tst, "sig @ 1", 1e-13, p.PointArray("sig").Get(1)[:1], []float64{2})
	}
	chk.Deep2(tst, "x (vr 2)", 1e-17, pieces[1].X, [][]float64{{1, 0, 0}, {2, 0, 0}})

	require.NoError(tst, e.DoOutput(ts))
	require.NoError(tst, e.Terminate())
	vtu, err := os.ReadFile(filepath.Join(req.DirOut, "twobars.0.vtu"))
	require.NoError(tst, err)
	assert.Equal(tst, 2, strings.Count(string(vtu), "<Piece "))
	pvd, err := os.ReadFile(filepath.Join(req.DirOut, "twobars.pvd"))
	require.NoError(tst, err)
	assert.Contains(tst, string(pvd), `timestep="7200"`)

	// third virtual region has no cells
	req3, err := inp.LoadExportData("../inp/data/export.yaml", nil)
	require.NoError(tst, err)
	req3.Nvr = 3
	req3.DirOut = tst.TempDir()
	core, logs := observer.New(zap.DebugLevel)
	e3 := New(dom, zap.New(core))
	require.NoError(tst, e3.Initialize(req3))
	pieces, err = e3.BuildPieces(dom.Sol)
	require.NoError(tst, err)
	require.Len(tst, pieces, 2)
	chk.Int(tst, "vregion", pieces[1].Vregion, 2)
	empty := logs.FilterMessage("empty virtual region").All()
	require.Len(tst, empty, 1)
	assert.EqualValues(tst, 3, empty[0].ContextMap()["vregion"])
}

func Test_export03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export03. geometry-only vertices and skipped regions")

	req := newRequest(tst)
	req.Vars = []string{"sig"}
	req.CellVars = []string{"svm", "n"}
	dom, e := newExporter(tst, "../fem/data/mixed.yaml", req)
	_, err := dom.SetStep(0)
	require.NoError(tst, err)

	pieces, err := e.BuildPieces(dom.Sol)
	require.NoError(tst, err)
	require.Len(tst, pieces, 2)

	// region 1: truss with mid vertex
	p := pieces[0]
	chk.Int(tst, "region", p.Region, 1)
	chk.Ints(tst, "types", p.Types, []int{21})
	chk.Array(tst, "u @ mid", 1e-15, p.PointArray("u").Get(2), []float64{0.002, 0, 0})
	chk.Array(tst, "sig @ mid", 1e-12, p.PointArray("sig").Get(2)[:1], []float64{4})
	chk.Array(tst, "svm", 1e-15, p.CellArray("svm").Vals, []float64{0})
	chk.Array(tst, "n", 1e-12, p.CellArray("n").Vals, []float64{0.4})

	// region 2: quadrilateral
	p = pieces[1]
	chk.Int(tst, "region", p.Region, 2)
	chk.Array(tst, "sig @ 0", 1e-12, p.PointArray("sig").Get(0), []float64{1.2, 0, 0, 0, 0.4, 0, 0, 0, 0.4})
	chk.Array(tst, "svm", 1e-12, p.CellArray("svm").Vals, []float64{0.8})
	chk.Array(tst, "n", 1e-15, p.CellArray("n").Vals, []float64{0})

	// skip region 1
	req.RegionsToSkip = []int{1, 42}
	e = New(dom, nil)
	require.NoError(tst, e.Initialize(req))
	pieces, err = e.BuildPieces(dom.Sol)
	require.NoError(tst, err)
	require.Len(tst, pieces, 1)
	chk.Int(tst, "region", pieces[0].Region, 2)
}

const compositeModel = `
ndim: 2
mesh:
  verts:
    - { id: 0, c: [0, 0] }
    - { id: 1, c: [1, 0] }
    - { id: 2, c: [1, 1] }
    - { id: 3, c: [0, 1] }
    - { id: 4, c: [2, 0] }
    - { id: 5, c: [2, 1] }
  cells:
    - { id: 0, tag: -1, region: 1, type: qua4, verts: [0, 1, 2, 3] }
    - { id: 1, tag: -2, region: 1, type: qua4, verts: [1, 4, 5, 2] }
elems:
  - { tag: -1, type: qua4-ipcells, mat: rock }
  - { tag: -2, type: qua4-solid, mat: rock }
materials:
  - name: rock
    model: lin-elast
    prms:
      - { n: E, v: 1000 }
      - { n: nu, v: 0.25 }
steps:
  - time: 1
    dofs:
      ux: [0, 0.001, 0.001, 0, 0.002, 0.002]
      uy: [0, 0, 0, 0, 0, 0]
`

func Test_export04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export04. composite elements")

	fn := filepath.Join(tst.TempDir(), "composite.yaml")
	require.NoError(tst, os.WriteFile(fn, []byte(compositeModel), 0644))
	req := newRequest(tst)
	req.Vars = []string{"sig"}
	req.CellVars = []string{"svm"}
	dom, e := newExporter(tst, fn, req)
	ts, err := dom.SetStep(0)
	require.NoError(tst, err)

	pieces, err := e.BuildPieces(dom.Sol)
	require.NoError(tst, err)
	require.Len(tst, pieces, 1)
	p := pieces[0]

	// the quadrilateral numbers 4 nodes; the composite element adds 9 points and 4 cells
	chk.Int(tst, "npoints", p.Npoints(), 13)
	chk.Int(tst, "ncells", p.Ncells(), 5)
	chk.Ints(tst, "types", p.Types, []int{9, 9, 9, 9, 9})
	chk.Ints(tst, "eid", p.Cids, []int{0, 0, 0, 0, 1})
	chk.Ints(tst, "conn (first sub-cell)", p.Conn[:4], []int{4, 8, 12, 11})
	chk.Ints(tst, "conn (quadrilateral)", p.Conn[16:], []int{0, 1, 2, 3})
	chk.Array(tst, "x @ centre", 1e-15, p.X[12], []float64{0.5, 0.5})
	chk.Array(tst, "u @ centre", 1e-15, p.PointArray("u").Get(12), []float64{0.0005, 0, 0})
	for k := 0; k < 13; k++ {
		chk.Array(tst, "sig", 1e-12, p.PointArray("sig").Get(k), []float64{1.2, 0, 0, 0, 0.4, 0, 0, 0, 0.4})
	}
	chk.Array(tst, "svm", 1e-12, p.CellArray("svm").Vals, []float64{0.8, 0.8, 0.8, 0.8, 0.8})
	require.NoError(tst, p.Check())
	require.NoError(tst, e.DoOutput(ts))
}

func Test_export05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export05. state machine and failures")

	mdl, err := inp.ReadModel("../inp/data/bar.yaml")
	require.NoError(tst, err)
	dom, err := fem.NewDomain(mdl, nil, false)
	require.NoError(tst, err)
	ts, err := dom.SetStep(1)
	require.NoError(tst, err)

	// not initialised
	e := New(dom, nil)
	assert.Equal(tst, Idle, e.State())
	require.Error(tst, e.DoOutput(ts))
	_, err = e.BuildPieces(dom.Sol)
	require.Error(tst, err)

	// invalid requests
	req := newRequest(tst)
	req.DirOut = tst.TempDir()
	require.Error(tst, e.Initialize(req), "fnkey is missing")
	req.FnKey = "bar"
	req.PrimVars = []string{"sig"}
	require.Error(tst, e.Initialize(req))
	req.PrimVars = []string{"u"}
	req.Vars = []string{"zz"}
	require.Error(tst, e.Initialize(req))
	req.Vars = []string{"u"}
	require.ErrorContains(tst, e.Initialize(req), "primary variable")
	req.Vars = []string{"sig"}
	cellvars := req.CellVars
	req.CellVars = []string{"u"}
	require.ErrorContains(tst, e.Initialize(req), "primary variable")
	req.CellVars = cellvars
	assert.Equal(tst, Idle, e.State())
	req.Vars = []string{"sig"}
	req.Stype = "best"
	require.Error(tst, e.Initialize(req))
	req.Stype = "spr"
	require.NoError(tst, e.Initialize(req))
	require.Error(tst, e.Initialize(req))

	// decreasing time
	require.NoError(tst, e.DoOutput(ts))
	early, err := dom.SetStep(0)
	require.NoError(tst, err)
	require.Error(tst, e.DoOutput(early))
	require.Len(tst, e.Collection().Entries(), 1)

	// directory removed: nothing added
	require.NoError(tst, os.RemoveAll(req.DirOut))
	ts.Number = 5
	require.Error(tst, e.DoOutput(ts))
	require.Len(tst, e.Collection().Entries(), 1)
	assert.Equal(tst, Exporting, e.State())
	require.Error(tst, e.Terminate())

	// terminate without output
	e = New(dom, nil)
	require.NoError(tst, e.Terminate())
	assert.Equal(tst, Terminated, e.State())
}

func Test_export06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export06. state transitions")

	mdl, err := inp.ReadModel("../inp/data/bar.yaml")
	require.NoError(tst, err)
	dom, err := fem.NewDomain(mdl, nil, false)
	require.NoError(tst, err)

	core, logs := observer.New(zap.DebugLevel)
	e := New(dom, zap.New(core))
	req := newRequest(tst)
	req.FnKey = "bar"
	req.DirOut = tst.TempDir()
	require.NoError(tst, e.Initialize(req))
	for i := 0; i < dom.Nsteps(); i++ {
		ts, err := dom.SetStep(i)
		require.NoError(tst, err)
		require.NoError(tst, e.DoOutput(ts))
		assert.Equal(tst, Exporting, e.State())
	}
	require.NoError(tst, e.Terminate())
	require.NoError(tst, e.Terminate())

	var states []string
	for _, entry := range logs.FilterMessage("exporter state").All() {
		states = append(states, entry.ContextMap()["to"].(string))
	}
	want := []string{"initialized", "exporting"}
	for i := 0; i < dom.Nsteps(); i++ {
		want = append(want, "finalizing", "exporting")
	}
	want = append(want, "finalizing", "terminated")
	chk.Strings(tst, "states", states, want)
}
