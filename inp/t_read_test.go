// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01")

	mdl, err := ReadModel("data/bar.yaml")
	require.NoError(tst, err)
	io.Pforan("%v\n", mdl.Desc)

	chk.String(tst, mdl.Key, "bar")
	chk.Int(tst, "ndim", mdl.Ndim, 3)
	msh := mdl.Msh
	chk.Float64(tst, "xmax", 1e-17, msh.Xmax, 3)
	chk.Float64(tst, "ymax", 1e-17, msh.Ymax, 4)
	chk.Ints(tst, "regions", msh.Regions, []int{1})
	chk.Ints(tst, "v1.SharedBy", msh.Verts[1].SharedBy, []int{0})
	chk.Deep2(tst, "x", 1e-17, msh.ExtractCellCoords(0), [][]float64{{0, 3}, {0, 4}, {0, 0}})

	edat := mdl.Etag2data(-1)
	require.NotNil(tst, edat)
	assert.Equal(tst, "truss3d", edat.Type)
	assert.Nil(tst, mdl.Etag2data(-5))

	sld, err := mdl.GetSolidModel("steel", 1)
	require.NoError(tst, err)
	assert.Equal(tst, 0.0, sld.GetRho())
	_, err = mdl.GetSolidModel("wood", 1)
	assert.Error(tst, err)

	require.Len(tst, mdl.Steps, 2)
	chk.Array(tst, "ux @ t=2", 1e-17, mdl.Steps[1].Dofs["ux"], []float64{0, 0.006})
}

func Test_model02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model02. mesh file")

	mdl, err := ReadModel("data/twobars.yaml")
	require.NoError(tst, err)
	chk.Int(tst, "ncells", len(mdl.Msh.Cells), 2)
	chk.Int(tst, "nreg1", len(mdl.Msh.Reg2cells[1]), 2)
	chk.String(tst, filepath.Base(mdl.Msh.FnamePath), "twobars.msh")
}

func Test_model03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model03. errors")

	_, err := ParseModel([]byte("ndim: 2\n"))
	assert.Error(tst, err, "mesh is required")

	_, err = ParseModel([]byte(`
ndim: 2
mesh:
  verts: [{id: 0, c: [0, 0]}, {id: 1, c: [1, 0]}]
  cells: [{id: 0, tag: -1, type: lin2, verts: [0, 2]}]
`))
	assert.Error(tst, err, "nonexistent vertex")

	_, err = ParseModel([]byte(`
ndim: 2
mesh:
  verts: [{id: 0, c: [0, 0]}, {id: 1, c: [1, 0]}]
  cells: [{id: 0, tag: -1, type: lin2, verts: [0, 1]}]
steps: [{time: 2}, {time: 1}]
`))
	assert.Error(tst, err, "decreasing times")

	_, err = ParseModel([]byte(`
ndim: 3
mesh:
  verts: [{id: 0, c: [0, 0]}, {id: 1, c: [1, 0]}]
  cells: [{id: 0, tag: -1, type: lin2, verts: [0, 1]}]
`))
	assert.Error(tst, err, "wrong number of coordinates")

	_, err = ReadModel("data/nonexistent.yaml")
	assert.Error(tst, err)
}

func Test_export01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export01. defaults")

	dat, err := LoadExportData("", nil)
	require.NoError(tst, err)
	chk.Strings(tst, "primvars", dat.PrimVars, []string{"u"})
	assert.Equal(tst, "avg", dat.Stype)
	assert.Equal(tst, 1, dat.Nvr)
	assert.Equal(tst, 1.0, dat.TimeScale)
	assert.Equal(tst, 1, dat.Vregion(123))
	assert.False(tst, dat.Skip(1))
}

func Test_export02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export02. file, env and flags")

	tst.Setenv("FEMVTK_STYPE", "spr")

	flags := pflag.NewFlagSet("export", pflag.ContinueOnError)
	flags.String("dirout", "/tmp/femvtk", "output directory")
	flags.Float64("timescale", 1, "time scale")
	flags.String("config", "", "config file")
	require.NoError(tst, flags.Parse([]string{"--dirout", tst.TempDir(), "--config", "ignored.yaml"}))

	dat, err := LoadExportData("data/export.yaml", flags)
	require.NoError(tst, err)
	chk.Strings(tst, "vars", dat.Vars, []string{"sig", "n"})
	chk.Strings(tst, "cellvars", dat.CellVars, []string{"sig"})
	assert.Equal(tst, "spr", dat.Stype, "env overrides file")
	assert.Equal(tst, 3600.0, dat.TimeScale, "unchanged flags do not override file")
	assert.Equal(tst, 2, dat.Nvr)
	assert.Equal(tst, 2, dat.Vregion(1))
	assert.Equal(tst, 1, dat.Vregion(0))
	assert.True(tst, dat.Skip(7))
	assert.Equal(tst, "twobars", dat.FnKey)
	require.NoError(tst, dat.MkDirOut())

	cpy := dat.GetCopy()
	cpy.Vars[0] = "eps"
	cpy.Vrmap[0] = 2
	assert.Equal(tst, "sig", dat.Vars[0])
	assert.Equal(tst, 1, dat.Vregion(0))
}

func Test_export03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export03. errors")

	dat := &ExportData{Nvr: 0, TimeScale: 1, DirOut: "/tmp"}
	assert.Error(tst, dat.PostProcess())

	dat = &ExportData{Nvr: 1, TimeScale: 0, DirOut: "/tmp"}
	assert.Error(tst, dat.PostProcess())

	dat = &ExportData{Nvr: 2, TimeScale: 1, DirOut: "/tmp", VrmapIn: map[string]int{"0": 3}}
	assert.Error(tst, dat.PostProcess())

	dat = &ExportData{Nvr: 2, TimeScale: 1, DirOut: "/tmp", VrmapIn: map[string]int{"a": 1}}
	assert.Error(tst, dat.PostProcess())

	_, err := LoadExportData("data/nonexistent.yaml", nil)
	assert.Error(tst, err)
}
