// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from model (YAML) and export configuration files
package inp

import (
	"os"
	"path/filepath"

	"github.com/cpmech/femvtk/mdl/solid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// ElemData holds element data
type ElemData struct {
	Tag  int    `yaml:"tag"`  // tag of element
	Mat  string `yaml:"mat"`  // material name
	Type string `yaml:"type"` // type of element. ex: truss3d, qua4-solid
	Nip  int    `yaml:"nip"`  // number of integration points; 0 => use default
}

// MatData holds material data
type MatData struct {
	Name  string     `yaml:"name"`  // name of material
	Model string     `yaml:"model"` // name of model in 'solid' database; e.g. "lin-elast"
	Prms  solid.Prms `yaml:"prms"`  // parameters
	Sig0  []float64  `yaml:"sig0"`  // [optional] initial stresses (reduced components)
}

// StepData holds the nodal results of one time step
type StepData struct {
	Time float64              `yaml:"time"` // simulation time
	Dofs map[string][]float64 `yaml:"dofs"` // dof key => value @ each vertex; e.g. "ux" => [0, 0.1, ...]
}

// Model holds all input data required to export results
type Model struct {

	// input data
	Desc    string      `yaml:"desc"`    // description
	Ndim    int         `yaml:"ndim"`    // space dimension
	Pstress bool        `yaml:"pstress"` // plane-stress
	Mshfile string      `yaml:"mshfile"` // [optional] mesh file path, relative to model file
	Msh     *Mesh       `yaml:"mesh"`    // [optional] inlined mesh
	Elems   []*ElemData `yaml:"elems"`   // elements data
	Mats    []*MatData  `yaml:"materials"`
	Steps   []*StepData `yaml:"steps"` // nodal results

	// derived
	FnamePath string `yaml:"-"` // complete filename path
	Key       string `yaml:"-"` // filename key; e.g. "bar" from "bar.yaml"
}

// ReadModel reads all model data from a YAML file
func ReadModel(path string) (o *Model, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read model file %q: %v", path, err)
	}
	o, err = ParseModel(b)
	if err != nil {
		return nil, chk.Err("model file %q: %v", path, err)
	}
	o.FnamePath = path
	o.Key = io.FnKey(filepath.Base(path))
	if o.Mshfile != "" {
		o.Msh, err = ReadMsh(filepath.Dir(path), o.Mshfile, o.Ndim)
		if err != nil {
			return nil, err
		}
	}
	return
}

// ParseModel decodes model data. A mesh referenced by 'mshfile' is not loaded here
func ParseModel(b []byte) (o *Model, err error) {
	o = new(Model)
	err = yaml.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal model: %v", err)
	}
	if o.Msh == nil && o.Mshfile == "" {
		return nil, chk.Err("either 'mesh' or 'mshfile' must be given")
	}
	if o.Msh != nil {
		if err = o.Msh.Init(o.Ndim); err != nil {
			return nil, err
		}
	}
	for i, s := range o.Steps {
		if i > 0 && s.Time < o.Steps[i-1].Time {
			return nil, chk.Err("steps must be given in non-decreasing time; step %d has t = %g < %g", i, s.Time, o.Steps[i-1].Time)
		}
	}
	return
}

// Etag2data returns the ElemData corresponding to element tag
//  Note: returns nil if not found
func (o *Model) Etag2data(etag int) *ElemData {
	for _, edat := range o.Elems {
		if edat.Tag == etag {
			return edat
		}
	}
	return nil
}

// GetMat returns material data by name
//  Note: returns nil if not found
func (o *Model) GetMat(name string) *MatData {
	for _, mat := range o.Mats {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// GetSolidModel allocates and initialises the solid model of a material
//  ndim -- space dimension seen by the model; e.g. 1 for trusses
func (o *Model) GetSolidModel(matname string, ndim int) (mdl solid.Model, err error) {
	mat := o.GetMat(matname)
	if mat == nil {
		return nil, chk.Err("cannot find material named %q", matname)
	}
	mdl, err = solid.New(mat.Model)
	if err != nil {
		return
	}
	err = mdl.Init(ndim, o.Pstress, mat.Prms)
	if err != nil {
		return nil, chk.Err("cannot initialise material %q: %v", matname, err)
	}
	return
}
