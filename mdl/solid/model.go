// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements models for solids based on continuum mechanics
/*
 *            |    Rate
 *  ============================================
 *            |
 *            | dσdt = f(σ,dεdt)
 *    Small   | σ_(n+1) = σ_(n) + Δt * f_(n+1)
 *            | StressUpdate
 *            | D = dσ/dε_(n+1)
 *            |
 *  --------------------------------------------
 *
 *  Stress and strain components are stored in reduced (Voigt) order:
 *
 *    3D           σ = {xx, yy, zz, yz, xz, xy}    nsig = 6
 *    plane-strain σ = {xx, yy, zz, xy}            nsig = 4
 *    plane-stress σ = {xx, yy, xy}                nsig = 3
 *    1D           σ = {xx}                        nsig = 1
 *
 *  Shear strains are engineering strains (γ = 2 ε).
 */
package solid

import "github.com/cpmech/gosl/chk"

// Model defines the interface for solid models
type Model interface {
	Init(ndim int, pstress bool, prms Prms) error // initialises model
	InitIntVars(σ []float64) (*State, error)      // initialises AND allocates internal (secondary) variables
	GetPrms() Prms                                // gets (an example) of parameters
	GetRho() float64                              // returns density
}

// Small defines rate type solid models for small strain analyses
type Small interface {
	Update(s *State, ε, Δε []float64, eid, ipid int, time float64) error // updates stresses for given strains
	CalcD(D [][]float64, s *State, firstIt bool) error                   // computes D = dσ_new/dε_new consistent with StressUpdate
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// Nsig returns the number of stress components for a given space dimension
//  ndim == 1 means rods/trusses (axial component only)
func Nsig(ndim int, pstress bool) int {
	switch ndim {
	case 1:
		return 1
	case 2:
		if pstress {
			return 3
		}
		return 4
	}
	return 6
}

// RedIndx returns the positions in the full Voigt layout {xx,yy,zz,yz,xz,xy}
// of the reduced stress components used for a given space dimension
func RedIndx(ndim int, pstress bool) []int {
	switch ndim {
	case 1:
		return []int{0}
	case 2:
		if pstress {
			return []int{0, 1, 5}
		}
		return []int{0, 1, 2, 5}
	}
	return []int{0, 1, 2, 3, 4, 5}
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}
