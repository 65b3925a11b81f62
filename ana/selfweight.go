// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions used to check exported fields
package ana

import (
	"testing"

	"github.com/cpmech/femvtk/mdl/solid"
	"github.com/cpmech/gosl/chk"
)

// ConfinedSelfWeight computes the solution to a simple confined linear elastic domain under gravity
//
//     ▷ o-----------o ◁
//     ▷ |           | ◁
//     ▷ |    E, ρ   | ◁       negative stress means compression
//  h  ▷ |    ν, g   | ◁       g = 10  =>  b = -10 * ρ (body force)
//     ▷ |           | ◁
//     ▷ o-----------o ◁
//       △  △  △  △  △
//             w
type ConfinedSelfWeight struct {

	// input
	E float64 // Young's modulus
	ν float64 // Poisson's coefficient
	ρ float64 // density
	g float64 // gravity constant (positive value)
	h float64 // height

	// derived
	d float64 // horizontal/vertical stress ratio = ν/(1-ν)
	M float64 // P-wave modulus
}

// Init initialises this structure
func (o *ConfinedSelfWeight) Init(prms solid.Prms) {

	// default values
	o.E = 1000.0
	o.ν = 0.25
	o.ρ = 2.0
	o.g = 10.0
	o.h = 1.0

	// parameters
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.ν = p.V
		case "rho":
			o.ρ = p.V
		case "g":
			o.g = p.V
		case "h":
			o.h = p.V
		}
	}

	// derived
	o.d = o.ν / (1.0 - o.ν)
	o.M = o.E * (1.0 - o.ν) / ((1.0 + o.ν) * (1.0 - 2.0*o.ν))
}

// Stress computes stress components in reduced storage: {xx, yy, zz, xy} in 2D (plane strain)
// and {xx, yy, zz, yz, xz, xy} in 3D
func (o ConfinedSelfWeight) Stress(t float64, x []float64) (σ []float64) {
	ndim := len(x)
	z := x[ndim-1]             // elevation
	b := o.g * t               // body force
	σv := -o.ρ * b * (o.h - z) // vertical stress
	σh := o.d * σv             // horizontal stress
	σ = make([]float64, 2*ndim)
	if ndim == 2 {
		σ[0], σ[1], σ[2] = σh, σv, σh
		return
	}
	σ[0], σ[1], σ[2] = σh, σh, σv
	return
}

// Displ computes displacement components
func (o ConfinedSelfWeight) Displ(t float64, x []float64) (u []float64) {
	ndim := len(x)
	z := x[ndim-1]
	b := o.g * t
	α := -o.ρ * b / o.M
	u = make([]float64, ndim)
	u[ndim-1] = α * (o.h - z/2.0) * z
	return
}

// CheckStress check stresses
func (o ConfinedSelfWeight) CheckStress(tst *testing.T, t float64, σ, x []float64, tol float64) {
	chk.Array(tst, "σ", tol, σ, o.Stress(t, x))
}

// CheckDispl checks displacements
func (o ConfinedSelfWeight) CheckDispl(tst *testing.T, t float64, u, x []float64, tol float64) {
	chk.Array(tst, "u", tol, u, o.Displ(t, x))
}
