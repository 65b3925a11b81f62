// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/femvtk/mdl/solid"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// UniaxialBar computes the state of a straight bar whose ends are displaced
//
//   x0 o=======================o x1     σ = σ0 + E (u1 - u0)·e / L
//      u0                      u1      N = σ A
//
type UniaxialBar struct {
	E    float64 // Young's modulus
	A    float64 // cross-sectional area
	Sig0 float64 // initial axial stress
}

// Init initialises this structure
func (o *UniaxialBar) Init(prms solid.Prms) {
	o.E, o.A, o.Sig0 = 1000.0, 1.0, 0.0
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "A":
			o.A = p.V
		case "sig0":
			o.Sig0 = p.V
		}
	}
}

// Strain computes the axial strain
func (o UniaxialBar) Strain(x0, x1, u0, u1 []float64) (ε float64) {
	e := make([]float64, len(x0))
	floats.SubTo(e, x1, x0)
	L := floats.Norm(e, 2)
	floats.Scale(1.0/L, e)
	du := make([]float64, len(x0))
	for i := range du {
		if i < len(u0) && i < len(u1) {
			du[i] = u1[i] - u0[i]
		}
	}
	return floats.Dot(du, e) / L
}

// Stress computes the axial stress
func (o UniaxialBar) Stress(x0, x1, u0, u1 []float64) float64 {
	return o.Sig0 + o.E*o.Strain(x0, x1, u0, u1)
}

// Force computes the axial force
func (o UniaxialBar) Force(x0, x1, u0, u1 []float64) float64 {
	return o.Stress(x0, x1, u0, u1) * o.A
}

// Displ interpolates the displacements at x, a point on the bar
func (o UniaxialBar) Displ(x0, x1, u0, u1, x []float64) (u []float64) {
	a := make([]float64, len(x0))
	floats.SubTo(a, x, x0)
	L := floats.Distance(x0, x1, 2)
	s := floats.Norm(a, 2) / L
	u = make([]float64, len(u0))
	for i := range u {
		u[i] = (1.0-s)*u0[i] + s*u1[i]
	}
	return
}

// CheckStress checks the axial stress
func (o UniaxialBar) CheckStress(tst *testing.T, σ float64, x0, x1, u0, u1 []float64, tol float64) {
	chk.Float64(tst, "σ", tol, σ, o.Stress(x0, x1, u0, u1))
}

// PlaneStrainStretch computes the state of a plane-strain domain with displacements
// u = {εx x, 0}; stresses are uniform
type PlaneStrainStretch struct {
	E  float64 // Young's modulus
	ν  float64 // Poisson's coefficient
	Ex float64 // imposed horizontal strain
}

// Init initialises this structure
func (o *PlaneStrainStretch) Init(prms solid.Prms) {
	o.E, o.ν, o.Ex = 1000.0, 0.25, 0.001
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.ν = p.V
		case "ex":
			o.Ex = p.V
		}
	}
}

// Displ computes displacements
func (o PlaneStrainStretch) Displ(x []float64) []float64 {
	return []float64{o.Ex * x[0], 0}
}

// Stress computes stresses {xx, yy, zz, xy}
func (o PlaneStrainStretch) Stress() []float64 {
	c := o.E / ((1.0 + o.ν) * (1.0 - 2.0*o.ν))
	σx := c * (1.0 - o.ν) * o.Ex
	σy := c * o.ν * o.Ex
	return []float64{σx, σy, σy, 0}
}

// VonMises computes the von Mises equivalent stress
func (o PlaneStrainStretch) VonMises() float64 {
	σ := o.Stress()
	return math.Abs(σ[0] - σ[1])
}
