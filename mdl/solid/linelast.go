// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Section holds cross-sectional properties used by structural elements (rods, trusses, beams)
type Section struct {
	A   float64 // cross-sectional area
	I22 float64 // moment of inertia of cross section about y2-axis
	I11 float64 // moment of inertia of cross section about y1-axis
	Jtt float64 // torsional constant
	As2 float64 // shear area along y2 (defaults to A)
	As3 float64 // shear area along y3 (defaults to A)
}

// IsoLinElast implements an isotropic linear elastic model
type IsoLinElast struct {

	// parameters
	E      float64 // Young's modulus
	Nu     float64 // Poisson's coefficient
	G      float64 // shear modulus
	K      float64 // bulk modulus
	Talpha float64 // thermal dilatation coefficient
	Rho    float64 // density
	Sec    Section // cross-section of structural elements

	// derived
	Ndim    int  // space dimension; 1 for rods/trusses
	Pstress bool // plane-stress
	Nsig    int  // number of stress components
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(IsoLinElast) }
}

// Init initialises model
func (o *IsoLinElast) Init(ndim int, pstress bool, prms Prms) (err error) {
	o.Ndim, o.Pstress = ndim, pstress
	o.Nsig = Nsig(ndim, pstress)
	o.Sec = Section{}
	var hasE, hasNu bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "talpha":
			o.Talpha = p.V
		case "rho":
			o.Rho = p.V
		case "A":
			o.Sec.A = p.V
		case "I22":
			o.Sec.I22 = p.V
		case "I11":
			o.Sec.I11 = p.V
		case "Jtt":
			o.Sec.Jtt = p.V
		case "As2":
			o.Sec.As2 = p.V
		case "As3":
			o.Sec.As3 = p.V
		default:
			return chk.Err("lin-elast: parameter named %q is incorrect", p.N)
		}
	}
	if !hasE || !hasNu {
		return chk.Err("lin-elast: both E and nu must be given")
	}
	if o.E <= 0 {
		return chk.Err("lin-elast: Young's modulus must be positive. E = %g is invalid", o.E)
	}
	if o.Nu <= -1 || o.Nu >= 0.5 {
		return chk.Err("lin-elast: Poisson's coefficient must be in (-1, 0.5). nu = %g is invalid", o.Nu)
	}
	o.G = CalcG(o.E, o.Nu)
	o.K = CalcK(o.E, o.Nu)
	if o.Sec.As2 == 0 {
		o.Sec.As2 = o.Sec.A
	}
	if o.Sec.As3 == 0 {
		o.Sec.As3 = o.Sec.A
	}
	return
}

// GetPrms gets (an example) of parameters
func (o IsoLinElast) GetPrms() Prms {
	return Prms{
		&Prm{N: "E", V: 2.0000e+08},
		&Prm{N: "nu", V: 0.3},
		&Prm{N: "talpha", V: 1.2e-05},
		&Prm{N: "rho", V: 7.85},
		&Prm{N: "A", V: 1.0000e-02},
	}
}

// GetRho returns density
func (o *IsoLinElast) GetRho() float64 { return o.Rho }

// InitIntVars initialises internal (secondary) variables
func (o *IsoLinElast) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig)
	if σ == nil {
		return
	}
	if len(σ) != o.Nsig {
		return nil, chk.Err("lin-elast: initial stress must have %d components; got %d", o.Nsig, len(σ))
	}
	copy(s.Sig, σ)
	return
}

// Update updates stresses for given strains
func (o *IsoLinElast) Update(s *State, ε, Δε []float64, eid, ipid int, time float64) (err error) {
	D := utl.Alloc(o.Nsig, o.Nsig)
	o.CalcD(D, s, false)
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			s.Sig[i] += D[i][j] * Δε[j]
		}
		s.Eps[i] = ε[i]
	}
	return
}

// CalcD computes D = dσ_new/dε_new consistent with StressUpdate
func (o *IsoLinElast) CalcD(D [][]float64, s *State, firstIt bool) (err error) {
	switch o.Nsig {
	case 1:
		o.Stiff1d(D)
	case 3:
		o.StiffPlaneStress(D)
	case 4:
		o.StiffPlaneStrain(D)
	default:
		o.Stiff3d(D)
	}
	return
}

// Stiff3d computes the 3D stiffness D[6][6]
func (o *IsoLinElast) Stiff3d(D [][]float64) {
	λ := o.K - 2.0*o.G/3.0
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			D[i][j] = 0
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = λ
		}
		D[i][i] = λ + 2.0*o.G
		D[3+i][3+i] = o.G
	}
}

// StiffPlaneStrain computes the plane-strain stiffness D[4][4] with components {xx,yy,zz,xy}
func (o *IsoLinElast) StiffPlaneStrain(D [][]float64) {
	λ := o.K - 2.0*o.G/3.0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			D[i][j] = 0
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = λ
		}
		D[i][i] = λ + 2.0*o.G
	}
	D[3][3] = o.G
}

// StiffPlaneStress computes the plane-stress stiffness D[3][3] with components {xx,yy,xy}
func (o *IsoLinElast) StiffPlaneStress(D [][]float64) {
	c := o.E / (1.0 - o.Nu*o.Nu)
	D[0][0], D[0][1], D[0][2] = c, c*o.Nu, 0
	D[1][0], D[1][1], D[1][2] = c*o.Nu, c, 0
	D[2][0], D[2][1], D[2][2] = 0, 0, c*(1.0-o.Nu)/2.0
}

// Stiff1d computes the uniaxial stiffness D[1][1]
func (o *IsoLinElast) Stiff1d(D [][]float64) {
	D[0][0] = o.E
}

// Stiff2dBeam computes the sectional stiffness D[3][3] of 2D beams: {axial, bending, shear}
func (o *IsoLinElast) Stiff2dBeam(D [][]float64) {
	D[0][0], D[0][1], D[0][2] = o.E*o.Sec.A, 0, 0
	D[1][0], D[1][1], D[1][2] = 0, o.E*o.Sec.I22, 0
	D[2][0], D[2][1], D[2][2] = 0, 0, o.G*o.Sec.As3
}

// Stiff3dBeam computes the sectional stiffness D[6][6] of 3D beams:
// {axial, shear2, shear3, torsion, bending22, bending11}
func (o *IsoLinElast) Stiff3dBeam(D [][]float64) {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			D[i][j] = 0
		}
	}
	D[0][0] = o.E * o.Sec.A
	D[1][1] = o.G * o.Sec.As2
	D[2][2] = o.G * o.Sec.As3
	D[3][3] = o.G * o.Sec.Jtt
	D[4][4] = o.E * o.Sec.I22
	D[5][5] = o.E * o.Sec.I11
}

// ThermalDilatation returns the thermal dilatation vector [nsig]: α on normal components only
func (o *IsoLinElast) ThermalDilatation() (α []float64) {
	α = make([]float64, o.Nsig)
	nnormal := map[int]int{1: 1, 3: 2, 4: 3, 6: 3}[o.Nsig]
	for i := 0; i < nnormal; i++ {
		α[i] = o.Talpha
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// CalcG computes the shear modulus G from Young's modulus E and Poisson's coefficient ν
func CalcG(E, ν float64) float64 { return E / (2.0 * (1.0 + ν)) }

// CalcK computes the bulk modulus K from Young's modulus E and Poisson's coefficient ν
func CalcK(E, ν float64) float64 { return E / (3.0 * (1.0 - 2.0*ν)) }
