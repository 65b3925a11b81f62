// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string      // name; e.g. "lin2"
	Func      ShpFunc     // shape/derivs function callback function
	Gndim     int         // geometry of shape; e.g. "lin3" => gnd == 1 (even in 3D simulations)
	Nverts    int         // number of vertices in cell; e.g. "qua8" => 8
	VtkCode   int         // VTK code
	NatCoords [][]float64 // natural coordinates [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)

	// scratchpad: line
	Jvec3d []float64 // Jacobian: norm of dxdr for line elements (size==3)
	Gvec   []float64 // [nverts] G == dSdx. derivative of shape function
}

// Get returns a new Shape structure with its own scratchpad
//  Note: returns nil if geoType has no shape functions
func Get(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	var o Shape
	o.Type = s.Type
	o.Func = s.Func
	o.Gndim = s.Gndim
	o.Nverts = s.Nverts
	o.VtkCode = s.VtkCode
	o.NatCoords = s.NatCoords
	o.init_scratchpad()
	return &o
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	return o.RealCoords(x, ip[:o.Gndim])
}

// RealCoords returns the real coordinates (y) corresponding to natural coordinates r
func (o *Shape) RealCoords(x [][]float64, r []float64) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.Func(o.S, o.DSdR, r, false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[ndim][nverts] -- coordinates matrix of element
//   ip              -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, ip, derivs)
	if !derivs {
		return
	}

	if o.Gndim == 1 {
		// calculate Jvec3d == dxdR
		for i := 0; i < 3; i++ {
			o.Jvec3d[i] = 0.0
		}
		for i := 0; i < len(x); i++ {
			for m := 0; m < o.Nverts; m++ {
				o.Jvec3d[i] += x[i][m] * o.DSdR[m][0] // dxdR := x * dSdR
			}
		}

		// calculate J = norm of Jvec3d
		o.J = math.Sqrt(o.Jvec3d[0]*o.Jvec3d[0] + o.Jvec3d[1]*o.Jvec3d[1] + o.Jvec3d[2]*o.Jvec3d[2])
		if o.J < MINDET {
			return chk.Err("length of dxdR vector of %q is too small: J = %g", o.Type, o.J)
		}

		// calculate G
		for m := 0; m < o.Nverts; m++ {
			o.Gvec[m] = o.DSdR[m][0] / o.J
		}
		return
	}

	// check
	if len(x) != o.Gndim {
		return chk.Err("shape %q requires coordinates with %d rows; got %d", o.Type, o.Gndim, len(x))
	}
	if o.Gndim != 2 {
		return chk.Err("CalcAtIp with derivatives is only available for 1D and 2D shapes")
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	o.J = o.DxdR[0][0]*o.DxdR[1][1] - o.DxdR[0][1]*o.DxdR[1][0]
	if o.J < MINDET {
		return chk.Err("determinant of dxdR of %q is invalid: J = %g", o.Type, o.J)
	}
	o.DRdx[0][0] = +o.DxdR[1][1] / o.J
	o.DRdx[0][1] = -o.DxdR[0][1] / o.J
	o.DRdx[1][0] = -o.DxdR[1][0] / o.J
	o.DRdx[1][1] = +o.DxdR[0][0] / o.J

	// G == dSdx := dSdR * dRdx  =>  dS^m/dR_i := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx[i][j]
			}
		}
	}
	return
}

// init_scratchpad allocates scratchpad arrays
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = utl.Alloc(o.Gndim, o.Gndim)
	o.DRdx = utl.Alloc(o.Gndim, o.Gndim)
	o.Jvec3d = make([]float64, 3)
	o.Gvec = make([]float64, o.Nverts)
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)
