// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/chk"

// Extrapolate computes values at vertices from values at integration points
//  Input:
//   E   -- [nverts][nip] extrapolation matrix
//   vip -- [nip][ncomp] values at integration points
//  Output:
//   v -- [nverts][ncomp] values at vertices
func Extrapolate(E [][]float64, vip [][]float64) (v [][]float64, err error) {
	if len(E) == 0 || len(E[0]) != len(vip) {
		return nil, chk.Err("extrapolation matrix does not match the number of integration points")
	}
	ncomp := len(vip[0])
	v = make([][]float64, len(E))
	for m := range E {
		v[m] = make([]float64, ncomp)
		for j, vals := range vip {
			for c := 0; c < ncomp; c++ {
				v[m][c] += E[m][j] * vals[c]
			}
		}
	}
	return
}

// MeanOfIps returns the mean of values at integration points
func MeanOfIps(vip [][]float64) (v []float64) {
	if len(vip) == 0 {
		return nil
	}
	v = make([]float64, len(vip[0]))
	for _, vals := range vip {
		for c, x := range vals {
			v[c] += x
		}
	}
	for c := range v {
		v[c] /= float64(len(vip))
	}
	return
}
