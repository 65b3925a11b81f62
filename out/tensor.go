// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import "github.com/cpmech/femvtk/ele"

// redToFull maps the positions of a full 3x3 tensor (row-major) to the reduced (Voigt) index
//  Voigt order: xx, yy, zz, yz, xz, xy
var redToFull = []int{
	0, 5, 4,
	5, 1, 3,
	4, 3, 2,
}

// NumFullComps returns the number of components written for a value type
func NumFullComps(vt ele.ValueType) int {
	switch vt {
	case ele.Vector:
		return 3
	case ele.SymTensor, ele.Tensor:
		return 9
	}
	return 1
}

// MakeFullForm expands reduced values into the full form
//  Input:
//   red     -- reduced values
//   vt      -- value type
//   redIndx -- reduced index map: red[i] holds the Voigt component redIndx[i] of symmetric
//              tensors or the full position redIndx[i] of general tensors
//  Output:
//   full -- scalars and vectors are copied; tensors have 9 components with absent ones set to zero
func MakeFullForm(red []float64, vt ele.ValueType, redIndx []int) (full []float64) {
	switch vt {
	case ele.SymTensor:
		full = make([]float64, 9)
		for i, v := range redIndx {
			if i >= len(red) {
				break
			}
			for j, r := range redToFull {
				if r == v {
					full[j] = red[i]
				}
			}
		}
	case ele.Tensor:
		full = make([]float64, 9)
		for i, v := range redIndx {
			if i < len(red) && v >= 0 && v < 9 {
				full[v] = red[i]
			}
		}
	default:
		full = make([]float64, len(red))
		copy(full, red)
	}
	return
}
