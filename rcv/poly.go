// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcv

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// RCOND is the relative tolerance on singular values to accept a patch fit
const RCOND = 1e-10

// Exponents returns the exponents of the monomials of the complete polynomial of order p in n
// variables. The constant term comes first; then terms are sorted by degree
//  Example: n=2, p=1 => {0,0}, {1,0}, {0,1}
func Exponents(n, p int) (exps [][]int) {
	for deg := 0; deg <= p; deg++ {
		exps = append(exps, withDegree(n, deg)...)
	}
	return
}

// withDegree returns all exponents of n variables adding up to deg
func withDegree(n, deg int) (exps [][]int) {
	if n == 0 {
		if deg == 0 {
			return [][]int{{}}
		}
		return nil
	}
	for e := deg; e >= 0; e-- {
		for _, rest := range withDegree(n-1, deg-e) {
			exps = append(exps, append([]int{e}, rest...))
		}
	}
	return
}

// Fit fits a complete polynomial by least squares and returns its value at the origin
//  Input:
//   X -- [nsamples][n] (scaled) coordinates of samples
//   V -- [nsamples][ncomp] values at samples
//   p -- order of polynomial
//  Output:
//   v0 -- [ncomp] value of the fitted polynomial at x = 0
func Fit(X, V [][]float64, p int) (v0 []float64, err error) {

	// check
	ns := len(X)
	if ns == 0 {
		return nil, chk.Err("there are no samples")
	}
	n, ncomp := len(X[0]), len(V[0])
	exps := Exponents(n, p)
	nt := len(exps)
	if ns < nt {
		return nil, chk.Err("under-determined fit: %d samples for %d terms", ns, nt)
	}

	// matrix of monomials and right-hand side
	A := mat.NewDense(ns, nt, nil)
	B := mat.NewDense(ns, ncomp, nil)
	for i := 0; i < ns; i++ {
		for j, e := range exps {
			A.Set(i, j, monomial(X[i], e))
		}
		for c := 0; c < ncomp; c++ {
			B.Set(i, c, V[i][c])
		}
	}

	// solve
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return nil, chk.Err("singular value decomposition failed")
	}
	rank := svd.Rank(RCOND)
	if rank < nt {
		return nil, chk.Err("rank-deficient fit: rank %d < %d terms", rank, nt)
	}
	var C mat.Dense
	svd.SolveTo(&C, B, rank)

	// constant term
	v0 = make([]float64, ncomp)
	for c := 0; c < ncomp; c++ {
		v0[c] = C.At(0, c)
	}
	return
}

// monomial computes Π x[i]^e[i]
func monomial(x []float64, e []int) (res float64) {
	res = 1
	for i, k := range e {
		if k > 0 {
			res *= math.Pow(x[i], float64(k))
		}
	}
	return
}
