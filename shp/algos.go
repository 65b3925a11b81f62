// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// PINVTOL is the relative tolerance for singular values in the generalised inverse
const PINVTOL = 1e-10

// GetNodesNatCoordsMat returns the matrix (ξ) with natural coordinates of nodes,
// augmented by one column which is filled with ones [nverts][gndim+1]
func (o *Shape) GetNodesNatCoordsMat() (ξ [][]float64) {
	ξ = utl.Alloc(o.Nverts, o.Gndim+1)
	for i := 0; i < o.Nverts; i++ {
		for j := 0; j < o.Gndim; j++ {
			ξ[i][j] = o.NatCoords[j][i]
		}
		ξ[i][o.Gndim] = 1.0
	}
	return
}

// GetIpsNatCoordsMat returns the matrix (\hat{ξ}) with natural coordinates of interation
// points, augmented by one column which is filled with ones [nip][gndim+1]
func (o *Shape) GetIpsNatCoordsMat(ips []Ipoint) (ξh [][]float64) {
	nip := len(ips)
	ξh = utl.Alloc(nip, o.Gndim+1)
	for i := 0; i < nip; i++ {
		for j := 0; j < o.Gndim; j++ {
			ξh[i][j] = ips[i][j]
		}
		ξh[i][o.Gndim] = 1.0
	}
	return
}

// GetShapeMatAtIps returns a matrix formed by computing the shape functions
// at all integration points [nip][nverts]
func (o *Shape) GetShapeMatAtIps(ips []Ipoint) (N [][]float64) {
	nip := len(ips)
	N = utl.Alloc(nip, o.Nverts)
	for i := 0; i < nip; i++ {
		o.Func(o.S, o.DSdR, ips[i], false)
		copy(N[i], o.S)
	}
	return
}

// Extrapolator computes the extrapolation matrix E[nverts][nip] for this Shape with a
// combination of integration points 'ips'. Values at vertices are then given by
//  v[m] = sum_j E[m][j] * vip[j]
func (o *Shape) Extrapolator(ips []Ipoint) (E [][]float64, err error) {
	nip := len(ips)
	if nip == 0 {
		return nil, chk.Err("cannot compute extrapolator of %q without integration points", o.Type)
	}
	N := o.GetShapeMatAtIps(ips)
	if nip >= o.Nverts {
		return PseudoInverse(N, PINVTOL)
	}

	// fewer points than vertices: linear part from ξ and its complement from N
	ξ := o.GetNodesNatCoordsMat()
	ξh := o.GetIpsNatCoordsMat(ips)
	Ni, err := PseudoInverse(N, PINVTOL)
	if err != nil {
		return
	}
	ξhi, err := PseudoInverse(ξh, PINVTOL)
	if err != nil {
		return
	}
	ξhξhI := utl.Alloc(nip, nip) // ξh * inv(ξh)
	E = utl.Alloc(o.Nverts, nip)
	for k := 0; k < o.Gndim+1; k++ {
		for j := 0; j < nip; j++ {
			for i := 0; i < nip; i++ {
				ξhξhI[i][j] += ξh[i][k] * ξhi[k][j]
			}
			for i := 0; i < o.Nverts; i++ {
				E[i][j] += ξ[i][k] * ξhi[k][j] // ξ * inv(ξh)
			}
		}
	}
	for i := 0; i < o.Nverts; i++ {
		for j := 0; j < nip; j++ {
			for k := 0; k < nip; k++ {
				I_kj := 0.0
				if j == k {
					I_kj = 1.0
				}
				E[i][j] += Ni[i][k] * (I_kj - ξhξhI[k][j])
			}
		}
	}
	return
}

// PseudoInverse computes the Moore-Penrose generalised inverse Ai[n][m] of a[m][n] using the
// singular value decomposition. Singular values smaller than tol*max(σ) are dropped
func PseudoInverse(a [][]float64, tol float64) (ai [][]float64, err error) {
	m := len(a)
	if m == 0 {
		return nil, chk.Err("cannot invert an empty matrix")
	}
	n := len(a[0])
	A := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		A.SetRow(i, a[i])
	}
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return nil, chk.Err("singular value decomposition of %d x %d matrix failed", m, n)
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	σ := svd.Values(nil)
	if σ[0] <= 0 {
		return nil, chk.Err("cannot invert a null matrix")
	}

	// ai = V * inv(Σ) * Uᵀ
	ai = utl.Alloc(n, m)
	for k, s := range σ {
		if s <= tol*σ[0] {
			continue
		}
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				ai[i][j] += V.At(i, k) * U.At(j, k) / s
			}
		}
	}
	return
}
