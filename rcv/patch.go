// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcv

import (
	"math"

	"github.com/cpmech/femvtk/ele"
	"github.com/cpmech/femvtk/rmap"
	"github.com/cpmech/gosl/chk"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EXTENTTOL is the relative extent below which a coordinate axis is ignored in patch fits
const EXTENTTOL = 1e-8

// Patcher implements the least-squares patch recovery: at each node, a complete polynomial is
// fitted to the integration points' values of all elements sharing the node; the recovered value
// is the polynomial evaluated at the node. Coordinates are centred at the node and scaled by
// the extent of the patch; axes along which the patch is flat are dropped
type Patcher struct {
	log  *zap.Logger
	hook FallbackFunc
}

// Type returns Patch
func (o *Patcher) Type() Type { return Patch }

// OnFallback sets a function called (sequentially, after the fits) for each node whose fit fell
// back to averaging. It must be set before Recover is used
func (o *Patcher) OnFallback(fcn FallbackFunc) { o.hook = fcn }

// samples holds the data of one element of a patch, in the common layout of the region
type samples struct {
	c     *ele.Caps   // element
	order int         // order of polynomial
	x     [][]float64 // [nip][ndim] coordinates of integration points
	v     [][]float64 // [nip][ncomp] values at integration points
	est   [][]float64 // [nverts][ncomp] nodal estimates; nil if not available
}

// Recover computes the nodal values of key
func (o *Patcher) Recover(key string, m *rmap.Map, sol *ele.Solution) (res *Result, err error) {

	// result and elements
	res = newResult(key, m, func(c *ele.Caps) bool { return c.Ips != nil && c.Patch != nil })
	var elems []*ele.Caps
	for _, c := range m.Elems {
		if c.Ips != nil && c.Patch != nil && supports(c, key) {
			elems = append(elems, c)
		}
	}
	if len(elems) == 0 {
		return
	}

	// samples of each element
	samps := make([]*samples, len(elems))
	nw := nworkers(len(elems))
	var g errgroup.Group
	for w := 0; w < nw; w++ {
		w := w
		g.Go(func() (e error) {
			for i := w; i < len(elems); i += nw {
				if samps[i], e = collect(elems[i], key, res.RedIndx, sol); e != nil {
					return
				}
			}
			return
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	// patches: local node => elements
	patches := make([][]*samples, m.Nnodes)
	for _, s := range samps {
		for _, vid := range s.c.Cell.Verts {
			if k := m.Local(vid); k >= 0 {
				patches[k] = append(patches[k], s)
			}
		}
	}

	// fit at nodes
	fallbacks := make([]error, m.Nnodes)
	nw = nworkers(m.Nnodes)
	var gfit errgroup.Group
	for w := 0; w < nw; w++ {
		w := w
		gfit.Go(func() error {
			for k := w; k < m.Nnodes; k += nw {
				if len(patches[k]) == 0 {
					continue
				}
				res.Vals[k], fallbacks[k] = fitAtNode(m.L2G[k], m.X[k], patches[k], res.Ncomp)
			}
			return nil
		})
	}
	gfit.Wait()

	// report fallbacks
	for k, e := range fallbacks {
		if e == nil {
			continue
		}
		o.log.Debug("patch fit fell back to averaging", zap.String("key", key), zap.Int("vert", m.L2G[k]), zap.Error(e))
		if o.hook != nil {
			o.hook(m.L2G[k], key, e)
		}
	}
	return
}

// collect gets the samples of an element expanded into the common layout
func collect(c *ele.Caps, key string, common []int, sol *ele.Solution) (s *samples, err error) {
	M := ele.NewIpsMap()
	if err = c.Ips.OutIpVals(M, sol); err != nil {
		return nil, chk.Err("cannot get integration points' values of element %d:\n%v", c.Cell.Id, err)
	}
	s = &samples{c: c, order: c.Patch.PatchOrder(), x: c.Ips.OutIpCoords()}
	vals := (*M)[key]
	if len(vals) != len(s.x) {
		return nil, chk.Err("element %d has %d integration points but %d values of %q", c.Cell.Id, len(s.x), len(vals), key)
	}
	pos := positions(c.RedIndx(key), common)
	s.v = make([][]float64, len(vals))
	for j, v := range vals {
		if s.v[j], err = scatter(v, pos, len(common)); err != nil {
			return nil, chk.Err("element %d returned invalid values of %q at integration point %d:\n%v", c.Cell.Id, key, j, err)
		}
	}
	if c.Avg == nil {
		return
	}
	est, err := c.Avg.NodalValues(key, sol)
	if err != nil {
		return nil, chk.Err("cannot get nodal values of %q from element %d:\n%v", key, c.Cell.Id, err)
	}
	if est == nil {
		return
	}
	s.est = make([][]float64, len(est))
	for m, v := range est {
		if s.est[m], err = scatter(v, pos, len(common)); err != nil {
			return nil, chk.Err("element %d returned invalid nodal values of %q:\n%v", c.Cell.Id, key, err)
		}
	}
	return
}

// fitAtNode fits a polynomial over a patch. On failure, the average of the nodal estimates of
// the patch elements (or of the samples if no element gives estimates) is returned with the
// reason of the fallback
func fitAtNode(vid int, xnode []float64, patch []*samples, ncomp int) (val []float64, fallback error) {

	// order and extent of patch
	ndim := len(xnode)
	lo, hi := make([]float64, ndim), make([]float64, ndim)
	copy(lo, xnode)
	copy(hi, xnode)
	var p int
	for _, s := range patch {
		p = max(p, s.order)
		for _, x := range s.x {
			for i := 0; i < ndim; i++ {
				lo[i], hi[i] = math.Min(lo[i], x[i]), math.Max(hi[i], x[i])
			}
		}
	}
	var h float64
	for i := 0; i < ndim; i++ {
		h = math.Max(h, hi[i]-lo[i])
	}
	var axes []int
	for i := 0; i < ndim; i++ {
		if hi[i]-lo[i] > EXTENTTOL*h {
			axes = append(axes, i)
		}
	}

	// scaled coordinates
	var X, V [][]float64
	for _, s := range patch {
		for j, x := range s.x {
			ξ := make([]float64, len(axes))
			for a, i := range axes {
				ξ[a] = (x[i] - xnode[i]) / (hi[i] - lo[i])
			}
			X = append(X, ξ)
			V = append(V, s.v[j])
		}
	}

	// fit
	val, fallback = Fit(X, V, p)
	if fallback == nil {
		return
	}

	// average of nodal estimates
	val = make([]float64, ncomp)
	var cnt int
	for _, s := range patch {
		if s.est == nil {
			continue
		}
		for m, v := range s.c.Cell.Verts {
			if v == vid && m < len(s.est) {
				for c := 0; c < ncomp; c++ {
					val[c] += s.est[m][c]
				}
				cnt++
			}
		}
	}

	// average of samples
	if cnt == 0 {
		for _, v := range V {
			for c := 0; c < ncomp; c++ {
				val[c] += v[c]
			}
			cnt++
		}
	}
	if cnt > 0 {
		for c := 0; c < ncomp; c++ {
			val[c] /= float64(cnt)
		}
	}
	return
}
