// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcv

import (
	"github.com/cpmech/femvtk/ele"
	"github.com/cpmech/femvtk/rmap"
	"github.com/cpmech/gosl/chk"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Averager implements the nodal averaging recovery: the value at a node is the mean of the
// values extrapolated to this node by every element sharing it
type Averager struct {
	log *zap.Logger
}

// Type returns Averaging
func (o *Averager) Type() Type { return Averaging }

// OnFallback does nothing: averaging never falls back
func (o *Averager) OnFallback(fcn FallbackFunc) {}

// Recover computes the nodal values of key
func (o *Averager) Recover(key string, m *rmap.Map, sol *ele.Solution) (res *Result, err error) {

	// result and elements
	res = newResult(key, m, func(c *ele.Caps) bool { return c.Avg != nil })
	var elems []*ele.Caps
	for _, c := range m.Elems {
		if c.Avg != nil && supports(c, key) {
			elems = append(elems, c)
		}
	}
	if len(elems) == 0 {
		return
	}
	o.log.Debug("nodal averaging", zap.String("key", key), zap.Int("elements", len(elems)), zap.Ints("layout", res.RedIndx))

	// accumulate in partitioned buffers
	nw := nworkers(len(elems))
	sums := make([][][]float64, nw)
	counts := make([][]int, nw)
	var g errgroup.Group
	for w := 0; w < nw; w++ {
		w := w
		g.Go(func() error {
			sums[w] = make([][]float64, m.Nnodes)
			counts[w] = make([]int, m.Nnodes)
			for i := w; i < len(elems); i += nw {
				if e := accumulate(sums[w], counts[w], elems[i], key, res.RedIndx, m, sol); e != nil {
					return e
				}
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	// merge and compute average
	for k := 0; k < m.Nnodes; k++ {
		var cnt int
		for w := 0; w < nw; w++ {
			if counts[w][k] == 0 {
				continue
			}
			cnt += counts[w][k]
			for c := 0; c < res.Ncomp; c++ {
				res.Vals[k][c] += sums[w][k][c]
			}
		}
		if cnt > 0 {
			for c := 0; c < res.Ncomp; c++ {
				res.Vals[k][c] /= float64(cnt)
			}
		}
	}
	return
}

// accumulate adds the nodal estimates of one element expanded into the common layout
func accumulate(sum [][]float64, count []int, c *ele.Caps, key string, common []int, m *rmap.Map, sol *ele.Solution) (err error) {
	vals, err := c.Avg.NodalValues(key, sol)
	if err != nil {
		return chk.Err("cannot get nodal values of %q from element %d:\n%v", key, c.Cell.Id, err)
	}
	if vals == nil {
		return
	}
	if len(vals) != len(c.Cell.Verts) {
		return chk.Err("element %d returned %d nodal values of %q; it has %d vertices", c.Cell.Id, len(vals), key, len(c.Cell.Verts))
	}
	pos := positions(c.RedIndx(key), common)
	for j, g := range c.Cell.Verts {
		k := m.Local(g)
		if k < 0 {
			continue
		}
		v, e := scatter(vals[j], pos, len(common))
		if e != nil {
			return chk.Err("element %d returned invalid nodal values of %q:\n%v", c.Cell.Id, key, e)
		}
		if sum[k] == nil {
			sum[k] = make([]float64, len(common))
		}
		for i := range v {
			sum[k][i] += v[i]
		}
		count[k]++
	}
	return
}
