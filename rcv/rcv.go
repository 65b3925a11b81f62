// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rcv implements the recovery of continuous nodal values from integration points' values
package rcv

import (
	"runtime"
	"sort"
	"strings"

	"github.com/cpmech/femvtk/ele"
	"github.com/cpmech/femvtk/rmap"
	"github.com/cpmech/gosl/chk"
	"go.uber.org/zap"
)

// Type defines the recovery (smoothing) strategy
type Type int

const (
	Averaging Type = iota // mean of the nodal estimates of elements sharing a node
	Patch                 // least-squares polynomial fit over the integration points of a patch
)

// ParseType converts a configuration string into a recovery type
func ParseType(s string) (typ Type, err error) {
	switch strings.ToLower(s) {
	case "avg", "nodalavg", "averaging":
		return Averaging, nil
	case "patch", "spr":
		return Patch, nil
	}
	return 0, chk.Err("recovery type %q is invalid. options: avg, nodalavg, patch, spr", s)
}

func (o Type) String() string {
	switch o {
	case Averaging:
		return "averaging"
	case Patch:
		return "patch"
	}
	return "unknown"
}

// Result holds the recovered values at the nodes of a region map
type Result struct {
	Key     string        // variable key
	Vals    [][]float64   // [nnodes][ncomp] values in the local order of the map
	Ncomp   int           // number of (reduced) components
	Type    ele.ValueType // value type from the ivs table
	RedIndx []int         // common reduced index map of the region; nil if no element supports the variable
}

// FallbackFunc is called for each node whose patch fit fell back to averaging
//  vid -- global vertex id
type FallbackFunc func(vid int, key string, err error)

// Model defines recovery models
//  Note: models hold no per-call state and can be shared by goroutines
type Model interface {
	Type() Type
	Recover(key string, m *rmap.Map, sol *ele.Solution) (res *Result, err error)
	OnFallback(fcn FallbackFunc)
}

// New returns a new recovery model
func New(typ Type, logger *zap.Logger) (Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch typ {
	case Averaging:
		return &Averager{log: logger}, nil
	case Patch:
		return &Patcher{log: logger}, nil
	}
	return nil, chk.Err("recovery type %d is not available", typ)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// newResult allocates the result with zeros and finds the common layout of key: the sorted union
// of the reduced layouts of all elements in m supporting key and accepted by 'use'
func newResult(key string, m *rmap.Map, use func(c *ele.Caps) bool) (o *Result) {
	o = &Result{Key: key, Type: ele.IvsType(key)}
	seen := make(map[int]bool)
	for _, c := range m.Elems {
		if !use(c) || !supports(c, key) {
			continue
		}
		for _, i := range c.RedIndx(key) {
			if !seen[i] {
				seen[i] = true
				o.RedIndx = append(o.RedIndx, i)
			}
		}
	}
	sort.Ints(o.RedIndx)
	o.Ncomp = len(o.RedIndx)
	o.Vals = make([][]float64, m.Nnodes)
	for k := range o.Vals {
		o.Vals[k] = make([]float64, o.Ncomp)
	}
	return
}

// supports tells whether a non-composite element reports key
func supports(c *ele.Caps, key string) bool {
	return c.Comp == nil && c.RedIndx(key) != nil
}

// positions maps the components of an element's layout into the common layout
func positions(idx, common []int) (pos []int) {
	pos = make([]int, len(idx))
	for i, v := range idx {
		pos[i] = sort.SearchInts(common, v)
	}
	return
}

// scatter expands values given in an element's layout into the common layout; missing
// components are zero
func scatter(vals []float64, pos []int, ncomp int) (res []float64, err error) {
	if len(vals) != len(pos) {
		return nil, chk.Err("%d components given; layout has %d", len(vals), len(pos))
	}
	res = make([]float64, ncomp)
	for i, v := range vals {
		res[pos[i]] = v
	}
	return
}

// nworkers returns the number of goroutines used to process n items
func nworkers(n int) int {
	return max(1, min(n, runtime.GOMAXPROCS(0)))
}
