// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rmap numbers the nodes of a region (or virtual region) locally for output
package rmap

import (
	"github.com/cpmech/femvtk/ele"
	"github.com/cpmech/gosl/chk"
	"go.uber.org/zap"
)

// Domain defines the element iteration needed to number the nodes of regions
type Domain interface {
	Nverts() int                    // number of vertices in mesh
	VertCoords(vid int) []float64   // coordinates of a vertex
	RegionCaps(reg int) []*ele.Caps // elements of a region (sorted by cell id)
}

// Virtual selects the elements of one virtual region
type Virtual struct {
	Of  func(cid int) int // cell id => virtual region number
	Num int               // selected virtual region
}

// Map holds the local numbering of the nodes of one (virtual) region
//  Note: local numbers start at Base+1; G2L[g] == 0 means that vertex g is not in the region
type Map struct {
	Region  int         // region id
	Base    int         // numbering offset
	G2L     []int       // [nverts] global vertex id => local number
	L2G     []int       // [nnodes] L2G[k-1] is the global id of local number Base+k
	X       [][]float64 // [nnodes] coordinates of nodes in local order
	Nnodes  int         // number of region nodes
	Ncells  int         // number of cells written, including sub-cells of composite elements
	Npoints int         // number of points written: Nnodes plus the points of composite elements
	Elems   []*ele.Caps // exported elements
	Skipped []int       // ids of cells whose geometry cannot be exported
}

// Build numbers the nodes of region reg in first-seen order
//  Input:
//   dom  -- domain
//   reg  -- region id
//   base -- numbering offset
//   skip -- regions to skip. Unknown ids are ignored
//   vr   -- virtual region selector; nil => the whole region
//   log  -- logger; nil => no warnings
func Build(dom Domain, reg, base int, skip []int, vr *Virtual, log *zap.Logger) (o *Map, err error) {

	// new map
	if log == nil {
		log = zap.NewNop()
	}
	nverts := dom.Nverts()
	o = &Map{Region: reg, Base: base, G2L: make([]int, nverts)}
	for _, r := range skip {
		if r == reg {
			return
		}
	}

	// elements
	for _, c := range dom.RegionCaps(reg) {
		if vr != nil && vr.Of != nil && vr.Of(c.Cell.Id) != vr.Num {
			continue
		}
		if !c.Exportable() {
			o.Skipped = append(o.Skipped, c.Cell.Id)
			log.Warn("cell skipped: geometry has no VTK cell type",
				zap.Int("cell", c.Cell.Id), zap.String("type", c.Cell.Type), zap.Int("region", reg))
			continue
		}
		o.Elems = append(o.Elems, c)
		o.Ncells += c.Ncells()
		if c.Comp != nil {
			o.Npoints += c.Comp.NumSubPoints()
			continue
		}
		for _, g := range c.Cell.Verts {
			if g < 0 || g >= nverts {
				return nil, chk.Err("cell %d refers to vertex %d which is not in the mesh", c.Cell.Id, g)
			}
			if o.G2L[g] == 0 {
				o.Nnodes++
				o.G2L[g] = base + o.Nnodes
				o.L2G = append(o.L2G, g)
				o.X = append(o.X, dom.VertCoords(g))
			}
		}
	}
	o.Npoints += o.Nnodes
	return
}

// Local returns the position of vertex g in L2G; -1 if g is not in the region
func (o *Map) Local(g int) int {
	if g < 0 || g >= len(o.G2L) || o.G2L[g] == 0 {
		return -1
	}
	return o.G2L[g] - o.Base - 1
}

// Partition distributes the elements of a region among nvr virtual regions
//  Input:
//   caps -- elements of one real region
//   nvr  -- number of virtual regions
//   of   -- cell id => virtual region number (1..nvr)
//  Output:
//   parts -- [nvr] elements of each virtual region; parts[i] holds virtual region i+1
func Partition(caps []*ele.Caps, nvr int, of func(cid int) int) (parts [][]*ele.Caps, err error) {
	if nvr < 1 {
		return nil, chk.Err("number of virtual regions must be at least 1; nvr = %d is invalid", nvr)
	}
	parts = make([][]*ele.Caps, nvr)
	for _, c := range caps {
		v := 1
		if of != nil {
			v = of(c.Cell.Id)
		}
		if v < 1 || v > nvr {
			return nil, chk.Err("cell %d is mapped to virtual region %d which is not in [1, %d]", c.Cell.Id, v, nvr)
		}
		parts[v-1] = append(parts[v-1], c)
	}
	return
}
