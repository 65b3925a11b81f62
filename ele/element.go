// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements finite elements
package ele

// Element defines what all elements must implement
type Element interface {
	Id() int                           // returns the cell Id
	SetEqs(eqs [][]int) (err error)    // set equations; eqs[nverts][ndofs at vertex]
	Update(sol *Solution) (err error) // computes the state @ integration points for given solution
}

// CanOutputIps defines elements that can output integration points' values
type CanOutputIps interface {
	Id() int                                       // returns the cell Id
	OutIpCoords() [][]float64                      // coordinates of integration points [nip][ndim]
	OutIpKeys() []string                           // integration points' keys; e.g. "sig", "eps"
	OutIpIndx(key string) []int                    // reduced index map of 'key' values; nil if key is not supported
	OutIpVals(M *IpsMap, sol *Solution) (err error) // integration points' values corresponding to keys
}

// NodalAverager defines elements that estimate internal values at their own vertices (e.g. by
// extrapolation from integration points); these estimates are averaged over the elements sharing a node
type NodalAverager interface {
	NodalValues(key string, sol *Solution) (vals [][]float64, err error) // [nverts][ncomp]; nil if key is not supported
}

// PatchRecoverer defines elements that take part in least-squares patch recovery; the
// samples are the integration points' values given by CanOutputIps
type PatchRecoverer interface {
	PatchOrder() int // order of the complete polynomial fitted over patches
}

// CellValuer defines elements that choose the representative value of a cell variable
type CellValuer interface {
	CellValue(key string, sol *Solution) (val []float64, err error) // nil if key is not supported
}

// PrimaryFitter defines elements whose vertices may lack the degrees of freedom of a primary
// variable (e.g. geometry-only vertices); these elements give a best fit of the variable there
type PrimaryFitter interface {
	PrimaryAt(vid int, key string, sol *Solution) (val []float64, ok bool) // vid is the global vertex id
}

// CompositeExporter defines elements exported as several cells with their own points
type CompositeExporter interface {
	NumSubCells() int                                                                      // number of cells exported
	NumSubPoints() int                                                                     // number of points exported
	CompositeData(prim, ivs, cells []string, sol *Solution) (dat *CompositeData, err error) // points, cells and values
}

// CompositeData holds the output of a composite element
//  Note: values are given in reduced form; RedIndx holds the reduced index map of each key
type CompositeData struct {
	X         [][]float64            // [nsubpoints][ndim] coordinates of points
	Cells     [][]int                // [nsubcells][nverts] connectivity; indices into X
	Types     []int                  // [nsubcells] VTK cell types
	PointVals map[string][][]float64 // key => [nsubpoints][ncomp] values @ points
	CellVals  map[string][][]float64 // key => [nsubcells][ncomp] values @ cells
	RedIndx   map[string][]int       // key => reduced index map
}
