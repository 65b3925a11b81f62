// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the solution data @ nodes.
//
//  y = { u } (ny x 1)
//
type Solution struct {

	// current state
	T float64   // current time
	Y []float64 // DOFs (solution variables); e.g. y = {u}

	// problem definition and constants
	Pstress bool // [from Model] plane-stress
}

// Reset clear values
func (o *Solution) Reset() {
	o.T = 0
	for i := 0; i < len(o.Y); i++ {
		o.Y[i] = 0
	}
}
