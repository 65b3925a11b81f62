// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

// State holds all continuum mechanics data, including for updating the state
type State struct {
	Sig  []float64 // σ: current Cauchy stress tensor (effective) [nsig]
	Eps  []float64 // ε: current total strain [nsig]
	Eps0 []float64 // ε0: initial strains [nsig]
}

// NewState allocates state structure for small strain analyses
func NewState(nsig int) *State {
	return &State{
		Sig:  make([]float64, nsig),
		Eps:  make([]float64, nsig),
		Eps0: make([]float64, nsig),
	}
}

// Set copies states
//  Note: this and other states must have been pre-allocated with the same sizes
func (o *State) Set(other *State) {
	copy(o.Sig, other.Sig)
	copy(o.Eps, other.Eps)
	copy(o.Eps0, other.Eps0)
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Sig))
	other.Set(o)
	return other
}
