// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/femvtk/inp"
	"github.com/cpmech/gosl/io"
)

// Dof holds information about a degree-of-freedom == solution variable y
type Dof struct {
	Key string // primary variable key; e.g. "ux"
	Eq  int    // equation number
}

// Node holds node dofs information
type Node struct {
	Dofs []*Dof    // degrees-of-freedom == solution variables
	Vert *inp.Vert // pointer to vertex
}

// NewNode allocates a new Node
func NewNode(v *inp.Vert) *Node {
	return &Node{Vert: v}
}

// AddDofAndEq adds a new dof to node if it doesn't exist already
//  Output: the next equation number
func (o *Node) AddDofAndEq(ukey string, eqnum int) (nexteq int) {
	if o.GetDof(ukey) != nil {
		return eqnum
	}
	o.Dofs = append(o.Dofs, &Dof{ukey, eqnum})
	return eqnum + 1
}

// GetDof returns the Dof structure for given Dof name (ukey)
//  Note: returns nil if not found
func (o *Node) GetDof(ukey string) *Dof {
	for _, dof := range o.Dofs {
		if dof.Key == ukey {
			return dof
		}
	}
	return nil
}

// GetEq returns equation number for given Dof name (ukey)
//  Note: returns -1 if not found
func (o *Node) GetEq(ukey string) int {
	if dof := o.GetDof(ukey); dof != nil {
		return dof.Eq
	}
	return -1
}

// String returns a representation of this node
func (o *Node) String() string {
	l := io.Sf("{\"vid\":%d, \"dofs\":[", o.Vert.Id)
	for i, dof := range o.Dofs {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("{\"key\":%q, \"eq\":%d}", dof.Key, dof.Eq)
	}
	return l + "]}"
}
