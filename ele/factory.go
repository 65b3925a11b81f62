// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"sort"

	"github.com/cpmech/femvtk/inp"
	"github.com/cpmech/gosl/chk"
)

// InfoFuncType defines a function that returns information about a certain element type
type InfoFuncType func(mdl *inp.Model, cell *inp.Cell, edat *inp.ElemData) *Info

// AllocatorType defines a function that allocates an element
type AllocatorType func(mdl *inp.Model, cell *inp.Cell, edat *inp.ElemData, x [][]float64) Element

// GetInfo returns information about elements from factory
func GetInfo(cell *inp.Cell, mdl *inp.Model) (info *Info, err error) {
	edat, ent, err := lookup(cell, mdl)
	if err != nil {
		return
	}
	if ent.info == nil {
		return nil, chk.Err("element type %q has no information function", edat.Type)
	}
	info = ent.info(mdl, cell, edat)
	if info == nil {
		err = chk.Err("info for element {type=%q, tag=%d, id=%d} is not available", edat.Type, cell.Tag, cell.Id)
		return
	}
	if len(info.Dofs) != len(cell.Verts) {
		err = chk.Err("info for element {type=%q, tag=%d, id=%d} lists dofs of %d vertices; cell has %d", edat.Type, cell.Tag, cell.Id, len(info.Dofs), len(cell.Verts))
	}
	return
}

// New returns a new element from from factory
func New(cell *inp.Cell, mdl *inp.Model) (ele Element, err error) {
	edat, ent, err := lookup(cell, mdl)
	if err != nil {
		return
	}
	if ent.alloc == nil {
		return nil, chk.Err("element type %q has no allocator", edat.Type)
	}
	x := mdl.Msh.ExtractCellCoords(cell.Id)
	ele = ent.alloc(mdl, cell, edat, x)
	if ele == nil {
		err = chk.Err("element {type=%q, tag=%d, id=%d} is not available", edat.Type, cell.Tag, cell.Id)
	}
	return
}

// SetInfoFunc sets a new callback function to return information about an element
func SetInfoFunc(elementName string, fcn InfoFuncType) {
	ent := register(elementName)
	if ent.info != nil {
		chk.Panic("cannot set information function for %q because element name exists already", elementName)
	}
	ent.info = fcn
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(elementName string, fcn AllocatorType) {
	ent := register(elementName)
	if ent.alloc != nil {
		chk.Panic("cannot set allocator function for %q because element name exists already", elementName)
	}
	ent.alloc = fcn
}

// Types returns the names of registered elements in alphabetical order
func Types() (names []string) {
	for name := range factory {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// factory ////////////////////////////////////////////////////////////////////////////////////////

// entry holds the callbacks of one element type
type entry struct {
	info  InfoFuncType
	alloc AllocatorType
}

// factory holds all element types; name => callbacks
var factory = make(map[string]*entry)

func register(name string) *entry {
	ent, ok := factory[name]
	if !ok {
		ent = new(entry)
		factory[name] = ent
	}
	return ent
}

// lookup finds the element data of a cell and the callbacks of its element type
func lookup(cell *inp.Cell, mdl *inp.Model) (edat *inp.ElemData, ent *entry, err error) {
	edat = mdl.Etag2data(cell.Tag)
	if edat == nil {
		err = chk.Err("cannot get data for element {tag=%d, id=%d}", cell.Tag, cell.Id)
		return
	}
	ent, ok := factory[edat.Type]
	if !ok {
		err = chk.Err("element type %q of cell %d is not available. options: %v", edat.Type, cell.Id, Types())
	}
	return
}
