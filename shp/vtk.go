// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// VTK cell types
const (
	VTK_VERTEX               = 1
	VTK_LINE                 = 3
	VTK_TRIANGLE             = 5
	VTK_QUAD                 = 9
	VTK_TETRA                = 10
	VTK_HEXAHEDRON           = 12
	VTK_WEDGE                = 13
	VTK_PYRAMID              = 14
	VTK_QUADRATIC_EDGE       = 21
	VTK_QUADRATIC_TRIANGLE   = 22
	VTK_QUADRATIC_QUAD       = 23
	VTK_QUADRATIC_TETRA      = 24
	VTK_QUADRATIC_HEXAHEDRON = 25
)

// vtkinfo holds the VTK code and number of vertices of each geometry
var vtkinfo = map[string]struct{ code, nverts int }{
	"pnt":   {VTK_VERTEX, 1},
	"lin2":  {VTK_LINE, 2},
	"lin3":  {VTK_QUADRATIC_EDGE, 3},
	"tri3":  {VTK_TRIANGLE, 3},
	"tri6":  {VTK_QUADRATIC_TRIANGLE, 6},
	"qua4":  {VTK_QUAD, 4},
	"qua8":  {VTK_QUADRATIC_QUAD, 8},
	"tet4":  {VTK_TETRA, 4},
	"tet10": {VTK_QUADRATIC_TETRA, 10},
	"hex8":  {VTK_HEXAHEDRON, 8},
	"hex20": {VTK_QUADRATIC_HEXAHEDRON, 20},
	"wed6":  {VTK_WEDGE, 6},
	"pyr5":  {VTK_PYRAMID, 5},
}

// GetVtkInfo returns the VTK cell code and the number of vertices of a geometry type.
// It returns code == -1 if geoType cannot be represented by a single VTK cell
func GetVtkInfo(geoType string) (code, nverts int) {
	if info, ok := vtkinfo[geoType]; ok {
		return info.code, info.nverts
	}
	return -1, 0
}

// VtkNverts returns the number of vertices of a VTK cell; -1 if the code is unknown
func VtkNverts(code int) int {
	for _, info := range vtkinfo {
		if info.code == code {
			return info.nverts
		}
	}
	return -1
}
