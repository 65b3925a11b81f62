// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Ipoint holds integration point data: natural coordinates {r,s,t} and weight w
type Ipoint []float64 // [4]

// W returns the weight of integration point
func (o Ipoint) W() float64 { return o[3] }

// GetIps returns a set of integration points
//  Note: nip == 0 selects the default number of points of the shape
func GetIps(geoType string, nip int) (ips []Ipoint, err error) {
	var kind string
	switch geoType {
	case "lin2", "lin3":
		kind = "lin"
	case "tri3":
		kind = "tri"
	case "qua4":
		kind = "qua"
	default:
		return nil, chk.Err("cannot get integration points for shape %q", geoType)
	}
	if nip == 0 {
		nip = defaultNip[geoType]
	}
	ips, ok := ipsfactory[kind][nip]
	if !ok {
		return nil, chk.Err("cannot find %d integration points for shape %q", nip, geoType)
	}
	return
}

// defaultNip holds the default number of integration points
var defaultNip = map[string]int{
	"lin2": 1,
	"lin3": 2,
	"tri3": 1,
	"qua4": 4,
}

// ipsfactory holds integration points. kind => nip => points
var ipsfactory = map[string]map[int][]Ipoint{
	"lin": {
		1: {{0, 0, 0, 2}},
		2: {
			{-1.0 / math.Sqrt(3.0), 0, 0, 1},
			{+1.0 / math.Sqrt(3.0), 0, 0, 1},
		},
		3: {
			{-math.Sqrt(3.0 / 5.0), 0, 0, 5.0 / 9.0},
			{0, 0, 0, 8.0 / 9.0},
			{+math.Sqrt(3.0 / 5.0), 0, 0, 5.0 / 9.0},
		},
	},
	"tri": {
		1: {{1.0 / 3.0, 1.0 / 3.0, 0, 1.0 / 2.0}},
		3: {
			{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
		},
	},
	"qua": {
		1: {{0, 0, 0, 4}},
		4: {
			{-1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), 0, 1},
			{+1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), 0, 1},
			{+1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), 0, 1},
			{-1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), 0, 1},
		},
	},
}
