// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"

	"github.com/cpmech/gosl/io"
)

// EncodeVtu writes pieces as a VTK XML unstructured grid (ascii) into buffer
func EncodeVtu(buf *bytes.Buffer, pieces []*Piece) {
	io.Ff(buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	for _, p := range pieces {
		io.Ff(buf, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", p.Npoints(), p.Ncells())
		topology(buf, p)
		pdata_write(buf, p)
		cdata_write(buf, p)
		io.Ff(buf, "</Piece>\n")
	}
	io.Ff(buf, "</UnstructuredGrid>\n</VTKFile>\n")
}

// topology ////////////////////////////////////////////////////////////////////////////////////////

func topology(buf *bytes.Buffer, p *Piece) {

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, x := range p.X {
		for i := 0; i < 3; i++ {
			var c float64
			if i < len(x) {
				c = x[i]
			}
			io.Ff(buf, "%23.15e ", c)
		}
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, v := range p.Conn {
		io.Ff(buf, "%d ", v)
	}

	// offsets
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for _, offset := range p.Offsets {
		io.Ff(buf, "%d ", offset)
	}

	// types
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for _, code := range p.Types {
		io.Ff(buf, "%d ", code)
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")
}

// points and cells data ///////////////////////////////////////////////////////////////////////////

func pdata_write(buf *bytes.Buffer, p *Piece) {
	io.Ff(buf, "<PointData>\n")
	for _, a := range p.PData {
		array_write(buf, a)
	}
	io.Ff(buf, "</PointData>\n")
}

func cdata_write(buf *bytes.Buffer, p *Piece) {
	io.Ff(buf, "<CellData>\n")

	// ids
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"eid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, cid := range p.Cids {
		io.Ff(buf, "%d ", cid)
	}
	io.Ff(buf, "\n</DataArray>\n")

	// values
	for _, a := range p.CData {
		array_write(buf, a)
	}
	io.Ff(buf, "</CellData>\n")
}

func array_write(buf *bytes.Buffer, a *DataArray) {
	io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"%d\" format=\"ascii\">\n", a.Name, a.Ncomp)
	for _, v := range a.Vals {
		io.Ff(buf, "%23.15e ", v)
	}
	io.Ff(buf, "\n</DataArray>\n")
}
