// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out writes results as VTK XML unstructured grids (one file per time step) and a
// collection file listing all time steps
package out

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/cpmech/femvtk/ele"
	"github.com/cpmech/femvtk/fem"
	"github.com/cpmech/femvtk/inp"
	"github.com/cpmech/femvtk/rcv"
	"github.com/cpmech/femvtk/rmap"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"go.uber.org/zap"
)

// Domain defines the nodes, elements and results exported
type Domain interface {
	rmap.Domain
	Ndim() int                                       // space dimension
	Regions() []int                                  // region ids in ascending order
	Dof(vid int, ukey string) (val float64, ok bool) // value of a degree of freedom at a vertex
	Solution() *ele.Solution                         // current solution
}

// State defines the stage of an exporter
//  Idle -> Initialized -> Exporting <-> Finalizing -> Terminated
//  Each DoOutput passes through Finalizing while the step file is closed and appended to the
//  collection, then returns to Exporting. Terminate stays in Finalizing while the collection file
//  is written; it remains there if writing fails
type State int

const (
	Idle State = iota
	Initialized
	Exporting
	Finalizing
	Terminated
)

func (o State) String() string {
	switch o {
	case Idle:
		return "idle"
	case Initialized:
		return "initialized"
	case Exporting:
		return "exporting"
	case Finalizing:
		return "finalizing"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Exporter writes the fields of a domain at each time step
type Exporter struct {
	dom   Domain
	log   *zap.Logger
	state State
	req   *inp.ExportData
	coll  Collection

	// smoother; allocated at first use
	once   sync.Once
	smo    rcv.Model
	smoErr error
	nfb    int // number of fallbacks in current step
}

// New returns a new exporter
func New(dom Domain, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{dom: dom, log: logger}
}

// State returns the current state
func (o *Exporter) State() State { return o.state }

// setState changes the current state
func (o *Exporter) setState(s State) {
	if s == o.state {
		return
	}
	o.log.Debug("exporter state", zap.Stringer("from", o.state), zap.Stringer("to", s))
	o.state = s
}

// Collection returns the data sets written so far
func (o *Exporter) Collection() *Collection { return &o.coll }

// Initialize checks and stores (a copy of) the export request and creates the output directory
func (o *Exporter) Initialize(req *inp.ExportData) (err error) {
	if o.state != Idle {
		return chk.Err("exporter cannot be initialised in state %q", o.state)
	}
	if req == nil {
		return chk.Err("export request is missing")
	}
	if req.FnKey == "" {
		return chk.Err("filename key of output files must be given")
	}
	for _, key := range req.PrimVars {
		if !ele.IsPrimary(key) {
			return chk.Err("%q is not a primary variable", key)
		}
	}
	for _, key := range append(append([]string{}, req.Vars...), req.CellVars...) {
		if ele.IsPrimary(key) {
			return chk.Err("%q is a primary variable; it must be listed in primary variables", key)
		}
		if ele.IvsType(key) == ele.Unknown {
			return chk.Err("%q is not a known internal variable", key)
		}
	}
	if _, err = rcv.ParseType(req.Stype); err != nil {
		return
	}
	cpy := req.GetCopy()
	if err = cpy.PostProcess(); err != nil {
		return
	}
	if err = cpy.MkDirOut(); err != nil {
		return
	}
	o.req = cpy
	o.setState(Initialized)
	o.log.Info("exporter initialised", zap.String("dirout", o.req.DirOut), zap.String("fnkey", o.req.FnKey),
		zap.String("stype", o.req.Stype), zap.Int("nvr", o.req.Nvr))
	return
}

// DoOutput writes all (virtual) regions of the current solution into one file. On success, the
// file is appended to the collection with the time multiplied by the time scale
func (o *Exporter) DoOutput(ts *fem.TimeStep) (err error) {

	// check
	if o.state != Initialized && o.state != Exporting {
		return chk.Err("exporter cannot write results in state %q", o.state)
	}
	time := ts.T * o.req.TimeScale
	if err = o.coll.Check(time); err != nil {
		return chk.Err("cannot write %v: %v", ts, err)
	}
	o.setState(Exporting)

	// pieces
	pieces, err := o.BuildPieces(o.dom.Solution())
	if err != nil {
		return chk.Err("cannot build pieces of %v:\n%v", ts, err)
	}

	// close step: write file and append to collection
	o.setState(Finalizing)
	defer o.setState(Exporting)
	var buf bytes.Buffer
	EncodeVtu(&buf, pieces)
	fn := io.Sf("%s.%d.vtu", o.req.FnKey, ts.Number)
	if err = writeFileAtomic(o.req.DirOut, fn, &buf); err != nil {
		return
	}
	if err = o.coll.Add(fn, time); err != nil {
		return
	}
	if o.req.Verbose {
		io.Pf("file <%s> written\n", filepath.Join(o.req.DirOut, fn))
	}
	o.log.Debug("step exported", zap.Int("step", ts.Number), zap.Float64("time", time),
		zap.Int("pieces", len(pieces)), zap.Int("fallbacks", o.nfb))
	return
}

// Terminate writes the collection file. Calling Terminate again does nothing
func (o *Exporter) Terminate() (err error) {
	switch o.state {
	case Terminated:
		return
	case Idle:
		o.setState(Terminated)
		return
	}
	o.setState(Finalizing)
	var buf bytes.Buffer
	o.coll.Encode(&buf)
	fn := o.req.FnKey + ".pvd"
	if err = writeFileAtomic(o.req.DirOut, fn, &buf); err != nil {
		return
	}
	o.setState(Terminated)
	if o.req.Verbose {
		io.Pforan("file <%s> written\n", filepath.Join(o.req.DirOut, fn))
	}
	return
}

// BuildPieces builds the pieces of all (virtual) regions in ascending order of region ids
func (o *Exporter) BuildPieces(sol *ele.Solution) (pieces []*Piece, err error) {
	if o.req == nil {
		return nil, chk.Err("exporter is not initialised")
	}
	o.nfb = 0
	for _, reg := range o.dom.Regions() {
		if o.req.Skip(reg) {
			continue
		}
		var parts [][]*ele.Caps
		if o.req.Nvr > 1 {
			if parts, err = rmap.Partition(o.dom.RegionCaps(reg), o.req.Nvr, o.req.Vregion); err != nil {
				return
			}
		}
		for vr := 1; vr <= o.req.Nvr; vr++ {
			var sel *rmap.Virtual
			if parts != nil {
				if len(parts[vr-1]) == 0 {
					o.log.Debug("empty virtual region", zap.Int("region", reg), zap.Int("vregion", vr))
					continue
				}
				sel = &rmap.Virtual{Of: o.req.Vregion, Num: vr}
			}
			p, err := o.buildPiece(reg, sel, sol)
			if err != nil {
				return nil, err
			}
			if p != nil {
				pieces = append(pieces, p)
			}
		}
	}
	return
}

// smoother returns the recovery model
func (o *Exporter) smoother() (rcv.Model, error) {
	o.once.Do(func() {
		typ, err := rcv.ParseType(o.req.Stype)
		if err != nil {
			o.smoErr = err
			return
		}
		o.smo, o.smoErr = rcv.New(typ, o.log)
		if o.smoErr == nil {
			o.smo.OnFallback(func(vid int, key string, err error) { o.nfb++ })
		}
	})
	return o.smo, o.smoErr
}

// piece ///////////////////////////////////////////////////////////////////////////////////////////

// buildPiece builds the piece of a (virtual) region; nil if the region has no cells
func (o *Exporter) buildPiece(reg int, sel *rmap.Virtual, sol *ele.Solution) (p *Piece, err error) {

	// node numbering
	m, err := rmap.Build(o.dom, reg, 0, o.req.RegionsToSkip, sel, o.log)
	if err != nil {
		return
	}
	if m.Ncells == 0 {
		return nil, nil
	}
	p = &Piece{Region: reg}
	if sel != nil {
		p.Vregion = sel.Num
	}

	// points and cells
	p.X = append(p.X, m.X...)
	var blocks []*block
	blockOf := make(map[*ele.Caps]*block)
	fitters := make(map[int][]*ele.Caps)
	for _, c := range m.Elems {
		if c.Comp != nil {
			b, err := newBlock(c, o.req, len(p.X), sol)
			if err != nil {
				return nil, err
			}
			p.X = append(p.X, b.dat.X...)
			b.addCells(p)
			blocks = append(blocks, b)
			blockOf[c] = b
			continue
		}
		verts := make([]int, len(c.Cell.Verts))
		for j, g := range c.Cell.Verts {
			verts[j] = m.Local(g)
			if c.Fit != nil {
				fitters[g] = append(fitters[g], c)
			}
		}
		p.AddCell(c.Cell.Id, c.VtkCode, verts)
	}

	// primary variables
	ndim := o.dom.Ndim()
	for _, key := range o.req.PrimVars {
		vt := ele.IvsType(key)
		a := &DataArray{Name: key, Ncomp: NumFullComps(vt)}
		dofs := ele.PrimaryDofs(key)
		if vt == ele.Vector && len(dofs) > ndim {
			dofs = dofs[:ndim]
		}
		for _, g := range m.L2G {
			a.Append(o.primary(g, key, dofs, fitters[g], sol))
		}
		for _, b := range blocks {
			b.pointVals(a, key, vt)
		}
		p.PData = append(p.PData, a)
	}

	// internal variables
	if len(o.req.Vars) > 0 {
		smo, err := o.smoother()
		if err != nil {
			return nil, err
		}
		for _, key := range o.req.Vars {
			res, err := smo.Recover(key, m, sol)
			if err != nil {
				return nil, chk.Err("cannot recover %q in region %d:\n%v", key, reg, err)
			}
			a := &DataArray{Name: key, Ncomp: NumFullComps(res.Type)}
			for k := 0; k < m.Nnodes; k++ {
				a.Append(MakeFullForm(res.Vals[k], res.Type, res.RedIndx))
			}
			for _, b := range blocks {
				b.pointVals(a, key, res.Type)
			}
			p.PData = append(p.PData, a)
		}
	}

	// cell variables
	for _, key := range o.req.CellVars {
		vt := ele.IvsType(key)
		a := &DataArray{Name: key, Ncomp: NumFullComps(vt)}
		for _, c := range m.Elems {
			if c.Comp != nil {
				blockOf[c].cellVals(a, key, vt)
				continue
			}
			val, err := cellValue(c, key, sol)
			if err != nil {
				return nil, err
			}
			a.Append(MakeFullForm(val, vt, c.RedIndx(key)))
		}
		p.CData = append(p.CData, a)
	}
	err = p.Check()
	return
}

// primary returns the value of a primary variable at a vertex: from the degrees of freedom or,
// if the vertex lacks them, the average of the best fits of the elements sharing the vertex
func (o *Exporter) primary(g int, key string, dofs []string, fitters []*ele.Caps, sol *ele.Solution) (val []float64) {
	val = make([]float64, len(dofs))
	found := true
	for i, dof := range dofs {
		v, ok := o.dom.Dof(g, dof)
		if !ok {
			found = false
			break
		}
		val[i] = v
	}
	if found {
		return
	}
	for i := range val {
		val[i] = 0
	}
	var cnt int
	for _, c := range fitters {
		v, ok := c.Fit.PrimaryAt(g, key, sol)
		if !ok {
			continue
		}
		for i := 0; i < len(val) && i < len(v); i++ {
			val[i] += v[i]
		}
		cnt++
	}
	if cnt > 0 {
		for i := range val {
			val[i] /= float64(cnt)
		}
	}
	return
}

// cellValue returns the value of a cell variable: the element's choice or the value at the first
// integration point; nil if not available
func cellValue(c *ele.Caps, key string, sol *ele.Solution) (val []float64, err error) {
	if c.Cval != nil {
		if val, err = c.Cval.CellValue(key, sol); err != nil || val != nil {
			return
		}
	}
	if c.Ips == nil || c.Ips.OutIpIndx(key) == nil {
		return nil, nil
	}
	M := ele.NewIpsMap()
	if err = c.Ips.OutIpVals(M, sol); err != nil {
		return nil, chk.Err("cannot get integration points' values of element %d:\n%v", c.Cell.Id, err)
	}
	if vals := (*M)[key]; len(vals) > 0 {
		val = vals[0]
	}
	return
}

// writeFileAtomic writes buffer into a temporary file and renames it to dir/fn
func writeFileAtomic(dir, fn string, buf *bytes.Buffer) (err error) {
	f, err := os.CreateTemp(dir, fn+".*.tmp")
	if err != nil {
		return chk.Err("cannot create file in %q: %v", dir, err)
	}
	tmp := f.Name()
	closed := false
	defer func() {
		if !closed {
			f.Close()
		}
		if err != nil {
			os.Remove(tmp)
		}
	}()
	if _, err = buf.WriteTo(f); err != nil {
		return chk.Err("cannot write file %q: %v", tmp, err)
	}
	closed = true
	if err = f.Close(); err != nil {
		return chk.Err("cannot close file %q: %v", tmp, err)
	}
	if err = os.Rename(tmp, filepath.Join(dir, fn)); err != nil {
		return chk.Err("cannot rename %q: %v", tmp, err)
	}
	return
}
