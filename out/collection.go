// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Entry holds one data set of a collection
type Entry struct {
	File string  // file name relative to the collection file
	Time float64 // (scaled) time
}

// Collection holds the data sets written so far. Appends are serialised
type Collection struct {
	mu      sync.Mutex
	entries []Entry
}

// Add appends a data set
//  Note: time must not be lower than the time of the last entry
func (o *Collection) Add(file string, time float64) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err = o.check(time); err != nil {
		return
	}
	o.entries = append(o.entries, Entry{file, time})
	return
}

// Check tells whether an entry with the given time can be added
func (o *Collection) Check(time float64) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.check(time)
}

// Entries returns a copy of the entries
func (o *Collection) Entries() []Entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Entry{}, o.entries...)
}

// Encode writes the collection (PVD) file into buffer
func (o *Collection) Encode(buf *bytes.Buffer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	io.Ff(buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"Collection\" version=\"0.1\" byte_order=\"LittleEndian\">\n<Collection>\n")
	for _, e := range o.entries {
		io.Ff(buf, "<DataSet timestep=\"%.15g\" group=\"\" part=\"0\" file=\"%s\"/>\n", e.Time, e.File)
	}
	io.Ff(buf, "</Collection>\n</VTKFile>\n")
}

func (o *Collection) check(time float64) error {
	if n := len(o.entries); n > 0 && time < o.entries[n-1].Time {
		return chk.Err("time of data set (%g) is lower than the time of the last one (%g)", time, o.entries[n-1].Time)
	}
	return nil
}
