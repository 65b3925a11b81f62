// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"bytes"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Prm holds material parameter names and values
type Prm struct {
	N string  `yaml:"n"` // name of parameter
	V float64 `yaml:"v"` // value of parameter
}

// Prms holds many parameters
type Prms []*Prm

// Find finds a parameter by name. Returns nil if not found
func (o *Prms) Find(name string) *Prm {
	for _, p := range *o {
		if p.N == name {
			return p
		}
	}
	return nil
}

// GetValues gets the values of many parameters. Missing names are reported in the error
func (o *Prms) GetValues(names []string) (values []float64, err error) {
	values = make([]float64, len(names))
	var missing []string
	for i, name := range names {
		p := o.Find(name)
		if p == nil {
			missing = append(missing, name)
			continue
		}
		values[i] = p.V
	}
	if len(missing) > 0 {
		err = chk.Err("cannot find parameters %v", missing)
	}
	return
}

// String returns a summary of parameters
func (o Prms) String() string {
	var buf bytes.Buffer
	for i, p := range o {
		if i > 0 {
			io.Ff(&buf, ", ")
		}
		io.Ff(&buf, "%s=%g", p.N, p.V)
	}
	return buf.String()
}
