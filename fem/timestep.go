// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/io"

// TimeStep identifies the results being exported
type TimeStep struct {
	Number int     // step number; used in file names
	T      float64 // simulation time
}

func (o TimeStep) String() string {
	return io.Sf("step %d (t = %g)", o.Number, o.T)
}
