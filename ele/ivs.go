// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// ValueType defines the kind of value of an output variable
type ValueType int

// value types
const (
	Unknown   ValueType = iota // not in table
	Scalar                     // one component
	Vector                     // up to 3 components {x, y, z}
	SymTensor                  // symmetric second order tensor in reduced (Voigt) storage
	Tensor                     // second order tensor; reduced entries scattered to 3x3 positions
)

// String returns the name of the value type
func (o ValueType) String() string {
	switch o {
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	case SymTensor:
		return "symtensor"
	case Tensor:
		return "tensor"
	}
	return "unknown"
}

// ivstypes maps internal and primary variables keys to value types
var ivstypes = map[string]ValueType{
	"sig": SymTensor, // Cauchy stress
	"eps": SymTensor, // total strain
	"svm": Scalar,    // von Mises stress
	"n":   Scalar,    // axial force of rods and trusses
	"u":   Vector,    // displacements
}

// primdofs maps primary variables keys to degrees of freedom keys
var primdofs = map[string][]string{
	"u": {"ux", "uy", "uz"},
}

// IvsType returns the value type of a variable; Unknown if the key is not in table
func IvsType(key string) ValueType {
	if vt, ok := ivstypes[key]; ok {
		return vt
	}
	return Unknown
}

// PrimaryDofs returns the dof keys of a primary variable; e.g. "u" => {"ux", "uy", "uz"}
//  Note: returns nil if key is not a primary variable
func PrimaryDofs(key string) []string {
	return primdofs[key]
}

// IsPrimary tells whether key is a primary variable
func IsPrimary(key string) bool {
	_, ok := primdofs[key]
	return ok
}
