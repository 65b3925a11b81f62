// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables overriding export settings
const EnvPrefix = "FEMVTK_"

// ExportData holds the export request: which fields are written and how
type ExportData struct {
	Vars          []string       `koanf:"vars"`          // internal variables recovered at nodes; e.g. "sig", "eps"
	PrimVars      []string       `koanf:"primvars"`      // primary variables; e.g. "u"
	CellVars      []string       `koanf:"cellvars"`      // cell variables (not smoothed)
	Stype         string         `koanf:"stype"`         // smoother type; e.g. "avg", "patch"
	RegionsToSkip []int          `koanf:"regionstoskip"` // regions not exported
	Nvr           int            `koanf:"nvr"`           // number of virtual regions
	VrmapIn       map[string]int `koanf:"vrmap"`         // cell id => virtual region (1..nvr); missing => 1
	TimeScale     float64        `koanf:"timescale"`     // factor applied to times in the collection file
	DirOut        string         `koanf:"dirout"`        // output directory
	FnKey         string         `koanf:"fnkey"`         // filename key; empty => model key
	Verbose       bool           `koanf:"verbose"`       // show messages

	// derived
	Vrmap map[int]int `koanf:"-"` // cell id => virtual region
}

// ExportDefaults returns the default export settings
func ExportDefaults() map[string]interface{} {
	return map[string]interface{}{
		"vars":          []string{},
		"primvars":      []string{"u"},
		"cellvars":      []string{},
		"stype":         "avg",
		"regionstoskip": []int{},
		"nvr":           1,
		"timescale":     1.0,
		"dirout":        "/tmp/femvtk",
		"fnkey":         "",
		"verbose":       false,
	}
}

// LoadExportData loads the export settings. Precedence (highest to lowest):
//  flags > env vars (FEMVTK_*) > config file > defaults
//  cfgFile and flags may be empty/nil
func LoadExportData(cfgFile string, flags *pflag.FlagSet) (o *ExportData, err error) {
	k := koanf.New(".")

	// defaults
	if err = k.Load(confmap.Provider(ExportDefaults(), "."), nil); err != nil {
		return nil, chk.Err("failed to load defaults: %v", err)
	}

	// file
	if cfgFile != "" {
		if err = k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, chk.Err("error reading export config file %s: %v", cfgFile, err)
		}
	}

	// environment: FEMVTK_TIMESCALE -> timescale
	if err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, chk.Err("failed to load env vars: %v", err)
	}

	// flags; only those explicitly set
	if flags != nil {
		if err = k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "")
			if _, ok := ExportDefaults()[key]; !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, chk.Err("failed to load flags: %v", err)
		}
	}

	o = new(ExportData)
	if err = k.Unmarshal("", o); err != nil {
		return nil, chk.Err("unable to decode export config: %v", err)
	}
	err = o.PostProcess()
	return
}

// PostProcess checks values and computes derived data
func (o *ExportData) PostProcess() (err error) {
	if o.Nvr < 1 {
		return chk.Err("number of virtual regions must be at least 1; nvr = %d is invalid", o.Nvr)
	}
	if o.TimeScale <= 0 {
		return chk.Err("time scale must be positive; timescale = %g is invalid", o.TimeScale)
	}
	if o.DirOut == "" {
		return chk.Err("output directory must be given")
	}
	o.Vrmap = make(map[int]int, len(o.VrmapIn))
	for key, vr := range o.VrmapIn {
		cid, e := strconv.Atoi(key)
		if e != nil || cid < 0 {
			return chk.Err("vrmap keys must be cell ids; %q is invalid", key)
		}
		if vr < 1 || vr > o.Nvr {
			return chk.Err("vrmap: virtual region of cell %d must be in [1, %d]; got %d", cid, o.Nvr, vr)
		}
		o.Vrmap[cid] = vr
	}
	sort.Ints(o.RegionsToSkip)
	return
}

// Skip tells whether a region is listed in RegionsToSkip
func (o *ExportData) Skip(reg int) bool {
	i := sort.SearchInts(o.RegionsToSkip, reg)
	return i < len(o.RegionsToSkip) && o.RegionsToSkip[i] == reg
}

// Vregion returns the virtual region (1..nvr) of a cell
func (o *ExportData) Vregion(cid int) int {
	if vr, ok := o.Vrmap[cid]; ok {
		return vr
	}
	return 1
}

// GetCopy returns a deep copy of this request
func (o *ExportData) GetCopy() *ExportData {
	c := *o
	c.Vars = append([]string{}, o.Vars...)
	c.PrimVars = append([]string{}, o.PrimVars...)
	c.CellVars = append([]string{}, o.CellVars...)
	c.RegionsToSkip = append([]int{}, o.RegionsToSkip...)
	c.VrmapIn = make(map[string]int, len(o.VrmapIn))
	for key, vr := range o.VrmapIn {
		c.VrmapIn[key] = vr
	}
	c.Vrmap = make(map[int]int, len(o.Vrmap))
	for cid, vr := range o.Vrmap {
		c.Vrmap[cid] = vr
	}
	return &c
}

// MkDirOut creates the output directory
func (o *ExportData) MkDirOut() (err error) {
	err = os.MkdirAll(o.DirOut, 0777)
	if err != nil {
		return chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
	}
	return
}
