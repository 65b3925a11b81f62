// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/femvtk/fem"
	"github.com/cpmech/femvtk/inp"
	"github.com/cpmech/femvtk/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version of femvtk
const Version = "1.0.0"

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		io.PfRed("\nERROR: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "femvtk",
		Short: "femvtk writes finite element results as VTK files",
		Long: `femvtk reads a model (mesh, elements, materials and the nodal results of each time step)
and writes one VTK unstructured grid per time step plus a collection file (.pvd)
that can be opened with ParaView.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err = config.Build()
			if err != nil {
				return chk.Err("failed to initialise logger: %v", err)
			}
			return
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show messages")
	root.AddCommand(newExportCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			io.Pf("femvtk %s\n", Version)
		},
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export MODEL.yaml",
		Short: "Write the results of all time steps",
		Long: `Writes <dirout>/<fnkey>.<step>.vtu for each time step and <dirout>/<fnkey>.pvd.
Settings are taken from (highest precedence first) flags, FEMVTK_* environment
variables, the config file and defaults.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfgFile, "config", "c", "", "export config file (yaml)")
	f.String("dirout", "", "output directory")
	f.String("fnkey", "", "filename key of output files (default: model's filename key)")
	f.String("stype", "", "smoother type: avg or patch")
	f.Float64("timescale", 0, "factor applied to times in the collection file")
	f.Int("nvr", 0, "number of virtual regions")
	f.StringSlice("vars", nil, "internal variables recovered at nodes; e.g. sig,eps")
	f.StringSlice("primvars", nil, "primary variables; e.g. u")
	f.StringSlice("cellvars", nil, "cell variables")
	f.IntSlice("regionstoskip", nil, "regions not exported")
	return cmd
}

func runExport(cmd *cobra.Command, fnmodel string) (err error) {

	// settings
	req, err := inp.LoadExportData(cfgFile, cmd.Flags())
	if err != nil {
		return
	}
	if verbose {
		req.Verbose = true
	}

	// model and domain
	mdl, err := inp.ReadModel(fnmodel)
	if err != nil {
		return
	}
	if req.FnKey == "" {
		req.FnKey = mdl.Key
	}
	dom, err := fem.NewDomain(mdl, logger, req.Verbose)
	if err != nil {
		return
	}
	if req.Verbose {
		io.Pf("> %d vertices, %d cells, %d equations, %d steps\n", dom.Nverts(), len(mdl.Msh.Cells), dom.Ny, dom.Nsteps())
	}

	// output
	e := out.New(dom, logger)
	if err = e.Initialize(req); err != nil {
		return
	}
	for i := 0; i < dom.Nsteps(); i++ {
		ts, err := dom.SetStep(i)
		if err != nil {
			return err
		}
		if err = e.DoOutput(ts); err != nil {
			return err
		}
	}
	return e.Terminate()
}
