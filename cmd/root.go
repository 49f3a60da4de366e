/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/notargets/fastsf/InputParameters"
	"github.com/notargets/fastsf/readfiles"
	"github.com/notargets/fastsf/sfunc"
)

const paraPath = "in/para.yaml"

// RunNames carries the dataset base names for input fields and output
// tensors.
type RunNames struct {
	UName, VName, WName, TName    string
	PllBase, PerpBase, ScalarBase string
}

var rootCmd = &cobra.Command{
	Use:   "fastsf",
	Short: "Structure functions of gridded velocity and scalar turbulence fields",
	Long: `
Computes velocity and scalar structure functions of orders q1..q2 over 2D or
3D gridded field data, distributed over SPMD worker ranks.

fastsf `,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntP("nx", "X", 0, "number of grid points in x")
	rootCmd.Flags().IntP("ny", "Y", 0, "number of grid points in y")
	rootCmd.Flags().IntP("nz", "Z", 0, "number of grid points in z")
	rootCmd.Flags().Float64P("lx", "x", 0, "domain extent in x")
	rootCmd.Flags().Float64P("ly", "y", 0, "domain extent in y")
	rootCmd.Flags().Float64P("lz", "z", 0, "domain extent in z")
	rootCmd.Flags().IntP("procs-x", "p", 0, "number of processors in x direction")
	rootCmd.Flags().IntP("q1", "1", 0, "lowest structure function order")
	rootCmd.Flags().IntP("q2", "2", 0, "highest structure function order")
	rootCmd.Flags().StringP("test", "t", "", "test mode: true|1|false|0")
	rootCmd.Flags().StringP("scalar", "s", "", "scalar field input: true|1|false|0")
	rootCmd.Flags().StringP("two-dim", "d", "", "2D input data: true|1|false|0")
	rootCmd.Flags().StringP("longitudinal", "l", "", "longitudinal only: true|1|false|0")
	rootCmd.Flags().StringP("uname", "U", "U.V1r", "dataset base name of the x velocity component")
	rootCmd.Flags().StringP("vname", "V", "U.V2r", "dataset base name of the y velocity component")
	rootCmd.Flags().StringP("wname", "W", "U.V3r", "dataset base name of the z velocity component")
	rootCmd.Flags().StringP("scalar-name", "T", "T.Fr", "dataset base name of the scalar field")
	rootCmd.Flags().StringP("perp-base", "P", "SF_Grid_perp", "output base name for transverse tensors")
	rootCmd.Flags().StringP("pll-base", "L", "SF_Grid_pll", "output base name for longitudinal tensors")
	rootCmd.Flags().StringP("scalar-base", "M", "SF_Grid_scalar", "output base name for scalar tensors")
	rootCmd.Flags().IntP("np", "n", 0, "total number of worker ranks (default: procs-x)")
	rootCmd.Flags().Bool("profile", false, "write a CPU profile under out/")
	rootCmd.Flags().Bool("verbose", false, "debug diagnostics")
}

// processInput loads in/para.yaml and overlays the command line options
// onto it, producing the resolved Config and run names.
func processInput(cmd *cobra.Command) (cfg *sfunc.Config, names *RunNames, err error) {
	ip, err := InputParameters.ReadParameters(paraPath)
	if err != nil {
		return nil, nil, err
	}
	cfg = &sfunc.Config{
		Nx:       ip.Grid.Nx,
		Ny:       ip.Grid.Ny,
		Nz:       ip.Grid.Nz,
		Lx:       ip.DomainDimension.Lx,
		Ly:       ip.DomainDimension.Ly,
		Lz:       ip.DomainDimension.Lz,
		Q1:       ip.StructureFunction.Q1,
		Q2:       ip.StructureFunction.Q2,
		Px:       ip.Program.ProcessorsX,
		Scalar:   ip.Program.ScalarSwitch,
		TwoDim:   ip.Program.TwoDSwitch,
		LongOnly: ip.Program.OnlyLongitudinal,
		Test:     ip.Test.TestSwitch,
	}
	flags := cmd.Flags()
	overlayInt := func(name string, dst *int) {
		if flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}
	overlayFloat := func(name string, dst *float64) {
		if flags.Changed(name) {
			*dst, _ = flags.GetFloat64(name)
		}
	}
	overlayBool := func(name string, dst *bool) error {
		if !flags.Changed(name) {
			return nil
		}
		s, _ := flags.GetString(name)
		v, err := InputParameters.StrToBool(s)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	overlayInt("nx", &cfg.Nx)
	overlayInt("ny", &cfg.Ny)
	overlayInt("nz", &cfg.Nz)
	overlayFloat("lx", &cfg.Lx)
	overlayFloat("ly", &cfg.Ly)
	overlayFloat("lz", &cfg.Lz)
	overlayInt("procs-x", &cfg.Px)
	overlayInt("q1", &cfg.Q1)
	overlayInt("q2", &cfg.Q2)
	for name, dst := range map[string]*bool{
		"test":         &cfg.Test,
		"scalar":       &cfg.Scalar,
		"two-dim":      &cfg.TwoDim,
		"longitudinal": &cfg.LongOnly,
	} {
		if err = overlayBool(name, dst); err != nil {
			return nil, nil, err
		}
	}
	cfg.P = cfg.Px
	overlayInt("np", &cfg.P)
	if cfg.P == 0 {
		cfg.P = cfg.Px
	}
	cfg.SetSpacings()

	names = &RunNames{}
	names.UName, _ = flags.GetString("uname")
	names.VName, _ = flags.GetString("vname")
	names.WName, _ = flags.GetString("wname")
	names.TName, _ = flags.GetString("scalar-name")
	names.PllBase, _ = flags.GetString("pll-base")
	names.PerpBase, _ = flags.GetString("perp-base")
	names.ScalarBase, _ = flags.GetString("scalar-base")
	return
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	logCfg := zap.NewDevelopmentConfig()
	if !verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	lg, err := logCfg.Build()
	if err != nil {
		return nil, err
	}
	return lg.Sugar(), nil
}

func run(cmd *cobra.Command) (err error) {
	startTotal := time.Now()
	cfg, names, err := processInput(cmd)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	lg, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer lg.Sync()
	if prof, _ := cmd.Flags().GetBool("profile"); prof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("out")).Stop()
	}
	if verbose {
		printParams(cfg)
	}

	fmt.Printf("\nNumber of processors in x direction: %d\n", cfg.Px)
	if cfg.TwoDim {
		fmt.Printf("Number of processors in z direction: %d\n", cfg.Py())
	} else {
		fmt.Printf("Number of processors in y direction: %d\n", cfg.Py())
	}
	if err = cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! %s! Aborting..\n", err)
		return err
	}

	fields, err := loadFields(cfg, names)
	if err != nil {
		var ce *readfiles.CompatibilityError
		if errors.As(err, &ce) {
			fmt.Fprintf(os.Stderr, "\n%s\n\n", ce.Msg)
			fmt.Fprint(os.Stderr, readfiles.Checklist)
		}
		return err
	}

	startParallel := time.Now()
	res, err := sfunc.Compute(cfg, fields, lg)
	if err != nil {
		return err
	}
	elapsedParallel := time.Since(startParallel)

	if err = writeResults(cfg, names, res); err != nil {
		return err
	}
	if cfg.Test {
		if err = runTestCases(cfg, names); err != nil {
			return err
		}
	}
	fmt.Printf("\nTime elapsed for the parallel part: %g\n", elapsedParallel.Seconds())
	fmt.Printf("\nTotal time elapsed: %g\n", time.Since(startTotal).Seconds())
	fmt.Printf("\nProgram ends.\n")
	return nil
}

func printParams(cfg *sfunc.Config) {
	fmt.Printf("[%d %d %d]\t\t= Nx Ny Nz\n", cfg.Nx, cfg.Ny, cfg.Nz)
	fmt.Printf("[%8.5f %8.5f %8.5f]\t= Lx Ly Lz\n", cfg.Lx, cfg.Ly, cfg.Lz)
	fmt.Printf("[%d %d]\t\t\t= q1 q2\n", cfg.Q1, cfg.Q2)
	fmt.Printf("[%v %v %v %v]\t= scalar 2D long-only test\n",
		cfg.Scalar, cfg.TwoDim, cfg.LongOnly, cfg.Test)
	fmt.Printf("[%d %d]\t\t\t= P px\n", cfg.P, cfg.Px)
}

// loadFields generates the analytic TEST fields or reads the configured
// HDF5 inputs from in/.
func loadFields(cfg *sfunc.Config, names *RunNames) (f *sfunc.Fields, err error) {
	if cfg.Test {
		fmt.Printf("\nWARNING: The code is running in TEST mode. It will generate velocity / scalar fields and will take them as inputs.\n")
		return sfunc.GenerateFields(cfg), nil
	}
	fmt.Printf("Reading from the hdf5 files\n")
	f = &sfunc.Fields{}
	switch {
	case cfg.TwoDim && cfg.Scalar:
		f.T2, err = readfiles.Read2D("in/", names.TName, cfg.Nx, cfg.Nz)
	case cfg.TwoDim:
		if f.Ux2, err = readfiles.Read2D("in/", names.UName, cfg.Nx, cfg.Nz); err != nil {
			return nil, err
		}
		f.Uz2, err = readfiles.Read2D("in/", names.WName, cfg.Nx, cfg.Nz)
	case cfg.Scalar:
		f.T3, err = readfiles.Read3D("in/", names.TName, cfg.Nx, cfg.Ny, cfg.Nz)
	default:
		if f.Ux3, err = readfiles.Read3D("in/", names.UName, cfg.Nx, cfg.Ny, cfg.Nz); err != nil {
			return nil, err
		}
		if f.Uy3, err = readfiles.Read3D("in/", names.VName, cfg.Nx, cfg.Ny, cfg.Nz); err != nil {
			return nil, err
		}
		f.Uz3, err = readfiles.Read3D("in/", names.WName, cfg.Nx, cfg.Ny, cfg.Nz)
	}
	if err != nil {
		return nil, err
	}
	return
}

// writeResults stores one file per (tensor, order) under out/.
func writeResults(cfg *sfunc.Config, names *RunNames, res *sfunc.Result) (err error) {
	if err = os.MkdirAll("out", 0777); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for p := cfg.Q1; p <= cfg.Q2; p++ {
		name := strconv.Itoa(p)
		l := p - cfg.Q1
		if cfg.TwoDim {
			fmt.Printf("\nWriting %d order SF as function of lx and lz\n", p)
			if cfg.Scalar {
				err = readfiles.Write2D("out/", names.ScalarBase+name, res.Scalar2.SliceK(l))
			} else {
				if err = readfiles.Write2D("out/", names.PllBase+name, res.Pll2.SliceK(l)); err != nil {
					return
				}
				if !cfg.LongOnly {
					err = readfiles.Write2D("out/", names.PerpBase+name, res.Perp2.SliceK(l))
				}
			}
		} else {
			fmt.Printf("\nWriting %d order SF as function of lx, ly, and lz\n", p)
			if cfg.Scalar {
				err = readfiles.Write3D("out/", names.ScalarBase+name, res.Scalar3.SliceL(l))
			} else {
				if err = readfiles.Write3D("out/", names.PllBase+name, res.Pll3.SliceL(l)); err != nil {
					return
				}
				if !cfg.LongOnly {
					err = readfiles.Write3D("out/", names.PerpBase+name, res.Perp3.SliceL(l))
				}
			}
		}
		if err != nil {
			return
		}
		fmt.Printf("\nWriting completed\n")
	}
	return nil
}
