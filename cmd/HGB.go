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
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/shearbox/InputParameters"
	"github.com/notargets/shearbox/grid"
	"github.com/notargets/shearbox/history"
	"github.com/notargets/shearbox/model_problems/HGB"
	"github.com/notargets/shearbox/utils"
)

type ModelHGB struct {
	InputFile      string
	HistoryFile    string // Empty writes the history to the output stream
	DataDir        string
	ParallelDegree int // Zero uses every CPU
	ProfileMode    string
	Graph          bool
	Delay          time.Duration
	Perf           bool
	Restart        bool
}

// HGBCmd represents the HGB command
var HGBCmd = &cobra.Command{
	Use:   "HGB",
	Short: "Hawley, Gammie & Balbus shearing box initial conditions",
	Long: `
Initializes the HGB shearing box from a YAML input file, enrolls the tidal
potential and history variables and writes the initial history record.

shearbox HGB -I input.yaml -o hgb.hst`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		m := &ModelHGB{}
		if m.InputFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		m.HistoryFile, _ = cmd.Flags().GetString("historyFile")
		m.ProfileMode, _ = cmd.Flags().GetString("profile")
		m.Graph, _ = cmd.Flags().GetBool("graph")
		m.Perf, _ = cmd.Flags().GetBool("perf")
		m.Restart, _ = cmd.Flags().GetBool("restart")
		dr, _ := cmd.Flags().GetInt("delay")
		m.Delay = time.Duration(dr) * time.Millisecond
		m.DataDir = viper.GetString("dataDir")
		m.ParallelDegree = viper.GetInt("parallelDegree")
		return RunHGB(m, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(HGBCmd)
	HGBCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Grid: nx1..nx3, x1min..x3max\n\t- Problem: amp, beta, ifield, ipert")
	HGBCmd.Flags().StringP("historyFile", "o", "", "file to write the history record to, default is stdout")
	HGBCmd.Flags().StringP("dataDir", "D", ".", "directory holding the Data-N-FPwave.dat tables")
	HGBCmd.Flags().IntP("parallelDegree", "n", 0, "number of blocks to decompose the domain into, 0 = number of CPUs")
	HGBCmd.Flags().BoolP("graph", "g", false, "display the initial x1 profile")
	HGBCmd.Flags().IntP("delay", "d", 0, "milliseconds to display the graph")
	HGBCmd.Flags().Bool("perf", false, "count hardware instructions spent in the initialization")
	HGBCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
	HGBCmd.Flags().Bool("restart", false, "enroll the potential and history variables without initializing the grid")
	_ = viper.BindPFlag("dataDir", HGBCmd.Flags().Lookup("dataDir"))
	_ = viper.BindPFlag("parallelDegree", HGBCmd.Flags().Lookup("parallelDegree"))
}

func RunHGB(m *ModelHGB, w io.Writer) (err error) {
	var (
		log = utils.Logger()
		ip  *InputParameters.InputParametersHGB
		c   *HGB.HGB
		d   *grid.Domain
		reg = history.NewRegistry()
	)
	switch m.ProfileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return errors.Errorf("unknown profile mode %q, must be cpu or mem", m.ProfileMode)
	}
	if len(m.InputFile) == 0 {
		exampleFile := `
########################################
Title: "HGB"
Grid: {nx1: 32, nx2: 64, nx3: 32, x1min: -0.5, x1max: 0.5, x2min: -2, x2max: 2, x3min: -0.5, x3max: 0.5}
Problem: {amp: 0.025, beta: 4000, ifield: 1, ipert: 1}
Physics: {EOS: adiabatic, Gamma: 1.6666667}
########################################
`
		fmt.Fprintf(w, "Example File:%s\n", exampleFile)
		return errors.New("must supply an input parameters file (-I, --inputConditionsFile)")
	}
	if ip, err = InputParameters.ReadFile(m.InputFile); err != nil {
		return
	}
	ip.Print(w)
	if c, err = HGB.NewHGB(ip, m.DataDir); err != nil {
		return
	}
	if d, err = grid.NewDomain(ip.GridBounds()); err != nil {
		return
	}
	NP := m.ParallelDegree
	if NP == 0 {
		NP = runtime.NumCPU()
	}
	if err = d.Decompose(NP); err != nil {
		return
	}
	log.Infow("domain decomposed", "blocks", len(d.Grids),
		"nx1", d.Nx1, "nx2", d.Nx2, "nx3", d.Nx3)

	start := time.Now()
	switch {
	case m.Restart:
		err = c.Restart(ip, d, reg)
	case m.Perf:
		err = runCounted(func() error { return c.Problem(d, reg) })
	default:
		err = c.Problem(d, reg)
	}
	if err != nil {
		return
	}
	log.Infow("problem set up", "elapsed", time.Since(start), "history", reg.Len())

	if m.Restart {
		// The grid state comes from the restart file, only the column layout
		// is known here
		log.Infow("history re-enrolled", "names", reg.Names())
		return writeHistory(m.HistoryFile, w, reg, nil)
	}
	if err = writeHistory(m.HistoryFile, w, reg, d); err != nil {
		return
	}
	fmt.Fprintf(w, "Field: %s, Perturbation: %s\n", c.Field, c.Pert)
	HGB.PrintSummary(w, c.Summarize(d))
	if m.Graph {
		c.PlotProfile(d, m.Delay)
	}
	return
}

func runCounted(fn func() error) (err error) {
	var (
		ran   bool
		fnErr error
		count uint64
	)
	count, err = countInstructions(func() error {
		ran = true
		fnErr = fn()
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		utils.Logger().Warnw("hardware counters unavailable", "error", err)
		if !ran {
			return fn()
		}
		return nil
	}
	utils.Logger().Infow("initialization cost", "instructions", count)
	return
}

// writeHistory writes the history header, followed by the current row when a
// domain is given
func writeHistory(fileName string, w io.Writer, reg *history.Registry, d *grid.Domain) (err error) {
	if len(fileName) != 0 {
		var file *os.File
		if file, err = os.Create(fileName); err != nil {
			return errors.Wrapf(err, "unable to create history file %s", fileName)
		}
		defer file.Close()
		w = file
	}
	if err = reg.WriteHeader(w); err != nil || d == nil {
		return
	}
	var t0 float64
	if len(d.Grids) != 0 {
		t0 = d.Grids[0].Time
	}
	return reg.WriteRow(w, d, t0)
}
