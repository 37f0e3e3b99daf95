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
	"io/ioutil"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/golinuvlm/InputParameters"
	"github.com/notargets/golinuvlm/model_problems/FlatWing"
)

type ModelLinearize struct {
	InputFile      string
	ParallelDegree int
	Verbose        bool
	Profile        bool
	Tol            float64
}

// LinearizeCmd represents the linearize command
var LinearizeCmd = &cobra.Command{
	Use:   "linearize",
	Short: "Assemble the linearised UVLM blocks of a rectangular wing and its wake",
	Long: `
Builds the bound lattice and its straight wake from a YAML case file, computes
the velocities and quasi-steady forces, then assembles every Jacobian block
and prints a summary of shapes and non-zeros.

golinuvlm linearize -I case.yaml --parallel 4`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		ml := &ModelLinearize{
			InputFile:      viper.GetString("inputFile"),
			ParallelDegree: viper.GetInt("parallel"),
			Verbose:        viper.GetBool("verbose"),
			Profile:        viper.GetBool("profile"),
			Tol:            viper.GetFloat64("tol"),
		}
		if ml.Profile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		var ip *InputParameters.InputParametersUVLM
		if ip, err = processInput(ml); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", exampleFile)
			return
		}
		if err = RunLinearize(ml, ip); err != nil {
			panic(err)
		}
	},
}

var exampleFile = `
########################################
Title: "Flat wing"
M: 4
N: 4
Mstar: 10
Chord: 1.
Span: 4.
WakeLength: 10.
AlphaDeg: 2.
UInf: 10.
Rho: 1.225
Gamma: 1.
GammaWake: 1.
########################################
`

func init() {
	rootCmd.AddCommand(LinearizeCmd)
	LinearizeCmd.Flags().StringP("inputFile", "I", "", "YAML file for the case parameters, defaults are used when absent")
	LinearizeCmd.Flags().IntP("parallel", "p", 0, "number of row partitions for the normal velocity Jacobian, 0 = one per CPU")
	LinearizeCmd.Flags().BoolP("verbose", "v", false, "print progress")
	LinearizeCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
	LinearizeCmd.Flags().Float64("tol", 0., "entries with magnitude up to tol are dropped from the non-zero count")
	for _, name := range []string{"inputFile", "parallel", "verbose", "profile", "tol"} {
		if err := viper.BindPFlag(name, LinearizeCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// processInput starts from the default case, overlays the input file when one
// is given, then the command line settings.
func processInput(ml *ModelLinearize) (ip *InputParameters.InputParametersUVLM, err error) {
	ip = InputParameters.Defaults()
	if len(ml.InputFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(ml.InputFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			err = fmt.Errorf("parsing %s: %w", ml.InputFile, err)
			return
		}
	}
	if ml.ParallelDegree != 0 {
		ip.ParallelDegree = ml.ParallelDegree
	}
	ip.Verbose = ip.Verbose || ml.Verbose
	err = ip.Validate()
	return
}

func RunLinearize(ml *ModelLinearize, ip *InputParameters.InputParametersUVLM) (err error) {
	var (
		c   *FlatWing.FlatWing
		lin *FlatWing.Linearization
	)
	if ip.Verbose {
		ip.Print()
	}
	if c, err = FlatWing.NewFlatWing(ip); err != nil {
		return
	}
	if lin, err = c.Linearize(); err != nil {
		return
	}
	lin.PrintSummary(ml.Tol)
	if lin.HasNaN() {
		err = fmt.Errorf("NaN in the assembled blocks of %q", ip.Title)
	}
	return
}
