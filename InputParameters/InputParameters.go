package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParametersUVLM struct {
	Title          string  `yaml:"Title"`
	M              int     `yaml:"M"`     // Chordwise panels
	N              int     `yaml:"N"`     // Spanwise panels
	Mstar          int     `yaml:"Mstar"` // Wake rows
	Chord          float64 `yaml:"Chord"`
	Span           float64 `yaml:"Span"`
	WakeLength     float64 `yaml:"WakeLength"`
	Twist          float64 `yaml:"Twist"`
	Camber         float64 `yaml:"Camber"`
	AlphaDeg       float64 `yaml:"AlphaDeg"`
	UInf           float64 `yaml:"UInf"`
	Rho            float64 `yaml:"Rho"`
	Gamma          float64 `yaml:"Gamma"`     // Bound circulation, uniform
	GammaWake      float64 `yaml:"GammaWake"` // Wake circulation, uniform
	ParallelDegree int     `yaml:"ParallelDegree"`
	Verbose        bool    `yaml:"Verbose"`
}

// Defaults is the flat wing of the reference test case: 4 x 4 panels, ten
// wake rows and unit circulation everywhere.
func Defaults() (ip *InputParametersUVLM) {
	ip = &InputParametersUVLM{
		Title:      "Flat wing",
		M:          4,
		N:          4,
		Mstar:      10,
		Chord:      1.,
		Span:       4.,
		WakeLength: 10.,
		UInf:       10.,
		Rho:        1.225,
		Gamma:      1.,
		GammaWake:  1.,
	}
	return
}

// Parse overlays the YAML document on the receiver, fields absent from data
// keep their current values.
func (ip *InputParametersUVLM) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	return ip.Validate()
}

func (ip *InputParametersUVLM) Validate() (err error) {
	switch {
	case ip.M < 1 || ip.N < 1 || ip.Mstar < 1:
		err = fmt.Errorf("panel counts must be positive, have M, N, Mstar = %d, %d, %d", ip.M, ip.N, ip.Mstar)
	case ip.Chord <= 0 || ip.Span <= 0 || ip.WakeLength <= 0:
		err = fmt.Errorf("chord, span and wake length must be positive, have %v, %v, %v",
			ip.Chord, ip.Span, ip.WakeLength)
	case ip.Rho <= 0:
		err = fmt.Errorf("density must be positive, have %v", ip.Rho)
	case ip.ParallelDegree < 0:
		err = fmt.Errorf("parallel degree must not be negative, have %d", ip.ParallelDegree)
	}
	return
}

func (ip *InputParametersUVLM) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d,%d]\t\t\t= M,N Bound Panels\n", ip.M, ip.N)
	fmt.Printf("[%d]\t\t\t= Mstar Wake Rows\n", ip.Mstar)
	fmt.Printf("%8.5f\t\t= Chord\n", ip.Chord)
	fmt.Printf("%8.5f\t\t= Span\n", ip.Span)
	fmt.Printf("%8.5f\t\t= WakeLength\n", ip.WakeLength)
	fmt.Printf("%8.5f\t\t= Twist\n", ip.Twist)
	fmt.Printf("%8.5f\t\t= Camber\n", ip.Camber)
	fmt.Printf("%8.5f\t\t= Alpha (deg)\n", ip.AlphaDeg)
	fmt.Printf("%8.5f\t\t= UInf\n", ip.UInf)
	fmt.Printf("%8.5f\t\t= Rho\n", ip.Rho)
	fmt.Printf("%8.5f\t\t= Gamma\n", ip.Gamma)
	fmt.Printf("%8.5f\t\t= GammaWake\n", ip.GammaWake)
	fmt.Printf("[%d]\t\t\t= Parallel Degree\n", ip.ParallelDegree)
}
