package FlatWing

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/golinuvlm/InputParameters"
	"github.com/notargets/golinuvlm/assembly"
	"github.com/notargets/golinuvlm/lattice"
	"github.com/notargets/golinuvlm/utils"
)

// FlatWing is a single rectangular lifting surface with a straight wake shed
// along the free stream, held at a linearisation point with prescribed
// uniform circulation.
type FlatWing struct {
	Title          string
	Bound, Wake    *lattice.Surface
	UInf           r3.Vec
	Pole           r3.Vec // Moment reference, quarter chord at the root
	ParallelDegree int
	verbose        bool
}

// Linearization collects every block assembled at the linearisation point,
// indexed by bound surface as returned by the assembly package.
type Linearization struct {
	AIC, AICStar               [][][]utils.Matrix
	DerColl                    []utils.Matrix
	DerVert                    [][]utils.Matrix
	UcDncDzeta                 []utils.Matrix
	DfqsDgamma, DfqsDgammaStar []utils.Matrix
	DfqsDzeta                  []utils.Matrix
	Force, Moment              r3.Vec
	Elapsed                    time.Duration
}

func NewFlatWing(ip *InputParameters.InputParametersUVLM) (c *FlatWing, err error) {
	if err = ip.Validate(); err != nil {
		return
	}
	var (
		alpha = ip.AlphaDeg * math.Pi / 180.
		dir   = r3.Vec{X: math.Cos(alpha), Z: math.Sin(alpha)}
	)
	c = &FlatWing{
		Title:          ip.Title,
		UInf:           r3.Scale(ip.UInf, dir),
		Pole:           r3.Vec{X: 0.25 * ip.Chord},
		ParallelDegree: utils.DefaultParallelDegree(ip.ParallelDegree),
		verbose:        ip.Verbose,
	}
	if c.Bound, err = lattice.NewRectangularWing("wing", ip.M, ip.N, ip.Chord, ip.Span,
		ip.Twist, ip.Camber, ip.Rho); err != nil {
		return
	}
	c.Bound.SetGamma(ip.Gamma)
	if c.Wake, err = lattice.NewStraightWake(c.Bound, ip.Mstar, ip.WakeLength, dir, ip.GammaWake); err != nil {
		return
	}
	surfs := []*lattice.Surface{c.Bound, c.Wake}
	for _, s := range surfs {
		s.SetFreeStream(c.UInf)
		s.ComputeInputVelocities()
		s.ComputeInducedVelocities(surfs)
	}
	if err = c.Bound.JoukowskiQS(c.Wake.Gamma[:ip.N]); err != nil {
		return
	}
	if c.verbose {
		fmt.Printf("Bound lattice %s\n", c.Bound.Maps)
		fmt.Printf("Wake lattice  %s\n", c.Wake.Maps)
		F, Mo := c.Bound.TotalForce(), c.Bound.TotalMoment(c.Pole)
		fmt.Printf("Quasi-steady force  = [%8.5f, %8.5f, %8.5f]\n", F.X, F.Y, F.Z)
		fmt.Printf("Quasi-steady moment = [%8.5f, %8.5f, %8.5f]\n", Mo.X, Mo.Y, Mo.Z)
	}
	return
}

// Linearize runs every assembly operation on the current state. The returned
// blocks are read only.
func (c *FlatWing) Linearize() (lin *Linearization, err error) {
	var (
		bound = []*lattice.Surface{c.Bound}
		wake  = []*lattice.Surface{c.Wake}
		start = time.Now()
	)
	lin = &Linearization{}
	if lin.AIC, lin.AICStar, err = assembly.AICs(bound, wake, lattice.TargetCollocation, true); err != nil {
		return
	}
	if lin.DerColl, lin.DerVert, err = assembly.NcDqcDzeta(bound, wake,
		assembly.WithParallelDegree(c.ParallelDegree)); err != nil {
		return
	}
	if lin.UcDncDzeta, err = assembly.UcDncDzetaSurfaces(bound); err != nil {
		return
	}
	if lin.DfqsDgamma, lin.DfqsDgammaStar, err = assembly.DfqsDgammaVrel(bound, wake); err != nil {
		return
	}
	if lin.DfqsDzeta, err = assembly.DfqsDzetaVrel(bound, wake); err != nil {
		return
	}
	lin.Force, lin.Moment = c.Bound.TotalForce(), c.Bound.TotalMoment(c.Pole)
	lin.Elapsed = time.Since(start)
	lin.freeze()
	if c.verbose {
		fmt.Printf("Linearization assembled in %v, %s\n", lin.Elapsed, utils.GetMemUsage())
	}
	return
}

func (lin *Linearization) freeze() {
	for _, blocks := range [][]utils.Matrix{lin.DerColl, lin.UcDncDzeta,
		lin.DfqsDgamma, lin.DfqsDgammaStar, lin.DfqsDzeta} {
		for i := range blocks {
			blocks[i].SetReadOnly()
		}
	}
	for i := range lin.DerVert {
		for j := range lin.DerVert[i] {
			lin.DerVert[i][j].SetReadOnly()
		}
	}
	for _, aic := range [][][][]utils.Matrix{lin.AIC, lin.AICStar} {
		for i := range aic {
			for j := range aic[i] {
				for comp := range aic[i][j] {
					aic[i][j][comp].SetReadOnly()
				}
			}
		}
	}
}

// HasNaN reports whether any assembled block holds a NaN.
func (lin *Linearization) HasNaN() bool {
	for _, block := range [][]utils.Matrix{lin.DerColl, lin.UcDncDzeta,
		lin.DfqsDgamma, lin.DfqsDgammaStar, lin.DfqsDzeta} {
		if utils.IsNan(block) {
			return true
		}
	}
	for i := range lin.AIC {
		if utils.IsNan(lin.AIC[i]) || utils.IsNan(lin.AICStar[i]) {
			return true
		}
	}
	return utils.IsNan(lin.DerVert)
}

// PrintSummary lists every block with its shape, the non-zeros kept in CSR
// form, its largest entry and its Frobenius norm, followed by the quasi-steady
// loads.
func (lin *Linearization) PrintSummary(tol float64) {
	line := func(label string, m utils.Matrix) {
		nr, nc := m.Dims()
		fmt.Printf("%-20s (%5d x %5d)  nnz = %8d  max|.| = %12.5e  |.|_F = %12.5e\n",
			label, nr, nc, utils.NNZ(m, tol), m.MaxAbs(), floats.Norm(m.Data(), 2))
	}
	for i := range lin.DerColl {
		for j := range lin.AIC[i] {
			line(fmt.Sprintf("AIC[%d][%d]", i, j), lin.AIC[i][j][0])
			line(fmt.Sprintf("AICStar[%d][%d]", i, j), lin.AICStar[i][j][0])
			line(fmt.Sprintf("DerVert[%d][%d]", i, j), lin.DerVert[i][j])
		}
		line(fmt.Sprintf("DerColl[%d]", i), lin.DerColl[i])
		line(fmt.Sprintf("UcDncDzeta[%d]", i), lin.UcDncDzeta[i])
		line(fmt.Sprintf("DfqsDgamma[%d]", i), lin.DfqsDgamma[i])
		line(fmt.Sprintf("DfqsDgammaStar[%d]", i), lin.DfqsDgammaStar[i])
		line(fmt.Sprintf("DfqsDzeta[%d]", i), lin.DfqsDzeta[i])
	}
	fmt.Printf("Force  = [%12.5e, %12.5e, %12.5e]\n", lin.Force.X, lin.Force.Y, lin.Force.Z)
	fmt.Printf("Moment = [%12.5e, %12.5e, %12.5e]\n", lin.Moment.X, lin.Moment.Y, lin.Moment.Z)
	fmt.Printf("NaN check: %v, elapsed: %v\n", lin.HasNaN(), lin.Elapsed)
}
