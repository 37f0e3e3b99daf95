package assembly

import (
	"fmt"

	"github.com/notargets/golinuvlm/biotsavart"
	"github.com/notargets/golinuvlm/lattice"
	"github.com/notargets/golinuvlm/utils"
)

// Accumulators hold the two blocks filled by NcDqcDzetaPair for one output
// surface and one input bound surface:
//
//	DerColl: K_out x 3*Kzeta_out, movement of the output collocation points
//	DerVert: K_out x 3*Kzeta_in, movement of the input bound surface vertices
//
// They are owned by the assembling call and only lent to the kernels.
type Accumulators struct {
	DerColl utils.Matrix
	DerVert utils.Matrix
}

func NewAccumulators(out *lattice.Surface, kzetaIn int) (acc *Accumulators) {
	var (
		Kout = out.Maps.K()
	)
	acc = &Accumulators{
		DerColl: utils.NewMatrix(Kout, 3*out.Maps.Kzeta()),
		DerVert: utils.NewMatrix(Kout, 3*kzetaIn),
	}
	acc.DerColl.SetName("DerColl " + out.Name)
	acc.DerVert.SetName("DerVert " + out.Name)
	return
}

type options struct {
	parallelDegree int
}

type Option func(*options)

// WithParallelDegree splits the loop over output collocation points into n
// buckets of disjoint rows, each run on its own goroutine.
func WithParallelDegree(n int) Option {
	return func(o *options) {
		o.parallelDegree = n
	}
}

// NcDqcDzetaPair accumulates d(nc.Q)/dzeta, Q being the velocity induced by in
// at the collocation points of the bound surface out, with the normals nc of
// out held constant.
//
// The derivative with respect to the movement of the collocation points goes
// into acc.DerColl. When in is a bound surface its vertex derivatives go into
// acc.DerVert and kzetaBoundIn must equal its vertex count. When in is a wake
// only its trailing edge moves with the bound surface: the segment 3->0 of
// every row-0 panel is differentiated and mapped to the trailing edge
// vertices (M_bound, n) and (M_bound, n+1) of the parent bound surface, whose
// vertex count is kzetaBoundIn. Wake rows beyond the first add nothing to
// DerVert.
//
// Shape mismatches between surfaces and accumulators panic.
func NcDqcDzetaPair(in, out *lattice.Surface, acc *Accumulators, inBound bool, kzetaBoundIn int) {
	colMap := checkPairShapes(in, out, acc, inBound, kzetaBoundIn)
	ncDqcDzetaRows(in, out, acc, inBound, colMap, 0, out.Maps.K())
}

// checkPairShapes asserts the accumulator shapes and returns the grid that
// indexes the DerVert columns.
func checkPairShapes(in, out *lattice.Surface, acc *Accumulators, inBound bool, kzetaBoundIn int) (colMap lattice.GridIndex) {
	var (
		Kout = out.Maps.K()
		N    = in.Maps.N
	)
	acc.DerColl.AssertShape(Kout, 3*out.Maps.Kzeta())
	if inBound {
		if kzetaBoundIn != in.Maps.Kzeta() {
			panic(fmt.Errorf("bound input %q has Kzeta = %d, caller passed %d",
				in.Name, in.Maps.Kzeta(), kzetaBoundIn))
		}
		acc.DerVert.AssertShape(Kout, 3*kzetaBoundIn)
		return in.Maps
	}
	if kzetaBoundIn%(N+1) != 0 || kzetaBoundIn/(N+1) < 2 {
		panic(fmt.Errorf("wake %q with N = %d cannot trail a bound surface of Kzeta = %d",
			in.Name, N, kzetaBoundIn))
	}
	acc.DerVert.AssertShape(Kout, 3*kzetaBoundIn)
	return lattice.GridIndex{M: kzetaBoundIn/(N+1) - 1, N: N}
}

func ncDqcDzetaRows(in, out *lattice.Surface, acc *Accumulators, inBound bool, colMap lattice.GridIndex,
	cMin, cMax int) {
	var (
		Kin    = in.Maps.K()
		Nin    = in.Maps.N
		wcv    = out.PanelWcv()
		dofsTE = func(n int) [3]int { return colMap.VertexDofs(colMap.TrailingEdgeVertex(n)) }
	)
	for cc := cMin; cc < cMax; cc++ {
		var (
			zc     = out.Collocation(cc)
			nc     = out.Normal(cc)
			ivOut  = out.Maps.PanelVertices(cc)
			dCollN [3]float64
		)
		for pp := 0; pp < Kin; pp++ {
			var (
				ring  = in.PanelVertexCoords(pp)
				gamma = in.Gamma[pp]
			)
			dP, dV := biotsavart.DPanel(zc, ring, gamma)
			dPn := dP.ProjectRows(nc)
			for comp := 0; comp < 3; comp++ {
				dCollN[comp] += dPn[comp]
			}
			switch {
			case inBound:
				for vv, iv := range in.Maps.PanelVertices(pp) {
					dVn := dV[vv].ProjectRows(nc)
					for comp, dof := range in.Maps.VertexDofs(iv) {
						acc.DerVert.AddAt(cc, dof, dVn[comp])
					}
				}
			case pp < Nin: // wake row 0
				_, d3, d0 := biotsavart.DSegment(zc, ring[3], ring[0], gamma)
				var (
					n    = pp
					d3n  = d3.ProjectRows(nc)
					d0n  = d0.ProjectRows(nc)
					dof3 = dofsTE(n + 1)
					dof0 = dofsTE(n)
				)
				for comp := 0; comp < 3; comp++ {
					acc.DerVert.AddAt(cc, dof3[comp], d3n[comp])
					acc.DerVert.AddAt(cc, dof0[comp], d0n[comp])
				}
			}
		}
		// the collocation point is the wcv average of the output panel corners
		for vv, iv := range ivOut {
			for comp, dof := range out.Maps.VertexDofs(iv) {
				acc.DerColl.AddAt(cc, dof, wcv[vv]*dCollN[comp])
			}
		}
	}
}

// NcDqcDzeta assembles, for every bound surface taken as output, the
// derivative of the normal induced velocity at its collocation points with
// respect to the movement of the collocation points (DerColl[i], summed over
// every bound and wake input) and of the vertices of every bound surface
// (DerVert[i][j], wake j folded onto the trailing edge of bound j). Normals
// are held constant.
func NcDqcDzeta(bound, wake []*lattice.Surface, opts ...Option) (DerColl []utils.Matrix, DerVert [][]utils.Matrix, err error) {
	if err = checkPairs(bound, wake); err != nil {
		return
	}
	var (
		o     = options{parallelDegree: 1}
		nSurf = len(bound)
	)
	for _, opt := range opts {
		opt(&o)
	}
	DerColl = make([]utils.Matrix, nSurf)
	DerVert = make([][]utils.Matrix, nSurf)
	for i, out := range bound {
		var (
			accs   = make([]*Accumulators, nSurf)
			colMap = make([]lattice.GridIndex, nSurf)
		)
		DerColl[i] = utils.NewMatrix(out.Maps.K(), 3*out.Maps.Kzeta())
		DerColl[i].SetName(fmt.Sprintf("DerColl[%d]", i))
		DerVert[i] = make([]utils.Matrix, nSurf)
		for j, in := range bound {
			DerVert[i][j] = utils.NewMatrix(out.Maps.K(), 3*in.Maps.Kzeta())
			DerVert[i][j].SetName(fmt.Sprintf("DerVert[%d][%d]", i, j))
			accs[j] = &Accumulators{DerColl: DerColl[i], DerVert: DerVert[i][j]}
			colMap[j] = checkPairShapes(in, out, accs[j], true, in.Maps.Kzeta())
			checkPairShapes(wake[j], out, accs[j], false, in.Maps.Kzeta())
		}
		pm := utils.NewPartitionMap(o.parallelDegree, out.Maps.K())
		pm.ForEachBucket(func(kMin, kMax int) {
			for j := range bound {
				ncDqcDzetaRows(bound[j], out, accs[j], true, colMap[j], kMin, kMax)
				ncDqcDzetaRows(wake[j], out, accs[j], false, colMap[j], kMin, kMax)
			}
		})
	}
	return
}
