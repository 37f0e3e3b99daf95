package assembly

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/golinuvlm/biotsavart"
	"github.com/notargets/golinuvlm/lattice"
	"github.com/notargets/golinuvlm/utils"
)

// DfqsDgammaVrel assembles the derivative of the quasi-steady vertex forces
// of every bound surface with respect to the circulation, with the relative
// velocity at the segments held fixed.
//
// Der[ss] is 3*Kzeta x K: column p holds the force of a unit circulation on
// panel p, half of each segment force lumped on either end vertex.
// DerStar[ss] is 3*Kzeta x K_star: only the row-0 wake columns are populated,
// with the force that the wake circulation produces on the trailing edge
// segment TE(n+1)->TE(n).
func DfqsDgammaVrel(bound, wake []*lattice.Surface) (Der, DerStar []utils.Matrix, err error) {
	if err = checkPairs(bound, wake); err != nil {
		return
	}
	Der = make([]utils.Matrix, len(bound))
	DerStar = make([]utils.Matrix, len(bound))
	for ss, s := range bound {
		if err = s.RequireSegmentVelocities(); err != nil {
			return
		}
		var (
			g     = s.Maps
			w     = wake[ss]
			Kzeta = g.Kzeta()
			fact  = 0.5 * s.Rho
		)
		Der[ss] = utils.NewMatrix(3*Kzeta, g.K())
		Der[ss].SetName("DfqsDgamma " + s.Name)
		for p := 0; p < g.K(); p++ {
			for seg := 0; seg < 4; seg++ {
				a, b := g.SegmentEndpoints(p, seg)
				df := biotsavart.JoukowskiSegment(s.VertexCoord(a), s.VertexCoord(b),
					s.RelativeSegmentVelocity(p, seg), 1., fact)
				addForce(Der[ss], g.VertexDofs(a), p, df)
				addForce(Der[ss], g.VertexDofs(b), p, df)
			}
		}
		DerStar[ss] = utils.NewMatrix(3*Kzeta, w.Maps.K())
		DerStar[ss].SetName("DfqsDgammaStar " + s.Name)
		for n := 0; n < g.N; n++ {
			var (
				a, b = g.TrailingEdgeVertex(n+1), g.TrailingEdgeVertex(n)
				col  = w.Maps.Panel(0, n)
			)
			df := biotsavart.JoukowskiSegment(s.VertexCoord(a), s.VertexCoord(b),
				s.RelativeSegmentVelocity(g.Panel(g.M-1, n), 1), 1., fact)
			addForce(DerStar[ss], g.VertexDofs(a), col, df)
			addForce(DerStar[ss], g.VertexDofs(b), col, df)
		}
	}
	return
}

func addForce(Der utils.Matrix, rows [3]int, col int, df r3.Vec) {
	Der.AddAt(rows[0], col, df.X)
	Der.AddAt(rows[1], col, df.Y)
	Der.AddAt(rows[2], col, df.Z)
}

// DfqsDzetaVrel assembles the 3*Kzeta x 3*Kzeta derivative of the
// quasi-steady vertex forces of every bound surface with respect to its own
// vertices, with the relative velocity held fixed. Only the segment vectors
// B-A vary: with Df = skew(0.5*rho*gamma*v), the force lumped on each end of
// a segment changes by -Df dA + Df dB. The trailing edge segments carry the
// row-0 wake circulation and the velocity of segment 1 of the last bound row.
func DfqsDzetaVrel(bound, wake []*lattice.Surface) (Der []utils.Matrix, err error) {
	if err = checkPairs(bound, wake); err != nil {
		return
	}
	Der = make([]utils.Matrix, len(bound))
	for ss, s := range bound {
		if err = s.RequireSegmentVelocities(); err != nil {
			return
		}
		var (
			g     = s.Maps
			w     = wake[ss]
			Kzeta = g.Kzeta()
			fact  = 0.5 * s.Rho
		)
		Der[ss] = utils.NewMatrix(3*Kzeta, 3*Kzeta)
		Der[ss].SetName("DfqsDzeta " + s.Name)
		for p := 0; p < g.K(); p++ {
			for seg := 0; seg < 4; seg++ {
				a, b := g.SegmentEndpoints(p, seg)
				Df := Skew(r3.Scale(fact*s.Gamma[p], s.RelativeSegmentVelocity(p, seg)))
				addSegmentStiffness(Der[ss], g.VertexDofs(a), g.VertexDofs(b), Df)
			}
		}
		for n := 0; n < g.N; n++ {
			var (
				a, b = g.TrailingEdgeVertex(n+1), g.TrailingEdgeVertex(n)
				v    = s.RelativeSegmentVelocity(g.Panel(g.M-1, n), 1)
			)
			Df := Skew(r3.Scale(fact*w.Gamma[w.Maps.Panel(0, n)], v))
			addSegmentStiffness(Der[ss], g.VertexDofs(a), g.VertexDofs(b), Df)
		}
	}
	return
}

func addSegmentStiffness(Der utils.Matrix, ia, ib [3]int, Df mat.Matrix) {
	Der.AddBlock3(ia, ia, Df, -1)
	Der.AddBlock3(ib, ia, Df, -1)
	Der.AddBlock3(ia, ib, Df, 1)
	Der.AddBlock3(ib, ib, Df, 1)
}
