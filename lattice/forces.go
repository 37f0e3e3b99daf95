package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/golinuvlm/biotsavart"
)

// JoukowskiQS computes the quasi-steady force rho*gamma*(v_rel x dl) on every
// segment of the bound surface s, and the force carried by the trailing edge
// because of the wake circulation gammaWakeTE (row 0 of the wake, one value
// per spanwise panel). The wake term acts on the segment TE(n+1)->TE(n) with
// the relative velocity of the trailing segment of bound panel (M-1,n). Half
// of every segment force is lumped on each end vertex into Fqs.
func (s *Surface) JoukowskiQS(gammaWakeTE []float64) (err error) {
	var (
		g     = s.Maps
		K     = g.K()
		Kzeta = g.Kzeta()
	)
	if err = s.RequireSegmentVelocities(); err != nil {
		return
	}
	if len(gammaWakeTE) != g.N {
		err = fmt.Errorf("surface %q: wake trailing-edge circulation has %d values, want N = %d",
			s.Name, len(gammaWakeTE), g.N)
		return
	}
	s.FqsSeg = make([][4]r3.Vec, K)
	s.FqsWakeTE = make([]r3.Vec, g.N)
	for comp := 0; comp < 3; comp++ {
		s.Fqs[comp] = make([]float64, Kzeta)
	}
	lump := func(v int, f r3.Vec) {
		s.Fqs[0][v] += 0.5 * f.X
		s.Fqs[1][v] += 0.5 * f.Y
		s.Fqs[2][v] += 0.5 * f.Z
	}
	for p := 0; p < K; p++ {
		for seg := 0; seg < 4; seg++ {
			a, b := g.SegmentEndpoints(p, seg)
			f := biotsavart.JoukowskiSegment(s.VertexCoord(a), s.VertexCoord(b),
				s.RelativeSegmentVelocity(p, seg), s.Gamma[p], s.Rho)
			s.FqsSeg[p][seg] = f
			lump(a, f)
			lump(b, f)
		}
	}
	for n := 0; n < g.N; n++ {
		a, b := g.TrailingEdgeVertex(n+1), g.TrailingEdgeVertex(n)
		f := biotsavart.JoukowskiSegment(s.VertexCoord(a), s.VertexCoord(b),
			s.RelativeSegmentVelocity(g.Panel(g.M-1, n), 1), gammaWakeTE[n], s.Rho)
		s.FqsWakeTE[n] = f
		lump(a, f)
		lump(b, f)
	}
	return
}

// TotalForce sums the lumped vertex forces, zero before JoukowskiQS.
func (s *Surface) TotalForce() (F r3.Vec) {
	if s.Fqs[0] == nil {
		return
	}
	for v := 0; v < s.Maps.Kzeta(); v++ {
		F = r3.Add(F, r3.Vec{X: s.Fqs[0][v], Y: s.Fqs[1][v], Z: s.Fqs[2][v]})
	}
	return
}

// TotalMoment is the moment of the lumped vertex forces about pole.
func (s *Surface) TotalMoment(pole r3.Vec) (Mo r3.Vec) {
	if s.Fqs[0] == nil {
		return
	}
	for v := 0; v < s.Maps.Kzeta(); v++ {
		arm := r3.Sub(s.VertexCoord(v), pole)
		Mo = r3.Add(Mo, r3.Cross(arm, r3.Vec{X: s.Fqs[0][v], Y: s.Fqs[1][v], Z: s.Fqs[2][v]}))
	}
	return
}
