package lattice

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridIndex(t *testing.T) {
	g, err := NewGridIndex(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 12, g.K())
	assert.Equal(t, 20, g.Kzeta())
	{ // Round trips of the row-major flattening
		for p := 0; p < g.K(); p++ {
			m, n := g.PanelMN(p)
			assert.Equal(t, p, g.Panel(m, n))
		}
		for v := 0; v < g.Kzeta(); v++ {
			m, n := g.VertexMN(v)
			assert.Equal(t, v, g.Vertex(m, n))
		}
	}
	{ // Panel (1,2): corners (1,2),(2,2),(2,3),(1,3)
		p := g.Panel(1, 2)
		assert.Equal(t, [4]int{7, 12, 13, 8}, g.PanelVertices(p))
		a, b := g.SegmentEndpoints(p, 3)
		assert.Equal(t, 8, a)
		assert.Equal(t, 7, b)
		a, b = g.SegmentEndpoints(p, 1)
		assert.Equal(t, 12, a)
		assert.Equal(t, 13, b)
	}
	{ // Coordinate blocks are contiguous
		assert.Equal(t, [3]int{13, 33, 53}, g.VertexDofs(13))
		assert.Equal(t, 17, g.TrailingEdgeVertex(2))
	}
	_, err = NewGridIndex(0, 3)
	assert.Error(t, err)
}

func TestSurfaceGeometry(t *testing.T) {
	{ // Shape checks
		_, err := NewSurface("bad", 1, 1, make([]float64, 11), make([]float64, 1), 1.)
		assert.Error(t, err)
		_, err = NewSurface("bad", 1, 1, make([]float64, 12), make([]float64, 2), 1.)
		assert.Error(t, err)
	}
	s, err := NewRectangularWing("wing", 2, 3, 2., 3., 0., 0., 1.225)
	require.NoError(t, err)
	{ // Unit panels in the xy plane
		zc := s.Collocation(s.Maps.Panel(1, 2))
		assert.InDelta(t, 1.5, zc.X, 1.e-14)
		assert.InDelta(t, 1.0, zc.Y, 1.e-14)
		assert.InDelta(t, 0.0, zc.Z, 1.e-14)
		for _, nc := range s.Normals() {
			assert.InDelta(t, 1., nc.Z, 1.e-14)
		}
		mid := s.SegmentMidpoint(0, 1)
		assert.InDelta(t, 1., mid.X, 1.e-14)
		assert.InDelta(t, -1., mid.Y, 1.e-14)
		assert.Len(t, s.ZetaFlat(), 3*s.Maps.Kzeta())
	}
	{ // Copies do not alias
		c := s.Copy()
		c.SetVertexCoord(0, r3.Vec{X: 9})
		c.Gamma[0] = 3
		assert.Equal(t, 0., s.VertexCoord(0).X)
		assert.Equal(t, 0., s.Gamma[0])
	}
	{ // Wake row 0 is the trailing edge
		w, err := NewStraightWake(s, 4, 8., r3.Vec{X: 1}, 0.5)
		require.NoError(t, err)
		assert.Equal(t, "wing_star", w.Name)
		for n := 0; n <= s.Maps.N; n++ {
			assert.Equal(t, s.VertexCoord(s.Maps.TrailingEdgeVertex(n)), w.VertexCoord(w.Maps.Vertex(0, n)))
			assert.InDelta(t, 10., w.VertexCoord(w.Maps.Vertex(4, n)).X, 1.e-14)
		}
		assert.Equal(t, 0.5, w.Gamma[w.Maps.K()-1])
	}
}

func TestMissingFields(t *testing.T) {
	s, err := NewRectangularWing("wing", 1, 1, 1., 1., 0., 0., 1.)
	require.NoError(t, err)
	var mfe *MissingFieldError
	err = s.RequireCollocationVelocities()
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "UIndColl", mfe.Field)
	assert.Equal(t, "wing", mfe.Surface)

	s.ComputeInducedVelocities([]*Surface{s})
	err = s.RequireCollocationVelocities()
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "UInputColl", mfe.Field)

	s.ComputeInputVelocities()
	assert.NoError(t, s.RequireCollocationVelocities())
	assert.NoError(t, s.RequireSegmentVelocities())

	err = (&Surface{Name: "bare"}).JoukowskiQS(nil)
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "UIndSeg", mfe.Field)
}

func TestAICOver(t *testing.T) {
	var (
		err  error
		s, w *Surface
	)
	s, err = NewRectangularWing("wing", 3, 4, 3., 8., 0.1, 0.2, 1.)
	require.NoError(t, err)
	w, err = NewStraightWake(s, 5, 10., r3.Vec{X: 1, Z: 0.1}, 1.)
	require.NoError(t, err)
	for p := range s.Gamma {
		s.Gamma[p] = 1. + 0.1*float64(p)
	}
	{ // Shapes
		aic := s.AICOver(s, TargetCollocation, true)
		require.Len(t, aic, 1)
		nr, nc := aic[0].Dims()
		assert.Equal(t, s.Maps.K(), nr)
		assert.Equal(t, s.Maps.K(), nc)
		aicStar := w.AICOver(s, TargetSegments, false)
		require.Len(t, aicStar, 3)
		nr, nc = aicStar[2].Dims()
		assert.Equal(t, 4*s.Maps.K(), nr)
		assert.Equal(t, w.Maps.K(), nc)
	}
	{ // AIC * gamma reproduces the direct velocity computation
		var (
			proj = s.AICOver(s, TargetCollocation, true)[0]
			comp = s.AICOver(s, TargetCollocation, false)
		)
		for i := 0; i < s.Maps.K(); i++ {
			var (
				q  = s.InducedVelocityAt(s.Collocation(i))
				nc = s.Normal(i)
				qn float64
				qv [3]float64
			)
			for j := 0; j < s.Maps.K(); j++ {
				qn += proj.At(i, j) * s.Gamma[j]
				for cc := 0; cc < 3; cc++ {
					qv[cc] += comp[cc].At(i, j) * s.Gamma[j]
				}
			}
			assert.InDelta(t, r3.Dot(nc, q), qn, 1.e-12)
			assert.InDelta(t, q.X, qv[0], 1.e-12)
			assert.InDelta(t, q.Y, qv[1], 1.e-12)
			assert.InDelta(t, q.Z, qv[2], 1.e-12)
		}
	}
	{
		tgt, err := NewTarget(" Segments")
		assert.NoError(t, err)
		assert.Equal(t, TargetSegments, tgt)
		assert.Equal(t, "segments", tgt.String())
		_, err = NewTarget("vertices")
		assert.Error(t, err)
		assert.Equal(t, "Target(7)", Target(7).String())
	}
}

func TestJoukowskiQS(t *testing.T) {
	var (
		rho, gamma, gammaW = 1.2, 1.5, 0.7
		U                  = r3.Vec{X: 10}
	)
	s, err := NewRectangularWing("wing", 1, 1, 1., 2., 0., 0., rho)
	require.NoError(t, err)
	s.SetGamma(gamma)
	s.SetFreeStream(U)
	s.ComputeInputVelocities()
	s.UIndColl = make([]r3.Vec, 1)
	s.UIndSeg = make([][4]r3.Vec, 1)
	assert.Error(t, s.JoukowskiQS([]float64{gammaW, gammaW}))
	require.NoError(t, s.JoukowskiQS([]float64{gammaW}))
	// A closed ring in uniform flow carries no net force, the wake trailing
	// edge term is what remains
	F := s.TotalForce()
	assert.InDelta(t, 0., F.X, 1.e-12)
	assert.InDelta(t, 0., F.Y, 1.e-12)
	assert.InDelta(t, -rho*gammaW*U.X*2., F.Z, 1.e-12)
	// Spanwise bound segments carry rho*gamma*U*b each, in opposite directions
	assert.InDelta(t, rho*gamma*U.X*2., s.FqsSeg[0][1].Z, 1.e-12)
	assert.InDelta(t, -rho*gamma*U.X*2., s.FqsSeg[0][3].Z, 1.e-12)
	assert.InDelta(t, 0., r3.Norm(s.FqsSeg[0][0]), 1.e-12)
	assert.False(t, math.IsNaN(s.Fqs[2][0]))
	{ // Moments: the leading edge loads sit on x = 0, the trailing edge ones on x = chord
		Mo := s.TotalMoment(r3.Vec{})
		assert.InDelta(t, 0., Mo.X, 1.e-12)
		assert.InDelta(t, -rho*(gamma-gammaW)*U.X*2., Mo.Y, 1.e-12)
		assert.InDelta(t, 0., Mo.Z, 1.e-12)
		pole := r3.Vec{X: 0.25, Y: -0.3, Z: 0.1}
		want := r3.Sub(Mo, r3.Cross(pole, F))
		got := s.TotalMoment(pole)
		assert.InDelta(t, 0., r3.Norm(r3.Sub(want, got)), 1.e-12)
		assert.Equal(t, r3.Vec{}, s.Copy().TotalMoment(pole))
	}
}
