package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// NewRectangularWing lays out an M x N lattice over a rectangular planform,
// x chordwise from the leading edge and y spanwise centred on zero. Camber is
// the height of a parabolic mean line; twist rotates each section about its
// quarter chord proportionally to y/span (small angle).
func NewRectangularWing(name string, M, N int, chord, span, twist, camber, rho float64) (s *Surface, err error) {
	if _, err = NewGridIndex(M, N); err != nil {
		return
	}
	if chord <= 0 || span <= 0 {
		err = fmt.Errorf("wing %q: chord and span must be positive, have %v, %v", name, chord, span)
		return
	}
	var (
		Kzeta = (M + 1) * (N + 1)
		zeta  = make([]float64, 3*Kzeta)
	)
	for m := 0; m <= M; m++ {
		for n := 0; n <= N; n++ {
			var (
				v  = m*(N+1) + n
				xc = float64(m) / float64(M)
				x  = chord * xc
				y  = span * (float64(n)/float64(N) - 0.5)
			)
			zeta[v] = x
			zeta[v+Kzeta] = y
			zeta[v+2*Kzeta] = camber*4*xc*(1-xc) - twist*(y/span)*(x-0.25*chord)
		}
	}
	return NewSurface(name, M, N, zeta, make([]float64, M*N), rho)
}

// NewStraightWake builds a wake of Mstar rows trailing the bound surface
// along direction over the given length. Row 0 of the wake coincides with the
// trailing edge of bound; every wake panel carries gamma.
func NewStraightWake(bound *Surface, Mstar int, length float64, direction r3.Vec, gamma float64) (w *Surface, err error) {
	var (
		N = bound.Maps.N
	)
	if _, err = NewGridIndex(Mstar, N); err != nil {
		return
	}
	if r3.Norm(direction) == 0 {
		err = fmt.Errorf("wake of %q: direction must be non-zero", bound.Name)
		return
	}
	var (
		Kzeta = (Mstar + 1) * (N + 1)
		zeta  = make([]float64, 3*Kzeta)
		gam   = make([]float64, Mstar*N)
	)
	dl := r3.Scale(length/float64(Mstar), r3.Unit(direction))
	for m := 0; m <= Mstar; m++ {
		for n := 0; n <= N; n++ {
			x := r3.Add(bound.VertexCoord(bound.Maps.TrailingEdgeVertex(n)), r3.Scale(float64(m), dl))
			v := m*(N+1) + n
			zeta[v], zeta[v+Kzeta], zeta[v+2*Kzeta] = x.X, x.Y, x.Z
		}
	}
	for p := range gam {
		gam[p] = gamma
	}
	return NewSurface(bound.Name+"_star", Mstar, N, zeta, gam, bound.Rho)
}
