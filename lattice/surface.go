package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/golinuvlm/biotsavart"
)

// MissingFieldError reports a surface field that has to be computed before
// the requested operation can run.
type MissingFieldError struct {
	Surface string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("surface %q does not have the required field %s", e.Surface, e.Field)
}

/*
	A Surface is a structured M x N lattice of vortex rings, either a bound
	(lifting) surface or a wake. Geometry and circulation are always present;
	velocity samples and quasi-steady forces are filled by the Compute* and
	JoukowskiQS methods and stay nil until then.
*/
type Surface struct {
	Name    string
	Maps    GridIndex
	Zeta    [3][]float64 // Vertex coordinates, one block of Kzeta per component
	Gamma   []float64    // Panel circulation, K
	Rho     float64
	UExt    [3][]float64 // External velocity at vertices
	ZetaDot [3][]float64 // Vertex velocity
	// Per panel velocity samples, nil until computed
	UIndColl, UInputColl []r3.Vec
	UIndSeg, UInputSeg   [][4]r3.Vec
	// Quasi-steady forces, nil until JoukowskiQS
	FqsSeg    [][4]r3.Vec
	FqsWakeTE []r3.Vec
	Fqs       [3][]float64 // Vertex forces, same layout as Zeta
}

// NewSurface builds a lattice from vertex coordinates laid out as three
// blocks (x, y, z) of (M+1)(N+1) values and K panel circulations.
func NewSurface(name string, M, N int, zeta []float64, gamma []float64, rho float64) (s *Surface, err error) {
	var (
		g GridIndex
	)
	if g, err = NewGridIndex(M, N); err != nil {
		return
	}
	Kzeta, K := g.Kzeta(), g.K()
	switch {
	case len(zeta) != 3*Kzeta:
		err = fmt.Errorf("surface %q: vertex array has length %d, want 3*Kzeta = %d", name, len(zeta), 3*Kzeta)
		return
	case len(gamma) != K:
		err = fmt.Errorf("surface %q: circulation array has length %d, want K = %d", name, len(gamma), K)
		return
	}
	s = &Surface{
		Name:  name,
		Maps:  g,
		Gamma: make([]float64, K),
		Rho:   rho,
	}
	copy(s.Gamma, gamma)
	for comp := 0; comp < 3; comp++ {
		s.Zeta[comp] = make([]float64, Kzeta)
		copy(s.Zeta[comp], zeta[comp*Kzeta:(comp+1)*Kzeta])
		s.UExt[comp] = make([]float64, Kzeta)
		s.ZetaDot[comp] = make([]float64, Kzeta)
	}
	return
}

// Copy is a deep copy of geometry, circulation and kinematics. Derived
// velocity and force fields are not carried over.
func (s *Surface) Copy() (c *Surface) {
	c = &Surface{
		Name:  s.Name,
		Maps:  s.Maps,
		Gamma: append([]float64(nil), s.Gamma...),
		Rho:   s.Rho,
	}
	for comp := 0; comp < 3; comp++ {
		c.Zeta[comp] = append([]float64(nil), s.Zeta[comp]...)
		c.UExt[comp] = append([]float64(nil), s.UExt[comp]...)
		c.ZetaDot[comp] = append([]float64(nil), s.ZetaDot[comp]...)
	}
	return
}

func (s *Surface) VertexCoord(v int) r3.Vec {
	return r3.Vec{X: s.Zeta[0][v], Y: s.Zeta[1][v], Z: s.Zeta[2][v]}
}

func (s *Surface) SetVertexCoord(v int, x r3.Vec) {
	s.Zeta[0][v], s.Zeta[1][v], s.Zeta[2][v] = x.X, x.Y, x.Z
}

// ZetaFlat returns the vertex coordinates as one vector of 3*Kzeta values.
func (s *Surface) ZetaFlat() (z []float64) {
	z = make([]float64, 0, 3*s.Maps.Kzeta())
	for comp := 0; comp < 3; comp++ {
		z = append(z, s.Zeta[comp]...)
	}
	return
}

func (s *Surface) PanelVertexCoords(p int) (zeta [4]r3.Vec) {
	for v, iv := range s.Maps.PanelVertices(p) {
		zeta[v] = s.VertexCoord(iv)
	}
	return
}

// PanelWcv returns the weights of each corner in the collocation point.
func (s *Surface) PanelWcv() [4]float64 {
	return [4]float64{0.25, 0.25, 0.25, 0.25}
}

func (s *Surface) Collocation(p int) (zc r3.Vec) {
	var (
		wcv  = s.PanelWcv()
		zeta = s.PanelVertexCoords(p)
	)
	for v := 0; v < 4; v++ {
		zc = r3.Add(zc, r3.Scale(wcv[v], zeta[v]))
	}
	return
}

func (s *Surface) Collocations() (zc []r3.Vec) {
	zc = make([]r3.Vec, s.Maps.K())
	for p := range zc {
		zc[p] = s.Collocation(p)
	}
	return
}

func (s *Surface) Normal(p int) r3.Vec {
	return biotsavart.Normal(s.PanelVertexCoords(p))
}

func (s *Surface) Normals() (nc []r3.Vec) {
	nc = make([]r3.Vec, s.Maps.K())
	for p := range nc {
		nc[p] = s.Normal(p)
	}
	return
}

func (s *Surface) SegmentMidpoint(p, seg int) r3.Vec {
	a, b := s.Maps.SegmentEndpoints(p, seg)
	return r3.Scale(0.5, r3.Add(s.VertexCoord(a), s.VertexCoord(b)))
}

// SetFreeStream assigns a uniform external velocity to every vertex.
func (s *Surface) SetFreeStream(u r3.Vec) {
	for v := 0; v < s.Maps.Kzeta(); v++ {
		s.UExt[0][v], s.UExt[1][v], s.UExt[2][v] = u.X, u.Y, u.Z
	}
}

func (s *Surface) SetGamma(val float64) {
	for p := range s.Gamma {
		s.Gamma[p] = val
	}
}

// InducedVelocityAt sums the velocity induced at P by every ring of s.
func (s *Surface) InducedVelocityAt(P r3.Vec) (q r3.Vec) {
	for p := 0; p < s.Maps.K(); p++ {
		q = r3.Add(q, biotsavart.Panel(P, s.PanelVertexCoords(p), s.Gamma[p]))
	}
	return
}

func (s *Surface) relativeVertexVelocity(v int) r3.Vec {
	return r3.Vec{
		X: s.UExt[0][v] - s.ZetaDot[0][v],
		Y: s.UExt[1][v] - s.ZetaDot[1][v],
		Z: s.UExt[2][v] - s.ZetaDot[2][v],
	}
}

// ComputeInputVelocities interpolates UExt-ZetaDot at the collocation points
// and at the segment midpoints.
func (s *Surface) ComputeInputVelocities() {
	var (
		K   = s.Maps.K()
		wcv = s.PanelWcv()
	)
	s.UInputColl = make([]r3.Vec, K)
	s.UInputSeg = make([][4]r3.Vec, K)
	for p := 0; p < K; p++ {
		iv := s.Maps.PanelVertices(p)
		for v := 0; v < 4; v++ {
			s.UInputColl[p] = r3.Add(s.UInputColl[p], r3.Scale(wcv[v], s.relativeVertexVelocity(iv[v])))
		}
		for seg := 0; seg < 4; seg++ {
			a, b := s.Maps.SegmentEndpoints(p, seg)
			s.UInputSeg[p][seg] = r3.Scale(0.5, r3.Add(s.relativeVertexVelocity(a), s.relativeVertexVelocity(b)))
		}
	}
}

// ComputeInducedVelocities fills the induced velocity at the collocation
// points and at the segment midpoints from every source surface (bound and
// wake, s itself included).
func (s *Surface) ComputeInducedVelocities(sources []*Surface) {
	var (
		K = s.Maps.K()
	)
	s.UIndColl = make([]r3.Vec, K)
	s.UIndSeg = make([][4]r3.Vec, K)
	for p := 0; p < K; p++ {
		zc := s.Collocation(p)
		for _, src := range sources {
			s.UIndColl[p] = r3.Add(s.UIndColl[p], src.InducedVelocityAt(zc))
		}
		for seg := 0; seg < 4; seg++ {
			mid := s.SegmentMidpoint(p, seg)
			for _, src := range sources {
				s.UIndSeg[p][seg] = r3.Add(s.UIndSeg[p][seg], src.InducedVelocityAt(mid))
			}
		}
	}
}

func (s *Surface) RequireCollocationVelocities() error {
	switch {
	case s.UIndColl == nil:
		return &MissingFieldError{Surface: s.Name, Field: "UIndColl"}
	case s.UInputColl == nil:
		return &MissingFieldError{Surface: s.Name, Field: "UInputColl"}
	}
	return nil
}

func (s *Surface) RequireSegmentVelocities() error {
	switch {
	case s.UIndSeg == nil:
		return &MissingFieldError{Surface: s.Name, Field: "UIndSeg"}
	case s.UInputSeg == nil:
		return &MissingFieldError{Surface: s.Name, Field: "UInputSeg"}
	}
	return nil
}

// TotalCollocationVelocity is the induced plus input velocity at the
// collocation point of panel p.
func (s *Surface) TotalCollocationVelocity(p int) r3.Vec {
	return r3.Add(s.UIndColl[p], s.UInputColl[p])
}

// RelativeSegmentVelocity is the induced plus input velocity at the midpoint
// of segment seg of panel p.
func (s *Surface) RelativeSegmentVelocity(p, seg int) r3.Vec {
	return r3.Add(s.UIndSeg[p][seg], s.UInputSeg[p][seg])
}
