package lattice

import (
	"fmt"
)

// Local corner offsets of a panel: corner v of panel (m,n) is vertex
// (m+Dmver[v], n+Dnver[v]). Corners run counter-clockwise seen from the
// normal side. Segment s of a panel joins corner SegStart[s] to SegEnd[s].
var (
	Dmver    = [4]int{0, 1, 1, 0}
	Dnver    = [4]int{0, 0, 1, 1}
	SegStart = [4]int{0, 1, 2, 3}
	SegEnd   = [4]int{1, 2, 3, 0}
)

// GridIndex owns the flattening conventions of an M x N panel lattice:
// panels are numbered row-major over (M,N), vertices row-major over
// (M+1,N+1), and a vertex displacement vector stores the x, y and z
// components as three contiguous blocks of Kzeta entries.
type GridIndex struct {
	M, N int
}

func NewGridIndex(M, N int) (g GridIndex, err error) {
	if M < 1 || N < 1 {
		err = fmt.Errorf("lattice needs at least one panel in each direction, have M,N = %d,%d", M, N)
		return
	}
	g = GridIndex{M: M, N: N}
	return
}

func (g GridIndex) K() int     { return g.M * g.N }
func (g GridIndex) Kzeta() int { return (g.M + 1) * (g.N + 1) }

func (g GridIndex) Panel(m, n int) int { return m*g.N + n }

func (g GridIndex) PanelMN(p int) (m, n int) {
	m = p / g.N
	n = p - m*g.N
	return
}

func (g GridIndex) Vertex(m, n int) int { return m*(g.N+1) + n }

func (g GridIndex) VertexMN(v int) (m, n int) {
	m = v / (g.N + 1)
	n = v - m*(g.N+1)
	return
}

// PanelVertices returns the global vertex index of each corner of panel p.
func (g GridIndex) PanelVertices(p int) (iv [4]int) {
	m, n := g.PanelMN(p)
	for v := 0; v < 4; v++ {
		iv[v] = g.Vertex(m+Dmver[v], n+Dnver[v])
	}
	return
}

// SegmentEndpoints returns the global vertex indices joined by segment s of
// panel p, in the direction of circulation.
func (g GridIndex) SegmentEndpoints(p, s int) (a, b int) {
	iv := g.PanelVertices(p)
	return iv[SegStart[s]], iv[SegEnd[s]]
}

// Dof returns the position of component comp of vertex v in a flattened
// displacement vector.
func (g GridIndex) Dof(v, comp int) int { return v + comp*g.Kzeta() }

func (g GridIndex) VertexDofs(v int) (dofs [3]int) {
	for comp := 0; comp < 3; comp++ {
		dofs[comp] = g.Dof(v, comp)
	}
	return
}

// TrailingEdgeVertex is vertex n of the last chordwise row.
func (g GridIndex) TrailingEdgeVertex(n int) int { return g.Vertex(g.M, n) }

func (g GridIndex) String() string {
	return fmt.Sprintf("M,N = %d,%d (K = %d, Kzeta = %d)", g.M, g.N, g.K(), g.Kzeta())
}
