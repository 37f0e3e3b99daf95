package biotsavart

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/golinuvlm/utils"
)

const (
	// Points closer than VortexRadius to the line through a filament see no
	// velocity from that filament. This includes points on the filament itself,
	// e.g. the mid-segment points where quasi-steady forces are evaluated.
	VortexRadius   = 1.e-6
	VortexRadiusSq = VortexRadius * VortexRadius
	cfact          = 0.25 / math.Pi
)

// Ring ordering of a vortex-ring panel: segment s runs from corner
// ringStart[s] to corner ringEnd[s].
var (
	ringStart = [4]int{0, 1, 2, 3}
	ringEnd   = [4]int{1, 2, 3, 0}
)

// Jac3 holds the Jacobian of a 3-vector with respect to a 3-vector,
// J[i][j] = dQ_i/dx_j.
type Jac3 [3][3]float64

// ProjectRows returns n^T J, i.e. the derivative of n.Q with respect to each
// component of x, holding n constant.
func (J Jac3) ProjectRows(n r3.Vec) (p [3]float64) {
	for j := 0; j < 3; j++ {
		p[j] = n.X*J[0][j] + n.Y*J[1][j] + n.Z*J[2][j]
	}
	return
}

func (J Jac3) Add(A Jac3) (R Jac3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = J[i][j] + A[i][j]
		}
	}
	return
}

// Segment returns the velocity induced at P by a straight vortex filament
// running from A to B with circulation gamma.
func Segment(P, A, B r3.Vec, gamma float64) (q r3.Vec) {
	var (
		ra  = r3.Sub(P, A)
		rb  = r3.Sub(P, B)
		rab = r3.Sub(B, A)
		c   = r3.Cross(ra, rb)
		c2  = r3.Norm2(c)
	)
	if c2 <= VortexRadiusSq*r3.Norm2(rab) {
		return
	}
	f := r3.Dot(rab, r3.Sub(r3.Scale(1./r3.Norm(ra), ra), r3.Scale(1./r3.Norm(rb), rb)))
	q = r3.Scale(cfact*gamma*f/c2, c)
	return
}

// Panel returns the velocity induced at P by a vortex ring with corners zeta
// and circulation gamma.
func Panel(P r3.Vec, zeta [4]r3.Vec, gamma float64) (q r3.Vec) {
	for s := 0; s < 4; s++ {
		q = r3.Add(q, Segment(P, zeta[ringStart[s]], zeta[ringEnd[s]], gamma))
	}
	return
}

// DSegment returns the analytic Jacobians of Segment(P,A,B,gamma) with
// respect to P, A and B. Inside the vortex core all three are zero.
func DSegment(P, A, B r3.Vec, gamma float64) (dP, dA, dB Jac3) {
	var (
		a  = r3.Sub(P, A)
		b  = r3.Sub(P, B)
		d  = r3.Sub(B, A)
		c  = r3.Cross(a, b)
		c2 = r3.Norm2(c)
	)
	if c2 <= VortexRadiusSq*r3.Norm2(d) {
		return
	}
	var (
		ra, rb = r3.Norm(a), r3.Norm(b)
		ea, eb = r3.Scale(1./ra, a), r3.Scale(1./rb, b)
		K      = cfact * gamma
		f      = r3.Dot(d, r3.Sub(ea, eb))
		g      = 1. / c2
		g2     = utils.POW(g, 2)
		// gradients of f and g = 1/|a x b|^2 w.r.t. a and b
		dfa = r3.Add(r3.Sub(ea, eb), r3.Scale(1./ra, r3.Sub(d, r3.Scale(r3.Dot(ea, d), ea))))
		dfb = r3.Sub(r3.Sub(eb, ea), r3.Scale(1./rb, r3.Sub(d, r3.Scale(r3.Dot(eb, d), eb))))
		dga = r3.Scale(-2*g2, r3.Cross(b, c))
		dgb = r3.Scale(2*g2, r3.Cross(a, c))
		cv  = vec(c)
		ta  = vec(r3.Add(r3.Scale(g, dfa), r3.Scale(f, dga)))
		tb  = vec(r3.Add(r3.Scale(g, dfb), r3.Scale(f, dgb)))
		Sa  = skew(a)
		Sb  = skew(b)
	)
	// d(a x b)/da = -skew(b), d(a x b)/db = skew(a)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ja := K * (cv[i]*ta[j] - f*g*Sb[i][j])
			jb := K * (cv[i]*tb[j] + f*g*Sa[i][j])
			dP[i][j] = ja + jb
			dA[i][j] = -ja
			dB[i][j] = -jb
		}
	}
	return
}

// DPanel returns the analytic Jacobians of Panel(P,zeta,gamma) with respect
// to P and to each of the four corners.
func DPanel(P r3.Vec, zeta [4]r3.Vec, gamma float64) (dP Jac3, dZeta [4]Jac3) {
	for s := 0; s < 4; s++ {
		a, b := ringStart[s], ringEnd[s]
		sP, sA, sB := DSegment(P, zeta[a], zeta[b], gamma)
		dP = dP.Add(sP)
		dZeta[a] = dZeta[a].Add(sA)
		dZeta[b] = dZeta[b].Add(sB)
	}
	return
}

// Normal is the unit normal of a vortex ring, taken along the cross product
// of its diagonals.
func Normal(zeta [4]r3.Vec) r3.Vec {
	return r3.Unit(r3.Cross(r3.Sub(zeta[2], zeta[0]), r3.Sub(zeta[3], zeta[1])))
}

// DNormalDotVelocity returns the gradient of uc.n with respect to each corner
// of the ring, n being Normal(zeta) and uc held fixed. D[v][j] is the
// derivative with respect to component j of corner v.
func DNormalDotVelocity(zeta [4]r3.Vec, uc r3.Vec) (D [4][3]float64) {
	var (
		d1 = r3.Sub(zeta[2], zeta[0])
		d2 = r3.Sub(zeta[3], zeta[1])
		w  = r3.Cross(d1, d2)
		wn = r3.Norm(w)
		n  = r3.Scale(1./wn, w)
		// gradient w.r.t. the unnormalised normal
		gw = r3.Scale(1./wn, r3.Sub(uc, r3.Scale(r3.Dot(n, uc), n)))
		g1 = vec(r3.Cross(d2, gw))
		g2 = vec(r3.Cross(gw, d1))
	)
	for j := 0; j < 3; j++ {
		D[0][j] = -g1[j]
		D[2][j] = g1[j]
		D[1][j] = -g2[j]
		D[3][j] = g2[j]
	}
	return
}

// JoukowskiSegment is the quasi-steady force fact*gamma*(v x (B-A)) on a
// filament from A to B immersed in the relative velocity v.
func JoukowskiSegment(A, B, v r3.Vec, gamma, fact float64) r3.Vec {
	return r3.Scale(fact*gamma, r3.Cross(v, r3.Sub(B, A)))
}

func vec(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func skew(v r3.Vec) [3][3]float64 {
	return [3][3]float64{
		{0, -v.Z, v.Y},
		{v.Z, 0, -v.X},
		{-v.Y, v.X, 0},
	}
}
