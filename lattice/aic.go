package lattice

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/golinuvlm/biotsavart"
	"github.com/notargets/golinuvlm/utils"
)

// Target selects where influence coefficients are evaluated on the target surface.
type Target uint8

const (
	TargetCollocation Target = iota // one point per panel
	TargetSegments                  // the four segment midpoints of every panel
)

var (
	TargetNames = map[string]Target{
		"collocation": TargetCollocation,
		"segments":    TargetSegments,
	}
	TargetPrintNames = []string{"collocation", "segments"}
)

func NewTarget(label string) (t Target, err error) {
	var (
		ok bool
	)
	if t, ok = TargetNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown influence target %q, use one of %v", label, TargetPrintNames)
	}
	return
}

func (t Target) String() string {
	if int(t) >= len(TargetPrintNames) {
		return fmt.Sprintf("Target(%d)", t)
	}
	return TargetPrintNames[t]
}

// TargetPoints returns the evaluation points of s for target t together with
// the panel owning each point. Segment targets are ordered 4*panel+segment.
func (s *Surface) TargetPoints(t Target) (pts []r3.Vec, owner []int) {
	var (
		K = s.Maps.K()
	)
	switch t {
	case TargetSegments:
		pts, owner = make([]r3.Vec, 4*K), make([]int, 4*K)
		for p := 0; p < K; p++ {
			for seg := 0; seg < 4; seg++ {
				pts[4*p+seg], owner[4*p+seg] = s.SegmentMidpoint(p, seg), p
			}
		}
	default:
		pts, owner = s.Collocations(), make([]int, K)
		for p := range owner {
			owner[p] = p
		}
	}
	return
}

// AICOver returns the influence of a unit circulation on each panel of s at
// the target points of trg. Projected, the single matrix holds the velocity
// component along the normal of the target panel owning each point;
// otherwise three matrices hold the x, y and z components. Rows index target
// points, columns index the panels of s.
func (s *Surface) AICOver(trg *Surface, t Target, project bool) (aic []utils.Matrix) {
	var (
		K          = s.Maps.K()
		pts, owner = trg.TargetPoints(t)
		nc         = trg.Normals()
		rings      = make([][4]r3.Vec, K)
	)
	for p := 0; p < K; p++ {
		rings[p] = s.PanelVertexCoords(p)
	}
	if project {
		aic = []utils.Matrix{utils.NewMatrix(len(pts), K)}
		aic[0].SetName(fmt.Sprintf("AIC %s->%s", s.Name, trg.Name))
	} else {
		aic = make([]utils.Matrix, 3)
		for comp := range aic {
			aic[comp] = utils.NewMatrix(len(pts), K)
			aic[comp].SetName(fmt.Sprintf("AIC %s->%s [%d]", s.Name, trg.Name, comp))
		}
	}
	for i, P := range pts {
		for j := 0; j < K; j++ {
			q := biotsavart.Panel(P, rings[j], 1.)
			if project {
				aic[0].Set(i, j, r3.Dot(nc[owner[i]], q))
				continue
			}
			aic[0].Set(i, j, q.X)
			aic[1].Set(i, j, q.Y)
			aic[2].Set(i, j, q.Z)
		}
	}
	return
}
