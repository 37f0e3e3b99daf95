package assembly

import (
	"fmt"

	"github.com/notargets/golinuvlm/biotsavart"
	"github.com/notargets/golinuvlm/lattice"
	"github.com/notargets/golinuvlm/utils"
)

// UcDncDzetaSurface returns the K x 3*Kzeta derivative of uc.nc with respect
// to the vertices of s, where nc is the normal of each panel and uc the total
// (induced plus input) velocity at its collocation point, held fixed. Each
// row only depends on the four corners of its own panel.
func UcDncDzetaSurface(s *lattice.Surface) (Der utils.Matrix, err error) {
	if err = s.RequireCollocationVelocities(); err != nil {
		return
	}
	var (
		K = s.Maps.K()
	)
	Der = utils.NewMatrix(K, 3*s.Maps.Kzeta())
	Der.SetName("UcDncDzeta " + s.Name)
	for p := 0; p < K; p++ {
		D := biotsavart.DNormalDotVelocity(s.PanelVertexCoords(p), s.TotalCollocationVelocity(p))
		for vv, iv := range s.Maps.PanelVertices(p) {
			for comp, dof := range s.Maps.VertexDofs(iv) {
				Der.Set(p, dof, D[vv][comp])
			}
		}
	}
	return
}

// UcDncDzetaSurfaces applies UcDncDzetaSurface to each surface in turn.
func UcDncDzetaSurfaces(surfs []*lattice.Surface) (Der []utils.Matrix, err error) {
	Der = make([]utils.Matrix, len(surfs))
	for ss, s := range surfs {
		if Der[ss], err = UcDncDzetaSurface(s); err != nil {
			err = fmt.Errorf("surface %d: %w", ss, err)
			return
		}
	}
	return
}
