package assembly

import (
	"fmt"

	"github.com/notargets/golinuvlm/lattice"
	"github.com/notargets/golinuvlm/utils"
)

// AICs assembles the influence coefficients of every bound surface (AIC) and
// every wake (AICStar) over the targets of every bound surface.
// AIC[i][j] is the influence of bound[j] on bound[i] and AICStar[i][j] the
// influence of wake[j] on bound[i]. Each entry holds a single normal-projected
// matrix when project is set, else the x, y and z component matrices.
func AICs(bound, wake []*lattice.Surface, t lattice.Target, project bool) (AIC, AICStar [][][]utils.Matrix, err error) {
	if err = checkPairs(bound, wake); err != nil {
		return
	}
	var (
		nSurf = len(bound)
	)
	AIC = make([][][]utils.Matrix, nSurf)
	AICStar = make([][][]utils.Matrix, nSurf)
	for i, out := range bound {
		AIC[i] = make([][]utils.Matrix, nSurf)
		AICStar[i] = make([][]utils.Matrix, nSurf)
		for j := 0; j < nSurf; j++ {
			AIC[i][j] = bound[j].AICOver(out, t, project)
			AICStar[i][j] = wake[j].AICOver(out, t, project)
		}
	}
	return
}

func checkPairs(bound, wake []*lattice.Surface) (err error) {
	if len(bound) != len(wake) {
		err = fmt.Errorf("number of bound and wake surfaces must be equal, have %d and %d",
			len(bound), len(wake))
		return
	}
	for ss := range bound {
		if bound[ss] == nil || wake[ss] == nil {
			err = fmt.Errorf("surface pair %d is incomplete", ss)
			return
		}
		if bound[ss].Maps.N != wake[ss].Maps.N {
			err = fmt.Errorf("wake %q does not belong to %q: N = %d, want %d",
				wake[ss].Name, bound[ss].Name, wake[ss].Maps.N, bound[ss].Maps.N)
			return
		}
		if bound[ss].Rho != wake[ss].Rho {
			err = fmt.Errorf("wake %q does not belong to %q: rho = %v, want %v",
				wake[ss].Name, bound[ss].Name, wake[ss].Rho, bound[ss].Rho)
			return
		}
	}
	return
}
