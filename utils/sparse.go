package utils

import (
	"math"

	"github.com/james-bowman/sparse"
)

// ToCSR compresses a dense block, dropping entries with |value| <= tol. The
// Jacobian blocks are structured-sparse (a panel only touches its own four
// vertices), so the CSR form is what a state-space builder consumes.
func ToCSR(m Matrix, tol float64) (R *sparse.CSR) {
	var (
		nr, nc = m.Dims()
		dok    = sparse.NewDOK(nr, nc)
	)
	for i := 0; i < nr; i++ {
		row := m.M.RawRowView(i)
		for j, val := range row {
			if math.Abs(val) > tol {
				dok.Set(i, j, val)
			}
		}
	}
	R = dok.ToCSR()
	return
}

func NNZ(m Matrix, tol float64) int {
	return ToCSR(m, tol).NNZ()
}
