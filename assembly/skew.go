package assembly

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Skew returns the matrix S with S*b = a x b for every b.
func Skew(a r3.Vec) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, -a.Z, a.Y,
		a.Z, 0, -a.X,
		-a.Y, a.X, 0,
	})
}
