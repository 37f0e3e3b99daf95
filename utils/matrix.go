package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major matrix used for every assembled block. It
// carries a name so that shape assertions and write-after-freeze errors can
// identify the offending block.
type Matrix struct {
	M        *mat.Dense
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		m,
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Data() []float64           { return m.M.RawMatrix().Data }
func (m Matrix) Name() string              { return m.name }

func (m *Matrix) SetName(name string) Matrix {
	m.name = name
	return *m
}

func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, m.Data())
	R = NewMatrix(nr, nc, dataR)
	R.name = m.name
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

// AddAt accumulates val into element (i,j).
func (m Matrix) AddAt(i, j int, val float64) Matrix { // Changes receiver
	var (
		raw = m.M.RawMatrix()
	)
	m.checkWritable()
	if i < 0 || i >= raw.Rows || j < 0 || j >= raw.Cols {
		panic(fmt.Errorf("index out of bounds in %q: (%d,%d) for shape (%d,%d)",
			m.name, i, j, raw.Rows, raw.Cols))
	}
	raw.Data[i*raw.Stride+j] += val
	return m
}

// AddBlock3 accumulates scale*J into the 3x3 sub-block addressed by the row
// and column index triplets, which need not be contiguous.
func (m Matrix) AddBlock3(rows, cols [3]int, J mat.Matrix, scale float64) Matrix { // Changes receiver
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.AddAt(rows[i], cols[j], scale*J.At(i, j))
		}
	}
	return m
}

// AssertShape panics when the receiver is not nr x nc. Shape mismatches
// between surfaces and accumulators are caller bugs, never recoverable.
func (m Matrix) AssertShape(nr, nc int) {
	var (
		r, c = m.Dims()
	)
	if r != nr || c != nc {
		panic(fmt.Errorf("unexpected %q shape: have (%d,%d), want (%d,%d)", m.name, r, c, nr, nc))
	}
}

func (m Matrix) MaxAbs() (max float64) {
	for _, val := range m.Data() {
		if math.Abs(val) > max {
			max = math.Abs(val)
		}
	}
	return
}

func (m Matrix) MaxAbsDiff(A Matrix) (max float64) {
	var (
		aD = A.Data()
	)
	m.AssertShape(A.Dims())
	for i, val := range m.Data() {
		if d := math.Abs(val - aD[i]); d > max {
			max = d
		}
	}
	return
}

// NonZeroCols lists the columns holding at least one entry with |value| > tol.
func (m Matrix) NonZeroCols(tol float64) (I Index) {
	var (
		nr, nc = m.Dims()
	)
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			if math.Abs(m.At(i, j)) > tol {
				I = append(I, j)
				break
			}
		}
	}
	return
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}
