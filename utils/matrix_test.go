package utils

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	// Accumulation
	{
		M := NewMatrix(2, 3)
		M.AddAt(0, 1, 2.)
		M.AddAt(0, 1, 3.)
		M.AddAt(1, 2, -1.)
		assert.Equal(t, []float64{
			0, 5, 0,
			0, 0, -1,
		}, M.Data())
		assert.Equal(t, Index{1, 2}, M.NonZeroCols(0))
		assert.Equal(t, 5., M.MaxAbs())
	}
	// Block accumulation with scattered indices
	{
		M := NewMatrix(6, 6)
		J := mat.NewDense(3, 3, []float64{
			1, 2, 3,
			4, 5, 6,
			7, 8, 9,
		})
		rows, cols := [3]int{0, 2, 4}, [3]int{1, 3, 5}
		M.AddBlock3(rows, cols, J, 1)
		M.AddBlock3(rows, cols, J, -0.5)
		assert.InDelta(t, 0.5, M.At(0, 1), 1.e-15)
		assert.InDelta(t, 3.0, M.At(2, 5), 1.e-15)
		assert.InDelta(t, 4.5, M.At(4, 5), 1.e-15)
		assert.Equal(t, 0., M.At(1, 1))
		assert.Equal(t, 9, NNZ(M, 0))
	}
	// Copy and difference
	{
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		C := M.Copy()
		C.AddAt(1, 0, 0.25)
		assert.Equal(t, 0.25, C.MaxAbsDiff(M))
		assert.Equal(t, 3., M.At(1, 0))
	}
	// Guards
	{
		M := NewMatrix(2, 2)
		M.SetReadOnly("frozen")
		require.Panics(t, func() { M.AddAt(0, 0, 1) })
		W := NewMatrix(2, 2)
		W.SetName("W")
		require.Panics(t, func() { W.AddAt(2, 0, 1) })
		require.Panics(t, func() { W.AssertShape(3, 2) })
		require.NotPanics(t, func() { W.AssertShape(2, 2) })
		require.Panics(t, func() { NewMatrix(2, 2, []float64{1, 2, 3}) })
	}
	// NaN scan
	{
		M := NewMatrix(1, 2)
		assert.False(t, IsNan([]Matrix{M}))
		M.Set(0, 1, math.NaN())
		assert.True(t, IsNan([][]Matrix{{M}}))
	}
}
