package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	fileInput := []byte(`
Title: Twisted wing
M: 6
N: 8
Mstar: 20
Span: 12.
Twist: 0.05
AlphaDeg: 3.5
ParallelDegree: 4
`)
	ip := Defaults()
	require.NoError(t, ip.Parse(fileInput))
	assert.Equal(t, "Twisted wing", ip.Title)
	assert.Equal(t, 6, ip.M)
	assert.Equal(t, 8, ip.N)
	assert.Equal(t, 20, ip.Mstar)
	assert.Equal(t, 12., ip.Span)
	assert.Equal(t, 3.5, ip.AlphaDeg)
	assert.Equal(t, 4, ip.ParallelDegree)
	// untouched fields keep their defaults
	assert.Equal(t, 1.225, ip.Rho)
	assert.Equal(t, 1., ip.Chord)
	assert.Equal(t, 1., ip.GammaWake)
	ip.Print()
	{
		ip := Defaults()
		assert.Error(t, ip.Parse([]byte("M: 0\n")))
		ip = Defaults()
		assert.Error(t, ip.Parse([]byte("Rho: -1.\n")))
		ip = Defaults()
		assert.Error(t, ip.Parse([]byte("M: [1, 2]\n")))
	}
}
