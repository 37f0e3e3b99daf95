package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLinearize(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
M: 3
N: 2
Mstar: 4
Span: 2.
AlphaDeg: 5.
`)
	fileName := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(fileName, fileInput, 0644))
	ml := &ModelLinearize{InputFile: fileName, ParallelDegree: 2}
	ip, err := processInput(ml)
	require.NoError(t, err)
	assert.Equal(t, 3, ip.M)
	assert.Equal(t, 2, ip.N)
	assert.Equal(t, 2, ip.ParallelDegree)
	assert.Equal(t, 1.225, ip.Rho)
	assert.NoError(t, RunLinearize(ml, ip))

	_, err = processInput(&ModelLinearize{InputFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
	require.NoError(t, os.WriteFile(fileName, []byte("N: -2\n"), 0644))
	_, err = processInput(&ModelLinearize{InputFile: fileName})
	assert.Error(t, err)
}
