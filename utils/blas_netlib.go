//go:build netlib
// +build netlib

package utils

/*
#cgo LDFLAGS: -lopenblas -lgfortran -lm -lpthread
*/
import "C"

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Built with -tags netlib, dense products of influence matrices go through
// OpenBLAS instead of the pure Go BLAS.
func init() {
	blas64.Use(netblas.Implementation{})
	fmt.Println("Using netlib to accelerate BLAS")
}
