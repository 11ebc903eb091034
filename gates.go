package main

import (
	"math"
	"math/cmplx"
)

// matrix2 is a single-qubit operator in the computational basis.
type matrix2 [2][2]complex128

var identity2 = matrix2{{1, 0}, {0, 1}}

// mul returns a·b (apply b first, then a).
func (a matrix2) mul(b matrix2) matrix2 {
	var out matrix2
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out[r][c] = a[r][0]*b[0][c] + a[r][1]*b[1][c]
		}
	}
	return out
}

// dagger returns the conjugate transpose.
func (a matrix2) dagger() matrix2 {
	return matrix2{
		{cmplx.Conj(a[0][0]), cmplx.Conj(a[1][0])},
		{cmplx.Conj(a[0][1]), cmplx.Conj(a[1][1])},
	}
}

// isIdentityUpToPhase reports whether the operator equals e^(iφ)·I within
// tol. Decoupling sequences like YXYX compose to -I; a global phase has no
// observable effect, so it counts as identity here.
func (a matrix2) isIdentityUpToPhase(tol float64) bool {
	if cmplx.Abs(a[0][1]) > tol || cmplx.Abs(a[1][0]) > tol {
		return false
	}
	if math.Abs(cmplx.Abs(a[0][0])-1) > tol {
		return false
	}
	return cmplx.Abs(a[0][0]-a[1][1]) <= tol
}

// singleQubitMatrix returns the operator for a single-qubit gate label,
// or ok=false for labels without a fixed 2×2 form (multi-qubit, MEASURE,
// BARRIER). Parameterized rotations read their angle from params.
func singleQubitMatrix(label string, dagger bool, params []float64) (matrix2, bool) {
	theta := 0.0
	if len(params) > 0 {
		theta = params[0]
	}

	var m matrix2
	switch label {
	case "I", "ID":
		m = identity2
	case "X":
		m = matrix2{{0, 1}, {1, 0}}
	case "Y":
		m = matrix2{{0, -1i}, {1i, 0}}
	case "Z":
		m = matrix2{{1, 0}, {0, -1}}
	case "H":
		h := complex(1/math.Sqrt2, 0)
		m = matrix2{{h, h}, {h, -h}}
	case "S":
		m = matrix2{{1, 0}, {0, 1i}}
	case "T":
		m = matrix2{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
	case "SX":
		m = matrix2{
			{complex(0.5, 0.5), complex(0.5, -0.5)},
			{complex(0.5, -0.5), complex(0.5, 0.5)},
		}
	case "RX":
		c := complex(math.Cos(theta/2), 0)
		s := complex(0, -math.Sin(theta/2))
		m = matrix2{{c, s}, {s, c}}
	case "RY":
		c := complex(math.Cos(theta/2), 0)
		s := complex(math.Sin(theta/2), 0)
		m = matrix2{{c, -s}, {s, c}}
	case "RZ":
		p := cmplx.Exp(complex(0, theta/2))
		m = matrix2{{cmplx.Conj(p), 0}, {0, p}}
	case "P", "U1":
		m = matrix2{{1, 0}, {0, cmplx.Exp(complex(0, theta))}}
	default:
		return matrix2{}, false
	}

	if dagger {
		m = m.dagger()
	}
	return m, true
}
