package geom

import "github.com/chewxy/math32"

// Quadratic root solver used for curve extrema.
//
// Based on algorithms from kurbo (https://github.com/linebender/kurbo)
// with adaptations for Go idioms and float32 arithmetic.

// SolveQuadratic finds real roots of the quadratic equation ax^2 + bx + c = 0.
// Returns roots sorted in ascending order.
//
// The function is numerically robust:
// - If a is zero or nearly zero, treats as linear equation
// - If all coefficients are zero, returns a single 0.0
// - Handles edge cases with NaN and Inf gracefully
func SolveQuadratic(a, b, c float32) []float32 {
	// Scale coefficients to avoid overflow in discriminant calculation.
	sc0 := c / a
	sc1 := b / a

	if !isFinite(sc0) || !isFinite(sc1) {
		return solveQuadraticLinear(b, c)
	}

	arg := sc1*sc1 - 4.0*sc0
	if !isFinite(arg) {
		return solveQuadraticOverflow(sc0, sc1)
	}

	if arg < 0.0 {
		return nil
	}
	if arg == 0.0 {
		return []float32{-0.5 * sc1}
	}

	// Numerically stable formula avoiding cancellation.
	root1 := -0.5 * (sc1 + math32.Copysign(math32.Sqrt(arg), sc1))
	root2 := sc0 / root1
	if !isFinite(root2) {
		return []float32{root1}
	}
	if root1 > root2 {
		return []float32{root2, root1}
	}
	return []float32{root1, root2}
}

// solveQuadraticOverflow handles discriminant overflow.
func solveQuadraticOverflow(sc0, sc1 float32) []float32 {
	root1 := -sc1
	root2 := sc0 / root1
	if !isFinite(root2) {
		return []float32{root1}
	}
	if root1 > root2 {
		return []float32{root2, root1}
	}
	return []float32{root1, root2}
}

// solveQuadraticLinear handles the case when a is zero or very small.
func solveQuadraticLinear(b, c float32) []float32 {
	root := -c / b
	if isFinite(root) {
		return []float32{root}
	}
	if c == 0.0 && b == 0.0 {
		return []float32{0.0}
	}
	return nil
}

// SolveQuadraticInUnitInterval returns roots of ax^2 + bx + c = 0 that lie in [0, 1].
// This is useful for finding parameter values on Bezier curves.
func SolveQuadraticInUnitInterval(a, b, c float32) []float32 {
	roots := SolveQuadratic(a, b, c)
	if len(roots) == 0 {
		return nil
	}

	const eps = 1e-6
	result := make([]float32, 0, len(roots))
	for _, r := range roots {
		if r >= -eps && r <= 1.0+eps {
			if r < 0.0 {
				r = 0.0
			} else if r > 1.0 {
				r = 1.0
			}
			result = append(result, r)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// isFinite returns true if x is neither infinite nor NaN.
func isFinite(x float32) bool {
	return !math32.IsInf(x, 0) && !math32.IsNaN(x)
}
