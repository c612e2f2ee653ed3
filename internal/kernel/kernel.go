// Package kernel implements the piecewise Gaussian/quadratic radial density
// profile used to rasterize an atom onto a voxel grid, and its analytic
// derivative. The functions here are pure and stateless: given a distance
// and an effective radius they return the same value on host or device.
package kernel

import "math"

// Coefficients are the quadratic-tail constants derived from the
// Gaussian/quadratic transition point G and the outer cutoff F. A, B, C
// depend only on G and F; D and E also depend on the effective radius they
// were derived for. All must be recomputed whenever G or F changes.
//
// The quadratic A*x^2 + B*x + C is chosen to agree with the Gaussian
// exp(-2*x^2) in value and first derivative at x=G, and to reach zero at
// x=F. D and E fold the 1/r' scaling into the derivative so the hot loop
// avoids a division per voxel.
type Coefficients struct {
	A, B, C float64
	D, E    float64
}

// DefaultFinalRadiusMultiple returns the final_radius_multiple F that makes
// the quadratic tail's derivative vanish at the cutoff, given the
// Gaussian/quadratic transition multiple G. This is the unique choice that
// keeps the full kernel C1 at the outer boundary.
func DefaultFinalRadiusMultiple(g float64) float64 {
	return (1 + 2*g*g) / (2 * g)
}

// DeriveCoefficients computes A, B, C, D, E for the quadratic tail between
// x=G and x=F, matching the Gaussian core's value and slope at x=G and
// reaching zero at x=F. r is the effective radius the coefficients will be
// evaluated against; D and E bake in the 1/r and 1/r^2 scaling so the
// derivative can be computed as D*d+E without a division in the hot loop.
func DeriveCoefficients(g, f, r float64) Coefficients {
	gaussAtG := math.Exp(-2 * g * g)
	// d/dx[exp(-2x^2)] at x=G
	gaussSlopeAtG := -4 * g * gaussAtG

	// Solve A*G^2+B*G+C = gaussAtG, 2*A*G+B = gaussSlopeAtG, A*F^2+B*F+C = 0
	// for A, B, C. Subtracting the first equation from the third and
	// substituting B from the second collapses to a single equation in A.
	denom := (f - g) * (f - g)
	a := -(gaussAtG + gaussSlopeAtG*(f-g)) / denom
	b := gaussSlopeAtG - 2*a*g
	c := -a*f*f - b*f

	return Coefficients{
		A: a, B: b, C: c,
		D: 2 * a / (r * r),
		E: b / r,
	}
}

// Density evaluates rho(d, r') for distance d and effective radius rEff.
// When binary is true the profile is a hard-sphere indicator with radius
// F*rEff instead of the smooth Gaussian/quadratic profile; f locates the
// cutoff and coef is not used.
func Density(d, rEff float64, binary bool, g, f float64, coef Coefficients) float64 {
	if rEff <= 0 {
		return 0
	}
	if binary {
		if d <= f*rEff {
			return 1
		}
		return 0
	}

	x := d / rEff
	switch {
	case x <= g:
		return math.Exp(-2 * x * x)
	case x <= f:
		return coef.A*x*x + coef.B*x + coef.C
	default:
		return 0
	}
}

// DDensity evaluates d(rho)/d(d) at distance d for effective radius rEff.
// Binary mode has no meaningful derivative; callers must not invoke backward
// passes against a binary grid (spec: unspecified behavior).
func DDensity(d, rEff float64, g, f float64, coef Coefficients) float64 {
	if rEff <= 0 {
		return 0
	}

	x := d / rEff
	switch {
	case x <= g:
		return -(4 * d / (rEff * rEff)) * math.Exp(-2*x*x)
	case x <= f:
		return coef.D*d + coef.E
	default:
		return 0
	}
}
