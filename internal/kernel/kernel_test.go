package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultFinalRadiusMultiple(t *testing.T) {
	g := 1.5
	f := DefaultFinalRadiusMultiple(g)
	require.InDelta(t, (1+2*g*g)/(2*g), f, 1e-12)
}

func TestContinuityAtTransitionAndCutoff(t *testing.T) {
	const r = 1.0
	g := 1.5
	f := DefaultFinalRadiusMultiple(g)
	coef := DeriveCoefficients(g, f, r)

	const eps = 1e-6

	// Value and derivative agree at d = G*r from both sides.
	dG := g * r
	valBelow := Density(dG-eps, r, false, g, f, coef)
	valAbove := Density(dG+eps, r, false, g, f, coef)
	require.InDelta(t, valBelow, valAbove, 1e-4)

	slopeBelow := DDensity(dG-eps, r, g, f, coef)
	slopeAbove := DDensity(dG+eps, r, g, f, coef)
	require.InDelta(t, slopeBelow, slopeAbove, 1e-3)

	// Value and derivative vanish at d = F*r.
	dF := f * r
	require.InDelta(t, 0, Density(dF, r, false, g, f, coef), 1e-9)
	require.InDelta(t, 0, DDensity(dF, r, g, f, coef), 1e-6)
	require.InDelta(t, 0, Density(dF+eps, r, false, g, f, coef), 1e-9)
}

func TestDensityMatchesGaussianAtOrigin(t *testing.T) {
	g := 1.0
	f := DefaultFinalRadiusMultiple(g)
	coef := DeriveCoefficients(g, f, 2.0)
	require.InDelta(t, 1.0, Density(0, 2.0, false, g, f, coef), 1e-9)
}

func TestBinaryMode(t *testing.T) {
	g := 1.0
	f := DefaultFinalRadiusMultiple(g)
	coef := DeriveCoefficients(g, f, 2.0)

	require.Equal(t, 1.0, Density(0.5, 2.0, true, g, f, coef))
	require.Equal(t, 1.0, Density(f*2.0, 2.0, true, g, f, coef))
	require.Equal(t, 0.0, Density(f*2.0+0.01, 2.0, true, g, f, coef))
}

func TestDensityNonNegativeInSmoothMode(t *testing.T) {
	g := 1.0
	f := DefaultFinalRadiusMultiple(g)
	coef := DeriveCoefficients(g, f, 1.5)

	for d := 0.0; d < 6.0; d += 0.01 {
		require.GreaterOrEqual(t, Density(d, 1.5, false, g, f, coef), -1e-9, "d=%v", d)
	}
}

func TestZeroRadiusContributesNothing(t *testing.T) {
	g := 1.0
	f := DefaultFinalRadiusMultiple(g)
	coef := DeriveCoefficients(g, f, 0)
	require.Equal(t, 0.0, Density(0, 0, false, g, f, coef))
}
