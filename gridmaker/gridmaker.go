// Package gridmaker rasterizes sparse atomic point sources into dense
// channels x X x Y x Z voxel grids, and back-propagates gradients from such
// grids onto per-atom coordinates and type weights.
//
// GridMaker is the single stateful object: a handful of geometric and
// kernel constants, immutable except through its Set* methods, which
// re-derive dim and the precomputed density coefficients before returning.
// The actual numerical work is delegated to a raster.Backend (backend/cpu
// or backend/webgpu); gridmaker itself only validates shapes and resolves
// geometry, leaving computation to whichever tensor.Backend it is given.
package gridmaker

import (
	"fmt"
	"math"

	"github.com/atomraster/gridmaker/internal/kernel"
)

// GridMaker holds grid geometry and kernel configuration shared by every
// Forward/Backward/BackwardRelevance call it dispatches.
type GridMaker struct {
	resolution             float64
	dimension               float64
	dim                     int
	radiusScale             float64
	gaussianRadiusMultiple  float64
	finalRadiusMultiple     float64
	binary                  bool
	a, b, c, d, e           float64 // precomputed density coefficients (kernel.Coefficients)
}

// Option configures a GridMaker at construction time.
type Option func(*GridMaker) error

// WithResolution sets the voxel spacing in Angstroms. Default 0.5.
func WithResolution(resolution float64) Option {
	return func(g *GridMaker) error {
		if resolution <= 0 {
			return fmt.Errorf("gridmaker: resolution must be positive, got %v", resolution)
		}
		g.resolution = resolution
		return nil
	}
}

// WithDimension sets the cubic grid side length in Angstroms. Default 0.
func WithDimension(dimension float64) Option {
	return func(g *GridMaker) error {
		if dimension < 0 {
			return fmt.Errorf("gridmaker: dimension must be non-negative, got %v", dimension)
		}
		g.dimension = dimension
		return nil
	}
}

// WithBinary enables binary occupancy density: 1 inside the cutoff, 0
// outside, with no smooth kernel and no meaningful gradient.
func WithBinary(binary bool) Option {
	return func(g *GridMaker) error {
		g.binary = binary
		return nil
	}
}

// WithRadiusScale sets the multiplier applied to every input atom radius.
// Default 1.0.
func WithRadiusScale(scale float64) Option {
	return func(g *GridMaker) error {
		if scale <= 0 {
			return fmt.Errorf("gridmaker: radius scale must be positive, got %v", scale)
		}
		g.radiusScale = scale
		return nil
	}
}

// WithGaussianRadiusMultiple sets G, the multiple of scaled atomic radius at
// which the kernel switches from Gaussian to quadratic tail. Default 1.0. F,
// the multiple at which density reaches zero, is always re-derived from G
// (F = (1+2G^2)/(2G)) and cannot be configured independently.
func WithGaussianRadiusMultiple(g float64) Option {
	return func(gm *GridMaker) error {
		if g <= 0 {
			return fmt.Errorf("gridmaker: gaussian radius multiple must be positive, got %v", g)
		}
		gm.gaussianRadiusMultiple = g
		gm.finalRadiusMultiple = kernel.DefaultFinalRadiusMultiple(g)
		return nil
	}
}

// New builds a GridMaker from the given options, deriving dim and the
// density coefficients before returning.
func New(opts ...Option) (*GridMaker, error) {
	g := &GridMaker{
		resolution:             0.5,
		radiusScale:            1.0,
		gaussianRadiusMultiple: 1.0,
	}
	g.finalRadiusMultiple = kernel.DefaultFinalRadiusMultiple(g.gaussianRadiusMultiple)

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	g.recompute()
	return g, nil
}

// recompute re-derives dim and A,B,C,D,E. A, B, C depend only on G and F and
// are cached as-is; D and E are cached here at a nominal effective radius of
// 1 for introspection (Coefficients()) but are re-derived per atom's actual
// effective radius inside RasterizeBackward, since they scale with 1/r'^2
// and 1/r' (spec.md 4.1).
func (g *GridMaker) recompute() {
	g.dim = int(math.Round(g.dimension/g.resolution)) + 1
	coef := kernel.DeriveCoefficients(g.gaussianRadiusMultiple, g.finalRadiusMultiple, 1.0)
	g.a, g.b, g.c, g.d, g.e = coef.A, coef.B, coef.C, coef.D, coef.E
}

// SetResolution updates the voxel spacing and re-derives dim and the
// density coefficients.
func (g *GridMaker) SetResolution(resolution float64) error {
	if resolution <= 0 {
		return fmt.Errorf("gridmaker: resolution must be positive, got %v", resolution)
	}
	g.resolution = resolution
	g.recompute()
	return nil
}

// SetDimension updates the cubic grid side length and re-derives dim.
func (g *GridMaker) SetDimension(dimension float64) error {
	if dimension < 0 {
		return fmt.Errorf("gridmaker: dimension must be non-negative, got %v", dimension)
	}
	g.dimension = dimension
	g.recompute()
	return nil
}

// SetBinary toggles binary occupancy mode.
func (g *GridMaker) SetBinary(binary bool) {
	g.binary = binary
}

// SetRadiusScale updates the per-atom radius multiplier.
func (g *GridMaker) SetRadiusScale(scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("gridmaker: radius scale must be positive, got %v", scale)
	}
	g.radiusScale = scale
	g.recompute()
	return nil
}

// SetGaussianRadiusMultiple updates G, resets F to its default derivation,
// and re-derives the density coefficients.
func (g *GridMaker) SetGaussianRadiusMultiple(gaussian float64) error {
	if gaussian <= 0 {
		return fmt.Errorf("gridmaker: gaussian radius multiple must be positive, got %v", gaussian)
	}
	g.gaussianRadiusMultiple = gaussian
	g.finalRadiusMultiple = kernel.DefaultFinalRadiusMultiple(gaussian)
	g.recompute()
	return nil
}

// Resolution returns the voxel spacing in Angstroms.
func (g *GridMaker) Resolution() float64 { return g.resolution }

// Dimension returns the cubic grid side length in Angstroms.
func (g *GridMaker) Dimension() float64 { return g.dimension }

// Dim returns the number of voxels per side.
func (g *GridMaker) Dim() int { return g.dim }

// RadiusScale returns the per-atom radius multiplier.
func (g *GridMaker) RadiusScale() float64 { return g.radiusScale }

// GaussianRadiusMultiple returns G.
func (g *GridMaker) GaussianRadiusMultiple() float64 { return g.gaussianRadiusMultiple }

// FinalRadiusMultiple returns F.
func (g *GridMaker) FinalRadiusMultiple() float64 { return g.finalRadiusMultiple }

// Binary reports whether binary occupancy mode is enabled.
func (g *GridMaker) Binary() bool { return g.binary }

// Coefficients returns the precomputed A,B,C,D,E, evaluated at a nominal
// effective radius of 1 (D and E are re-derived per atom at call time; see
// recompute).
func (g *GridMaker) Coefficients() kernel.Coefficients {
	return kernel.Coefficients{A: g.a, B: g.b, C: g.c, D: g.d, E: g.e}
}
