package gridmaker

import (
	"fmt"

	"github.com/atomraster/gridmaker/coordset"
	"github.com/atomraster/gridmaker/internal/kernel"
	"github.com/atomraster/gridmaker/internal/raster"
	"github.com/atomraster/gridmaker/tensor"
)

// params resolves this GridMaker's configuration plus a call-specific
// center and channel count into a raster.Params.
func (g *GridMaker) params(center [3]float64, numTypes int) raster.Params {
	return raster.Params{
		Center:      center,
		Dim:         g.dim,
		NumTypes:    numTypes,
		Resolution:  g.resolution,
		RadiusScale: g.radiusScale,
		Gaussian:    g.gaussianRadiusMultiple,
		Final:       g.finalRadiusMultiple,
		Binary:      g.binary,
		Coef:        kernel.Coefficients{A: g.a, B: g.b, C: g.c, D: g.d, E: g.e},
	}
}

// checkGridShape validates a channels x dim x dim x dim tensor shape and
// returns its channel count.
func (g *GridMaker) checkGridShape(context string, shape tensor.Shape) (int, error) {
	want := tensor.Shape{-1, g.dim, g.dim, g.dim}
	if len(shape) != 4 || shape[0] <= 0 || shape[1] != g.dim || shape[2] != g.dim || shape[3] != g.dim {
		return 0, &ShapeError{Context: context, Expected: want, Got: shape}
	}
	return shape[0], nil
}

// Forward rasterizes set onto out, a channels x dim x dim x dim grid, using
// center as the grid's declared center in the same frame as set's
// coordinates. out is overwritten completely; callers need not zero it.
func (g *GridMaker) Forward(center [3]float64, set *coordset.Set, backend raster.Backend, out *tensor.RawTensor) error {
	if err := set.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	numTypes, err := g.checkGridShape("forward output", out.Shape())
	if err != nil {
		return err
	}
	return backend.RasterizeForward(set, g.params(center, numTypes), out.AsFloat32())
}

// Backward accumulates atom-coordinate gradients into atomGrad (shape N,3)
// from gridGradient (shape channels x dim x dim x dim). For vector-typed
// sets, typeGrad (shape N,numTypes) must be provided and receives per-atom
// type-weight gradients; for index-typed sets, typeGrad is ignored and may
// be nil.
func (g *GridMaker) Backward(center [3]float64, set *coordset.Set, backend raster.Backend, gridGradient *tensor.RawTensor, atomGrad *tensor.RawTensor, typeGrad *tensor.RawTensor) error {
	if err := set.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	numTypes, err := g.checkGridShape("backward grid gradient", gridGradient.Shape())
	if err != nil {
		return err
	}

	n := set.N()
	wantAtomGrad := tensor.Shape{n, 3}
	if !atomGrad.Shape().Equal(wantAtomGrad) {
		return &ShapeError{Context: "backward atom gradient", Expected: wantAtomGrad, Got: atomGrad.Shape()}
	}

	var typeGradData []float32
	if set.HasVectorTypes() {
		if typeGrad == nil {
			return &TypeEncodingError{Context: "vector-typed backward", Need: "a type gradient tensor"}
		}
		wantTypeGrad := tensor.Shape{n, numTypes}
		if !typeGrad.Shape().Equal(wantTypeGrad) {
			return &ShapeError{Context: "backward type gradient", Expected: wantTypeGrad, Got: typeGrad.Shape()}
		}
		typeGradData = typeGrad.AsFloat32()
	}

	return backend.RasterizeBackward(set, g.params(center, numTypes), gridGradient.AsFloat32(), atomGrad.AsFloat32(), typeGradData)
}

// BackwardRelevance distributes relevance-grid mass back onto atoms.
// Index-typed coordinate sets only.
func (g *GridMaker) BackwardRelevance(center [3]float64, set *coordset.Set, backend raster.Backend, density *tensor.RawTensor, gridGradient *tensor.RawTensor, relevance *tensor.RawTensor) error {
	if err := set.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	if !set.HasIndexedTypes() {
		return &TypeEncodingError{Context: "backward relevance", Need: "index-typed atoms"}
	}

	numTypes, err := g.checkGridShape("relevance density", density.Shape())
	if err != nil {
		return err
	}
	if _, err := g.checkGridShape("relevance grid gradient", gridGradient.Shape()); err != nil {
		return err
	}

	n := set.N()
	wantRelevance := tensor.Shape{n}
	if !relevance.Shape().Equal(wantRelevance) {
		return &ShapeError{Context: "relevance output", Expected: wantRelevance, Got: relevance.Shape()}
	}

	return backend.RasterizeBackwardRelevance(set, g.params(center, numTypes), density.AsFloat32(), gridGradient.AsFloat32(), relevance.AsFloat32())
}
