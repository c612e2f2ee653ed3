package gridmaker

import (
	"errors"
	"testing"

	"github.com/atomraster/gridmaker/coordset"
	"github.com/atomraster/gridmaker/internal/backend/cpu"
	"github.com/atomraster/gridmaker/tensor"
	"github.com/stretchr/testify/require"
)

func mustRaw(t *testing.T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	return raw
}

func TestNewAppliesDefaults(t *testing.T) {
	g, err := New()
	require.NoError(t, err)
	require.Equal(t, 0.5, g.Resolution())
	require.Equal(t, 1.0, g.RadiusScale())
	require.Equal(t, 1.0, g.GaussianRadiusMultiple())
	require.False(t, g.Binary())
	require.Equal(t, 1, g.Dim()) // dimension 0 -> round(0/0.5)+1
}

func TestNewComputesDimFromDimensionAndResolution(t *testing.T) {
	g, err := New(WithResolution(0.5), WithDimension(23.5))
	require.NoError(t, err)
	require.Equal(t, 48, g.Dim())
}

func TestWithResolutionRejectsNonPositive(t *testing.T) {
	_, err := New(WithResolution(0))
	require.Error(t, err)
	_, err = New(WithResolution(-1))
	require.Error(t, err)
}

func TestWithDimensionRejectsNegative(t *testing.T) {
	_, err := New(WithDimension(-1))
	require.Error(t, err)
}

func TestWithGaussianRadiusMultipleResetsFinalDefault(t *testing.T) {
	g, err := New(WithGaussianRadiusMultiple(1.5))
	require.NoError(t, err)
	require.InDelta(t, (1+2*1.5*1.5)/(2*1.5), g.FinalRadiusMultiple(), 1e-12)
}

func TestSetResolutionRecomputesDim(t *testing.T) {
	g, err := New(WithResolution(0.5), WithDimension(10))
	require.NoError(t, err)
	before := g.Dim()
	require.NoError(t, g.SetResolution(1.0))
	require.NotEqual(t, before, g.Dim())
}

func TestSetRadiusScaleRejectsNonPositive(t *testing.T) {
	g, err := New()
	require.NoError(t, err)
	require.Error(t, g.SetRadiusScale(0))
}

func TestForwardRejectsInvalidCoordset(t *testing.T) {
	g, err := New(WithResolution(0.5), WithDimension(5))
	require.NoError(t, err)
	backend := cpu.New()

	set := &coordset.Set{
		Coords:    [][3]float32{{0, 0, 0}},
		TypeIndex: []float32{0, 1}, // wrong length
		Radii:     []float32{1.0},
	}
	out := mustRaw(t, tensor.Shape{1, g.Dim(), g.Dim(), g.Dim()})
	err = g.Forward([3]float64{0, 0, 0}, set, backend, out)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestForwardRejectsWrongOutputShape(t *testing.T) {
	g, err := New(WithResolution(0.5), WithDimension(5))
	require.NoError(t, err)
	backend := cpu.New()

	set := &coordset.Set{
		Coords:    [][3]float32{{0, 0, 0}},
		TypeIndex: []float32{0},
		Radii:     []float32{1.0},
	}
	out := mustRaw(t, tensor.Shape{1, g.Dim() + 1, g.Dim(), g.Dim()})
	err = g.Forward([3]float64{0, 0, 0}, set, backend, out)
	require.Error(t, err)
	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	require.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestForwardProducesPeakDensityAtAtomCenter(t *testing.T) {
	g, err := New(WithResolution(0.5), WithDimension(10))
	require.NoError(t, err)
	backend := cpu.New()

	set := &coordset.Set{
		Coords:    [][3]float32{{0, 0, 0}},
		TypeIndex: []float32{0},
		Radii:     []float32{1.0},
	}
	out := mustRaw(t, tensor.Shape{1, g.Dim(), g.Dim(), g.Dim()})
	require.NoError(t, g.Forward([3]float64{0, 0, 0}, set, backend, out))

	data := out.AsFloat32()
	mid := g.Dim() / 2
	centerIdx := (mid*g.Dim()+mid)*g.Dim() + mid
	require.InDelta(t, 1.0, data[centerIdx], 1e-2)
}

func TestBackwardRequiresTypeGradientForVectorTypedSets(t *testing.T) {
	g, err := New(WithResolution(0.5), WithDimension(5))
	require.NoError(t, err)
	backend := cpu.New()

	set := &coordset.Set{
		Coords:     [][3]float32{{0, 0, 0}},
		TypeVector: []float32{0.5, 0.5},
		NumTypes:   2,
		Radii:      []float32{1.0},
	}
	gridGrad := mustRaw(t, tensor.Shape{2, g.Dim(), g.Dim(), g.Dim()})
	atomGrad := mustRaw(t, tensor.Shape{1, 3})

	err = g.Backward([3]float64{0, 0, 0}, set, backend, gridGrad, atomGrad, nil)
	require.Error(t, err)
	var typeErr *TypeEncodingError
	require.True(t, errors.As(err, &typeErr))
	require.True(t, errors.Is(err, ErrTypeEncodingMissing))
}

func TestBackwardRejectsWrongAtomGradShape(t *testing.T) {
	g, err := New(WithResolution(0.5), WithDimension(5))
	require.NoError(t, err)
	backend := cpu.New()

	set := &coordset.Set{
		Coords:    [][3]float32{{0, 0, 0}},
		TypeIndex: []float32{0},
		Radii:     []float32{1.0},
	}
	gridGrad := mustRaw(t, tensor.Shape{1, g.Dim(), g.Dim(), g.Dim()})
	atomGrad := mustRaw(t, tensor.Shape{1, 2}) // should be N,3

	err = g.Backward([3]float64{0, 0, 0}, set, backend, gridGrad, atomGrad, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestBackwardRelevanceRequiresIndexedTypes(t *testing.T) {
	g, err := New(WithResolution(0.5), WithDimension(5))
	require.NoError(t, err)
	backend := cpu.New()

	set := &coordset.Set{
		Coords:     [][3]float32{{0, 0, 0}},
		TypeVector: []float32{1.0},
		NumTypes:   1,
		Radii:      []float32{1.0},
	}
	density := mustRaw(t, tensor.Shape{1, g.Dim(), g.Dim(), g.Dim()})
	gridGrad := mustRaw(t, tensor.Shape{1, g.Dim(), g.Dim(), g.Dim()})
	relevance := mustRaw(t, tensor.Shape{1})

	err = g.BackwardRelevance([3]float64{0, 0, 0}, set, backend, density, gridGrad, relevance)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTypeEncodingMissing))
}

func TestBackwardRelevanceEndToEnd(t *testing.T) {
	g, err := New(WithResolution(0.5), WithDimension(10))
	require.NoError(t, err)
	backend := cpu.New()

	set := &coordset.Set{
		Coords:    [][3]float32{{0, 0, 0}, {0.3, 0, 0}},
		TypeIndex: []float32{0, 0},
		Radii:     []float32{1.0, 1.0},
	}
	density := mustRaw(t, tensor.Shape{1, g.Dim(), g.Dim(), g.Dim()})
	require.NoError(t, g.Forward([3]float64{0, 0, 0}, set, backend, density))

	gridGrad := mustRaw(t, tensor.Shape{1, g.Dim(), g.Dim(), g.Dim()})
	gridData := gridGrad.AsFloat32()
	for i := range gridData {
		gridData[i] = 1.0
	}

	relevance := mustRaw(t, tensor.Shape{2})
	require.NoError(t, g.BackwardRelevance([3]float64{0, 0, 0}, set, backend, density, gridGrad, relevance))

	relData := relevance.AsFloat32()
	require.Greater(t, relData[0], float32(0))
	require.Greater(t, relData[1], float32(0))
}
