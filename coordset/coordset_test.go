package coordset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsIndexedSet(t *testing.T) {
	s := &Set{
		Coords:    [][3]float32{{0, 0, 0}, {1, 0, 0}},
		TypeIndex: []float32{0, 1},
		Radii:     []float32{1.0, 1.0},
	}
	require.NoError(t, s.Validate())
	require.True(t, s.HasIndexedTypes())
	require.False(t, s.HasVectorTypes())
	require.Equal(t, 2, s.N())
}

func TestValidateAcceptsVectorSet(t *testing.T) {
	s := &Set{
		Coords:     [][3]float32{{0, 0, 0}},
		TypeVector: []float32{0.2, 0.8},
		NumTypes:   2,
		Radii:      []float32{1.0},
	}
	require.NoError(t, s.Validate())
	require.True(t, s.HasVectorTypes())
}

func TestValidateRejectsBothEncodings(t *testing.T) {
	s := &Set{
		Coords:     [][3]float32{{0, 0, 0}},
		TypeIndex:  []float32{0},
		TypeVector: []float32{1.0},
		NumTypes:   1,
		Radii:      []float32{1.0},
	}
	require.Error(t, s.Validate())
}

func TestValidateRejectsNeitherEncoding(t *testing.T) {
	s := &Set{
		Coords: [][3]float32{{0, 0, 0}},
		Radii:  []float32{1.0},
	}
	require.Error(t, s.Validate())
}

func TestValidateRejectsRadiiLengthMismatch(t *testing.T) {
	s := &Set{
		Coords:    [][3]float32{{0, 0, 0}, {1, 0, 0}},
		TypeIndex: []float32{0, 1},
		Radii:     []float32{1.0},
	}
	require.Error(t, s.Validate())
}

func TestValidateRejectsVectorSetMissingNumTypes(t *testing.T) {
	s := &Set{
		Coords:     [][3]float32{{0, 0, 0}},
		TypeVector: []float32{1.0},
		Radii:      []float32{1.0},
	}
	require.Error(t, s.Validate())
}

func TestValidateRejectsVectorLengthMismatch(t *testing.T) {
	s := &Set{
		Coords:     [][3]float32{{0, 0, 0}},
		TypeVector: []float32{1.0, 2.0, 3.0},
		NumTypes:   2,
		Radii:      []float32{1.0},
	}
	require.Error(t, s.Validate())
}

func TestTypeWeightIndexedOneHot(t *testing.T) {
	s := &Set{
		Coords:    [][3]float32{{0, 0, 0}},
		TypeIndex: []float32{1},
		Radii:     []float32{1.0},
	}
	require.Equal(t, float32(0), s.TypeWeight(0, 0))
	require.Equal(t, float32(1), s.TypeWeight(0, 1))
}

func TestTypeWeightVectorRaw(t *testing.T) {
	s := &Set{
		Coords:     [][3]float32{{0, 0, 0}},
		TypeVector: []float32{0.2, 0.8},
		NumTypes:   2,
		Radii:      []float32{1.0},
	}
	require.Equal(t, float32(0.2), s.TypeWeight(0, 0))
	require.Equal(t, float32(0.8), s.TypeWeight(0, 1))
}

func TestMergeConcatenatesIndexedSets(t *testing.T) {
	a := &Set{Coords: [][3]float32{{0, 0, 0}}, TypeIndex: []float32{0}, Radii: []float32{1.0}}
	b := &Set{Coords: [][3]float32{{1, 0, 0}, {2, 0, 0}}, TypeIndex: []float32{1, 0}, Radii: []float32{1.1, 0.9}}

	merged, err := Merge(a, b)
	require.NoError(t, err)
	require.Equal(t, 3, merged.N())
	require.Equal(t, []float32{0, 1, 0}, merged.TypeIndex)
}

func TestMergeRejectsMismatchedEncodings(t *testing.T) {
	a := &Set{Coords: [][3]float32{{0, 0, 0}}, TypeIndex: []float32{0}, Radii: []float32{1.0}}
	b := &Set{Coords: [][3]float32{{1, 0, 0}}, TypeVector: []float32{1.0}, NumTypes: 1, Radii: []float32{1.0}}

	_, err := Merge(a, b)
	require.Error(t, err)
}

func TestBatchLenCountsExamples(t *testing.T) {
	b := &Batch{
		Examples: []*Set{
			{Coords: [][3]float32{{0, 0, 0}}, TypeIndex: []float32{0}, Radii: []float32{1.0}},
			{Coords: [][3]float32{{1, 0, 0}}, TypeIndex: []float32{0}, Radii: []float32{1.0}},
		},
		NumTypes: 1,
	}
	require.Equal(t, 2, b.Len())
}
