package gridmaker

import (
	"fmt"

	"github.com/atomraster/gridmaker/coordset"
	"github.com/atomraster/gridmaker/internal/raster"
	"github.com/atomraster/gridmaker/tensor"
	"github.com/google/uuid"
)

// BatchForward rasterizes every example in batch into its own slab of out,
// a E x channels x dim x dim x dim grid sharing batch's channel count.
// centers[i] is the declared grid center for example i; len(centers) must
// equal batch.Len(). Returns one trace id per example, in example order, so
// callers (cmd/gridgen's debug log line) can correlate a batch run across
// retries without re-deriving an id from example contents.
func (g *GridMaker) BatchForward(centers [][3]float64, batch *coordset.Batch, backend raster.Backend, out *tensor.RawTensor) ([]uuid.UUID, error) {
	n := batch.Len()
	if len(centers) != n {
		return nil, fmt.Errorf("%w: got %d centers for %d examples", ErrOutOfRange, len(centers), n)
	}

	shape := out.Shape()
	shapeErr := &ShapeError{
		Context:  "batch forward output",
		Expected: tensor.Shape{n, batch.NumTypes, g.dim, g.dim, g.dim},
		Got:      shape,
	}
	if len(shape) != 5 {
		return nil, shapeErr
	}
	if shape[0] != n {
		// A leading dimension that differs from the example count matches
		// both ErrOutOfRange and ErrShapeMismatch.
		return nil, fmt.Errorf("%w: %w", ErrOutOfRange, shapeErr)
	}
	exampleLen := batch.NumTypes * g.dim * g.dim * g.dim
	data := out.AsFloat32()

	ids := make([]uuid.UUID, n)
	for i, set := range batch.Examples {
		ids[i] = uuid.New()
		if err := set.Validate(); err != nil {
			return ids, fmt.Errorf("gridmaker: batch example %d: %w: %v", i, ErrShapeMismatch, err)
		}
		slab := data[i*exampleLen : (i+1)*exampleLen]
		p := g.params(centers[i], batch.NumTypes)
		if err := backend.RasterizeForward(set, p, slab); err != nil {
			return ids, fmt.Errorf("gridmaker: batch example %d: %w", i, err)
		}
	}
	return ids, nil
}
