package domain

import "context"

// SimilarityEngine computes the pairwise similarity matrix for vectors given
// in collection order.
type SimilarityEngine interface {
	Name() string
	Compute(vectors []Vector) (SimilarityMatrix, error)
}

// Projector reduces vectors to 2D coordinates, one row per input vector in
// the same order.
type Projector interface {
	Name() string
	Project(vectors []Vector) ([]Point, error)
}

// Sink persists a finished dataset to an external destination.
type Sink interface {
	Name() string
	Write(ctx context.Context, run RunInfo, dataset *GraphDataset) error
}

// PipelineService defines the operations exposed by the application core.
type PipelineService interface {
	Run(ctx context.Context) (*GraphDataset, error)
}
