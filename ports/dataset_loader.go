package ports

import (
	"context"

	"resultdash/domain/dataset"
)

// DatasetLoader builds the result dataset from a spreadsheet source.
// Load is called once at startup; a failure aborts the process.
type DatasetLoader interface {
	Load(ctx context.Context, path string) (*dataset.Dataset, error)
}
