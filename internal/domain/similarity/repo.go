package similarity

import "context"

// Repository loads the reference case population the engine is fitted on.
type Repository interface {
	LoadAll(ctx context.Context) ([]*ReferenceCase, error)
	Insert(ctx context.Context, c *ReferenceCase) error
	Count(ctx context.Context) (int, error)
}
