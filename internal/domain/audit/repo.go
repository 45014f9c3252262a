package audit

import "context"

// Repository persists audit records.
type Repository interface {
	Append(ctx context.Context, rec *Record) error
}
