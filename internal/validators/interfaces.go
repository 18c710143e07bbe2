package validators

import "context"

// Validator checks domain objects at trust boundaries.
type Validator interface {
	Validate(ctx context.Context, obj any) error
}
