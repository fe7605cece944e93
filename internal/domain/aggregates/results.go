package aggregates

import (
	"time"

	types "github.com/yungbote/membership-registry/internal/domain/registry"
)

// DocumentKey addresses a document by raw tag, as received from a caller.
type DocumentKey struct {
	Type any
	ID   int64
}

// LifecycleResult reports a soft delete or restore.
// Changed is false when the entity was already in the requested state.
type LifecycleResult struct {
	Table    string
	ID       int64
	Changed  bool
	Cascaded int
	At       time.Time
}

// RefResult echoes the reference a write validated.
type RefResult struct {
	Ref      types.DocumentRef
	Document *types.DocumentProjection
}
