package aggregates

import (
	"context"
	"time"
)

var DirectionAggregateContract = Contract{
	Name:             "Registry.DirectionAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyTableRepoQueries,
	Notes:            "Owns direction target validation and the direction to mandate cascade. List batch-resolves targets outside a transaction.",
}

// DirectionAggregate owns a structure's governing bodies and their polymorphic targets.
//
// Write method failures should return *aggregates.Error with codes:
// CodeInvalidReferenceType, CodeNotFound, CodePreconditionFailed, CodeInternal.
type DirectionAggregate interface {
	Aggregate

	// Create validates the structure and the target reference, then stores the direction.
	Create(ctx context.Context, in DirectionInput) (DirectionResult, error)

	// Update revalidates and replaces the structure, target and name of a live direction.
	Update(ctx context.Context, id int64, in DirectionInput) (DirectionResult, error)

	// Delete soft deletes the direction and every live mandate in it.
	Delete(ctx context.Context, id int64) (LifecycleResult, error)

	// Restore revives the direction. Mandates deleted with it stay deleted.
	Restore(ctx context.Context, id int64) (DirectionResult, error)

	// List returns live directions with their targets resolved in one batch.
	List(ctx context.Context, in ListDirectionsInput) ([]DirectionResult, error)
}

type DirectionInput struct {
	StructureID  int64
	DocumentType any
	DocumentID   int64
	Name         *string
}

type ListDirectionsInput struct {
	StructureID *int64
}

type DirectionResult struct {
	ID          int64
	StructureID int64
	Name        *string
	Target      RefResult
	Restored    bool
	UpdatedAt   time.Time
}
