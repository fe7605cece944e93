package aggregates

import "context"

var LifecycleAggregateContract = Contract{
	Name:             "Registry.LifecycleAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns document soft delete with dependent cascade, and document restore, in one unit of work.",
}

// LifecycleAggregate soft deletes and restores documents addressed by raw tag.
//
// Write method failures should return *aggregates.Error with codes:
// CodeInvalidReferenceType, CodeNotFound, CodeInternal.
type LifecycleAggregate interface {
	Aggregate

	// Delete soft deletes the document and cascades to its live dependents.
	Delete(ctx context.Context, key DocumentKey) (LifecycleResult, error)

	// Restore revives the document only. Cascaded dependents stay deleted.
	Restore(ctx context.Context, key DocumentKey) (LifecycleResult, error)
}
