package aggregates

import (
	"context"
	"time"
)

var MandateAggregateContract = Contract{
	Name:             "Registry.MandateAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns mandate holder uniqueness within a direction, date windows, suspension and derived activity.",
}

// MandateAggregate owns the assignment of a person to a function within a direction.
//
// Write method failures should return *aggregates.Error with codes:
// CodeNotFound, CodeDuplicate, CodeInvalidDateWindow, CodePreconditionFailed, CodeInternal.
type MandateAggregate interface {
	Aggregate

	// Create assigns the mandate, restoring a soft-deleted holder row in place.
	Create(ctx context.Context, in CreateMandateInput) (MandateResult, error)

	// Update replaces the window and suspension of a live mandate.
	Update(ctx context.Context, in UpdateMandateInput) (MandateResult, error)

	// Delete soft deletes a live mandate and forces it inactive.
	Delete(ctx context.Context, key MandateKey) (LifecycleResult, error)

	// Restore revives a soft-deleted mandate of a live direction.
	Restore(ctx context.Context, key MandateKey) (MandateResult, error)
}

type MandateKey struct {
	DirectionID int64
	MandateID   int64
}

type CreateMandateInput struct {
	DirectionID int64
	PersonID    int64
	FunctionID  int64
	StartDate   time.Time
	EndDate     *time.Time
	Suspended   bool
}

type UpdateMandateInput struct {
	DirectionID int64
	MandateID   int64
	StartDate   time.Time
	EndDate     *time.Time
	Suspended   bool
}

type MandateResult struct {
	ID          int64
	DirectionID int64
	PersonID    int64
	FunctionID  int64
	StartDate   time.Time
	EndDate     *time.Time
	Suspended   bool
	Active      bool
	Restored    bool
	UpdatedAt   time.Time
}
