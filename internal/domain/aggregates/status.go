package aggregates

import (
	"context"
	"time"
)

var StatusAggregateContract = Contract{
	Name:             "Registry.StatusAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns person document status progression, validator presence and one-time matriculation code issuance.",
}

// StatusAggregate moves a person between document statuses.
//
// Write method failures should return *aggregates.Error with codes:
// CodeNotFound, CodeMissingValidator, CodeChainBroken, CodeInvariantViolation,
// CodeConflict, CodeInternal.
type StatusAggregate interface {
	Aggregate

	// Transition locks the person, applies the target status and, on Pending to Validated,
	// issues the matriculation code. Status, recenseur, code and audit row commit together.
	Transition(ctx context.Context, in TransitionStatusInput) (TransitionStatusResult, error)
}

type TransitionStatusInput struct {
	PersonID       int64
	TargetStatusID int64
	RecenseurID    *int64
	Metadata       map[string]any
}

type TransitionStatusResult struct {
	PersonID          int64
	FromStatusID      int64
	ToStatusID        int64
	RecenseurID       *int64
	CodeMatriculation *string
	CodeIssued        bool
	Changed           bool
	TransitionedAt    time.Time
}
