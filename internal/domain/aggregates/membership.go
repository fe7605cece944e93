package aggregates

import (
	"context"
	"time"

	types "github.com/yungbote/membership-registry/internal/domain/registry"
)

var MembershipAggregateContract = Contract{
	Name:             "Registry.MembershipAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns person-parish and person-structure relationship uniqueness, date windows and derived activity.",
}

// MembershipAggregate owns the relationship between a person and a parish or structure.
// One implementation exists per membership kind.
//
// Write method failures should return *aggregates.Error with codes:
// CodeNotFound, CodeDuplicate, CodeInvalidDateWindow, CodePreconditionFailed, CodeInternal.
type MembershipAggregate interface {
	Aggregate

	// Kind names the membership table and target document type.
	Kind() types.MembershipKind

	// Add creates the relationship, or restores a soft-deleted one in place with the new dates.
	Add(ctx context.Context, in MembershipInput) (MembershipResult, error)

	// Update replaces the dates of a live relationship and re-derives Active.
	Update(ctx context.Context, in MembershipInput) (MembershipResult, error)

	// Remove soft deletes a live relationship.
	Remove(ctx context.Context, key MembershipKey) (LifecycleResult, error)

	// Restore revives a soft-deleted relationship whose person and target are live.
	Restore(ctx context.Context, key MembershipKey) (MembershipResult, error)
}

type MembershipKey struct {
	PersonID int64
	TargetID int64
}

type MembershipInput struct {
	PersonID int64
	TargetID int64
	JoinedOn *time.Time
	LeftOn   *time.Time
}

type MembershipResult struct {
	ID        int64
	PersonID  int64
	Target    types.DocumentRef
	JoinedOn  *time.Time
	LeftOn    *time.Time
	Active    bool
	Restored  bool
	UpdatedAt time.Time
}
