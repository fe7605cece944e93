package aggregates

import (
	"context"
	"time"
)

var AttachmentAggregateContract = Contract{
	Name:             "Registry.AttachmentAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Validates polymorphic owners of addresses, contacts and files at write time.",
}

// AttachmentAggregate writes value objects hanging off a document reference.
// The owner is validated on every write; storage holds no foreign key for it.
type AttachmentAggregate interface {
	Aggregate

	AttachAddress(ctx context.Context, in AttachAddressInput) (AttachmentResult, error)
	AttachContact(ctx context.Context, in AttachContactInput) (AttachmentResult, error)
	RegisterFile(ctx context.Context, in RegisterFileInput) (AttachmentResult, error)

	// RemoveAddress and RemoveContact delete physically.
	RemoveAddress(ctx context.Context, id int64) (bool, error)
	RemoveContact(ctx context.Context, id int64) (bool, error)
}

type AttachAddressInput struct {
	Owner         DocumentKey
	NationID      int64
	ProvinceState string
	City          string
	Commune       *string
	Avenue        string
	Number        string
	FullAddress   *string
}

type AttachContactInput struct {
	Owner    DocumentKey
	Tel1     *string
	Tel2     *string
	WhatsApp *string
	Email    *string
}

type RegisterFileInput struct {
	Owner        DocumentKey
	OriginalName string
	MimeType     string
	Size         int64
}

type AttachmentResult struct {
	ID        int64
	Owner     RefResult
	FileName  string
	CreatedAt time.Time
}
