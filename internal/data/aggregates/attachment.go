package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/membership-registry/internal/data/references"
	"github.com/yungbote/membership-registry/internal/data/repos"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
)

type AttachmentAggregateDeps struct {
	Base BaseDeps

	Attachments   repos.AttachmentRepo
	ReferenceData repos.ReferenceDataRepo
	Resolver      *references.Resolver
}

type attachmentAggregate struct {
	deps AttachmentAggregateDeps
}

func NewAttachmentAggregate(deps AttachmentAggregateDeps) domainagg.AttachmentAggregate {
	deps.Base = deps.Base.withDefaults()
	return &attachmentAggregate{deps: deps}
}

func (a *attachmentAggregate) Contract() domainagg.Contract {
	return domainagg.AttachmentAggregateContract
}

func (a *attachmentAggregate) ready(op string) error {
	if a.deps.Attachments == nil || a.deps.ReferenceData == nil || a.deps.Resolver == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "attachment aggregate not configured", nil)
	}
	return nil
}

// owner validates the polymorphic owner of an attachment.
func (a *attachmentAggregate) owner(dbc dbctx.Context, key domainagg.DocumentKey) (types.Document, error) {
	return a.deps.Resolver.ValidateReference(dbc, key.Type, key.ID)
}

func (a *attachmentAggregate) AttachAddress(ctx context.Context, in domainagg.AttachAddressInput) (domainagg.AttachmentResult, error) {
	const op = "Registry.Attachment.AttachAddress"
	var out domainagg.AttachmentResult
	if err := a.ready(op); err != nil {
		return out, err
	}
	if in.NationID <= 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "nation_id is required", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		doc, err := a.owner(dbc, in.Owner)
		if err != nil {
			return err
		}
		nation, err := a.deps.ReferenceData.NationByID(dbc, in.NationID)
		if err != nil {
			return err
		}
		if nation == nil {
			return NotFoundError(fmt.Sprintf("nation %d not found", in.NationID))
		}
		row := types.NewAddress(types.RefOf(doc), in.NationID, a.deps.Base.now())
		row.ProvinceState = strings.TrimSpace(in.ProvinceState)
		row.City = strings.TrimSpace(in.City)
		row.Commune = in.Commune
		row.Avenue = strings.TrimSpace(in.Avenue)
		row.Number = strings.TrimSpace(in.Number)
		row.FullAddress = in.FullAddress
		saved, err := a.deps.Attachments.CreateAddress(dbc, row)
		if err != nil {
			return err
		}
		out = attachmentResult(saved.ID, doc, "", saved.CreatedAt)
		return nil
	})
	return out, err
}

func (a *attachmentAggregate) AttachContact(ctx context.Context, in domainagg.AttachContactInput) (domainagg.AttachmentResult, error) {
	const op = "Registry.Attachment.AttachContact"
	var out domainagg.AttachmentResult
	if err := a.ready(op); err != nil {
		return out, err
	}
	if in.Tel1 == nil && in.Tel2 == nil && in.WhatsApp == nil && in.Email == nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "at least one contact channel is required", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		doc, err := a.owner(dbc, in.Owner)
		if err != nil {
			return err
		}
		ref := types.RefOf(doc)
		saved, err := a.deps.Attachments.CreateContact(dbc, &types.Contact{
			DocumentType: ref.Type,
			DocumentID:   ref.ID,
			Tel1:         in.Tel1,
			Tel2:         in.Tel2,
			WhatsApp:     in.WhatsApp,
			Email:        in.Email,
			Lifecycle:    types.NewLifecycle(a.deps.Base.now()),
		})
		if err != nil {
			return err
		}
		out = attachmentResult(saved.ID, doc, "", saved.CreatedAt)
		return nil
	})
	return out, err
}

func (a *attachmentAggregate) RegisterFile(ctx context.Context, in domainagg.RegisterFileInput) (domainagg.AttachmentResult, error) {
	const op = "Registry.Attachment.RegisterFile"
	var out domainagg.AttachmentResult
	if err := a.ready(op); err != nil {
		return out, err
	}
	mime := strings.TrimSpace(in.MimeType)
	if mime == "" || in.Size < 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "mime_type is required and size must be >= 0", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		doc, err := a.owner(dbc, in.Owner)
		if err != nil {
			return err
		}
		ref := types.RefOf(doc)
		row := &types.File{
			FileName:     types.StoredFileName(in.OriginalName),
			MimeType:     mime,
			Size:         in.Size,
			DocumentType: ref.Type,
			DocumentID:   ref.ID,
			Lifecycle:    types.NewLifecycle(a.deps.Base.now()),
		}
		if name := strings.TrimSpace(in.OriginalName); name != "" {
			row.OriginalName = &name
		}
		saved, err := a.deps.Attachments.CreateFile(dbc, row)
		if err != nil {
			return err
		}
		out = attachmentResult(saved.ID, doc, saved.FileName, saved.CreatedAt)
		return nil
	})
	return out, err
}

func (a *attachmentAggregate) RemoveAddress(ctx context.Context, id int64) (bool, error) {
	const op = "Registry.Attachment.RemoveAddress"
	var removed bool
	if err := a.ready(op); err != nil {
		return false, err
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		ok, err := a.deps.Attachments.DeleteAddressPermanently(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return NotFoundError(fmt.Sprintf("address %d not found", id))
		}
		removed = ok
		return nil
	})
	return removed, err
}

func (a *attachmentAggregate) RemoveContact(ctx context.Context, id int64) (bool, error) {
	const op = "Registry.Attachment.RemoveContact"
	var removed bool
	if err := a.ready(op); err != nil {
		return false, err
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		ok, err := a.deps.Attachments.DeleteContactPermanently(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return NotFoundError(fmt.Sprintf("contact %d not found", id))
		}
		removed = ok
		return nil
	})
	return removed, err
}

func attachmentResult(id int64, owner types.Document, fileName string, createdAt time.Time) domainagg.AttachmentResult {
	p := types.Project(owner)
	return domainagg.AttachmentResult{
		ID:        id,
		Owner:     domainagg.RefResult{Ref: types.RefOf(owner), Document: &p},
		FileName:  fileName,
		CreatedAt: createdAt,
	}
}
