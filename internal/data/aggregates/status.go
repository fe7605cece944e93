package aggregates

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/membership-registry/internal/data/references"
	"github.com/yungbote/membership-registry/internal/data/repos"
	repo "github.com/yungbote/membership-registry/internal/data/repos/registry"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"gorm.io/datatypes"
)

type StatusAggregateDeps struct {
	Base BaseDeps

	Persons       repos.PersonRepo
	ReferenceData repos.ReferenceDataRepo
	Attachments   repos.AttachmentRepo
	StatusChanges repos.StatusChangeRepo
	Resolver      *references.Resolver
}

type statusAggregate struct {
	deps StatusAggregateDeps
}

func NewStatusAggregate(deps StatusAggregateDeps) domainagg.StatusAggregate {
	deps.Base = deps.Base.withDefaults()
	return &statusAggregate{deps: deps}
}

func (a *statusAggregate) Contract() domainagg.Contract {
	return domainagg.StatusAggregateContract
}

func (a *statusAggregate) Transition(ctx context.Context, in domainagg.TransitionStatusInput) (domainagg.TransitionStatusResult, error) {
	const op = "Registry.Status.Transition"
	out := domainagg.TransitionStatusResult{PersonID: in.PersonID, ToStatusID: in.TargetStatusID}
	if a.deps.Persons == nil || a.deps.ReferenceData == nil || a.deps.Attachments == nil || a.deps.StatusChanges == nil || a.deps.Resolver == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "status aggregate not configured", nil)
	}
	if in.PersonID <= 0 || in.TargetStatusID <= 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "person_id and target status are required", nil)
	}
	var metadata datatypes.JSON
	if len(in.Metadata) > 0 {
		raw, err := json.Marshal(in.Metadata)
		if err != nil {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "metadata must be JSON encodable", err)
		}
		metadata = datatypes.JSON(raw)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		person, err := a.deps.Persons.LockByID(dbc, in.PersonID)
		if err != nil {
			return err
		}
		if person == nil {
			return NotFoundError(fmt.Sprintf("person %d not found", in.PersonID))
		}
		status, err := a.deps.ReferenceData.StatusByID(dbc, in.TargetStatusID)
		if err != nil {
			return err
		}
		if status == nil {
			return NotFoundError(fmt.Sprintf("document status %d not found", in.TargetStatusID))
		}

		from := person.DocumentStatusID
		out.FromStatusID = from
		out.RecenseurID = person.RecenseurID
		out.CodeMatriculation = person.CodeMatriculation

		promote := from == types.StatusPending && in.TargetStatusID == types.StatusValidated
		if promote && in.RecenseurID == nil {
			return MissingValidatorError(fmt.Sprintf("person %d cannot be validated without a recenseur", in.PersonID))
		}
		if in.RecenseurID != nil {
			if _, err := a.deps.Resolver.ValidateReference(dbc, types.DocumentTypePerson, *in.RecenseurID); err != nil {
				return err
			}
		}
		if from == in.TargetStatusID {
			return nil
		}

		now := a.deps.Base.now()
		updates := map[string]any{
			"document_status_id": in.TargetStatusID,
			"updated_at":         now,
		}
		if in.RecenseurID != nil {
			updates["recenseur_id"] = *in.RecenseurID
			out.RecenseurID = in.RecenseurID
		}
		ok, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, person.TableName(), person.ID, "document_status_id", []int64{from}, updates)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "person status changed concurrently"); err != nil {
			return err
		}

		var issued *string
		if promote && !person.Sympathizer() && person.CodeMatriculation == nil {
			code, err := a.matriculationCode(dbc, person)
			if err != nil {
				return err
			}
			ok, err := a.deps.Base.CASGuard.UpdateIfNull(dbc, person.TableName(), person.ID, "code_matriculation", map[string]any{
				"code_matriculation": code,
				"updated_at":         now,
			})
			if err != nil {
				return err
			}
			if err := RequireCASSuccess(ok, "matriculation code issued concurrently"); err != nil {
				return err
			}
			issued = &code
			out.CodeMatriculation = issued
			out.CodeIssued = true
		}

		if _, err := a.deps.StatusChanges.Create(dbc, &types.StatusChange{
			PersonID:     person.ID,
			FromStatusID: from,
			ToStatusID:   in.TargetStatusID,
			RecenseurID:  in.RecenseurID,
			CodeIssued:   issued,
			Metadata:     metadata,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
		out.Changed = true
		out.TransitionedAt = now
		return nil
	})
	return out, err
}

// matriculationCode follows person -> latest active parish membership -> parish address ->
// nation -> ISO alpha-2 and builds the code from the end of that chain.
func (a *statusAggregate) matriculationCode(dbc dbctx.Context, person *types.Person) (string, error) {
	membership, err := repo.LatestActiveParish(dbc, a.deps.Base.DB, person.ID, a.deps.Base.today())
	if err != nil {
		return "", err
	}
	if membership == nil {
		return "", ChainBrokenError(fmt.Sprintf("person %d has no active parish membership", person.ID))
	}
	parish := types.DocumentRef{Type: types.DocumentTypeParish, ID: membership.ParishID}
	addr, err := a.deps.Attachments.FirstAddress(dbc, parish)
	if err != nil {
		return "", err
	}
	if addr == nil {
		return "", ChainBrokenError(fmt.Sprintf("parish %d has no address", membership.ParishID))
	}
	nation, err := a.deps.ReferenceData.NationByID(dbc, addr.NationID)
	if err != nil {
		return "", err
	}
	if nation == nil {
		return "", ChainBrokenError(fmt.Sprintf("nation %d of parish %d not found", addr.NationID, membership.ParishID))
	}
	if nation.ISOAlpha2 == nil || strings.TrimSpace(*nation.ISOAlpha2) == "" {
		return "", ChainBrokenError(fmt.Sprintf("nation %d has no iso_alpha_2 code", nation.ID))
	}
	return types.BuildMatriculationCode(*nation.ISOAlpha2, person.ID)
}
