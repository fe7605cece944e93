package aggregates

import (
	"context"
	"fmt"

	"github.com/yungbote/membership-registry/internal/data/lifecycle"
	"github.com/yungbote/membership-registry/internal/data/references"
	"github.com/yungbote/membership-registry/internal/data/repos"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
)

type DirectionAggregateDeps struct {
	Base BaseDeps

	Directions repos.DirectionRepo
	Resolver   *references.Resolver
	Lifecycle  *lifecycle.Manager
}

type directionAggregate struct {
	deps DirectionAggregateDeps
}

func NewDirectionAggregate(deps DirectionAggregateDeps) domainagg.DirectionAggregate {
	deps.Base = deps.Base.withDefaults()
	return &directionAggregate{deps: deps}
}

func (a *directionAggregate) Contract() domainagg.Contract {
	return domainagg.DirectionAggregateContract
}

func (a *directionAggregate) ready(op string) error {
	if a.deps.Directions == nil || a.deps.Resolver == nil || a.deps.Lifecycle == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "direction aggregate not configured", nil)
	}
	return nil
}

// validateTarget checks the owning structure and the polymorphic target in the caller's unit of work.
func (a *directionAggregate) validateTarget(dbc dbctx.Context, in domainagg.DirectionInput) (types.Document, error) {
	if _, err := a.deps.Resolver.ValidateReference(dbc, types.DocumentTypeStructure, in.StructureID); err != nil {
		return nil, err
	}
	return a.deps.Resolver.ValidateReference(dbc, in.DocumentType, in.DocumentID)
}

func (a *directionAggregate) Create(ctx context.Context, in domainagg.DirectionInput) (domainagg.DirectionResult, error) {
	const op = "Registry.Direction.Create"
	var out domainagg.DirectionResult
	if err := a.ready(op); err != nil {
		return out, err
	}
	if in.StructureID <= 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "structure_id is required", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		target, err := a.validateTarget(dbc, in)
		if err != nil {
			return err
		}
		d := types.NewDirection(in.StructureID, types.RefOf(target), a.deps.Base.now())
		d.Name = in.Name
		saved, err := a.deps.Directions.Create(dbc, d)
		if err != nil {
			return err
		}
		out = directionResult(saved, target, false)
		return nil
	})
	return out, err
}

func (a *directionAggregate) Update(ctx context.Context, id int64, in domainagg.DirectionInput) (domainagg.DirectionResult, error) {
	const op = "Registry.Direction.Update"
	var out domainagg.DirectionResult
	if err := a.ready(op); err != nil {
		return out, err
	}
	if id <= 0 || in.StructureID <= 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "direction id and structure_id are required", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		d, err := a.deps.Directions.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if d == nil {
			return NotFoundError(fmt.Sprintf("direction %d not found", id))
		}
		target, err := a.validateTarget(dbc, in)
		if err != nil {
			return err
		}
		ref := types.RefOf(target)
		now := a.deps.Base.now()
		ok, err := a.deps.Directions.UpdateFields(dbc, id, map[string]any{
			"structure_id":  in.StructureID,
			"document_type": ref.Type,
			"document_id":   ref.ID,
			"name":          in.Name,
		}, now)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "direction changed concurrently"); err != nil {
			return err
		}
		d.StructureID, d.DocumentType, d.DocumentID, d.Name = in.StructureID, ref.Type, ref.ID, in.Name
		d.Touch(now)
		out = directionResult(d, target, false)
		return nil
	})
	return out, err
}

func (a *directionAggregate) Delete(ctx context.Context, id int64) (domainagg.LifecycleResult, error) {
	const op = "Registry.Direction.Delete"
	out := domainagg.LifecycleResult{Table: types.Direction{}.TableName(), ID: id}
	if err := a.ready(op); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		d, err := a.anyDirection(dbc, id)
		if err != nil {
			return err
		}
		changed, err := a.deps.Lifecycle.SoftDelete(dbc, d)
		if err != nil {
			return err
		}
		out.Changed = changed
		out.At = d.UpdatedAt
		if !changed {
			return nil
		}
		n, err := a.deps.Lifecycle.CascadeDeleteDependents(dbc, d)
		if err != nil {
			return err
		}
		out.Cascaded = n
		return nil
	})
	return out, err
}

func (a *directionAggregate) Restore(ctx context.Context, id int64) (domainagg.DirectionResult, error) {
	const op = "Registry.Direction.Restore"
	var out domainagg.DirectionResult
	if err := a.ready(op); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		d, err := a.anyDirection(dbc, id)
		if err != nil {
			return err
		}
		if !d.Deleted() {
			out = directionResult(d, nil, false)
			return nil
		}
		target, err := a.validateTarget(dbc, domainagg.DirectionInput{
			StructureID:  d.StructureID,
			DocumentType: d.DocumentType,
			DocumentID:   d.DocumentID,
		})
		if err != nil {
			if domainagg.IsCode(err, domainagg.CodeNotFound) {
				return PreconditionError(fmt.Sprintf("direction %d references a deleted document", id))
			}
			return err
		}
		restored, err := a.deps.Lifecycle.Restore(dbc, d)
		if err != nil {
			return err
		}
		out = directionResult(d, target, restored)
		return nil
	})
	return out, err
}

func (a *directionAggregate) List(ctx context.Context, in domainagg.ListDirectionsInput) ([]domainagg.DirectionResult, error) {
	const op = "Registry.Direction.List"
	out := []domainagg.DirectionResult{}
	if err := a.ready(op); err != nil {
		return out, err
	}

	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rows, err := a.deps.Directions.List(dbc, in.StructureID)
		if err != nil {
			return err
		}
		refs := make([]types.DocumentRef, 0, len(rows))
		for _, d := range rows {
			refs = append(refs, d.Ref())
		}
		resolved, err := a.deps.Resolver.ResolveReferencesBatch(dbc, refs)
		if err != nil {
			return err
		}
		for _, d := range rows {
			res := directionResult(d, nil, false)
			if p, ok := resolved[d.Ref()]; ok {
				res.Target.Document = &p
			}
			out = append(out, res)
		}
		return nil
	})
	return out, err
}

func (a *directionAggregate) anyDirection(dbc dbctx.Context, id int64) (*types.Direction, error) {
	if id <= 0 {
		return nil, ValidationError("direction id is required")
	}
	d, err := a.deps.Directions.GetAny(dbc, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, NotFoundError(fmt.Sprintf("direction %d not found", id))
	}
	return d, nil
}

func directionResult(d *types.Direction, target types.Document, restored bool) domainagg.DirectionResult {
	res := domainagg.DirectionResult{
		ID:          d.ID,
		StructureID: d.StructureID,
		Name:        d.Name,
		Target:      domainagg.RefResult{Ref: d.Ref()},
		Restored:    restored,
		UpdatedAt:   d.UpdatedAt,
	}
	if target != nil {
		p := types.Project(target)
		res.Target.Document = &p
	}
	return res
}
