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

type MandateAggregateDeps struct {
	Base BaseDeps

	Directions    repos.DirectionRepo
	Mandates      repos.MandateRepo
	ReferenceData repos.ReferenceDataRepo
	Resolver      *references.Resolver
	Lifecycle     *lifecycle.Manager
}

type mandateAggregate struct {
	deps MandateAggregateDeps
}

func NewMandateAggregate(deps MandateAggregateDeps) domainagg.MandateAggregate {
	deps.Base = deps.Base.withDefaults()
	return &mandateAggregate{deps: deps}
}

func (a *mandateAggregate) Contract() domainagg.Contract {
	return domainagg.MandateAggregateContract
}

func (a *mandateAggregate) ready(op string) error {
	if a.deps.Directions == nil || a.deps.Mandates == nil || a.deps.ReferenceData == nil || a.deps.Resolver == nil || a.deps.Lifecycle == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "mandate aggregate not configured", nil)
	}
	return nil
}

func (a *mandateAggregate) Create(ctx context.Context, in domainagg.CreateMandateInput) (domainagg.MandateResult, error) {
	const op = "Registry.Mandate.Create"
	var out domainagg.MandateResult
	if err := a.ready(op); err != nil {
		return out, err
	}
	if in.DirectionID <= 0 || in.PersonID <= 0 || in.FunctionID <= 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "direction_id, person_id and function_id are required", nil)
	}
	if in.StartDate.IsZero() {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "start_date is required", nil)
	}
	if err := validateWindow(op, &in.StartDate, in.EndDate); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.liveDirection(dbc, in.DirectionID); err != nil {
			return err
		}
		if _, err := a.deps.Resolver.ValidateReference(dbc, types.DocumentTypePerson, in.PersonID); err != nil {
			return err
		}
		fn, err := a.deps.ReferenceData.FunctionByID(dbc, in.FunctionID)
		if err != nil {
			return err
		}
		if fn == nil {
			return NotFoundError(fmt.Sprintf("function %d not found", in.FunctionID))
		}
		now, today := a.deps.Base.now(), a.deps.Base.today()

		existing, err := a.deps.Mandates.FindHolder(dbc, in.DirectionID, in.PersonID, in.FunctionID)
		if err != nil {
			return err
		}
		if existing != nil {
			if !existing.Deleted() {
				return DuplicateError(fmt.Sprintf("person %d already holds function %d in direction %d", in.PersonID, in.FunctionID, in.DirectionID))
			}
			existing.Reset(in.StartDate, in.EndDate, in.Suspended, today)
			if _, err := a.deps.Lifecycle.Restore(dbc, existing); err != nil {
				return err
			}
			if _, err := a.deps.Mandates.UpdateFields(dbc, existing.ID, mandateWindow(existing), now); err != nil {
				return err
			}
			out = mandateResult(existing, true)
			return nil
		}

		m := types.NewMandate(in.DirectionID, in.PersonID, in.FunctionID, now)
		m.Reset(in.StartDate, in.EndDate, in.Suspended, today)
		saved, err := a.deps.Mandates.Create(dbc, m)
		if err != nil {
			return err
		}
		out = mandateResult(saved, false)
		return nil
	})
	return out, err
}

func (a *mandateAggregate) Update(ctx context.Context, in domainagg.UpdateMandateInput) (domainagg.MandateResult, error) {
	const op = "Registry.Mandate.Update"
	var out domainagg.MandateResult
	if err := a.ready(op); err != nil {
		return out, err
	}
	if in.MandateID <= 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "mandate_id is required", nil)
	}
	if in.StartDate.IsZero() {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "start_date is required", nil)
	}
	if err := validateWindow(op, &in.StartDate, in.EndDate); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		m, err := a.deps.Mandates.GetByID(dbc, in.MandateID)
		if err != nil {
			return err
		}
		if m == nil || (in.DirectionID > 0 && m.DirectionID != in.DirectionID) {
			return NotFoundError(fmt.Sprintf("mandate %d not found", in.MandateID))
		}
		now := a.deps.Base.now()
		m.Reset(in.StartDate, in.EndDate, in.Suspended, a.deps.Base.today())
		m.Touch(now)
		ok, err := a.deps.Mandates.UpdateFields(dbc, m.ID, mandateWindow(m), now)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "mandate changed concurrently"); err != nil {
			return err
		}
		out = mandateResult(m, false)
		return nil
	})
	return out, err
}

func (a *mandateAggregate) Delete(ctx context.Context, key domainagg.MandateKey) (domainagg.LifecycleResult, error) {
	const op = "Registry.Mandate.Delete"
	out := domainagg.LifecycleResult{Table: types.Mandate{}.TableName(), ID: key.MandateID}
	if err := a.ready(op); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		m, err := a.anyMandate(dbc, key)
		if err != nil {
			return err
		}
		changed, err := a.deps.Lifecycle.SoftDelete(dbc, m)
		if err != nil {
			return err
		}
		out.Changed = changed
		out.At = m.UpdatedAt
		return nil
	})
	return out, err
}

func (a *mandateAggregate) Restore(ctx context.Context, key domainagg.MandateKey) (domainagg.MandateResult, error) {
	const op = "Registry.Mandate.Restore"
	var out domainagg.MandateResult
	if err := a.ready(op); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		m, err := a.anyMandate(dbc, key)
		if err != nil {
			return err
		}
		if m.Deleted() {
			if err := a.requireLiveParties(dbc, m); err != nil {
				return err
			}
		}
		restored, err := a.deps.Lifecycle.Restore(dbc, m)
		if err != nil {
			return err
		}
		out = mandateResult(m, restored)
		return nil
	})
	return out, err
}

// requireLiveParties fails with a precondition error unless the direction, person and function
// of m are all live.
func (a *mandateAggregate) requireLiveParties(dbc dbctx.Context, m *types.Mandate) error {
	d, err := a.deps.Directions.GetByID(dbc, m.DirectionID)
	if err != nil {
		return err
	}
	if d == nil {
		return PreconditionError(fmt.Sprintf("direction %d is deleted", m.DirectionID))
	}
	if _, err := a.deps.Resolver.ValidateReference(dbc, types.DocumentTypePerson, m.PersonID); err != nil {
		if domainagg.IsCode(err, domainagg.CodeNotFound) {
			return PreconditionError(fmt.Sprintf("person %d is deleted", m.PersonID))
		}
		return err
	}
	fn, err := a.deps.ReferenceData.FunctionByID(dbc, m.FunctionID)
	if err != nil {
		return err
	}
	if fn == nil {
		return PreconditionError(fmt.Sprintf("function %d is deleted", m.FunctionID))
	}
	return nil
}

func (a *mandateAggregate) liveDirection(dbc dbctx.Context, id int64) (*types.Direction, error) {
	d, err := a.deps.Directions.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, NotFoundError(fmt.Sprintf("direction %d not found", id))
	}
	return d, nil
}

// anyMandate loads a mandate whatever its deletion state, scoped to key.DirectionID when set.
func (a *mandateAggregate) anyMandate(dbc dbctx.Context, key domainagg.MandateKey) (*types.Mandate, error) {
	if key.MandateID <= 0 {
		return nil, ValidationError("mandate_id is required")
	}
	m, err := a.deps.Mandates.GetAny(dbc, key.MandateID)
	if err != nil {
		return nil, err
	}
	if m == nil || (key.DirectionID > 0 && m.DirectionID != key.DirectionID) {
		return nil, NotFoundError(fmt.Sprintf("mandate %d not found", key.MandateID))
	}
	return m, nil
}

func mandateWindow(m *types.Mandate) map[string]any {
	return map[string]any{
		"start_date":   m.StartDate,
		"end_date":     m.EndDate,
		"is_suspended": m.Suspended,
		"is_active":    m.Active,
	}
}

func mandateResult(m *types.Mandate, restored bool) domainagg.MandateResult {
	return domainagg.MandateResult{
		ID:          m.ID,
		DirectionID: m.DirectionID,
		PersonID:    m.PersonID,
		FunctionID:  m.FunctionID,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Suspended:   m.Suspended,
		Active:      m.Active,
		Restored:    restored,
		UpdatedAt:   m.UpdatedAt,
	}
}
