package aggregates

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/membership-registry/internal/data/lifecycle"
	"github.com/yungbote/membership-registry/internal/data/references"
	repo "github.com/yungbote/membership-registry/internal/data/repos/registry"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
)

type membershipPtr[T any] interface {
	*T
	types.Membership
}

type MembershipAggregateDeps[T any] struct {
	Base BaseDeps

	Rows      repo.MembershipRepo[T]
	Resolver  *references.Resolver
	Lifecycle *lifecycle.Manager

	// NewRow builds an unsaved row for the (person, target) pair.
	NewRow func(personID, targetID int64, now time.Time) *T
	// Name prefixes operation names, e.g. "Registry.PersonParish".
	Name string
}

type membershipAggregate[T any, PT membershipPtr[T]] struct {
	deps MembershipAggregateDeps[T]
}

func NewMembershipAggregate[T any, PT membershipPtr[T]](deps MembershipAggregateDeps[T]) domainagg.MembershipAggregate {
	deps.Base = deps.Base.withDefaults()
	return &membershipAggregate[T, PT]{deps: deps}
}

func NewParishMembershipAggregate(base BaseDeps, rows repo.MembershipRepo[types.PersonParish], resolver *references.Resolver, mgr *lifecycle.Manager) domainagg.MembershipAggregate {
	return NewMembershipAggregate[types.PersonParish](MembershipAggregateDeps[types.PersonParish]{
		Base:      base,
		Rows:      rows,
		Resolver:  resolver,
		Lifecycle: mgr,
		NewRow:    types.NewPersonParish,
		Name:      "Registry.PersonParish",
	})
}

func NewStructureMembershipAggregate(base BaseDeps, rows repo.MembershipRepo[types.PersonStructure], resolver *references.Resolver, mgr *lifecycle.Manager) domainagg.MembershipAggregate {
	return NewMembershipAggregate[types.PersonStructure](MembershipAggregateDeps[types.PersonStructure]{
		Base:      base,
		Rows:      rows,
		Resolver:  resolver,
		Lifecycle: mgr,
		NewRow:    types.NewPersonStructure,
		Name:      "Registry.PersonStructure",
	})
}

func (a *membershipAggregate[T, PT]) Contract() domainagg.Contract {
	return domainagg.MembershipAggregateContract
}

func (a *membershipAggregate[T, PT]) Kind() types.MembershipKind {
	return a.deps.Rows.Kind()
}

func (a *membershipAggregate[T, PT]) op(name string) string {
	return a.deps.Name + "." + name
}

func (a *membershipAggregate[T, PT]) ready(op string) error {
	if a.deps.Rows == nil || a.deps.Resolver == nil || a.deps.Lifecycle == nil || a.deps.NewRow == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "membership aggregate not configured", nil)
	}
	return nil
}

func validateKey(op string, personID, targetID int64) error {
	if personID <= 0 || targetID <= 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, "person_id and target_id are required", nil)
	}
	return nil
}

func validateWindow(op string, start, end *time.Time) error {
	if !types.ValidDateWindow(start, end) {
		return domainagg.Wrap(domainagg.CodeInvalidDateWindow, op, DateWindowError(fmt.Sprintf("left %s before joined %s", end.Format(time.DateOnly), start.Format(time.DateOnly))))
	}
	return nil
}

// requireParties checks that both ends of the relationship are live.
func (a *membershipAggregate[T, PT]) requireParties(dbc dbctx.Context, personID, targetID int64) error {
	if _, err := a.deps.Resolver.ValidateReference(dbc, types.DocumentTypePerson, personID); err != nil {
		return err
	}
	_, err := a.deps.Resolver.ValidateReference(dbc, a.Kind().TargetType, targetID)
	return err
}

func (a *membershipAggregate[T, PT]) Add(ctx context.Context, in domainagg.MembershipInput) (domainagg.MembershipResult, error) {
	op := a.op("Add")
	var out domainagg.MembershipResult
	if err := a.ready(op); err != nil {
		return out, err
	}
	if err := validateKey(op, in.PersonID, in.TargetID); err != nil {
		return out, err
	}
	if err := validateWindow(op, in.JoinedOn, in.LeftOn); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireParties(dbc, in.PersonID, in.TargetID); err != nil {
			return err
		}
		now, today := a.deps.Base.now(), a.deps.Base.today()

		existing, err := a.deps.Rows.FindPair(dbc, in.PersonID, in.TargetID)
		if err != nil {
			return err
		}
		if existing != nil {
			row := PT(existing)
			if !row.State().Deleted() {
				return DuplicateError(fmt.Sprintf("person %d already holds a live %s membership for %d", in.PersonID, a.Kind().Table, in.TargetID))
			}
			row.Window().Reset(in.JoinedOn, in.LeftOn, today)
			if _, err := a.deps.Lifecycle.Restore(dbc, row); err != nil {
				return err
			}
			if _, err := a.deps.Rows.UpdateWindow(dbc, row.PrimaryID(), *row.Window(), now); err != nil {
				return err
			}
			out = membershipResult(row, true)
			return nil
		}

		created := a.deps.NewRow(in.PersonID, in.TargetID, now)
		PT(created).Window().Reset(in.JoinedOn, in.LeftOn, today)
		saved, err := a.deps.Rows.Create(dbc, created)
		if err != nil {
			return err
		}
		out = membershipResult(PT(saved), false)
		return nil
	})
	return out, err
}

func (a *membershipAggregate[T, PT]) Update(ctx context.Context, in domainagg.MembershipInput) (domainagg.MembershipResult, error) {
	op := a.op("Update")
	var out domainagg.MembershipResult
	if err := a.ready(op); err != nil {
		return out, err
	}
	if err := validateKey(op, in.PersonID, in.TargetID); err != nil {
		return out, err
	}
	if err := validateWindow(op, in.JoinedOn, in.LeftOn); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		row, err := a.livePair(dbc, in.PersonID, in.TargetID)
		if err != nil {
			return err
		}
		now := a.deps.Base.now()
		row.Window().Reset(in.JoinedOn, in.LeftOn, a.deps.Base.today())
		row.State().Touch(now)
		ok, err := a.deps.Rows.UpdateWindow(dbc, row.PrimaryID(), *row.Window(), now)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "membership changed concurrently"); err != nil {
			return err
		}
		out = membershipResult(row, false)
		return nil
	})
	return out, err
}

func (a *membershipAggregate[T, PT]) Remove(ctx context.Context, key domainagg.MembershipKey) (domainagg.LifecycleResult, error) {
	op := a.op("Remove")
	out := domainagg.LifecycleResult{Table: a.Kind().Table}
	if err := a.ready(op); err != nil {
		return out, err
	}
	if err := validateKey(op, key.PersonID, key.TargetID); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		existing, err := a.deps.Rows.FindPair(dbc, key.PersonID, key.TargetID)
		if err != nil {
			return err
		}
		if existing == nil {
			return NotFoundError(fmt.Sprintf("%s membership %d/%d not found", a.Kind().Table, key.PersonID, key.TargetID))
		}
		row := PT(existing)
		changed, err := a.deps.Lifecycle.SoftDelete(dbc, row)
		if err != nil {
			return err
		}
		out.ID = row.PrimaryID()
		out.Changed = changed
		out.At = row.State().UpdatedAt
		return nil
	})
	return out, err
}

func (a *membershipAggregate[T, PT]) Restore(ctx context.Context, key domainagg.MembershipKey) (domainagg.MembershipResult, error) {
	op := a.op("Restore")
	var out domainagg.MembershipResult
	if err := a.ready(op); err != nil {
		return out, err
	}
	if err := validateKey(op, key.PersonID, key.TargetID); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		existing, err := a.deps.Rows.FindPair(dbc, key.PersonID, key.TargetID)
		if err != nil {
			return err
		}
		if existing == nil {
			return NotFoundError(fmt.Sprintf("%s membership %d/%d not found", a.Kind().Table, key.PersonID, key.TargetID))
		}
		row := PT(existing)
		if row.State().Deleted() {
			if err := a.requireParties(dbc, key.PersonID, key.TargetID); err != nil {
				if domainagg.IsCode(err, domainagg.CodeNotFound) {
					return PreconditionError("cannot restore a membership whose person or target is deleted")
				}
				return err
			}
		}
		restored, err := a.deps.Lifecycle.Restore(dbc, row)
		if err != nil {
			return err
		}
		out = membershipResult(row, restored)
		return nil
	})
	return out, err
}

func (a *membershipAggregate[T, PT]) livePair(dbc dbctx.Context, personID, targetID int64) (PT, error) {
	existing, err := a.deps.Rows.FindPair(dbc, personID, targetID)
	if err != nil {
		return nil, err
	}
	if existing == nil || PT(existing).State().Deleted() {
		return nil, NotFoundError(fmt.Sprintf("%s membership %d/%d not found", a.Kind().Table, personID, targetID))
	}
	return PT(existing), nil
}

func membershipResult(row types.Membership, restored bool) domainagg.MembershipResult {
	w := row.Window()
	return domainagg.MembershipResult{
		ID:        row.PrimaryID(),
		PersonID:  row.Owner(),
		Target:    row.Target(),
		JoinedOn:  w.JoinedOn,
		LeftOn:    w.LeftOn,
		Active:    w.Active,
		Restored:  restored,
		UpdatedAt: row.State().UpdatedAt,
	}
}
