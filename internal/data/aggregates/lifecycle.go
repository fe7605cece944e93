package aggregates

import (
	"context"
	"fmt"

	"github.com/yungbote/membership-registry/internal/data/lifecycle"
	"github.com/yungbote/membership-registry/internal/data/repos"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
)

type LifecycleAggregateDeps struct {
	Base BaseDeps

	Documents repos.DocumentRepo
	Lifecycle *lifecycle.Manager
}

type lifecycleAggregate struct {
	deps LifecycleAggregateDeps
}

func NewLifecycleAggregate(deps LifecycleAggregateDeps) domainagg.LifecycleAggregate {
	deps.Base = deps.Base.withDefaults()
	return &lifecycleAggregate{deps: deps}
}

func (a *lifecycleAggregate) Contract() domainagg.Contract {
	return domainagg.LifecycleAggregateContract
}

// parseKey resolves a raw document key to a registered type. Failures carry CodeInvalidReferenceType.
func parseKey(op string, key domainagg.DocumentKey) (types.DocumentType, error) {
	t, err := types.ParseDocumentType(key.Type)
	if err == nil {
		_, err = types.ResolveEntityKind(t)
	}
	if err != nil {
		return 0, domainagg.Wrap(domainagg.CodeInvalidReferenceType, op, err)
	}
	if key.ID <= 0 {
		return 0, domainagg.NewError(domainagg.CodeValidation, op, "document id is required", nil)
	}
	return t, nil
}

func (a *lifecycleAggregate) load(dbc dbctx.Context, t types.DocumentType, id int64) (types.Document, error) {
	doc, err := a.deps.Documents.GetAny(dbc, t, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, NotFoundError(fmt.Sprintf("%s %d not found", t, id))
	}
	return doc, nil
}

func (a *lifecycleAggregate) Delete(ctx context.Context, key domainagg.DocumentKey) (domainagg.LifecycleResult, error) {
	const op = "Registry.Lifecycle.Delete"
	var out domainagg.LifecycleResult
	if a.deps.Documents == nil || a.deps.Lifecycle == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "lifecycle aggregate not configured", nil)
	}
	t, err := parseKey(op, key)
	if err != nil {
		return out, err
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		doc, err := a.load(dbc, t, key.ID)
		if err != nil {
			return err
		}
		out.Table, out.ID = doc.TableName(), doc.PrimaryID()
		changed, err := a.deps.Lifecycle.SoftDelete(dbc, doc)
		if err != nil {
			return err
		}
		out.Changed = changed
		out.At = doc.State().UpdatedAt
		if !changed {
			return nil
		}
		n, err := a.deps.Lifecycle.CascadeDeleteDependents(dbc, doc)
		if err != nil {
			return err
		}
		out.Cascaded = n
		return nil
	})
	return out, err
}

func (a *lifecycleAggregate) Restore(ctx context.Context, key domainagg.DocumentKey) (domainagg.LifecycleResult, error) {
	const op = "Registry.Lifecycle.Restore"
	var out domainagg.LifecycleResult
	if a.deps.Documents == nil || a.deps.Lifecycle == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "lifecycle aggregate not configured", nil)
	}
	t, err := parseKey(op, key)
	if err != nil {
		return out, err
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		doc, err := a.load(dbc, t, key.ID)
		if err != nil {
			return err
		}
		out.Table, out.ID = doc.TableName(), doc.PrimaryID()
		changed, err := a.deps.Lifecycle.Restore(dbc, doc)
		if err != nil {
			return err
		}
		out.Changed = changed
		out.At = doc.State().UpdatedAt
		return nil
	})
	return out, err
}
