package references

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	repos "github.com/yungbote/membership-registry/internal/data/repos/registry"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"github.com/yungbote/membership-registry/internal/platform/logger"
)

// Resolver validates and projects polymorphic (document_type, document_id) references.
type Resolver struct {
	docs repos.DocumentRepo
	log  *logger.Logger
}

func NewResolver(docs repos.DocumentRepo, baseLog *logger.Logger) *Resolver {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &Resolver{docs: docs, log: baseLog.With("component", "ReferenceResolver")}
}

// ValidateReference returns the live document a raw reference points to.
//
// A tag that is malformed or has no registered kind fails with CodeInvalidReferenceType
// before any query runs. A well-formed tag with no live row fails with CodeNotFound.
func (r *Resolver) ValidateReference(dbc dbctx.Context, rawType any, id int64) (types.Document, error) {
	const op = "references.ValidateReference"
	t, err := registeredType(rawType)
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeInvalidReferenceType, op, err.Error(), err)
	}
	if id <= 0 {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("%s %d not found", t, id), nil)
	}
	doc, err := r.docs.GetLive(dbc, t, id)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if doc == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("%s %d not found", t, id), nil)
	}
	return doc, nil
}

// ResolveReference returns the public projection of a reference, or nil when the
// tag is unknown or the row is absent. Only storage failures are returned as errors.
func (r *Resolver) ResolveReference(dbc dbctx.Context, rawType any, id int64) (*types.DocumentProjection, error) {
	t, err := registeredType(rawType)
	if err != nil || id <= 0 {
		return nil, nil
	}
	doc, err := r.docs.GetLive(dbc, t, id)
	if err != nil {
		return nil, fmt.Errorf("resolve %s %d: %w", t, id, err)
	}
	if doc == nil {
		return nil, nil
	}
	p := types.Project(doc)
	return &p, nil
}

// ResolveReferencesBatch resolves refs with one query per distinct document type.
// Groups run concurrently unless dbc carries a transaction. Unsupported or missing
// references are absent from the result.
func (r *Resolver) ResolveReferencesBatch(dbc dbctx.Context, refs []types.DocumentRef) (map[types.DocumentRef]types.DocumentProjection, error) {
	out := make(map[types.DocumentRef]types.DocumentProjection, len(refs))
	groups := groupByType(refs)
	if len(groups) == 0 {
		return out, nil
	}

	results := make([][]types.Document, len(groups))
	load := func(c dbctx.Context, i int) error {
		g := groups[i]
		docs, err := r.docs.ListLiveByIDs(c, g.docType, g.ids)
		if err != nil {
			return fmt.Errorf("resolve %s batch: %w", g.docType, err)
		}
		results[i] = docs
		return nil
	}

	if dbc.InTx() {
		for i := range groups {
			if err := load(dbc, i); err != nil {
				return nil, err
			}
		}
	} else {
		ctx := dbc.Ctx
		if ctx == nil {
			ctx = context.Background()
		}
		eg, egctx := errgroup.WithContext(ctx)
		child := dbctx.Context{Ctx: egctx}
		for i := range groups {
			i := i
			eg.Go(func() error { return load(child, i) })
		}
		if err := eg.Wait(); err != nil {
			r.log.Warn("batch resolution failed", "groups", len(groups), "error", err)
			return nil, err
		}
	}

	for _, docs := range results {
		for _, doc := range docs {
			p := types.Project(doc)
			out[p.Ref()] = p
		}
	}
	return out, nil
}

type typeGroup struct {
	docType types.DocumentType
	ids     []int64
}

// groupByType buckets refs by registered type with deduplicated ids, in type order.
func groupByType(refs []types.DocumentRef) []typeGroup {
	byType := map[types.DocumentType]map[int64]struct{}{}
	for _, ref := range refs {
		if !ref.Type.Registered() || ref.ID <= 0 {
			continue
		}
		set, ok := byType[ref.Type]
		if !ok {
			set = map[int64]struct{}{}
			byType[ref.Type] = set
		}
		set[ref.ID] = struct{}{}
	}
	out := make([]typeGroup, 0, len(byType))
	for t, set := range byType {
		ids := make([]int64, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out = append(out, typeGroup{docType: t, ids: ids})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].docType < out[j].docType })
	return out
}

func registeredType(raw any) (types.DocumentType, error) {
	t, err := types.ParseDocumentType(raw)
	if err != nil {
		return 0, err
	}
	if _, err := types.ResolveEntityKind(t); err != nil {
		return 0, err
	}
	return t, nil
}
