package references

import (
	"context"
	"fmt"
	"testing"

	repos "github.com/yungbote/membership-registry/internal/data/repos/registry"
	"github.com/yungbote/membership-registry/internal/data/repos/testutil"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"gorm.io/gorm"
)

func newResolver(t *testing.T) (*Resolver, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return NewResolver(repos.NewDocumentRepo(db, log), log), db
}

func bg() dbctx.Context { return dbctx.Context{Ctx: context.Background()} }

func TestValidateReferenceInvalidTagNeverReportsNotFound(t *testing.T) {
	r, db := newResolver(t)
	qc := testutil.CountQueries(t, db)

	for _, raw := range []any{0, 9, -1, "abc", 2.5, nil, int(types.DocumentTypeCity), "5", types.DocumentTypeGender} {
		_, err := r.ValidateReference(bg(), raw, 1)
		if err == nil {
			t.Fatalf("raw=%v: expected error", raw)
		}
		if !domainagg.IsCode(err, domainagg.CodeInvalidReferenceType) {
			t.Fatalf("raw=%v: want invalid_reference_type, got %v", raw, err)
		}
		if domainagg.IsCode(err, domainagg.CodeNotFound) {
			t.Fatalf("raw=%v: invalid tag reported as not found", raw)
		}
	}
	if qc.Total() != 0 {
		t.Fatalf("invalid tags must not query storage, got %d queries", qc.Total())
	}
}

func TestValidateReferenceLiveAndMissing(t *testing.T) {
	r, db := newResolver(t)
	parish := testutil.SeedParish(t, db, "Saint Pierre")
	qc := testutil.CountQueries(t, db)

	doc, err := r.ValidateReference(bg(), "2", parish.ID)
	if err != nil {
		t.Fatalf("ValidateReference: %v", err)
	}
	if doc.DocumentType() != types.DocumentTypeParish || doc.PrimaryID() != parish.ID {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if qc.Total() != 1 {
		t.Fatalf("want exactly one existence query, got %d", qc.Total())
	}

	_, err = r.ValidateReference(bg(), types.DocumentTypeParish, parish.ID+100)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("want not_found, got %v", err)
	}
}

func TestSoftDeletedRowsAreAbsent(t *testing.T) {
	r, db := newResolver(t)
	p := testutil.SeedPerson(t, db, 0, types.PersonTypePracticing)
	testutil.MarkDeleted(t, db, "person", p.ID)

	if _, err := r.ValidateReference(bg(), 1, p.ID); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("deleted person must be not_found, got %v", err)
	}
	proj, err := r.ResolveReference(bg(), 1, p.ID)
	if err != nil {
		t.Fatalf("ResolveReference: %v", err)
	}
	if proj != nil {
		t.Fatalf("deleted person must resolve to nil, got %+v", proj)
	}
	ref := types.DocumentRef{Type: types.DocumentTypePerson, ID: p.ID}
	got, err := r.ResolveReferencesBatch(bg(), []types.DocumentRef{ref})
	if err != nil {
		t.Fatalf("ResolveReferencesBatch: %v", err)
	}
	if _, ok := got[ref]; ok {
		t.Fatalf("deleted person must be absent from batch result")
	}
}

func TestResolveReferenceProjection(t *testing.T) {
	r, db := newResolver(t)
	p := testutil.SeedPerson(t, db, 0, 0)

	proj, err := r.ResolveReference(bg(), types.DocumentTypePerson, p.ID)
	if err != nil {
		t.Fatalf("ResolveReference: %v", err)
	}
	if proj == nil || proj.Name != p.FullName() || proj.Ref() != types.RefOf(p) {
		t.Fatalf("unexpected projection: %+v", proj)
	}
	proj, err = r.ResolveReference(bg(), "city", 1)
	if err != nil || proj != nil {
		t.Fatalf("unsupported tag must resolve to nil, got %+v err=%v", proj, err)
	}
}

func TestResolveReferencesBatchOneQueryPerType(t *testing.T) {
	r, db := newResolver(t)
	refs := make([]types.DocumentRef, 0, 100)
	for i := 0; i < 40; i++ {
		p := testutil.SeedPerson(t, db, 0, 0)
		refs = append(refs, types.RefOf(p))
	}
	for i := 0; i < 30; i++ {
		p := testutil.SeedParish(t, db, fmt.Sprintf("parish-%02d", i))
		refs = append(refs, types.RefOf(p))
	}
	for i := 0; i < 30; i++ {
		s := testutil.SeedStructure(t, db, "structure")
		refs = append(refs, types.RefOf(s))
	}
	qc := testutil.CountQueries(t, db)

	got, err := r.ResolveReferencesBatch(bg(), refs)
	if err != nil {
		t.Fatalf("ResolveReferencesBatch: %v", err)
	}
	if qc.Total() != 3 {
		t.Fatalf("want 3 grouped queries, got %d", qc.Total())
	}
	for _, table := range []string{"person", "parish", "structure"} {
		if qc.Table(table) != 1 {
			t.Fatalf("table %s: want 1 query, got %d", table, qc.Table(table))
		}
	}
	if len(got) != len(refs) {
		t.Fatalf("want %d projections, got %d", len(refs), len(got))
	}
	for _, ref := range refs {
		if p, ok := got[ref]; !ok || p.Ref() != ref {
			t.Fatalf("missing projection for %s", ref)
		}
	}
}

func TestResolveReferencesBatchSkipsUnsupportedAndMissing(t *testing.T) {
	r, db := newResolver(t)
	parish := testutil.SeedParish(t, db, "Only")
	live := types.RefOf(parish)
	refs := []types.DocumentRef{
		live,
		live,
		{Type: types.DocumentTypeParish, ID: parish.ID + 50},
		{Type: types.DocumentTypeCity, ID: 1},
		{Type: types.DocumentType(42), ID: 1},
	}
	qc := testutil.CountQueries(t, db)

	got, err := r.ResolveReferencesBatch(bg(), refs)
	if err != nil {
		t.Fatalf("ResolveReferencesBatch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want only the live parish, got %+v", got)
	}
	if got[live].Name != "Only" {
		t.Fatalf("unexpected projection: %+v", got[live])
	}
	if qc.Total() != 1 {
		t.Fatalf("want a single parish query, got %d", qc.Total())
	}
}

func TestResolveReferencesBatchInsideTransaction(t *testing.T) {
	r, db := newResolver(t)
	p := testutil.SeedPerson(t, db, 0, 0)
	s := testutil.SeedStructure(t, db, "Jeunesse")
	tx := testutil.Tx(t, db)

	got, err := r.ResolveReferencesBatch(dbctx.Context{Ctx: context.Background(), Tx: tx}, []types.DocumentRef{types.RefOf(p), types.RefOf(s)})
	if err != nil {
		t.Fatalf("ResolveReferencesBatch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 projections, got %d", len(got))
	}
}

func TestResolveReferencesBatchEmpty(t *testing.T) {
	r, db := newResolver(t)
	qc := testutil.CountQueries(t, db)
	got, err := r.ResolveReferencesBatch(bg(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty batch: got=%v err=%v", got, err)
	}
	if qc.Total() != 0 {
		t.Fatalf("empty batch must not query, got %d", qc.Total())
	}
}
