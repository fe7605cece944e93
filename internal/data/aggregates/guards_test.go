package aggregates

import (
	"context"
	"testing"

	"github.com/yungbote/membership-registry/internal/data/repos/testutil"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
)

func TestRequireCASSuccess(t *testing.T) {
	if err := RequireCASSuccess(true, "ok"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := RequireCASSuccess(false, "stale"); err == nil {
		t.Fatalf("expected conflict error")
	}
}

func TestCASGuardUpdateByStatus(t *testing.T) {
	db := testutil.DB(t)
	g := NewCASGuard(db)
	dbc := dbctx.Context{Ctx: context.Background()}
	p := testutil.SeedPerson(t, db, 0, 0)

	ok, err := g.UpdateByStatus(dbc, "person", p.ID, "document_status_id", []int64{types.StatusValidated}, map[string]any{"document_status_id": 3})
	if err != nil {
		t.Fatalf("UpdateByStatus: %v", err)
	}
	if ok {
		t.Fatalf("guard must reject a status the row does not hold")
	}
	ok, err = g.UpdateByStatus(dbc, "person", p.ID, "document_status_id", []int64{types.StatusPending}, map[string]any{"document_status_id": types.StatusValidated})
	if err != nil || !ok {
		t.Fatalf("UpdateByStatus: ok=%v err=%v", ok, err)
	}
	if _, err := g.UpdateByStatus(dbc, "person", p.ID, "document_status_id", nil, map[string]any{"x": 1}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestCASGuardUpdateIfNull(t *testing.T) {
	db := testutil.DB(t)
	g := NewCASGuard(db)
	dbc := dbctx.Context{Ctx: context.Background()}
	p := testutil.SeedPerson(t, db, 0, 0)

	ok, err := g.UpdateIfNull(dbc, "person", p.ID, "code_matriculation", map[string]any{"code_matriculation": "CD00000125"})
	if err != nil || !ok {
		t.Fatalf("first UpdateIfNull: ok=%v err=%v", ok, err)
	}
	ok, err = g.UpdateIfNull(dbc, "person", p.ID, "code_matriculation", map[string]any{"code_matriculation": "FR00000125"})
	if err != nil || ok {
		t.Fatalf("second UpdateIfNull must not apply: ok=%v err=%v", ok, err)
	}

	var got types.Person
	if err := db.First(&got, p.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.CodeMatriculation == nil || *got.CodeMatriculation != "CD00000125" {
		t.Fatalf("code overwritten: %v", got.CodeMatriculation)
	}

	other := testutil.SeedPerson(t, db, 0, 0)
	testutil.MarkDeleted(t, db, "person", other.ID)
	ok, err = g.UpdateIfNull(dbc, "person", other.ID, "code_matriculation", map[string]any{"code_matriculation": "CD00000999"})
	if err != nil || ok {
		t.Fatalf("UpdateIfNull must skip deleted rows: ok=%v err=%v", ok, err)
	}
}
