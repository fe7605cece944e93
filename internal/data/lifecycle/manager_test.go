package lifecycle

import (
	"context"
	"errors"
	"testing"

	repos "github.com/yungbote/membership-registry/internal/data/repos/registry"
	"github.com/yungbote/membership-registry/internal/data/repos/testutil"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"gorm.io/gorm"
)

func bg() dbctx.Context { return dbctx.Context{Ctx: context.Background()} }

func load[T any](t *testing.T, db *gorm.DB, id int64) *T {
	t.Helper()
	row, err := repos.FindAny[T](bg(), db, repos.Where{"id": id})
	if err != nil {
		t.Fatalf("load %d: %v", id, err)
	}
	if row == nil {
		t.Fatalf("load %d: row missing", id)
	}
	return row
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	m := NewManager(db, testutil.Logger(t), testutil.Clock)
	parish := testutil.SeedParish(t, db, "Sainte Anne")

	entity := load[types.Parish](t, db, parish.ID)
	changed, err := m.SoftDelete(bg(), entity)
	if err != nil || !changed {
		t.Fatalf("first delete: changed=%v err=%v", changed, err)
	}
	changed, err = m.SoftDelete(bg(), entity)
	if err != nil || changed {
		t.Fatalf("second delete must be a no-op: changed=%v err=%v", changed, err)
	}

	reloaded := load[types.Parish](t, db, parish.ID)
	if !reloaded.IsDeleted || !reloaded.DeletedAt.Valid {
		t.Fatalf("row not flagged deleted: %+v", reloaded.Lifecycle)
	}
	if !reloaded.UpdatedAt.Equal(testutil.Now) {
		t.Fatalf("updated_at: want=%v got=%v", testutil.Now, reloaded.UpdatedAt)
	}
	changed, err = m.SoftDelete(bg(), reloaded)
	if err != nil || changed {
		t.Fatalf("delete of a reloaded deleted row must be a no-op: changed=%v err=%v", changed, err)
	}
	if live, _ := repos.GetLive[types.Parish](bg(), db, parish.ID); live != nil {
		t.Fatalf("deleted parish still live")
	}
}

func TestSoftDeleteStaleEntityDoesNotReportChange(t *testing.T) {
	db := testutil.DB(t)
	m := NewManager(db, testutil.Logger(t), testutil.Clock)
	s := testutil.SeedStructure(t, db, "Chorale")
	stale := load[types.Structure](t, db, s.ID)
	testutil.MarkDeleted(t, db, "structure", s.ID)

	changed, err := m.SoftDelete(bg(), stale)
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if changed {
		t.Fatalf("row deleted concurrently: want changed=false")
	}
}

func TestRestoreClearsDeletion(t *testing.T) {
	db := testutil.DB(t)
	m := NewManager(db, testutil.Logger(t), testutil.Clock)
	p := testutil.SeedPerson(t, db, 0, 0)

	changed, err := m.Restore(bg(), load[types.Person](t, db, p.ID))
	if err != nil || changed {
		t.Fatalf("restore of a live row must be a no-op: changed=%v err=%v", changed, err)
	}
	testutil.MarkDeleted(t, db, "person", p.ID)
	changed, err = m.Restore(bg(), load[types.Person](t, db, p.ID))
	if err != nil || !changed {
		t.Fatalf("restore: changed=%v err=%v", changed, err)
	}
	live, err := repos.GetLive[types.Person](bg(), db, p.ID)
	if err != nil || live == nil {
		t.Fatalf("restored person not live: %v", err)
	}
	if live.DeletedAt.Valid {
		t.Fatalf("deleted_at not cleared")
	}
}

func TestMandateHooksDriveActive(t *testing.T) {
	db := testutil.DB(t)
	m := NewManager(db, testutil.Logger(t), testutil.Clock)
	p := testutil.SeedPerson(t, db, 0, 0)
	s := testutil.SeedStructure(t, db, "Conseil")
	d := testutil.SeedDirection(t, db, s.ID, types.RefOf(s))
	f := testutil.SeedFunction(t, db, "President")
	mandate := testutil.SeedMandate(t, db, d.ID, p.ID, f.ID)

	if _, err := m.SoftDelete(bg(), load[types.Mandate](t, db, mandate.ID)); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	got := load[types.Mandate](t, db, mandate.ID)
	if got.Active {
		t.Fatalf("deleted mandate must be inactive")
	}
	if _, err := m.Restore(bg(), got); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got = load[types.Mandate](t, db, mandate.ID)
	if !got.Active || got.IsDeleted {
		t.Fatalf("restored open mandate must be active: %+v", got)
	}
}

func TestRestoredMembershipRederivesActive(t *testing.T) {
	db := testutil.DB(t)
	m := NewManager(db, testutil.Logger(t), testutil.Clock)
	p := testutil.SeedPerson(t, db, 0, 0)
	parish := testutil.SeedParish(t, db, "Saint Paul")
	ended := testutil.SeedPersonParish(t, db, p.ID, parish.ID, testutil.PtrTime(testutil.Now.AddDate(0, 0, -1)))
	testutil.MarkDeleted(t, db, "person_parish", ended.ID)

	if _, err := m.Restore(bg(), load[types.PersonParish](t, db, ended.ID)); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got := load[types.PersonParish](t, db, ended.ID)
	if got.IsDeleted || got.Active {
		t.Fatalf("restored ended membership must be live and inactive: %+v", got)
	}
}

func TestCascadeRequiresTransaction(t *testing.T) {
	db := testutil.DB(t)
	m := NewManager(db, testutil.Logger(t), testutil.Clock)
	s := testutil.SeedStructure(t, db, "Jeunesse")
	if _, err := m.CascadeDeleteDependents(bg(), s); !errors.Is(err, ErrNoTransaction) {
		t.Fatalf("want ErrNoTransaction, got %v", err)
	}
}

func TestCascadeStructureReachesMandates(t *testing.T) {
	db := testutil.DB(t)
	m := NewManager(db, testutil.Logger(t), testutil.Clock)
	s := testutil.SeedStructure(t, db, "Mamans")
	a := testutil.SeedPerson(t, db, 0, 0)
	b := testutil.SeedPerson(t, db, 0, 0)
	sa := testutil.SeedPersonStructure(t, db, a.ID, s.ID)
	sb := testutil.SeedPersonStructure(t, db, b.ID, s.ID)
	d := testutil.SeedDirection(t, db, s.ID, types.RefOf(s))
	f := testutil.SeedFunction(t, db, "Secretaire")
	ma := testutil.SeedMandate(t, db, d.ID, a.ID, f.ID)
	mb := testutil.SeedMandate(t, db, d.ID, b.ID, f.ID)
	testutil.MarkDeleted(t, db, "direction_function", mb.ID)

	entity := load[types.Structure](t, db, s.ID)
	var cascaded int
	err := db.Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
		if _, err := m.SoftDelete(dbc, entity); err != nil {
			return err
		}
		n, err := m.CascadeDeleteDependents(dbc, entity)
		cascaded = n
		return err
	})
	if err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if cascaded != 4 {
		t.Fatalf("want 4 cascaded rows (2 memberships, 1 direction, 1 mandate), got %d", cascaded)
	}
	for _, id := range []int64{sa.ID, sb.ID} {
		row := load[types.PersonStructure](t, db, id)
		if !row.IsDeleted || row.Active {
			t.Fatalf("membership %d not cascaded: %+v", id, row)
		}
	}
	if row := load[types.Direction](t, db, d.ID); !row.IsDeleted {
		t.Fatalf("direction not cascaded")
	}
	if row := load[types.Mandate](t, db, ma.ID); !row.IsDeleted || row.Active {
		t.Fatalf("mandate not cascaded: %+v", row)
	}
}

func TestCascadePersonCoversMembershipsAndMandates(t *testing.T) {
	db := testutil.DB(t)
	m := NewManager(db, testutil.Logger(t), testutil.Clock)
	p := testutil.SeedPerson(t, db, 0, 0)
	parish := testutil.SeedParish(t, db, "Saint Luc")
	s := testutil.SeedStructure(t, db, "Papas")
	pp := testutil.SeedPersonParish(t, db, p.ID, parish.ID, nil)
	ps := testutil.SeedPersonStructure(t, db, p.ID, s.ID)
	d := testutil.SeedDirection(t, db, s.ID, types.RefOf(parish))
	f := testutil.SeedFunction(t, db, "Tresorier")
	md := testutil.SeedMandate(t, db, d.ID, p.ID, f.ID)

	entity := load[types.Person](t, db, p.ID)
	err := db.Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
		n, err := m.CascadeDeleteDependents(dbc, entity)
		if err != nil {
			return err
		}
		if n != 3 {
			t.Errorf("want 3 cascaded rows, got %d", n)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if !load[types.PersonParish](t, db, pp.ID).IsDeleted ||
		!load[types.PersonStructure](t, db, ps.ID).IsDeleted ||
		!load[types.Mandate](t, db, md.ID).IsDeleted {
		t.Fatalf("person dependents not cascaded")
	}
	if load[types.Direction](t, db, d.ID).IsDeleted {
		t.Fatalf("direction must survive its mandate holder")
	}
}

func TestCascadeFailureRollsBackOwner(t *testing.T) {
	db := testutil.DB(t)
	m := NewManager(db, testutil.Logger(t), testutil.Clock)
	s := testutil.SeedStructure(t, db, "Lecteurs")
	p := testutil.SeedPerson(t, db, 0, 0)
	d := testutil.SeedDirection(t, db, s.ID, types.RefOf(s))
	f := testutil.SeedFunction(t, db, "Membre")
	testutil.SeedMandate(t, db, d.ID, p.ID, f.ID)
	boom := errors.New("disk on fire")
	testutil.FailUpdatesOn(t, db, "direction_function", boom)

	entity := load[types.Direction](t, db, d.ID)
	err := db.Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
		if _, err := m.SoftDelete(dbc, entity); err != nil {
			return err
		}
		_, err := m.CascadeDeleteDependents(dbc, entity)
		return err
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want injected failure, got %v", err)
	}
	if load[types.Direction](t, db, d.ID).IsDeleted {
		t.Fatalf("direction delete must roll back with its cascade")
	}
}
