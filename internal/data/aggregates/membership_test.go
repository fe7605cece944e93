package aggregates

import (
	"context"
	"testing"

	repotest "github.com/yungbote/membership-registry/internal/data/repos/testutil"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
)

func TestMembershipAddCreatesActiveRow(t *testing.T) {
	f := newRegistryFixture(t)
	person := repotest.SeedPerson(t, f.db, 0, 0)
	parish := repotest.SeedParish(t, f.db, "Saint Joseph")

	res, err := f.parishes.Add(context.Background(), domainagg.MembershipInput{
		PersonID: person.ID,
		TargetID: parish.ID,
		JoinedOn: repotest.PtrTime(repotest.Now.AddDate(0, -2, 0)),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if res.ID == 0 || !res.Active || res.Restored {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Target != (types.DocumentRef{Type: types.DocumentTypeParish, ID: parish.ID}) {
		t.Fatalf("target=%v", res.Target)
	}
	if len(f.hooks.Operations) != 1 || f.hooks.Operations[0].Status != "success" {
		t.Fatalf("expected one success observation, got %+v", f.hooks.Operations)
	}
}

func TestMembershipAddRejectsLiveDuplicate(t *testing.T) {
	f := newRegistryFixture(t)
	person := repotest.SeedPerson(t, f.db, 0, 0)
	parish := repotest.SeedParish(t, f.db, "Saint Joseph")
	repotest.SeedPersonParish(t, f.db, person.ID, parish.ID, nil)

	_, err := f.parishes.Add(context.Background(), domainagg.MembershipInput{PersonID: person.ID, TargetID: parish.ID})
	requireCode(t, err, domainagg.CodeDuplicate)

	var n int64
	if err := f.db.Unscoped().Model(&types.PersonParish{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("duplicate add must not insert, rows=%d", n)
	}
}

func TestMembershipAddRestoresSoftDeletedPairInPlace(t *testing.T) {
	f := newRegistryFixture(t)
	person := repotest.SeedPerson(t, f.db, 0, 0)
	parish := repotest.SeedParish(t, f.db, "Saint Joseph")
	seeded := repotest.SeedPersonParish(t, f.db, person.ID, parish.ID, nil)
	repotest.MarkDeleted(t, f.db, "person_parish", seeded.ID)

	left := repotest.Now.AddDate(0, 0, -1)
	res, err := f.parishes.Add(context.Background(), domainagg.MembershipInput{
		PersonID: person.ID,
		TargetID: parish.ID,
		JoinedOn: repotest.PtrTime(repotest.Now.AddDate(-2, 0, 0)),
		LeftOn:   &left,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if res.ID != seeded.ID || !res.Restored {
		t.Fatalf("expected in-place restore of %d, got %+v", seeded.ID, res)
	}
	if res.Active {
		t.Fatalf("membership that ended yesterday must be inactive")
	}

	var row types.PersonParish
	if err := f.db.First(&row, seeded.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.Deleted() || row.Active || row.LeftOn == nil {
		t.Fatalf("unexpected stored row: deleted=%v active=%v left=%v", row.Deleted(), row.Active, row.LeftOn)
	}
}

func TestMembershipAddRejectsInvertedWindow(t *testing.T) {
	f := newRegistryFixture(t)
	person := repotest.SeedPerson(t, f.db, 0, 0)
	structure := repotest.SeedStructure(t, f.db, "Chorale")

	joined := repotest.Now
	left := joined.AddDate(0, 0, -1)
	_, err := f.structures.Add(context.Background(), domainagg.MembershipInput{
		PersonID: person.ID,
		TargetID: structure.ID,
		JoinedOn: &joined,
		LeftOn:   &left,
	})
	requireCode(t, err, domainagg.CodeInvalidDateWindow)
}

func TestMembershipAddRequiresLiveTarget(t *testing.T) {
	f := newRegistryFixture(t)
	person := repotest.SeedPerson(t, f.db, 0, 0)
	parish := repotest.SeedParish(t, f.db, "Saint Joseph")
	repotest.MarkDeleted(t, f.db, "parish", parish.ID)

	_, err := f.parishes.Add(context.Background(), domainagg.MembershipInput{PersonID: person.ID, TargetID: parish.ID})
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestMembershipUpdateRederivesActivity(t *testing.T) {
	f := newRegistryFixture(t)
	person := repotest.SeedPerson(t, f.db, 0, 0)
	structure := repotest.SeedStructure(t, f.db, "Chorale")
	repotest.SeedPersonStructure(t, f.db, person.ID, structure.ID)

	left := repotest.Now.AddDate(0, 0, -3)
	res, err := f.structures.Update(context.Background(), domainagg.MembershipInput{
		PersonID: person.ID,
		TargetID: structure.ID,
		JoinedOn: repotest.PtrTime(repotest.Now.AddDate(-1, 0, 0)),
		LeftOn:   &left,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res.Active {
		t.Fatalf("ended membership must be inactive")
	}
}

func TestMembershipRemoveTwiceIsNoop(t *testing.T) {
	f := newRegistryFixture(t)
	person := repotest.SeedPerson(t, f.db, 0, 0)
	parish := repotest.SeedParish(t, f.db, "Saint Joseph")
	repotest.SeedPersonParish(t, f.db, person.ID, parish.ID, nil)
	key := domainagg.MembershipKey{PersonID: person.ID, TargetID: parish.ID}

	first, err := f.parishes.Remove(context.Background(), key)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !first.Changed {
		t.Fatalf("first remove must change the row")
	}
	second, err := f.parishes.Remove(context.Background(), key)
	if err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if second.Changed {
		t.Fatalf("second remove must be a no-op")
	}

	_, err = f.parishes.Remove(context.Background(), domainagg.MembershipKey{PersonID: person.ID, TargetID: parish.ID + 100})
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestMembershipRestoreRequiresLiveParties(t *testing.T) {
	f := newRegistryFixture(t)
	person := repotest.SeedPerson(t, f.db, 0, 0)
	parish := repotest.SeedParish(t, f.db, "Saint Joseph")
	seeded := repotest.SeedPersonParish(t, f.db, person.ID, parish.ID, nil)
	repotest.MarkDeleted(t, f.db, "person_parish", seeded.ID)
	repotest.MarkDeleted(t, f.db, "parish", parish.ID)
	key := domainagg.MembershipKey{PersonID: person.ID, TargetID: parish.ID}

	_, err := f.parishes.Restore(context.Background(), key)
	requireCode(t, err, domainagg.CodePreconditionFailed)

	if err := f.db.Unscoped().Model(&types.Parish{}).Where("id = ?", parish.ID).
		Updates(map[string]any{"is_deleted": false, "deleted_at": nil}).Error; err != nil {
		t.Fatalf("revive parish: %v", err)
	}
	res, err := f.parishes.Restore(context.Background(), key)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !res.Restored || !res.Active {
		t.Fatalf("unexpected restore result: %+v", res)
	}
}

func TestMembershipUpdateRejectsInvertedWindow(t *testing.T) {
	f := newRegistryFixture(t)
	person := repotest.SeedPerson(t, f.db, 0, 0)
	parish := repotest.SeedParish(t, f.db, "Saint Joseph")
	seeded := repotest.SeedPersonParish(t, f.db, person.ID, parish.ID, nil)

	joined := repotest.Now
	left := joined.AddDate(0, -1, 0)
	_, err := f.parishes.Update(context.Background(), domainagg.MembershipInput{
		PersonID: person.ID,
		TargetID: parish.ID,
		JoinedOn: &joined,
		LeftOn:   &left,
	})
	requireCode(t, err, domainagg.CodeInvalidDateWindow)

	var row types.PersonParish
	if err := f.db.First(&row, seeded.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.LeftOn != nil || !row.Active {
		t.Fatalf("rejected update must leave the membership untouched: left=%v active=%v", row.LeftOn, row.Active)
	}
}
