package aggregates

import (
	"context"
	"testing"

	repotest "github.com/yungbote/membership-registry/internal/data/repos/testutil"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
)

type mandateSeed struct {
	structure *types.Structure
	direction *types.Direction
	person    *types.Person
	function  *types.Function
}

func seedMandateParents(t *testing.T, f *registryFixture) mandateSeed {
	t.Helper()
	structure := repotest.SeedStructure(t, f.db, "Jeunesse")
	parish := repotest.SeedParish(t, f.db, "Saint Joseph")
	return mandateSeed{
		structure: structure,
		direction: repotest.SeedDirection(t, f.db, structure.ID, types.DocumentRef{Type: types.DocumentTypeParish, ID: parish.ID}),
		person:    repotest.SeedPerson(t, f.db, 0, 0),
		function:  repotest.SeedFunction(t, f.db, "Président"),
	}
}

func TestMandateCreateDerivesActivity(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	other := repotest.SeedFunction(t, f.db, "Secrétaire")
	third := repotest.SeedFunction(t, f.db, "Trésorier")
	start := repotest.Now.AddDate(0, -6, 0)
	yesterday := repotest.Now.AddDate(0, 0, -1)

	cases := []struct {
		name      string
		function  int64
		ended     bool
		suspended bool
		want      bool
	}{
		{name: "open ended", function: s.function.ID, want: true},
		{name: "suspended", function: other.ID, suspended: true, want: false},
		{name: "ended yesterday", function: third.ID, ended: true, want: false},
	}
	for _, tc := range cases {
		in := domainagg.CreateMandateInput{
			DirectionID: s.direction.ID,
			PersonID:    s.person.ID,
			FunctionID:  tc.function,
			StartDate:   start,
			Suspended:   tc.suspended,
		}
		if tc.ended {
			in.EndDate = &yesterday
		}
		res, err := f.mandates.Create(context.Background(), in)
		if err != nil {
			t.Fatalf("%s: Create: %v", tc.name, err)
		}
		if res.Active != tc.want {
			t.Fatalf("%s: active want=%v got=%v", tc.name, tc.want, res.Active)
		}
	}
}

func TestMandateCreateRejectsDuplicateHolder(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	repotest.SeedMandate(t, f.db, s.direction.ID, s.person.ID, s.function.ID)

	_, err := f.mandates.Create(context.Background(), domainagg.CreateMandateInput{
		DirectionID: s.direction.ID,
		PersonID:    s.person.ID,
		FunctionID:  s.function.ID,
		StartDate:   repotest.Now,
	})
	requireCode(t, err, domainagg.CodeDuplicate)
}

func TestMandateCreateRestoresDeletedHolderInPlace(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	seeded := repotest.SeedMandate(t, f.db, s.direction.ID, s.person.ID, s.function.ID)
	repotest.MarkDeleted(t, f.db, "direction_function", seeded.ID)

	res, err := f.mandates.Create(context.Background(), domainagg.CreateMandateInput{
		DirectionID: s.direction.ID,
		PersonID:    s.person.ID,
		FunctionID:  s.function.ID,
		StartDate:   repotest.Now,
		Suspended:   true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.ID != seeded.ID || !res.Restored || res.Active || !res.Suspended {
		t.Fatalf("unexpected result: %+v", res)
	}

	var row types.Mandate
	if err := f.db.First(&row, seeded.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.Deleted() || !row.Suspended || row.Active {
		t.Fatalf("unexpected stored mandate: %+v", row)
	}
}

func TestMandateCreateRejectsInvertedWindow(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	end := repotest.Now.AddDate(0, 0, -1)

	_, err := f.mandates.Create(context.Background(), domainagg.CreateMandateInput{
		DirectionID: s.direction.ID,
		PersonID:    s.person.ID,
		FunctionID:  s.function.ID,
		StartDate:   repotest.Now,
		EndDate:     &end,
	})
	requireCode(t, err, domainagg.CodeInvalidDateWindow)
}

func TestMandateCreateRequiresLiveDirection(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	repotest.MarkDeleted(t, f.db, "direction", s.direction.ID)

	_, err := f.mandates.Create(context.Background(), domainagg.CreateMandateInput{
		DirectionID: s.direction.ID,
		PersonID:    s.person.ID,
		FunctionID:  s.function.ID,
		StartDate:   repotest.Now,
	})
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestMandateUpdateSuspends(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	seeded := repotest.SeedMandate(t, f.db, s.direction.ID, s.person.ID, s.function.ID)

	res, err := f.mandates.Update(context.Background(), domainagg.UpdateMandateInput{
		DirectionID: s.direction.ID,
		MandateID:   seeded.ID,
		StartDate:   seeded.StartDate,
		Suspended:   true,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res.Active || !res.Suspended {
		t.Fatalf("suspended mandate must be inactive: %+v", res)
	}

	_, err = f.mandates.Update(context.Background(), domainagg.UpdateMandateInput{
		DirectionID: s.direction.ID + 1,
		MandateID:   seeded.ID,
		StartDate:   seeded.StartDate,
	})
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestMandateDeleteAndRestore(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	seeded := repotest.SeedMandate(t, f.db, s.direction.ID, s.person.ID, s.function.ID)
	key := domainagg.MandateKey{DirectionID: s.direction.ID, MandateID: seeded.ID}

	del, err := f.mandates.Delete(context.Background(), key)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !del.Changed {
		t.Fatalf("delete must change the mandate")
	}
	var row types.Mandate
	if err := f.db.Unscoped().First(&row, seeded.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !row.Deleted() || row.Active {
		t.Fatalf("deleted mandate must be inactive: %+v", row)
	}

	res, err := f.mandates.Restore(context.Background(), key)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !res.Restored || !res.Active {
		t.Fatalf("unexpected restore result: %+v", res)
	}
}

func TestMandateRestoreRequiresLiveDirection(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	seeded := repotest.SeedMandate(t, f.db, s.direction.ID, s.person.ID, s.function.ID)
	repotest.MarkDeleted(t, f.db, "direction_function", seeded.ID)
	repotest.MarkDeleted(t, f.db, "direction", s.direction.ID)

	_, err := f.mandates.Restore(context.Background(), domainagg.MandateKey{DirectionID: s.direction.ID, MandateID: seeded.ID})
	requireCode(t, err, domainagg.CodePreconditionFailed)
}

func TestMandateUpdateRejectsInvertedWindow(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	seeded := repotest.SeedMandate(t, f.db, s.direction.ID, s.person.ID, s.function.ID)
	end := seeded.StartDate.AddDate(0, 0, -1)

	_, err := f.mandates.Update(context.Background(), domainagg.UpdateMandateInput{
		DirectionID: s.direction.ID,
		MandateID:   seeded.ID,
		StartDate:   seeded.StartDate,
		EndDate:     &end,
	})
	requireCode(t, err, domainagg.CodeInvalidDateWindow)

	var row types.Mandate
	if err := f.db.First(&row, seeded.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.EndDate != nil || !row.Active {
		t.Fatalf("rejected update must leave the mandate untouched: %+v", row)
	}
}

func TestMandateRestoreRequiresLivePerson(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	seeded := repotest.SeedMandate(t, f.db, s.direction.ID, s.person.ID, s.function.ID)

	del, err := f.documents.Delete(context.Background(), domainagg.DocumentKey{Type: types.DocumentTypePerson, ID: s.person.ID})
	if err != nil {
		t.Fatalf("delete person: %v", err)
	}
	if del.Cascaded != 1 {
		t.Fatalf("person delete must cascade to its mandate, cascaded=%d", del.Cascaded)
	}

	key := domainagg.MandateKey{DirectionID: s.direction.ID, MandateID: seeded.ID}
	_, err = f.mandates.Restore(context.Background(), key)
	requireCode(t, err, domainagg.CodePreconditionFailed)

	var row types.Mandate
	if err := f.db.Unscoped().First(&row, seeded.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !row.Deleted() || row.Active {
		t.Fatalf("mandate of a deleted person must stay deleted: %+v", row)
	}

	if _, err := f.documents.Restore(context.Background(), domainagg.DocumentKey{Type: types.DocumentTypePerson, ID: s.person.ID}); err != nil {
		t.Fatalf("restore person: %v", err)
	}
	res, err := f.mandates.Restore(context.Background(), key)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !res.Restored || !res.Active {
		t.Fatalf("unexpected restore result: %+v", res)
	}
}

func TestMandateRestoreRequiresLiveFunction(t *testing.T) {
	f := newRegistryFixture(t)
	s := seedMandateParents(t, f)
	seeded := repotest.SeedMandate(t, f.db, s.direction.ID, s.person.ID, s.function.ID)
	repotest.MarkDeleted(t, f.db, "direction_function", seeded.ID)
	repotest.MarkDeleted(t, f.db, "function", s.function.ID)

	_, err := f.mandates.Restore(context.Background(), domainagg.MandateKey{DirectionID: s.direction.ID, MandateID: seeded.ID})
	requireCode(t, err, domainagg.CodePreconditionFailed)
}
