package testutil

import (
	"testing"
	"time"

	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"gorm.io/gorm"
)

func PtrTime(t time.Time) *time.Time { return &t }

func PtrString(s string) *string { return &s }

func PtrInt64(v int64) *int64 { return &v }

// SeedStatuses inserts Pending(1) and Validated(29).
func SeedStatuses(tb testing.TB, db *gorm.DB) {
	tb.Helper()
	dt := types.DocumentTypePerson
	for _, s := range []types.DocumentStatus{
		{ID: types.StatusPending, Name: "En attente", DocumentType: &dt},
		{ID: types.StatusValidated, Name: "Validé", DocumentType: &dt},
	} {
		row := s
		row.Lifecycle = types.NewLifecycle(Now)
		if err := db.Create(&row).Error; err != nil {
			tb.Fatalf("seed status %d: %v", s.ID, err)
		}
	}
}

func SeedPersonTypes(tb testing.TB, db *gorm.DB) {
	tb.Helper()
	for _, pt := range []types.PersonType{
		{ID: types.PersonTypePracticing, Name: "Pratiquant"},
		{ID: types.PersonTypeSympathizer, Name: "Sympathisant"},
	} {
		row := pt
		row.Lifecycle = types.NewLifecycle(Now)
		if err := db.Create(&row).Error; err != nil {
			tb.Fatalf("seed person type %d: %v", pt.ID, err)
		}
	}
}

// SeedPerson inserts a pending person. An id > 0 is used as the primary key.
func SeedPerson(tb testing.TB, db *gorm.DB, id int64, personType int64) *types.Person {
	tb.Helper()
	p := types.NewPerson("Mukendi", "Jean", types.GenderMale, Now)
	p.ID = id
	if personType > 0 {
		p.PersonTypeID = &personType
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed person: %v", err)
	}
	return p
}

func SeedParish(tb testing.TB, db *gorm.DB, name string) *types.Parish {
	tb.Helper()
	p := types.NewParish(name, Now)
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed parish: %v", err)
	}
	return p
}

func SeedStructure(tb testing.TB, db *gorm.DB, name string) *types.Structure {
	tb.Helper()
	s := types.NewStructure(name, Now)
	if err := db.Create(s).Error; err != nil {
		tb.Fatalf("seed structure: %v", err)
	}
	return s
}

func SeedContinent(tb testing.TB, db *gorm.DB, name string) *types.Continent {
	tb.Helper()
	c := &types.Continent{Name: name, Lifecycle: types.NewLifecycle(Now)}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed continent: %v", err)
	}
	return c
}

// SeedNation inserts a nation. An empty iso leaves iso_alpha_2 NULL.
func SeedNation(tb testing.TB, db *gorm.DB, continentID int64, name, iso string) *types.Nation {
	tb.Helper()
	n := &types.Nation{ContinentID: continentID, Name: name, Lifecycle: types.NewLifecycle(Now)}
	if iso != "" {
		n.ISOAlpha2 = &iso
	}
	if err := db.Create(n).Error; err != nil {
		tb.Fatalf("seed nation: %v", err)
	}
	return n
}

func SeedAddress(tb testing.TB, db *gorm.DB, ref types.DocumentRef, nationID int64) *types.Address {
	tb.Helper()
	a := types.NewAddress(ref, nationID, Now)
	a.City = "Kinshasa"
	if err := db.Create(a).Error; err != nil {
		tb.Fatalf("seed address: %v", err)
	}
	return a
}

func SeedPersonParish(tb testing.TB, db *gorm.DB, personID, parishID int64, left *time.Time) *types.PersonParish {
	tb.Helper()
	m := types.NewPersonParish(personID, parishID, Now)
	m.Reset(PtrTime(Now.AddDate(-1, 0, 0)), left, Now)
	if err := db.Create(m).Error; err != nil {
		tb.Fatalf("seed person parish: %v", err)
	}
	return m
}

func SeedPersonStructure(tb testing.TB, db *gorm.DB, personID, structureID int64) *types.PersonStructure {
	tb.Helper()
	m := types.NewPersonStructure(personID, structureID, Now)
	m.Reset(PtrTime(Now.AddDate(-1, 0, 0)), nil, Now)
	if err := db.Create(m).Error; err != nil {
		tb.Fatalf("seed person structure: %v", err)
	}
	return m
}

func SeedFunction(tb testing.TB, db *gorm.DB, name string) *types.Function {
	tb.Helper()
	f := &types.Function{Name: name, Lifecycle: types.NewLifecycle(Now)}
	if err := db.Create(f).Error; err != nil {
		tb.Fatalf("seed function: %v", err)
	}
	return f
}

func SeedDirection(tb testing.TB, db *gorm.DB, structureID int64, target types.DocumentRef) *types.Direction {
	tb.Helper()
	d := types.NewDirection(structureID, target, Now)
	if err := db.Create(d).Error; err != nil {
		tb.Fatalf("seed direction: %v", err)
	}
	return d
}

func SeedMandate(tb testing.TB, db *gorm.DB, directionID, personID, functionID int64) *types.Mandate {
	tb.Helper()
	m := types.NewMandate(directionID, personID, functionID, Now)
	m.Reset(Now.AddDate(-1, 0, 0), nil, false, Now)
	if err := db.Create(m).Error; err != nil {
		tb.Fatalf("seed mandate: %v", err)
	}
	return m
}

// MarkDeleted soft deletes row in place, bypassing the lifecycle manager.
func MarkDeleted(tb testing.TB, db *gorm.DB, table string, id int64) {
	tb.Helper()
	err := db.Table(table).Where("id = ?", id).Updates(map[string]any{
		"is_deleted": true,
		"deleted_at": Now,
		"updated_at": Now,
	}).Error
	if err != nil {
		tb.Fatalf("mark %s %d deleted: %v", table, id, err)
	}
}
