package registry

import (
	"errors"
	"testing"
)

func TestParseDocumentType(t *testing.T) {
	valid := []any{1, int64(2), "3", " 6 ", float64(7), DocumentTypeGender, uint8(4)}
	for _, raw := range valid {
		if _, err := ParseDocumentType(raw); err != nil {
			t.Fatalf("ParseDocumentType(%v): unexpected err: %v", raw, err)
		}
	}
	invalid := []any{0, 9, -1, "abc", "", 2.5, nil, true, []int{1}}
	for _, raw := range invalid {
		_, err := ParseDocumentType(raw)
		if !errors.Is(err, ErrInvalidDocumentType) {
			t.Fatalf("ParseDocumentType(%v): want ErrInvalidDocumentType, got %v", raw, err)
		}
	}
}

func TestEveryRegisteredTypeHasKindAndProjection(t *testing.T) {
	seen := map[EntityKind]bool{}
	for _, dt := range DocumentTypes() {
		kind, err := ResolveEntityKind(dt)
		if err != nil {
			t.Fatalf("ResolveEntityKind(%s): %v", dt, err)
		}
		if seen[kind] {
			t.Fatalf("kind %s registered twice", kind)
		}
		seen[kind] = true
		shape, err := ResolveProjection(dt)
		if err != nil {
			t.Fatalf("ResolveProjection(%s): %v", dt, err)
		}
		if shape.Kind != kind {
			t.Fatalf("projection kind mismatch for %s: %s != %s", dt, shape.Kind, kind)
		}
		if len(shape.Columns) == 0 || shape.Columns[0] != "id" {
			t.Fatalf("projection of %s must start with id, got %v", dt, shape.Columns)
		}
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 registered kinds, got %d", len(seen))
	}
}

func TestUnregisteredTypesFailDistinctly(t *testing.T) {
	for _, dt := range []DocumentType{DocumentTypeCity, DocumentTypeProvince, DocumentTypeGender} {
		if _, err := ResolveEntityKind(dt); !errors.Is(err, ErrUnsupportedDocumentType) {
			t.Fatalf("ResolveEntityKind(%s): want ErrUnsupportedDocumentType, got %v", dt, err)
		}
		if _, err := ResolveProjection(dt); !errors.Is(err, ErrUnsupportedDocumentType) {
			t.Fatalf("ResolveProjection(%s): want ErrUnsupportedDocumentType, got %v", dt, err)
		}
		if dt.Registered() {
			t.Fatalf("%s must not be registered", dt)
		}
	}
}

func TestDocumentTypeEncodingIsStable(t *testing.T) {
	want := map[DocumentType]int{
		DocumentTypePerson:    1,
		DocumentTypeParish:    2,
		DocumentTypeStructure: 3,
		DocumentTypeNation:    6,
		DocumentTypeContinent: 7,
	}
	for dt, n := range want {
		if int(dt) != n {
			t.Fatalf("%s encoded as %d, want %d", dt, int(dt), n)
		}
	}
}

func TestProjectMatchesDocumentType(t *testing.T) {
	iso := "CD"
	docs := []Document{
		&Person{ID: 1, FirstName: "Jean", LastName: "Mukendi"},
		&Parish{ID: 2, Name: "Kinshasa Centre"},
		&Structure{ID: 3, Name: "Jeunesse"},
		&Nation{ID: 4, Name: "RDC", ISOAlpha2: &iso},
		&Continent{ID: 5, Name: "Afrique"},
	}
	for _, doc := range docs {
		p := Project(doc)
		if p.Type != doc.DocumentType() || p.ID != doc.PrimaryID() {
			t.Fatalf("projection ref mismatch: %+v for %T", p, doc)
		}
		if p.Name == "" {
			t.Fatalf("projection of %T has empty name", doc)
		}
	}
	if got := Project(docs[3]); got.Code == nil || *got.Code != "CD" {
		t.Fatalf("nation projection code: %+v", got)
	}
}
