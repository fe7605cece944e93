package registry

import "fmt"

// ProjectionShape lists the columns loaded to build a kind's public projection.
type ProjectionShape struct {
	Kind    EntityKind
	Columns []string
}

// DocumentProjection is the minimal public view of a referenced document.
type DocumentProjection struct {
	Type DocumentType `json:"document_type"`
	ID   int64        `json:"document_id"`
	Name string       `json:"name"`
	Code *string      `json:"code,omitempty"`
}

func (p DocumentProjection) Ref() DocumentRef { return DocumentRef{Type: p.Type, ID: p.ID} }

// ResolveProjection returns the column set of t's public projection.
func ResolveProjection(t DocumentType) (ProjectionShape, error) {
	switch t {
	case DocumentTypePerson:
		return ProjectionShape{Kind: KindPerson, Columns: []string{"id", "last_name", "middle_name", "first_name", "code_matriculation"}}, nil
	case DocumentTypeParish:
		return ProjectionShape{Kind: KindParish, Columns: []string{"id", "name"}}, nil
	case DocumentTypeStructure:
		return ProjectionShape{Kind: KindStructure, Columns: []string{"id", "name", "code"}}, nil
	case DocumentTypeNation:
		return ProjectionShape{Kind: KindNation, Columns: []string{"id", "name", "iso_alpha_2"}}, nil
	case DocumentTypeContinent:
		return ProjectionShape{Kind: KindContinent, Columns: []string{"id", "name"}}, nil
	default:
		return ProjectionShape{}, fmt.Errorf("%w: %s", ErrUnsupportedDocumentType, t)
	}
}

// Project builds the public projection of doc.
func Project(doc Document) DocumentProjection {
	switch d := doc.(type) {
	case *Person:
		return DocumentProjection{Type: DocumentTypePerson, ID: d.ID, Name: d.FullName(), Code: d.CodeMatriculation}
	case *Parish:
		return DocumentProjection{Type: DocumentTypeParish, ID: d.ID, Name: d.Name}
	case *Structure:
		return DocumentProjection{Type: DocumentTypeStructure, ID: d.ID, Name: d.Name, Code: d.Code}
	case *Nation:
		return DocumentProjection{Type: DocumentTypeNation, ID: d.ID, Name: d.Name, Code: d.ISOAlpha2}
	case *Continent:
		return DocumentProjection{Type: DocumentTypeContinent, ID: d.ID, Name: d.Name}
	default:
		return DocumentProjection{Type: doc.DocumentType(), ID: doc.PrimaryID()}
	}
}
