package registry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DocumentType tags the entity kind a polymorphic reference points to.
// The numeric values are persisted in document_type columns and must never be renumbered.
type DocumentType int

const (
	DocumentTypePerson    DocumentType = 1
	DocumentTypeParish    DocumentType = 2
	DocumentTypeStructure DocumentType = 3
	DocumentTypeCity      DocumentType = 4
	DocumentTypeProvince  DocumentType = 5
	DocumentTypeNation    DocumentType = 6
	DocumentTypeContinent DocumentType = 7
	DocumentTypeGender    DocumentType = 8
)

// Tags 1..8 exist in the persisted document_type table; anything outside is malformed input.
const (
	minDocumentType = DocumentTypePerson
	maxDocumentType = DocumentTypeGender
)

var (
	// ErrInvalidDocumentType is returned when a raw tag cannot be coerced to a DocumentType.
	ErrInvalidDocumentType = errors.New("invalid document type")
	// ErrUnsupportedDocumentType is returned for tags with no registered entity kind.
	ErrUnsupportedDocumentType = errors.New("unsupported document type")
)

// EntityKind names the entity a registered DocumentType addresses.
type EntityKind string

const (
	KindPerson    EntityKind = "person"
	KindParish    EntityKind = "parish"
	KindStructure EntityKind = "structure"
	KindNation    EntityKind = "nation"
	KindContinent EntityKind = "continent"
)

func (t DocumentType) String() string {
	switch t {
	case DocumentTypePerson:
		return "person"
	case DocumentTypeParish:
		return "parish"
	case DocumentTypeStructure:
		return "structure"
	case DocumentTypeCity:
		return "city"
	case DocumentTypeProvince:
		return "province"
	case DocumentTypeNation:
		return "nation"
	case DocumentTypeContinent:
		return "continent"
	case DocumentTypeGender:
		return "gender"
	default:
		return "document_type(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseDocumentType coerces a raw tag (int kinds, numeric strings, float64 from JSON) to a DocumentType.
func ParseDocumentType(raw any) (DocumentType, error) {
	var n int64
	switch v := raw.(type) {
	case DocumentType:
		n = int64(v)
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDocumentType, v)
		}
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDocumentType, v)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidDocumentType, raw)
	}
	if n < int64(minDocumentType) || n > int64(maxDocumentType) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDocumentType, n)
	}
	return DocumentType(n), nil
}

// ResolveEntityKind maps a DocumentType to its registered kind.
func ResolveEntityKind(t DocumentType) (EntityKind, error) {
	switch t {
	case DocumentTypePerson:
		return KindPerson, nil
	case DocumentTypeParish:
		return KindParish, nil
	case DocumentTypeStructure:
		return KindStructure, nil
	case DocumentTypeNation:
		return KindNation, nil
	case DocumentTypeContinent:
		return KindContinent, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDocumentType, t)
	}
}

// Registered reports whether t has an entity kind.
func (t DocumentType) Registered() bool {
	_, err := ResolveEntityKind(t)
	return err == nil
}

// DocumentTypes lists every registered DocumentType in tag order.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypePerson,
		DocumentTypeParish,
		DocumentTypeStructure,
		DocumentTypeNation,
		DocumentTypeContinent,
	}
}

// DocumentRef is a polymorphic (type, id) reference.
type DocumentRef struct {
	Type DocumentType `json:"document_type"`
	ID   int64        `json:"document_id"`
}

func (r DocumentRef) String() string {
	return fmt.Sprintf("%s#%d", r.Type, r.ID)
}

// Document is implemented by every entity a DocumentRef can address.
type Document interface {
	Lifecycled
	DocumentType() DocumentType
}

// RefOf returns the reference addressing doc.
func RefOf(doc Document) DocumentRef {
	return DocumentRef{Type: doc.DocumentType(), ID: doc.PrimaryID()}
}

var (
	_ Document = (*Person)(nil)
	_ Document = (*Parish)(nil)
	_ Document = (*Structure)(nil)
	_ Document = (*Nation)(nil)
	_ Document = (*Continent)(nil)
)
