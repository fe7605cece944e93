package registry

import "time"

const (
	// StatusPending is the initial document status of every person.
	StatusPending int64 = 1
	// StatusValidated marks a person accepted by a recenseur.
	StatusValidated int64 = 29
)

const (
	PersonTypePracticing int64 = 1
	// PersonTypeSympathizer is exempt from matriculation code issuance.
	PersonTypeSympathizer int64 = 2
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Person is a registered member. CodeMatriculation is written once, on validation.
type Person struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	LastName          string     `gorm:"column:last_name;not null" json:"last_name"`
	MiddleName        *string    `gorm:"column:middle_name" json:"middle_name,omitempty"`
	FirstName         string     `gorm:"column:first_name;not null" json:"first_name"`
	Gender            Gender     `gorm:"column:gender;type:varchar(1);not null" json:"gender"`
	BirthDate         *time.Time `gorm:"column:birth_date" json:"birth_date,omitempty"`
	CardNumber        *string    `gorm:"column:card_number" json:"card_number,omitempty"`
	Phone             string     `gorm:"column:phone;not null;default:''" json:"phone"`
	PersonTypeID      *int64     `gorm:"column:person_type_id;index" json:"person_type_id,omitempty"`
	DocumentStatusID  int64      `gorm:"column:document_status_id;not null;default:1;index" json:"document_status_id"`
	CodeMatriculation *string    `gorm:"column:code_matriculation;type:varchar(10);uniqueIndex" json:"code_matriculation,omitempty"`
	RecenseurID       *int64     `gorm:"column:recenseur_id;index" json:"recenseur_id,omitempty"`

	Lifecycle
}

func (Person) TableName() string { return "person" }

// NewPerson returns a pending person with fresh lifecycle columns.
func NewPerson(lastName, firstName string, gender Gender, now time.Time) *Person {
	return &Person{
		LastName:         lastName,
		FirstName:        firstName,
		Gender:           gender,
		DocumentStatusID: StatusPending,
		Lifecycle:        NewLifecycle(now),
	}
}

func (p *Person) PrimaryID() int64           { return p.ID }
func (p *Person) DocumentType() DocumentType { return DocumentTypePerson }

// FullName joins the name parts present on the person.
func (p *Person) FullName() string {
	name := p.FirstName
	if p.MiddleName != nil && *p.MiddleName != "" {
		name += " " + *p.MiddleName
	}
	if p.LastName != "" {
		name += " " + p.LastName
	}
	return name
}

// Sympathizer reports whether the person belongs to the code-exempt category.
func (p *Person) Sympathizer() bool {
	return p.PersonTypeID != nil && *p.PersonTypeID == PersonTypeSympathizer
}

type PersonType struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null;uniqueIndex" json:"name"`

	Lifecycle
}

func (PersonType) TableName() string   { return "person_type" }
func (t *PersonType) PrimaryID() int64 { return t.ID }

// DocumentStatus is one configured state of a document's validation workflow.
type DocumentStatus struct {
	ID           int64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string        `gorm:"column:name;not null" json:"name"`
	Description  *string       `gorm:"column:description" json:"description,omitempty"`
	DocumentType *DocumentType `gorm:"column:document_type" json:"document_type,omitempty"`

	Lifecycle
}

func (DocumentStatus) TableName() string   { return "document_status" }
func (s *DocumentStatus) PrimaryID() int64 { return s.ID }
