package registry

import "time"

// MembershipWindow holds the dated part of a person–parish or person–structure row.
// Active is always derived from LeftOn and never taken from input.
type MembershipWindow struct {
	JoinedOn *time.Time `gorm:"column:joined_on" json:"joined_on,omitempty"`
	LeftOn   *time.Time `gorm:"column:left_on" json:"left_on,omitempty"`
	Active   bool       `gorm:"column:is_active;not null;index" json:"is_active"`
}

// Reset replaces the window dates and re-derives Active.
func (w *MembershipWindow) Reset(joined, left *time.Time, today time.Time) {
	w.JoinedOn = joined
	w.LeftOn = left
	w.Active = MembershipActive(left, today)
}

func (w *MembershipWindow) Window() *MembershipWindow { return w }

func (w *MembershipWindow) OnSoftDelete(time.Time) map[string]any {
	w.Active = false
	return map[string]any{"is_active": false}
}

func (w *MembershipWindow) OnRestore(today time.Time) map[string]any {
	w.Active = MembershipActive(w.LeftOn, today)
	return map[string]any{"is_active": w.Active}
}

// Membership is the common view of PersonParish and PersonStructure.
type Membership interface {
	Lifecycled
	Owner() int64
	Target() DocumentRef
	Window() *MembershipWindow
}

type PersonParish struct {
	ID       int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PersonID int64 `gorm:"column:person_id;not null;uniqueIndex:idx_person_parish_pair" json:"person_id"`
	ParishID int64 `gorm:"column:parish_id;not null;uniqueIndex:idx_person_parish_pair;index" json:"parish_id"`

	MembershipWindow
	Lifecycle
}

func (PersonParish) TableName() string { return "person_parish" }

func (m *PersonParish) PrimaryID() int64    { return m.ID }
func (m *PersonParish) Owner() int64        { return m.PersonID }
func (m *PersonParish) Target() DocumentRef { return DocumentRef{Type: DocumentTypeParish, ID: m.ParishID} }

type PersonStructure struct {
	ID          int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PersonID    int64 `gorm:"column:person_id;not null;uniqueIndex:idx_person_structure_pair" json:"person_id"`
	StructureID int64 `gorm:"column:structure_id;not null;uniqueIndex:idx_person_structure_pair;index" json:"structure_id"`

	MembershipWindow
	Lifecycle
}

func (PersonStructure) TableName() string { return "person_structure" }

func (m *PersonStructure) PrimaryID() int64    { return m.ID }
func (m *PersonStructure) Owner() int64        { return m.PersonID }
func (m *PersonStructure) Target() DocumentRef { return DocumentRef{Type: DocumentTypeStructure, ID: m.StructureID} }

// MembershipKind describes one membership table for the generic write paths.
type MembershipKind struct {
	Table        string
	TargetColumn string
	TargetType   DocumentType
}

var (
	ParishMembership = MembershipKind{
		Table:        "person_parish",
		TargetColumn: "parish_id",
		TargetType:   DocumentTypeParish,
	}
	StructureMembership = MembershipKind{
		Table:        "person_structure",
		TargetColumn: "structure_id",
		TargetType:   DocumentTypeStructure,
	}
)

func NewPersonParish(personID, parishID int64, now time.Time) *PersonParish {
	return &PersonParish{PersonID: personID, ParishID: parishID, Lifecycle: NewLifecycle(now)}
}

func NewPersonStructure(personID, structureID int64, now time.Time) *PersonStructure {
	return &PersonStructure{PersonID: personID, StructureID: structureID, Lifecycle: NewLifecycle(now)}
}
