package registry

import "time"

// Direction is the governing body of a structure, attached to a target document.
type Direction struct {
	ID           int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StructureID  int64        `gorm:"column:structure_id;not null;index" json:"structure_id"`
	DocumentType DocumentType `gorm:"column:document_type;not null;index:idx_direction_document" json:"document_type"`
	DocumentID   int64        `gorm:"column:document_id;not null;index:idx_direction_document" json:"document_id"`
	Name         *string      `gorm:"column:name" json:"name,omitempty"`

	Lifecycle
}

func (Direction) TableName() string   { return "direction" }
func (d *Direction) PrimaryID() int64 { return d.ID }

func (d *Direction) Ref() DocumentRef { return DocumentRef{Type: d.DocumentType, ID: d.DocumentID} }

func NewDirection(structureID int64, target DocumentRef, now time.Time) *Direction {
	return &Direction{
		StructureID:  structureID,
		DocumentType: target.Type,
		DocumentID:   target.ID,
		Lifecycle:    NewLifecycle(now),
	}
}

// Mandate assigns a person to a function within a direction.
type Mandate struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DirectionID int64      `gorm:"column:direction_id;not null;uniqueIndex:idx_mandate_holder;index" json:"direction_id"`
	PersonID    int64      `gorm:"column:person_id;not null;uniqueIndex:idx_mandate_holder;index" json:"person_id"`
	FunctionID  int64      `gorm:"column:function_id;not null;uniqueIndex:idx_mandate_holder" json:"function_id"`
	StartDate   time.Time  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate     *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	Suspended   bool       `gorm:"column:is_suspended;not null" json:"is_suspended"`
	Active      bool       `gorm:"column:is_active;not null;index" json:"is_active"`

	Lifecycle
}

func (Mandate) TableName() string   { return "direction_function" }
func (m *Mandate) PrimaryID() int64 { return m.ID }

func NewMandate(directionID, personID, functionID int64, now time.Time) *Mandate {
	return &Mandate{
		DirectionID: directionID,
		PersonID:    personID,
		FunctionID:  functionID,
		Lifecycle:   NewLifecycle(now),
	}
}

// Reset replaces the mandate window and suspension, then re-derives Active.
func (m *Mandate) Reset(start time.Time, end *time.Time, suspended bool, today time.Time) {
	m.StartDate = start
	m.EndDate = end
	m.Suspended = suspended
	m.Active = MandateActive(end, suspended, today)
}

func (m *Mandate) OnSoftDelete(time.Time) map[string]any {
	m.Active = false
	return map[string]any{"is_active": false}
}

func (m *Mandate) OnRestore(today time.Time) map[string]any {
	m.Active = MandateActive(m.EndDate, m.Suspended, today)
	return map[string]any{"is_active": m.Active}
}
