package registry

import "time"

type Continent struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null;uniqueIndex" json:"name"`

	Lifecycle
}

func (Continent) TableName() string { return "continent" }

func (c *Continent) PrimaryID() int64           { return c.ID }
func (c *Continent) DocumentType() DocumentType { return DocumentTypeContinent }

// Nation carries the ISO 3166 alpha-2 code used as the matriculation prefix.
type Nation struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContinentID int64   `gorm:"column:continent_id;not null;index" json:"continent_id"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	ISOAlpha2   *string `gorm:"column:iso_alpha_2;type:varchar(2)" json:"iso_alpha_2,omitempty"`

	Lifecycle
}

func (Nation) TableName() string { return "nation" }

func (n *Nation) PrimaryID() int64           { return n.ID }
func (n *Nation) DocumentType() DocumentType { return DocumentTypeNation }

type Parish struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null;uniqueIndex" json:"name"`

	Lifecycle
}

func (Parish) TableName() string { return "parish" }

func NewParish(name string, now time.Time) *Parish {
	return &Parish{Name: name, Lifecycle: NewLifecycle(now)}
}

func (p *Parish) PrimaryID() int64           { return p.ID }
func (p *Parish) DocumentType() DocumentType { return DocumentTypeParish }

// Structure is an organizational unit that persons join and directions govern.
type Structure struct {
	ID   int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string  `gorm:"column:name;not null" json:"name"`
	Code *string `gorm:"column:code;uniqueIndex" json:"code,omitempty"`

	Lifecycle
}

func (Structure) TableName() string { return "structure" }

func NewStructure(name string, now time.Time) *Structure {
	return &Structure{Name: name, Lifecycle: NewLifecycle(now)}
}

func (s *Structure) PrimaryID() int64           { return s.ID }
func (s *Structure) DocumentType() DocumentType { return DocumentTypeStructure }

// Function is a role a person can hold within a direction.
type Function struct {
	ID           int64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string        `gorm:"column:name;not null" json:"name"`
	Description  *string       `gorm:"column:description" json:"description,omitempty"`
	Order        *int          `gorm:"column:display_order" json:"order,omitempty"`
	DocumentType *DocumentType `gorm:"column:document_type" json:"document_type,omitempty"`

	Lifecycle
}

func (Function) TableName() string   { return "function" }
func (f *Function) PrimaryID() int64 { return f.ID }
