package registry

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Address is a value object attached to a document through a polymorphic reference.
type Address struct {
	ID            int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DocumentType  DocumentType `gorm:"column:document_type;not null;index:idx_address_document" json:"document_type"`
	DocumentID    int64        `gorm:"column:document_id;not null;index:idx_address_document" json:"document_id"`
	NationID      int64        `gorm:"column:nation_id;not null;index" json:"nation_id"`
	ProvinceState string       `gorm:"column:province_state;not null;default:''" json:"province_state"`
	City          string       `gorm:"column:city;not null;default:''" json:"city"`
	Commune       *string      `gorm:"column:commune" json:"commune,omitempty"`
	Avenue        string       `gorm:"column:avenue;not null;default:''" json:"avenue"`
	Number        string       `gorm:"column:number;not null;default:''" json:"number"`
	FullAddress   *string      `gorm:"column:full_address" json:"full_address,omitempty"`

	Lifecycle
}

func (Address) TableName() string   { return "address" }
func (a *Address) PrimaryID() int64 { return a.ID }

func (a *Address) Ref() DocumentRef { return DocumentRef{Type: a.DocumentType, ID: a.DocumentID} }

type Contact struct {
	ID           int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DocumentType DocumentType `gorm:"column:document_type;not null;index:idx_contact_document" json:"document_type"`
	DocumentID   int64        `gorm:"column:document_id;not null;index:idx_contact_document" json:"document_id"`
	Tel1         *string      `gorm:"column:tel_1" json:"tel_1,omitempty"`
	Tel2         *string      `gorm:"column:tel_2" json:"tel_2,omitempty"`
	WhatsApp     *string      `gorm:"column:whatsapp" json:"whatsapp,omitempty"`
	Email        *string      `gorm:"column:email" json:"email,omitempty"`

	Lifecycle
}

func (Contact) TableName() string   { return "contact" }
func (c *Contact) PrimaryID() int64 { return c.ID }

func (c *Contact) Ref() DocumentRef { return DocumentRef{Type: c.DocumentType, ID: c.DocumentID} }

// File records an uploaded blob. The blob itself lives outside the registry.
type File struct {
	ID           int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OriginalName *string      `gorm:"column:original_name" json:"original_name,omitempty"`
	FileName     string       `gorm:"column:file_name;not null;uniqueIndex" json:"file_name"`
	MimeType     string       `gorm:"column:mime_type;not null" json:"mime_type"`
	Size         int64        `gorm:"column:size;not null" json:"size"`
	DocumentType DocumentType `gorm:"column:document_type;not null;index:idx_file_document" json:"document_type"`
	DocumentID   int64        `gorm:"column:document_id;not null;index:idx_file_document" json:"document_id"`

	Lifecycle
}

func (File) TableName() string   { return "file" }
func (f *File) PrimaryID() int64 { return f.ID }

func (f *File) Ref() DocumentRef { return DocumentRef{Type: f.DocumentType, ID: f.DocumentID} }

// StoredFileName derives a collision-free storage name that keeps the original extension.
func StoredFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if len(ext) > 16 {
		ext = ""
	}
	return uuid.NewString() + ext
}

func NewAddress(ref DocumentRef, nationID int64, now time.Time) *Address {
	return &Address{DocumentType: ref.Type, DocumentID: ref.ID, NationID: nationID, Lifecycle: NewLifecycle(now)}
}
