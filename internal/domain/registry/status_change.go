package registry

import (
	"time"

	"gorm.io/datatypes"
)

// StatusChange is an append-only record of one document status transition.
type StatusChange struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PersonID     int64          `gorm:"column:person_id;not null;index" json:"person_id"`
	FromStatusID int64          `gorm:"column:from_status_id;not null" json:"from_status_id"`
	ToStatusID   int64          `gorm:"column:to_status_id;not null" json:"to_status_id"`
	RecenseurID  *int64         `gorm:"column:recenseur_id" json:"recenseur_id,omitempty"`
	CodeIssued   *string        `gorm:"column:code_issued;type:varchar(10)" json:"code_issued,omitempty"`
	Metadata     datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;not null;autoCreateTime:false;index" json:"created_at"`
}

func (StatusChange) TableName() string { return "status_change" }
