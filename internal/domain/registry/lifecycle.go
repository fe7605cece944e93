package registry

import (
	"time"

	"gorm.io/gorm"
)

// Lifecycle carries the soft-delete columns shared by every managed entity.
// DeletedAt is a gorm.DeletedAt so the query builder drops deleted rows by default.
type Lifecycle struct {
	CreatedAt time.Time      `gorm:"column:created_at;not null;autoCreateTime:false;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"`
	IsDeleted bool           `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func NewLifecycle(now time.Time) Lifecycle {
	now = now.UTC()
	return Lifecycle{CreatedAt: now, UpdatedAt: now}
}

// Touch refreshes UpdatedAt without ever moving it backwards.
func (l *Lifecycle) Touch(now time.Time) {
	now = now.UTC()
	if now.After(l.UpdatedAt) {
		l.UpdatedAt = now
	}
}

func (l *Lifecycle) Deleted() bool {
	return l.IsDeleted
}

// MarkDeleted flags the entity deleted. It returns false when it already was.
func (l *Lifecycle) MarkDeleted(now time.Time) bool {
	if l.IsDeleted {
		return false
	}
	l.Touch(now)
	l.IsDeleted = true
	l.DeletedAt = gorm.DeletedAt{Time: l.UpdatedAt, Valid: true}
	return true
}

// ClearDeleted undoes MarkDeleted. It returns false when the entity was not deleted.
func (l *Lifecycle) ClearDeleted(now time.Time) bool {
	if !l.IsDeleted {
		return false
	}
	l.Touch(now)
	l.IsDeleted = false
	l.DeletedAt = gorm.DeletedAt{}
	return true
}

func (l *Lifecycle) State() *Lifecycle { return l }

// Lifecycled is any row the lifecycle manager can soft delete and restore.
type Lifecycled interface {
	TableName() string
	PrimaryID() int64
	State() *Lifecycle
}

// SoftDeleteHook lets an entity add column changes to its own soft delete.
// The returned map is applied in the same statement as the lifecycle columns.
type SoftDeleteHook interface {
	OnSoftDelete(today time.Time) map[string]any
}

// RestoreHook lets an entity re-derive columns when it is restored.
type RestoreHook interface {
	OnRestore(today time.Time) map[string]any
}
