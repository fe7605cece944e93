package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Live restricts a query to rows whose is_deleted flag is false.
// Models embedding registry.Lifecycle additionally get GORM's deleted_at IS NULL filter.
func Live(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: "is_deleted"},
		Value:  false,
	})
}

// Where is a conjunction of column equalities.
type Where map[string]any

func handle(dbc dbctx.Context, db *gorm.DB) (*gorm.DB, error) {
	h := dbc.DB(db)
	if h == nil {
		return nil, errors.New("registry repo: nil db handle")
	}
	return h, nil
}

// FindLive returns the first live row matching where, or nil when there is none.
func FindLive[T any](dbc dbctx.Context, db *gorm.DB, where Where) (*T, error) {
	h, err := handle(dbc, db)
	if err != nil {
		return nil, err
	}
	var row T
	q := h.Scopes(Live)
	if len(where) > 0 {
		q = q.Where(map[string]any(where))
	}
	if err := q.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetLive is FindLive keyed by primary id.
func GetLive[T any](dbc dbctx.Context, db *gorm.DB, id int64) (*T, error) {
	if id <= 0 {
		return nil, nil
	}
	return FindLive[T](dbc, db, Where{"id": id})
}

// FindAny ignores the soft-delete filter. Restore and restore-on-recreate paths use it.
func FindAny[T any](dbc dbctx.Context, db *gorm.DB, where Where) (*T, error) {
	h, err := handle(dbc, db)
	if err != nil {
		return nil, err
	}
	var row T
	q := h.Unscoped()
	if len(where) > 0 {
		q = q.Where(map[string]any(where))
	}
	if err := q.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// LockLive loads a live row FOR UPDATE. It requires an open transaction.
func LockLive[T any](dbc dbctx.Context, id int64) (*T, error) {
	if dbc.Tx == nil {
		return nil, fmt.Errorf("registry repo: LockLive requires a transaction")
	}
	var row T
	err := dbc.Tx.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(Live).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListLiveByIDs loads live rows for ids in one query, selecting only columns when given.
func ListLiveByIDs[T any](dbc dbctx.Context, db *gorm.DB, ids []int64, columns []string) ([]*T, error) {
	out := []*T{}
	if len(ids) == 0 {
		return out, nil
	}
	h, err := handle(dbc, db)
	if err != nil {
		return nil, err
	}
	q := h.Scopes(Live).Where("id IN ?", ids)
	if len(columns) > 0 {
		q = q.Select(columns)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListLive loads every live row matching where, ordered by id.
func ListLive[T any](dbc dbctx.Context, db *gorm.DB, where Where) ([]*T, error) {
	h, err := handle(dbc, db)
	if err != nil {
		return nil, err
	}
	out := []*T{}
	q := h.Scopes(Live)
	if len(where) > 0 {
		q = q.Where(map[string]any(where))
	}
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateLive applies updates to the live row id of model's table and stamps updated_at.
func UpdateLive(dbc dbctx.Context, db *gorm.DB, model any, id int64, updates map[string]any, now time.Time) (bool, error) {
	h, err := handle(dbc, db)
	if err != nil {
		return false, err
	}
	if len(updates) == 0 {
		return false, nil
	}
	payload := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		payload[k] = v
	}
	payload["updated_at"] = now.UTC()
	res := h.Model(model).Scopes(Live).Where("id = ?", id).Updates(payload)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func create[T any](dbc dbctx.Context, db *gorm.DB, rows []*T) ([]*T, error) {
	if len(rows) == 0 {
		return []*T{}, nil
	}
	h, err := handle(dbc, db)
	if err != nil {
		return nil, err
	}
	if err := h.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
