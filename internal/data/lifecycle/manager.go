package lifecycle

import (
	"errors"
	"fmt"
	"time"

	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"github.com/yungbote/membership-registry/internal/platform/logger"
	"gorm.io/gorm"
)

// ErrNoTransaction is returned by CascadeDeleteDependents outside a unit of work.
var ErrNoTransaction = errors.New("lifecycle: cascade requires an open transaction")

// dependent is one table whose rows reference an owner table through Column.
// Inactive marks tables with a derived is_active flag that a delete forces false.
type dependent struct {
	Table    string
	Column   string
	Inactive bool
}

// dependents maps an owner table to the live rows that go down with it.
// Cascades recurse: deleting a structure deletes its directions, which delete their mandates.
var dependents = map[string][]dependent{
	"direction": {
		{Table: "direction_function", Column: "direction_id", Inactive: true},
	},
	"structure": {
		{Table: "person_structure", Column: "structure_id", Inactive: true},
		{Table: "direction", Column: "structure_id"},
	},
	"parish": {
		{Table: "person_parish", Column: "parish_id", Inactive: true},
	},
	"person": {
		{Table: "person_parish", Column: "person_id", Inactive: true},
		{Table: "person_structure", Column: "person_id", Inactive: true},
		{Table: "direction_function", Column: "person_id", Inactive: true},
	},
}

// Manager applies soft delete and restore to lifecycle-managed rows.
type Manager struct {
	db    *gorm.DB
	log   *logger.Logger
	clock func() time.Time
}

func NewManager(db *gorm.DB, baseLog *logger.Logger, clock func() time.Time) *Manager {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Manager{db: db, log: baseLog.With("component", "LifecycleManager"), clock: clock}
}

// SoftDelete flags entity deleted and applies its SoftDeleteHook in the same statement.
// It returns false, without writing, when the entity is already deleted.
func (m *Manager) SoftDelete(dbc dbctx.Context, entity types.Lifecycled) (bool, error) {
	if entity == nil {
		return false, fmt.Errorf("lifecycle: nil entity")
	}
	now := m.clock()
	state := entity.State()
	if !state.MarkDeleted(now) {
		return false, nil
	}
	updates := map[string]any{
		"is_deleted": true,
		"deleted_at": state.DeletedAt.Time,
		"updated_at": state.UpdatedAt,
	}
	if hook, ok := entity.(types.SoftDeleteHook); ok {
		for k, v := range hook.OnSoftDelete(types.CivilDate(now)) {
			updates[k] = v
		}
	}
	return m.apply(dbc, entity, false, updates)
}

// Restore clears the deletion flag and re-derives hook-owned columns.
// It returns false, without writing, when the entity is not deleted.
func (m *Manager) Restore(dbc dbctx.Context, entity types.Lifecycled) (bool, error) {
	if entity == nil {
		return false, fmt.Errorf("lifecycle: nil entity")
	}
	now := m.clock()
	state := entity.State()
	if !state.ClearDeleted(now) {
		return false, nil
	}
	updates := map[string]any{
		"is_deleted": false,
		"deleted_at": nil,
		"updated_at": state.UpdatedAt,
	}
	if hook, ok := entity.(types.RestoreHook); ok {
		for k, v := range hook.OnRestore(types.CivilDate(now)) {
			updates[k] = v
		}
	}
	return m.apply(dbc, entity, true, updates)
}

// apply writes updates to the row only while its is_deleted flag still equals deleted.
func (m *Manager) apply(dbc dbctx.Context, entity types.Lifecycled, deleted bool, updates map[string]any) (bool, error) {
	h := dbc.DB(m.db)
	if h == nil {
		return false, fmt.Errorf("lifecycle: nil db handle")
	}
	res := h.Table(entity.TableName()).
		Where("id = ? AND is_deleted = ?", entity.PrimaryID(), deleted).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CascadeDeleteDependents soft deletes every live row that depends on owner, recursively,
// and returns how many rows it deleted. It must run inside the owner's transaction.
func (m *Manager) CascadeDeleteDependents(dbc dbctx.Context, owner types.Lifecycled) (int, error) {
	if owner == nil {
		return 0, fmt.Errorf("lifecycle: nil owner")
	}
	if !dbc.InTx() {
		return 0, ErrNoTransaction
	}
	now := m.clock().UTC()
	n, err := m.cascade(dbc.DB(nil), owner.TableName(), []int64{owner.PrimaryID()}, now)
	if err != nil {
		return n, err
	}
	if n > 0 {
		m.log.Debug("cascaded soft delete", "table", owner.TableName(), "id", owner.PrimaryID(), "rows", n)
	}
	return n, nil
}

func (m *Manager) cascade(tx *gorm.DB, table string, ownerIDs []int64, now time.Time) (int, error) {
	total := 0
	for _, dep := range dependents[table] {
		var ids []int64
		err := tx.Table(dep.Table).
			Where(dep.Column+" IN ? AND is_deleted = ?", ownerIDs, false).
			Pluck("id", &ids).Error
		if err != nil {
			return total, fmt.Errorf("cascade %s -> %s: %w", table, dep.Table, err)
		}
		if len(ids) == 0 {
			continue
		}
		updates := map[string]any{
			"is_deleted": true,
			"deleted_at": now,
			"updated_at": now,
		}
		if dep.Inactive {
			updates["is_active"] = false
		}
		res := tx.Table(dep.Table).Where("id IN ? AND is_deleted = ?", ids, false).Updates(updates)
		if res.Error != nil {
			return total, fmt.Errorf("cascade %s -> %s: %w", table, dep.Table, res.Error)
		}
		total += int(res.RowsAffected)

		n, err := m.cascade(tx, dep.Table, ids, now)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
